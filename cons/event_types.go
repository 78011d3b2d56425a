package cons

// 歌曲页实时推送事件类型（event_type）
const (
	EventRatingCreated  = "song.rating.created"  // 新评分
	EventRatingDeleted  = "song.rating.deleted"  // 评分被本人删除
	EventCommentCreated = "song.comment.created" // 新评论
	EventCommentDeleted = "song.comment.deleted" // 评论被本人删除
)

// 会话事件（SessionEventHub）
const (
	EventSessionSignedIn  = "session.signed_in"
	EventSessionSignedOut = "session.signed_out"
)
