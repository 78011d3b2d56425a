package message

import "encoding/json"

// WS 上行消息类型
const (
	WsTypeWatchSong   = "watch_song"   // 订阅某首歌的实时评分/评论
	WsTypeUnwatchSong = "unwatch_song" // 取消订阅
)

// Req 客户端上行消息
type Req struct {
	Type     string `json:"type"`      // watch_song / unwatch_song
	SongID   uint64 `json:"song_id"`   // 目标歌曲 ID
	PacketID string `json:"packet_id"` // 可选：客户端匹配 ack
}

// Event 服务端下行事件（新评分/新评论等）
type Event struct {
	Type   string          `json:"type"`    // cons.EventXxx
	SongID uint64          `json:"song_id"` // 所属歌曲
	Data   json.RawMessage `json:"data,omitempty"`
}
