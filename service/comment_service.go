package service

import (
	"encoding/json"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gongcheng0311-dotcom/daily-music/cons"
	"github.com/gongcheng0311-dotcom/daily-music/message"
	"github.com/gongcheng0311-dotcom/daily-music/models"
	"github.com/gongcheng0311-dotcom/daily-music/repository"
)

// MaxCommentRunes 评论长度上限（按 rune 计，500 字刚好合法，501 字拒绝）
const MaxCommentRunes = 500

type CommentService struct {
	*Service
	commentDao *repository.CommentDAO
	profiles   *ProfileService
}

func NewCommentService(s *Service) *CommentService {
	return &CommentService{
		Service:    s,
		commentDao: repository.NewCommentDAO(s.DB),
		profiles:   NewProfileService(s),
	}
}

// CommentDTO 评论 + 左连出来的展示资料
type CommentDTO struct {
	ID        uint64      `json:"id"`
	SongID    uint64      `json:"song_id"`
	UserID    uint64      `json:"user_id"`
	Content   string      `json:"content"`
	CreatedAt time.Time   `json:"created_at"`
	Profile   *ProfileDTO `json:"profile"` // 无资料时为 null
}

func toCommentDTOs(comments []models.Comment, idx map[uint64]*models.Profile) []CommentDTO {
	dtos := make([]CommentDTO, len(comments))
	for i, c := range comments {
		dtos[i] = CommentDTO{
			ID:        c.ID,
			SongID:    c.SongID,
			UserID:    c.UserID,
			Content:   c.Content,
			CreatedAt: c.CreatedAt,
			Profile:   toProfileDTO(idx[c.UserID]),
		}
	}
	return dtos
}

// ListComments 某首歌的评论列表（时间倒序），资料一次 IN 查询后左连。
func (s *CommentService) ListComments(songID uint64) ([]CommentDTO, error) {
	comments, err := s.commentDao.ListBySong(songID)
	if err != nil {
		return nil, err
	}
	userIDs := make([]uint64, len(comments))
	for i, c := range comments {
		userIDs[i] = c.UserID
	}
	idx, err := s.profiles.profilesFor(userIDs)
	if err != nil {
		return nil, err
	}
	return toCommentDTOs(comments, idx), nil
}

// ValidateCommentContent 发表前的本地校验：先 trim，再检查 1..500 字。
// 不合法的内容不会产生任何存储调用。
func ValidateCommentContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", validationError("评论内容不能为空")
	}
	if utf8.RuneCountInString(content) > MaxCommentRunes {
		return "", validationError("评论最长 500 字")
	}
	return content, nil
}

// AddComment 发表评论（只增不改）。
func (s *CommentService) AddComment(songID, userID uint64, content string) (*CommentDTO, error) {
	if songID == 0 || userID == 0 {
		return nil, validationError("song_id 和 user_id 不能为空")
	}
	content, err := ValidateCommentContent(content)
	if err != nil {
		return nil, err
	}

	c := &models.Comment{SongID: songID, UserID: userID, Content: content}
	if err := s.commentDao.Create(c); err != nil {
		return nil, err
	}

	p, err := s.profiles.GetProfile(userID)
	if err != nil {
		p = nil
	}
	dto := &CommentDTO{
		ID:        c.ID,
		SongID:    c.SongID,
		UserID:    c.UserID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
		Profile:   p,
	}
	s.publish(cons.EventCommentCreated, songID, dto)
	return dto, nil
}

// DeleteComment 删除自己的一条评论，所有权语义同 RatingService.DeleteRating。
func (s *CommentService) DeleteComment(songID, commentID, requestingUserID uint64) error {
	if commentID == 0 || requestingUserID == 0 {
		return validationError("comment_id 和 user_id 不能为空")
	}
	affected, err := s.commentDao.DeleteOwned(commentID, requestingUserID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ownershipError("评论不存在或不属于当前用户")
	}
	s.publish(cons.EventCommentDeleted, songID, map[string]uint64{"comment_id": commentID})
	return nil
}

func (s *CommentService) publish(eventType string, songID uint64, data any) {
	raw, err := json.Marshal(data)
	if err != nil {
		return
	}
	payload, err := json.Marshal(message.Event{Type: eventType, SongID: songID, Data: raw})
	if err != nil {
		return
	}
	s.notifySong(songID, payload)
}
