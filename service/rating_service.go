package service

import (
	"encoding/json"
	"math"
	"time"

	"github.com/gongcheng0311-dotcom/daily-music/cons"
	"github.com/gongcheng0311-dotcom/daily-music/message"
	"github.com/gongcheng0311-dotcom/daily-music/models"
	"github.com/gongcheng0311-dotcom/daily-music/repository"
)

type RatingService struct {
	*Service
	ratingDao *repository.RatingDAO
	profiles  *ProfileService
}

func NewRatingService(s *Service) *RatingService {
	return &RatingService{
		Service:   s,
		ratingDao: repository.NewRatingDAO(s.DB),
		profiles:  NewProfileService(s),
	}
}

// RatingStats 聚合结果：条数 + 保留两位小数的平均分
type RatingStats struct {
	Count   int     `json:"count"`
	Average float64 `json:"average"`
}

// Aggregate 纯算术聚合。每条评分独立计数（同一用户评 3 次就算 3 条），
// 平均分四舍五入到两位小数，没有评分时平均分为 0（不是 NaN）。
func Aggregate(ratings []models.Rating) RatingStats {
	if len(ratings) == 0 {
		return RatingStats{}
	}
	var sum int
	for _, r := range ratings {
		sum += int(r.Score)
	}
	avg := float64(sum) / float64(len(ratings))
	return RatingStats{
		Count:   len(ratings),
		Average: math.Round(avg*100) / 100,
	}
}

// RatingsByUser 过滤出某个用户自己的评分历史，保持输入顺序
//（调用方给的已经是按时间倒序的切片）。
func RatingsByUser(ratings []models.Rating, userID uint64) []models.Rating {
	out := make([]models.Rating, 0, len(ratings))
	for _, r := range ratings {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out
}

// RatingDTO 评分 + 左连出来的展示资料
type RatingDTO struct {
	ID        uint64      `json:"id"`
	SongID    uint64      `json:"song_id"`
	UserID    uint64      `json:"user_id"`
	Score     uint8       `json:"score"`
	CreatedAt time.Time   `json:"created_at"`
	Profile   *ProfileDTO `json:"profile"` // 无资料时为 null，前端兜底 匿名用户
}

// toRatingDTOs 左连：每条评分按 user_id 查一次索引，查不到 Profile 置 nil。
// 输入顺序保留，输出条数恒等于输入条数。
func toRatingDTOs(ratings []models.Rating, idx map[uint64]*models.Profile) []RatingDTO {
	dtos := make([]RatingDTO, len(ratings))
	for i, r := range ratings {
		dtos[i] = RatingDTO{
			ID:        r.ID,
			SongID:    r.SongID,
			UserID:    r.UserID,
			Score:     r.Score,
			CreatedAt: r.CreatedAt,
			Profile:   toProfileDTO(idx[r.UserID]),
		}
	}
	return dtos
}

// ListRatings 某首歌的评分列表（时间倒序）+ 聚合统计。
// 读后聚合不做事务隔离，和并发插入之间允许短暂不一致。
func (s *RatingService) ListRatings(songID uint64) ([]RatingDTO, RatingStats, error) {
	ratings, err := s.ratingDao.ListBySong(songID)
	if err != nil {
		return nil, RatingStats{}, err
	}
	userIDs := make([]uint64, len(ratings))
	for i, r := range ratings {
		userIDs[i] = r.UserID
	}
	idx, err := s.profiles.profilesFor(userIDs)
	if err != nil {
		return nil, RatingStats{}, err
	}
	return toRatingDTOs(ratings, idx), Aggregate(ratings), nil
}

// MyRatings 当前用户在这首歌下的评分历史（自评/删除界面用）。
func (s *RatingService) MyRatings(songID, userID uint64) ([]models.Rating, error) {
	ratings, err := s.ratingDao.ListBySong(songID)
	if err != nil {
		return nil, err
	}
	return RatingsByUser(ratings, userID), nil
}

// AddRating 打分。分数必须是 [1,10] 的整数；永远 INSERT 新纪录，
// 不对同一 user+song 的旧评分做覆盖（历史保留是有意为之）。
func (s *RatingService) AddRating(songID, userID uint64, score int) (*RatingDTO, error) {
	if songID == 0 || userID == 0 {
		return nil, validationError("song_id 和 user_id 不能为空")
	}
	if score < 1 || score > 10 {
		return nil, validationError("分数必须是 1-10 的整数")
	}

	r := &models.Rating{SongID: songID, UserID: userID, Score: uint8(score)}
	if err := s.ratingDao.Create(r); err != nil {
		return nil, err
	}

	p, err := s.profiles.GetProfile(userID)
	if err != nil {
		// 资料查询失败不影响已写入的评分，展示侧按匿名处理
		p = nil
	}
	dto := &RatingDTO{
		ID:        r.ID,
		SongID:    r.SongID,
		UserID:    r.UserID,
		Score:     r.Score,
		CreatedAt: r.CreatedAt,
		Profile:   p,
	}
	s.publish(cons.EventRatingCreated, songID, dto)
	return dto, nil
}

// DeleteRating 删除自己的一条评分。谓词里永远带 requestingUserID，
// 别人的记录不会命中；命中 0 行按权限错误返回。
// songID 只用于实时推送，不参与删除条件。
func (s *RatingService) DeleteRating(songID, ratingID, requestingUserID uint64) error {
	if ratingID == 0 || requestingUserID == 0 {
		return validationError("rating_id 和 user_id 不能为空")
	}
	affected, err := s.ratingDao.DeleteOwned(ratingID, requestingUserID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ownershipError("评分不存在或不属于当前用户")
	}
	s.publish(cons.EventRatingDeleted, songID, map[string]uint64{"rating_id": ratingID})
	return nil
}

func (s *RatingService) publish(eventType string, songID uint64, data any) {
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
