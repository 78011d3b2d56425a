package service

import (
	"strings"
	"unicode/utf8"

	"github.com/gongcheng0311-dotcom/daily-music/models"
	"github.com/gongcheng0311-dotcom/daily-music/repository"
)

// AnonDisplayName 没有资料（或没填展示名）时的兜底展示名
const AnonDisplayName = "匿名用户"

type ProfileService struct {
	*Service
	profileDao *repository.ProfileDAO
}

func NewProfileService(s *Service) *ProfileService {
	return &ProfileService{Service: s, profileDao: repository.NewProfileDAO(s.DB)}
}

// ProfileDTO 展示资料
type ProfileDTO struct {
	ID          uint64 `json:"id"`
	DisplayName string `json:"display_name"` // 已做匿名兜底
	AvatarColor string `json:"avatar_color"` // 由展示名确定的渐变色
}

func toProfileDTO(p *models.Profile) *ProfileDTO {
	if p == nil {
		return nil
	}
	name := DisplayNameOrAnon(p)
	return &ProfileDTO{ID: p.ID, DisplayName: name, AvatarColor: AvatarColor(name)}
}

// DisplayNameOrAnon 展示名兜底：nil 资料或空展示名都归到 匿名用户。
func DisplayNameOrAnon(p *models.Profile) string {
	if p == nil || p.DisplayName == nil {
		return AnonDisplayName
	}
	name := strings.TrimSpace(*p.DisplayName)
	if name == "" {
		return AnonDisplayName
	}
	return name
}

// ProfileIndex 按 id 建一次索引，替代对资料切片的逐条线性扫描。
// 评分/评论左连资料都走这里（每次请求建一次 map）。
func ProfileIndex(profiles []models.Profile) map[uint64]*models.Profile {
	idx := make(map[uint64]*models.Profile, len(profiles))
	for i := range profiles {
		idx[profiles[i].ID] = &profiles[i]
	}
	return idx
}

// 头像渐变色（按名字 hash 稳定取色）
var avatarGradients = []string{
	"linear-gradient(135deg, #8b5cf6, #a78bfa)",
	"linear-gradient(135deg, #ec4899, #f472b6)",
	"linear-gradient(135deg, #06b6d4, #67e8f9)",
	"linear-gradient(135deg, #10b981, #34d399)",
	"linear-gradient(135deg, #f59e0b, #fbbf24)",
	"linear-gradient(135deg, #ef4444, #f87171)",
}

// AvatarColor 同一个名字永远取同一个渐变。
func AvatarColor(name string) string {
	var hash int32
	for _, r := range name {
		hash = r + (hash << 5) - hash
	}
	if hash < 0 {
		hash = -hash
	}
	return avatarGradients[int(hash)%len(avatarGradients)]
}

// GetProfile 按用户 id 查资料，查不到返回 (nil, nil)。
func (s *ProfileService) GetProfile(userID uint64) (*ProfileDTO, error) {
	p, err := s.profileDao.FindByID(userID)
	if err != nil {
		if errorsIsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return toProfileDTO(p), nil
}

// profilesFor 去重后批量拉取一批 user_id 对应的资料并建索引。
func (s *ProfileService) profilesFor(userIDs []uint64) (map[uint64]*models.Profile, error) {
	uniq := make(map[uint64]struct{}, len(userIDs))
	ids := make([]uint64, 0, len(userIDs))
	for _, id := range userIDs {
		if id == 0 {
			continue
		}
		if _, ok := uniq[id]; ok {
			continue
		}
		uniq[id] = struct{}{}
		ids = append(ids, id)
	}
	profiles, err := s.profileDao.FindByIDs(ids)
	if err != nil {
		return nil, err
	}
	return ProfileIndex(profiles), nil
}

// UpdateDisplayName 用户改自己的展示名。
func (s *ProfileService) UpdateDisplayName(userID uint64, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return validationError("展示名不能为空")
	}
	if utf8.RuneCountInString(name) > 32 {
		return validationError("展示名最长 32 字")
	}
	return s.profileDao.UpdateDisplayName(userID, name)
}

// IsAdmin 管理员判定（录入/修改歌曲用）。
func (s *ProfileService) IsAdmin(userID uint64) (bool, error) {
	return s.profileDao.IsAdmin(userID)
}
