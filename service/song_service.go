package service

import (
	"strings"
	"time"

	"github.com/gongcheng0311-dotcom/daily-music/models"
)

type SongService struct {
	*Service
	songDao *models.SongDAO
}

func NewSongService(s *Service) *SongService {
	return &SongService{Service: s, songDao: models.NewSongDAO(s.DB)}
}

// SongDTO 歌曲详情（含拼好的播放器嵌入地址）
type SongDTO struct {
	ID               uint64    `json:"id"`
	Date             string    `json:"date"`
	Title            string    `json:"title"`
	Artist           string    `json:"artist"`
	Album            string    `json:"album,omitempty"`
	CoverURL         string    `json:"cover_url,omitempty"`
	Description      string    `json:"description,omitempty"`
	Lyrics           string    `json:"lyrics,omitempty"`
	QQMusicURL       string    `json:"qq_music_url,omitempty"`
	QQMusicEmbedURL  string    `json:"qq_music_embed_url,omitempty"`
	BilibiliEmbedURL string    `json:"bilibili_embed_url,omitempty"`
	IsToday          bool      `json:"is_today"`
	CreatedAt        time.Time `json:"created_at"`
}

func toSongDTO(s *models.Song, today string) *SongDTO {
	if s == nil {
		return nil
	}
	songmid := s.QQMusicID
	if songmid == "" && s.QQMusicURL != "" {
		songmid = ExtractQQMusicID(s.QQMusicURL)
	}
	return &SongDTO{
		ID:               s.ID,
		Date:             s.Date,
		Title:            s.Title,
		Artist:           s.Artist,
		Album:            s.Album,
		CoverURL:         s.CoverURL,
		Description:      s.Description,
		Lyrics:           s.Lyrics,
		QQMusicURL:       s.QQMusicURL,
		QQMusicEmbedURL:  QQMusicEmbedURL(songmid),
		BilibiliEmbedURL: BilibiliEmbedURL(s.BilibiliBvid, 1),
		IsToday:          s.Date == today,
		CreatedAt:        s.CreatedAt,
	}
}

const dateLayout = "2006-01-02"

// Today 当天日期，YYYY-MM-DD。
func Today() string {
	return time.Now().Format(dateLayout)
}

// ValidateDate 校验 YYYY-MM-DD（补零的日历日期，无时间部分）。
func ValidateDate(date string) error {
	t, err := time.Parse(dateLayout, date)
	if err != nil || t.Format(dateLayout) != date {
		return validationError("日期格式应为 YYYY-MM-DD")
	}
	return nil
}

// SelectSong 在按日期倒序的切片里挑出要展示的歌：
// 有 targetDate 当天的返回当天，否则返回最新一首，空切片返回 nil。
// 查不到不是错误，调用方据 nil 渲染空态。
func SelectSong(targetDate string, songsByDateDesc []models.Song) *models.Song {
	for i := range songsByDateDesc {
		if songsByDateDesc[i].Date == targetDate {
			return &songsByDateDesc[i]
		}
	}
	if len(songsByDateDesc) == 0 {
		return nil
	}
	return &songsByDateDesc[0]
}

// GetSongOfDay 首页逻辑：先查 date 当天，没有则回退到日期最大的一首。
// 整表为空时返回 (nil, nil)。
func (s *SongService) GetSongOfDay(date string) (*SongDTO, error) {
	song, err := s.songDao.FindByDate(date)
	if err != nil && !s.songDao.IsNotFound(err) {
		return nil, err
	}
	if song == nil {
		song, err = s.songDao.FindLatest()
		if err != nil {
			if s.songDao.IsNotFound(err) {
				return nil, nil
			}
			return nil, err
		}
	}
	return toSongDTO(song, date), nil
}

// GetSongByDate 详情页：精确按日期查，查不到返回 (nil, nil)。
func (s *SongService) GetSongByDate(date string) (*SongDTO, error) {
	if err := ValidateDate(date); err != nil {
		return nil, err
	}
	song, err := s.songDao.FindByDate(date)
	if err != nil {
		if s.songDao.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return toSongDTO(song, Today()), nil
}

// SongByID 评分/评论服务需要回查歌曲是否存在。
func (s *SongService) SongByID(id uint64) (*models.Song, error) {
	return s.songDao.FindByID(id)
}

// ListHistory 历史列表（按日期倒序），排除当前展示的那天。
func (s *SongService) ListHistory(excludeDate string) ([]models.SongSummary, error) {
	all, err := s.songDao.ListSummariesByDateDesc()
	if err != nil {
		return nil, err
	}
	if excludeDate == "" {
		return all, nil
	}
	out := make([]models.SongSummary, 0, len(all))
	for _, sum := range all {
		if sum.Date == excludeDate {
			continue
		}
		out = append(out, sum)
	}
	return out, nil
}

// CreateSongReq 管理员录入每日歌曲
type CreateSongReq struct {
	Date         string `json:"date" binding:"required"`
	Title        string `json:"title" binding:"required"`
	Artist       string `json:"artist" binding:"required"`
	Album        string `json:"album"`
	CoverURL     string `json:"cover_url"`
	Description  string `json:"description"`
	Lyrics       string `json:"lyrics"`
	QQMusicURL   string `json:"qq_music_url"`
	QQMusicID    string `json:"qq_music_id"`
	BilibiliBvid string `json:"bilibili_bvid"`
}

// CreateSong 管理员新增一首歌。一天至多一首，重复日期直接拒绝。
func (s *SongService) CreateSong(req CreateSongReq) (*SongDTO, error) {
	req.Date = strings.TrimSpace(req.Date)
	if err := ValidateDate(req.Date); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Artist) == "" {
		return nil, validationError("歌名和歌手不能为空")
	}
	exists, err := s.songDao.ExistsByDate(req.Date)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, validationError("该日期已有歌曲")
	}

	qqID := strings.TrimSpace(req.QQMusicID)
	if qqID == "" {
		qqID = ExtractQQMusicID(req.QQMusicURL)
	}
	song := &models.Song{
		Date:         req.Date,
		Title:        strings.TrimSpace(req.Title),
		Artist:       strings.TrimSpace(req.Artist),
		Album:        strings.TrimSpace(req.Album),
		CoverURL:     strings.TrimSpace(req.CoverURL),
		Description:  req.Description,
		Lyrics:       req.Lyrics,
		QQMusicURL:   strings.TrimSpace(req.QQMusicURL),
		QQMusicID:    qqID,
		BilibiliBvid: strings.TrimSpace(req.BilibiliBvid),
	}
	if err := s.songDao.Create(song); err != nil {
		return nil, err
	}
	return toSongDTO(song, Today()), nil
}

// UpdateSongReq 管理员修正展示字段。日期是自然键，不允许改。
type UpdateSongReq struct {
	Title        *string `json:"title"`
	Artist       *string `json:"artist"`
	Album        *string `json:"album"`
	CoverURL     *string `json:"cover_url"`
	Description  *string `json:"description"`
	Lyrics       *string `json:"lyrics"`
	QQMusicURL   *string `json:"qq_music_url"`
	QQMusicID    *string `json:"qq_music_id"`
	BilibiliBvid *string `json:"bilibili_bvid"`
}

func (s *SongService) UpdateSong(songID uint64, req UpdateSongReq) error {
	updates := map[string]any{}
	set := func(col string, v *string) {
		if v != nil {
			updates[col] = strings.TrimSpace(*v)
		}
	}
	set("title", req.Title)
	set("artist", req.Artist)
	set("album", req.Album)
	set("cover_url", req.CoverURL)
	set("description", req.Description)
	set("lyrics", req.Lyrics)
	set("qq_music_url", req.QQMusicURL)
	set("qq_music_id", req.QQMusicID)
	set("bilibili_bvid", req.BilibiliBvid)
	if len(updates) == 0 {
		return nil
	}
	return s.songDao.UpdateFields(songID, updates)
}
