package models

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// SongDAO 封装 Song 相关的数据库操作
type SongDAO struct {
	db *gorm.DB
}

func NewSongDAO(db *gorm.DB) *SongDAO {
	return &SongDAO{db: db}
}

func (dao *SongDAO) Create(song *Song) error {
	return dao.db.Create(song).Error
}

func (dao *SongDAO) FindByID(id uint64) (*Song, error) {
	var s Song
	if err := dao.db.Where("id = ?", id).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (dao *SongDAO) FindByDate(date string) (*Song, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return nil, gorm.ErrRecordNotFound
	}
	var s Song
	if err := dao.db.Where("date = ?", date).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// FindLatest 返回日期最大的一首歌（没有今日推荐时的回退）。
func (dao *SongDAO) FindLatest() (*Song, error) {
	var s Song
	if err := dao.db.Order("date DESC").First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (dao *SongDAO) ExistsByDate(date string) (bool, error) {
	var count int64
	err := dao.db.Model(&Song{}).Where("date = ?", date).Count(&count).Error
	return count > 0, err
}

// SongSummary 历史列表只取展示需要的列
type SongSummary struct {
	Date     string `json:"date"`
	Title    string `json:"title"`
	Artist   string `json:"artist"`
	CoverURL string `json:"cover_url"`
}

// ListSummariesByDateDesc 按日期倒序列出全部歌曲的摘要。
func (dao *SongDAO) ListSummariesByDateDesc() ([]SongSummary, error) {
	var out []SongSummary
	err := dao.db.Model(&Song{}).
		Select("date", "title", "artist", "cover_url").
		Order("date DESC").
		Find(&out).Error
	return out, err
}

func (dao *SongDAO) UpdateFields(id uint64, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return dao.db.Model(&Song{}).Where("id = ?", id).Updates(updates).Error
}

func (dao *SongDAO) IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
