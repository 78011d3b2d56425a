package repository

import (
	"errors"

	model "github.com/gongcheng0311-dotcom/daily-music/models"
	"gorm.io/gorm"
)

// ProfileDAO 资料表的数据库操作
type ProfileDAO struct {
	db *gorm.DB
}

func NewProfileDAO(db *gorm.DB) *ProfileDAO {
	return &ProfileDAO{db: db}
}

func (dao *ProfileDAO) Create(p *model.Profile) error {
	return dao.db.Create(p).Error
}

func (dao *ProfileDAO) FindByID(id uint64) (*model.Profile, error) {
	var p model.Profile
	if err := dao.db.Where("id = ?", id).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// FindByIDs 批量取资料（一次 IN 查询，供左连使用）。ids 为空直接返回空切片。
func (dao *ProfileDAO) FindByIDs(ids []uint64) ([]model.Profile, error) {
	if len(ids) == 0 {
		return []model.Profile{}, nil
	}
	var out []model.Profile
	err := dao.db.Where("id IN ?", ids).Find(&out).Error
	return out, err
}

func (dao *ProfileDAO) UpdateDisplayName(id uint64, name string) error {
	return dao.db.Model(&model.Profile{}).Where("id = ?", id).
		Update("display_name", name).Error
}

func (dao *ProfileDAO) IsAdmin(id uint64) (bool, error) {
	p, err := dao.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return p.IsAdmin, nil
}
