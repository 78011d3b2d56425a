package repository

import (
	model "github.com/gongcheng0311-dotcom/daily-music/models"
	"gorm.io/gorm"
)

// RatingDAO 评分表的数据库操作
// 只有插入、按歌查询和带所有权谓词的删除，没有任何 UPDATE（只增不改）。
type RatingDAO struct {
	db *gorm.DB
}

func NewRatingDAO(db *gorm.DB) *RatingDAO {
	return &RatingDAO{db: db}
}

func (dao *RatingDAO) Create(r *model.Rating) error {
	return dao.db.Create(r).Error
}

// ListBySong 某首歌的全部评分，按创建时间倒序。
func (dao *RatingDAO) ListBySong(songID uint64) ([]model.Rating, error) {
	var out []model.Rating
	err := dao.db.Where("song_id = ?", songID).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

// DeleteOwned 删除一条评分，WHERE 同时带 id 和 user_id。
// 非本人的记录不会命中，返回受影响行数让上层区分。
func (dao *RatingDAO) DeleteOwned(ratingID, userID uint64) (int64, error) {
	res := dao.db.Where("id = ? AND user_id = ?", ratingID, userID).
		Delete(&model.Rating{})
	return res.RowsAffected, res.Error
}
