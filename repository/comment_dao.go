package repository

import (
	model "github.com/gongcheng0311-dotcom/daily-music/models"
	"gorm.io/gorm"
)

// CommentDAO 评论表的数据库操作，约定同 RatingDAO：只增、按歌查、带谓词删。
type CommentDAO struct {
	db *gorm.DB
}

func NewCommentDAO(db *gorm.DB) *CommentDAO {
	return &CommentDAO{db: db}
}

func (dao *CommentDAO) Create(c *model.Comment) error {
	return dao.db.Create(c).Error
}

// ListBySong 某首歌的全部评论，按创建时间倒序。
func (dao *CommentDAO) ListBySong(songID uint64) ([]model.Comment, error) {
	var out []model.Comment
	err := dao.db.Where("song_id = ?", songID).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

// DeleteOwned 删除一条评论，WHERE 同时带 id 和 user_id。
func (dao *CommentDAO) DeleteOwned(commentID, userID uint64) (int64, error) {
	res := dao.db.Where("id = ? AND user_id = ?", commentID, userID).
		Delete(&model.Comment{})
	return res.RowsAffected, res.Error
}
