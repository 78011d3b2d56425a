package daily_music

import (
	"fmt"
	"log"

	"github.com/gongcheng0311-dotcom/daily-music/models"
	"gorm.io/gorm"
)

// EnsureOneSongPerDate 修复历史数据：同一天出现多首歌时只保留最早录入的一首，
// 并确保 date 上的唯一索引存在（"一天至多一首"是核心不变量）。
// 警告：重复日期的多余记录会被物理删除（Song 不做软删，否则会挡住唯一索引），
// 上线前请先备份。
func (e *MusicEngine) EnsureOneSongPerDate() error {
	db := e.config.DB
	tableName := e.config.TablePrefix + "song"

	if !db.Migrator().HasTable(tableName) {
		log.Printf("表 %s 不存在，跳过迁移", tableName)
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		// 1. 找出存在重复的日期
		var dupDates []string
		if err := tx.Model(&models.Song{}).
			Select("date").
			Group("date").
			Having("COUNT(*) > 1").
			Pluck("date", &dupDates).Error; err != nil {
			return fmt.Errorf("查询重复日期失败: %v", err)
		}

		// 2. 每个重复日期只保留 id 最小的那条
		for _, date := range dupDates {
			var keepID uint64
			if err := tx.Model(&models.Song{}).
				Where("date = ?", date).
				Select("MIN(id)").
				Scan(&keepID).Error; err != nil {
				return fmt.Errorf("查询保留记录失败: %v", err)
			}
			res := tx.Where("date = ? AND id <> ?", date, keepID).Delete(&models.Song{})
			if res.Error != nil {
				return fmt.Errorf("清理重复歌曲失败: %v", res.Error)
			}
			log.Printf("日期 %s 清理了 %d 条重复歌曲（保留 id=%d）", date, res.RowsAffected, keepID)
		}

		// 3. 确保唯一索引存在
		if !tx.Migrator().HasIndex(&models.Song{}, "Date") {
			if err := tx.Migrator().CreateIndex(&models.Song{}, "Date"); err != nil {
				log.Printf("创建 date 唯一索引警告: %v", err)
			}
		}

		return nil
	})
}
