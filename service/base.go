package service

import (
	"errors"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// Service 基础服务，包含数据库和配置
type Service struct {
	DB          *gorm.DB
	RDB         *redis.Client
	TablePrefix string

	// SongNotifier 歌曲页实时推送回调（WS 广播）。
	// 通过函数注入避免 service 层反向依赖 ws 包。推送是尽力而为，
	// 失败不影响写库结果。
	SongNotifier func(songID uint64, payload []byte)

	// SessionEvents 登录/登出事件总线，UI 可订阅（带退订）。
	SessionEvents *SessionEventHub

	Debug bool
}

// Table 获取带前缀的表名
func (s *Service) Table(name string) *gorm.DB {
	return s.DB.Table(name)
}

func errorsIsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// notifySong 空安全的推送封装
func (s *Service) notifySong(songID uint64, payload []byte) {
	if s.SongNotifier == nil || len(payload) == 0 {
		return
	}
	s.SongNotifier(songID, payload)
}
