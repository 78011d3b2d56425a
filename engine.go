package daily_music

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gongcheng0311-dotcom/daily-music/message"
	"github.com/gongcheng0311-dotcom/daily-music/middleware"
	model "github.com/gongcheng0311-dotcom/daily-music/models"
	"github.com/gongcheng0311-dotcom/daily-music/service"
)

// SessionEvent 会话事件别名，宿主应用订阅 SessionEvents 时不用额外 import service 包。
type SessionEvent = service.SessionEvent

type MusicEngine struct {
	config *Config

	SongService    *service.SongService
	RatingService  *service.RatingService
	CommentService *service.CommentService
	ProfileService *service.ProfileService
	UserService    *service.UserService
	AuthService    *service.AuthService // 鉴权服务
	SessionEvents  *service.SessionEventHub
	WsServer       *WsServer
}

var (
	Instance *MusicEngine
	once     sync.Once
)

// NewEngine 创建实例
// 使用选项模式传入配置，Option回调
func NewEngine(opts ...Option) *MusicEngine {
	once.Do(func() {
		c := &Config{
			TablePrefix: "music_", // Default
		}
		for _, opt := range opts {
			opt(c)
		}

		Instance = &MusicEngine{config: c}

		// 初始化 WS hub（歌曲页实时推送）
		Instance.WsServer = NewWsServer()
		go Instance.WsServer.Run()

		// 会话事件总线（登录/登出通知，UI 订阅）
		Instance.SessionEvents = service.NewSessionEventHub()

		// 初始化基础 Service，注入 WS 推送回调
		baseService := &service.Service{
			DB:            c.DB,
			RDB:           c.RDB,
			TablePrefix:   c.TablePrefix,
			SongNotifier:  Instance.WsServer.BroadcastToSong,
			SessionEvents: Instance.SessionEvents,
			Debug:         c.Service.Debug,
		}

		// 初始化各个 Service
		Instance.SongService = service.NewSongService(baseService)
		Instance.RatingService = service.NewRatingService(baseService)
		Instance.CommentService = service.NewCommentService(baseService)
		Instance.ProfileService = service.NewProfileService(baseService)
		Instance.UserService = service.NewUserService(baseService)
		Instance.AuthService = service.NewAuthService(c.RDB) // 初始化鉴权服务

		// 迁移表
		if err := Instance.AutoMigrate(); err != nil {
			log.Printf("AutoMigrate failed: %v", err)
		}

		// 上行消息：目前只有订阅/退订某首歌
		Instance.WsServer.onMessage = func(client *Client, msg []byte) {
			var req message.Req
			if err := json.Unmarshal(msg, &req); err != nil {
				log.Printf("Invalid message format: %v", err)
				return
			}

			switch req.Type {
			case message.WsTypeWatchSong:
				if req.SongID == 0 {
					return
				}
				client.watchSong(req.SongID)
			case message.WsTypeUnwatchSong:
				client.watchSong(0)
			default:
				log.Printf("Unknown ws message type: %s", req.Type)
			}
		}
	})

	return Instance
}

func (e *MusicEngine) AutoMigrate() error {
	db := e.config.DB
	log.Println("AutoMigrate...")
	return db.AutoMigrate(
		&model.User{},
		&model.Profile{},
		&model.Song{},
		&model.Rating{},
		&model.Comment{},
	)
}

// ServeWS 处理 WebSocket 请求。userID 为 0 表示未登录访客。
func (e *MusicEngine) ServeWS(w http.ResponseWriter, r *http.Request, userID uint64) {
	e.WsServer.ServeWS(w, r, userID)
}

// GinAuthMiddleware 返回配置好的 Gin 鉴权中间件（写操作路由用）。
//
// 使用示例:
//
//	engine := daily_music.NewEngine(...)
//	r := gin.Default()
//	authed := r.Group("/api/v1", engine.GinAuthMiddleware(nil))
func (e *MusicEngine) GinAuthMiddleware(opt *middleware.AuthOptions) gin.HandlerFunc {
	return middleware.GinAuthMiddleware(e.AuthService, opt)
}

// GinOptionalAuth 可选登录中间件（公开读接口用，登录了能看到自己的评分）。
func (e *MusicEngine) GinOptionalAuth(opt *middleware.AuthOptions) gin.HandlerFunc {
	return middleware.GinOptionalAuth(e.AuthService, opt)
}

// GinAdminMiddleware 管理员中间件，挂在 GinAuthMiddleware 之后。
func (e *MusicEngine) GinAdminMiddleware() gin.HandlerFunc {
	return middleware.GinAdminMiddleware(func(userID uint64) (bool, error) {
		return e.ProfileService.IsAdmin(userID)
	})
}
