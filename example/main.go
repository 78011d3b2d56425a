package main

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/jinzhu/configor"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	daily_music "github.com/gongcheng0311-dotcom/daily-music"
	"github.com/gongcheng0311-dotcom/daily-music/response"
)

// AppConfig 站点配置，config.yml + 环境变量（configor 规则）
type AppConfig struct {
	Addr string `default:":8080"`

	MySQL struct {
		DSN string `default:"root:password@tcp(127.0.0.1:3306)/daily_music?charset=utf8mb4&parseTime=True&loc=Local"`
	}

	Redis struct {
		Addr     string `default:"127.0.0.1:6379"`
		Password string
		DB       int
	}

	TablePrefix    string `default:"music_"`
	CoverURLPrefix string `default:"uploads/covers"`
	CoverUploadDir string // 为空时用可执行文件旁的 uploads/covers
}

func main() {
	var cfg AppConfig
	if err := configor.New(&configor.Config{ENVPrefix: "DAILY_MUSIC"}).Load(&cfg, "config.yml"); err != nil {
		log.Fatal("配置加载失败:", err)
	}

	// 1. 初始化数据库连接
	db, err := gorm.Open(mysql.Open(cfg.MySQL.DSN), &gorm.Config{})
	if err != nil {
		log.Fatal("数据库连接失败:", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// 2. 初始化 Music Engine（单例模式，全局只需调用一次）
	engine := daily_music.NewEngine(
		daily_music.WithDB(db),
		daily_music.WithRDB(rdb),
		daily_music.WithTablePrefix(cfg.TablePrefix),
		daily_music.WithCoverURLPrefix(cfg.CoverURLPrefix),
	)

	// 历史数据修复：同一天多首歌只留一首 + date 唯一索引
	if err := engine.EnsureOneSongPerDate(); err != nil {
		log.Printf("EnsureOneSongPerDate: %v", err)
	}

	// 登录态变化日志（演示会话事件订阅，退出时退订）
	unsubscribe := engine.SessionEvents.Subscribe(func(evt daily_music.SessionEvent) {
		log.Printf("session event: %s user=%d", evt.Type, evt.UserID)
	})
	defer unsubscribe()

	// 3. 创建 Gin 路由
	r := gin.Default()

	// 设置 CORS（如果需要）
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	// 注册 Swagger UI
	daily_music.RegisterSwagger(r, "/swagger/*any")

	// 封面静态资源：CoverURLPrefix 写库的相对路径由这里提供访问
	// （配置成 CDN 地址时不需要本地静态路由）
	if !strings.HasPrefix(cfg.CoverURLPrefix, "http://") && !strings.HasPrefix(cfg.CoverURLPrefix, "https://") {
		coverDir := daily_music.DefaultCoverUploadDir(cfg.CoverUploadDir)
		r.Static("/"+strings.Trim(cfg.CoverURLPrefix, "/"), coverDir)
	}

	// 健康检查（非 gin 风格的旧接口保持兼容）
	r.GET("/healthz", gin.WrapF(func(w http.ResponseWriter, req *http.Request) {
		response.Success(map[string]string{"status": "ok"}).WriteJSON(w)
	}))

	// 4. WebSocket：歌曲页实时评分/评论推送
	// 客户端连接后发 {"type":"watch_song","song_id":1} 订阅
	// 访客也能连（userID=0），带 token 的按登录用户算
	r.GET("/ws", func(c *gin.Context) {
		userID, _, err := engine.AuthService.AuthenticateRequest(c.Request.Context(), c.Request)
		if err != nil {
			userID = 0
		}
		engine.ServeWS(c.Writer, c.Request, userID)
	})

	// 5. API 路由组
	api := r.Group("/api/v1")

	// 歌曲模块（公开读；带 token 能看到自己的评分历史）
	songAPI := api.Group("/song", engine.GinOptionalAuth(nil))
	{
		songAPI.GET("/today", engine.GinHandleSongOfDay)
		songAPI.GET("/detail", engine.GinHandleSongByDate)
		songAPI.GET("/history", engine.GinHandleSongHistory)
	}

	// 评分模块
	ratingAPI := api.Group("/rating")
	{
		ratingAPI.GET("/list", engine.GinOptionalAuth(nil), engine.GinHandleListRatings)
		ratingAPI.POST("/create", engine.GinAuthMiddleware(nil), engine.GinHandleAddRating)
		ratingAPI.POST("/delete", engine.GinAuthMiddleware(nil), engine.GinHandleDeleteRating)
	}

	// 评论模块
	commentAPI := api.Group("/comment")
	{
		commentAPI.GET("/list", engine.GinHandleListComments)
		commentAPI.POST("/create", engine.GinAuthMiddleware(nil), engine.GinHandleAddComment)
		commentAPI.POST("/delete", engine.GinAuthMiddleware(nil), engine.GinHandleDeleteComment)
	}

	// 用户模块
	userAPI := api.Group("/user")
	{
		userAPI.POST("/register", engine.GinHandleUserRegister)
		userAPI.POST("/login", engine.GinHandleUserLogin)
		userAPI.POST("/logout", engine.GinAuthMiddleware(nil), engine.GinHandleUserLogout)
		userAPI.GET("/info", engine.GinAuthMiddleware(nil), engine.GinHandleGetUserInfo)
		userAPI.POST("/display_name", engine.GinAuthMiddleware(nil), engine.GinHandleUpdateDisplayName)
	}

	// 管理模块（录入/修改每日歌曲）
	adminAPI := api.Group("/admin", engine.GinAuthMiddleware(nil), engine.GinAdminMiddleware())
	{
		adminAPI.POST("/song/create", engine.GinHandleCreateSong)
		adminAPI.POST("/song/update", engine.GinHandleUpdateSong)
	}

	// 6. 启动服务器
	log.Printf("Daily Music Server 启动在 %s", cfg.Addr)
	log.Printf("Swagger UI: http://localhost%s/swagger/index.html", cfg.Addr)
	if err := r.Run(cfg.Addr); err != nil {
		log.Fatal("服务器启动失败:", err)
	}
}
