package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gongcheng0311-dotcom/daily-music/response"
	"github.com/gongcheng0311-dotcom/daily-music/service"
)

const (
	// ContextUserIDKey gin context 里保存 user id 的 key
	ContextUserIDKey = "user_id"
	ContextTokenKey  = "token"
)

// AuthOptions 可选配置。
type AuthOptions struct {
	// HeaderKey 默认 Authorization
	HeaderKey string
	// QueryKey 默认 token
	QueryKey string
	// UserIDKey 默认 user_id
	UserIDKey string
	// TokenKey 默认 token
	TokenKey string
}

func (o *AuthOptions) withDefaults() AuthOptions {
	if o == nil {
		return AuthOptions{HeaderKey: "Authorization", QueryKey: "token", UserIDKey: ContextUserIDKey, TokenKey: ContextTokenKey}
	}
	out := *o
	if out.HeaderKey == "" {
		out.HeaderKey = "Authorization"
	}
	if out.QueryKey == "" {
		out.QueryKey = "token"
	}
	if out.UserIDKey == "" {
		out.UserIDKey = ContextUserIDKey
	}
	if out.TokenKey == "" {
		out.TokenKey = ContextTokenKey
	}
	return out
}

func extractToken(c *gin.Context, cfg AuthOptions) string {
	ah := strings.TrimSpace(c.GetHeader(cfg.HeaderKey))
	if ah != "" {
		parts := strings.SplitN(ah, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	return strings.TrimSpace(c.Query(cfg.QueryKey))
}

// GinAuthMiddleware 必登录中间件：
// - 优先从 Authorization: Bearer <token> 读取
// - 其次从 query 参数读取（默认 token=xxx）
// - 校验 token -> userID（Redis）成功后写入 gin.Context
//
// 评分/评论/删除等所有写操作路由必须挂这个中间件，
// 未登录在这里就被拦下，不会产生任何存储调用。
func GinAuthMiddleware(auth *service.AuthService, opt *AuthOptions) gin.HandlerFunc {
	cfg := opt.withDefaults()

	return func(c *gin.Context) {
		if auth == nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
				Code: response.CodeInternalError,
				Msg:  "auth service is nil",
			})
			return
		}

		token := extractToken(c, cfg)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Response{
				Code: response.CodeTokenInvalid,
				Msg:  "请先登录",
			})
			return
		}

		uid, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Response{
				Code: response.CodeTokenInvalid,
				Msg:  err.Error(),
			})
			return
		}

		c.Set(cfg.UserIDKey, uid)
		c.Set(cfg.TokenKey, token)
		c.Next()
	}
}

// GinOptionalAuth 可选登录：带了有效 token 就写入 user_id，没带照常放行。
// 歌曲详情这类公开读接口用它，登录用户能看到自己的评分历史。
func GinOptionalAuth(auth *service.AuthService, opt *AuthOptions) gin.HandlerFunc {
	cfg := opt.withDefaults()

	return func(c *gin.Context) {
		if auth == nil {
			c.Next()
			return
		}
		token := extractToken(c, cfg)
		if token != "" {
			if uid, err := auth.Authenticate(c.Request.Context(), token); err == nil {
				c.Set(cfg.UserIDKey, uid)
				c.Set(cfg.TokenKey, token)
			}
		}
		c.Next()
	}
}

// GinAdminMiddleware 管理员中间件，挂在 GinAuthMiddleware 之后。
// isAdmin 由上层注入（通常是 ProfileService.IsAdmin），避免 middleware 依赖 DB。
func GinAdminMiddleware(isAdmin func(userID uint64) (bool, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, exists := c.Get(ContextUserIDKey)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Response{
				Code: response.CodeTokenInvalid,
				Msg:  "请先登录",
			})
			return
		}
		ok, err := isAdmin(uid.(uint64))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
				Code: response.CodeInternalError,
				Msg:  err.Error(),
			})
			return
		}
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, response.Response{
				Code: response.CodePermissionDeny,
				Msg:  "需要管理员权限",
			})
			return
		}
		c.Next()
	}
}
