package daily_music

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gongcheng0311-dotcom/daily-music/response"
	"github.com/gongcheng0311-dotcom/daily-music/service"
)

// -------------------- 用户（User）相关接口 --------------------

// GinHandleUserRegister 用户注册
// @Summary 注册
// @Description 邮箱 + 密码（至少 6 位），展示名可选
// @Tags 用户
// @Accept json
// @Produce json
// @Param req body service.RegisterReq true "注册信息（email, password, display_name 可选）"
// @Success 200 {object} response.Response{data=service.UserDTO} "注册成功"
// @Failure 400 {object} response.Response "参数错误"
// @Router /user/register [post]
func (e *MusicEngine) GinHandleUserRegister(ctx *gin.Context) {
	var req service.RegisterReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, response.Error(response.CodeParamError, err.Error()))
		return
	}

	dto, err := e.UserService.Register(ctx.Request.Context(), req)
	if err != nil {
		ctx.JSON(http.StatusOK, response.Error(bizCode(err), err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, response.Success(dto, "注册成功"))
}

// GinHandleUserLogin 用户登录
// @Summary 登录
// @Description 邮箱 + 密码登录，成功返回 token；同时触发 signed_in 会话事件
// @Tags 用户
// @Accept json
// @Produce json
// @Param req body service.LoginReq true "登录信息（email, password）"
// @Success 200 {object} response.Response{data=service.LoginResp} "登录成功"
// @Failure 401 {object} response.Response "邮箱或密码错误"
// @Router /user/login [post]
func (e *MusicEngine) GinHandleUserLogin(ctx *gin.Context) {
	var req service.LoginReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, response.Error(response.CodeParamError, err.Error()))
		return
	}

	resp, err := e.UserService.Login(ctx.Request.Context(), req)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, response.Error(response.CodePasswordError, err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, response.Success(resp))
}

// GinHandleUserLogout 登出
// @Summary 登出
// @Description 注销当前 token；触发 signed_out 会话事件
// @Tags 用户
// @Accept json
// @Produce json
// @Success 200 {object} response.Response "登出成功"
// @Failure 401 {object} response.Response "未登录"
// @Security BearerAuth
// @Router /user/logout [post]
func (e *MusicEngine) GinHandleUserLogout(ctx *gin.Context) {
	uid, exists := ctx.Get("user_id")
	if !exists {
		ctx.JSON(http.StatusUnauthorized, response.Error(response.CodeTokenInvalid, "未登录"))
		return
	}
	token, _ := ctx.Get("token")
	tokenStr, _ := token.(string)

	if err := e.UserService.Logout(ctx.Request.Context(), tokenStr, uid.(uint64)); err != nil {
		ctx.JSON(http.StatusOK, response.Error(response.CodeInternalError, err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, response.Success(nil, "已登出"))
}

// GinHandleGetUserInfo 当前用户信息
// @Summary 当前用户信息
// @Description 返回账号 + 展示资料
// @Tags 用户
// @Accept json
// @Produce json
// @Success 200 {object} response.Response{data=service.UserDTO} "用户信息"
// @Failure 401 {object} response.Response "未登录"
// @Security BearerAuth
// @Router /user/info [get]
func (e *MusicEngine) GinHandleGetUserInfo(ctx *gin.Context) {
	uid, exists := ctx.Get("user_id")
	if !exists {
		ctx.JSON(http.StatusUnauthorized, response.Error(response.CodeTokenInvalid, "未登录"))
		return
	}

	dto, err := e.UserService.GetUser(uid.(uint64))
	if err != nil {
		ctx.JSON(http.StatusOK, response.Error(response.CodeUserNotFound, err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, response.Success(dto))
}

type UpdateDisplayNameReq struct {
	DisplayName string `json:"display_name" binding:"required"`
}

// GinHandleUpdateDisplayName 修改展示名
// @Summary 修改展示名
// @Tags 用户
// @Accept json
// @Produce json
// @Param req body UpdateDisplayNameReq true "新展示名"
// @Success 200 {object} response.Response "修改成功"
// @Failure 401 {object} response.Response "未登录"
// @Security BearerAuth
// @Router /user/display_name [post]
func (e *MusicEngine) GinHandleUpdateDisplayName(ctx *gin.Context) {
	var req UpdateDisplayNameReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, response.Error(response.CodeParamError, err.Error()))
		return
	}

	uid, exists := ctx.Get("user_id")
	if !exists {
		ctx.JSON(http.StatusUnauthorized, response.Error(response.CodeTokenInvalid, "未登录"))
		return
	}

	if err := e.ProfileService.UpdateDisplayName(uid.(uint64), req.DisplayName); err != nil {
		ctx.JSON(http.StatusOK, response.Error(bizCode(err), err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, response.Success(nil, "展示名已更新"))
}
