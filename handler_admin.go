package daily_music

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gongcheng0311-dotcom/daily-music/response"
	"github.com/gongcheng0311-dotcom/daily-music/service"
)

// -------------------- 管理（Admin）相关接口 --------------------
// 路由必须依次挂 GinAuthMiddleware + GinAdminMiddleware。

// GinHandleCreateSong 录入每日歌曲
// @Summary 新增每日歌曲
// @Description 一天至多一首，重复日期拒绝；封面相对路径会补上配置的前缀
// @Tags 管理
// @Accept json
// @Produce json
// @Param req body service.CreateSongReq true "歌曲信息"
// @Success 200 {object} response.Response{data=service.SongDTO} "创建成功"
// @Failure 400 {object} response.Response "参数错误"
// @Failure 403 {object} response.Response "需要管理员权限"
// @Security BearerAuth
// @Router /admin/song/create [post]
func (e *MusicEngine) GinHandleCreateSong(ctx *gin.Context) {
	var req service.CreateSongReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, response.Error(response.CodeParamError, err.Error()))
		return
	}
	req.CoverURL = e.NormalizeCoverURL(req.CoverURL)

	dto, err := e.SongService.CreateSong(req)
	if err != nil {
		ctx.JSON(http.StatusOK, response.Error(bizCode(err), err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, response.Success(dto, "已录入"))
}

// GinHandleUpdateSong 修正歌曲展示字段
// @Summary 修改歌曲
// @Description 日期是自然键不可改，其余展示字段按需更新
// @Tags 管理
// @Accept json
// @Produce json
// @Param song_id query uint64 true "歌曲ID"
// @Param req body service.UpdateSongReq true "要更新的字段"
// @Success 200 {object} response.Response "修改成功"
// @Failure 400 {object} response.Response "参数错误"
// @Failure 403 {object} response.Response "需要管理员权限"
// @Security BearerAuth
// @Router /admin/song/update [post]
func (e *MusicEngine) GinHandleUpdateSong(ctx *gin.Context) {
	songID, err := strconv.ParseUint(ctx.Query("song_id"), 10, 64)
	if err != nil || songID == 0 {
		ctx.JSON(http.StatusBadRequest, response.Error(response.CodeParamError, "invalid song_id"))
		return
	}

	var req service.UpdateSongReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, response.Error(response.CodeParamError, err.Error()))
		return
	}
	if req.CoverURL != nil {
		normalized := e.NormalizeCoverURL(*req.CoverURL)
		req.CoverURL = &normalized
	}

	if err := e.SongService.UpdateSong(songID, req); err != nil {
		ctx.JSON(http.StatusOK, response.Error(response.CodeInternalError, err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, response.Success(nil, "已更新"))
}
