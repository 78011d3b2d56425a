package daily_music

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gongcheng0311-dotcom/daily-music/response"
)

// -------------------- 评论（Comment）相关接口 --------------------

// GinHandleListComments 评论列表
// @Summary 歌曲评论列表
// @Description 某首歌的全部评论（时间倒序），已左连展示资料
// @Tags 评论
// @Accept json
// @Produce json
// @Param song_id query uint64 true "歌曲ID"
// @Success 200 {object} response.Response{data=[]service.CommentDTO} "评论列表"
// @Failure 400 {object} response.Response "参数错误"
// @Router /comment/list [get]
func (e *MusicEngine) GinHandleListComments(ctx *gin.Context) {
	songID, err := strconv.ParseUint(ctx.Query("song_id"), 10, 64)
	if err != nil || songID == 0 {
		ctx.JSON(http.StatusBadRequest, response.Error(response.CodeParamError, "invalid song_id"))
		return
	}

	list, err := e.CommentService.ListComments(songID)
	if err != nil {
		ctx.JSON(http.StatusOK, response.Error(response.CodeInternalError, err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, response.Success(list))
}

type AddCommentReq struct {
	SongID  uint64 `json:"song_id" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// GinHandleAddComment 发表评论
// @Summary 发表评论
// @Description 内容 trim 后 1-500 字；越界在本地拒绝，不产生存储调用
// @Tags 评论
// @Accept json
// @Produce json
// @Param req body AddCommentReq true "评论内容（song_id, content）"
// @Success 200 {object} response.Response{data=service.CommentDTO} "创建成功"
// @Failure 400 {object} response.Response "参数错误"
// @Failure 401 {object} response.Response "未登录"
// @Security BearerAuth
// @Router /comment/create [post]
func (e *MusicEngine) GinHandleAddComment(ctx *gin.Context) {
	var req AddCommentReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, response.Error(response.CodeParamError, err.Error()))
		return
	}

	uid, exists := ctx.Get("user_id")
	if !exists {
		ctx.JSON(http.StatusUnauthorized, response.Error(response.CodeTokenInvalid, "请先登录后再评论"))
		return
	}

	dto, err := e.CommentService.AddComment(req.SongID, uid.(uint64), req.Content)
	if err != nil {
		ctx.JSON(http.StatusOK, response.Error(bizCode(err), err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, response.Success(dto))
}

type DeleteCommentReq struct {
	SongID    uint64 `json:"song_id"`
	CommentID uint64 `json:"comment_id" binding:"required"`
}

// GinHandleDeleteComment 删除自己的评论
// @Summary 删除评论
// @Description 所有权语义同评分删除：user_id 谓词在 SQL 里兜底
// @Tags 评论
// @Accept json
// @Produce json
// @Param req body DeleteCommentReq true "要删除的评论（song_id, comment_id）"
// @Success 200 {object} response.Response "删除成功"
// @Failure 401 {object} response.Response "未登录"
// @Security BearerAuth
// @Router /comment/delete [post]
func (e *MusicEngine) GinHandleDeleteComment(ctx *gin.Context) {
	var req DeleteCommentReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, response.Error(response.CodeParamError, err.Error()))
		return
	}

	uid, exists := ctx.Get("user_id")
	if !exists {
		ctx.JSON(http.StatusUnauthorized, response.Error(response.CodeTokenInvalid, "请先登录"))
		return
	}

	if err := e.CommentService.DeleteComment(req.SongID, req.CommentID, uid.(uint64)); err != nil {
		ctx.JSON(http.StatusOK, response.Error(bizCode(err), err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, response.Success(map[string]interface{}{
		"message": "评论已删除",
	}))
}
