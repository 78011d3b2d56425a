package daily_music

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gongcheng0311-dotcom/daily-music/response"
	"github.com/gongcheng0311-dotcom/daily-music/service"
)

// -------------------- 评分（Rating）相关接口 --------------------

// bizCode 把 service 层错误映射到业务码：
// 本地校验失败 -> CodeParamError；所有权不匹配 -> CodePermissionDeny；
// 其余按存储失败处理 -> CodeInternalError（错误信息原样透出，不重试）。
func bizCode(err error) int {
	switch {
	case service.IsValidationError(err):
		return response.CodeParamError
	case service.IsOwnershipError(err):
		return response.CodePermissionDeny
	default:
		return response.CodeInternalError
	}
}

// RatingListResp 评分列表 + 聚合统计 + 当前用户自己的评分历史
type RatingListResp struct {
	List  []service.RatingDTO `json:"list"`
	Stats service.RatingStats `json:"stats"`
	Mine  []service.RatingDTO `json:"mine"` // 未登录时为空
}

// GinHandleListRatings 评分列表
// @Summary 歌曲评分列表
// @Description 某首歌的全部评分（时间倒序）+ 人数和平均分；登录用户额外返回自己的评分历史
// @Tags 评分
// @Accept json
// @Produce json
// @Param song_id query uint64 true "歌曲ID"
// @Success 200 {object} response.Response{data=RatingListResp} "评分列表"
// @Failure 400 {object} response.Response "参数错误"
// @Router /rating/list [get]
func (e *MusicEngine) GinHandleListRatings(ctx *gin.Context) {
	songID, err := strconv.ParseUint(ctx.Query("song_id"), 10, 64)
	if err != nil || songID == 0 {
		ctx.JSON(http.StatusBadRequest, response.Error(response.CodeParamError, "invalid song_id"))
		return
	}

	list, stats, err := e.RatingService.ListRatings(songID)
	if err != nil {
		ctx.JSON(http.StatusOK, response.Error(response.CodeInternalError, err.Error()))
		return
	}

	resp := RatingListResp{List: list, Stats: stats, Mine: []service.RatingDTO{}}
	// 可选登录：带了有效 token 就过滤出自己的评分历史
	if uid, exists := ctx.Get("user_id"); exists {
		userID := uid.(uint64)
		for _, dto := range list {
			if dto.UserID == userID {
				resp.Mine = append(resp.Mine, dto)
			}
		}
	}
	ctx.JSON(http.StatusOK, response.Success(resp))
}

type AddRatingReq struct {
	SongID uint64 `json:"song_id" binding:"required"`
	Score  int    `json:"score" binding:"required"`
}

// GinHandleAddRating 打分
// @Summary 给歌曲打分
// @Description 分数 1-10 整数；允许重复打分，每次都是新纪录（保留历史）
// @Tags 评分
// @Accept json
// @Produce json
// @Param req body AddRatingReq true "评分内容（song_id, score）"
// @Success 200 {object} response.Response{data=service.RatingDTO} "创建成功"
// @Failure 400 {object} response.Response "参数错误"
// @Failure 401 {object} response.Response "未登录"
// @Security BearerAuth
// @Router /rating/create [post]
func (e *MusicEngine) GinHandleAddRating(ctx *gin.Context) {
	var req AddRatingReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, response.Error(response.CodeParamError, err.Error()))
		return
	}

	uid, exists := ctx.Get("user_id")
	if !exists {
		ctx.JSON(http.StatusUnauthorized, response.Error(response.CodeTokenInvalid, "请先登录后再评分"))
		return
	}

	dto, err := e.RatingService.AddRating(req.SongID, uid.(uint64), req.Score)
	if err != nil {
		ctx.JSON(http.StatusOK, response.Error(bizCode(err), err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, response.Success(dto))
}

type DeleteRatingReq struct {
	SongID   uint64 `json:"song_id"`
	RatingID uint64 `json:"rating_id" binding:"required"`
}

// GinHandleDeleteRating 删除自己的评分
// @Summary 删除评分
// @Description 只能删自己的；user_id 谓词在 SQL 里兜底，别人的记录不会命中
// @Tags 评分
// @Accept json
// @Produce json
// @Param req body DeleteRatingReq true "要删除的评分（song_id, rating_id）"
// @Success 200 {object} response.Response "删除成功"
// @Failure 401 {object} response.Response "未登录"
// @Security BearerAuth
// @Router /rating/delete [post]
func (e *MusicEngine) GinHandleDeleteRating(ctx *gin.Context) {
	var req DeleteRatingReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, response.Error(response.CodeParamError, err.Error()))
		return
	}

	uid, exists := ctx.Get("user_id")
	if !exists {
		ctx.JSON(http.StatusUnauthorized, response.Error(response.CodeTokenInvalid, "请先登录"))
		return
	}

	if err := e.RatingService.DeleteRating(req.SongID, req.RatingID, uid.(uint64)); err != nil {
		ctx.JSON(http.StatusOK, response.Error(bizCode(err), err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, response.Success(map[string]interface{}{
		"message": "评分已删除",
	}))
}
