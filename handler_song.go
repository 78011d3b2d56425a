package daily_music

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gongcheng0311-dotcom/daily-music/response"
	"github.com/gongcheng0311-dotcom/daily-music/service"
)

// -------------------- 歌曲（Song）相关接口 --------------------

// GinHandleSongOfDay 首页：今日推荐
// @Summary 今日推荐
// @Description 返回今天的歌；今天没有则回退到最新一首；整表为空返回 data=null（空态由前端渲染）
// @Tags 歌曲
// @Accept json
// @Produce json
// @Success 200 {object} response.Response{data=service.SongDTO} "今日/最新歌曲，可能为 null"
// @Failure 500 {object} response.Response "服务器错误"
// @Router /song/today [get]
func (e *MusicEngine) GinHandleSongOfDay(ctx *gin.Context) {
	today := service.Today()
	dto, err := e.SongService.GetSongOfDay(today)
	if err != nil {
		ctx.JSON(http.StatusOK, response.Error(response.CodeInternalError, err.Error()))
		return
	}
	// dto 为 nil 时照常返回成功，data 为 null
	ctx.JSON(http.StatusOK, response.Success(dto))
}

// GinHandleSongByDate 歌曲详情
// @Summary 按日期查歌曲
// @Description 精确按 YYYY-MM-DD 查询；查不到返回业务码 10006
// @Tags 歌曲
// @Accept json
// @Produce json
// @Param date query string true "日期 YYYY-MM-DD"
// @Success 200 {object} response.Response{data=service.SongDTO} "歌曲详情"
// @Failure 400 {object} response.Response "日期格式错误"
// @Router /song/detail [get]
func (e *MusicEngine) GinHandleSongByDate(ctx *gin.Context) {
	date := ctx.Query("date")
	if err := service.ValidateDate(date); err != nil {
		ctx.JSON(http.StatusBadRequest, response.Error(response.CodeParamError, err.Error()))
		return
	}
	dto, err := e.SongService.GetSongByDate(date)
	if err != nil {
		ctx.JSON(http.StatusOK, response.Error(response.CodeInternalError, err.Error()))
		return
	}
	if dto == nil {
		ctx.JSON(http.StatusOK, response.Error(response.CodeSongNotFound, "该日期没有歌曲"))
		return
	}
	ctx.JSON(http.StatusOK, response.Success(dto))
}

// GinHandleSongHistory 历史列表
// @Summary 历史歌曲列表
// @Description 按日期倒序的摘要列表，exclude 参数用于排除当前展示的那天
// @Tags 歌曲
// @Accept json
// @Produce json
// @Param exclude query string false "要排除的日期 YYYY-MM-DD"
// @Success 200 {object} response.Response{data=[]models.SongSummary} "历史列表"
// @Router /song/history [get]
func (e *MusicEngine) GinHandleSongHistory(ctx *gin.Context) {
	list, err := e.SongService.ListHistory(ctx.Query("exclude"))
	if err != nil {
		ctx.JSON(http.StatusOK, response.Error(response.CodeInternalError, err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, response.Success(list))
}
