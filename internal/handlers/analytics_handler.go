package handlers

import (
	"net/http"

	"qrmenu/internal/services"
	"qrmenu/pkg/response"

	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	service *services.AnalyticsService
}

func NewAnalyticsHandler(service *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

// Stats 仪表盘统计，支持?period=7d|30d|90d
func (h *AnalyticsHandler) Stats(c *gin.Context) {
	period := c.DefaultQuery("period", "7d")

	stats, err := h.service.Stats(currentTenantID(c), period)
	if err != nil {
		response.ServerError(c, "统计查询失败")
		return
	}

	response.Success(c, stats)
}

// Track 记录埋点事件
func (h *AnalyticsHandler) Track(c *gin.Context) {
	var input services.TrackInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.PublicError(c, 400, "请求参数错误")
		return
	}

	event, err := h.service.Track(currentTenantID(c), &input)
	if err != nil {
		response.PublicError(c, 500, "事件记录失败")
		return
	}

	// event_id放在顶层，和游客端约定的返回体一致
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"event_id": event.ID,
	})
}
