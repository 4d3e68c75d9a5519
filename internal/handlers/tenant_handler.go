package handlers

import (
	"qrmenu/internal/services"
	"qrmenu/pkg/response"

	"github.com/gin-gonic/gin"
)

type TenantHandler struct {
	service *services.TenantService
}

func NewTenantHandler(service *services.TenantService) *TenantHandler {
	return &TenantHandler{service: service}
}

// GetCurrent 获取当前租户资料
func (h *TenantHandler) GetCurrent(c *gin.Context) {
	tenant, err := h.service.GetByID(currentTenantID(c))
	if err != nil {
		response.ServerError(c, "查询失败")
		return
	}

	response.Success(c, tenant)
}

// UpdateCurrent 更新当前租户资料，仅owner可操作（路由层限制角色）
func (h *TenantHandler) UpdateCurrent(c *gin.Context) {
	var input services.UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	tenant, err := h.service.UpdateProfile(currentTenantID(c), &input)
	if err != nil {
		response.ServerError(c, "更新失败")
		return
	}

	response.Success(c, tenant)
}
