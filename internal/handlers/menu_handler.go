package handlers

import (
	"errors"

	"qrmenu/internal/models"
	"qrmenu/internal/services"
	"qrmenu/pkg/pagination"
	"qrmenu/pkg/response"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type MenuHandler struct {
	service *services.MenuService
}

func NewMenuHandler(service *services.MenuService) *MenuHandler {
	return &MenuHandler{service: service}
}

// CreateMenuRequest 创建菜单请求
type CreateMenuRequest struct {
	Name         string         `json:"name" binding:"required"`
	LocationID   uint           `json:"location_id" binding:"required"`
	Active       *bool          `json:"active"`
	ScheduleJSON datatypes.JSON `json:"schedule_json"`
}

// List 菜单列表，支持?location=过滤
func (h *MenuHandler) List(c *gin.Context) {
	tenantID := currentTenantID(c)
	pageParams := pagination.ParsePageParams(c)

	var filter services.MenuListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "过滤参数错误")
		return
	}

	menus, total, err := h.service.List(tenantID, &filter, pageParams)
	if err != nil {
		response.ServerError(c, "查询失败")
		return
	}

	pageInfo := pagination.NewPageInfo(pageParams.Page, pageParams.PageSize, total)
	response.SuccessWithPage(c, menus, pageInfo)
}

// GetByID 菜单详情
func (h *MenuHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "ID格式错误")
		return
	}

	menu, err := h.service.GetByID(currentTenantID(c), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "菜单不存在")
			return
		}
		response.ServerError(c, "查询失败")
		return
	}

	response.Success(c, menu)
}

// Create 创建菜单
func (h *MenuHandler) Create(c *gin.Context) {
	var req CreateMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	menu := &models.Menu{
		Name:         req.Name,
		LocationID:   req.LocationID,
		Active:       true,
		ScheduleJSON: req.ScheduleJSON,
	}
	if req.Active != nil {
		menu.Active = *req.Active
	}

	if err := h.service.Create(currentTenantID(c), menu); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 门店不存在或不属于当前租户
			response.NotFound(c, "门店不存在")
			return
		}
		response.ServerError(c, "创建菜单失败")
		return
	}

	response.Success(c, menu)
}

// Update 更新菜单
func (h *MenuHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "ID格式错误")
		return
	}

	var input services.UpdateMenuInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	menu, err := h.service.Update(currentTenantID(c), id, &input)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "菜单或门店不存在")
			return
		}
		response.ServerError(c, "更新失败")
		return
	}

	response.Success(c, menu)
}

// Delete 删除菜单
func (h *MenuHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "ID格式错误")
		return
	}

	if err := h.service.Delete(currentTenantID(c), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "菜单不存在")
			return
		}
		response.ServerError(c, "删除失败")
		return
	}

	response.Success(c, nil)
}
