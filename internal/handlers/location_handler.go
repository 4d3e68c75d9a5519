package handlers

import (
	"errors"

	"qrmenu/internal/models"
	"qrmenu/internal/services"
	"qrmenu/pkg/pagination"
	"qrmenu/pkg/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type LocationHandler struct {
	service *services.LocationService
}

func NewLocationHandler(service *services.LocationService) *LocationHandler {
	return &LocationHandler{service: service}
}

// CreateLocationRequest 创建门店请求
type CreateLocationRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	Email       string `json:"email" binding:"omitempty,email"`
	Capacity    *int   `json:"capacity" binding:"omitempty,min=0"`
	IsActive    *bool  `json:"is_active"`
}

// List 门店列表
func (h *LocationHandler) List(c *gin.Context) {
	tenantID := currentTenantID(c)
	pageParams := pagination.ParsePageParams(c)

	locations, total, err := h.service.List(tenantID, pageParams)
	if err != nil {
		response.ServerError(c, "查询失败")
		return
	}

	pageInfo := pagination.NewPageInfo(pageParams.Page, pageParams.PageSize, total)
	response.SuccessWithPage(c, locations, pageInfo)
}

// GetByID 门店详情
func (h *LocationHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "ID格式错误")
		return
	}

	location, err := h.service.GetByID(currentTenantID(c), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "门店不存在")
			return
		}
		response.ServerError(c, "查询失败")
		return
	}

	response.Success(c, location)
}

// Create 创建门店
func (h *LocationHandler) Create(c *gin.Context) {
	var req CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	location := &models.Location{
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		Phone:       req.Phone,
		Email:       req.Email,
		Capacity:    req.Capacity,
		IsActive:    true,
	}
	if req.IsActive != nil {
		location.IsActive = *req.IsActive
	}

	if err := h.service.Create(currentTenantID(c), location); err != nil {
		response.ServerError(c, "创建门店失败")
		return
	}

	response.Success(c, location)
}

// Update 更新门店
func (h *LocationHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "ID格式错误")
		return
	}

	var input services.UpdateLocationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	location, err := h.service.Update(currentTenantID(c), id, &input)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "门店不存在")
			return
		}
		response.ServerError(c, "更新失败")
		return
	}

	response.Success(c, location)
}

// Delete 删除门店
func (h *LocationHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "ID格式错误")
		return
	}

	if err := h.service.Delete(currentTenantID(c), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "门店不存在")
			return
		}
		response.ServerError(c, "删除失败")
		return
	}

	response.Success(c, nil)
}
