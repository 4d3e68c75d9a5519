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

type CategoryHandler struct {
	service *services.CategoryService
}

func NewCategoryHandler(service *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: service}
}

// CreateCategoryRequest 创建分类请求
type CreateCategoryRequest struct {
	Name   string `json:"name" binding:"required"`
	MenuID uint   `json:"menu_id" binding:"required"`
	Sort   uint   `json:"sort"`
}

// List 分类列表，支持?menu=和?location=过滤
func (h *CategoryHandler) List(c *gin.Context) {
	tenantID := currentTenantID(c)
	pageParams := pagination.ParsePageParams(c)

	var filter services.CategoryListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "过滤参数错误")
		return
	}

	categories, total, err := h.service.List(tenantID, &filter, pageParams)
	if err != nil {
		response.ServerError(c, "查询失败")
		return
	}

	pageInfo := pagination.NewPageInfo(pageParams.Page, pageParams.PageSize, total)
	response.SuccessWithPage(c, categories, pageInfo)
}

// GetByID 分类详情
func (h *CategoryHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "ID格式错误")
		return
	}

	category, err := h.service.GetByID(currentTenantID(c), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "分类不存在")
			return
		}
		response.ServerError(c, "查询失败")
		return
	}

	response.Success(c, category)
}

// Create 创建分类
func (h *CategoryHandler) Create(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	category := &models.Category{
		Name:   req.Name,
		MenuID: req.MenuID,
		Sort:   req.Sort,
	}

	if err := h.service.Create(currentTenantID(c), category); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "菜单不存在")
			return
		}
		response.ServerError(c, "创建分类失败")
		return
	}

	response.Success(c, category)
}

// Update 更新分类
func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "ID格式错误")
		return
	}

	var input services.UpdateCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	category, err := h.service.Update(currentTenantID(c), id, &input)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "分类或菜单不存在")
			return
		}
		response.ServerError(c, "更新失败")
		return
	}

	response.Success(c, category)
}

// Delete 删除分类
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "ID格式错误")
		return
	}

	if err := h.service.Delete(currentTenantID(c), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "分类不存在")
			return
		}
		response.ServerError(c, "删除失败")
		return
	}

	response.Success(c, nil)
}
