package handlers

import (
	"errors"
	"strings"

	"qrmenu/internal/models"
	"qrmenu/internal/services"
	"qrmenu/pkg/pagination"
	"qrmenu/pkg/response"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ItemHandler struct {
	service *services.ItemService
}

func NewItemHandler(service *services.ItemService) *ItemHandler {
	return &ItemHandler{service: service}
}

// CreateItemRequest 创建菜品请求
type CreateItemRequest struct {
	Name            string                `json:"name" binding:"required"`
	Description     string                `json:"description"`
	CategoryID      uint                  `json:"category_id" binding:"required"`
	SKU             string                `json:"sku"`
	Tags            datatypes.JSON        `json:"tags"`
	Allergens       datatypes.JSON        `json:"allergens"`
	NutritionValues datatypes.JSON        `json:"nutrition_values_json"`
	WeightG         *int                  `json:"weight_g" binding:"omitempty,min=0"`
	Kcal            *int                  `json:"kcal" binding:"omitempty,min=0"`
	Sort            uint                  `json:"sort"`
	VisibilityRule  datatypes.JSON        `json:"visibility_rule_json"`
	Prices          []services.PriceInput `json:"prices" binding:"omitempty,dive"`
}

// AttachMediaRequest 绑定媒体请求
type AttachMediaRequest struct {
	MediaID uint   `json:"media_id" binding:"required"`
	Kind    string `json:"kind" binding:"required,mediakind"`
	Sort    uint   `json:"sort"`
}

// List 菜品列表，支持?category=、?menu=、?location=过滤
func (h *ItemHandler) List(c *gin.Context) {
	tenantID := currentTenantID(c)
	pageParams := pagination.ParsePageParams(c)

	var filter services.ItemListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "过滤参数错误")
		return
	}

	items, total, err := h.service.List(tenantID, &filter, pageParams)
	if err != nil {
		response.ServerError(c, "查询失败")
		return
	}

	pageInfo := pagination.NewPageInfo(pageParams.Page, pageParams.PageSize, total)
	response.SuccessWithPage(c, items, pageInfo)
}

// GetByID 菜品详情
func (h *ItemHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "ID格式错误")
		return
	}

	item, err := h.service.GetByID(currentTenantID(c), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "菜品不存在")
			return
		}
		response.ServerError(c, "查询失败")
		return
	}

	response.Success(c, item)
}

// Create 创建菜品
func (h *ItemHandler) Create(c *gin.Context) {
	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	item := &models.Item{
		Name:               req.Name,
		Description:        req.Description,
		CategoryID:         req.CategoryID,
		SKU:                req.SKU,
		Tags:               req.Tags,
		Allergens:          req.Allergens,
		NutritionValues:    req.NutritionValues,
		WeightG:            req.WeightG,
		Kcal:               req.Kcal,
		Sort:               req.Sort,
		VisibilityRuleJSON: req.VisibilityRule,
	}

	if err := h.service.Create(currentTenantID(c), item, req.Prices); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "分类不存在")
			return
		}
		response.ServerError(c, "创建菜品失败")
		return
	}

	created, err := h.service.GetByID(currentTenantID(c), item.ID)
	if err != nil {
		response.ServerError(c, "查询失败")
		return
	}
	response.Success(c, created)
}

// Update 更新菜品
func (h *ItemHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "ID格式错误")
		return
	}

	var input services.UpdateItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	item, err := h.service.Update(currentTenantID(c), id, &input)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "菜品或分类不存在")
			return
		}
		response.ServerError(c, "更新失败")
		return
	}

	response.Success(c, item)
}

// Delete 删除菜品
func (h *ItemHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "ID格式错误")
		return
	}

	if err := h.service.Delete(currentTenantID(c), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "菜品不存在")
			return
		}
		response.ServerError(c, "删除失败")
		return
	}

	response.Success(c, nil)
}

// AddPrice 为菜品追加价格记录
func (h *ItemHandler) AddPrice(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "ID格式错误")
		return
	}

	var input services.PriceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	price, err := h.service.AddPrice(currentTenantID(c), id, &input)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "菜品不存在")
			return
		}
		response.ServerError(c, "添加价格失败")
		return
	}

	response.Success(c, price)
}

// AttachMedia 绑定媒体到菜品
func (h *ItemHandler) AttachMedia(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "ID格式错误")
		return
	}

	var req AttachMediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	itemMedia, err := h.service.AttachMedia(currentTenantID(c), id, req.MediaID, req.Kind, req.Sort)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "菜品或媒体不存在")
			return
		}
		if strings.Contains(err.Error(), "不支持的媒体用途") {
			response.BadRequest(c, err.Error())
			return
		}
		response.ServerError(c, "绑定媒体失败")
		return
	}

	response.Success(c, itemMedia)
}

// DetachMedia 按用途解除菜品的媒体绑定
func (h *ItemHandler) DetachMedia(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "ID格式错误")
		return
	}

	kind := c.Param("kind")
	if err := h.service.DetachMedia(currentTenantID(c), id, kind); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "绑定记录不存在")
			return
		}
		response.ServerError(c, "解绑失败")
		return
	}

	response.Success(c, nil)
}
