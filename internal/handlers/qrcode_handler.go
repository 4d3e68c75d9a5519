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

type QRCodeHandler struct {
	service *services.QRCodeService
}

func NewQRCodeHandler(service *services.QRCodeService) *QRCodeHandler {
	return &QRCodeHandler{service: service}
}

// CreateQRCodeRequest 创建二维码请求
type CreateQRCodeRequest struct {
	Name       string `json:"name" binding:"required"`
	URL        string `json:"url" binding:"required,url"`
	LocationID *uint  `json:"location_id"`
}

// List 二维码列表
func (h *QRCodeHandler) List(c *gin.Context) {
	tenantID := currentTenantID(c)
	pageParams := pagination.ParsePageParams(c)

	codes, total, err := h.service.List(tenantID, pageParams)
	if err != nil {
		response.ServerError(c, "查询失败")
		return
	}

	pageInfo := pagination.NewPageInfo(pageParams.Page, pageParams.PageSize, total)
	response.SuccessWithPage(c, codes, pageInfo)
}

// GetByID 二维码详情
func (h *QRCodeHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "ID格式错误")
		return
	}

	code, err := h.service.GetByID(currentTenantID(c), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "二维码不存在")
			return
		}
		response.ServerError(c, "查询失败")
		return
	}

	response.Success(c, code)
}

// Create 创建二维码
func (h *QRCodeHandler) Create(c *gin.Context) {
	var req CreateQRCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	code := &models.QRCode{
		Name:       req.Name,
		URL:        req.URL,
		LocationID: req.LocationID,
	}

	if err := h.service.Create(currentTenantID(c), code); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "门店不存在")
			return
		}
		response.ServerError(c, "创建二维码失败")
		return
	}

	response.Success(c, code)
}

// Update 更新二维码
func (h *QRCodeHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "ID格式错误")
		return
	}

	var input services.UpdateQRCodeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	code, err := h.service.Update(currentTenantID(c), id, &input)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "二维码或门店不存在")
			return
		}
		response.ServerError(c, "更新失败")
		return
	}

	response.Success(c, code)
}

// Delete 删除二维码
func (h *QRCodeHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "ID格式错误")
		return
	}

	if err := h.service.Delete(currentTenantID(c), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "二维码不存在")
			return
		}
		response.ServerError(c, "删除失败")
		return
	}

	response.Success(c, nil)
}
