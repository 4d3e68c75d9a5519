package handlers

import (
	"errors"
	"strings"

	"qrmenu/internal/models"
	"qrmenu/internal/services"
	"qrmenu/pkg/pagination"
	"qrmenu/pkg/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type MediaAssetHandler struct {
	service *services.MediaAssetService
}

func NewMediaAssetHandler(service *services.MediaAssetService) *MediaAssetHandler {
	return &MediaAssetHandler{service: service}
}

// CreateMediaAssetRequest 创建媒体资源请求
type CreateMediaAssetRequest struct {
	Type            string `json:"type" binding:"required,mediatype"`
	OriginalURL     string `json:"original_url" binding:"required,url"`
	HLSURL          string `json:"hls_url" binding:"omitempty,url"`
	PosterURL       string `json:"poster_url" binding:"omitempty,url"`
	ThumbnailURL    string `json:"thumbnail_url" binding:"omitempty,url"`
	FileSize        *int64 `json:"file_size" binding:"omitempty,min=0"`
	DurationSeconds *int   `json:"duration_seconds" binding:"omitempty,min=0"`
	Width           *int   `json:"width" binding:"omitempty,min=0"`
	Height          *int   `json:"height" binding:"omitempty,min=0"`
}

// List 媒体资源列表，支持?type=过滤
func (h *MediaAssetHandler) List(c *gin.Context) {
	tenantID := currentTenantID(c)
	pageParams := pagination.ParsePageParams(c)
	mediaType := c.Query("type")

	assets, total, err := h.service.List(tenantID, mediaType, pageParams)
	if err != nil {
		response.ServerError(c, "查询失败")
		return
	}

	pageInfo := pagination.NewPageInfo(pageParams.Page, pageParams.PageSize, total)
	response.SuccessWithPage(c, assets, pageInfo)
}

// GetByID 媒体资源详情
func (h *MediaAssetHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "ID格式错误")
		return
	}

	asset, err := h.service.GetByID(currentTenantID(c), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "媒体资源不存在")
			return
		}
		response.ServerError(c, "查询失败")
		return
	}

	response.Success(c, asset)
}

// Create 创建媒体资源记录
func (h *MediaAssetHandler) Create(c *gin.Context) {
	var req CreateMediaAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	asset := &models.MediaAsset{
		Type:            req.Type,
		OriginalURL:     req.OriginalURL,
		HLSURL:          req.HLSURL,
		PosterURL:       req.PosterURL,
		ThumbnailURL:    req.ThumbnailURL,
		FileSize:        req.FileSize,
		DurationSeconds: req.DurationSeconds,
		Width:           req.Width,
		Height:          req.Height,
	}

	if err := h.service.Create(currentTenantID(c), asset); err != nil {
		if strings.Contains(err.Error(), "不支持的媒体类型") {
			response.BadRequest(c, err.Error())
			return
		}
		response.ServerError(c, "创建媒体资源失败")
		return
	}

	response.Success(c, asset)
}

// Update 更新媒体资源
func (h *MediaAssetHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "ID格式错误")
		return
	}

	var input services.UpdateMediaAssetInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	asset, err := h.service.Update(currentTenantID(c), id, &input)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "媒体资源不存在")
			return
		}
		response.ServerError(c, "更新失败")
		return
	}

	response.Success(c, asset)
}

// Delete 删除媒体资源及其菜品绑定
func (h *MediaAssetHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "ID格式错误")
		return
	}

	if err := h.service.Delete(currentTenantID(c), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "媒体资源不存在")
			return
		}
		response.ServerError(c, "删除失败")
		return
	}

	response.Success(c, nil)
}
