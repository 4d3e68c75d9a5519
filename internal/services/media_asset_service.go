package services

import (
	"fmt"

	"qrmenu/internal/models"
	"qrmenu/pkg/pagination"

	"gorm.io/gorm"
)

type MediaAssetService struct {
	db *gorm.DB
}

func NewMediaAssetService(db *gorm.DB) *MediaAssetService {
	return &MediaAssetService{db: db}
}

// List 获取租户的媒体资源列表，支持按类型过滤
func (s *MediaAssetService) List(tenantID uint, mediaType string, params *pagination.PageParams) ([]models.MediaAsset, int64, error) {
	var assets []models.MediaAsset
	var total int64

	query := s.db.Model(&models.MediaAsset{}).Where("tenant_id = ?", tenantID)
	if mediaType != "" {
		query = query.Where("type = ?", mediaType)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("id DESC").
		Offset(params.GetOffset()).Limit(params.GetLimit()).
		Find(&assets).Error
	return assets, total, err
}

// GetByID 获取租户内的单个媒体资源
func (s *MediaAssetService) GetByID(tenantID, id uint) (*models.MediaAsset, error) {
	var asset models.MediaAsset
	err := s.db.Where("tenant_id = ?", tenantID).First(&asset, id).Error
	return &asset, err
}

// Create 创建媒体资源记录，文件内容由外部存储负责
func (s *MediaAssetService) Create(tenantID uint, asset *models.MediaAsset) error {
	switch asset.Type {
	case models.MediaTypeImage, models.MediaTypeVideo, models.MediaTypeAudio:
	default:
		return fmt.Errorf("不支持的媒体类型: %s", asset.Type)
	}

	asset.TenantID = tenantID
	return s.db.Create(asset).Error
}

// UpdateMediaAssetInput 媒体资源更新参数
type UpdateMediaAssetInput struct {
	OriginalURL     *string `json:"original_url"`
	HLSURL          *string `json:"hls_url"`
	PosterURL       *string `json:"poster_url"`
	ThumbnailURL    *string `json:"thumbnail_url"`
	FileSize        *int64  `json:"file_size"`
	DurationSeconds *int    `json:"duration_seconds"`
	Width           *int    `json:"width"`
	Height          *int    `json:"height"`
}

// Update 更新租户内媒体资源
func (s *MediaAssetService) Update(tenantID, id uint, input *UpdateMediaAssetInput) (*models.MediaAsset, error) {
	var asset models.MediaAsset
	if err := s.db.Where("tenant_id = ?", tenantID).First(&asset, id).Error; err != nil {
		return nil, err
	}

	if input.OriginalURL != nil {
		asset.OriginalURL = *input.OriginalURL
	}
	if input.HLSURL != nil {
		asset.HLSURL = *input.HLSURL
	}
	if input.PosterURL != nil {
		asset.PosterURL = *input.PosterURL
	}
	if input.ThumbnailURL != nil {
		asset.ThumbnailURL = *input.ThumbnailURL
	}
	if input.FileSize != nil {
		asset.FileSize = input.FileSize
	}
	if input.DurationSeconds != nil {
		asset.DurationSeconds = input.DurationSeconds
	}
	if input.Width != nil {
		asset.Width = input.Width
	}
	if input.Height != nil {
		asset.Height = input.Height
	}

	if err := s.db.Save(&asset).Error; err != nil {
		return nil, err
	}
	return &asset, nil
}

// Delete 删除媒体资源及其菜品绑定
func (s *MediaAssetService) Delete(tenantID, id uint) error {
	var asset models.MediaAsset
	if err := s.db.Where("tenant_id = ?", tenantID).First(&asset, id).Error; err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("media_id = ?", id).Delete(&models.ItemMedia{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.MediaAsset{}, id).Error
	})
}
