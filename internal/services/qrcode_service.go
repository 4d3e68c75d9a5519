package services

import (
	"qrmenu/internal/models"
	"qrmenu/pkg/pagination"
	"qrmenu/pkg/qrcode"

	"gorm.io/gorm"
)

type QRCodeService struct {
	db        *gorm.DB
	generator qrcode.Generator
}

func NewQRCodeService(db *gorm.DB, generator qrcode.Generator) *QRCodeService {
	return &QRCodeService{
		db:        db,
		generator: generator,
	}
}

// List 获取租户的二维码列表
func (s *QRCodeService) List(tenantID uint, params *pagination.PageParams) ([]models.QRCode, int64, error) {
	var codes []models.QRCode
	var total int64

	query := s.db.Model(&models.QRCode{}).Where("tenant_id = ?", tenantID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Location").Order("id").
		Offset(params.GetOffset()).Limit(params.GetLimit()).
		Find(&codes).Error
	if err != nil {
		return nil, 0, err
	}

	for i := range codes {
		fillQRCodeLocationName(&codes[i])
	}
	return codes, total, nil
}

// GetByID 获取租户内的单个二维码
func (s *QRCodeService) GetByID(tenantID, id uint) (*models.QRCode, error) {
	var code models.QRCode
	err := s.db.Preload("Location").Where("tenant_id = ?", tenantID).First(&code, id).Error
	if err != nil {
		return nil, err
	}
	fillQRCodeLocationName(&code)
	return &code, nil
}

// Create 创建二维码，qr_code_url由服务端根据目标URL生成
func (s *QRCodeService) Create(tenantID uint, code *models.QRCode) error {
	if code.LocationID != nil {
		var location models.Location
		if err := s.db.Where("tenant_id = ?", tenantID).
			First(&location, *code.LocationID).Error; err != nil {
			return err
		}
	}

	code.TenantID = tenantID
	code.QRCodeURL = s.generator.GenerateURL(code.URL)
	return s.db.Create(code).Error
}

// UpdateQRCodeInput 二维码更新参数
type UpdateQRCodeInput struct {
	Name       *string `json:"name"`
	URL        *string `json:"url" binding:"omitempty,url"`
	LocationID *uint   `json:"location_id"`
}

// Update 更新租户内二维码，目标URL变化时重新生成图片URL
func (s *QRCodeService) Update(tenantID, id uint, input *UpdateQRCodeInput) (*models.QRCode, error) {
	var code models.QRCode
	if err := s.db.Where("tenant_id = ?", tenantID).First(&code, id).Error; err != nil {
		return nil, err
	}

	if input.LocationID != nil {
		var location models.Location
		if err := s.db.Where("tenant_id = ?", tenantID).
			First(&location, *input.LocationID).Error; err != nil {
			return nil, err
		}
		code.LocationID = input.LocationID
	}
	if input.Name != nil {
		code.Name = *input.Name
	}
	if input.URL != nil && *input.URL != code.URL {
		code.URL = *input.URL
		code.QRCodeURL = s.generator.GenerateURL(code.URL)
	}

	if err := s.db.Save(&code).Error; err != nil {
		return nil, err
	}

	if err := s.db.Preload("Location").First(&code, code.ID).Error; err != nil {
		return nil, err
	}
	fillQRCodeLocationName(&code)
	return &code, nil
}

// Delete 删除租户内二维码
func (s *QRCodeService) Delete(tenantID, id uint) error {
	result := s.db.Where("tenant_id = ?", tenantID).Delete(&models.QRCode{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// fillQRCodeLocationName 填充门店名称展示字段
func fillQRCodeLocationName(code *models.QRCode) {
	if code.Location != nil {
		code.LocationName = code.Location.Name
	}
}
