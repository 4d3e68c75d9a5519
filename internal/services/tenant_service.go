package services

import (
	"errors"

	"qrmenu/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ErrTenantNotFound 租户不存在或未激活
// 游客端对"不存在"和"已停用/已封禁"返回同样的错误，避免暴露租户存在性
var ErrTenantNotFound = errors.New("租户不存在")

type TenantService struct {
	db *gorm.DB
}

func NewTenantService(db *gorm.DB) *TenantService {
	return &TenantService{db: db}
}

// GetByID 根据ID获取租户
func (s *TenantService) GetByID(id uint) (*models.Tenant, error) {
	var tenant models.Tenant
	err := s.db.First(&tenant, id).Error
	return &tenant, err
}

// GetActiveBySlug 根据slug获取激活状态的租户
func (s *TenantService) GetActiveBySlug(slug string) (*models.Tenant, error) {
	var tenant models.Tenant
	err := s.db.Where("slug = ? AND status = ?", slug, models.TenantStatusActive).
		First(&tenant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTenantNotFound
		}
		return nil, err
	}
	return &tenant, nil
}

// UpdateProfileInput 租户资料更新参数
type UpdateProfileInput struct {
	Name        *string         `json:"name"`
	Description *string         `json:"description"`
	LogoURL     *string         `json:"logo_url"`
	Website     *string         `json:"website"`
	Phone       *string         `json:"phone"`
	Email       *string         `json:"email"`
	Address     *string         `json:"address"`
	Timezone    *string         `json:"timezone"`
	Currency    *string         `json:"currency" binding:"omitempty,len=3"`
	Language    *string         `json:"language"`
	ThemeJSON   *datatypes.JSON `json:"theme_json"`
}

// UpdateProfile 更新当前租户资料（部分更新，nil字段不修改）
func (s *TenantService) UpdateProfile(tenantID uint, input *UpdateProfileInput) (*models.Tenant, error) {
	var tenant models.Tenant
	if err := s.db.First(&tenant, tenantID).Error; err != nil {
		return nil, err
	}

	if input.Name != nil {
		tenant.Name = *input.Name
	}
	if input.Description != nil {
		tenant.Description = *input.Description
	}
	if input.LogoURL != nil {
		tenant.LogoURL = *input.LogoURL
	}
	if input.Website != nil {
		tenant.Website = *input.Website
	}
	if input.Phone != nil {
		tenant.Phone = *input.Phone
	}
	if input.Email != nil {
		tenant.Email = *input.Email
	}
	if input.Address != nil {
		tenant.Address = *input.Address
	}
	if input.Timezone != nil {
		tenant.Timezone = *input.Timezone
	}
	if input.Currency != nil {
		tenant.Currency = *input.Currency
	}
	if input.Language != nil {
		tenant.Language = *input.Language
	}
	if input.ThemeJSON != nil {
		tenant.ThemeJSON = *input.ThemeJSON
	}

	if err := s.db.Save(&tenant).Error; err != nil {
		return nil, err
	}
	return &tenant, nil
}
