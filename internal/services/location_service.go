package services

import (
	"qrmenu/internal/models"
	"qrmenu/pkg/pagination"

	"gorm.io/gorm"
)

type LocationService struct {
	db *gorm.DB
}

func NewLocationService(db *gorm.DB) *LocationService {
	return &LocationService{db: db}
}

// List 获取租户的门店列表
func (s *LocationService) List(tenantID uint, params *pagination.PageParams) ([]models.Location, int64, error) {
	var locations []models.Location
	var total int64

	query := s.db.Model(&models.Location{}).Where("tenant_id = ?", tenantID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("id").
		Offset(params.GetOffset()).Limit(params.GetLimit()).
		Find(&locations).Error
	if err != nil {
		return nil, 0, err
	}

	for i := range locations {
		s.fillMenusCount(&locations[i])
	}
	return locations, total, nil
}

// GetByID 获取租户内的单个门店
func (s *LocationService) GetByID(tenantID, id uint) (*models.Location, error) {
	var location models.Location
	err := s.db.Where("tenant_id = ?", tenantID).First(&location, id).Error
	if err != nil {
		return nil, err
	}
	s.fillMenusCount(&location)
	return &location, nil
}

// Create 创建门店，租户ID始终取调用方租户
func (s *LocationService) Create(tenantID uint, location *models.Location) error {
	location.TenantID = tenantID
	return s.db.Create(location).Error
}

// UpdateLocationInput 门店更新参数
type UpdateLocationInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Address     *string `json:"address"`
	Phone       *string `json:"phone"`
	Email       *string `json:"email"`
	Capacity    *int    `json:"capacity"`
	IsActive    *bool   `json:"is_active"`
}

// Update 更新租户内门店
func (s *LocationService) Update(tenantID, id uint, input *UpdateLocationInput) (*models.Location, error) {
	var location models.Location
	if err := s.db.Where("tenant_id = ?", tenantID).First(&location, id).Error; err != nil {
		return nil, err
	}

	if input.Name != nil {
		location.Name = *input.Name
	}
	if input.Description != nil {
		location.Description = *input.Description
	}
	if input.Address != nil {
		location.Address = *input.Address
	}
	if input.Phone != nil {
		location.Phone = *input.Phone
	}
	if input.Email != nil {
		location.Email = *input.Email
	}
	if input.Capacity != nil {
		location.Capacity = input.Capacity
	}
	if input.IsActive != nil {
		location.IsActive = *input.IsActive
	}

	if err := s.db.Save(&location).Error; err != nil {
		return nil, err
	}
	s.fillMenusCount(&location)
	return &location, nil
}

// Delete 删除门店，级联删除其下菜单树，解除二维码关联
func (s *LocationService) Delete(tenantID, id uint) error {
	var location models.Location
	if err := s.db.Where("tenant_id = ?", tenantID).First(&location, id).Error; err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var menuIDs []uint
		if err := tx.Model(&models.Menu{}).Where("location_id = ?", id).
			Pluck("id", &menuIDs).Error; err != nil {
			return err
		}
		if err := deleteMenuTrees(tx, menuIDs); err != nil {
			return err
		}

		// 二维码只解除关联，不随门店删除
		if err := tx.Model(&models.QRCode{}).Where("location_id = ?", id).
			Update("location_id", nil).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Location{}, id).Error
	})
}

// fillMenusCount 填充菜单数量展示字段
func (s *LocationService) fillMenusCount(location *models.Location) {
	s.db.Model(&models.Menu{}).Where("location_id = ?", location.ID).
		Count(&location.MenusCount)
}

// deleteMenuTrees 级联删除菜单及其下的分类、菜品、价格、媒体关联
// 埋点事件对分类/菜品的引用置空，事件本身保留
func deleteMenuTrees(tx *gorm.DB, menuIDs []uint) error {
	if len(menuIDs) == 0 {
		return nil
	}

	var categoryIDs []uint
	if err := tx.Model(&models.Category{}).Where("menu_id IN ?", menuIDs).
		Pluck("id", &categoryIDs).Error; err != nil {
		return err
	}

	if len(categoryIDs) > 0 {
		var itemIDs []uint
		if err := tx.Model(&models.Item{}).Where("category_id IN ?", categoryIDs).
			Pluck("id", &itemIDs).Error; err != nil {
			return err
		}

		if len(itemIDs) > 0 {
			if err := tx.Where("item_id IN ?", itemIDs).Delete(&models.Price{}).Error; err != nil {
				return err
			}
			if err := tx.Where("item_id IN ?", itemIDs).Delete(&models.ItemMedia{}).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.AnalyticsEvent{}).Where("item_id IN ?", itemIDs).
				Update("item_id", nil).Error; err != nil {
				return err
			}
			if err := tx.Where("category_id IN ?", categoryIDs).Delete(&models.Item{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Model(&models.AnalyticsEvent{}).Where("category_id IN ?", categoryIDs).
			Update("category_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("menu_id IN ?", menuIDs).Delete(&models.Category{}).Error; err != nil {
			return err
		}
	}

	return tx.Where("id IN ?", menuIDs).Delete(&models.Menu{}).Error
}
