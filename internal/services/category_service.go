package services

import (
	"qrmenu/internal/models"
	"qrmenu/pkg/pagination"

	"gorm.io/gorm"
)

type CategoryService struct {
	db *gorm.DB
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

// CategoryListFilter 分类列表过滤条件
// menu与location同时给定时取交集，不校验二者是否匹配，
// 互相矛盾的组合返回空列表
type CategoryListFilter struct {
	MenuID     uint `form:"menu"`
	LocationID uint `form:"location"`
}

// List 获取租户的分类列表，支持按菜单/门店过滤
func (s *CategoryService) List(tenantID uint, filter *CategoryListFilter, params *pagination.PageParams) ([]models.Category, int64, error) {
	var categories []models.Category
	var total int64

	query := s.db.Model(&models.Category{}).Where("categories.tenant_id = ?", tenantID)
	if filter != nil && filter.MenuID != 0 {
		query = query.Where("menu_id = ?", filter.MenuID)
	}
	if filter != nil && filter.LocationID != 0 {
		query = query.Where("menu_id IN (?)",
			s.db.Model(&models.Menu{}).Select("id").Where("location_id = ?", filter.LocationID))
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Menu").Order("sort, name").
		Offset(params.GetOffset()).Limit(params.GetLimit()).
		Find(&categories).Error
	if err != nil {
		return nil, 0, err
	}

	for i := range categories {
		s.fillDerived(&categories[i])
	}
	return categories, total, nil
}

// GetByID 获取租户内的单个分类
func (s *CategoryService) GetByID(tenantID, id uint) (*models.Category, error) {
	var category models.Category
	err := s.db.Preload("Menu").Where("tenant_id = ?", tenantID).First(&category, id).Error
	if err != nil {
		return nil, err
	}
	s.fillDerived(&category)
	return &category, nil
}

// Create 创建分类，校验菜单属于当前租户
func (s *CategoryService) Create(tenantID uint, category *models.Category) error {
	var menu models.Menu
	if err := s.db.Where("tenant_id = ?", tenantID).
		First(&menu, category.MenuID).Error; err != nil {
		return err
	}

	category.TenantID = tenantID
	return s.db.Create(category).Error
}

// UpdateCategoryInput 分类更新参数
type UpdateCategoryInput struct {
	Name   *string `json:"name"`
	MenuID *uint   `json:"menu_id"`
	Sort   *uint   `json:"sort"`
}

// Update 更新租户内分类
func (s *CategoryService) Update(tenantID, id uint, input *UpdateCategoryInput) (*models.Category, error) {
	var category models.Category
	if err := s.db.Where("tenant_id = ?", tenantID).First(&category, id).Error; err != nil {
		return nil, err
	}

	if input.MenuID != nil {
		var menu models.Menu
		if err := s.db.Where("tenant_id = ?", tenantID).
			First(&menu, *input.MenuID).Error; err != nil {
			return nil, err
		}
		category.MenuID = *input.MenuID
	}
	if input.Name != nil {
		category.Name = *input.Name
	}
	if input.Sort != nil {
		category.Sort = *input.Sort
	}

	if err := s.db.Save(&category).Error; err != nil {
		return nil, err
	}

	if err := s.db.Preload("Menu").First(&category, category.ID).Error; err != nil {
		return nil, err
	}
	s.fillDerived(&category)
	return &category, nil
}

// Delete 删除分类，级联删除菜品及其价格、媒体关联
func (s *CategoryService) Delete(tenantID, id uint) error {
	var category models.Category
	if err := s.db.Where("tenant_id = ?", tenantID).First(&category, id).Error; err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var itemIDs []uint
		if err := tx.Model(&models.Item{}).Where("category_id = ?", id).
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
			if err := tx.Where("category_id = ?", id).Delete(&models.Item{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Model(&models.AnalyticsEvent{}).Where("category_id = ?", id).
			Update("category_id", nil).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Category{}, id).Error
	})
}

// fillDerived 填充展示字段
func (s *CategoryService) fillDerived(category *models.Category) {
	category.MenuName = category.Menu.Name
	s.db.Model(&models.Item{}).Where("category_id = ?", category.ID).
		Count(&category.ItemsCount)
}
