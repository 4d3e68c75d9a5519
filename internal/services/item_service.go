package services

import (
	"fmt"

	"qrmenu/internal/models"
	"qrmenu/pkg/pagination"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ItemService struct {
	db *gorm.DB
}

func NewItemService(db *gorm.DB) *ItemService {
	return &ItemService{db: db}
}

// ItemListFilter 菜品列表过滤条件
// category/menu/location同时给定时取交集，不校验组合一致性
type ItemListFilter struct {
	CategoryID uint `form:"category"`
	MenuID     uint `form:"menu"`
	LocationID uint `form:"location"`
}

// PriceInput 价格录入参数，金额为最小货币单位整数
type PriceInput struct {
	AmountMinor int64  `json:"amount_minor" binding:"min=0"`
	Currency    string `json:"currency" binding:"omitempty,len=3"`
}

// List 获取租户的菜品列表，预加载价格和媒体
func (s *ItemService) List(tenantID uint, filter *ItemListFilter, params *pagination.PageParams) ([]models.Item, int64, error) {
	var items []models.Item
	var total int64

	query := s.db.Model(&models.Item{}).Where("items.tenant_id = ?", tenantID)
	if filter != nil && filter.CategoryID != 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter != nil && filter.MenuID != 0 {
		query = query.Where("category_id IN (?)",
			s.db.Model(&models.Category{}).Select("id").Where("menu_id = ?", filter.MenuID))
	}
	if filter != nil && filter.LocationID != 0 {
		query = query.Where("category_id IN (?)",
			s.db.Model(&models.Category{}).Select("id").Where("menu_id IN (?)",
				s.db.Model(&models.Menu{}).Select("id").Where("location_id = ?", filter.LocationID)))
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Category").
		Preload("Prices").
		Preload("ItemMedia", func(db *gorm.DB) *gorm.DB { return db.Order("sort") }).
		Preload("ItemMedia.Media").
		Order("sort, name").
		Offset(params.GetOffset()).Limit(params.GetLimit()).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}

	for i := range items {
		items[i].CategoryName = items[i].Category.Name
	}
	return items, total, nil
}

// GetByID 获取租户内的单个菜品，带价格和媒体
func (s *ItemService) GetByID(tenantID, id uint) (*models.Item, error) {
	var item models.Item
	err := s.db.Preload("Category").
		Preload("Prices").
		Preload("ItemMedia", func(db *gorm.DB) *gorm.DB { return db.Order("sort") }).
		Preload("ItemMedia.Media").
		Where("tenant_id = ?", tenantID).
		First(&item, id).Error
	if err != nil {
		return nil, err
	}
	item.CategoryName = item.Category.Name
	return &item, nil
}

// Create 创建菜品，校验分类属于当前租户，可同时录入初始价格
func (s *ItemService) Create(tenantID uint, item *models.Item, prices []PriceInput) error {
	var category models.Category
	if err := s.db.Where("tenant_id = ?", tenantID).
		First(&category, item.CategoryID).Error; err != nil {
		return err
	}

	item.TenantID = tenantID

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(item).Error; err != nil {
			return err
		}
		return createPrices(tx, item.ID, prices)
	})
}

// UpdateItemInput 菜品更新参数
// Prices非nil时整体替换价格记录
type UpdateItemInput struct {
	Name            *string         `json:"name"`
	Description     *string         `json:"description"`
	CategoryID      *uint           `json:"category_id"`
	SKU             *string         `json:"sku"`
	Tags            *datatypes.JSON `json:"tags"`
	Allergens       *datatypes.JSON `json:"allergens"`
	NutritionValues *datatypes.JSON `json:"nutrition_values_json"`
	WeightG         *int            `json:"weight_g"`
	Kcal            *int            `json:"kcal"`
	Sort            *uint           `json:"sort"`
	VisibilityRule  *datatypes.JSON `json:"visibility_rule_json"`
	Prices          []PriceInput    `json:"prices"`
}

// Update 更新租户内菜品
func (s *ItemService) Update(tenantID, id uint, input *UpdateItemInput) (*models.Item, error) {
	var item models.Item
	if err := s.db.Where("tenant_id = ?", tenantID).First(&item, id).Error; err != nil {
		return nil, err
	}

	if input.CategoryID != nil {
		var category models.Category
		if err := s.db.Where("tenant_id = ?", tenantID).
			First(&category, *input.CategoryID).Error; err != nil {
			return nil, err
		}
		item.CategoryID = *input.CategoryID
	}
	if input.Name != nil {
		item.Name = *input.Name
	}
	if input.Description != nil {
		item.Description = *input.Description
	}
	if input.SKU != nil {
		item.SKU = *input.SKU
	}
	if input.Tags != nil {
		item.Tags = *input.Tags
	}
	if input.Allergens != nil {
		item.Allergens = *input.Allergens
	}
	if input.NutritionValues != nil {
		item.NutritionValues = *input.NutritionValues
	}
	if input.WeightG != nil {
		item.WeightG = input.WeightG
	}
	if input.Kcal != nil {
		item.Kcal = input.Kcal
	}
	if input.Sort != nil {
		item.Sort = *input.Sort
	}
	if input.VisibilityRule != nil {
		item.VisibilityRuleJSON = *input.VisibilityRule
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&item).Error; err != nil {
			return err
		}
		if input.Prices != nil {
			if err := tx.Where("item_id = ?", item.ID).Delete(&models.Price{}).Error; err != nil {
				return err
			}
			return createPrices(tx, item.ID, input.Prices)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetByID(tenantID, id)
}

// Delete 删除菜品及其价格、媒体关联，埋点事件引用置空
func (s *ItemService) Delete(tenantID, id uint) error {
	var item models.Item
	if err := s.db.Where("tenant_id = ?", tenantID).First(&item, id).Error; err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("item_id = ?", id).Delete(&models.Price{}).Error; err != nil {
			return err
		}
		if err := tx.Where("item_id = ?", id).Delete(&models.ItemMedia{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.AnalyticsEvent{}).Where("item_id = ?", id).
			Update("item_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Item{}, id).Error
	})
}

// AddPrice 追加一条价格记录（保留历史）
func (s *ItemService) AddPrice(tenantID, itemID uint, input *PriceInput) (*models.Price, error) {
	var item models.Item
	if err := s.db.Where("tenant_id = ?", tenantID).First(&item, itemID).Error; err != nil {
		return nil, err
	}

	price := &models.Price{
		ItemID:      itemID,
		AmountMinor: input.AmountMinor,
		Currency:    normalizeCurrency(input.Currency),
	}
	if err := s.db.Create(price).Error; err != nil {
		return nil, err
	}
	return price, nil
}

// AttachMedia 绑定媒体到菜品
// 同一kind先删后建，保证每个菜品每种用途只有一条记录
func (s *ItemService) AttachMedia(tenantID, itemID, mediaID uint, kind string, sort uint) (*models.ItemMedia, error) {
	switch kind {
	case models.ItemMediaKindPreview, models.ItemMediaKindFull, models.ItemMediaKindSound:
	default:
		return nil, fmt.Errorf("不支持的媒体用途: %s", kind)
	}

	var item models.Item
	if err := s.db.Where("tenant_id = ?", tenantID).First(&item, itemID).Error; err != nil {
		return nil, err
	}
	var media models.MediaAsset
	if err := s.db.Where("tenant_id = ?", tenantID).First(&media, mediaID).Error; err != nil {
		return nil, err
	}

	itemMedia := &models.ItemMedia{
		ItemID:  itemID,
		MediaID: mediaID,
		Kind:    kind,
		Sort:    sort,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("item_id = ? AND kind = ?", itemID, kind).
			Delete(&models.ItemMedia{}).Error; err != nil {
			return err
		}
		return tx.Create(itemMedia).Error
	})
	if err != nil {
		return nil, err
	}

	itemMedia.Media = media
	return itemMedia, nil
}

// DetachMedia 按用途解除菜品的媒体绑定
func (s *ItemService) DetachMedia(tenantID, itemID uint, kind string) error {
	var item models.Item
	if err := s.db.Where("tenant_id = ?", tenantID).First(&item, itemID).Error; err != nil {
		return err
	}

	result := s.db.Where("item_id = ? AND kind = ?", itemID, kind).
		Delete(&models.ItemMedia{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// createPrices 批量创建价格记录
func createPrices(tx *gorm.DB, itemID uint, prices []PriceInput) error {
	for _, p := range prices {
		price := models.Price{
			ItemID:      itemID,
			AmountMinor: p.AmountMinor,
			Currency:    normalizeCurrency(p.Currency),
		}
		if err := tx.Create(&price).Error; err != nil {
			return err
		}
	}
	return nil
}

// normalizeCurrency 货币默认值
func normalizeCurrency(currency string) string {
	if currency == "" {
		return "RUB"
	}
	return currency
}
