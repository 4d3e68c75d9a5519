package services

import (
	"qrmenu/internal/models"
	"qrmenu/pkg/pagination"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type MenuService struct {
	db *gorm.DB
}

func NewMenuService(db *gorm.DB) *MenuService {
	return &MenuService{db: db}
}

// MenuListFilter 菜单列表过滤条件
type MenuListFilter struct {
	LocationID uint `form:"location"`
}

// List 获取租户的菜单列表，支持按门店过滤
func (s *MenuService) List(tenantID uint, filter *MenuListFilter, params *pagination.PageParams) ([]models.Menu, int64, error) {
	var menus []models.Menu
	var total int64

	query := s.db.Model(&models.Menu{}).Where("tenant_id = ?", tenantID)
	if filter != nil && filter.LocationID != 0 {
		query = query.Where("location_id = ?", filter.LocationID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Location").Order("id").
		Offset(params.GetOffset()).Limit(params.GetLimit()).
		Find(&menus).Error
	if err != nil {
		return nil, 0, err
	}

	for i := range menus {
		s.fillDerived(&menus[i])
	}
	return menus, total, nil
}

// GetByID 获取租户内的单个菜单
func (s *MenuService) GetByID(tenantID, id uint) (*models.Menu, error) {
	var menu models.Menu
	err := s.db.Preload("Location").Where("tenant_id = ?", tenantID).First(&menu, id).Error
	if err != nil {
		return nil, err
	}
	s.fillDerived(&menu)
	return &menu, nil
}

// Create 创建菜单，校验门店属于当前租户
func (s *MenuService) Create(tenantID uint, menu *models.Menu) error {
	// 父实体租户一致性校验：门店必须属于当前租户
	var location models.Location
	if err := s.db.Where("tenant_id = ?", tenantID).
		First(&location, menu.LocationID).Error; err != nil {
		return err
	}

	menu.TenantID = tenantID
	return s.db.Create(menu).Error
}

// UpdateMenuInput 菜单更新参数
type UpdateMenuInput struct {
	Name         *string         `json:"name"`
	LocationID   *uint           `json:"location_id"`
	Active       *bool           `json:"active"`
	ScheduleJSON *datatypes.JSON `json:"schedule_json"`
}

// Update 更新租户内菜单
func (s *MenuService) Update(tenantID, id uint, input *UpdateMenuInput) (*models.Menu, error) {
	var menu models.Menu
	if err := s.db.Where("tenant_id = ?", tenantID).First(&menu, id).Error; err != nil {
		return nil, err
	}

	if input.LocationID != nil {
		var location models.Location
		if err := s.db.Where("tenant_id = ?", tenantID).
			First(&location, *input.LocationID).Error; err != nil {
			return nil, err
		}
		menu.LocationID = *input.LocationID
	}
	if input.Name != nil {
		menu.Name = *input.Name
	}
	if input.Active != nil {
		menu.Active = *input.Active
	}
	if input.ScheduleJSON != nil {
		menu.ScheduleJSON = *input.ScheduleJSON
	}

	if err := s.db.Save(&menu).Error; err != nil {
		return nil, err
	}

	if err := s.db.Preload("Location").First(&menu, menu.ID).Error; err != nil {
		return nil, err
	}
	s.fillDerived(&menu)
	return &menu, nil
}

// Delete 删除菜单，级联删除分类和菜品
func (s *MenuService) Delete(tenantID, id uint) error {
	var menu models.Menu
	if err := s.db.Where("tenant_id = ?", tenantID).First(&menu, id).Error; err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		return deleteMenuTrees(tx, []uint{id})
	})
}

// fillDerived 填充展示字段
func (s *MenuService) fillDerived(menu *models.Menu) {
	menu.LocationName = menu.Location.Name
	s.db.Model(&models.Category{}).Where("menu_id = ?", menu.ID).
		Count(&menu.CategoriesCount)
}
