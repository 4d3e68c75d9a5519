package models

// Category 菜品分类，属于一个租户和一个菜单
// 列表排序规则：sort升序，同sort按name
type Category struct {
	BaseModel
	TenantID uint   `json:"tenant_id" gorm:"not null;index"`
	MenuID   uint   `json:"menu_id" gorm:"not null;index"`
	Name     string `json:"name" gorm:"not null;size:255"`
	Sort     uint   `json:"sort" gorm:"default:0"`

	// 关联
	Tenant Tenant `gorm:"foreignKey:TenantID;constraint:OnDelete:CASCADE" json:"-"`
	Menu   Menu   `gorm:"foreignKey:MenuID;constraint:OnDelete:CASCADE" json:"-"`

	Items []Item `gorm:"foreignKey:CategoryID" json:"items,omitempty"`

	MenuName   string `json:"menu_name,omitempty" gorm:"-"` // 序列化时填充
	ItemsCount int64  `json:"items_count" gorm:"-"`
}

// TableName 表名
func (c *Category) TableName() string {
	return "categories"
}
