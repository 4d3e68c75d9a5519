package models

import (
	"gorm.io/datatypes"
)

// Menu 菜单，属于一个租户和一个门店
type Menu struct {
	BaseModel
	TenantID     uint           `json:"tenant_id" gorm:"not null;index"`
	LocationID   uint           `json:"location_id" gorm:"not null;index"`
	Name         string         `json:"name" gorm:"not null;size:255"`
	Active       bool           `json:"active" gorm:"default:true"`
	ScheduleJSON datatypes.JSON `json:"schedule_json" gorm:"type:jsonb"`

	// 关联
	Tenant   Tenant   `gorm:"foreignKey:TenantID;constraint:OnDelete:CASCADE" json:"-"`
	Location Location `gorm:"foreignKey:LocationID;constraint:OnDelete:CASCADE" json:"-"`

	Categories []Category `gorm:"foreignKey:MenuID" json:"categories,omitempty"`

	LocationName    string `json:"location_name,omitempty" gorm:"-"` // 序列化时填充
	CategoriesCount int64  `json:"categories_count" gorm:"-"`
}

// TableName 表名
func (m *Menu) TableName() string {
	return "menus"
}
