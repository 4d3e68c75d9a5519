package models

// Location 门店/локация
type Location struct {
	BaseModel
	TenantID    uint   `json:"tenant_id" gorm:"not null;index"`
	Name        string `json:"name" gorm:"not null;size:255"`
	Description string `json:"description" gorm:"type:text"`
	Address     string `json:"address" gorm:"type:text"`
	Phone       string `json:"phone" gorm:"size:20"`
	Email       string `json:"email" gorm:"size:100"`
	Capacity    *int   `json:"capacity"`
	IsActive    bool   `json:"is_active" gorm:"default:true"`

	// 关联
	Tenant     Tenant `gorm:"foreignKey:TenantID;constraint:OnDelete:CASCADE" json:"-"`
	MenusCount int64  `json:"menus_count" gorm:"-"` // 序列化时统计，不落库
}

// TableName 表名
func (l *Location) TableName() string {
	return "locations"
}
