package models

// QRCode 二维码，指向游客菜单页；可选关联一个门店
// 门店删除时只解除关联，不删除二维码
type QRCode struct {
	BaseModel
	TenantID   uint   `json:"tenant_id" gorm:"not null;index"`
	LocationID *uint  `json:"location_id" gorm:"index"`
	Name       string `json:"name" gorm:"not null;size:255"`
	URL        string `json:"url" gorm:"not null;size:500"`
	QRCodeURL  string `json:"qr_code_url" gorm:"size:500"`

	// 关联
	Tenant   Tenant    `gorm:"foreignKey:TenantID;constraint:OnDelete:CASCADE" json:"-"`
	Location *Location `gorm:"foreignKey:LocationID;constraint:OnDelete:SET NULL" json:"-"`

	LocationName string `json:"location_name,omitempty" gorm:"-"` // 序列化时填充
}

// TableName 表名
func (q *QRCode) TableName() string {
	return "qr_codes"
}
