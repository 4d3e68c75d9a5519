package models

import (
	"gorm.io/datatypes"
)

// Item 菜品，属于一个租户和一个分类
// 列表排序规则：sort升序，同sort按name
type Item struct {
	BaseModel
	TenantID           uint           `json:"tenant_id" gorm:"not null;index"`
	CategoryID         uint           `json:"category_id" gorm:"not null;index"`
	Name               string         `json:"name" gorm:"not null;size:255"`
	Description        string         `json:"description" gorm:"type:text"`
	SKU                string         `json:"sku" gorm:"size:100"`
	Tags               datatypes.JSON `json:"tags" gorm:"type:jsonb"`      // 字符串数组
	Allergens          datatypes.JSON `json:"allergens" gorm:"type:jsonb"` // 字符串数组
	NutritionValues    datatypes.JSON `json:"nutrition_values_json" gorm:"column:nutrition_values_json;type:jsonb"`
	WeightG            *int           `json:"weight_g"`
	Kcal               *int           `json:"kcal"`
	Sort               uint           `json:"sort" gorm:"default:0"`
	VisibilityRuleJSON datatypes.JSON `json:"visibility_rule_json" gorm:"type:jsonb"` // 展示规则谓词，本服务不执行

	// 关联
	Tenant   Tenant   `gorm:"foreignKey:TenantID;constraint:OnDelete:CASCADE" json:"-"`
	Category Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"-"`

	Prices    []Price     `gorm:"foreignKey:ItemID" json:"prices,omitempty"`
	ItemMedia []ItemMedia `gorm:"foreignKey:ItemID" json:"item_media,omitempty"`

	CategoryName string `json:"category_name,omitempty" gorm:"-"` // 序列化时填充
}

// TableName 表名
func (i *Item) TableName() string {
	return "items"
}

// Price 菜品价格，金额用最小货币单位（整数，如戈比）保存，避免浮点
// 同一菜品可存多条价格记录（历史）
type Price struct {
	BaseModel
	ItemID      uint   `json:"item_id" gorm:"not null;index"`
	AmountMinor int64  `json:"amount_minor" gorm:"not null"`
	Currency    string `json:"currency" gorm:"size:3;default:'RUB'"`

	// 关联
	Item Item `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName 表名
func (p *Price) TableName() string {
	return "prices"
}
