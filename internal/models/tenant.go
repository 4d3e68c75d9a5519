package models

import (
	"gorm.io/datatypes"
)

// Tenant 租户模型（餐厅账号）- 贫血模型，只包含数据结构
// 所有业务数据都以租户为根进行隔离
type Tenant struct {
	BaseModel
	Name        string         `json:"name" gorm:"not null;size:255"`
	Slug        string         `json:"slug" gorm:"unique;not null;size:100;index"`
	Description string         `json:"description" gorm:"type:text"`
	LogoURL     string         `json:"logo_url" gorm:"size:500"`
	Website     string         `json:"website" gorm:"size:500"`
	Phone       string         `json:"phone" gorm:"size:20"`
	Email       string         `json:"email" gorm:"size:100"`
	Address     string         `json:"address" gorm:"type:text"`
	Timezone    string         `json:"timezone" gorm:"size:50;default:'Europe/Moscow'"`
	Currency    string         `json:"currency" gorm:"size:3;default:'RUB'"`
	Language    string         `json:"language" gorm:"size:5;default:'ru'"`
	ThemeJSON   datatypes.JSON `json:"theme_json" gorm:"type:jsonb"`
	Status      string         `json:"status" gorm:"default:'active';size:20"`
	Plan        string         `json:"plan" gorm:"default:'free';size:20"`
}

// TableName 表名
func (t *Tenant) TableName() string {
	return "tenants"
}

// 租户状态常量
const (
	TenantStatusActive    = "active"
	TenantStatusInactive  = "inactive"
	TenantStatusSuspended = "suspended"
)

// 租户套餐常量
const (
	TenantPlanFree       = "free"
	TenantPlanBasic      = "basic"
	TenantPlanPremium    = "premium"
	TenantPlanEnterprise = "enterprise"
)
