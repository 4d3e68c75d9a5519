package models

import (
	"time"

	"gorm.io/datatypes"
)

// AnalyticsEvent 埋点事件
// session_id是前端生成的不透明字符串，不关联用户表；
// 关联的分类/菜品被删除时置空，事件本身保留
type AnalyticsEvent struct {
	BaseModel
	TenantID   uint           `json:"tenant_id" gorm:"not null;index"`
	SessionID  string         `json:"session_id" gorm:"not null;size:255;index"`
	Type       string         `json:"type" gorm:"not null;size:20;index"`
	CategoryID *uint          `json:"category_id" gorm:"index"`
	ItemID     *uint          `json:"item_id" gorm:"index"`
	Metadata   datatypes.JSON `json:"metadata_json" gorm:"column:metadata_json;type:jsonb"`
	Timestamp  time.Time      `json:"timestamp" gorm:"not null;index"`

	// 关联
	Tenant   Tenant    `gorm:"foreignKey:TenantID;constraint:OnDelete:CASCADE" json:"-"`
	Category *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"-"`
	Item     *Item     `gorm:"foreignKey:ItemID;constraint:OnDelete:SET NULL" json:"-"`
}

// TableName 表名
func (e *AnalyticsEvent) TableName() string {
	return "analytics_events"
}

// 事件类型常量
const (
	EventTypeViewCategory = "view_category"
	EventTypeOpenItem     = "open_item"
	EventTypePlayPreview  = "play_preview"
	EventTypePlayFull     = "play_full"
	EventTypeUnmute       = "unmute"
	EventTypeShare        = "share"
	EventTypeFavorite     = "favorite"
)

// ViewEventTypes 统计口径：浏览类事件
var ViewEventTypes = []string{EventTypeViewCategory, EventTypeOpenItem}

// PlayEventTypes 统计口径：播放类事件
var PlayEventTypes = []string{EventTypePlayPreview, EventTypePlayFull}

// InteractionEventTypes 统计口径：菜品互动类事件（热门菜品排行）
var InteractionEventTypes = []string{EventTypeOpenItem, EventTypePlayPreview, EventTypePlayFull}
