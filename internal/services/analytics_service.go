package services

import (
	"time"

	"qrmenu/internal/models"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AnalyticsService struct {
	db *gorm.DB
}

func NewAnalyticsService(db *gorm.DB) *AnalyticsService {
	return &AnalyticsService{db: db}
}

// TrackInput 埋点参数
// 事件类型不做枚举校验，未知类型照常入库（前端迭代新事件不需要后端发版）
type TrackInput struct {
	SessionID  string         `json:"session_id"`
	Type       string         `json:"type" binding:"required"`
	CategoryID *uint          `json:"category_id"`
	ItemID     *uint          `json:"item_id"`
	Metadata   datatypes.JSON `json:"metadata"`
	Timestamp  *time.Time     `json:"timestamp"`
}

// Track 记录埋点事件
func (s *AnalyticsService) Track(tenantID uint, input *TrackInput) (*models.AnalyticsEvent, error) {
	sessionID := input.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	timestamp := time.Now()
	if input.Timestamp != nil {
		timestamp = *input.Timestamp
	}

	event := &models.AnalyticsEvent{
		TenantID:   tenantID,
		SessionID:  sessionID,
		Type:       input.Type,
		CategoryID: input.CategoryID,
		ItemID:     input.ItemID,
		Metadata:   input.Metadata,
		Timestamp:  timestamp,
	}

	if err := s.db.Create(event).Error; err != nil {
		return nil, err
	}
	return event, nil
}

// TopItem 热门菜品排行条目
type TopItem struct {
	models.Item
	InteractionsCount int64 `json:"interactions_count"`
}

// DashboardStats 仪表盘统计
type DashboardStats struct {
	TotalMenus      int64                   `json:"total_menus"`
	TotalCategories int64                   `json:"total_categories"`
	TotalItems      int64                   `json:"total_items"`
	TotalViews      int64                   `json:"total_views"`
	TotalPlays      int64                   `json:"total_plays"`
	UniqueUsers     int64                   `json:"unique_users"`
	RecentActivity  []models.AnalyticsEvent `json:"recent_activity"`
	TopItems        []TopItem               `json:"top_items"`
}

// periodStart 解析统计周期，未知值回退7天
func periodStart(now time.Time, period string) time.Time {
	switch period {
	case "30d":
		return now.AddDate(0, 0, -30)
	case "90d":
		return now.AddDate(0, 0, -90)
	default: // 7d
		return now.AddDate(0, 0, -7)
	}
}

// Stats 计算租户在指定周期内的统计
func (s *AnalyticsService) Stats(tenantID uint, period string) (*DashboardStats, error) {
	startDate := periodStart(time.Now(), period)
	stats := &DashboardStats{}

	if err := s.db.Model(&models.Menu{}).Where("tenant_id = ?", tenantID).
		Count(&stats.TotalMenus).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Category{}).Where("tenant_id = ?", tenantID).
		Count(&stats.TotalCategories).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Item{}).Where("tenant_id = ?", tenantID).
		Count(&stats.TotalItems).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.AnalyticsEvent{}).
		Where("tenant_id = ? AND type IN ? AND timestamp >= ?", tenantID, models.ViewEventTypes, startDate).
		Count(&stats.TotalViews).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.AnalyticsEvent{}).
		Where("tenant_id = ? AND type IN ? AND timestamp >= ?", tenantID, models.PlayEventTypes, startDate).
		Count(&stats.TotalPlays).Error; err != nil {
		return nil, err
	}

	// session_id去重数作为独立访客的近似值
	if err := s.db.Model(&models.AnalyticsEvent{}).
		Where("tenant_id = ? AND timestamp >= ?", tenantID, startDate).
		Distinct("session_id").
		Count(&stats.UniqueUsers).Error; err != nil {
		return nil, err
	}

	if err := s.db.
		Where("tenant_id = ? AND timestamp >= ?", tenantID, startDate).
		Order("timestamp DESC").Limit(10).
		Find(&stats.RecentActivity).Error; err != nil {
		return nil, err
	}

	topItems, err := s.topItems(tenantID, startDate, 5)
	if err != nil {
		return nil, err
	}
	stats.TopItems = topItems

	return stats, nil
}

// itemInteraction 互动统计中间结果
type itemInteraction struct {
	ItemID uint
	Cnt    int64
}

// topItems 按互动事件数排行的菜品，计数相同按菜品ID升序
func (s *AnalyticsService) topItems(tenantID uint, startDate time.Time, limit int) ([]TopItem, error) {
	var rows []itemInteraction
	err := s.db.Model(&models.AnalyticsEvent{}).
		Select("item_id, count(*) as cnt").
		Where("tenant_id = ? AND type IN ? AND timestamp >= ? AND item_id IS NOT NULL",
			tenantID, models.InteractionEventTypes, startDate).
		Group("item_id").
		Order("cnt DESC, item_id ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make([]TopItem, 0, len(rows))
	for _, row := range rows {
		var item models.Item
		err := s.db.Preload("Prices").
			Preload("ItemMedia", func(db *gorm.DB) *gorm.DB { return db.Order("sort") }).
			Preload("ItemMedia.Media").
			Where("tenant_id = ?", tenantID).
			First(&item, row.ItemID).Error
		if err != nil {
			// 事件引用的菜品可能已被删除且引用尚未置空，跳过
			continue
		}
		result = append(result, TopItem{Item: item, InteractionsCount: row.Cnt})
	}
	return result, nil
}
