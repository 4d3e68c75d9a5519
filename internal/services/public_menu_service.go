package services

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"qrmenu/internal/models"
	"qrmenu/pkg/cache"
	"qrmenu/pkg/logger"

	"gorm.io/gorm"
)

// 游客菜单缓存TTL。写操作不主动失效，靠短TTL收敛
const publicMenuCacheTTL = 30 * time.Second

// PublicTheme 游客端主题信息，只暴露配色和logo
type PublicTheme struct {
	PaletteJSON json.RawMessage `json:"palette_json"`
	LogoURL     string          `json:"logo_url"`
}

// PublicTenant 游客端租户信息
type PublicTenant struct {
	Name  string      `json:"name"`
	Slug  string      `json:"slug"`
	Theme PublicTheme `json:"theme"`
}

// PublicMedia 游客端媒体信息，时长转为毫秒，缺失时保持null
type PublicMedia struct {
	Type        string `json:"type"`
	OriginalURL string `json:"original_url"`
	HLSURL      string `json:"hls_url"`
	PosterURL   string `json:"poster_url"`
	DurationMs  *int64 `json:"duration_ms"`
}

// PublicItemMedia 游客端菜品媒体条目
type PublicItemMedia struct {
	Kind  string      `json:"kind"`
	Media PublicMedia `json:"media"`
}

// PublicPrice 游客端价格，金额为最小货币单位整数
type PublicPrice struct {
	AmountMinor int64  `json:"amount_minor"`
	Currency    string `json:"currency"`
}

// PublicItem 游客端菜品
type PublicItem struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Tags        json.RawMessage   `json:"tags"`
	Allergens   json.RawMessage   `json:"allergens"`
	WeightG     *int              `json:"weight_g"`
	Kcal        *int              `json:"kcal"`
	Prices      []PublicPrice     `json:"prices"`
	ItemMedia   []PublicItemMedia `json:"item_media"`
}

// PublicCategory 游客端分类
type PublicCategory struct {
	ID    string       `json:"id"`
	Name  string       `json:"name"`
	Items []PublicItem `json:"items"`
}

// PublicMenu 游客端菜单
type PublicMenu struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	Categories []PublicCategory `json:"categories"`
}

// PublicMenuDocument 游客菜单完整文档
type PublicMenuDocument struct {
	Tenant PublicTenant `json:"tenant"`
	Menus  []PublicMenu `json:"menus"`
}

type PublicMenuService struct {
	db            *gorm.DB
	tenantService *TenantService
	cache         *cache.RedisCache // 可为nil，此时直接查库
}

func NewPublicMenuService(db *gorm.DB, redisCache *cache.RedisCache) *PublicMenuService {
	return &PublicMenuService{
		db:            db,
		tenantService: NewTenantService(db),
		cache:         redisCache,
	}
}

// GetMenuJSON 获取游客菜单文档的JSON，优先走缓存
// 缓存故障时降级为直接查库，不影响请求
func (s *PublicMenuService) GetMenuJSON(ctx context.Context, slug string) ([]byte, error) {
	cacheKey := "public_menu:" + slug

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey); err == nil {
			return []byte(cached), nil
		} else if !cache.IsMiss(err) {
			logger.GetLogger().Warnf("Public menu cache read failed: %v", err)
		}
	}

	doc, err := s.BuildMenu(slug)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, string(data), publicMenuCacheTTL); err != nil {
			logger.GetLogger().Warnf("Public menu cache write failed: %v", err)
		}
	}

	return data, nil
}

// BuildMenu 按slug组装游客菜单文档
// 租户不存在或非激活状态统一返回ErrTenantNotFound；
// 只包含active的菜单，分类和菜品全量输出
func (s *PublicMenuService) BuildMenu(slug string) (*PublicMenuDocument, error) {
	tenant, err := s.tenantService.GetActiveBySlug(slug)
	if err != nil {
		return nil, err
	}

	var menus []models.Menu
	err = s.db.Where("tenant_id = ? AND active = ?", tenant.ID, true).
		Preload("Categories", func(db *gorm.DB) *gorm.DB { return db.Order("sort, name") }).
		Preload("Categories.Items", func(db *gorm.DB) *gorm.DB { return db.Order("sort, name") }).
		Preload("Categories.Items.Prices").
		Preload("Categories.Items.ItemMedia", func(db *gorm.DB) *gorm.DB { return db.Order("sort") }).
		Preload("Categories.Items.ItemMedia.Media").
		Order("id").
		Find(&menus).Error
	if err != nil {
		return nil, err
	}

	doc := &PublicMenuDocument{
		Tenant: PublicTenant{
			Name: tenant.Name,
			Slug: tenant.Slug,
			Theme: PublicTheme{
				PaletteJSON: rawJSONOrEmptyObject(tenant.ThemeJSON),
				LogoURL:     tenant.LogoURL,
			},
		},
		Menus: make([]PublicMenu, 0, len(menus)),
	}

	for _, menu := range menus {
		publicMenu := PublicMenu{
			ID:         formatID(menu.ID),
			Name:       menu.Name,
			Categories: make([]PublicCategory, 0, len(menu.Categories)),
		}

		for _, category := range menu.Categories {
			publicCategory := PublicCategory{
				ID:    formatID(category.ID),
				Name:  category.Name,
				Items: make([]PublicItem, 0, len(category.Items)),
			}

			for _, item := range category.Items {
				publicCategory.Items = append(publicCategory.Items, buildPublicItem(item))
			}
			publicMenu.Categories = append(publicMenu.Categories, publicCategory)
		}
		doc.Menus = append(doc.Menus, publicMenu)
	}

	return doc, nil
}

// buildPublicItem 组装游客端菜品，价格记录全量输出不去重
func buildPublicItem(item models.Item) PublicItem {
	publicItem := PublicItem{
		ID:          formatID(item.ID),
		Name:        item.Name,
		Description: item.Description,
		Tags:        rawJSONOrEmptyArray(item.Tags),
		Allergens:   rawJSONOrEmptyArray(item.Allergens),
		WeightG:     item.WeightG,
		Kcal:        item.Kcal,
		Prices:      make([]PublicPrice, 0, len(item.Prices)),
		ItemMedia:   make([]PublicItemMedia, 0, len(item.ItemMedia)),
	}

	for _, price := range item.Prices {
		publicItem.Prices = append(publicItem.Prices, PublicPrice{
			AmountMinor: price.AmountMinor,
			Currency:    price.Currency,
		})
	}

	for _, itemMedia := range item.ItemMedia {
		var durationMs *int64
		if itemMedia.Media.DurationSeconds != nil {
			ms := int64(*itemMedia.Media.DurationSeconds) * 1000
			durationMs = &ms
		}
		publicItem.ItemMedia = append(publicItem.ItemMedia, PublicItemMedia{
			Kind: itemMedia.Kind,
			Media: PublicMedia{
				Type:        itemMedia.Media.Type,
				OriginalURL: itemMedia.Media.OriginalURL,
				HLSURL:      itemMedia.Media.HLSURL,
				PosterURL:   itemMedia.Media.PosterURL,
				DurationMs:  durationMs,
			},
		})
	}

	return publicItem
}

func formatID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func rawJSONOrEmptyObject(data []byte) json.RawMessage {
	if len(data) == 0 {
		return json.RawMessage("{}")
	}
	return json.RawMessage(data)
}

func rawJSONOrEmptyArray(data []byte) json.RawMessage {
	if len(data) == 0 {
		return json.RawMessage("[]")
	}
	return json.RawMessage(data)
}
