package services

import (
	"testing"

	"qrmenu/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestItemListTenantIsolation(t *testing.T) {
	db := newTestDB(t)
	treeA := createMenuTree(t, db, createTestTenant(t, db, "tenant-a"))
	treeB := createMenuTree(t, db, createTestTenant(t, db, "tenant-b"))

	service := NewItemService(db)

	items, total, err := service.List(treeA.Tenant.ID, nil, defaultPage())
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, treeA.Item.ID, items[0].ID)

	// 跨租户按ID访问等同于不存在
	_, err = service.GetByID(treeA.Tenant.ID, treeB.Item.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestItemCreateIgnoresForeignTenant(t *testing.T) {
	db := newTestDB(t)
	tree := createMenuTree(t, db, createTestTenant(t, db, "tenant-a"))

	service := NewItemService(db)

	// 请求体里带别的租户ID也会被调用方租户覆盖
	item := &models.Item{
		TenantID:   999,
		CategoryID: tree.Category.ID,
		Name:       "Steak",
	}
	require.NoError(t, service.Create(tree.Tenant.ID, item, nil))
	assert.Equal(t, tree.Tenant.ID, item.TenantID)
}

func TestItemCreateRejectsForeignCategory(t *testing.T) {
	db := newTestDB(t)
	treeA := createMenuTree(t, db, createTestTenant(t, db, "tenant-a"))
	treeB := createMenuTree(t, db, createTestTenant(t, db, "tenant-b"))

	service := NewItemService(db)

	item := &models.Item{CategoryID: treeB.Category.ID, Name: "Steak"}
	err := service.Create(treeA.Tenant.ID, item, nil)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestItemPriceRoundTrip(t *testing.T) {
	db := newTestDB(t)
	tree := createMenuTree(t, db, createTestTenant(t, db, "tenant-a"))

	service := NewItemService(db)

	item := &models.Item{CategoryID: tree.Category.ID, Name: "Tiramisu"}
	prices := []PriceInput{{AmountMinor: 45000, Currency: "RUB"}}
	require.NoError(t, service.Create(tree.Tenant.ID, item, prices))

	got, err := service.GetByID(tree.Tenant.ID, item.ID)
	require.NoError(t, err)
	require.Len(t, got.Prices, 1)
	// 最小货币单位整数，不允许出现浮点误差
	assert.Equal(t, int64(45000), got.Prices[0].AmountMinor)
	assert.Equal(t, "RUB", got.Prices[0].Currency)
}

func TestItemPriceCurrencyDefault(t *testing.T) {
	db := newTestDB(t)
	tree := createMenuTree(t, db, createTestTenant(t, db, "tenant-a"))

	service := NewItemService(db)

	price, err := service.AddPrice(tree.Tenant.ID, tree.Item.ID, &PriceInput{AmountMinor: 18000})
	require.NoError(t, err)
	assert.Equal(t, "RUB", price.Currency)
}

func TestItemUpdateReplacesPrices(t *testing.T) {
	db := newTestDB(t)
	tree := createMenuTree(t, db, createTestTenant(t, db, "tenant-a"))

	service := NewItemService(db)

	_, err := service.AddPrice(tree.Tenant.ID, tree.Item.ID, &PriceInput{AmountMinor: 10000})
	require.NoError(t, err)
	_, err = service.AddPrice(tree.Tenant.ID, tree.Item.ID, &PriceInput{AmountMinor: 12000})
	require.NoError(t, err)

	updated, err := service.Update(tree.Tenant.ID, tree.Item.ID, &UpdateItemInput{
		Prices: []PriceInput{{AmountMinor: 15000, Currency: "RUB"}},
	})
	require.NoError(t, err)
	require.Len(t, updated.Prices, 1)
	assert.Equal(t, int64(15000), updated.Prices[0].AmountMinor)
}

func TestItemListFilterAnding(t *testing.T) {
	db := newTestDB(t)
	tenant := createTestTenant(t, db, "tenant-a")
	tree := createMenuTree(t, db, tenant)

	// 第二条链：另一个门店下的菜单/分类/菜品
	otherLocation := &models.Location{TenantID: tenant.ID, Name: "Terrace", IsActive: true}
	require.NoError(t, db.Create(otherLocation).Error)
	otherMenu := &models.Menu{TenantID: tenant.ID, LocationID: otherLocation.ID, Name: "Summer", Active: true}
	require.NoError(t, db.Create(otherMenu).Error)
	otherCategory := &models.Category{TenantID: tenant.ID, MenuID: otherMenu.ID, Name: "Drinks"}
	require.NoError(t, db.Create(otherCategory).Error)
	otherItem := &models.Item{TenantID: tenant.ID, CategoryID: otherCategory.ID, Name: "Juice"}
	require.NoError(t, db.Create(otherItem).Error)

	service := NewItemService(db)

	items, total, err := service.List(tenant.ID, &ItemListFilter{LocationID: otherLocation.ID}, defaultPage())
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, otherItem.ID, items[0].ID)

	// category和location同时给定且不一致时交集为空
	items, total, err = service.List(tenant.ID, &ItemListFilter{
		CategoryID: tree.Category.ID,
		LocationID: otherLocation.ID,
	}, defaultPage())
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
	assert.Empty(t, items)
}

func TestAttachMediaIdempotentPerKind(t *testing.T) {
	db := newTestDB(t)
	tree := createMenuTree(t, db, createTestTenant(t, db, "tenant-a"))

	mediaA := &models.MediaAsset{TenantID: tree.Tenant.ID, Type: models.MediaTypeVideo, OriginalURL: "https://cdn.example.com/a.mp4"}
	require.NoError(t, db.Create(mediaA).Error)
	mediaB := &models.MediaAsset{TenantID: tree.Tenant.ID, Type: models.MediaTypeVideo, OriginalURL: "https://cdn.example.com/b.mp4"}
	require.NoError(t, db.Create(mediaB).Error)

	service := NewItemService(db)

	_, err := service.AttachMedia(tree.Tenant.ID, tree.Item.ID, mediaA.ID, models.ItemMediaKindPreview, 0)
	require.NoError(t, err)

	// 同一kind重复绑定直接替换，不报唯一冲突
	bound, err := service.AttachMedia(tree.Tenant.ID, tree.Item.ID, mediaB.ID, models.ItemMediaKindPreview, 1)
	require.NoError(t, err)
	assert.Equal(t, mediaB.ID, bound.MediaID)

	var count int64
	db.Model(&models.ItemMedia{}).
		Where("item_id = ? AND kind = ?", tree.Item.ID, models.ItemMediaKindPreview).
		Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestAttachMediaRejectsUnknownKind(t *testing.T) {
	db := newTestDB(t)
	tree := createMenuTree(t, db, createTestTenant(t, db, "tenant-a"))

	media := &models.MediaAsset{TenantID: tree.Tenant.ID, Type: models.MediaTypeImage, OriginalURL: "https://cdn.example.com/a.jpg"}
	require.NoError(t, db.Create(media).Error)

	service := NewItemService(db)

	_, err := service.AttachMedia(tree.Tenant.ID, tree.Item.ID, media.ID, "poster", 0)
	assert.Error(t, err)
}

func TestDetachMediaMissingBinding(t *testing.T) {
	db := newTestDB(t)
	tree := createMenuTree(t, db, createTestTenant(t, db, "tenant-a"))

	service := NewItemService(db)

	err := service.DetachMedia(tree.Tenant.ID, tree.Item.ID, models.ItemMediaKindSound)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestItemDeleteCleansDependents(t *testing.T) {
	db := newTestDB(t)
	tree := createMenuTree(t, db, createTestTenant(t, db, "tenant-a"))

	media := &models.MediaAsset{TenantID: tree.Tenant.ID, Type: models.MediaTypeVideo, OriginalURL: "https://cdn.example.com/a.mp4"}
	require.NoError(t, db.Create(media).Error)

	service := NewItemService(db)

	_, err := service.AddPrice(tree.Tenant.ID, tree.Item.ID, &PriceInput{AmountMinor: 45000})
	require.NoError(t, err)
	_, err = service.AttachMedia(tree.Tenant.ID, tree.Item.ID, media.ID, models.ItemMediaKindFull, 0)
	require.NoError(t, err)

	itemID := tree.Item.ID
	event := &models.AnalyticsEvent{TenantID: tree.Tenant.ID, SessionID: "s1", Type: models.EventTypeOpenItem, ItemID: &itemID}
	require.NoError(t, db.Create(event).Error)

	require.NoError(t, service.Delete(tree.Tenant.ID, itemID))

	var priceCount, mediaCount int64
	db.Model(&models.Price{}).Where("item_id = ?", itemID).Count(&priceCount)
	db.Model(&models.ItemMedia{}).Where("item_id = ?", itemID).Count(&mediaCount)
	assert.Equal(t, int64(0), priceCount)
	assert.Equal(t, int64(0), mediaCount)

	// 埋点事件保留，引用置空
	var kept models.AnalyticsEvent
	require.NoError(t, db.First(&kept, event.ID).Error)
	assert.Nil(t, kept.ItemID)
}
