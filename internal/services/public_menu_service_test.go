package services

import (
	"context"
	"encoding/json"
	"testing"

	"qrmenu/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMenuDemoScenario(t *testing.T) {
	db := newTestDB(t)
	tenant := createTestTenant(t, db, "demo-restaurant")
	tree := createMenuTree(t, db, tenant)

	weightG := 150
	kcal := 280
	require.NoError(t, db.Model(tree.Item).Updates(map[string]interface{}{
		"weight_g": weightG,
		"kcal":     kcal,
		"tags":     `["вегетарианское","свежее"]`,
	}).Error)

	price := &models.Price{ItemID: tree.Item.ID, AmountMinor: 45000, Currency: "RUB"}
	require.NoError(t, db.Create(price).Error)

	service := NewPublicMenuService(db, nil)

	doc, err := service.BuildMenu("demo-restaurant")
	require.NoError(t, err)

	assert.Equal(t, "demo-restaurant", doc.Tenant.Slug)
	require.Len(t, doc.Menus, 1)
	require.Len(t, doc.Menus[0].Categories, 1)
	require.Len(t, doc.Menus[0].Categories[0].Items, 1)

	item := doc.Menus[0].Categories[0].Items[0]
	require.Len(t, item.Prices, 1)
	assert.Equal(t, int64(45000), item.Prices[0].AmountMinor)
	assert.Equal(t, "RUB", item.Prices[0].Currency)
	require.NotNil(t, item.WeightG)
	assert.Equal(t, 150, *item.WeightG)

	var tags []string
	require.NoError(t, json.Unmarshal(item.Tags, &tags))
	assert.Equal(t, []string{"вегетарианское", "свежее"}, tags)
}

func TestBuildMenuUnknownSlug(t *testing.T) {
	db := newTestDB(t)

	service := NewPublicMenuService(db, nil)

	_, err := service.BuildMenu("no-such-restaurant")
	assert.ErrorIs(t, err, ErrTenantNotFound)
}

func TestBuildMenuInactiveTenantLooksMissing(t *testing.T) {
	db := newTestDB(t)
	tenant := createTestTenant(t, db, "closed-restaurant")
	createMenuTree(t, db, tenant)

	require.NoError(t, db.Model(tenant).Update("status", models.TenantStatusSuspended).Error)

	service := NewPublicMenuService(db, nil)

	// 停用租户和不存在的slug对外不可区分
	_, err := service.BuildMenu("closed-restaurant")
	assert.ErrorIs(t, err, ErrTenantNotFound)
}

func TestBuildMenuSkipsInactiveMenus(t *testing.T) {
	db := newTestDB(t)
	tenant := createTestTenant(t, db, "demo-restaurant")
	tree := createMenuTree(t, db, tenant)

	hidden := &models.Menu{TenantID: tenant.ID, LocationID: tree.Location.ID, Name: "Draft", Active: false}
	require.NoError(t, db.Create(hidden).Error)

	service := NewPublicMenuService(db, nil)

	doc, err := service.BuildMenu("demo-restaurant")
	require.NoError(t, err)
	require.Len(t, doc.Menus, 1)
	assert.Equal(t, "Main Menu", doc.Menus[0].Name)
}

func TestBuildMenuMediaDuration(t *testing.T) {
	db := newTestDB(t)
	tenant := createTestTenant(t, db, "demo-restaurant")
	tree := createMenuTree(t, db, tenant)

	duration := 42
	video := &models.MediaAsset{
		TenantID:        tenant.ID,
		Type:            models.MediaTypeVideo,
		OriginalURL:     "https://cdn.example.com/full.mp4",
		DurationSeconds: &duration,
	}
	require.NoError(t, db.Create(video).Error)
	image := &models.MediaAsset{
		TenantID:    tenant.ID,
		Type:        models.MediaTypeImage,
		OriginalURL: "https://cdn.example.com/preview.jpg",
	}
	require.NoError(t, db.Create(image).Error)

	itemService := NewItemService(db)
	_, err := itemService.AttachMedia(tenant.ID, tree.Item.ID, video.ID, models.ItemMediaKindFull, 1)
	require.NoError(t, err)
	_, err = itemService.AttachMedia(tenant.ID, tree.Item.ID, image.ID, models.ItemMediaKindPreview, 0)
	require.NoError(t, err)

	service := NewPublicMenuService(db, nil)

	doc, err := service.BuildMenu("demo-restaurant")
	require.NoError(t, err)

	item := doc.Menus[0].Categories[0].Items[0]
	require.Len(t, item.ItemMedia, 2)

	byKind := map[string]PublicMedia{}
	for _, im := range item.ItemMedia {
		byKind[im.Kind] = im.Media
	}

	// 秒转毫秒，缺失保持null
	require.NotNil(t, byKind["full"].DurationMs)
	assert.Equal(t, int64(42000), *byKind["full"].DurationMs)
	assert.Nil(t, byKind["preview"].DurationMs)
}

func TestGetMenuJSONWithoutCache(t *testing.T) {
	db := newTestDB(t)
	tenant := createTestTenant(t, db, "demo-restaurant")
	createMenuTree(t, db, tenant)

	service := NewPublicMenuService(db, nil)

	data, err := service.GetMenuJSON(context.Background(), "demo-restaurant")
	require.NoError(t, err)

	var doc PublicMenuDocument
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "demo-restaurant", doc.Tenant.Slug)
}
