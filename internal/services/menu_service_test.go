package services

import (
	"testing"

	"qrmenu/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestMenuCreateValidatesLocationTenant(t *testing.T) {
	db := newTestDB(t)
	treeA := createMenuTree(t, db, createTestTenant(t, db, "tenant-a"))
	treeB := createMenuTree(t, db, createTestTenant(t, db, "tenant-b"))

	service := NewMenuService(db)

	menu := &models.Menu{LocationID: treeA.Location.ID, Name: "Breakfast", Active: true}
	require.NoError(t, service.Create(treeA.Tenant.ID, menu))
	assert.Equal(t, treeA.Tenant.ID, menu.TenantID)

	foreign := &models.Menu{LocationID: treeB.Location.ID, Name: "Breakfast"}
	err := service.Create(treeA.Tenant.ID, foreign)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestMenuListLocationFilter(t *testing.T) {
	db := newTestDB(t)
	tenant := createTestTenant(t, db, "tenant-a")
	createMenuTree(t, db, tenant)

	other := &models.Location{TenantID: tenant.ID, Name: "Terrace", IsActive: true}
	require.NoError(t, db.Create(other).Error)
	require.NoError(t, db.Create(&models.Menu{TenantID: tenant.ID, LocationID: other.ID, Name: "Summer", Active: true}).Error)

	service := NewMenuService(db)

	menus, total, err := service.List(tenant.ID, &MenuListFilter{LocationID: other.ID}, defaultPage())
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, menus, 1)
	assert.Equal(t, "Summer", menus[0].Name)
	assert.Equal(t, "Terrace", menus[0].LocationName)

	all, allTotal, err := service.List(tenant.ID, nil, defaultPage())
	require.NoError(t, err)
	assert.Equal(t, int64(2), allTotal)
	assert.Len(t, all, 2)
}

func TestMenuDeleteCascades(t *testing.T) {
	db := newTestDB(t)
	tree := createMenuTree(t, db, createTestTenant(t, db, "tenant-a"))

	service := NewMenuService(db)
	require.NoError(t, service.Delete(tree.Tenant.ID, tree.Menu.ID))

	var categoryCount, itemCount int64
	db.Model(&models.Category{}).Where("menu_id = ?", tree.Menu.ID).Count(&categoryCount)
	db.Model(&models.Item{}).Where("category_id = ?", tree.Category.ID).Count(&itemCount)
	assert.Zero(t, categoryCount)
	assert.Zero(t, itemCount)

	// 门店本身保留
	var location models.Location
	assert.NoError(t, db.First(&location, tree.Location.ID).Error)
}
