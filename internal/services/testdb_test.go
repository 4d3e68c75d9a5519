package services

import (
	"testing"

	"qrmenu/internal/models"
	"qrmenu/pkg/pagination"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB 创建内存数据库
// 限制单连接，避免内存库在多连接下各自独立
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.Tenant{},
		&models.User{},
		&models.Location{},
		&models.Menu{},
		&models.Category{},
		&models.Item{},
		&models.Price{},
		&models.MediaAsset{},
		&models.ItemMedia{},
		&models.AnalyticsEvent{},
		&models.QRCode{},
	)
	require.NoError(t, err)

	return db
}

// createTestTenant 创建激活状态的测试租户
func createTestTenant(t *testing.T, db *gorm.DB, slug string) *models.Tenant {
	t.Helper()
	tenant := &models.Tenant{
		Name:   slug,
		Slug:   slug,
		Status: models.TenantStatusActive,
	}
	require.NoError(t, db.Create(tenant).Error)
	return tenant
}

// menuTree 一条完整的门店→菜单→分类→菜品链
type menuTree struct {
	Tenant   *models.Tenant
	Location *models.Location
	Menu     *models.Menu
	Category *models.Category
	Item     *models.Item
}

// createMenuTree 为租户创建一条完整的菜单链
func createMenuTree(t *testing.T, db *gorm.DB, tenant *models.Tenant) *menuTree {
	t.Helper()

	location := &models.Location{TenantID: tenant.ID, Name: "Main Hall", IsActive: true}
	require.NoError(t, db.Create(location).Error)

	menu := &models.Menu{TenantID: tenant.ID, LocationID: location.ID, Name: "Main Menu", Active: true}
	require.NoError(t, db.Create(menu).Error)

	category := &models.Category{TenantID: tenant.ID, MenuID: menu.ID, Name: "Starters", Sort: 1}
	require.NoError(t, db.Create(category).Error)

	item := &models.Item{TenantID: tenant.ID, CategoryID: category.ID, Name: "Bruschetta"}
	require.NoError(t, db.Create(item).Error)

	return &menuTree{
		Tenant:   tenant,
		Location: location,
		Menu:     menu,
		Category: category,
		Item:     item,
	}
}

// defaultPage 默认分页参数
func defaultPage() *pagination.PageParams {
	return &pagination.PageParams{Page: 1, PageSize: 20}
}
