package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"qrmenu/internal/models"
	"qrmenu/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupPublicMenuTest(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&models.Tenant{}, &models.Location{}, &models.Menu{}, &models.Category{},
		&models.Item{}, &models.Price{}, &models.MediaAsset{}, &models.ItemMedia{},
	))

	tenant := &models.Tenant{Name: "Demo Restaurant", Slug: "demo-restaurant", Status: models.TenantStatusActive}
	require.NoError(t, db.Create(tenant).Error)
	location := &models.Location{TenantID: tenant.ID, Name: "Основной зал", IsActive: true}
	require.NoError(t, db.Create(location).Error)
	menu := &models.Menu{TenantID: tenant.ID, LocationID: location.ID, Name: "Основное меню", Active: true}
	require.NoError(t, db.Create(menu).Error)
	category := &models.Category{TenantID: tenant.ID, MenuID: menu.ID, Name: "Закуски", Sort: 1}
	require.NoError(t, db.Create(category).Error)
	item := &models.Item{TenantID: tenant.ID, CategoryID: category.ID, Name: "Брускетта с томатами"}
	require.NoError(t, db.Create(item).Error)
	price := &models.Price{ItemID: item.ID, AmountMinor: 45000, Currency: "RUB"}
	require.NoError(t, db.Create(price).Error)

	handler := NewPublicMenuHandler(services.NewPublicMenuService(db, nil))

	router := gin.New()
	router.GET("/api/public/menu/:tenantSlug", handler.GetMenu)
	return router
}

func TestPublicMenuEndpoint(t *testing.T) {
	router := setupPublicMenuTest(t)

	req := httptest.NewRequest(http.MethodGet, "/api/public/menu/demo-restaurant", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")

	body := w.Body.String()
	assert.Contains(t, body, `"slug":"demo-restaurant"`)
	assert.Contains(t, body, "Закуски")
	assert.Contains(t, body, `"amount_minor":45000`)
	assert.Contains(t, body, `"currency":"RUB"`)
}

func TestPublicMenuEndpointUnknownSlug(t *testing.T) {
	router := setupPublicMenuTest(t)

	req := httptest.NewRequest(http.MethodGet, "/api/public/menu/no-such-place", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}
