package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"qrmenu/internal/models"
	"qrmenu/internal/services"
	"qrmenu/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupAnalyticsTest(t *testing.T) (*gin.Engine, *gorm.DB, *models.Tenant) {
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
		&models.Tenant{}, &models.Menu{}, &models.Category{},
		&models.Item{}, &models.Price{}, &models.MediaAsset{},
		&models.ItemMedia{}, &models.AnalyticsEvent{},
	))

	tenant := &models.Tenant{Name: "Demo", Slug: "demo-restaurant", Status: models.TenantStatusActive}
	require.NoError(t, db.Create(tenant).Error)

	handler := NewAnalyticsHandler(services.NewAnalyticsService(db))

	router := gin.New()
	// 测试里直接注入认证上下文，跳过中间件
	withClaims := func(c *gin.Context) {
		c.Set("claims", &jwt.JWTClaims{UserID: 1, TenantID: tenant.ID})
	}
	router.POST("/api/analytics/track", withClaims, handler.Track)
	router.GET("/api/analytics/stats", withClaims, handler.Stats)

	return router, db, tenant
}

func TestTrackEndpointShape(t *testing.T) {
	router, db, tenant := setupAnalyticsTest(t)

	body, _ := json.Marshal(gin.H{"session_id": "s1", "type": "play_full"})
	req := httptest.NewRequest(http.MethodPost, "/api/analytics/track", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool `json:"success"`
		EventID uint `json:"event_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.NotZero(t, resp.EventID)

	var event models.AnalyticsEvent
	require.NoError(t, db.First(&event, resp.EventID).Error)
	assert.Equal(t, tenant.ID, event.TenantID)
	assert.Equal(t, "play_full", event.Type)
}

func TestTrackEndpointRequiresType(t *testing.T) {
	router, _, _ := setupAnalyticsTest(t)

	body, _ := json.Marshal(gin.H{"session_id": "s1"})
	req := httptest.NewRequest(http.MethodPost, "/api/analytics/track", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestStatsEndpoint(t *testing.T) {
	router, _, _ := setupAnalyticsTest(t)

	body, _ := json.Marshal(gin.H{"session_id": "s1", "type": "view_category"})
	req := httptest.NewRequest(http.MethodPost, "/api/analytics/track", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(httptest.NewRecorder(), req)

	statsReq := httptest.NewRequest(http.MethodGet, "/api/analytics/stats?period=7d", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, statsReq)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Code int `json:"code"`
		Data struct {
			TotalViews  int64 `json:"total_views"`
			UniqueUsers int64 `json:"unique_users"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 200, resp.Code)
	assert.Equal(t, int64(1), resp.Data.TotalViews)
	assert.Equal(t, int64(1), resp.Data.UniqueUsers)
}
