package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

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

type authTestEnv struct {
	router *gin.Engine
	db     *gorm.DB
	user   *models.User
}

func setupAuthTest(t *testing.T) *authTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.Tenant{}, &models.User{}))

	tenant := &models.Tenant{Name: "Demo Restaurant", Slug: "demo-restaurant", Status: models.TenantStatusActive}
	require.NoError(t, db.Create(tenant).Error)

	user := &models.User{
		TenantID: tenant.ID,
		Email:    "admin@demo-restaurant.com",
		Username: "admin",
		Role:     models.UserRoleOwner,
		Status:   models.UserStatusActive,
	}
	require.NoError(t, user.SetPassword("Admin@123"))
	require.NoError(t, db.Create(user).Error)

	jwtManager := jwt.NewJWTManager("test-secret", time.Hour)
	handler := NewAuthHandler(services.NewUserService(db), services.NewTenantService(db), jwtManager)

	router := gin.New()
	router.POST("/api/auth/login", handler.Login)

	return &authTestEnv{router: router, db: db, user: user}
}

func postLogin(t *testing.T, router *gin.Engine, username, password string) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(gin.H{"username": username, "password": password})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestLoginSuccess(t *testing.T) {
	env := setupAuthTest(t)

	w := postLogin(t, env.router, "admin@demo-restaurant.com", "Admin@123")
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			AccessToken string `json:"accessToken"`
			User        struct {
				Email       string  `json:"email"`
				TenantName  string  `json:"tenant_name"`
				LastLoginAt *string `json:"last_login_at"`
			} `json:"user"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Data.AccessToken)
	assert.Equal(t, "admin@demo-restaurant.com", resp.Data.User.Email)
	assert.Equal(t, "Demo Restaurant", resp.Data.User.TenantName)
	assert.NotNil(t, resp.Data.User.LastLoginAt)

	// 登录成功后落库的last_login_at被更新
	var stored models.User
	require.NoError(t, env.db.First(&stored, env.user.ID).Error)
	assert.NotNil(t, stored.LastLoginAt)
}

func TestLoginWrongPassword(t *testing.T) {
	env := setupAuthTest(t)

	w := postLogin(t, env.router, "admin@demo-restaurant.com", "wrong")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var resp struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.NotEmpty(t, resp.Error)
	assert.NotContains(t, w.Body.String(), "accessToken")
}

func TestLoginUnknownEmailSameError(t *testing.T) {
	env := setupAuthTest(t)

	wrongPassword := postLogin(t, env.router, "admin@demo-restaurant.com", "wrong")
	unknownEmail := postLogin(t, env.router, "nobody@example.com", "Admin@123")

	// 不区分"邮箱不存在"和"密码错误"
	assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	assert.JSONEq(t, wrongPassword.Body.String(), unknownEmail.Body.String())
}

func TestLoginInactiveUser(t *testing.T) {
	env := setupAuthTest(t)
	require.NoError(t, env.db.Model(env.user).Update("status", models.UserStatusSuspended).Error)

	w := postLogin(t, env.router, "admin@demo-restaurant.com", "Admin@123")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
