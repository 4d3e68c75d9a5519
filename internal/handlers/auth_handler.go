package handlers

import (
	"strings"
	"time"

	"qrmenu/internal/models"
	"qrmenu/internal/services"
	"qrmenu/pkg/jwt"
	"qrmenu/pkg/response"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	userService   *services.UserService
	tenantService *services.TenantService
	jwtManager    *jwt.JWTManager
}

func NewAuthHandler(userService *services.UserService, tenantService *services.TenantService, jwtManager *jwt.JWTManager) *AuthHandler {
	return &AuthHandler{
		userService:   userService,
		tenantService: tenantService,
		jwtManager:    jwtManager,
	}
}

// LoginRequest 登录请求
// 历史原因字段叫username，实际内容是邮箱
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login 用户登录
// 失败时统一返回同一个错误，不区分"邮箱不存在"和"密码错误"
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.PublicError(c, 400, "请求参数错误")
		return
	}

	user, err := h.userService.GetByEmail(req.Username)
	if err != nil {
		response.PublicError(c, 401, "邮箱或密码错误")
		return
	}

	if !h.userService.IsActive(user) {
		response.PublicError(c, 401, "邮箱或密码错误")
		return
	}

	if !user.CheckPassword(req.Password) {
		response.PublicError(c, 401, "邮箱或密码错误")
		return
	}

	token, err := h.jwtManager.GenerateToken(user.ID, user.TenantID, user.Email, user.Role)
	if err != nil {
		response.PublicError(c, 500, "生成Token失败")
		return
	}

	// 更新最后登录时间
	now := time.Now()
	if err := h.userService.UpdateLastLogin(user.ID); err == nil {
		user.LastLoginAt = &now
	}

	if tenant, err := h.tenantService.GetByID(user.TenantID); err == nil {
		user.TenantName = tenant.Name
	}

	response.PublicSuccessWithMessage(c, "登录成功", gin.H{
		"user":        user,
		"accessToken": token,
	})
}

// Me 获取当前用户信息
func (h *AuthHandler) Me(c *gin.Context) {
	userVal, _ := c.Get("user")
	user := userVal.(*models.User)

	if tenant, err := h.tenantService.GetByID(user.TenantID); err == nil {
		user.TenantName = tenant.Name
	}

	response.Success(c, user)
}

// RefreshToken 刷新Token
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")

	var tokenString string
	switch {
	case strings.HasPrefix(authHeader, "Token "):
		tokenString = authHeader[len("Token "):]
	case strings.HasPrefix(authHeader, "Bearer "):
		tokenString = authHeader[len("Bearer "):]
	default:
		response.Unauthorized(c, "认证头格式错误")
		return
	}

	newToken, err := h.jwtManager.RefreshToken(tokenString)
	if err != nil {
		response.Unauthorized(c, "Token无效或已过期")
		return
	}

	response.Success(c, gin.H{
		"token":      newToken,
		"expires_at": time.Now().Add(h.jwtManager.GetTokenDuration()).Unix(),
	})
}
