package handlers

import (
	"strconv"

	"qrmenu/pkg/jwt"

	"github.com/gin-gonic/gin"
)

// currentTenantID 从认证上下文取当前租户ID
// 租户永远来自令牌，不信任请求体里的租户字段
func currentTenantID(c *gin.Context) uint {
	claims, _ := c.Get("claims")
	userClaims := claims.(*jwt.JWTClaims)
	return userClaims.TenantID
}

// parseIDParam 解析路径中的ID参数
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}
