package handlers

import (
	"errors"
	"net/http"

	"qrmenu/internal/services"
	"qrmenu/pkg/logger"
	"qrmenu/pkg/response"

	"github.com/gin-gonic/gin"
)

type PublicMenuHandler struct {
	service *services.PublicMenuService
}

func NewPublicMenuHandler(service *services.PublicMenuService) *PublicMenuHandler {
	return &PublicMenuHandler{service: service}
}

// GetMenu 游客菜单，按租户slug访问，无需认证
func (h *PublicMenuHandler) GetMenu(c *gin.Context) {
	slug := c.Param("tenantSlug")

	data, err := h.service.GetMenuJSON(c.Request.Context(), slug)
	if err != nil {
		if errors.Is(err, services.ErrTenantNotFound) {
			response.PublicError(c, http.StatusNotFound, "Restaurant not found")
			return
		}
		logger.GetLogger().Errorf("Public menu build failed for slug %s: %v", slug, err)
		response.PublicError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}
