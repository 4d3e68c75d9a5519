package router

import (
	"time"

	"qrmenu/internal/database"
	"qrmenu/internal/handlers"
	"qrmenu/internal/middleware"
	"qrmenu/internal/models"
	"qrmenu/internal/services"
	"qrmenu/pkg/config"
	"qrmenu/pkg/jwt"
	"qrmenu/pkg/qrcode"
	"qrmenu/pkg/response"

	"github.com/gin-gonic/gin"
)

// SetupRouter 设置路由
func SetupRouter() *gin.Engine {
	router := gin.New()

	// 中间件
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.SetupCORS())

	// 注册路由
	registerRoutes(router)
	return router
}

// 注册所有路由
func registerRoutes(router *gin.Engine) {
	cfg := config.GetConfig()
	db := database.GetDB()
	jwtManager := jwt.GetJWTManager()

	userService := services.NewUserService(db)
	tenantService := services.NewTenantService(db)
	auth := middleware.NewAuthMiddleware(userService, jwtManager)

	// API路由组
	api := router.Group("/api")
	{
		// 健康检查接口
		api.GET("/health", healthCheck)
		api.GET("/ping", ping)

		// 游客菜单（无需认证）
		publicMenuHandler := handlers.NewPublicMenuHandler(
			services.NewPublicMenuService(db, database.GetRedisCache()))
		api.GET("/public/menu/:tenantSlug", publicMenuHandler.GetMenu)

		// 认证路由
		authHandler := handlers.NewAuthHandler(userService, tenantService, jwtManager)
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.RefreshToken)
			authGroup.GET("/me", auth.RequireLogin(), authHandler.Me)
		}

		// 当前租户资料
		tenantHandler := handlers.NewTenantHandler(tenantService)
		tenants := api.Group("/tenants", auth.RequireLogin())
		{
			tenants.GET("/current", tenantHandler.GetCurrent)
			// 品牌资料改动只允许owner
			tenants.PUT("/current", auth.RequireRole(models.UserRoleOwner), tenantHandler.UpdateCurrent)
		}

		// 门店路由
		locationHandler := handlers.NewLocationHandler(services.NewLocationService(db))
		locations := api.Group("/locations", auth.RequireLogin())
		{
			locations.GET("", locationHandler.List)
			locations.POST("", locationHandler.Create)
			locations.GET("/:id", locationHandler.GetByID)
			locations.PUT("/:id", locationHandler.Update)
			locations.DELETE("/:id", locationHandler.Delete)
		}

		// 菜单路由
		menuHandler := handlers.NewMenuHandler(services.NewMenuService(db))
		menus := api.Group("/menus", auth.RequireLogin())
		{
			menus.GET("", menuHandler.List)
			menus.POST("", menuHandler.Create)
			menus.GET("/:id", menuHandler.GetByID)
			menus.PUT("/:id", menuHandler.Update)
			menus.DELETE("/:id", menuHandler.Delete)
		}

		// 分类路由
		categoryHandler := handlers.NewCategoryHandler(services.NewCategoryService(db))
		categories := api.Group("/categories", auth.RequireLogin())
		{
			categories.GET("", categoryHandler.List)
			categories.POST("", categoryHandler.Create)
			categories.GET("/:id", categoryHandler.GetByID)
			categories.PUT("/:id", categoryHandler.Update)
			categories.DELETE("/:id", categoryHandler.Delete)
		}

		// 菜品路由（含价格追加和媒体绑定子资源）
		itemHandler := handlers.NewItemHandler(services.NewItemService(db))
		items := api.Group("/items", auth.RequireLogin())
		{
			items.GET("", itemHandler.List)
			items.POST("", itemHandler.Create)
			items.GET("/:id", itemHandler.GetByID)
			items.PUT("/:id", itemHandler.Update)
			items.DELETE("/:id", itemHandler.Delete)

			items.POST("/:id/prices", itemHandler.AddPrice)
			items.POST("/:id/media", itemHandler.AttachMedia)
			items.DELETE("/:id/media/:kind", itemHandler.DetachMedia)
		}

		// 媒体资源路由
		mediaAssetHandler := handlers.NewMediaAssetHandler(services.NewMediaAssetService(db))
		mediaAssets := api.Group("/media-assets", auth.RequireLogin())
		{
			mediaAssets.GET("", mediaAssetHandler.List)
			mediaAssets.POST("", mediaAssetHandler.Create)
			mediaAssets.GET("/:id", mediaAssetHandler.GetByID)
			mediaAssets.PUT("/:id", mediaAssetHandler.Update)
			mediaAssets.DELETE("/:id", mediaAssetHandler.Delete)
		}

		// 二维码路由
		generator := qrcode.NewChartAPIGenerator(cfg.QRCode.ChartAPIBase, cfg.QRCode.Size)
		qrCodeHandler := handlers.NewQRCodeHandler(services.NewQRCodeService(db, generator))
		qrCodes := api.Group("/qr-codes", auth.RequireLogin())
		{
			qrCodes.GET("", qrCodeHandler.List)
			qrCodes.POST("", qrCodeHandler.Create)
			qrCodes.GET("/:id", qrCodeHandler.GetByID)
			qrCodes.PUT("/:id", qrCodeHandler.Update)
			qrCodes.DELETE("/:id", qrCodeHandler.Delete)
		}

		// 用户管理路由（员工账号只允许owner/manager管理）
		userHandler := handlers.NewUserHandler(userService)
		users := api.Group("/users", auth.RequireLogin(),
			auth.RequireRole(models.UserRoleOwner, models.UserRoleManager))
		{
			users.GET("", userHandler.List)
			users.POST("", userHandler.Create)
			users.GET("/:id", userHandler.GetByID)
			users.PUT("/:id", userHandler.Update)
			users.DELETE("/:id", userHandler.Delete)
		}

		// 埋点统计路由
		analyticsHandler := handlers.NewAnalyticsHandler(services.NewAnalyticsService(db))
		analytics := api.Group("/analytics", auth.RequireLogin())
		{
			analytics.GET("/stats", analyticsHandler.Stats)
			analytics.POST("/track", analyticsHandler.Track)
		}
	}
}

func healthCheck(c *gin.Context) {
	data := map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now(),
		"service":   "qrmenu",
		"version":   "1.0.0",
	}
	response.Success(c, data)
}

func ping(c *gin.Context) {
	response.SuccessWithMessage(c, "pong", nil)
}
