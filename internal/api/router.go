package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/estudo-naturalistico/dashboard-backend-go/internal/config"
	"github.com/estudo-naturalistico/dashboard-backend-go/internal/handler"
	"github.com/estudo-naturalistico/dashboard-backend-go/internal/middleware"
)

// Handlers 路由依赖的处理器
type Handlers struct {
	Page          *handler.PageHandler
	Trip          *handler.TripHandler
	Visualization *handler.VisualizationHandler
}

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	// CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Expose-Headers", middleware.RequestIDHeader)

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Dashboard Backend API is running",
		})
	})

	// API 路由组
	api := r.Group("/api/v1")
	api.Use(middleware.RateLimit(cfg.RateLimit, cfg.RateWindow))
	{
		// 页面与导航
		api.POST("/navigate", h.Page.Navigate)
		api.GET("/pages", h.Page.GetRoutes)
		api.GET("/pages/:route", h.Page.GetPage)
		api.GET("/overview", h.Visualization.GetOverview)

		// 行程属性表
		trips := api.Group("/trips")
		{
			trips.GET("", h.Trip.GetTrips)
			trips.GET("/ids", h.Trip.GetTripIDs)
		}

		// 速度图层
		speed := api.Group("/speed")
		{
			speed.GET("", h.Visualization.GetSpeedOverTime)
			speed.GET("/trip", h.Visualization.GetTripSpeed)
			speed.GET("/heatmap", h.Visualization.GetHeatmap)
			speed.GET("/classified", h.Visualization.GetClassified)
			speed.GET("/timeline", h.Visualization.GetTimeline)
			speed.GET("/timeline/ws", h.Visualization.StreamTimeline)
		}

		api.GET("/hierarchy", h.Visualization.GetHierarchyLayer)
		api.GET("/palettes", h.Visualization.GetPalettes)
	}

	return r
}
