package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"data_service/internal/api/handlers"
	"data_service/internal/middleware"
	"data_service/internal/service"
)

func SetupRoutes(r *gin.Engine, services *service.Services, logger logrus.FieldLogger, registry *prometheus.Registry) {
	// 初始化 handlers
	dataHandler := handlers.NewDataHandler(services.Data, logger)
	wsHandler := handlers.NewWebSocketHandler(services.WebSocket)

	metrics := middleware.NewMetrics(registry)
	r.Use(middleware.RequestLogger(logger), metrics.Handler())

	// 處理 404 錯誤
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	data := r.Group("/data")
	{
		data.POST("", dataHandler.CreateData)
		data.GET("", dataHandler.ListData)
		data.DELETE("/:id", dataHandler.DeleteData)

		// 資料異動通知
		data.GET("/events", wsHandler.HandleWebSocket)
	}
}
