package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"inspection-service/internal/config"
	"inspection-service/internal/logging"
)

func NewRouter(h *Handler, logger *logging.Logger, cfg config.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLoggingMiddleware(logger))

	api := r.Group(cfg.API.BasePath)
	{
		api.GET("/closable-orders", h.GetClosableOrders)
		api.GET("/reason-types", h.GetReasonTypes)
		api.POST("/close-order", h.CloseOrder)
		api.GET("/monitoring-feed", h.GetMonitoringFeed)
		api.GET("/monitoring-feed/ws", h.FeedSocket)
	}
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}
