package routes

import (
	"net/http"

	"netwatch/internal/controllers"

	"github.com/gin-gonic/gin"
)

// RegisterMonitorRoutes mounts the control surface, live stream and
// Prometheus endpoint
func RegisterMonitorRoutes(r *gin.Engine, mc *controllers.MonitorController, sc *controllers.StreamController, metrics http.Handler) {
	api := r.Group("/api")
	{
		api.GET("/config", mc.GetConfig)
		api.PUT("/config", mc.UpdateConfig)
		api.GET("/series", mc.GetSeries)
		api.GET("/status", mc.GetStatus)
	}

	r.GET("/ws", sc.HandleWebSocket)
	r.GET("/metrics", gin.WrapH(metrics))
}
