package routes

import (
	"net/http"

	"netwatch/internal/controllers"
	"netwatch/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RouterOptions collects the dependencies of the HTTP surface
type RouterOptions struct {
	Monitor        *controllers.MonitorController
	Stream         *controllers.StreamController
	Metrics        http.Handler
	AllowedOrigins []string
	Log            *zap.SugaredLogger
}

// NewRouter builds the gin engine with the shared middleware chain
func NewRouter(opts RouterOptions) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(opts.Log))
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.CORSMiddleware(opts.AllowedOrigins))
	// 20 requests per second per IP, burst of 40
	r.Use(middleware.RateLimitMiddleware(middleware.NewRateLimiter(rate.Limit(20), 40), opts.Log))

	RegisterMonitorRoutes(r, opts.Monitor, opts.Stream, opts.Metrics)
	return r
}
