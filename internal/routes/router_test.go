package routes

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"netwatch/internal/controllers"
	"netwatch/internal/models"
	"netwatch/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stoppedLoop struct{}

func (stoppedLoop) State() services.LoopState { return services.StateStopped }
func (stoppedLoop) Ticks() uint64             { return 0 }

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := zap.NewNop().Sugar()
	store, err := services.NewSettingsStore(models.DefaultSettings())
	require.NoError(t, err)

	latest := services.NewLatestCache()
	hub := services.NewWebSocketHub(latest, log)
	t.Cleanup(hub.Stop)

	registry := prometheus.NewRegistry()
	telemetry := services.NewTelemetry(registry)
	telemetry.ObserveCounterReset("recv")

	return NewRouter(RouterOptions{
		Monitor: &controllers.MonitorController{Settings: store, Latest: latest, Loop: stoppedLoop{}, Log: log},
		Stream:  &controllers.StreamController{Hub: hub, Log: log},
		Metrics: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		Log:     log,
	})
}

func TestNewRouter_Routes(t *testing.T) {
	r := newTestRouter(t)

	tests := []struct {
		method string
		path   string
		body   string
		code   int
		want   string
	}{
		{http.MethodGet, "/api/config", "", http.StatusOK, `"interval_seconds":1`},
		{http.MethodPut, "/api/config", `{"capacity":20}`, http.StatusOK, `"capacity":20`},
		{http.MethodGet, "/api/series", "", http.StatusOK, `"length":0`},
		{http.MethodGet, "/api/status", "", http.StatusOK, `"state":"stopped"`},
		{http.MethodGet, "/metrics", "", http.StatusOK, `netwatch_counter_resets_total{direction="recv"} 1`},
		{http.MethodGet, "/missing", "", http.StatusNotFound, ""},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.code, w.Code)
			assert.Contains(t, w.Body.String(), tt.want)
			assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
		})
	}
}
