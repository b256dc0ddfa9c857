package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"netwatch/internal/config"
	"netwatch/internal/controllers"
	"netwatch/internal/logger"
	"netwatch/internal/routes"
	"netwatch/internal/services"
	"netwatch/internal/ui"

	"github.com/benbjohnson/clock"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, "netwatch:", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logOut, closeLog, err := logOutput(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat, logOut)
	if err != nil {
		return err
	}
	defer log.Sync()

	settings, err := services.NewSettingsStore(cfg.Settings())
	if err != nil {
		return fmt.Errorf("settings: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	clk := clock.New()
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	telemetry := services.NewTelemetry(registry)

	source := services.NewHostCounterSource(clk, cfg.CounterTimeout)
	sampler, err := services.NewRateSampler(ctx, source, log, telemetry)
	if err != nil {
		return err
	}

	latest := services.NewLatestCache()
	charts := []services.ChartRenderer{latest, telemetry}
	statuses := []services.StatusRenderer{latest, telemetry, services.LogRenderer{Log: log}}

	var hub *services.WebSocketHub
	if cfg.HTTPAddr != "" {
		hub = services.NewWebSocketHub(latest, log)
		defer hub.Stop()
		charts = append(charts, hub)
		statuses = append(statuses, hub)
	}

	var dashboard *ui.Dashboard
	if cfg.TerminalUI {
		dashboard = ui.NewDashboard(settings, log)
		charts = append(charts, dashboard)
		statuses = append(statuses, dashboard)
	}

	monitor, err := services.NewMonitor(services.MonitorOptions{
		Clock:    clk,
		Sampler:  sampler,
		Settings: settings,
		Charts:   charts,
		Statuses: statuses,
		Log:      log,
	})
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return monitor.Run(gctx)
	})

	if cfg.HTTPAddr != "" {
		gin.SetMode(gin.ReleaseMode)
		router := routes.NewRouter(routes.RouterOptions{
			Monitor: &controllers.MonitorController{
				Settings: settings,
				Latest:   latest,
				Loop:     monitor,
				Log:      log,
			},
			Stream: &controllers.StreamController{
				Hub:            hub,
				AllowedOrigins: cfg.AllowedOrigins,
				Log:            log,
			},
			Metrics:        promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
			AllowedOrigins: cfg.AllowedOrigins,
			Log:            log,
		})
		g.Go(func() error {
			return serveHTTP(gctx, cfg.HTTPAddr, router, log)
		})
	}

	if dashboard != nil {
		g.Go(func() error {
			return dashboard.Run(gctx)
		})
	}

	err = g.Wait()
	if errors.Is(err, ui.ErrQuit) {
		return nil
	}
	return err
}

func serveHTTP(ctx context.Context, addr string, handler http.Handler, log *zap.SugaredLogger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("[HTTP] listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		log.Infof("[HTTP] shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

// logOutput keeps logs off the terminal while the dashboard owns it
func logOutput(cfg *config.Config) (io.Writer, func(), error) {
	path := cfg.LogFile
	if path == "" && cfg.TerminalUI {
		path = "netwatch.log"
	}
	if path == "" {
		return os.Stderr, func() {}, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return f, func() { f.Close() }, nil
}
