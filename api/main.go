package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rogerio-castellano/product-catalog/internal/config"
	"github.com/rogerio-castellano/product-catalog/internal/db"
	api "github.com/rogerio-castellano/product-catalog/internal/http"
	"github.com/rogerio-castellano/product-catalog/internal/http/ban"
	"github.com/rogerio-castellano/product-catalog/internal/http/handlers"
	mw "github.com/rogerio-castellano/product-catalog/internal/http/middleware"
	rl "github.com/rogerio-castellano/product-catalog/internal/http/rate_limiter"
	"github.com/rogerio-castellano/product-catalog/internal/obs"
	"github.com/rogerio-castellano/product-catalog/internal/redissvc"
	"github.com/rogerio-castellano/product-catalog/internal/seed"
)

// @title Product Catalog API
// @version 1.0
// @description Read-only REST API over the product catalog.
// @host localhost:5000
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		obs.Logger.Error("config_load_failed", "error", err)
		os.Exit(1)
	}
	obs.InitLogger(cfg.LogLevel)
	obs.Logger.Info("service_starting", "store_driver", cfg.StoreDriver)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, closeStore, err := db.OpenProductStore(ctx, cfg)
	if err != nil {
		obs.Logger.Error("store_connect_failed", "driver", cfg.StoreDriver, "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := closeStore(context.Background()); err != nil {
			obs.Logger.Error("store_close_failed", "error", err)
		}
	}()

	if cfg.StoreDriver == db.DriverMemory {
		if _, err := seed.Import(ctx, store, seed.Products()); err != nil {
			obs.Logger.Error("memory_seed_failed", "error", err)
			os.Exit(1)
		}
	}
	handlers.SetProductRepo(store)

	limiter := rl.New(cfg.RateLimitRPS, cfg.RateLimitBurst)
	go limiter.StartVisitorCleanupLoop(ctx, time.Minute, 5*time.Minute)

	var banner mw.Banner
	if cfg.RedisAddr != "" {
		redisService, err := redissvc.Connect(ctx, cfg.RedisAddr)
		if err != nil {
			obs.Logger.Error("redis_connect_failed", "error", err)
			os.Exit(1)
		}
		defer redisService.Close()

		banService := ban.NewService(redisService, cfg.BanStrikes, cfg.BanDuration)
		go banService.StartDailyBanSummary(ctx, 24*time.Hour)
		banner = banService
	}

	// Forwarding headers are client-controlled unless a proxy in front rewrites them.
	var middlewares []func(http.Handler) http.Handler
	if cfg.TrustProxy {
		middlewares = append(middlewares, chimw.RealIP)
	}
	middlewares = append(middlewares, mw.RateLimit(limiter, banner))

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           api.NewRouter(middlewares...),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		obs.Logger.Info("http_listen", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			obs.Logger.Error("http_server_error", "error", err)
			os.Exit(1)
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	s := <-sigc
	obs.Logger.Info("shutdown_signal", "signal", s.String())
	cancel()

	ctxSrv, cancelSrv := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancelSrv()
	if err := srv.Shutdown(ctxSrv); err != nil {
		obs.Logger.Error("http_shutdown_error", "error", err)
	}
	obs.Logger.Info("service_stopped")
}
