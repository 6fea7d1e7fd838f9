package main

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pvgig/anvi-admin-api/internal/config"
	"github.com/pvgig/anvi-admin-api/internal/handler"
	"github.com/pvgig/anvi-admin-api/internal/logging"
	"github.com/pvgig/anvi-admin-api/internal/middleware"
	"github.com/pvgig/anvi-admin-api/internal/repository"
	"github.com/pvgig/anvi-admin-api/internal/service"
	"github.com/pvgig/anvi-admin-api/internal/service/wallet"
)

//go:embed openapi.yaml
var openAPISpec []byte

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logging.Init("anvi-admin-api", cfg.LogLevel, cfg.AppEnv)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	db, err := repository.NewPostgresDB(ctx, cfg.DatabaseURL, repository.PoolConfig{
		MaxOpenConns:     cfg.DBMaxOpenConns,
		MaxIdleConns:     cfg.DBMaxIdleConns,
		ConnMaxLifetimeS: cfg.DBConnMaxLifetimeS,
		ConnMaxIdleTimeS: cfg.DBConnMaxIdleTimeS,
	})
	cancel()
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	users := repository.NewUserRepository(db)
	wallets := repository.NewWalletRepository(db)
	orders := repository.NewOrderRepository(db)
	referrals := repository.NewReferralRepository(db)

	customerSvc := service.NewCustomerService(users)
	orderSvc := service.NewOrderService(orders, users)
	referralSvc := service.NewReferralService(referrals)
	walletSvc := wallet.NewService(wallets, db)

	jwtExpiry := time.Duration(cfg.JWTExpiryMinutes) * time.Minute
	authH := handler.NewAuthHandler(users, cfg.JWTSecret, jwtExpiry)
	customerH := handler.NewCustomerHandler(customerSvc)
	orderH := handler.NewOrderHandler(orderSvc)
	referralH := handler.NewReferralHandler(referralSvc)
	walletH := handler.NewWalletHandler(walletSvc)
	healthH := handler.NewHealthHandler(db)

	apiKey := middleware.APIKey(cfg.APIKey)
	authMW := middleware.Auth(cfg.JWTSecret)

	// admin routes require the API key, a valid token, and the admin role;
	// login requires the API key only.
	admin := func(h http.HandlerFunc) http.Handler {
		return apiKey(authMW(middleware.AdminOnly(h)))
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health/live", healthH.Liveness)
	mux.HandleFunc("GET /health/ready", healthH.Readiness)

	mux.HandleFunc("GET /docs", handler.ServeDocs())
	mux.HandleFunc("GET /docs/openapi.yaml", handler.ServeSpec(openAPISpec))

	mux.Handle("POST /api/v1/admin/login", apiKey(http.HandlerFunc(authH.Login)))

	mux.Handle("GET /api/v1/customers", admin(customerH.List))
	mux.Handle("GET /api/v1/customers/search", admin(customerH.Search))
	mux.Handle("GET /api/v1/customers/{id}", admin(customerH.Get))
	mux.Handle("POST /api/v1/customers", admin(customerH.Create))
	mux.Handle("PUT /api/v1/customers/{id}", admin(customerH.Update))
	mux.Handle("DELETE /api/v1/customers/{id}", admin(customerH.Delete))

	mux.Handle("GET /api/v1/orders", admin(orderH.List))
	mux.Handle("GET /api/v1/orders/search", admin(orderH.Search))
	mux.Handle("GET /api/v1/orders/{id}", admin(orderH.Get))
	mux.Handle("GET /api/v1/orders/user/{userId}", admin(orderH.ListByUser))
	mux.Handle("PUT /api/v1/orders/{id}/status", admin(orderH.UpdateStatus))
	mux.Handle("POST /api/v1/orders", admin(orderH.Create))

	mux.Handle("POST /api/v1/wallet/{id}/adjust", admin(walletH.Adjust))
	mux.Handle("GET /api/v1/wallet/{id}/entries", admin(walletH.ListEntries))

	mux.Handle("GET /api/v1/referrals", admin(referralH.List))
	mux.Handle("GET /api/v1/referrals/{id}", admin(referralH.Get))
	mux.Handle("PUT /api/v1/referrals/{id}/status", admin(referralH.UpdateStatus))

	root := middleware.Tracing(middleware.Logging(middleware.Recovery(mux)))

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           root,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("server started", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
