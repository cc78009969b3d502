package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/odyssey-erp/hrportal/internal/app"
	"github.com/odyssey-erp/hrportal/internal/auth"
	"github.com/odyssey-erp/hrportal/internal/masterdata"
	"github.com/odyssey-erp/hrportal/internal/masterdata/listing"
	"github.com/odyssey-erp/hrportal/internal/observability"
	"github.com/odyssey-erp/hrportal/internal/platform/apiclient"
	"github.com/odyssey-erp/hrportal/internal/platform/cache"
	"github.com/odyssey-erp/hrportal/internal/rbac"
	"github.com/odyssey-erp/hrportal/internal/shared"
	"github.com/odyssey-erp/hrportal/internal/view"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	redisClient, err := cache.New(ctx, cache.Options{Addr: cfg.RedisAddr, DialTimeout: 2 * time.Second})
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	sessionManager := shared.NewSessionManager(redisClient, "hrportal_session", cfg.SessionSecret, cfg.SessionTTL, cfg.IsProduction())
	csrfManager := shared.NewCSRFManager(cfg.CSRFSecret)
	codec, err := shared.NewIDCodec(cfg.IDURLSecret)
	if err != nil {
		logger.Error("build id codec", slog.Any("error", err))
		os.Exit(1)
	}

	templates, err := view.NewEngine()
	if err != nil {
		logger.Error("parse templates", slog.Any("error", err))
		os.Exit(1)
	}

	apiClient := apiclient.New(apiclient.Config{
		BaseURL:  cfg.APIBaseURL,
		Timeout:  cfg.APITimeout,
		RetryMax: cfg.APIRetryMax,
		Logger:   logger,
	})

	authService := auth.NewService(auth.NewRepository(apiClient))
	authCookies := auth.NewCookies(cfg.SessionSecret, cfg.SessionTTL, cfg.IsProduction())
	authHandler := auth.NewHandler(logger, authService, templates, csrfManager, authCookies)

	metrics := observability.NewMetrics()
	rbacMiddleware := rbac.Middleware{Logger: logger}

	masterDataHandler := masterdata.NewHandler(masterdata.NewServices(apiClient), listing.Deps{
		Logger:      logger,
		Templates:   templates,
		CSRF:        csrfManager,
		Codec:       codec,
		Audit:       shared.NewAuditLogger(logger),
		Idempotency: shared.NewIdempotencyStore(redisClient, cfg.IdempotencyTTL),
		Observer:    metrics,
		PageSize:    cfg.ListPageSize,
		IdleTTL:     cfg.ListIdleTTL,
	}, rbacMiddleware)
	go masterDataHandler.RunSweepers(ctx, cfg.ListSweepInterval)

	router := app.NewRouter(app.RouterParams{
		Logger:             logger,
		Config:             cfg,
		Templates:          templates,
		SessionManager:     sessionManager,
		CSRFManager:        csrfManager,
		AuthCookies:        authCookies,
		AuthHandler:        authHandler,
		MasterDataHandler:  masterDataHandler,
		PermissionsHandler: rbac.NewPermissionsHandler(logger, templates, csrfManager),
		Metrics:            metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr), slog.String("api", cfg.APIBaseURL))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
