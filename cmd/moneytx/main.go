package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/SscSPs/moneytx/internal/core/ledger"
	portssvc "github.com/SscSPs/moneytx/internal/core/ports/services"
	"github.com/SscSPs/moneytx/internal/core/services"
	"github.com/SscSPs/moneytx/internal/handlers"
	"github.com/SscSPs/moneytx/internal/middleware"
	"github.com/SscSPs/moneytx/internal/platform/config"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

// @title moneytx API
// @version 1.0
// @description In-memory ledger: open accounts, deposit, withdraw, transfer and query balances.

// @host localhost:8080
// @BasePath /
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("Server stopped with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Server stopped")
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	supervisor := ledger.NewSupervisor(logger,
		ledger.WithAskTimeout(cfg.AskTimeout),
		ledger.WithMailboxSize(cfg.MailboxSize),
		ledger.WithBackoff(cfg.SupervisorMinBackoff, cfg.SupervisorMaxBackoff, cfg.SupervisorRandomFactor),
	)

	router, err := newRouter(cfg, logger, services.NewServiceContainer(supervisor))
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// the supervisor outlives the server so in-flight requests still get replies
	ledgerCtx, stopLedger := context.WithCancel(context.Background())
	defer stopLedger()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return supervisor.Run(ledgerCtx)
	})

	g.Go(func() error {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		defer stopLedger()
		logger.Info("Shutting down server", slog.Duration("timeout", cfg.ShutdownTimeout))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func newRouter(cfg *config.Config, logger *slog.Logger, container *portssvc.ServiceContainer) (*gin.Engine, error) {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(cors.New(corsConfig(cfg)))
	}

	if cfg.RateLimit != "" {
		limiterInstance, err := middleware.NewRateLimiter(cfg.RateLimit)
		if err != nil {
			return nil, err
		}
		r.Use(middleware.RateLimit(limiterInstance))
	} else {
		logger.Warn("Rate limiting disabled")
	}

	if err := r.SetTrustedProxies(nil); err != nil {
		return nil, err
	}

	handlers.RegisterRoutes(r, cfg, container)
	return r, nil
}

func corsConfig(cfg *config.Config) cors.Config {
	c := cors.DefaultConfig()
	c.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	c.AllowHeaders = append(c.AllowHeaders, "Authorization")
	c.ExposeHeaders = []string{middleware.RequestIDHeader}
	for _, origin := range cfg.CORSAllowedOrigins {
		if origin == "*" {
			c.AllowAllOrigins = true
			c.AllowOrigins = nil
			return c
		}
	}
	c.AllowOrigins = cfg.CORSAllowedOrigins
	return c
}
