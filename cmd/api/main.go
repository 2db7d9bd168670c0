package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"notify-svc/internal/config"
	"notify-svc/internal/domain/entity"
	hhttp "notify-svc/internal/handler/http"
	hhandler "notify-svc/internal/handler/http/handler"
	hnotification "notify-svc/internal/handler/http/notification"
	"notify-svc/internal/handler/http/pathutil"
	"notify-svc/internal/handler/http/requestid"
	hsetting "notify-svc/internal/handler/http/setting"
	pgRepo "notify-svc/internal/infra/adapter/persistence/postgres"
	sqliteRepo "notify-svc/internal/infra/adapter/persistence/sqlite"
	"notify-svc/internal/infra/attachment"
	"notify-svc/internal/infra/db"
	"notify-svc/internal/infra/notifier"
	"notify-svc/internal/observability/logging"
	"notify-svc/internal/observability/metrics"
	"notify-svc/internal/observability/tracing"
	"notify-svc/internal/repository"
	"notify-svc/internal/resilience/circuitbreaker"
	hdlUC "notify-svc/internal/usecase/handler"
	notifyUC "notify-svc/internal/usecase/notify"
	settingUC "notify-svc/internal/usecase/setting"
)

func main() {
	cfg, err := config.Load(os.Args[1:], os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger := initLogger(cfg)
	if err := run(logger, cfg); err != nil {
		logger.Error("server exited", slog.Any("error", err))
		os.Exit(1)
	}
}

// initLogger initializes and returns a structured logger based on environment configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	opts := logging.OptionsFromEnv()
	opts.Verbose = opts.Verbose || cfg.Verbose
	logger := logging.NewLogger(opts)
	slog.SetDefault(logger)
	return logger
}

func run(logger *slog.Logger, cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dialect, err := db.ParseDialect(cfg.Driver)
	if err != nil {
		return err
	}
	database, err := initDatabase(ctx, cfg, dialect)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	metrics.SetBuildInfo(cfg.Version)
	if err := metrics.RegisterDBStats(prometheus.DefaultRegisterer, database, "notify"); err != nil {
		return fmt.Errorf("register db stats: %w", err)
	}

	components := setupServer(database, dialect, cfg)
	if cfg.BootstrapFile != "" {
		b, err := config.LoadBootstrap(cfg.BootstrapFile)
		if err != nil {
			return err
		}
		if err := b.Apply(ctx, components.Settings, components.Handlers); err != nil {
			return err
		}
	}

	return runServer(ctx, logger, cfg, applyMiddleware(logger, cfg, components.Handler))
}

// initDatabase opens the database connection and runs migrations.
func initDatabase(ctx context.Context, cfg *config.Config, dialect db.Dialect) (*sql.DB, error) {
	database, err := db.Open(ctx, db.Options{
		Dialect: dialect,
		Path:    cfg.DatabasePath,
		URL:     cfg.DatabaseURL,
	})
	if err != nil {
		return nil, err
	}
	if err := db.MigrateUp(database, dialect); err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return database, nil
}

// ServerComponents holds the routed handler and the use cases bootstrap needs.
type ServerComponents struct {
	Handler  http.Handler
	Settings *settingUC.Service
	Handlers *hdlUC.Service
}

type repositories struct {
	settings repository.SettingRepository
	handlers repository.HandlerRepository
	archive  repository.ArchiveRepository
}

func newRepositories(conn repository.DBTX, dialect db.Dialect) repositories {
	if dialect == db.DialectPostgres {
		return repositories{
			settings: pgRepo.NewSettingRepo(conn),
			handlers: pgRepo.NewHandlerRepo(conn),
			archive:  pgRepo.NewArchiveRepo(conn),
		}
	}
	return repositories{
		settings: sqliteRepo.NewSettingRepo(conn),
		handlers: sqliteRepo.NewHandlerRepo(conn),
		archive:  sqliteRepo.NewArchiveRepo(conn),
	}
}

// setupServer wires repositories, use cases and routes.
func setupServer(database *sql.DB, dialect db.Dialect, cfg *config.Config) *ServerComponents {
	repos := newRepositories(circuitbreaker.NewDBCircuitBreaker(database), dialect)

	registry := notifyUC.NewRegistry()
	registry.Register(entity.HandlerTypeEmail, notifyUC.NewEmailChannelFactory(notifyUC.EmailChannelOptions{
		Limiter:  notifier.NewRateLimiter(cfg.SMTPRateLimit, cfg.SMTPRateBurst),
		Timeout:  cfg.SMTPTimeout,
		Breakers: true,
	}))

	resolver := notifyUC.NewResolver(repos.handlers, repos.settings, registry)
	dispatchSvc := notifyUC.NewService(resolver, repos.archive, attachment.NewArchiver(cfg.AttachmentsDir))
	historySvc := notifyUC.NewHistoryService(repos.archive)
	settingSvc := &settingUC.Service{Repo: repos.settings}
	handlerSvc := &hdlUC.Service{Repo: repos.handlers}

	mux := http.NewServeMux()

	// ヘルスチェックエンドポイント
	mux.Handle("GET /health", &hhttp.HealthHandler{DB: database, AttachmentsDir: cfg.AttachmentsDir, Version: cfg.Version})
	mux.Handle("GET /ready", &hhttp.ReadyHandler{DB: database})
	mux.Handle("GET /live", &hhttp.LiveHandler{})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())

	hsetting.Register(mux, settingSvc)
	hhandler.Register(mux, handlerSvc)
	hnotification.Register(mux, dispatchSvc, historySvc)

	return &ServerComponents{
		Handler:  hhttp.Router(mux),
		Settings: settingSvc,
		Handlers: handlerSvc,
	}
}

// applyMiddleware wraps the handler with middleware chain.
// Middleware order: Request ID → Tracing → Recovery → Logging → Input validation → Timeout → Metrics
func applyMiddleware(logger *slog.Logger, cfg *config.Config, handler http.Handler) http.Handler {
	middlewareChain := handler

	// Apply in reverse order (innermost to outermost)
	middlewareChain = hhttp.MetricsMiddleware(middlewareChain)
	middlewareChain = hhttp.Timeout(cfg.DispatchTimeout)(middlewareChain)
	middlewareChain = hhttp.InputValidation(cfg.MaxBodyBytes())(middlewareChain)
	middlewareChain = hhttp.Logging(logger)(middlewareChain)
	middlewareChain = hhttp.Recover(logger)(middlewareChain)
	middlewareChain = tracing.Middleware(pathutil.NormalizePath)(middlewareChain)
	middlewareChain = requestid.Middleware(middlewareChain)

	return middlewareChain
}

// runServer starts the HTTP server and shuts it down gracefully when ctx ends.
func runServer(ctx context.Context, logger *slog.Logger, cfg *config.Config, handler http.Handler) error {
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attacks
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server starting",
			slog.String("addr", srv.Addr),
			slog.String("version", cfg.Version),
			slog.String("driver", cfg.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server...")

		// Shutdown HTTP server with timeout
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		logger.Info("server stopped")
		return nil
	})
	return g.Wait()
}
