package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/utafrali/CatalogGo/internal/config"
	"github.com/utafrali/CatalogGo/internal/engine"
	esengine "github.com/utafrali/CatalogGo/internal/engine/elasticsearch"
	"github.com/utafrali/CatalogGo/internal/engine/memory"
	"github.com/utafrali/CatalogGo/internal/feed"
	handler "github.com/utafrali/CatalogGo/internal/handler/http"
	"github.com/utafrali/CatalogGo/internal/repository/mysql"
	"github.com/utafrali/CatalogGo/internal/seeder"
	"github.com/utafrali/CatalogGo/internal/service"
	"github.com/utafrali/CatalogGo/pkg/database"
	"github.com/utafrali/CatalogGo/pkg/health"
)

// App wires together all dependencies and runs the catalog service.
type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	db         *sql.DB
	seeder     *seeder.Seeder
	httpServer *http.Server
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	// Connect to MySQL with startup retries.
	dbCfg := cfg.MySQL()
	db, err := database.NewMySQLPoolWithLogger(ctx, &dbCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("connect mysql: %w", err)
	}
	database.RegisterPoolMetrics(db, "catalog")

	repo := mysql.NewProductRepository(db, logger)

	// Initialize search engine based on configuration.
	var eng engine.SearchEngine
	switch cfg.SearchEngine {
	case "memory":
		eng = memory.New()
		logger.Info("in-memory search engine initialized")
	default:
		eng, err = esengine.New(cfg.ElasticsearchURL, cfg.ElasticsearchIndex, logger)
		if err != nil {
			return nil, fmt.Errorf("init elasticsearch engine: %w", err)
		}
		logger.Info("elasticsearch search engine initialized",
			slog.String("url", cfg.ElasticsearchURL),
			slog.String("index", cfg.ElasticsearchIndex),
		)
	}

	// Build the service layer.
	catalogService := service.NewCatalogService(repo, eng, logger)

	// The seeder prepares both backends and loads the feed on first start.
	feedClient := feed.NewClient(cfg.FeedURL, logger)
	catalogSeeder := seeder.New(repo, eng, feedClient, logger)

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.Register("mysql", repo.Ping)
	healthHandler.Register("elasticsearch", eng.Ping)

	// HTTP router.
	router := handler.NewRouter(catalogService, healthHandler, logger)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:        cfg,
		logger:     logger,
		db:         db,
		seeder:     catalogSeeder,
		httpServer: httpServer,
	}, nil
}

// Run starts the HTTP server and the background seeder, blocking until the
// context is canceled. The server accepts traffic while seeding is still in
// progress; /health reports readiness accurately in the meantime.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 2)

	go func() {
		if err := a.seeder.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			errCh <- fmt.Errorf("seeder: %w", err)
		}
	}()

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	var errs []error

	// Graceful HTTP server shutdown with a 10-second deadline.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	if err := a.db.Close(); err != nil {
		a.logger.Error("mysql pool close error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	a.logger.Info("application shutdown complete")
	return errors.Join(errs...)
}
