package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ansamedicdent/catalog_api/internal/cache"
	"github.com/ansamedicdent/catalog_api/internal/config"
	"github.com/ansamedicdent/catalog_api/internal/database"
	"github.com/ansamedicdent/catalog_api/internal/handler"
	"github.com/ansamedicdent/catalog_api/internal/middleware"
	"github.com/ansamedicdent/catalog_api/internal/repository"
	"github.com/ansamedicdent/catalog_api/internal/service"
	"github.com/ansamedicdent/catalog_api/internal/static"
	"github.com/ansamedicdent/catalog_api/internal/worker"
)

// main is the application entrypoint for the catalog API.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Msg("starting catalog api")

	// 3. Connect database (remote catalog store)
	db, err := database.Connect(&cfg.DB)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		fmt.Fprintf(os.Stderr, "database connection failed: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	// 3a. Run migrations
	if err := runMigrations(db.DB); err != nil {
		log.Error().Err(err).Msg("migration failed")
		fmt.Fprintf(os.Stderr, "migration failed: %v\n", err)
		os.Exit(1)
	}
	log.Info().Msg("migrations completed successfully")

	// 4. Load static catalog (fail fast on a broken bundle or override file)
	staticCatalog := static.NewCatalog(cfg.Catalog.StaticPath)
	staticCats, err := staticCatalog.Categories()
	if err != nil {
		log.Error().Err(err).Msg("static catalog load failed")
		fmt.Fprintf(os.Stderr, "static catalog load failed: %v\n", err)
		os.Exit(1)
	}
	log.Info().Int("categories", len(staticCats)).Msg("static catalog loaded")

	// 5. Initialize remote source, optionally behind the snapshot cache
	remoteRepo := repository.NewRemoteCatalogRepository(db)
	var remoteSource service.RemoteSource = remoteRepo

	// 5a. Context for workers and graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var redisClient *cache.RedisClient
	if cfg.Catalog.CacheTTL > 0 {
		redisClient, err = cache.NewRedisClient(&cfg.Redis)
		if err != nil {
			log.Error().Err(err).Msg("redis connection failed")
			fmt.Fprintf(os.Stderr, "redis connection failed: %v\n", err)
			os.Exit(1)
		}
		defer redisClient.Close()

		cachedSource := cache.NewCachedRemoteSource(redisClient, remoteRepo, cfg.Catalog.CacheTTL)
		remoteSource = cachedSource
		go worker.NewRefreshWorker(cachedSource, cfg.Catalog.RefreshInterval).Start(ctx)
		log.Info().Dur("ttl", cfg.Catalog.CacheTTL).Msg("remote catalog snapshot cache enabled")
	}

	// 6. Initialize services
	catalogSvc := service.NewCatalogService(remoteSource, staticCatalog, cfg.Catalog.RemoteTimeout)

	// 7. Initialize handlers
	handlers := &Handlers{
		Health:  handler.NewHealthHandler(db, staticCatalog),
		Catalog: handler.NewCatalogHandler(catalogSvc, cfg.Catalog.PageSize),
	}

	// 8. Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.LoggingMiddleware())
	setupRoutes(router, handlers)

	// 9. Start HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 10. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// 11. Cancel context to stop workers
	cancel()

	// 12. Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

// Handlers groups all HTTP handlers used by the server.
type Handlers struct {
	Health  *handler.HealthHandler
	Catalog *handler.CatalogHandler
}

// setupRoutes registers all routes.
func setupRoutes(router *gin.Engine, handlers *Handlers) {
	router.GET("/v1/health", handlers.Health.GetHealth)

	// Public catalog routes
	catalog := router.Group("/v1/catalog")
	{
		catalog.GET("/products", handlers.Catalog.GetProducts)
		catalog.GET("/products/featured", handlers.Catalog.GetFeaturedProducts)
		catalog.GET("/products/:id", handlers.Catalog.GetProduct)
		catalog.GET("/categories", handlers.Catalog.GetCategories)
	}
}

// runMigrations runs database migrations using golang-migrate.
func runMigrations(db *sql.DB) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres", driver)
	if err != nil {
		return fmt.Errorf("could not create migration instance: %w", err)
	}

	// Run migrations
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
