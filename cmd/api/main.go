package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/emprendia/emprendia-backend/api/routes"
	"github.com/emprendia/emprendia-backend/internal/admin"
	"github.com/emprendia/emprendia-backend/internal/analytics"
	"github.com/emprendia/emprendia-backend/internal/auth"
	"github.com/emprendia/emprendia-backend/internal/catalog"
	"github.com/emprendia/emprendia-backend/internal/favorites"
	"github.com/emprendia/emprendia-backend/internal/featured"
	"github.com/emprendia/emprendia-backend/internal/presence"
	"github.com/emprendia/emprendia-backend/internal/products"
	"github.com/emprendia/emprendia-backend/internal/profiles"
	"github.com/emprendia/emprendia-backend/internal/tags"
	"github.com/emprendia/emprendia-backend/pkg/auth/session"
	"github.com/emprendia/emprendia-backend/pkg/config"
	"github.com/emprendia/emprendia-backend/pkg/docstore"
	"github.com/emprendia/emprendia-backend/pkg/logger"
	"github.com/emprendia/emprendia-backend/pkg/metrics"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	store, err := docstore.NewFileStore(cfg.Store)
	if err != nil {
		logg.Error(context.Background(), "failed to open document store", err)
		os.Exit(1)
	}

	sessions, err := session.NewManager(cfg.Session)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	presenceStore := presence.New(cfg.Presence)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)

	authService, err := auth.NewService(store, sessions, cfg.JWT, cfg.Password)
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}
	catalogService, err := catalog.NewService(store, cfg.Catalog)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}
	productService, err := products.NewService(store, cfg.Publish)
	if err != nil {
		logg.Error(context.Background(), "failed to create product service", err)
		os.Exit(1)
	}
	profileService, err := profiles.NewService(store)
	if err != nil {
		logg.Error(context.Background(), "failed to create profile service", err)
		os.Exit(1)
	}
	favoritesService, err := favorites.NewService(store, sessions)
	if err != nil {
		logg.Error(context.Background(), "failed to create favorites service", err)
		os.Exit(1)
	}
	featuredService, err := featured.NewService(store, cfg.Catalog)
	if err != nil {
		logg.Error(context.Background(), "failed to create featured service", err)
		os.Exit(1)
	}
	tagsService, err := tags.NewService(store)
	if err != nil {
		logg.Error(context.Background(), "failed to create tags service", err)
		os.Exit(1)
	}
	analyticsService, err := analytics.NewService(store, sessions, cfg.Analytics)
	if err != nil {
		logg.Error(context.Background(), "failed to create analytics service", err)
		os.Exit(1)
	}
	adminService, err := admin.NewService(store, presenceStore, cfg.Publish)
	if err != nil {
		logg.Error(context.Background(), "failed to create admin service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	id := os.Getenv("DYNO")
	if id == "" {
		id = "local"
	}
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": id,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:   cfg,
			Logger:   logg,
			Store:    store,
			Sessions: sessions,
			Presence: presenceStore,
			Metrics:  httpMetrics,
			Registry: registry,

			Auth:      authService,
			Catalog:   catalogService,
			Products:  productService,
			Profiles:  profileService,
			Favorites: favoritesService,
			Featured:  featuredService,
			Tags:      tagsService,
			Analytics: analyticsService,
			Admin:     adminService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
