package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"clothing-catalog/internal/cache"
	"clothing-catalog/internal/config"
	"clothing-catalog/internal/database"
	"clothing-catalog/internal/logger"
	"clothing-catalog/internal/repository"
	"clothing-catalog/internal/routes"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.LoadConfig()

	log, err := logger.New(cfg.LogMode, cfg.LogFile)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()
	zap.ReplaceGlobals(log)

	switch {
	case cfg.DotEnvErr != nil:
		log.Warn("error loading .env file", zap.Error(cfg.DotEnvErr))
	case cfg.DotEnv:
		log.Info(".env file loaded")
	default:
		log.Info("using system environment variables")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	search := repository.SearchOptions{
		Mode:            repository.SearchMode(cfg.SearchMode),
		IncludeCategory: cfg.SearchIncludeCategory,
	}

	catalog, closeStore, err := openCatalog(ctx, cfg, search, log)
	if err != nil {
		log.Fatal("open catalog", zap.String("store", cfg.Store), zap.Error(err))
	}
	defer closeStore()

	router := routes.NewRouter(catalog, cache.New(cfg.CategoryCacheTTL), log)
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("server running",
			zap.String("addr", srv.Addr),
			zap.String("store", cfg.Store),
			zap.String("search_mode", cfg.SearchMode),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("listen", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", zap.Error(err))
	}
}

// openCatalog builds the configured store and returns a func releasing it.
func openCatalog(ctx context.Context, cfg *config.Config, search repository.SearchOptions, log *zap.Logger) (repository.Catalog, func(), error) {
	if cfg.Store == config.StoreFile {
		catalog, err := repository.LoadMemoryCatalog(cfg.CatalogFile, search)
		if err != nil {
			return nil, nil, err
		}
		log.Info("catalog loaded from file", zap.String("file", cfg.CatalogFile))
		return catalog, func() {}, nil
	}

	client, err := database.Connect(ctx, cfg.MongoURI)
	if err != nil {
		return nil, nil, err
	}
	db := client.Database(cfg.MongoDB)
	banners := db.Collection(cfg.BannersCollection)

	if err := database.EnsureBannerIndex(ctx, banners); err != nil {
		// existing duplicates block the index; the pre-insert check still applies
		log.Warn("banner category index not created", zap.Error(err))
	}

	closeFn := func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			log.Error("disconnect mongo", zap.Error(err))
		}
	}
	return repository.NewMongoCatalog(db.Collection(cfg.ProductsCollection), banners, search), closeFn, nil
}
