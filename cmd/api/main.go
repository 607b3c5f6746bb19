package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"idea-feed/cmd/api/router"
	"idea-feed/cmd/api/services"
	"idea-feed/config"
	"idea-feed/db"
	_ "idea-feed/docs" // swag will generate this package
	"idea-feed/internal/logger"
	"idea-feed/repositories"
	ideaServices "idea-feed/services"
)

// @title           Idea Feed API
// @version         1.0
// @description     Collects app and startup idea posts from reddit, twitter and rss feeds and classifies them
// @BasePath        /api
func main() {
	config.InitApp()
	cfg := config.GetConfig()
	logger.InitFromEnv("LOG_LEVEL", cfg.Logging.Level)

	classifiers := ideaServices.NewClassifierSet(cfg.Classifier.Preset)
	collector := ideaServices.NewCollector(ideaServices.SourcesFromConfig(cfg), classifiers)

	deps := router.Deps{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Scrape:         services.NewScrapeService(cfg, collector),
		Classify:       services.NewClassifyService(classifiers),
	}

	// Mongo 가 없어도 수집/분류 API 는 동작한다.
	ctx := context.Background()
	if err := db.Init(ctx); err != nil {
		logger.WarnWithFields("mongo unavailable, /api/v1/ideas disabled", logger.Fields{"error": err.Error()})
	} else {
		defer db.Disconnect(context.Background())
		deps.Ideas = services.NewIdeaService(repositories.NewIdeaRepository(db.Database()))
		deps.Health = func(ctx context.Context) error { return db.Client().Ping(ctx, nil) }
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router.New(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.InfoWithFields("api server listening", logger.Fields{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.ErrorWithFields("api server failed", logger.Fields{"error": err.Error()})
			os.Exit(1)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.ErrorWithFields("api server shutdown failed", logger.Fields{"error": err.Error()})
	}
}
