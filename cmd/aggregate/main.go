package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"

	"idea-feed/config"
	"idea-feed/internal/logger"
	"idea-feed/services"
)

func main() {
	config.InitApp()
	cfg := config.GetConfig()
	logger.InitFromEnv("LOG_LEVEL", cfg.Logging.Level)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sink, closeSink, err := services.NewSinkFromConfig(ctx, cfg, "aggregate")
	if err != nil {
		logger.ErrorWithFields("failed to initialize sink", logger.Fields{"sink": cfg.Aggregate.Sink, "error": err.Error()})
		os.Exit(1)
	}
	defer closeSink()

	opts := []services.CollectorOption{}
	if sink != nil {
		opts = append(opts, services.WithSink(sink))
	}
	collector := services.NewCollector(
		services.SourcesFromConfig(cfg),
		services.NewClassifierSet(cfg.Classifier.Preset),
		opts...,
	)
	svc := NewAggregateService(collector)

	// 첫 실행은 즉시 1회 수행
	if cfg.Aggregate.RunOnStart {
		_, _ = svc.RunFeedCollection(ctx)
	}

	scheduler, err := newScheduler(cfg.Aggregate.Schedule, func() {
		_, _ = svc.RunFeedCollection(ctx)
	})
	if err != nil {
		logger.ErrorWithFields("invalid aggregate schedule", logger.Fields{"schedule": cfg.Aggregate.Schedule, "error": err.Error()})
		os.Exit(1)
	}
	scheduler.Start()
	logger.InfoWithFields("aggregate scheduler started", logger.Fields{"schedule": cfg.Aggregate.Schedule, "sink": cfg.Aggregate.Sink})

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Log.Info("received shutdown signal, shutting down aggregate service...")
	cancel()
	<-scheduler.Stop().Done()
	logger.Log.Info("aggregate service stopped")
}

// newScheduler 는 5필드 cron 표현식으로 job 을 등록한다.
func newScheduler(spec string, job func()) (*cron.Cron, error) {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	c := cron.New(cron.WithParser(parser), cron.WithChain(cron.Recover(cron.DefaultLogger)))
	if _, err := c.AddFunc(spec, job); err != nil {
		return nil, err
	}
	return c, nil
}
