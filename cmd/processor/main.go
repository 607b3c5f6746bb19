package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"idea-feed/cmd/processor/handler"
	"idea-feed/config"
	"idea-feed/db"
	"idea-feed/eventbus"
	"idea-feed/events"
	"idea-feed/internal/logger"
	"idea-feed/repositories"
)

func main() {
	config.InitApp()
	cfg := config.GetConfig()
	logger.InitFromEnv("LOG_LEVEL", cfg.Logging.Level)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// MongoDB 초기화
	if err := db.Init(ctx); err != nil {
		logger.ErrorWithFields("failed to initialize MongoDB", logger.Fields{"error": err.Error()})
		os.Exit(1)
	}
	defer func() { _ = db.Disconnect(context.Background()) }()

	// EventBus 초기화 및 토픽 보장
	brokers, err := eventbus.GetBrokers()
	if err != nil {
		logger.ErrorWithFields("kafka is not configured", logger.Fields{"error": err.Error()})
		os.Exit(1)
	}
	groupID, err := eventbus.GetGroupID()
	if err != nil {
		logger.ErrorWithFields("kafka is not configured", logger.Fields{"error": err.Error()})
		os.Exit(1)
	}
	if err := eventbus.EnsureTopics(ctx, brokers, eventbus.TopicIdeaEvents, cfg.Kafka.Partitions); err != nil {
		logger.ErrorWithFields("failed to ensure eventbus topics", logger.Fields{"error": err.Error()})
	}

	bus, err := eventbus.NewKafkaEventBus(brokers)
	if err != nil {
		logger.ErrorWithFields("failed to create event bus", logger.Fields{"error": err.Error()})
		os.Exit(1)
	}
	defer bus.Close()

	ideaHandler := handler.NewIdeaHandler(repositories.NewIdeaRepository(db.Database()))

	logger.Log.Info("starting processor service with eventbus...")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		err := eventbus.SubscribeJSON(ctx, bus, groupID, eventbus.TopicIdeaEvents,
			func(ctx context.Context, ev events.IdeaCollectedEvent, _ eventbus.Event) error {
				if ev.Type != events.IdeaCollected {
					// 다른 서비스용 이벤트는 무시 (커밋)
					return nil
				}
				return ideaHandler.HandleIdeaCollected(ctx, &ev)
			})
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.ErrorWithFields("eventbus subscribe error", logger.Fields{"error": err.Error()})
		}
	}()

	// 별도 retryworker 를 띄우지 않는 배포에서는 재주입기를 함께 실행한다.
	if cfg.Kafka.EmbeddedRetry {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := bus.StartRetryReinjector(ctx, groupID+"-retry", eventbus.TopicIdeaEvents); err != nil && !errors.Is(err, context.Canceled) {
				logger.ErrorWithFields("eventbus retry reinjector error", logger.Fields{"error": err.Error()})
			}
		}()
	}

	<-sigChan
	logger.Log.Info("received shutdown signal, shutting down processor service...")

	cancel()
	wg.Wait()

	logger.Log.Info("processor service stopped")
}
