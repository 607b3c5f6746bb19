package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"idea-feed/config"
	"idea-feed/eventbus"
	"idea-feed/internal/logger"
)

func main() {
	config.InitApp()
	cfg := config.GetConfig()
	// Retry worker 로그 레벨은 환경변수 LOG_LEVEL 로 제어한다.
	logger.InitFromEnv("LOG_LEVEL", cfg.Logging.Level)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	brokers, err := eventbus.GetBrokers()
	if err != nil {
		logger.Log.Errorf("kafka is not configured: %v", err)
		os.Exit(1)
	}
	baseGroupID, err := eventbus.GetGroupID()
	if err != nil {
		logger.Log.Errorf("kafka is not configured: %v", err)
		os.Exit(1)
	}

	for _, t := range eventbus.AllTopics {
		if err := eventbus.EnsureTopics(ctx, brokers, t, cfg.Kafka.Partitions); err != nil {
			logger.Log.Errorf("failed to ensure eventbus topics for %s: %v", t.Base(), err)
		}
	}

	bus, err := eventbus.NewKafkaEventBus(brokers)
	if err != nil {
		logger.Log.Errorf("failed to create event bus: %v", err)
		os.Exit(1)
	}
	defer bus.Close()

	groupID := baseGroupID + "-retry-worker"

	logger.Log.Info("starting retry worker service with eventbus...")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	var wg sync.WaitGroup
	for _, topic := range eventbus.AllTopics {
		wg.Add(1)
		go func() {
			defer wg.Done()
			topicGroupID := groupID + "-" + strings.ReplaceAll(topic.Base(), ".", "-")
			if err := bus.StartRetryReinjector(ctx, topicGroupID, topic); err != nil && !errors.Is(err, context.Canceled) {
				logger.Log.Errorf("eventbus retry reinjector error for %s: %v", topic.Base(), err)
			}
		}()
	}

	<-sigChan
	logger.Log.Info("received shutdown signal, shutting down retry worker service...")

	cancel()
	wg.Wait()

	logger.Log.Info("retry worker service stopped")
}
