package services

import (
	"context"
	"fmt"

	"idea-feed/config"
	"idea-feed/db"
	"idea-feed/eventbus"
	"idea-feed/repositories"
)

// eventMaxRetry 는 idea.collected 이벤트의 재시도 횟수다.
const eventMaxRetry = 3

// NewSinkFromConfig 는 aggregate.sink 설정에 맞는 Sink 를 연결한다.
// 반환된 closer 는 항상 호출해도 안전하다. config.SinkNone 이면 Sink 는 nil 이다.
func NewSinkFromConfig(ctx context.Context, cfg config.AppConfig, source string) (Sink, func(), error) {
	noop := func() {}
	switch cfg.Aggregate.Sink {
	case config.SinkNone:
		return nil, noop, nil

	case config.SinkKafka:
		brokers, err := eventbus.GetBrokers()
		if err != nil {
			return nil, noop, err
		}
		if err := eventbus.EnsureTopics(ctx, brokers, eventbus.TopicIdeaEvents, cfg.Kafka.Partitions); err != nil {
			return nil, noop, fmt.Errorf("ensure topics: %w", err)
		}
		bus, err := eventbus.NewKafkaEventBus(brokers)
		if err != nil {
			return nil, noop, err
		}
		return NewEventSink(bus, eventbus.TopicIdeaEvents, source, eventMaxRetry), bus.Close, nil

	default:
		if err := db.Init(ctx); err != nil {
			return nil, noop, fmt.Errorf("init mongo: %w", err)
		}
		closer := func() { _ = db.Disconnect(context.Background()) }
		return NewRepositorySink(repositories.NewIdeaRepository(db.Database())), closer, nil
	}
}
