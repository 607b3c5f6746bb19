package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"

	"idea-feed/internal/logger"
)

// KafkaEventBus는 confluent-kafka-go 라이브러리를 사용한 EventBus 구현체입니다.
type KafkaEventBus struct {
	Producer *kafka.Producer
	Brokers  string
}

// NewKafkaEventBus는 Kafka Producer를 초기화합니다.
func NewKafkaEventBus(brokers string) (*KafkaEventBus, error) {
	p, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers": brokers,
		"acks":              "all",
		"retries":           5,
	})
	if err != nil {
		return nil, fmt.Errorf("kafka Producer 생성 실패: %w", err)
	}

	// Producer 이벤트를 처리하는 고루틴 (전달 보고서 등)
	go func() {
		for e := range p.Events() {
			switch ev := e.(type) {
			case *kafka.Message:
				if ev.TopicPartition.Error != nil {
					logger.ErrorWithFields("메시지 전달 실패", logger.Fields{
						"partition": ev.TopicPartition.String(),
						"error":     ev.TopicPartition.Error.Error(),
					})
				}
			case kafka.Error:
				logger.ErrorWithFields("Kafka 오류", logger.Fields{"error": ev.Error()})
			}
		}
	}()

	return &KafkaEventBus{
		Producer: p,
		Brokers:  brokers,
	}, nil
}

// Close는 Producer를 안전하게 종료합니다.
func (k *KafkaEventBus) Close() {
	if k.Producer != nil {
		// 5초 동안 남은 메시지를 모두 플러시합니다.
		if remaining := k.Producer.Flush(5000); remaining > 0 {
			logger.Log.Warnf("플러시 후에도 %d개의 메시지가 남아 있습니다.", remaining)
		}
		k.Producer.Close()
		logger.Log.Info("Kafka Producer 종료.")
	}
}

// Publish는 지정된 토픽에 이벤트를 발행하고 전달 보고를 기다립니다.
func (k *KafkaEventBus) Publish(ctx context.Context, topic string, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("이벤트 마샬링 실패: %w", err)
	}

	deliveryChan := make(chan kafka.Event, 1)

	err = k.Producer.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &topic, Partition: kafka.PartitionAny},
		Value:          data,
		Key:            []byte(event.ID),
	}, deliveryChan)
	if err != nil {
		return fmt.Errorf("메시지 발행 실패: %w", err)
	}

	select {
	case ev := <-deliveryChan:
		m, ok := ev.(*kafka.Message)
		if !ok {
			return fmt.Errorf("예상치 못한 전달 보고: %v", ev)
		}
		if m.TopicPartition.Error != nil {
			return fmt.Errorf("메시지 전달 실패: %w", m.TopicPartition.Error)
		}
	case <-ctx.Done():
		return ctx.Err()
	}

	return nil
}

func (k *KafkaEventBus) newConsumer(groupID string) (*kafka.Consumer, error) {
	return kafka.NewConsumer(&kafka.ConfigMap{
		"bootstrap.servers":             k.Brokers,
		"group.id":                      groupID,
		"auto.offset.reset":             "earliest",
		"enable.auto.commit":            false, // 재시도 로직을 위해 수동 커밋 사용
		"partition.assignment.strategy": "range",
	})
}

// Subscribe는 기본 토픽을 구독하고 메인 비즈니스 핸들러를 실행합니다.
// 핸들러가 실패하면 NextDestination 에 따라 재시도 토픽 또는 DLQ 로 발행한 뒤 커밋합니다.
func (k *KafkaEventBus) Subscribe(ctx context.Context, groupID string, topic Topic, handler EventHandler) error {
	c, err := k.newConsumer(groupID)
	if err != nil {
		return fmt.Errorf("kafka Consumer 생성 실패: %w", err)
	}
	defer c.Close()

	topicsToSubscribe := []string{topic.Base()}
	if err := c.SubscribeTopics(topicsToSubscribe, nil); err != nil {
		return fmt.Errorf("토픽 구독 실패 %v: %w", topicsToSubscribe, err)
	}

	logger.InfoWithFields("메인 컨슈머 시작됨", logger.Fields{
		"group_id": groupID,
		"topics":   strings.Join(topicsToSubscribe, ", "),
	})

	for {
		select {
		case <-ctx.Done():
			logger.Log.Info("메인 컨슈머 종료 중.")
			return ctx.Err()
		default:
		}

		msg, err := c.ReadMessage(100 * time.Millisecond)
		if err != nil {
			if kerr, ok := err.(kafka.Error); ok && kerr.IsFatal() {
				return fmt.Errorf("메인 컨슈머 치명적 오류: %w", err)
			}
			continue
		}

		var evt Event
		if err := json.Unmarshal(msg.Value, &evt); err != nil {
			logger.ErrorWithFields("이벤트 페이로드 오류. 메시지를 건너뛰고 커밋합니다.", logger.Fields{
				"topic": *msg.TopicPartition.Topic,
				"error": err.Error(),
			})
			c.CommitMessage(msg)
			continue
		}
		evt.MaxRetry = normalizeMaxRetry(evt.MaxRetry)

		if evt.Retry > 0 {
			logger.InfoWithFields("이벤트 재처리 시작", logger.Fields{
				"event_id": evt.ID,
				"retry":    evt.Retry,
				"max":      evt.MaxRetry,
			})
		}

		if handlerErr := handler(ctx, evt); handlerErr != nil {
			dest, next := NextDestination(topic, evt, handlerErr)
			fields := logger.Fields{
				"event_id":    evt.ID,
				"destination": dest,
				"retry":       next.Retry,
				"error":       handlerErr.Error(),
			}
			if dest == topic.DLQ() {
				logger.ErrorWithFields("최대 재시도 횟수 초과. DLQ 로 전송", fields)
			} else {
				logger.WarnWithFields("이벤트 처리 실패. 재시도 예약", fields)
			}
			if err := k.Publish(ctx, dest, next); err != nil {
				// 발행 실패 시 커밋하지 않아 메시지가 다시 전달된다.
				logger.ErrorWithFields("재시도/DLQ 발행 실패. 오프셋 커밋 안함.", logger.Fields{
					"event_id":    evt.ID,
					"destination": dest,
					"error":       fmt.Errorf("%w: %v", ErrRetryScheduleFailed, err).Error(),
				})
				continue
			}
		}

		if _, err := c.CommitMessage(msg); err != nil {
			logger.ErrorWithFields("오프셋 커밋 오류", logger.Fields{"error": err.Error()})
		}
	}
}

// StartRetryReinjector는 모든 재시도 토픽을 구독하고 지연 시간이 지난 메시지를 기본 토픽으로 재발행합니다.
func (k *KafkaEventBus) StartRetryReinjector(ctx context.Context, groupID string, topic Topic) error {
	c, err := k.newConsumer(groupID)
	if err != nil {
		return fmt.Errorf("kafka 재시도 재주입기 생성 실패: %w", err)
	}
	defer c.Close()

	retryTopics := topic.GetRetryTopics()
	if err := c.SubscribeTopics(retryTopics, nil); err != nil {
		return fmt.Errorf("재시도 토픽 구독 실패 %v: %w", retryTopics, err)
	}

	logger.InfoWithFields("재시도 재주입 컨슈머 시작됨", logger.Fields{
		"group_id": groupID,
		"topics":   strings.Join(retryTopics, ", "),
	})

	for {
		select {
		case <-ctx.Done():
			logger.Log.Info("재시도 재주입 컨슈머 종료 중.")
			return ctx.Err()
		default:
		}

		msg, err := c.ReadMessage(100 * time.Millisecond)
		if err != nil {
			if kerr, ok := err.(kafka.Error); ok {
				if kerr.Code() == kafka.ErrTimedOut {
					continue
				}
				if kerr.IsFatal() {
					return fmt.Errorf("재시도 재주입 컨슈머 치명적 오류: %w", err)
				}
			}
			logger.ErrorWithFields("재시도 재주입 컨슈머 ReadMessage 오류", logger.Fields{"error": err.Error()})
			time.Sleep(500 * time.Millisecond)
			continue
		}

		topicName := *msg.TopicPartition.Topic
		delay, ok := ParseRetryDelayFromTopicName(topicName)
		if !ok {
			logger.ErrorWithFields("재시도 토픽 이름 파싱 실패. 메시지를 건너뛰고 커밋합니다.", logger.Fields{"topic": topicName})
			c.CommitMessage(msg)
			continue
		}

		if wait := time.Until(msg.Timestamp.Add(delay)); wait > 0 {
			// 파티션을 되감아 같은 메시지를 나중에 다시 읽는다.
			if err := sleepCtx(ctx, min(wait, 500*time.Millisecond)); err != nil {
				return err
			}
			if err := c.Seek(msg.TopicPartition, 0); err != nil {
				logger.ErrorWithFields("재시도 메시지 되감기 실패", logger.Fields{"topic": topicName, "error": err.Error()})
			}
			continue
		}

		var evt Event
		if err := json.Unmarshal(msg.Value, &evt); err != nil {
			logger.ErrorWithFields("재시도 이벤트 페이로드 오류. 메시지를 건너뛰고 커밋합니다.", logger.Fields{
				"topic": topicName,
				"error": err.Error(),
			})
			c.CommitMessage(msg)
			continue
		}

		logger.InfoWithFields("이벤트 재주입", logger.Fields{
			"event_id": evt.ID,
			"from":     topicName,
			"to":       topic.Base(),
			"retry":    evt.Retry,
		})
		if err := k.Publish(ctx, topic.Base(), evt); err != nil {
			logger.ErrorWithFields("이벤트 재주입 실패. 오프셋 커밋 안함.", logger.Fields{"event_id": evt.ID, "error": err.Error()})
			continue
		}

		if _, err := c.CommitMessage(msg); err != nil {
			logger.ErrorWithFields("재주입 후 커밋 오류", logger.Fields{"error": err.Error()})
		}
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
