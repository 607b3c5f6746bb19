package eventbus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// RetryDelays는 재시도 횟수(1-based)별로 사용할 고정된 지연 시간 목록입니다.
var RetryDelays = []time.Duration{
	10 * time.Second, // 1차 재시도
	30 * time.Second, // 2차 재시도
	1 * time.Minute,  // 3차 재시도
	5 * time.Minute,  // 4차 재시도
	10 * time.Minute, // 5차 재시도
}

// Topic은 토픽의 기본 이름, 재시도 토픽, DLQ 토픽 이름을 관리합니다.
type Topic struct {
	base string
}

func NewTopic(base string) Topic {
	return Topic{base: base}
}

func (t Topic) Base() string {
	return t.base
}

// DLQ는 DLQ 토픽 이름을 반환합니다 (예: my_topic.dlq).
func (t Topic) DLQ() string {
	return t.base + ".dlq"
}

func (t Topic) retryTopic(delay time.Duration) string {
	// 토픽 이름 형식: base.retry.10s
	return fmt.Sprintf("%s.retry.%s", t.base, delay.String())
}

// GetRetryTopics는 모든 재시도 토픽의 이름을 반환합니다.
func (t Topic) GetRetryTopics() []string {
	topics := make([]string, len(RetryDelays))
	for i, delay := range RetryDelays {
		topics[i] = t.retryTopic(delay)
	}
	return topics
}

// GetRetryTopic은 다음 재시도 횟수(1-based)에 해당하는 재시도 토픽 이름을 반환합니다.
func (t Topic) GetRetryTopic(retryCount int) (string, error) {
	if retryCount <= 0 || retryCount > len(RetryDelays) {
		return "", ErrMaxRetryExceeded
	}
	return t.retryTopic(RetryDelays[retryCount-1]), nil
}

// ParseRetryDelayFromTopicName는 GetRetryTopic 이 만든 토픽 이름에서 지연 시간을 추출합니다.
// 예: "idea-feed.idea.events.retry.1m0s" -> 1m0s
// RetryDelays 에 없는 지연 시간은 거부합니다.
func ParseRetryDelayFromTopicName(name string) (time.Duration, bool) {
	idx := strings.LastIndex(name, ".retry.")
	if idx == -1 || idx+7 >= len(name) {
		return 0, false
	}
	d, err := time.ParseDuration(name[idx+7:])
	if err != nil {
		return 0, false
	}
	for _, known := range RetryDelays {
		if known == d {
			return d, true
		}
	}
	return 0, false
}

// Event는 Kafka 메시지의 페이로드로 사용되는 구조체입니다.
type Event struct {
	ID        string          `json:"id"`
	Type      string          `json:"type,omitempty"`
	Payload   json.RawMessage `json:"payload"`
	Retry     int             `json:"retry"` // 현재 재시도 횟수 (0부터 시작)
	MaxRetry  int             `json:"max_retry"`
	LastError string          `json:"last_error,omitempty"`
}

// EventHandler는 이벤트 처리 함수의 시그니처입니다.
type EventHandler func(ctx context.Context, event Event) error

// Publisher 는 발행만 필요한 호출자(수집기 sink 등)를 위한 인터페이스입니다.
type Publisher interface {
	Publish(ctx context.Context, topic string, event Event) error
}

// EventBus 인터페이스는 이벤트 발행 및 구독의 추상화를 정의합니다.
type EventBus interface {
	Publisher
	// Subscribe는 기본 토픽을 구독하여 메인 로직을 실행합니다.
	Subscribe(ctx context.Context, groupID string, topic Topic, handler EventHandler) error
	// StartRetryReinjector는 모든 재시도 토픽을 구독하고 기본 토픽으로 이벤트를 재발행합니다.
	StartRetryReinjector(ctx context.Context, groupID string, topic Topic) error
	Close()
}

// ErrMaxRetryExceeded는 최대 재시도 횟수를 초과했을 때 반환되는 오류입니다.
var ErrMaxRetryExceeded = errors.New("최대 재시도 횟수 초과")

// ErrRetryScheduleFailed는 재시도 또는 DLQ 발행에 실패했을 때 반환되는 오류입니다.
var ErrRetryScheduleFailed = errors.New("재시도 또는 DLQ 발행 실패")

// normalizeMaxRetry 는 설정되지 않았거나 범위를 벗어난 MaxRetry 를 보정합니다.
func normalizeMaxRetry(n int) int {
	if n <= 0 || n > len(RetryDelays) {
		return len(RetryDelays)
	}
	return n
}

// NextDestination 은 핸들러가 handlerErr 로 실패한 evt 를 어디로 보낼지 결정합니다.
// 재시도 여유가 있으면 다음 재시도 토픽과 Retry 가 증가된 이벤트를, 아니면 DLQ 를 반환합니다.
func NextDestination(topic Topic, evt Event, handlerErr error) (string, Event) {
	evt.MaxRetry = normalizeMaxRetry(evt.MaxRetry)
	evt.LastError = handlerErr.Error()

	next := evt.Retry + 1
	if next > evt.MaxRetry {
		return topic.DLQ(), evt
	}
	retryTopic, err := topic.GetRetryTopic(next)
	if err != nil {
		return topic.DLQ(), evt
	}
	evt.Retry = next
	return retryTopic, evt
}
