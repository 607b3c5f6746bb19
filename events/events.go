package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"idea-feed/models"
)

// EventType 이벤트 타입 정의
type EventType string

const (
	IdeaCollected EventType = "idea.collected"
)

const EventVersion = "1"

// BaseEvent 모든 이벤트의 기본 구조
type BaseEvent struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"` // "aggregate", "api", "ideactl" 등
	Version   string    `json:"version"`
}

// IdeaCollectedEvent 분류를 마친 아이디어 한 건이 수집되었을 때 발행되는 이벤트
type IdeaCollectedEvent struct {
	BaseEvent
	Idea models.Idea `json:"idea"`
}

func newBaseEvent(t EventType, source string) BaseEvent {
	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      t,
		Timestamp: time.Now().UTC(),
		Source:    source,
		Version:   EventVersion,
	}
}

func NewIdeaCollectedEvent(source string, idea models.Idea) IdeaCollectedEvent {
	return IdeaCollectedEvent{
		BaseEvent: newBaseEvent(IdeaCollected, source),
		Idea:      idea,
	}
}

// SerializeEvent 이벤트를 JSON으로 직렬화하고 타입 정보 반환
func SerializeEvent(event interface{}) ([]byte, EventType, error) {
	var eventType EventType

	switch e := event.(type) {
	case IdeaCollectedEvent:
		eventType = e.Type
	case *IdeaCollectedEvent:
		eventType = e.Type
	default:
		return nil, "", fmt.Errorf("unknown event type: %T", event)
	}

	data, err := json.Marshal(event)
	if err != nil {
		return nil, "", fmt.Errorf("failed to marshal event: %w", err)
	}

	return data, eventType, nil
}

// DeserializeEvent 이벤트 타입에 따라 적절한 구조체로 역직렬화
func DeserializeEvent(eventType EventType, data []byte) (interface{}, error) {
	var event interface{}

	switch eventType {
	case IdeaCollected:
		event = &IdeaCollectedEvent{}
	default:
		return nil, fmt.Errorf("unknown event type: %s", eventType)
	}

	if err := json.Unmarshal(data, event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}

	return event, nil
}
