package services

import (
	"context"
	"errors"
	"fmt"

	"idea-feed/eventbus"
	"idea-feed/events"
	"idea-feed/internal/logger"
	"idea-feed/metrics"
	"idea-feed/models"
)

// Sink 는 수집 결과를 외부 저장소로 내보낸다.
type Sink interface {
	Name() string
	Write(ctx context.Context, ideas []models.Idea) (SinkReport, error)
}

type SinkReport struct {
	Inserted  int `json:"inserted,omitempty"`
	Updated   int `json:"updated,omitempty"`
	Published int `json:"published,omitempty"`
	Failed    int `json:"failed,omitempty"`
}

// IdeaUpserter 는 RepositorySink 가 필요로 하는 저장소 기능이다.
type IdeaUpserter interface {
	UpsertByTitle(ctx context.Context, idea *models.Idea) (bool, error)
}

// RepositorySink 는 제목 기준 upsert 로 MongoDB 에 저장한다.
type RepositorySink struct {
	repo IdeaUpserter
}

func NewRepositorySink(repo IdeaUpserter) *RepositorySink {
	return &RepositorySink{repo: repo}
}

func (s *RepositorySink) Name() string { return "mongo" }

// Write 는 아이디어 하나의 실패로 멈추지 않는다. 실패한 항목의 오류를 모아 반환한다.
func (s *RepositorySink) Write(ctx context.Context, ideas []models.Idea) (SinkReport, error) {
	var report SinkReport
	var errs []error
	for i := range ideas {
		idea := ideas[i]
		inserted, err := s.repo.UpsertByTitle(ctx, &idea)
		if err != nil {
			report.Failed++
			metrics.SinkWrites.WithLabelValues(s.Name(), "error").Inc()
			errs = append(errs, fmt.Errorf("upsert %q: %w", idea.Title, err))
			continue
		}
		if inserted {
			report.Inserted++
			metrics.SinkWrites.WithLabelValues(s.Name(), "inserted").Inc()
		} else {
			report.Updated++
			metrics.SinkWrites.WithLabelValues(s.Name(), "updated").Inc()
		}
	}
	return report, errors.Join(errs...)
}

// EventSink 는 아이디어마다 idea.collected 이벤트를 발행한다.
type EventSink struct {
	publisher eventbus.Publisher
	topic     eventbus.Topic
	source    string
	maxRetry  int
}

func NewEventSink(publisher eventbus.Publisher, topic eventbus.Topic, source string, maxRetry int) *EventSink {
	return &EventSink{publisher: publisher, topic: topic, source: source, maxRetry: maxRetry}
}

func (s *EventSink) Name() string { return "kafka" }

func (s *EventSink) Write(ctx context.Context, ideas []models.Idea) (SinkReport, error) {
	var report SinkReport
	var errs []error
	for _, idea := range ideas {
		if err := s.publish(ctx, idea); err != nil {
			report.Failed++
			metrics.SinkWrites.WithLabelValues(s.Name(), "error").Inc()
			errs = append(errs, err)
			continue
		}
		report.Published++
		metrics.SinkWrites.WithLabelValues(s.Name(), "published").Inc()
	}
	return report, errors.Join(errs...)
}

func (s *EventSink) publish(ctx context.Context, idea models.Idea) error {
	ev := events.NewIdeaCollectedEvent(s.source, idea)
	evt, err := eventbus.NewJSONEvent(ev.ID, string(ev.Type), ev, s.maxRetry)
	if err != nil {
		return fmt.Errorf("build event for %q: %w", idea.Title, err)
	}
	if err := s.publisher.Publish(ctx, s.topic.Base(), evt); err != nil {
		return fmt.Errorf("publish %q: %w", idea.Title, err)
	}
	logger.DebugWithFields("idea.collected event published", logger.Fields{
		"event_id": evt.ID,
		"idea_id":  idea.ID,
		"topic":    s.topic.Base(),
	})
	return nil
}
