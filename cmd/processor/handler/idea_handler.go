package handler

import (
	"context"
	"errors"
	"fmt"

	"idea-feed/events"
	"idea-feed/internal/logger"
	"idea-feed/metrics"
	"idea-feed/services"
)

// ErrInvalidEvent 는 id 나 title 이 비어 있는 이벤트다.
var ErrInvalidEvent = errors.New("invalid idea.collected event")

type IdeaHandler struct {
	repo services.IdeaUpserter
}

func NewIdeaHandler(repo services.IdeaUpserter) *IdeaHandler {
	return &IdeaHandler{repo: repo}
}

// HandleIdeaCollected 는 수집된 아이디어를 제목 기준으로 저장한다.
func (h *IdeaHandler) HandleIdeaCollected(ctx context.Context, ev *events.IdeaCollectedEvent) error {
	if ev == nil || ev.Idea.ID == "" || ev.Idea.Title == "" {
		return ErrInvalidEvent
	}

	idea := ev.Idea
	inserted, err := h.repo.UpsertByTitle(ctx, &idea)
	if err != nil {
		metrics.SinkWrites.WithLabelValues("processor", "error").Inc()
		return fmt.Errorf("upsert idea %s: %w", idea.ID, err)
	}

	result := "updated"
	if inserted {
		result = "inserted"
	}
	metrics.SinkWrites.WithLabelValues("processor", result).Inc()

	logger.DebugWithFields("idea stored", logger.Fields{
		"event_id": ev.ID,
		"idea_id":  idea.ID,
		"platform": idea.Platform,
		"result":   result,
	})
	return nil
}
