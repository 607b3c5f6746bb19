package handler_test

import (
	"context"
	"errors"
	"testing"

	"idea-feed/cmd/processor/handler"
	"idea-feed/events"
	"idea-feed/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	titles map[string]string
	err    error
}

func (f *fakeRepo) UpsertByTitle(_ context.Context, idea *models.Idea) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	if f.titles == nil {
		f.titles = map[string]string{}
	}
	if _, ok := f.titles[idea.Title]; ok {
		return false, nil
	}
	f.titles[idea.Title] = idea.ID
	return true, nil
}

func collected(id, title string) *events.IdeaCollectedEvent {
	ev := events.NewIdeaCollectedEvent("test", models.Idea{ID: id, Title: title, Platform: models.PlatformReddit})
	return &ev
}

func TestHandleIdeaCollectedStoresIdea(t *testing.T) {
	repo := &fakeRepo{}
	h := handler.NewIdeaHandler(repo)

	require.NoError(t, h.HandleIdeaCollected(context.Background(), collected("reddit_1", "Build a tool")))
	require.NoError(t, h.HandleIdeaCollected(context.Background(), collected("reddit_2", "Build a tool")))

	assert.Equal(t, map[string]string{"Build a tool": "reddit_1"}, repo.titles)
}

func TestHandleIdeaCollectedRejectsInvalid(t *testing.T) {
	h := handler.NewIdeaHandler(&fakeRepo{})

	assert.ErrorIs(t, h.HandleIdeaCollected(context.Background(), nil), handler.ErrInvalidEvent)
	assert.ErrorIs(t, h.HandleIdeaCollected(context.Background(), collected("", "title")), handler.ErrInvalidEvent)
	assert.ErrorIs(t, h.HandleIdeaCollected(context.Background(), collected("reddit_1", "")), handler.ErrInvalidEvent)
}

func TestHandleIdeaCollectedWrapsRepositoryError(t *testing.T) {
	boom := errors.New("mongo down")
	h := handler.NewIdeaHandler(&fakeRepo{err: boom})

	err := h.HandleIdeaCollected(context.Background(), collected("reddit_1", "Build a tool"))
	assert.ErrorIs(t, err, boom)
}
