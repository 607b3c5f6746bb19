package main

import (
	"context"
	"sync"
	"testing"

	"idea-feed/feeder"
	"idea-feed/models"
	"idea-feed/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type blockingSource struct {
	started chan struct{}
	release chan struct{}
}

func (s *blockingSource) Platform() models.Platform { return models.PlatformRSS }

func (s *blockingSource) Fetch(ctx context.Context) ([]feeder.Post, error) {
	close(s.started)
	<-s.release
	return []feeder.Post{{ID: "rss_1", Platform: models.PlatformRSS, Title: "Startup idea"}}, nil
}

func TestNewSchedulerValidatesSpec(t *testing.T) {
	_, err := newScheduler("0 */6 * * *", func() {})
	assert.NoError(t, err)

	_, err = newScheduler("@daily", func() {})
	assert.NoError(t, err)

	_, err = newScheduler("every six hours", func() {})
	assert.Error(t, err)
}

func TestRunFeedCollectionSkipsOverlappingRuns(t *testing.T) {
	src := &blockingSource{started: make(chan struct{}), release: make(chan struct{})}
	svc := NewAggregateService(services.NewCollector([]services.Source{src}, services.NewClassifierSet("")))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		ran, err := svc.RunFeedCollection(context.Background())
		assert.True(t, ran)
		assert.NoError(t, err)
	}()

	<-src.started
	ran, err := svc.RunFeedCollection(context.Background())
	require.NoError(t, err)
	assert.False(t, ran)

	close(src.release)
	wg.Wait()
}
