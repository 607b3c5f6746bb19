package eventbus_test

import (
	"errors"
	"testing"
	"time"

	"idea-feed/eventbus"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetryTopicNaming(t *testing.T) {
	topic := eventbus.NewTopic("idea-feed.idea.events")

	assert.Equal(t, "idea-feed.idea.events.dlq", topic.DLQ())

	first, err := topic.GetRetryTopic(1)
	require.NoError(t, err)
	assert.Equal(t, "idea-feed.idea.events.retry.10s", first)

	_, err = topic.GetRetryTopic(0)
	assert.ErrorIs(t, err, eventbus.ErrMaxRetryExceeded)
	_, err = topic.GetRetryTopic(len(eventbus.RetryDelays) + 1)
	assert.ErrorIs(t, err, eventbus.ErrMaxRetryExceeded)

	assert.Len(t, topic.GetRetryTopics(), len(eventbus.RetryDelays))
}

func TestParseRetryDelayMatchesRetryTopics(t *testing.T) {
	topic := eventbus.NewTopic("idea-feed.idea.events")
	for i, name := range topic.GetRetryTopics() {
		d, ok := eventbus.ParseRetryDelayFromTopicName(name)
		require.True(t, ok, name)
		assert.Equal(t, eventbus.RetryDelays[i], d)
	}

	for _, bad := range []string{"idea-feed.idea.events", "x.retry.", "x.retry.abc", "x.retry.7s", "x.retry.1"} {
		_, ok := eventbus.ParseRetryDelayFromTopicName(bad)
		assert.False(t, ok, bad)
	}
}

func TestNextDestination(t *testing.T) {
	topic := eventbus.NewTopic("base")
	handlerErr := errors.New("mongo down")

	dest, next := eventbus.NextDestination(topic, eventbus.Event{ID: "1"}, handlerErr)
	assert.Equal(t, "base.retry.10s", dest)
	assert.Equal(t, 1, next.Retry)
	assert.Equal(t, len(eventbus.RetryDelays), next.MaxRetry)
	assert.Equal(t, "mongo down", next.LastError)

	dest, next = eventbus.NextDestination(topic, eventbus.Event{ID: "1", Retry: 1, MaxRetry: 2}, handlerErr)
	assert.Equal(t, "base.retry.30s", dest)
	assert.Equal(t, 2, next.Retry)

	dest, next = eventbus.NextDestination(topic, eventbus.Event{ID: "1", Retry: 2, MaxRetry: 2}, handlerErr)
	assert.Equal(t, "base.dlq", dest)
	assert.Equal(t, 2, next.Retry)
}

func TestJSONEvent(t *testing.T) {
	type payload struct {
		Title string `json:"title"`
	}

	evt, err := eventbus.NewJSONEvent("", "idea.collected", payload{Title: "Plant tracker"}, 0)
	require.NoError(t, err)
	assert.NotEmpty(t, evt.ID)
	assert.Equal(t, "idea.collected", evt.Type)
	assert.Equal(t, len(eventbus.RetryDelays), evt.MaxRetry)

	got, err := eventbus.DecodeJSON[payload](evt)
	require.NoError(t, err)
	assert.Equal(t, "Plant tracker", got.Title)

	_, err = eventbus.DecodeJSON[payload](eventbus.Event{Payload: []byte("not json")})
	assert.Error(t, err)
}

func TestTopicSpecs(t *testing.T) {
	specs := eventbus.TopicSpecs(eventbus.TopicIdeaEvents, 3)
	require.Len(t, specs, 2+len(eventbus.RetryDelays))

	assert.Equal(t, eventbus.TopicIdeaEvents.Base(), specs[0].Topic)
	assert.Equal(t, 3, specs[0].NumPartitions)
	assert.Equal(t, eventbus.TopicIdeaEvents.DLQ(), specs[1].Topic)
	assert.Equal(t, 1, specs[1].NumPartitions)
	assert.Equal(t, eventbus.TopicIdeaEvents.Base()+".retry."+(10*time.Second).String(), specs[2].Topic)
}
