package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"idea-feed/classifier"
	"idea-feed/config"
	"idea-feed/feeder"
	"idea-feed/models"
	"idea-feed/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	platform models.Platform
	posts    []feeder.Post
	err      error
}

func (s stubSource) Platform() models.Platform { return s.platform }

func (s stubSource) Fetch(context.Context) ([]feeder.Post, error) { return s.posts, s.err }

func testDeps(sources ...services.Source) deps {
	return deps{
		sources: func(config.AppConfig) []services.Source { return sources },
		sink: func(context.Context, config.AppConfig) (services.Sink, func(), error) {
			return nil, func() {}, nil
		},
	}
}

func run(t *testing.T, d deps, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd(d)
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestClassifyPrintsJSON(t *testing.T) {
	out, err := run(t, testDeps(), "classify", "Looking for a SaaS tool", "with an api")
	require.NoError(t, err)

	var got classifier.Classification
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.True(t, got.IsIdea)
	assert.Equal(t, classifier.CategorySaaS, got.Category)
}

func TestClassifyTwitterReadsHashtags(t *testing.T) {
	out, err := run(t, testDeps(), "classify", "--platform", "twitter", "Weekend build #webdev")
	require.NoError(t, err)

	var got classifier.Classification
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Contains(t, got.Tags, "webdev")
}

func TestClassifyRejectsUnknownPlatform(t *testing.T) {
	_, err := run(t, testDeps(), "classify", "--platform", "mastodon", "hello")
	assert.EqualError(t, err, "unknown platform: mastodon")
}

func TestClassifyRequiresTitle(t *testing.T) {
	_, err := run(t, testDeps(), "classify")
	assert.Error(t, err)
}

func TestScrapeRendersTable(t *testing.T) {
	src := stubSource{platform: models.PlatformReddit, posts: []feeder.Post{
		{ID: "reddit_1", Platform: models.PlatformReddit, Title: "App idea: a habit tracker", Upvotes: 10, CreatedAt: time.Now()},
		{ID: "reddit_2", Platform: models.PlatformReddit, Title: "Nice sunset today", CreatedAt: time.Now()},
	}}

	out, err := run(t, testDeps(src), "scrape")
	require.NoError(t, err)
	assert.Contains(t, out, "reddit_1")
	assert.NotContains(t, out, "reddit_2")
	assert.Contains(t, out, "reddit: success")
	assert.Contains(t, out, "1 ideas, 0 duplicates dropped")
}

func TestScrapeJSONWithSearch(t *testing.T) {
	src := stubSource{platform: models.PlatformRSS, posts: []feeder.Post{
		{ID: "rss_1", Platform: models.PlatformRSS, Title: "Build a mobile app", CreatedAt: time.Now()},
		{ID: "rss_2", Platform: models.PlatformRSS, Title: "Startup idea for gardeners", CreatedAt: time.Now()},
	}}

	out, err := run(t, testDeps(src), "scrape", "--json", "--search", "garden")
	require.NoError(t, err)

	var got services.CollectResult
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got.Ideas, 1)
	assert.Equal(t, "rss_2", got.Ideas[0].ID)
}

func TestScrapeReturnsErrorWhenAllSourcesFail(t *testing.T) {
	src := stubSource{platform: models.PlatformTwitter, err: errors.New("rate limited")}

	out, err := run(t, testDeps(src), "scrape")
	require.Error(t, err)
	assert.Contains(t, out, "twitter: error (rate limited)")
}

func TestScrapeRejectsUnknownSink(t *testing.T) {
	_, err := run(t, testDeps(), "scrape", "--sink", "s3")
	assert.Error(t, err)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
}
