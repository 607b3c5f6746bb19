package services_test

import (
	"testing"

	"idea-feed/config"
	"idea-feed/models"
	"idea-feed/services"

	"github.com/stretchr/testify/assert"
)

func platforms(sources []services.Source) []models.Platform {
	out := make([]models.Platform, 0, len(sources))
	for _, src := range sources {
		out = append(out, src.Platform())
	}
	return out
}

func TestSourcesFromConfigOrder(t *testing.T) {
	cfg := config.Default()
	cfg.Reddit.Enabled = true
	cfg.Twitter.Enabled = true
	cfg.RSS.Enabled = true
	cfg.RSS.Feeds = []config.FeedSource{{Name: "HN", URL: "https://hnrss.org/newest"}}

	got := services.SourcesFromConfig(cfg)
	assert.Equal(t, []models.Platform{models.PlatformReddit, models.PlatformTwitter, models.PlatformRSS}, platforms(got))

	reddit := got[0].(*services.RedditSource)
	assert.Equal(t, config.DefaultSubreddits, reddit.Subreddits)
	assert.Equal(t, config.DefaultRedditLimit, reddit.Limit)

	twitter := got[1].(*services.TwitterSource)
	assert.Equal(t, config.DefaultHashtags, twitter.Hashtags)
	assert.Equal(t, config.DefaultAccounts, twitter.Accounts)
}

func TestSourcesFromConfigSkipsDisabled(t *testing.T) {
	cfg := config.Default()
	cfg.Reddit.Enabled = false
	cfg.Twitter.Enabled = true
	cfg.RSS.Enabled = true
	cfg.RSS.Feeds = nil

	assert.Equal(t, []models.Platform{models.PlatformTwitter}, platforms(services.SourcesFromConfig(cfg)))
}
