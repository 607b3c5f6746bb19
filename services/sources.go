package services

import (
	"context"

	"idea-feed/config"
	"idea-feed/feeder"
	"idea-feed/models"
)

// rssItemLimit 은 피드 하나에서 읽는 최대 항목 수다.
const rssItemLimit = 10

// Source 는 한 플랫폼의 원시 게시물을 가져온다.
// 개별 subreddit, hashtag, 피드 실패는 Source 안에서 건너뛰고, Source 전체가
// 동작할 수 없을 때(인증 실패 등)만 오류를 반환한다.
type Source interface {
	Platform() models.Platform
	Fetch(ctx context.Context) ([]feeder.Post, error)
}

type RedditSource struct {
	Client     *feeder.RedditClient
	Subreddits []string
	Limit      int
}

func (s *RedditSource) Platform() models.Platform { return models.PlatformReddit }

func (s *RedditSource) Fetch(ctx context.Context) ([]feeder.Post, error) {
	return s.Client.Collect(ctx, s.Subreddits, s.Limit)
}

type TwitterSource struct {
	Client   *feeder.TwitterClient
	Hashtags []string
	Accounts []string
}

func (s *TwitterSource) Platform() models.Platform { return models.PlatformTwitter }

func (s *TwitterSource) Fetch(ctx context.Context) ([]feeder.Post, error) {
	return s.Client.Collect(ctx, s.Hashtags, s.Accounts)
}

type RSSSource struct {
	Client *feeder.RSSClient
	Feeds  []feeder.RSSFeed
	Limit  int
}

func (s *RSSSource) Platform() models.Platform { return models.PlatformRSS }

func (s *RSSSource) Fetch(ctx context.Context) ([]feeder.Post, error) {
	return s.Client.Collect(ctx, s.Feeds, s.Limit)
}

func httpOptions(cfg config.HTTPConfig, rps float64) feeder.HTTPOptions {
	return feeder.HTTPOptions{
		Timeout:           cfg.Timeout,
		MaxRetries:        cfg.MaxRetries,
		BackoffBase:       cfg.BackoffBase,
		BackoffMax:        cfg.BackoffMax,
		RequestsPerSecond: rps,
	}
}

// NewRedditSource 는 cfg 의 subreddit/limit 설정과 주어진 자격 증명으로 소스를 만든다.
func NewRedditSource(cfg config.AppConfig, creds feeder.RedditCredentials) *RedditSource {
	client := feeder.NewRedditClient(creds, feeder.RedditOptions{
		UserAgent: cfg.Reddit.UserAgent,
		HTTP:      httpOptions(cfg.HTTP, cfg.Reddit.RequestsPerSecond),
	})
	return &RedditSource{Client: client, Subreddits: cfg.Reddit.Subreddits, Limit: cfg.Reddit.Limit}
}

func NewTwitterSource(cfg config.AppConfig, bearerToken string) *TwitterSource {
	client := feeder.NewTwitterClient(bearerToken, feeder.TwitterOptions{
		SearchLimit:   cfg.Twitter.SearchLimit,
		TimelineLimit: cfg.Twitter.TimelineLimit,
		HTTP:          httpOptions(cfg.HTTP, cfg.Twitter.RequestsPerSecond),
	})
	return &TwitterSource{Client: client, Hashtags: cfg.Twitter.Hashtags, Accounts: cfg.Twitter.Accounts}
}

func NewRSSSource(cfg config.AppConfig) *RSSSource {
	feeds := make([]feeder.RSSFeed, 0, len(cfg.RSS.Feeds))
	for _, f := range cfg.RSS.Feeds {
		feeds = append(feeds, feeder.RSSFeed{Name: f.Name, URL: f.URL})
	}
	return &RSSSource{
		Client: feeder.NewRSSClient(httpOptions(cfg.HTTP, 0)),
		Feeds:  feeds,
		Limit:  rssItemLimit,
	}
}

// SourcesFromConfig 는 활성화된 소스를 reddit, twitter, rss 순서로 반환한다.
func SourcesFromConfig(cfg config.AppConfig) []Source {
	var sources []Source
	if cfg.Reddit.Enabled {
		sources = append(sources, NewRedditSource(cfg, feeder.RedditCredentials{
			ClientID:     cfg.Reddit.ClientID,
			ClientSecret: cfg.Reddit.ClientSecret,
		}))
	}
	if cfg.Twitter.Enabled {
		sources = append(sources, NewTwitterSource(cfg, cfg.Twitter.BearerToken))
	}
	if cfg.RSS.Enabled && len(cfg.RSS.Feeds) > 0 {
		sources = append(sources, NewRSSSource(cfg))
	}
	return sources
}
