package services

import (
	"context"
	"os"

	"idea-feed/config"
	"idea-feed/feeder"
	"idea-feed/models"
	ideaServices "idea-feed/services"
)

type RedditSourceFunc func(creds feeder.RedditCredentials) ideaServices.Source
type TwitterSourceFunc func(bearerToken string) ideaServices.Source

// ScrapeService 는 요청 단위 수집(자격 증명을 요청으로 받는 경우)과
// 설정 기반 전체 수집을 함께 제공한다.
type ScrapeService struct {
	collector   *ideaServices.Collector
	newReddit   RedditSourceFunc
	newTwitter  TwitterSourceFunc
	twitterAuth func() string
}

type ScrapeOption func(*ScrapeService)

func WithRedditSource(f RedditSourceFunc) ScrapeOption {
	return func(s *ScrapeService) { s.newReddit = f }
}

func WithTwitterSource(f TwitterSourceFunc) ScrapeOption {
	return func(s *ScrapeService) { s.newTwitter = f }
}

// WithTwitterTokenFallback replaces the TWITTER_BEARER_TOKEN lookup used when a
// request carries no bearer token.
func WithTwitterTokenFallback(f func() string) ScrapeOption {
	return func(s *ScrapeService) { s.twitterAuth = f }
}

func NewScrapeService(cfg config.AppConfig, collector *ideaServices.Collector, opts ...ScrapeOption) *ScrapeService {
	s := &ScrapeService{
		collector: collector,
		newReddit: func(creds feeder.RedditCredentials) ideaServices.Source {
			return ideaServices.NewRedditSource(cfg, creds)
		},
		newTwitter: func(token string) ideaServices.Source {
			return ideaServices.NewTwitterSource(cfg, token)
		},
		twitterAuth: func() string {
			if v := os.Getenv("TWITTER_BEARER_TOKEN"); v != "" {
				return v
			}
			return cfg.Twitter.BearerToken
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ScrapeReddit 는 주어진 자격 증명으로 기본 subreddit 들을 수집한다.
// 자격 증명이 비어 있으면 feeder.ErrMissingCredentials 를 반환한다.
func (s *ScrapeService) ScrapeReddit(ctx context.Context, creds feeder.RedditCredentials) ([]models.Idea, error) {
	if creds.ClientID == "" || creds.ClientSecret == "" {
		return nil, feeder.ErrMissingCredentials
	}
	return s.collector.CollectSource(ctx, s.newReddit(creds))
}

// ScrapeTwitter 는 bearerToken 이 비어 있으면 환경변수 토큰을 사용한다.
func (s *ScrapeService) ScrapeTwitter(ctx context.Context, bearerToken string) ([]models.Idea, error) {
	if bearerToken == "" {
		bearerToken = s.twitterAuth()
	}
	if bearerToken == "" {
		return nil, feeder.ErrMissingCredentials
	}
	return s.collector.CollectSource(ctx, s.newTwitter(bearerToken))
}

func (s *ScrapeService) Collect(ctx context.Context, req ideaServices.CollectRequest) (ideaServices.CollectResult, error) {
	return s.collector.Collect(ctx, req)
}

func (s *ScrapeService) Status() map[models.Platform]ideaServices.SourceStatus {
	return s.collector.Status()
}
