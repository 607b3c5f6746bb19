package dto

import (
	"idea-feed/models"
	"idea-feed/services"
)

// RedditScrapeRequestDTO 는 화면 설정에서 넘어온 reddit 앱 자격 증명이다.
type RedditScrapeRequestDTO struct {
	ClientID     string `json:"clientId" example:"abc123"`
	ClientSecret string `json:"clientSecret" example:"s3cr3t"`
}

// TwitterScrapeRequestDTO 의 BearerToken 이 비어 있으면 TWITTER_BEARER_TOKEN 을 사용한다.
type TwitterScrapeRequestDTO struct {
	BearerToken string `json:"bearerToken" example:"AAAA..."`
}

// ScrapeResponseDTO 는 단일 플랫폼 수집 결과다.
type ScrapeResponseDTO struct {
	Ideas []models.Idea `json:"ideas"`
	Count int           `json:"count" example:"12"`
}

// CollectResponseDTO 는 설정된 모든 소스를 실행한 결과다.
type CollectResponseDTO struct {
	Ideas      []models.Idea                             `json:"ideas"`
	Count      int                                       `json:"count" example:"12"`
	Status     map[models.Platform]services.SourceStatus `json:"status"`
	Errors     map[models.Platform]string                `json:"errors,omitempty"`
	Duplicates int                                       `json:"duplicates"`
	Message    string                                    `json:"message,omitempty" example:"No ideas found. Check your API configuration and try again."`
}

// ScrapeStatusDTO 는 소스별 마지막 수집 상태다.
type ScrapeStatusDTO struct {
	Status map[models.Platform]services.SourceStatus `json:"status"`
}

type ClassifyRequestDTO struct {
	Title    string `json:"title" example:"I wish there was an app for splitting rent"`
	Body     string `json:"body" example:"would pay for it"`
	Platform string `json:"platform" example:"reddit" enums:"reddit,twitter,rss"`
}
