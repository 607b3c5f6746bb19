package services

import (
	"time"

	"idea-feed/classifier"
	"idea-feed/feeder"
	"idea-feed/models"
)

// BuildIdea 는 원시 게시물과 분류 결과로 표시용 레코드를 만든다.
// 본문이 비어 있으면 제목을 설명으로 쓰고, 작성 시각이 없으면 now 를 쓴다.
func BuildIdea(post feeder.Post, c classifier.Classification, now time.Time) models.Idea {
	description := post.Body
	if description == "" {
		description = post.Title
	}
	ts := post.CreatedAt
	if ts.IsZero() {
		ts = now
	}

	idea := models.Idea{
		ID:          post.ID,
		Platform:    post.Platform,
		Source:      post.Source,
		Title:       post.Title,
		Description: description,
		Author:      post.Author,
		AuthorName:  post.AuthorName,
		Timestamp:   ts.UTC(),
		URL:         post.URL,
		Upvotes:     post.Upvotes,
		Comments:    post.Comments,
		Awards:      post.Awards,
		Likes:       post.Likes,
		Retweets:    post.Retweets,
		Replies:     post.Replies,
		Impressions: post.Impressions,
		Engagement:  post.Engagement(),
	}
	idea.ApplyClassification(c)
	idea.Popularity = idea.Score()
	return idea
}
