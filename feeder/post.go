package feeder

import (
	"time"

	"idea-feed/classifier"
	"idea-feed/models"
)

// Post is a source-neutral raw post. Counters a platform does not report
// stay zero.
type Post struct {
	ID         string
	Platform   models.Platform
	Source     string
	Title      string
	Body       string
	Author     string
	AuthorName string
	URL        string
	CreatedAt  time.Time

	Upvotes     int
	Comments    int
	Awards      int
	Likes       int
	Retweets    int
	Replies     int
	Impressions int

	// RawText is the unmodified text hashtags are read from. Empty for
	// sources without hashtags.
	RawText string
}

// RawPost returns the text the classifier runs on.
func (p Post) RawPost() classifier.RawPost {
	if p.RawText != "" {
		return classifier.RawPost{Title: p.RawText}
	}
	return classifier.RawPost{Title: p.Title, Body: p.Body}
}

// Engagement is ups + comments for reddit, likes + retweets + replies for
// twitter and zero otherwise.
func (p Post) Engagement() int {
	switch p.Platform {
	case models.PlatformReddit:
		return p.Upvotes + p.Comments
	case models.PlatformTwitter:
		return p.Likes + p.Retweets + p.Replies
	default:
		return 0
	}
}
