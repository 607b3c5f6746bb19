package models

import (
	"time"

	"idea-feed/classifier"
)

type Platform string

const (
	PlatformReddit  Platform = "reddit"
	PlatformTwitter Platform = "twitter"
	PlatformRSS     Platform = "rss"
)

// Idea is a classified idea post ready for display
// Collection: ideas
//
// JSON keeps the camelCase field names the feed UI consumes.
type Idea struct {
	ID          string    `bson:"_id" json:"id"`
	Platform    Platform  `bson:"platform" json:"platform"`
	Source      string    `bson:"source" json:"source"`
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description" json:"description"`
	Author      string    `bson:"author" json:"author"`
	AuthorName  string    `bson:"author_name,omitempty" json:"authorName,omitempty"`
	Timestamp   time.Time `bson:"timestamp" json:"timestamp"`
	URL         string    `bson:"url" json:"url"`

	Upvotes     int `bson:"upvotes" json:"upvotes"`
	Comments    int `bson:"comments" json:"comments"`
	Awards      int `bson:"awards" json:"awards"`
	Likes       int `bson:"likes" json:"likes"`
	Retweets    int `bson:"retweets" json:"retweets"`
	Replies     int `bson:"replies" json:"replies"`
	Impressions int `bson:"impressions" json:"impressions"`
	Engagement  int `bson:"engagement" json:"engagement"`
	Popularity  int `bson:"popularity" json:"-"`

	Category        classifier.Category `bson:"category" json:"category"`
	Tags            []string            `bson:"tags" json:"tags"`
	Complexity      classifier.Level    `bson:"complexity" json:"complexity"`
	MarketPotential classifier.Level    `bson:"market_potential" json:"marketPotential"`

	CreatedAt time.Time `bson:"created_at" json:"-"`
	UpdatedAt time.Time `bson:"updated_at" json:"-"`
}

// ApplyClassification copies the annotation fields of c onto the idea.
func (i *Idea) ApplyClassification(c classifier.Classification) {
	i.Category = c.Category
	i.Tags = c.Tags
	i.Complexity = c.Complexity
	i.MarketPotential = c.MarketPotential
}

// Score is the "popular" sort key.
func (i Idea) Score() int {
	return i.Upvotes + i.Likes
}
