package repositories

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"idea-feed/models"
)

// ErrNotFound 는 조회 대상 문서가 없을 때 반환된다.
var ErrNotFound = errors.New("idea not found")

const (
	SortTrending = "trending"
	SortNewest   = "newest"
	SortPopular  = "popular"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type IdeaRepository struct {
	col *mongo.Collection
}

func NewIdeaRepository(db *mongo.Database) *IdeaRepository {
	return &IdeaRepository{col: db.Collection("ideas")}
}

// UpsertByTitle upserts an idea uniquely identified by its exact title.
// _id and created_at are only written on insert, so the first stored id for
// a title wins. Returns true when a new document was inserted.
func (r *IdeaRepository) UpsertByTitle(ctx context.Context, idea *models.Idea) (bool, error) {
	now := time.Now().UTC()
	if idea.CreatedAt.IsZero() {
		idea.CreatedAt = now
	}
	idea.UpdatedAt = now
	idea.Popularity = idea.Score()

	tags := idea.Tags
	if tags == nil {
		tags = []string{}
	}

	filter := bson.M{"title": idea.Title}
	update := bson.M{
		"$setOnInsert": bson.M{
			"_id":        idea.ID,
			"created_at": idea.CreatedAt,
		},
		"$set": bson.M{
			"updated_at":       idea.UpdatedAt,
			"platform":         idea.Platform,
			"source":           idea.Source,
			"description":      idea.Description,
			"author":           idea.Author,
			"author_name":      idea.AuthorName,
			"timestamp":        idea.Timestamp,
			"url":              idea.URL,
			"upvotes":          idea.Upvotes,
			"comments":         idea.Comments,
			"awards":           idea.Awards,
			"likes":            idea.Likes,
			"retweets":         idea.Retweets,
			"replies":          idea.Replies,
			"impressions":      idea.Impressions,
			"engagement":       idea.Engagement,
			"popularity":       idea.Popularity,
			"category":         idea.Category,
			"tags":             tags,
			"complexity":       idea.Complexity,
			"market_potential": idea.MarketPotential,
		},
	}
	opts := options.Update().SetUpsert(true)
	res, err := r.col.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		// 같은 _id 가 다른 제목으로 이미 저장된 경우: 제목이 수정된 게시글이므로 건너뛴다.
		if mongo.IsDuplicateKeyError(err) {
			return false, nil
		}
		return false, err
	}
	return res.UpsertedCount > 0, nil
}

// FindByID returns an idea by its string id (e.g. reddit_abc)
func (r *IdeaRepository) FindByID(ctx context.Context, id string) (*models.Idea, error) {
	var idea models.Idea
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&idea); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &idea, nil
}

type ListIdeasOptions struct {
	Page     int
	PageSize int
	// Platform, Category 는 "" 또는 "all" 이면 필터하지 않는다.
	Platform string
	Category string
	Search   string
	Sort     string
}

// Normalize clamps paging to page >= 1 and 1..MaxPageSize (default DefaultPageSize).
func (o ListIdeasOptions) Normalize() ListIdeasOptions {
	if o.Page <= 0 {
		o.Page = 1
	}
	if o.PageSize <= 0 {
		o.PageSize = DefaultPageSize
	}
	if o.PageSize > MaxPageSize {
		o.PageSize = MaxPageSize
	}
	return o
}

func (o ListIdeasOptions) filter() bson.M {
	filter := bson.M{}
	if o.Platform != "" && o.Platform != "all" {
		filter["platform"] = o.Platform
	}
	if o.Category != "" && o.Category != "all" {
		filter["category"] = o.Category
	}
	if o.Search != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(o.Search), Options: "i"}
		filter["$or"] = []bson.M{
			{"title": re},
			{"description": re},
			{"tags": re},
		}
	}
	return filter
}

func sortFor(key string) bson.D {
	switch key {
	case "", SortTrending:
		return bson.D{{Key: "engagement", Value: -1}, {Key: "_id", Value: 1}}
	case SortNewest:
		return bson.D{{Key: "timestamp", Value: -1}, {Key: "_id", Value: 1}}
	case SortPopular:
		return bson.D{{Key: "popularity", Value: -1}, {Key: "_id", Value: 1}}
	default:
		return bson.D{{Key: "_id", Value: 1}}
	}
}

// List returns ideas with filters and pagination
func (r *IdeaRepository) List(ctx context.Context, opt ListIdeasOptions) ([]models.Idea, int64, error) {
	opt = opt.Normalize()
	filter := opt.filter()

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	skip := int64((opt.Page - 1) * opt.PageSize)
	findOpts := options.Find().
		SetSkip(skip).
		SetLimit(int64(opt.PageSize)).
		SetSort(sortFor(opt.Sort))
	cur, err := r.col.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	results := []models.Idea{}
	for cur.Next(ctx) {
		var idea models.Idea
		if err := cur.Decode(&idea); err != nil {
			return nil, 0, err
		}
		results = append(results, idea)
	}
	if err := cur.Err(); err != nil {
		return nil, 0, err
	}
	return results, total, nil
}
