package repositories_test

import (
	"context"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"idea-feed/models"
	"idea-feed/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdeaRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("upsert inserts new title", func(mt *mtest.T) {
		repo := repositories.NewIdeaRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 0},
			bson.E{Key: "upserted", Value: bson.A{bson.D{{Key: "index", Value: 0}, {Key: "_id", Value: "reddit_1"}}}},
		))

		idea := &models.Idea{ID: "reddit_1", Title: "Plant tracker", Upvotes: 3, Likes: 2}
		inserted, err := repo.UpsertByTitle(context.Background(), idea)
		require.NoError(mt, err)
		assert.True(mt, inserted)
		assert.Equal(mt, 5, idea.Popularity)
		assert.False(mt, idea.CreatedAt.IsZero())
	})

	mt.Run("upsert existing title", func(mt *mtest.T) {
		repo := repositories.NewIdeaRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		inserted, err := repo.UpsertByTitle(context.Background(), &models.Idea{ID: "twitter_1", Title: "Plant tracker"})
		require.NoError(mt, err)
		assert.False(mt, inserted)
	})

	mt.Run("upsert duplicate id is skipped", func(mt *mtest.T) {
		repo := repositories.NewIdeaRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error",
		}))

		inserted, err := repo.UpsertByTitle(context.Background(), &models.Idea{ID: "reddit_1", Title: "Edited title"})
		require.NoError(mt, err)
		assert.False(mt, inserted)
	})

	mt.Run("find by id", func(mt *mtest.T) {
		repo := repositories.NewIdeaRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "idea.ideas", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "reddit_1"},
			{Key: "title", Value: "Plant tracker"},
			{Key: "platform", Value: "reddit"},
			{Key: "tags", Value: bson.A{"Mobile"}},
			{Key: "market_potential", Value: "High"},
		}))

		idea, err := repo.FindByID(context.Background(), "reddit_1")
		require.NoError(mt, err)
		assert.Equal(mt, "Plant tracker", idea.Title)
		assert.Equal(mt, models.PlatformReddit, idea.Platform)
		assert.Equal(mt, []string{"Mobile"}, idea.Tags)
		assert.EqualValues(mt, "High", idea.MarketPotential)
	})

	mt.Run("find by id not found", func(mt *mtest.T) {
		repo := repositories.NewIdeaRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "idea.ideas", mtest.FirstBatch))

		_, err := repo.FindByID(context.Background(), "missing")
		assert.ErrorIs(mt, err, repositories.ErrNotFound)
	})

	mt.Run("list", func(mt *mtest.T) {
		repo := repositories.NewIdeaRepository(mt.DB)
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "idea.ideas", mtest.FirstBatch, bson.D{{Key: "n", Value: int32(2)}}),
			mtest.CreateCursorResponse(0, "idea.ideas", mtest.FirstBatch,
				bson.D{{Key: "_id", Value: "reddit_1"}, {Key: "title", Value: "A"}, {Key: "engagement", Value: 9}},
				bson.D{{Key: "_id", Value: "twitter_2"}, {Key: "title", Value: "B"}, {Key: "engagement", Value: 4}},
			),
		)

		items, total, err := repo.List(context.Background(), repositories.ListIdeasOptions{
			Platform: "all",
			Search:   "a+b",
			Sort:     repositories.SortTrending,
		})
		require.NoError(mt, err)
		assert.EqualValues(mt, 2, total)
		require.Len(mt, items, 2)
		assert.Equal(mt, "reddit_1", items[0].ID)
		assert.Equal(mt, 9, items[0].Engagement)
	})
}

func TestListIdeasOptionsNormalize(t *testing.T) {
	got := repositories.ListIdeasOptions{Page: -1, PageSize: 1000}.Normalize()
	assert.Equal(t, 1, got.Page)
	assert.Equal(t, repositories.MaxPageSize, got.PageSize)

	got = repositories.ListIdeasOptions{}.Normalize()
	assert.Equal(t, repositories.DefaultPageSize, got.PageSize)
}
