package db

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"idea-feed/config"
	"idea-feed/internal/logger"
)

const IdeasCollection = "ideas"

var (
	clientOnce sync.Once
	client     *mongo.Client
	db         *mongo.Database
)

// Init initializes the global Mongo client and database using config values.
func Init(ctx context.Context) error {
	var initErr error
	clientOnce.Do(func() {
		cfg := config.GetConfig().Mongo
		uri := cfg.URI
		if uri == "" {
			uri = config.DefaultMongoURI
		}
		dbName := cfg.Database
		if dbName == "" {
			dbName = config.DefaultMongoDatabase
		}

		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		cl, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
		if err != nil {
			initErr = err
			return
		}
		// Ping to verify connection
		if err := cl.Ping(ctx, readpref.Primary()); err != nil {
			initErr = err
			return
		}
		client = cl
		db = client.Database(dbName)

		if err := EnsureIndexes(ctx, db); err != nil {
			initErr = err
			return
		}
		logger.InfoWithFields("MongoDB connected and indexes ensured", logger.Fields{
			"database": dbName,
		})
	})
	return initErr
}

func Client() *mongo.Client     { return client }
func Database() *mongo.Database { return db }

// Disconnect closes the global client if Init succeeded.
func Disconnect(ctx context.Context) error {
	if client == nil {
		return nil
	}
	return client.Disconnect(ctx)
}

// EnsureIndexes creates the ideas indexes. The unique title index backs the
// exact-title dedupe done on upsert.
func EnsureIndexes(ctx context.Context, d *mongo.Database) error {
	_, err := d.Collection(IdeasCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "title", Value: 1}},
			Options: options.Index().SetName("uniq_title").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "timestamp", Value: -1}},
			Options: options.Index().SetName("idx_timestamp_desc"),
		},
		{
			Keys:    bson.D{{Key: "engagement", Value: -1}},
			Options: options.Index().SetName("idx_engagement_desc"),
		},
		{
			Keys:    bson.D{{Key: "popularity", Value: -1}},
			Options: options.Index().SetName("idx_popularity_desc"),
		},
		{
			Keys:    bson.D{{Key: "category", Value: 1}},
			Options: options.Index().SetName("idx_category"),
		},
		{
			Keys:    bson.D{{Key: "platform", Value: 1}},
			Options: options.Index().SetName("idx_platform"),
		},
		{
			Keys:    bson.D{{Key: "tags", Value: 1}},
			Options: options.Index().SetName("idx_tags"),
		},
	})
	return err
}
