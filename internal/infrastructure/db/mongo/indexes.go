package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes every collection relies on: the sort
// fields used by List and the unique user email.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := map[string][]mongo.IndexModel{
		collectionGenres:    {{Keys: bson.D{{Key: "name", Value: 1}}}},
		collectionMovies:    {{Keys: bson.D{{Key: "title", Value: 1}}}, {Keys: bson.D{{Key: "genre._id", Value: 1}}}},
		collectionCustomers: {{Keys: bson.D{{Key: "name", Value: 1}}}},
		collectionRentals:   {{Keys: bson.D{{Key: "dateOut", Value: -1}}}},
		collectionUsers: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "name", Value: 1}}},
		},
	}

	for name, models := range indexes {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create %s indexes: %w", name, err)
		}
	}
	return nil
}
