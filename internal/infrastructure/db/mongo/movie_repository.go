package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/vidly/rental-api/internal/core/domain"
)

// MovieRepository implements ports.MovieStore.
type MovieRepository struct {
	*Collection[domain.Movie]
}

func NewMovieRepository(db *mongo.Database) *MovieRepository {
	return &MovieRepository{Collection: NewCollection[domain.Movie](db, collectionMovies)}
}

// AdjustStock atomically adds delta to the movie's numberInStock. Decrements
// only match while enough copies remain, so stock never goes below zero.
func (r *MovieRepository) AdjustStock(ctx context.Context, id primitive.ObjectID, delta int) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := stockFilter(id, delta)
	res, err := r.col.UpdateOne(ctx, filter, bson.M{"$inc": bson.M{"numberInStock": delta}})
	if err != nil {
		return fmt.Errorf("adjust stock: %w", err)
	}
	if res.MatchedCount > 0 {
		return nil
	}
	if delta >= 0 {
		return domain.ErrNotFound
	}

	// Tell a missing movie apart from an exhausted one.
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Err(); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("adjust stock: %w", err)
	}
	return domain.ErrOutOfStock
}

func stockFilter(id primitive.ObjectID, delta int) bson.M {
	if delta >= 0 {
		return bson.M{"_id": id}
	}
	return bson.M{"_id": id, "numberInStock": bson.M{"$gte": -delta}}
}
