package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vidly/rental-api/internal/core/domain"
	"github.com/vidly/rental-api/internal/core/ports"
)

const (
	collectionGenres    = "genres"
	collectionMovies    = "movies"
	collectionCustomers = "customers"
	collectionRentals   = "rentals"
	collectionUsers     = "users"
)

// Collection implements ports.Store for documents of type T.
type Collection[T ports.Document] struct {
	col *mongo.Collection
}

func NewCollection[T ports.Document](db *mongo.Database, name string) *Collection[T] {
	return &Collection[T]{col: db.Collection(name)}
}

func NewGenreRepository(db *mongo.Database) *Collection[domain.Genre] {
	return NewCollection[domain.Genre](db, collectionGenres)
}

func NewCustomerRepository(db *mongo.Database) *Collection[domain.Customer] {
	return NewCollection[domain.Customer](db, collectionCustomers)
}

func NewRentalRepository(db *mongo.Database) *Collection[domain.Rental] {
	return NewCollection[domain.Rental](db, collectionRentals)
}

// List returns every document sorted by sortBy ("field" or "-field").
func (c *Collection[T]) List(ctx context.Context, sortBy string) ([]T, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find()
	if sortBy != "" {
		opts.SetSort(sortDoc(sortBy))
	}

	cur, err := c.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", c.col.Name(), err)
	}

	docs := make([]T, 0)
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.col.Name(), err)
	}
	return docs, nil
}

func (c *Collection[T]) FindByID(ctx context.Context, id primitive.ObjectID) (*T, error) {
	return c.findOne(ctx, bson.M{"_id": id})
}

// Insert stores doc. A unique index violation is reported as domain.ErrDuplicate.
func (c *Collection[T]) Insert(ctx context.Context, doc *T) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := c.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert %s: %w", c.col.Name(), err)
	}
	return nil
}

func (c *Collection[T]) Replace(ctx context.Context, id primitive.ObjectID, doc *T) (*T, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndReplace().SetReturnDocument(options.After)

	var out T
	err := c.col.FindOneAndReplace(ctx, bson.M{"_id": id}, doc, opts).Decode(&out)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicate
		}
		return nil, fmt.Errorf("replace %s: %w", c.col.Name(), err)
	}
	return &out, nil
}

func (c *Collection[T]) Delete(ctx context.Context, id primitive.ObjectID) (*T, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var out T
	if err := c.col.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&out); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("delete %s: %w", c.col.Name(), err)
	}
	return &out, nil
}

func (c *Collection[T]) findOne(ctx context.Context, filter bson.M) (*T, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var out T
	if err := c.col.FindOne(ctx, filter).Decode(&out); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find %s: %w", c.col.Name(), err)
	}
	return &out, nil
}

// sortDoc turns "name" into {name: 1} and "-dateOut" into {dateOut: -1}.
func sortDoc(sortBy string) bson.D {
	if field, ok := strings.CutPrefix(sortBy, "-"); ok {
		return bson.D{{Key: field, Value: -1}}
	}
	return bson.D{{Key: sortBy, Value: 1}}
}
