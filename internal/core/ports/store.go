package ports

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vidly/rental-api/internal/core/domain"
)

// Document is any record persisted under a store-assigned ObjectID.
type Document interface {
	DocumentID() primitive.ObjectID
}

// Store is the id-addressed persistence every resource needs. Lookups by an
// id that does not resolve return an error matching domain.ErrNotFound.
type Store[T Document] interface {
	// List returns every record ordered by sortBy, a field name optionally
	// prefixed with "-" for descending order.
	List(ctx context.Context, sortBy string) ([]T, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*T, error)
	Insert(ctx context.Context, doc *T) error
	// Replace overwrites the whole document stored under id and returns the
	// new state.
	Replace(ctx context.Context, id primitive.ObjectID, doc *T) (*T, error)
	// Delete removes the document and returns what was removed.
	Delete(ctx context.Context, id primitive.ObjectID) (*T, error)
}

// MovieStore adds atomic stock bookkeeping used by rentals.
type MovieStore interface {
	Store[domain.Movie]
	// AdjustStock adds delta to numberInStock in one atomic step. A negative
	// delta larger than the current stock changes nothing and returns
	// domain.ErrOutOfStock.
	AdjustStock(ctx context.Context, id primitive.ObjectID, delta int) error
}

// UserStore adds lookups by the unique email address.
type UserStore interface {
	Store[domain.User]
	// FindByEmail returns domain.ErrNotFound when no user has email.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	SetAdmin(ctx context.Context, email string, isAdmin bool) (*domain.User, error)
}
