package ports

import "context"

// ResourceService is the CRUD lifecycle shared by the catalog resources.
// Ids are hex strings as they arrive on the path.
type ResourceService[In any, T any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, in In) (*T, error)
	Replace(ctx context.Context, id string, in In) (*T, error)
	Delete(ctx context.Context, id string) (*T, error)
}

// GenreInput is a validated genre payload.
type GenreInput struct {
	Name string
}

// MovieInput is a validated movie payload; GenreID is resolved by the service.
type MovieInput struct {
	Title           string
	GenreID         string
	NumberInStock   int
	DailyRentalRate float64
}

// CustomerInput is a validated customer payload.
type CustomerInput struct {
	Name   string
	IsGold bool
	Phone  string
}

// RentalInput is a validated rental payload; both ids are resolved by the service.
type RentalInput struct {
	CustomerID string
	MovieID    string
}
