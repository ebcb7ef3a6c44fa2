package service

import (
	"context"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vidly/rental-api/internal/core/domain"
	"github.com/vidly/rental-api/internal/core/ports"
)

// GenreService manages genres.
type GenreService = ResourceService[ports.GenreInput, domain.Genre]

// MovieService manages movies and their embedded genre snapshot.
type MovieService = ResourceService[ports.MovieInput, domain.Movie]

// CustomerService manages customers.
type CustomerService = ResourceService[ports.CustomerInput, domain.Customer]

func NewGenreService(genres ports.Store[domain.Genre], logger zerolog.Logger) *GenreService {
	return NewResourceService(ResourceConfig[ports.GenreInput, domain.Genre]{
		Name:   "genre",
		SortBy: "name",
		Store:  genres,
		Logger: logger,
		Build: func(_ context.Context, id primitive.ObjectID, in ports.GenreInput) (*domain.Genre, error) {
			return &domain.Genre{ID: id, Name: in.Name}, nil
		},
	})
}

// NewMovieService resolves genreId against genres on every write and embeds
// the genre's current name. Later renames do not propagate.
func NewMovieService(movies ports.MovieStore, genres ports.Store[domain.Genre], logger zerolog.Logger) *MovieService {
	return NewResourceService(ResourceConfig[ports.MovieInput, domain.Movie]{
		Name:   "movie",
		SortBy: "title",
		Store:  movies,
		Logger: logger,
		Build: func(ctx context.Context, id primitive.ObjectID, in ports.MovieInput) (*domain.Movie, error) {
			genre, err := resolve(ctx, genres, in.GenreID, "Invalid genre.")
			if err != nil {
				return nil, err
			}
			return &domain.Movie{
				ID:              id,
				Title:           in.Title,
				Genre:           genre.Ref(),
				NumberInStock:   in.NumberInStock,
				DailyRentalRate: in.DailyRentalRate,
			}, nil
		},
	})
}

func NewCustomerService(customers ports.Store[domain.Customer], logger zerolog.Logger) *CustomerService {
	return NewResourceService(ResourceConfig[ports.CustomerInput, domain.Customer]{
		Name:   "customer",
		SortBy: "name",
		Store:  customers,
		Logger: logger,
		Build: func(_ context.Context, id primitive.ObjectID, in ports.CustomerInput) (*domain.Customer, error) {
			return &domain.Customer{
				ID:     id,
				Name:   in.Name,
				IsGold: in.IsGold,
				Phone:  in.Phone,
			}, nil
		},
	})
}
