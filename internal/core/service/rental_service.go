package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vidly/rental-api/internal/core/domain"
	"github.com/vidly/rental-api/internal/core/ports"
	"github.com/vidly/rental-api/internal/pkg/metrics"
)

// RentalService manages rentals and keeps movie stock in step with them.
// A copy is taken with a conditional single-document $inc before the rental
// is written and put back when the write fails; there is no multi-document
// transaction.
type RentalService struct {
	*ResourceService[ports.RentalInput, domain.Rental]

	customers ports.Store[domain.Customer]
	movies    ports.MovieStore
	now       func() time.Time
}

func NewRentalService(
	rentals ports.Store[domain.Rental],
	customers ports.Store[domain.Customer],
	movies ports.MovieStore,
	logger zerolog.Logger,
) *RentalService {
	s := &RentalService{customers: customers, movies: movies, now: time.Now}
	s.ResourceService = NewResourceService(ResourceConfig[ports.RentalInput, domain.Rental]{
		Name:   "rental",
		SortBy: "-dateOut",
		Store:  rentals,
		Logger: logger,
		Build: func(ctx context.Context, id primitive.ObjectID, in ports.RentalInput) (*domain.Rental, error) {
			customer, movie, err := s.resolve(ctx, in, primitive.NilObjectID)
			if err != nil {
				return nil, err
			}
			rental := domain.NewRental(id, *customer, *movie, s.now())
			return &rental, nil
		},
	})
	return s
}

// Create takes one copy of the movie out of stock, then inserts the rental.
// The copy is put back if the insert fails.
func (s *RentalService) Create(ctx context.Context, in ports.RentalInput) (*domain.Rental, error) {
	rental, err := s.build(ctx, primitive.NewObjectID(), in)
	if err != nil {
		return nil, err
	}
	if err := s.takeCopy(ctx, rental.Movie.ID); err != nil {
		return nil, err
	}

	if err := s.store.Insert(ctx, rental); err != nil {
		s.releaseCopy(ctx, rental.Movie.ID)
		return nil, fmt.Errorf("insert rental: %w", err)
	}

	s.logger.Info().Str("id", rental.ID.Hex()).Msg("record created")
	return rental, nil
}

// Replace re-resolves customer and movie and overwrites the rental, keeping
// its dates. When an outstanding rental moves to another movie, a copy of the
// new movie is taken before the write and the old movie's copy is released
// after it.
func (s *RentalService) Replace(ctx context.Context, id string, in ports.RentalInput) (*domain.Rental, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	current, err := s.store.FindByID(ctx, oid)
	if err != nil {
		return nil, s.notFound(err)
	}

	customer, movie, err := s.resolve(ctx, in, current.Movie.ID)
	if err != nil {
		return nil, err
	}

	next := domain.NewRental(oid, *customer, *movie, current.DateOut)
	next.DateReturned = current.DateReturned
	next.RentalFee = current.RentalFee

	moved := movie.ID != current.Movie.ID && !current.Returned()
	if moved {
		if err := s.takeCopy(ctx, movie.ID); err != nil {
			return nil, err
		}
	}

	updated, err := s.store.Replace(ctx, oid, &next)
	if err != nil {
		if moved {
			s.releaseCopy(ctx, movie.ID)
		}
		return nil, s.notFound(err)
	}

	if moved {
		s.releaseCopy(ctx, current.Movie.ID)
	}

	s.logger.Info().Str("id", oid.Hex()).Msg("record replaced")
	return updated, nil
}

// Delete removes the rental and puts the copy back when it was never returned.
func (s *RentalService) Delete(ctx context.Context, id string) (*domain.Rental, error) {
	removed, err := s.ResourceService.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	if !removed.Returned() {
		if err := s.adjustStock(ctx, removed.Movie.ID, 1); err != nil {
			return nil, err
		}
	}
	return removed, nil
}

// resolve loads the customer and movie a rental input names. The stock check
// is skipped for held, the movie the rental already holds a copy of.
func (s *RentalService) resolve(ctx context.Context, in ports.RentalInput, held primitive.ObjectID) (*domain.Customer, *domain.Movie, error) {
	customer, err := resolve(ctx, s.customers, in.CustomerID, "Invalid customer.")
	if err != nil {
		return nil, nil, err
	}
	movie, err := resolve[domain.Movie](ctx, s.movies, in.MovieID, "Invalid movie.")
	if err != nil {
		return nil, nil, err
	}
	if movie.ID != held && !movie.InStock() {
		return nil, nil, domain.NewValidationError("Movie not in stock.")
	}
	return customer, movie, nil
}

// takeCopy decrements the movie's stock only while a copy is left.
func (s *RentalService) takeCopy(ctx context.Context, movieID primitive.ObjectID) error {
	err := s.adjustStock(ctx, movieID, -1)
	switch {
	case errors.Is(err, domain.ErrOutOfStock):
		return domain.NewValidationError("Movie not in stock.")
	case errors.Is(err, domain.ErrNotFound):
		return domain.NewValidationError("Invalid movie.")
	}
	return err
}

// releaseCopy puts a copy back. Failures are logged by adjustStock; the
// caller's outcome does not depend on them.
func (s *RentalService) releaseCopy(ctx context.Context, movieID primitive.ObjectID) {
	_ = s.adjustStock(ctx, movieID, 1)
}

func (s *RentalService) adjustStock(ctx context.Context, movieID primitive.ObjectID, delta int) error {
	if err := s.movies.AdjustStock(ctx, movieID, delta); err != nil {
		if errors.Is(err, domain.ErrOutOfStock) {
			return err
		}
		s.logger.Error().Err(err).Str("movie_id", movieID.Hex()).Int("delta", delta).Msg("stock adjustment failed")
		return fmt.Errorf("adjust stock: %w", err)
	}

	direction := "in"
	if delta < 0 {
		direction = "out"
	}
	metrics.RentalStockAdjustmentsTotal.WithLabelValues(direction).Inc()
	return nil
}
