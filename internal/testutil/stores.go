package testutil

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vidly/rental-api/internal/core/domain"
)

// NewGenreStore sorts genres by name like the Mongo store.
func NewGenreStore() *MemStore[domain.Genre] {
	return NewMemStore(func(a, b domain.Genre) bool { return a.Name < b.Name })
}

func NewCustomerStore() *MemStore[domain.Customer] {
	return NewMemStore(func(a, b domain.Customer) bool { return a.Name < b.Name })
}

func NewRentalStore() *MemStore[domain.Rental] {
	return NewMemStore(func(a, b domain.Rental) bool { return a.DateOut.After(b.DateOut) })
}

// MovieStore is an in-memory ports.MovieStore.
type MovieStore struct {
	*MemStore[domain.Movie]
}

func NewMovieStore() *MovieStore {
	return &MovieStore{NewMemStore(func(a, b domain.Movie) bool { return a.Title < b.Title })}
}

func (s *MovieStore) AdjustStock(_ context.Context, id primitive.ObjectID, delta int) error {
	return s.update(id, func(m *domain.Movie) error {
		if m.NumberInStock+delta < 0 {
			return domain.ErrOutOfStock
		}
		m.NumberInStock += delta
		return nil
	})
}

// UserStore is an in-memory ports.UserStore enforcing unique emails.
type UserStore struct {
	*MemStore[domain.User]
}

func NewUserStore() *UserStore {
	return &UserStore{NewMemStore(func(a, b domain.User) bool { return a.Name < b.Name })}
}

func (s *UserStore) Insert(ctx context.Context, u *domain.User) error {
	if _, err := s.FindByEmail(ctx, u.Email); err == nil {
		return domain.ErrDuplicate
	}
	return s.MemStore.Insert(ctx, u)
}

func (s *UserStore) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	return s.find(func(u domain.User) bool { return u.Email == email })
}

func (s *UserStore) SetAdmin(ctx context.Context, email string, isAdmin bool) (*domain.User, error) {
	u, err := s.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if err := s.update(u.ID, func(stored *domain.User) error {
		stored.IsAdmin = isAdmin
		return nil
	}); err != nil {
		return nil, err
	}
	u.IsAdmin = isAdmin
	return u, nil
}
