package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vidly/rental-api/internal/core/domain"
	"github.com/vidly/rental-api/internal/core/ports"
)

// BuildFunc turns a validated input into the document stored under id. It
// resolves referenced records and reports unresolvable ones as a
// *domain.ValidationError.
type BuildFunc[In any, T ports.Document] func(ctx context.Context, id primitive.ObjectID, in In) (*T, error)

// ResourceConfig parameterizes a ResourceService.
type ResourceConfig[In any, T ports.Document] struct {
	// Name is the singular resource name used in messages and logs.
	Name   string
	SortBy string
	Store  ports.Store[T]
	Build  BuildFunc[In, T]
	Logger zerolog.Logger
}

// ResourceService implements the CRUD lifecycle once for every catalog
// resource. Validation happens before it is called; reference resolution
// happens in Build, always before the store is written.
type ResourceService[In any, T ports.Document] struct {
	name   string
	sortBy string
	store  ports.Store[T]
	build  BuildFunc[In, T]
	logger zerolog.Logger
}

func NewResourceService[In any, T ports.Document](cfg ResourceConfig[In, T]) *ResourceService[In, T] {
	return &ResourceService[In, T]{
		name:   cfg.Name,
		sortBy: cfg.SortBy,
		store:  cfg.Store,
		build:  cfg.Build,
		logger: cfg.Logger.With().Str("resource", cfg.Name).Logger(),
	}
}

// Name returns the singular resource name.
func (s *ResourceService[In, T]) Name() string { return s.name }

func (s *ResourceService[In, T]) List(ctx context.Context) ([]T, error) {
	docs, err := s.store.List(ctx, s.sortBy)
	if err != nil {
		return nil, fmt.Errorf("list %ss: %w", s.name, err)
	}
	return docs, nil
}

func (s *ResourceService[In, T]) Get(ctx context.Context, id string) (*T, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	doc, err := s.store.FindByID(ctx, oid)
	if err != nil {
		return nil, s.notFound(err)
	}
	return doc, nil
}

// Create builds the document under a fresh ObjectID and inserts it.
func (s *ResourceService[In, T]) Create(ctx context.Context, in In) (*T, error) {
	doc, err := s.build(ctx, primitive.NewObjectID(), in)
	if err != nil {
		return nil, err
	}
	if err := s.store.Insert(ctx, doc); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.NewValidationError("The %s already exists.", s.name)
		}
		return nil, fmt.Errorf("insert %s: %w", s.name, err)
	}

	s.logger.Info().Str("id", (*doc).DocumentID().Hex()).Msg("record created")
	return doc, nil
}

// Replace rebuilds the whole document, resolving references exactly as
// Create does, and overwrites the stored one.
func (s *ResourceService[In, T]) Replace(ctx context.Context, id string, in In) (*T, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	doc, err := s.build(ctx, oid, in)
	if err != nil {
		return nil, err
	}
	updated, err := s.store.Replace(ctx, oid, doc)
	if err != nil {
		return nil, s.notFound(err)
	}

	s.logger.Info().Str("id", oid.Hex()).Msg("record replaced")
	return updated, nil
}

func (s *ResourceService[In, T]) Delete(ctx context.Context, id string) (*T, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	removed, err := s.store.Delete(ctx, oid)
	if err != nil {
		return nil, s.notFound(err)
	}

	s.logger.Info().Str("id", oid.Hex()).Msg("record deleted")
	return removed, nil
}

// notFound names the resource on store misses and wraps everything else.
func (s *ResourceService[In, T]) notFound(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return domain.NewNotFound(s.name)
	}
	return fmt.Errorf("%s store: %w", s.name, err)
}

// parseID converts a path id into an ObjectID. The identifier middleware
// rejects bad shapes first; this keeps services safe when called directly.
func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, domain.ErrInvalidID
	}
	return oid, nil
}

// resolve loads a referenced record, reporting a bad or unknown id as a
// validation failure carrying msg.
func resolve[T ports.Document](ctx context.Context, store ports.Store[T], id, msg string) (*T, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, &domain.ValidationError{Message: msg}
	}
	doc, err := store.FindByID(ctx, oid)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, &domain.ValidationError{Message: msg}
		}
		return nil, fmt.Errorf("resolve reference: %w", err)
	}
	return doc, nil
}
