package services

import (
	"context"
	"fmt"

	apperrors "catalog-service/common/errors"
	"catalog-service/common/logger"
	"catalog-service/models"
	"catalog-service/repository"

	"go.uber.org/zap"
)

// entityBuilders maps each collection to its model constructor.
var entityBuilders = map[string]func(map[string]any) (any, error){
	models.CategoryCollection: func(f map[string]any) (any, error) { return models.NewCategory(f) },
	models.ProductCollection:  func(f map[string]any) (any, error) { return models.NewProduct(f) },
	models.UserCollection:     func(f map[string]any) (any, error) { return models.NewUser(f) },
}

// SeededFunc is called after a collection received n seed documents.
type SeededFunc func(ctx context.Context, collection string, n int)

type SeederOption func(*Seeder)

// WithDataset replaces the default dataset.
func WithDataset(ds Dataset) SeederOption {
	return func(s *Seeder) { s.dataset = ds }
}

// WithOnSeeded registers a hook run after each successful seed.
func WithOnSeeded(fn SeededFunc) SeederOption {
	return func(s *Seeder) { s.onSeeded = fn }
}

// Seeder fills empty collections with a fixed dataset.
//
// Two requests hitting an empty collection at the same moment can both see a
// zero count and insert twice. The unique slug index stops that for
// categories; products have no such guard.
type Seeder struct {
	store    repository.Handle
	dataset  Dataset
	onSeeded SeededFunc
}

func NewSeeder(store repository.Handle, opts ...SeederOption) *Seeder {
	s := &Seeder{store: store, dataset: DefaultDataset()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// EnsureSeeded inserts the dataset for collection when it is empty. Every
// record is validated before the first insert, so a bad record leaves the
// collection untouched. Without a store it does nothing.
func (s *Seeder) EnsureSeeded(ctx context.Context, collection string) error {
	store, ok := s.store.Get()
	if !ok {
		return nil
	}

	n, err := store.Count(ctx, collection)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	entities, err := s.build(collection)
	if err != nil {
		return err
	}
	if len(entities) == 0 {
		return nil
	}

	for i, entity := range entities {
		if _, err := store.Insert(ctx, collection, entity); err != nil {
			logger.Error(ctx, "Seeding interrupted", err,
				zap.String("collection", collection),
				zap.Int("inserted", i),
			)
			return err
		}
	}

	logger.Info(ctx, "Seeded collection", zap.String("collection", collection), zap.Int("documents", len(entities)))
	if s.onSeeded != nil {
		s.onSeeded(ctx, collection, len(entities))
	}
	return nil
}

// EnsureCatalogSeeded seeds categories, then products.
func (s *Seeder) EnsureCatalogSeeded(ctx context.Context) error {
	for _, collection := range []string{models.CategoryCollection, models.ProductCollection} {
		if err := s.EnsureSeeded(ctx, collection); err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) build(collection string) ([]any, error) {
	newEntity, ok := entityBuilders[collection]
	if !ok {
		return nil, fmt.Errorf("no model registered for collection %q", collection)
	}

	records := s.dataset[collection]
	entities := make([]any, 0, len(records))
	for i, record := range records {
		entity, err := newEntity(record)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrValidation, fmt.Errorf("seed %s[%d]: %w", collection, i, err))
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
