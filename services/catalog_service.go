package services

import (
	"context"

	apperrors "catalog-service/common/errors"
	"catalog-service/models"
	"catalog-service/repository"
	"catalog-service/serializer"
)

// CatalogService serves the read side of the catalog. Every read seeds the
// catalog first, so a fresh database answers with the demo data.
type CatalogService struct {
	store  repository.Handle
	seeder *Seeder
}

func NewCatalogService(store repository.Handle, seeder *Seeder) *CatalogService {
	return &CatalogService{store: store, seeder: seeder}
}

// ListCategories returns every category, serialized. Without a store the
// result is empty.
func (s *CatalogService) ListCategories(ctx context.Context) ([]map[string]any, error) {
	return s.list(ctx, models.CategoryCollection, nil)
}

// ListProducts returns the products matching every filter set in q.
func (s *CatalogService) ListProducts(ctx context.Context, q ProductQuery) ([]map[string]any, error) {
	return s.list(ctx, models.ProductCollection, q.Filter())
}

// ListFeatured returns the featured products.
func (s *CatalogService) ListFeatured(ctx context.Context) ([]map[string]any, error) {
	return s.ListProducts(ctx, FeaturedQuery())
}

func (s *CatalogService) list(ctx context.Context, collection string, filter repository.Filter) ([]map[string]any, error) {
	store, ok := s.store.Get()
	if !ok {
		return []map[string]any{}, nil
	}

	if err := s.seeder.EnsureCatalogSeeded(ctx); err != nil {
		return nil, err
	}

	docs, err := store.Find(ctx, collection, filter)
	if err != nil {
		return nil, err
	}

	out, err := serializer.SerializeAll(docs)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrSerialization, err)
	}
	return out, nil
}
