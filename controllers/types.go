package controllers

import (
	"context"
	"time"

	"catalog-service/services"
)

const (
	DefaultCacheTTL       = 10 * time.Minute
	DefaultContextTimeout = 30 * time.Second
)

// CatalogServiceAPI is the read side of the catalog used by the handlers.
type CatalogServiceAPI interface {
	ListCategories(ctx context.Context) ([]map[string]any, error)
	ListProducts(ctx context.Context, q services.ProductQuery) ([]map[string]any, error)
	ListFeatured(ctx context.Context) ([]map[string]any, error)
}

// StatusServiceAPI builds the /test report and the readiness check.
type StatusServiceAPI interface {
	Check(ctx context.Context) services.StatusReport
	Ready(ctx context.Context) error
}
