package controllers

import (
	"context"
	"net/http"

	"catalog-service/common/logger"
	"catalog-service/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	resourceCategories = "categories"
	resourceProducts   = "products"
)

type CatalogController struct {
	service CatalogServiceAPI
	cache   *CacheManager
}

// NewCatalogController builds the controller. cache may be nil.
func NewCatalogController(service CatalogServiceAPI, cache *CacheManager) *CatalogController {
	return &CatalogController{service: service, cache: cache}
}

// GetCategories handles GET /api/categories.
func (cc *CatalogController) GetCategories(c *gin.Context) {
	ctx := c.Request.Context()
	if docs, ok := cc.cache.GetList(ctx, resourceCategories, services.ProductQuery{}); ok {
		c.JSON(http.StatusOK, docs)
		return
	}

	docs, err := cc.service.ListCategories(ctx)
	if err != nil {
		logger.Error(c, "Failed to list categories", err)
		_ = c.Error(err)
		return
	}

	cc.cache.SetListAsync(resourceCategories, services.ProductQuery{}, docs)
	c.JSON(http.StatusOK, docs)
}

// GetProducts handles GET /api/products.
func (cc *CatalogController) GetProducts(c *gin.Context) {
	q, err := ParseProductQuery(c)
	if err != nil {
		logger.Warn(c, "Invalid product query", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cc.serveProducts(c, q, func(ctx context.Context) ([]map[string]any, error) {
		return cc.service.ListProducts(ctx, q)
	})
}

// GetFeaturedProducts handles GET /api/products/featured. Query parameters
// are ignored.
func (cc *CatalogController) GetFeaturedProducts(c *gin.Context) {
	cc.serveProducts(c, services.FeaturedQuery(), cc.service.ListFeatured)
}

// serveProducts answers from the cache entry for q, falling back to list.
func (cc *CatalogController) serveProducts(c *gin.Context, q services.ProductQuery, list func(context.Context) ([]map[string]any, error)) {
	ctx := c.Request.Context()
	if docs, ok := cc.cache.GetList(ctx, resourceProducts, q); ok {
		c.JSON(http.StatusOK, docs)
		return
	}

	docs, err := list(ctx)
	if err != nil {
		logger.Error(c, "Failed to list products", err)
		_ = c.Error(err)
		return
	}

	cc.cache.SetListAsync(resourceProducts, q, docs)
	c.JSON(http.StatusOK, docs)
}
