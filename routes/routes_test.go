package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "catalog-service/common/errors"
	"catalog-service/controllers"
	"catalog-service/repository"
	"catalog-service/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	handle := repository.Handle{}
	catalog := controllers.NewCatalogController(services.NewCatalogService(handle, services.NewSeeder(handle)), nil)
	status := controllers.NewStatusController(services.NewStatusService(handle, false, false))

	r := gin.New()
	r.Use(apperrors.ErrorMiddleware())
	RegisterRoutes(r, catalog, status)
	return r
}

func TestRegisteredRoutes(t *testing.T) {
	r := newEngine()

	tests := []struct {
		path string
		code int
	}{
		{"/", http.StatusOK},
		{"/api/hello", http.StatusOK},
		{"/test", http.StatusOK},
		{"/health", http.StatusOK},
		{"/ready", http.StatusServiceUnavailable},
		{"/api/categories", http.StatusOK},
		{"/api/products", http.StatusOK},
		{"/api/products/featured", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.code, w.Code)
		})
	}
}

func TestUnknownRouteIsJSONNotFound(t *testing.T) {
	w := httptest.NewRecorder()
	newEngine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/orders", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"code":404,"message":"Not found"}`, w.Body.String())
}
