package controllers

import (
	"errors"
	"net/http"
	"testing"

	apperrors "catalog-service/common/errors"
	"catalog-service/repository"
	"catalog-service/repository/repositorytest"
	"catalog-service/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStatusRouter(status StatusServiceAPI) *gin.Engine {
	gin.SetMode(gin.TestMode)
	sc := NewStatusController(status)
	r := gin.New()
	r.Use(apperrors.ErrorMiddleware())
	r.GET("/", sc.Root)
	r.GET("/api/hello", sc.Hello)
	r.GET("/test", sc.Test)
	r.GET("/health", sc.Health)
	r.GET("/ready", sc.Ready)
	return r
}

func TestStaticEndpoints(t *testing.T) {
	r := newStatusRouter(services.NewStatusService(repository.Handle{}, false, false))

	w := get(t, r, "/")
	assert.JSONEq(t, `{"message":"Sneaker Store Backend Running"}`, w.Body.String())

	w = get(t, r, "/api/hello")
	assert.JSONEq(t, `{"message":"Hello from the backend API!"}`, w.Body.String())

	w = get(t, r, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"OK"}`, w.Body.String())
}

func TestStatusWithoutStore(t *testing.T) {
	r := newStatusRouter(services.NewStatusService(repository.Handle{}, false, false))

	w := get(t, r, "/test")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"backend": "✅ Running",
		"database": "⚠️  Available but not initialized",
		"database_url": "❌ Not Set",
		"database_name": "❌ Not Set",
		"connection_status": "Not Connected",
		"collections": []
	}`, w.Body.String())
}

func TestStatusWithStore(t *testing.T) {
	store := repositorytest.NewMemoryStore()
	store.Put("product", map[string]any{"title": "A"})
	r := newStatusRouter(services.NewStatusService(repository.NewHandle(store), true, true))

	w := get(t, r, "/test")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"backend": "✅ Running",
		"database": "✅ Connected & Working",
		"database_url": "✅ Set",
		"database_name": "✅ Set",
		"connection_status": "Connected",
		"collections": ["product"]
	}`, w.Body.String())
}

func TestReadyWithoutStore(t *testing.T) {
	r := newStatusRouter(services.NewStatusService(repository.Handle{}, false, false))

	w := get(t, r, "/ready")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"code":503,"message":"Document store unavailable"}`, w.Body.String())
}

func TestReadyPingsStore(t *testing.T) {
	store := repositorytest.NewMemoryStore()
	r := newStatusRouter(services.NewStatusService(repository.NewHandle(store), true, true))

	w := get(t, r, "/ready")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"READY"}`, w.Body.String())

	store.PingErr = errors.New("server selection timeout")
	w = get(t, r, "/ready")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"code":503,"message":"Service unavailable"}`, w.Body.String())
}
