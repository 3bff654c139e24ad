package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	apperrors "catalog-service/common/errors"
	"catalog-service/repository"
	"catalog-service/repository/repositorytest"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestStatusWithoutStore(t *testing.T) {
	report := NewStatusService(repository.Handle{}, false, true).Check(context.Background())

	assert.Equal(t, "✅ Running", report.Backend)
	assert.Equal(t, "⚠️  Available but not initialized", report.Database)
	assert.Equal(t, "Not Connected", report.ConnectionStatus)
	assert.NotNil(t, report.Collections)
	assert.Empty(t, report.Collections)
	assert.Equal(t, "❌ Not Set", report.DatabaseURL)
	assert.Equal(t, "✅ Set", report.DatabaseName)
}

func TestStatusConnected(t *testing.T) {
	store := repositorytest.NewMemoryStore()
	for i := 0; i < 12; i++ {
		store.Put(fmt.Sprintf("c%02d", i), bson.M{"n": i})
	}

	report := NewStatusService(repository.NewHandle(store), true, true).Check(context.Background())

	assert.Equal(t, "✅ Connected & Working", report.Database)
	assert.Equal(t, "Connected", report.ConnectionStatus)
	assert.Len(t, report.Collections, 10)
	assert.Equal(t, "✅ Set", report.DatabaseURL)
}

func TestStatusTruncatesListingError(t *testing.T) {
	store := repositorytest.NewMemoryStore()
	cause := errors.New("connection(localhost:27017[-3]) socket was unexpectedly closed: EOF")
	store.ListErr = apperrors.Wrap(apperrors.ErrStoreOperation, cause)

	report := NewStatusService(repository.NewHandle(store), true, true).Check(context.Background())

	assert.Equal(t, "Connected", report.ConnectionStatus)
	assert.Equal(t, "⚠️  Connected but Error: "+cause.Error()[:50], report.Database)
	assert.Empty(t, report.Collections)
}

func TestReady(t *testing.T) {
	err := NewStatusService(repository.Handle{}, false, false).Ready(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrStoreUnavailable)

	store := repositorytest.NewMemoryStore()
	svc := NewStatusService(repository.NewHandle(store), true, true)
	assert.NoError(t, svc.Ready(context.Background()))

	cause := errors.New("server selection timeout")
	store.PingErr = cause
	err = svc.Ready(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrServiceUnavailable)
	assert.ErrorIs(t, err, cause)
}
