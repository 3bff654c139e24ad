package repository

import (
	"context"

	apperrors "catalog-service/common/errors"

	"go.mongodb.org/mongo-driver/bson"
)

// Filter maps field names to the exact value a document must hold.
// A nil or empty Filter matches every document.
type Filter map[string]any

// DocumentStore is the document database as seen by the catalog. It performs
// no validation; entities are validated before they get here.
type DocumentStore interface {
	// Insert stores entity (without any identifier it carries) and returns
	// the identifier the store assigned.
	Insert(ctx context.Context, collection string, entity any) (string, error)
	// Find returns the documents matching filter in natural order.
	Find(ctx context.Context, collection string, filter Filter) ([]bson.M, error)
	Count(ctx context.Context, collection string) (int64, error)
	ListCollections(ctx context.Context) ([]string, error)
	// Name is the database name.
	Name() string
	Ping(ctx context.Context) error
}

// Handle is the optional store the process was started with. The zero Handle
// means no connection was established and callers run in degraded mode.
type Handle struct {
	store DocumentStore
}

// NewHandle wraps store. A nil store yields the degraded Handle.
func NewHandle(store DocumentStore) Handle {
	return Handle{store: store}
}

// Get returns the store and whether one is available.
func (h Handle) Get() (DocumentStore, bool) {
	return h.store, h.store != nil
}

func (h Handle) Available() bool {
	return h.store != nil
}

// Require returns the store or ErrStoreUnavailable.
func (h Handle) Require() (DocumentStore, error) {
	if h.store == nil {
		return nil, apperrors.ErrStoreUnavailable
	}
	return h.store, nil
}
