// Package repositorytest provides an in-memory repository.DocumentStore for
// tests.
package repositorytest

import (
	"context"
	"reflect"
	"sync"

	"catalog-service/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryStore keeps documents per collection in insertion order. The *Err
// fields make the matching operation fail.
type MemoryStore struct {
	mu          sync.Mutex
	DBName      string
	collections map[string][]bson.M
	inserts     map[string]int

	InsertErr error
	FindErr   error
	CountErr  error
	ListErr   error
	PingErr   error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		DBName:      "test",
		collections: map[string][]bson.M{},
		inserts:     map[string]int{},
	}
}

// Put stores docs as-is, assigning an ObjectID where _id is missing.
func (m *MemoryStore) Put(collection string, docs ...bson.M) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, doc := range docs {
		if _, ok := doc["_id"]; !ok {
			doc["_id"] = primitive.NewObjectID()
		}
		m.collections[collection] = append(m.collections[collection], doc)
	}
}

// Inserts reports how many documents went through Insert for collection.
func (m *MemoryStore) Inserts(collection string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.inserts[collection]
}

// Docs returns the stored documents of collection.
func (m *MemoryStore) Docs(collection string) []bson.M {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]bson.M(nil), m.collections[collection]...)
}

func (m *MemoryStore) Insert(_ context.Context, collection string, entity any) (string, error) {
	if m.InsertErr != nil {
		return "", m.InsertErr
	}

	raw, err := bson.Marshal(entity)
	if err != nil {
		return "", err
	}
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return "", err
	}
	id := primitive.NewObjectID()
	doc["_id"] = id

	m.mu.Lock()
	defer m.mu.Unlock()
	m.collections[collection] = append(m.collections[collection], doc)
	m.inserts[collection]++
	return id.Hex(), nil
}

func (m *MemoryStore) Find(_ context.Context, collection string, filter repository.Filter) ([]bson.M, error) {
	if m.FindErr != nil {
		return nil, m.FindErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	out := []bson.M{}
	for _, doc := range m.collections[collection] {
		if matches(doc, filter) {
			out = append(out, doc)
		}
	}
	return out, nil
}

func (m *MemoryStore) Count(_ context.Context, collection string) (int64, error) {
	if m.CountErr != nil {
		return 0, m.CountErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.collections[collection])), nil
}

func (m *MemoryStore) ListCollections(context.Context) ([]string, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, 0, len(m.collections))
	for name := range m.collections {
		names = append(names, name)
	}
	return names, nil
}

func (m *MemoryStore) Name() string { return m.DBName }

func (m *MemoryStore) Ping(context.Context) error { return m.PingErr }

func matches(doc bson.M, filter repository.Filter) bool {
	for field, want := range filter {
		got, ok := doc[field]
		if !ok || !reflect.DeepEqual(got, want) {
			return false
		}
	}
	return true
}

var _ repository.DocumentStore = (*MemoryStore)(nil)
