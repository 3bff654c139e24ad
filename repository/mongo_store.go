package repository

import (
	"context"
	"fmt"
	"time"

	apperrors "catalog-service/common/errors"
	"catalog-service/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoStore implements DocumentStore on a MongoDB database.
type MongoStore struct {
	db  *mongo.Database
	now func() time.Time
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

func storeError(op, collection string, err error) error {
	return apperrors.Wrap(apperrors.ErrStoreOperation, fmt.Errorf("%s %s: %w", op, collection, err))
}

// Insert stamps created_at and updated_at on the document.
func (s *MongoStore) Insert(ctx context.Context, collection string, entity any) (string, error) {
	doc, err := toDocument(entity)
	if err != nil {
		return "", storeError("encode", collection, err)
	}
	now := s.now()
	doc["created_at"] = now
	doc["updated_at"] = now

	res, err := s.db.Collection(collection).InsertOne(ctx, doc)
	if err != nil {
		return "", storeError("insert", collection, err)
	}

	switch id := res.InsertedID.(type) {
	case primitive.ObjectID:
		return id.Hex(), nil
	default:
		return fmt.Sprint(id), nil
	}
}

func (s *MongoStore) Find(ctx context.Context, collection string, filter Filter) ([]bson.M, error) {
	query := bson.M{}
	for k, v := range filter {
		query[k] = v
	}

	cursor, err := s.db.Collection(collection).Find(ctx, query)
	if err != nil {
		return nil, storeError("find", collection, err)
	}
	defer cursor.Close(ctx)

	docs := []bson.M{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, storeError("decode", collection, err)
	}
	return docs, nil
}

func (s *MongoStore) Count(ctx context.Context, collection string) (int64, error) {
	n, err := s.db.Collection(collection).CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, storeError("count", collection, err)
	}
	return n, nil
}

func (s *MongoStore) ListCollections(ctx context.Context) ([]string, error) {
	names, err := s.db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return nil, storeError("list collections", s.db.Name(), err)
	}
	return names, nil
}

func (s *MongoStore) Name() string {
	return s.db.Name()
}

func (s *MongoStore) Ping(ctx context.Context) error {
	if err := s.db.Client().Ping(ctx, readpref.Primary()); err != nil {
		return storeError("ping", s.db.Name(), err)
	}
	return nil
}

// EnsureIndexes creates the catalog indexes. The unique slug index keeps a
// racing double seed from duplicating categories.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.db.Collection(models.CategoryCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "slug", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return storeError("create index", models.CategoryCollection, err)
	}

	_, err = s.db.Collection(models.ProductCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "featured", Value: 1}}},
	})
	if err != nil {
		return storeError("create index", models.ProductCollection, err)
	}
	return nil
}

// toDocument encodes entity through its bson tags and drops any _id.
func toDocument(entity any) (bson.M, error) {
	raw, err := bson.Marshal(entity)
	if err != nil {
		return nil, err
	}
	doc := bson.M{}
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	delete(doc, "_id")
	return doc, nil
}
