package database

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// ErrNotConfigured is returned when DATABASE_URL or DATABASE_NAME is empty.
var ErrNotConfigured = errors.New("database url or name not configured")

var (
	connectOnce sync.Once
	mongoClient *mongo.Client
	db          *mongo.Database
	connectErr  error
)

// Connect opens the process-wide MongoDB connection. Only the first call
// dials; later calls return the same result.
func Connect(mongoURL, dbName string) (*mongo.Database, error) {
	connectOnce.Do(func() {
		mongoClient, db, connectErr = connect(mongoURL, dbName)
	})
	return db, connectErr
}

func connect(mongoURL, dbName string) (*mongo.Client, *mongo.Database, error) {
	if mongoURL == "" || dbName == "" {
		return nil, nil, ErrNotConfigured
	}

	timeoutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(mongoURL).
		SetServerSelectionTimeout(5 * time.Second)

	client, err := mongo.Connect(timeoutCtx, clientOptions)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(timeoutCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	zap.L().Info("Connected to MongoDB", zap.String("database", dbName))
	return client, client.Database(dbName), nil
}

// Close disconnects from MongoDB. It is a no-op when Connect never succeeded.
func Close() error {
	if mongoClient == nil {
		return nil
	}

	disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := mongoClient.Disconnect(disconnectCtx); err != nil {
		return fmt.Errorf("failed to disconnect from MongoDB: %w", err)
	}

	zap.L().Info("Disconnected from MongoDB")
	return nil
}
