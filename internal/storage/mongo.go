package storage

import (
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fluesternde/berggeist-theme/internal/core"
)

const (
	defaultMongoDatabase   = "berggeist"
	defaultMongoCollection = "preferences"
)

// preferenceDoc is one key/value pair; the key is the document _id.
type preferenceDoc struct {
	Key       string    `bson:"_id"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// MongoStore keeps preferences as documents in a MongoDB collection.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
	owned      bool
}

// NewMongoStore connects to uri and uses database/collection (defaults apply
// when empty).
func NewMongoStore(uri, database, collection string) (*MongoStore, error) {
	ctx, cancel := core.ContextWithConnectTimeout()
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to preferences db: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("%w: ping preferences db: %v", ErrUnavailable, err)
	}
	s := NewMongoStoreFromClient(client, database, collection)
	s.owned = true
	return s, nil
}

// NewMongoStoreFromClient wraps an existing client. Close leaves it connected.
func NewMongoStoreFromClient(client *mongo.Client, database, collection string) *MongoStore {
	if database == "" {
		database = defaultMongoDatabase
	}
	if collection == "" {
		collection = defaultMongoCollection
	}
	return &MongoStore{
		client:     client,
		collection: client.Database(database).Collection(collection),
	}
}

// Get returns the value stored under key.
func (s *MongoStore) Get(key string) (string, error) {
	ctx, cancel := core.ContextWithTimeout()
	defer cancel()

	var doc preferenceDoc
	err := s.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%w: find preference: %v", ErrUnavailable, err)
	}
	return doc.Value, nil
}

// Set upserts value under key.
func (s *MongoStore) Set(key, value string) error {
	ctx, cancel := core.ContextWithTimeout()
	defer cancel()

	update := bson.M{"$set": bson.M{"value": value, "updatedAt": time.Now().UTC()}}
	_, err := s.collection.UpdateByID(ctx, key, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("%w: upsert preference: %v", ErrUnavailable, err)
	}
	return nil
}

// Close disconnects the client if the store created it.
func (s *MongoStore) Close() error {
	if !s.owned {
		return nil
	}
	ctx, cancel := core.ContextWithTimeout()
	defer cancel()
	return s.client.Disconnect(ctx)
}
