package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"divano/pkg/logger"
	"divano/pkg/model"
)

const collectionName = "bookings"

// MongoStore is the self-hosted alternative to the spreadsheet backend. It
// keeps the same record schema (string ids, canonical date strings) so the
// engine cannot tell the two apart.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
	timeout    time.Duration
	log        *logger.Logger
}

func NewMongoStore(client *mongo.Client, database string, timeout time.Duration, log *logger.Logger) *MongoStore {
	return &MongoStore{
		client:     client,
		collection: client.Database(database).Collection(collectionName),
		timeout:    timeout,
		log:        log,
	}
}

func (s *MongoStore) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}

func (s *MongoStore) List(ctx context.Context) ([]model.BookingRecord, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	cursor, err := s.collection.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("mongo list: %w", err)
	}
	defer cursor.Close(ctx)

	var records []model.BookingRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("mongo list: decode rows: %w", err)
	}
	return records, nil
}

func (s *MongoStore) Insert(ctx context.Context, rec model.BookingRecord) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if _, err := s.collection.InsertOne(ctx, rec); err != nil {
		return fmt.Errorf("mongo insert: %w", err)
	}
	return nil
}

func (s *MongoStore) DeleteByID(ctx context.Context, id string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	result, err := s.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("mongo delete: %w", err)
	}
	if result.DeletedCount == 0 {
		// Absent id is a no-op success; deletes stay idempotent.
		s.log.Debug("Delete matched no rows", "id", id)
	}
	return nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.client.Ping(ctx, nil)
}
