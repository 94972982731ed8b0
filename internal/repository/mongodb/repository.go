package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rfdevuser/InventoryManagement/internal/domain/models"
)

const (
	submissionsCollection = "fabric_submissions"
	digestsCollection     = "daily_digests"
)

// Repository defines the journal storage operations.
type Repository interface {
	SaveSubmission(ctx context.Context, entry models.SubmissionEntry) error
	ListSubmissions(ctx context.Context, from, to time.Time) ([]models.SubmissionEntry, error)
	SaveDailyDigest(ctx context.Context, digest models.DailyDigest) error
}

// MongoDBRepository implements the Repository interface for MongoDB.
type MongoDBRepository struct {
	client *mongo.Client
	dbName string
}

// NewMongoDBRepository creates a new MongoDB repository.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{
		client: client,
		dbName: dbName,
	}, nil
}

// SaveSubmission appends a submitted fabric record to the journal.
func (r *MongoDBRepository) SaveSubmission(ctx context.Context, entry models.SubmissionEntry) error {
	collection := r.client.Database(r.dbName).Collection(submissionsCollection)
	if _, err := collection.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("failed to insert fabric submission: %w", err)
	}
	return nil
}

// ListSubmissions returns journal entries submitted in [from, to), oldest first.
func (r *MongoDBRepository) ListSubmissions(ctx context.Context, from, to time.Time) ([]models.SubmissionEntry, error) {
	collection := r.client.Database(r.dbName).Collection(submissionsCollection)

	filter := bson.M{"submitted_at": bson.M{"$gte": from, "$lt": to}}
	opts := options.Find().SetSort(bson.D{{Key: "submitted_at", Value: 1}})

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query fabric submissions: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []models.SubmissionEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode fabric submissions: %w", err)
	}
	return entries, nil
}

// SaveDailyDigest upserts the digest of one day.
func (r *MongoDBRepository) SaveDailyDigest(ctx context.Context, digest models.DailyDigest) error {
	collection := r.client.Database(r.dbName).Collection(digestsCollection)

	_, err := collection.ReplaceOne(ctx,
		bson.M{"date": digest.Date},
		digest,
		options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to save daily digest: %w", err)
	}
	return nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
