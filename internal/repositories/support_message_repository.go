package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/anonto42/souq-admin/backend/internal/models"
)

// SupportMessageRepository defines the interface for support message operations
type SupportMessageRepository interface {
	CreateMessage(ctx context.Context, message *models.SupportMessage) error
	GetMessages(ctx context.Context, skip, limit int64) ([]models.SupportMessage, error)
}

// MongoSupportMessageRepository implements SupportMessageRepository for MongoDB
type MongoSupportMessageRepository struct {
	collection *mongo.Collection
}

// NewMongoSupportMessageRepository creates a new MongoSupportMessageRepository
func NewMongoSupportMessageRepository(db *mongo.Database) *MongoSupportMessageRepository {
	return &MongoSupportMessageRepository{collection: db.Collection("support_messages")}
}

// CreateMessage creates a new support message in MongoDB
func (r *MongoSupportMessageRepository) CreateMessage(ctx context.Context, message *models.SupportMessage) error {
	message.ID = primitive.NewObjectID()
	message.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, message)
	return err
}

// GetMessages retrieves support messages, newest first
func (r *MongoSupportMessageRepository) GetMessages(ctx context.Context, skip, limit int64) ([]models.SupportMessage, error) {
	findOptions := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.D{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var messages []models.SupportMessage
	if err = cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}
