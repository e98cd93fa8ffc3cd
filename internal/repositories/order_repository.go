package repositories

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/anonto42/souq-admin/backend/internal/models"
	"github.com/anonto42/souq-admin/backend/internal/orders"
)

// OrderRepository defines the interface for order data operations
type OrderRepository interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	GetOrderByID(ctx context.Context, id string) (*models.Order, error)
	GetOrdersByCustomerID(ctx context.Context, customerID string, skip, limit int64) ([]models.Order, error)
	GetAllOrders(ctx context.Context, skip, limit int64) ([]models.Order, error)
	UpdateLifecycle(ctx context.Context, id string, update orders.LifecycleUpdate) error
	NextOrderNumber(ctx context.Context) (string, error)
}

// MongoOrderRepository implements OrderRepository for MongoDB
type MongoOrderRepository struct {
	collection *mongo.Collection
	counters   *mongo.Collection
}

// NewMongoOrderRepository creates a new MongoOrderRepository
func NewMongoOrderRepository(db *mongo.Database) *MongoOrderRepository {
	return &MongoOrderRepository{
		collection: db.Collection("orders"),
		counters:   db.Collection("counters"),
	}
}

// CreateOrder creates a new order in MongoDB
func (r *MongoOrderRepository) CreateOrder(ctx context.Context, order *models.Order) error {
	order.ID = primitive.NewObjectID()
	order.CreatedAt = time.Now()
	order.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, order)
	return err
}

// GetOrderByID retrieves an order by ID from MongoDB
func (r *MongoOrderRepository) GetOrderByID(ctx context.Context, id string) (*models.Order, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid order ID format: %w", err)
	}

	var order models.Order
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, orders.ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

// GetOrdersByCustomerID retrieves orders placed by a specific customer
func (r *MongoOrderRepository) GetOrdersByCustomerID(ctx context.Context, customerID string, skip, limit int64) ([]models.Order, error) {
	findOptions := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"customer_id": customerID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var result []models.Order
	if err = cursor.All(ctx, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// GetAllOrders retrieves all orders with pagination
func (r *MongoOrderRepository) GetAllOrders(ctx context.Context, skip, limit int64) ([]models.Order, error) {
	findOptions := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.D{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var result []models.Order
	if err = cursor.All(ctx, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateLifecycle writes the lifecycle-owned fields of an order. Everything
// else on the document is left alone.
func (r *MongoOrderRepository) UpdateLifecycle(ctx context.Context, id string, update orders.LifecycleUpdate) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid order ID format: %w", err)
	}

	set := bson.M{
		"status":         update.Status,
		"payment_status": update.PaymentStatus,
		"updated_at":     update.UpdatedAt,
	}
	if update.TrackingNumber != "" {
		set["tracking_number"] = update.TrackingNumber
	}
	if update.CancelReason != "" {
		set["cancel_reason"] = update.CancelReason
	}

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return orders.ErrOrderNotFound
	}
	return nil
}

// NextOrderNumber atomically increments the order counter and returns the
// next display number. Numbers start at 1001.
func (r *MongoOrderRepository) NextOrderNumber(ctx context.Context) (string, error) {
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := r.counters.FindOneAndUpdate(
		ctx,
		bson.M{"_id": "orders"},
		bson.M{"$inc": bson.M{"seq": 1}},
		opts,
	).Decode(&counter)
	if err != nil {
		return "", fmt.Errorf("allocate order number: %w", err)
	}
	return strconv.FormatInt(1000+counter.Seq, 10), nil
}
