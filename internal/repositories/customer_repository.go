package repositories

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/anonto42/souq-admin/backend/internal/models"
)

// ErrCustomerNotFound is returned when no customer matches the lookup.
var ErrCustomerNotFound = fmt.Errorf("customer not found")

// CustomerRepository defines the interface for customer data operations
type CustomerRepository interface {
	CreateCustomer(ctx context.Context, customer *models.Customer) error
	GetCustomerByUID(ctx context.Context, firebaseUID string) (*models.Customer, error)
	GetCustomers(ctx context.Context, skip, limit int64) ([]models.Customer, error)
}

// MongoCustomerRepository implements CustomerRepository for MongoDB
type MongoCustomerRepository struct {
	collection *mongo.Collection
}

// NewMongoCustomerRepository creates a new MongoCustomerRepository
func NewMongoCustomerRepository(db *mongo.Database) *MongoCustomerRepository {
	return &MongoCustomerRepository{collection: db.Collection("customers")}
}

// CreateCustomer creates a new customer record in MongoDB
func (r *MongoCustomerRepository) CreateCustomer(ctx context.Context, customer *models.Customer) error {
	customer.ID = primitive.NewObjectID()
	customer.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, customer)
	return err
}

// GetCustomerByUID retrieves a customer by Firebase UID from MongoDB
func (r *MongoCustomerRepository) GetCustomerByUID(ctx context.Context, firebaseUID string) (*models.Customer, error) {
	var customer models.Customer
	err := r.collection.FindOne(ctx, bson.M{"firebase_uid": firebaseUID}).Decode(&customer)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return &customer, nil
}

// GetCustomers retrieves all customers with pagination
func (r *MongoCustomerRepository) GetCustomers(ctx context.Context, skip, limit int64) ([]models.Customer, error) {
	findOptions := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.D{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var customers []models.Customer
	if err = cursor.All(ctx, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}
