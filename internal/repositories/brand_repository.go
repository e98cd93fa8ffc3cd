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

// BrandRepository defines the interface for brand data operations
type BrandRepository interface {
	CreateBrand(ctx context.Context, brand *models.Brand) error
	GetBrandByID(ctx context.Context, id string) (*models.Brand, error)
	GetBrands(ctx context.Context) ([]models.Brand, error)
	UpdateBrand(ctx context.Context, id string, brand *models.Brand) error
	DeleteBrand(ctx context.Context, id string) error
}

// MongoBrandRepository implements BrandRepository for MongoDB
type MongoBrandRepository struct {
	collection *mongo.Collection
}

// NewMongoBrandRepository creates a new MongoBrandRepository
func NewMongoBrandRepository(db *mongo.Database) *MongoBrandRepository {
	return &MongoBrandRepository{collection: db.Collection("brands")}
}

// CreateBrand creates a new brand in MongoDB
func (r *MongoBrandRepository) CreateBrand(ctx context.Context, brand *models.Brand) error {
	brand.ID = primitive.NewObjectID()
	brand.CreatedAt = time.Now()
	brand.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, brand)
	return err
}

// GetBrandByID retrieves a brand by ID from MongoDB
func (r *MongoBrandRepository) GetBrandByID(ctx context.Context, id string) (*models.Brand, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid brand ID format: %w", err)
	}

	var brand models.Brand
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&brand)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("brand not found")
		}
		return nil, err
	}
	return &brand, nil
}

// GetBrands retrieves all brands from MongoDB
func (r *MongoBrandRepository) GetBrands(ctx context.Context) ([]models.Brand, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.D{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var brands []models.Brand
	if err = cursor.All(ctx, &brands); err != nil {
		return nil, err
	}
	return brands, nil
}

// UpdateBrand updates an existing brand in MongoDB
func (r *MongoBrandRepository) UpdateBrand(ctx context.Context, id string, brand *models.Brand) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid brand ID format: %w", err)
	}

	brand.UpdatedAt = time.Now()
	update := bson.M{
		"$set": bson.M{
			"name":       brand.Name,
			"logo_url":   brand.LogoURL,
			"updated_at": brand.UpdatedAt,
		},
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("brand not found")
	}
	return nil
}

// DeleteBrand deletes a brand by ID from MongoDB
func (r *MongoBrandRepository) DeleteBrand(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid brand ID format: %w", err)
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("brand not found")
	}
	return nil
}
