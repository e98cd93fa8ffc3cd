package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Customer represents a shopper record stored in MongoDB, keyed by the
// Firebase UID issued at registration.
type Customer struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	FirebaseUID string             `json:"firebase_uid" bson:"firebase_uid"`
	Name        string             `json:"name" bson:"name"`
	Email       string             `json:"email" bson:"email"`
	Phone       string             `json:"phone,omitempty" bson:"phone,omitempty"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
}

// RegisterCustomerRequest defines the request body for customer registration.
// The ID token comes from Firebase Auth on the storefront client.
type RegisterCustomerRequest struct {
	IDToken string `json:"idToken" validate:"required"`
	Name    string `json:"name,omitempty" validate:"omitempty,min=1,max=80"`
	Phone   string `json:"phone,omitempty" validate:"omitempty,max=20"`
}
