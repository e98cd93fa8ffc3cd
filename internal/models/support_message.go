package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SupportMessage represents a customer support request stored in MongoDB
type SupportMessage struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	CustomerID string             `json:"customer_id" bson:"customer_id"`
	Subject    string             `json:"subject" bson:"subject"`
	Body       string             `json:"body" bson:"body"`
	CreatedAt  time.Time          `json:"created_at" bson:"created_at"`
}

// CreateSupportMessageRequest defines the request body for a support message
type CreateSupportMessageRequest struct {
	Subject string `json:"subject" validate:"required,min=1,max=200"`
	Body    string `json:"body" validate:"required,min=1,max=5000"`
}
