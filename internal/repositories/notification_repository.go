package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/anonto42/souq-admin/backend/internal/models"
)

// Inbox status filter values
const (
	InboxStatusAll    = "all"
	InboxStatusUnread = "unread"
	InboxStatusRead   = "read"
)

var (
	// ErrNotificationNotFound is returned when the notification id resolves
	// to nothing.
	ErrNotificationNotFound = errors.New("notification not found")
	// ErrInvalidNotificationID is returned for a malformed notification id.
	ErrInvalidNotificationID = errors.New("invalid notification ID")
)

// InboxFilter is the view a bulk operation is scoped to. Bulk mutations
// (mark-all-read, delete-read, delete-all) never touch documents outside the
// filter that built the visible list.
type InboxFilter struct {
	Recipient string    // customer Firebase UID; empty for the staff inbox
	Status    string    // all, unread or read
	Type      string    // exact notification type, or empty/"all"
	Since     time.Time // zero means no time bound; staff inbox only
}

// query translates the filter into a Mongo predicate so the store can push
// it down instead of loading the collection.
func (f InboxFilter) query() bson.M {
	q := bson.M{}
	if f.Recipient != "" {
		q["recipient"] = f.Recipient
	}
	switch f.Status {
	case InboxStatusUnread:
		q["read"] = false
	case InboxStatusRead:
		q["read"] = true
	}
	if f.Type != "" && f.Type != "all" {
		q["type"] = f.Type
	}
	if !f.Since.IsZero() {
		q["created_at"] = bson.M{"$gte": f.Since}
	}
	return q
}

// NotificationStore defines the interface for notification data operations.
// The same contract backs both the staff and customer inbox collections.
type NotificationStore interface {
	Create(ctx context.Context, n *models.Notification) error
	List(ctx context.Context, f InboxFilter) ([]models.Notification, error)
	UnreadCount(ctx context.Context, recipient string) (int64, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context, f InboxFilter) error
	Delete(ctx context.Context, id string) error
	DeleteRead(ctx context.Context, f InboxFilter) error
	DeleteAll(ctx context.Context, f InboxFilter) error
}

// MongoNotificationStore implements NotificationStore over one MongoDB
// collection.
type MongoNotificationStore struct {
	collection *mongo.Collection
}

// NewStaffNotificationStore creates the store backing the staff inbox
func NewStaffNotificationStore(db *mongo.Database) *MongoNotificationStore {
	return &MongoNotificationStore{collection: db.Collection("staff_notifications")}
}

// NewCustomerNotificationStore creates the store backing the customer inbox
func NewCustomerNotificationStore(db *mongo.Database) *MongoNotificationStore {
	return &MongoNotificationStore{collection: db.Collection("customer_notifications")}
}

// Create inserts a new notification
func (s *MongoNotificationStore) Create(ctx context.Context, n *models.Notification) error {
	n.ID = primitive.NewObjectID()
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	_, err := s.collection.InsertOne(ctx, n)
	return err
}

// List returns the notifications matching f, newest first. Ties on
// created_at are broken by _id so the ordering is stable.
func (s *MongoNotificationStore) List(ctx context.Context, f InboxFilter) ([]models.Notification, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := s.collection.Find(ctx, f.query(), findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var notifications []models.Notification
	if err = cursor.All(ctx, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

// UnreadCount counts unread notifications over the whole audience
// collection, ignoring any view filter.
func (s *MongoNotificationStore) UnreadCount(ctx context.Context, recipient string) (int64, error) {
	q := bson.M{"read": false}
	if recipient != "" {
		q["recipient"] = recipient
	}
	return s.collection.CountDocuments(ctx, q)
}

// MarkRead sets read=true on one notification. Idempotent: marking an
// already-read notification changes nothing.
func (s *MongoNotificationStore) MarkRead(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidNotificationID, id)
	}
	res, err := s.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": bson.M{"read": true}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

// MarkAllRead sets read=true on every unread notification inside the
// filtered view. Documents outside the view are never touched.
func (s *MongoNotificationStore) MarkAllRead(ctx context.Context, f InboxFilter) error {
	// A read-only view contains no unread items to mark.
	if f.Status == InboxStatusRead {
		return nil
	}
	q := f.query()
	q["read"] = false
	_, err := s.collection.UpdateMany(ctx, q, bson.M{"$set": bson.M{"read": true}})
	return err
}

// Delete hard-deletes one notification
func (s *MongoNotificationStore) Delete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidNotificationID, id)
	}
	res, err := s.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

// DeleteRead hard-deletes every read notification inside the filtered view,
// as one DeleteMany batch. Unread documents and their flags are untouched.
func (s *MongoNotificationStore) DeleteRead(ctx context.Context, f InboxFilter) error {
	// An unread-only view contains no read items to delete.
	if f.Status == InboxStatusUnread {
		return nil
	}
	q := f.query()
	q["read"] = true
	_, err := s.collection.DeleteMany(ctx, q)
	return err
}

// DeleteAll hard-deletes every notification inside the filtered view.
func (s *MongoNotificationStore) DeleteAll(ctx context.Context, f InboxFilter) error {
	_, err := s.collection.DeleteMany(ctx, f.query())
	return err
}
