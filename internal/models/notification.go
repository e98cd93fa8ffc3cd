package models

import (
	"encoding/json"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Staff notification types
const (
	StaffNotifOrder    = "order"    // new order, completion, cancellation
	StaffNotifCustomer = "customer" // new customer registered
	StaffNotifSupport  = "support"  // new support message
	StaffNotifProduct  = "product"  // low stock
)

// Customer notification types
const (
	CustomerNotifOrderConfirmed  = "order_confirmed"
	CustomerNotifOrderProcessing = "order_processing"
	CustomerNotifOrderShipped    = "order_shipped"
	CustomerNotifOrderDelivered  = "order_delivered"
	CustomerNotifOrderCancelled  = "order_cancelled"
	CustomerNotifGeneral         = "general"
	CustomerNotifWelcome         = "welcome"
)

// Message is a tagged variant: either a single plain-text string (staff
// notifications) or a bilingual {ar,en} payload (customer notifications).
// It is stored in MongoDB as a plain string or an {ar,en} subdocument and
// rendered to JSON the same way.
type Message struct {
	Text string // plain form; empty when bilingual
	AR   string
	EN   string
}

// PlainText builds the single-language form of a Message.
func PlainText(s string) Message {
	return Message{Text: s}
}

// Bilingual builds the {ar,en} form of a Message.
func Bilingual(ar, en string) Message {
	return Message{AR: ar, EN: en}
}

// IsBilingual reports which variant m holds.
func (m Message) IsBilingual() bool {
	return m.Text == ""
}

type bilingualDoc struct {
	AR string `json:"ar" bson:"ar"`
	EN string `json:"en" bson:"en"`
}

// MarshalBSONValue stores the plain form as a BSON string and the bilingual
// form as an embedded document.
func (m Message) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if m.IsBilingual() {
		return bson.MarshalValue(bilingualDoc{AR: m.AR, EN: m.EN})
	}
	return bson.MarshalValue(m.Text)
}

// UnmarshalBSONValue accepts either stored form.
func (m *Message) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}
	switch t {
	case bson.TypeString:
		s, ok := raw.StringValueOK()
		if !ok {
			return fmt.Errorf("malformed string message value")
		}
		*m = Message{Text: s}
		return nil
	case bson.TypeEmbeddedDocument:
		var doc bilingualDoc
		if err := raw.Unmarshal(&doc); err != nil {
			return err
		}
		*m = Message{AR: doc.AR, EN: doc.EN}
		return nil
	}
	return fmt.Errorf("unexpected BSON type %s for message", t)
}

// MarshalJSON mirrors the BSON representation for API responses.
func (m Message) MarshalJSON() ([]byte, error) {
	if m.IsBilingual() {
		return json.Marshal(bilingualDoc{AR: m.AR, EN: m.EN})
	}
	return json.Marshal(m.Text)
}

// UnmarshalJSON accepts either a string or an {ar,en} object.
func (m *Message) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*m = Message{Text: s}
		return nil
	}
	var doc bilingualDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	*m = Message{AR: doc.AR, EN: doc.EN}
	return nil
}

// Notification is the shared shape of both the staff and customer inbox
// collections. Recipient is empty on staff notifications (broadcast to all
// staff viewers). Only the Read flag is ever mutated after creation.
type Notification struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Recipient string             `json:"recipient,omitempty" bson:"recipient,omitempty"` // Customer Firebase UID
	Type      string             `json:"type" bson:"type"`
	Title     string             `json:"title" bson:"title"`
	Message   Message            `json:"message" bson:"message"`
	Read      bool               `json:"read" bson:"read"`
	TargetID  string             `json:"target_id,omitempty" bson:"target_id,omitempty"`
	TargetURL string             `json:"target_url,omitempty" bson:"target_url,omitempty"`
	Metadata  map[string]any     `json:"metadata,omitempty" bson:"metadata,omitempty"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}
