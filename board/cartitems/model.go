package cartitems

import (
	"encoding/json"
	"time"

	"github.com/tryanzu/cart/modules/cart"
	"gopkg.in/mgo.v2/bson"
)

// Document is how a cart row is kept in mongo. Exactly one of SessionID
// and UserID is set.
type Document struct {
	ID        bson.ObjectId     `bson:"_id,omitempty" json:"id,omitempty"`
	SessionID *string           `bson:"session_id" json:"session_id"`
	UserID    *string           `bson:"user_id" json:"user_id"`
	ItemID    string            `bson:"item_id" json:"item_id"`
	Name      string            `bson:"name" json:"name"`
	Price     float64           `bson:"price" json:"price"`
	Quantity  int               `bson:"quantity" json:"quantity"`
	Options   map[string]string `bson:"options" json:"options"`
	Created   time.Time         `bson:"created_at" json:"created_at"`
	Updated   time.Time         `bson:"updated_at" json:"updated_at"`
}

// Row converts the document into the cart's row type.
func (d Document) Row() cart.Row {
	return cart.Row{
		Scope:    cart.Scope{SessionID: deref(d.SessionID), UserID: deref(d.UserID)},
		ItemID:   d.ItemID,
		Name:     d.Name,
		Price:    d.Price,
		Quantity: d.Quantity,
		Options:  cart.Options(d.Options),
	}
}

// nullable maps an unset scope column to NULL.
func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func encodeOptions(o cart.Options) (string, error) {
	if o == nil {
		o = cart.Options{}
	}
	b, err := json.Marshal(o)
	return string(b), err
}

func decodeOptions(raw string) (cart.Options, error) {
	o := cart.Options{}
	if raw == "" {
		return o, nil
	}
	err := json.Unmarshal([]byte(raw), &o)
	return o, err
}
