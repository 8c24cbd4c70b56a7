package cartitems

import (
	"testing"

	"github.com/tryanzu/cart/modules/cart"
	"gopkg.in/mgo.v2/bson"
)

func TestItemCriteria(t *testing.T) {
	guest := itemCriteria(cart.Scope{SessionID: "s1"}, "p1")
	if guest["session_id"] != "s1" || guest["user_id"] != nil || guest["item_id"] != "p1" {
		t.Errorf("guest criteria %v", guest)
	}

	user := scopeCriteria(cart.Scope{UserID: "u1"})
	if user["user_id"] != "u1" || user["session_id"] != nil {
		t.Errorf("user criteria %v", user)
	}
	if _, has := user["item_id"]; has {
		t.Errorf("scope criteria should not filter on item")
	}
}

func TestDocumentRow(t *testing.T) {
	uid := "u1"
	doc := Document{
		ID:       bson.NewObjectId(),
		UserID:   &uid,
		ItemID:   "p1",
		Name:     "Mug",
		Price:    4.5,
		Quantity: 2,
		Options:  map[string]string{"color": "red"},
	}

	row := doc.Row()
	if row.Scope != (cart.Scope{UserID: "u1"}) {
		t.Errorf("scope %+v", row.Scope)
	}
	item := row.Item()
	if item.ID != "p1" || item.Subtotal() != 9 || item.Options["color"] != "red" {
		t.Errorf("item %+v", item)
	}
}
