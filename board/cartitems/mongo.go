package cartitems

import (
	"context"
	"errors"
	"time"

	"github.com/tryanzu/cart/modules/cart"
	"gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"
)

// ErrContention is returned when a clamped decrement keeps losing the race
// against concurrent writers.
var ErrContention = errors.New("cartitems: too many concurrent updates")

const casAttempts = 5

// MongoStore keeps cart rows as documents of one collection.
type MongoStore struct {
	db         *mgo.Database
	collection string
}

func NewMongoStore(db *mgo.Database, collection string) *MongoStore {
	return &MongoStore{db: db, collection: collection}
}

var _ cart.RecordStore = (*MongoStore)(nil)

func (s *MongoStore) coll() *mgo.Collection {
	return s.db.C(s.collection)
}

// EnsureIndexes keeps one document per (owner, item).
func (s *MongoStore) EnsureIndexes() error {
	return s.coll().EnsureIndex(mgo.Index{
		Key:        []string{"user_id", "session_id", "item_id"},
		Unique:     true,
		Background: true,
	})
}

func scopeCriteria(scope cart.Scope) bson.M {
	return bson.M{
		"session_id": nullable(scope.SessionID),
		"user_id":    nullable(scope.UserID),
	}
}

func itemCriteria(scope cart.Scope, itemID string) bson.M {
	criteria := scopeCriteria(scope)
	criteria["item_id"] = itemID
	return criteria
}

func (s *MongoStore) FindOne(ctx context.Context, scope cart.Scope, itemID string) (cart.Row, bool, error) {
	if err := ctx.Err(); err != nil {
		return cart.Row{}, false, err
	}
	var doc Document
	err := s.coll().Find(itemCriteria(scope, itemID)).One(&doc)
	if err == mgo.ErrNotFound {
		return cart.Row{}, false, nil
	}
	if err != nil {
		return cart.Row{}, false, err
	}
	return doc.Row(), true, nil
}

func (s *MongoStore) FindAll(ctx context.Context, scope cart.Scope) ([]cart.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var docs []Document
	if err := s.coll().Find(scopeCriteria(scope)).Sort("item_id").All(&docs); err != nil {
		return nil, err
	}
	list := make([]cart.Row, 0, len(docs))
	for _, doc := range docs {
		list = append(list, doc.Row())
	}
	return list, nil
}

// Upsert relies on $inc so concurrent adds both count.
func (s *MongoStore) Upsert(ctx context.Context, row cart.Row) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	options := map[string]string(row.Options)
	if options == nil {
		options = map[string]string{}
	}
	now := time.Now()
	_, err := s.coll().Upsert(itemCriteria(row.Scope, row.ItemID), bson.M{
		"$inc": bson.M{"quantity": row.Quantity},
		"$set": bson.M{
			"name":       row.Name,
			"price":      row.Price,
			"options":    options,
			"updated_at": now,
		},
		"$setOnInsert": bson.M{
			"created_at": now,
		},
	})
	return err
}

func (s *MongoStore) IncrementQuantity(ctx context.Context, scope cart.Scope, itemID string, delta int) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	err := s.coll().Update(itemCriteria(scope, itemID), bson.M{
		"$inc": bson.M{"quantity": delta},
		"$set": bson.M{"updated_at": time.Now()},
	})
	if err == mgo.ErrNotFound {
		return false, nil
	}
	return err == nil, err
}

// DecrementQuantity compares and swaps on the observed quantity, retrying
// when another writer got there first.
func (s *MongoStore) DecrementQuantity(ctx context.Context, scope cart.Scope, itemID string, delta int) (bool, error) {
	for attempt := 0; attempt < casAttempts; attempt++ {
		row, found, err := s.FindOne(ctx, scope, itemID)
		if err != nil || !found {
			return false, err
		}

		next := row.Quantity - delta
		if next < 1 {
			next = 1
		}
		if next == row.Quantity {
			return true, nil
		}

		criteria := itemCriteria(scope, itemID)
		criteria["quantity"] = row.Quantity
		err = s.coll().Update(criteria, bson.M{
			"$set": bson.M{"quantity": next, "updated_at": time.Now()},
		})
		if err == mgo.ErrNotFound {
			continue
		}
		return err == nil, err
	}
	return false, ErrContention
}

func (s *MongoStore) DeleteOne(ctx context.Context, scope cart.Scope, itemID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := s.coll().Remove(itemCriteria(scope, itemID))
	if err == mgo.ErrNotFound {
		return nil
	}
	return err
}

func (s *MongoStore) DeleteAll(ctx context.Context, scope cart.Scope) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := s.coll().RemoveAll(scopeCriteria(scope))
	return err
}
