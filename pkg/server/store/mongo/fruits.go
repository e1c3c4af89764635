package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/doodlesbykumbi/fruits-in-go/pkg/server/store"
)

// CollectionName is the collection holding fruit documents
const CollectionName = "fruits"

var _ store.FruitsStore = (*FruitsStore)(nil)

type fruitDocument struct {
	ID         bson.ObjectID `bson:"_id,omitempty"`
	Name       string        `bson:"name"`
	Color      string        `bson:"color"`
	ReadyToEat bool          `bson:"readyToEat"`
}

func (d fruitDocument) toStore() store.Fruit {
	return store.Fruit{
		ID:         d.ID.Hex(),
		Name:       d.Name,
		Color:      d.Color,
		ReadyToEat: d.ReadyToEat,
	}
}

func newDocument(f store.Fruit) fruitDocument {
	return fruitDocument{
		ID:         bson.NewObjectID(),
		Name:       f.Name,
		Color:      f.Color,
		ReadyToEat: f.ReadyToEat,
	}
}

// FruitsStore implements store.FruitsStore on a MongoDB collection
type FruitsStore struct {
	coll *mongo.Collection
}

// NewFruitsStore creates a FruitsStore using the fruits collection of db
func NewFruitsStore(db *mongo.Database) *FruitsStore {
	return &FruitsStore{coll: db.Collection(CollectionName)}
}

func parseID(id string) (bson.ObjectID, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.ObjectID{}, fmt.Errorf("invalid fruit id %q: %w", id, err)
	}
	return oid, nil
}

// List returns every document in the collection
func (s *FruitsStore) List(ctx context.Context) ([]store.Fruit, error) {
	cursor, err := s.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}

	var docs []fruitDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	fruits := make([]store.Fruit, 0, len(docs))
	for _, d := range docs {
		fruits = append(fruits, d.toStore())
	}
	return fruits, nil
}

// Get fetches a fruit by its hex ObjectID
func (s *FruitsStore) Get(ctx context.Context, id string) (*store.Fruit, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var doc fruitDocument
	err = s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	fruit := doc.toStore()
	return &fruit, nil
}

// Create inserts one document
func (s *FruitsStore) Create(ctx context.Context, fruit store.Fruit) (*store.Fruit, error) {
	doc := newDocument(fruit)
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return nil, err
	}
	created := doc.toStore()
	return &created, nil
}

// CreateMany inserts all fruits with a single InsertMany
func (s *FruitsStore) CreateMany(ctx context.Context, fruits []store.Fruit) ([]store.Fruit, error) {
	if len(fruits) == 0 {
		return []store.Fruit{}, nil
	}

	docs := make([]any, 0, len(fruits))
	created := make([]store.Fruit, 0, len(fruits))
	for _, f := range fruits {
		doc := newDocument(f)
		docs = append(docs, doc)
		created = append(created, doc.toStore())
	}

	if _, err := s.coll.InsertMany(ctx, docs); err != nil {
		return nil, err
	}
	return created, nil
}

// Update replaces the whole document, keeping its _id
func (s *FruitsStore) Update(ctx context.Context, id string, fruit store.Fruit) (*store.Fruit, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	doc := fruitDocument{
		ID:         oid,
		Name:       fruit.Name,
		Color:      fruit.Color,
		ReadyToEat: fruit.ReadyToEat,
	}
	res, err := s.coll.ReplaceOne(ctx, bson.D{{Key: "_id", Value: oid}}, doc)
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, nil
	}
	updated := doc.toStore()
	return &updated, nil
}

// Delete removes one document and returns it
func (s *FruitsStore) Delete(ctx context.Context, id string) (*store.Fruit, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var doc fruitDocument
	err = s.coll.FindOneAndDelete(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	removed := doc.toStore()
	return &removed, nil
}

// DeleteAll empties the collection
func (s *FruitsStore) DeleteAll(ctx context.Context) error {
	_, err := s.coll.DeleteMany(ctx, bson.D{})
	return err
}
