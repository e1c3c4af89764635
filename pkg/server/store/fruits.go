package store

import "context"

// Fruit is a single record of the fruits collection
type Fruit struct {
	ID         string `json:"_id"`
	Name       string `json:"name"`
	Color      string `json:"color"`
	ReadyToEat bool   `json:"readyToEat"`
}

// FruitsStore abstracts fruit storage operations.
//
// Lookups of a well-formed identifier that matches nothing are not errors:
// Get, Update and Delete return a nil record and a nil error. A malformed
// identifier or a driver failure is returned as an error.
type FruitsStore interface {
	// List returns every fruit in the collection
	List(ctx context.Context) ([]Fruit, error)

	// Get fetches a fruit by identifier
	Get(ctx context.Context, id string) (*Fruit, error)

	// Create inserts one fruit and returns it with its generated identifier
	Create(ctx context.Context, fruit Fruit) (*Fruit, error)

	// CreateMany inserts all given fruits and returns them with identifiers
	CreateMany(ctx context.Context, fruits []Fruit) ([]Fruit, error)

	// Update replaces name, color and readyToEat of the fruit with the given identifier
	Update(ctx context.Context, id string, fruit Fruit) (*Fruit, error)

	// Delete removes the fruit with the given identifier and returns it
	Delete(ctx context.Context, id string) (*Fruit, error)

	// DeleteAll empties the collection
	DeleteAll(ctx context.Context) error
}

// StarterFruits returns the fixed set of fruits inserted by a seed.
func StarterFruits() []Fruit {
	return []Fruit{
		{Name: "Orange", Color: "orange", ReadyToEat: false},
		{Name: "Grape", Color: "purple", ReadyToEat: false},
		{Name: "Banana", Color: "orange", ReadyToEat: false},
		{Name: "Strawberry", Color: "red", ReadyToEat: false},
		{Name: "Coconut", Color: "brown", ReadyToEat: false},
	}
}
