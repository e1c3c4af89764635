package store

import (
	"context"
	"fmt"
)

var (
	_ FruitsStore = (*UnavailableStore)(nil)
	_ HealthStore = (*UnavailableStore)(nil)
)

// UnavailableStore stands in for a database that could not be opened at
// startup. Every call fails with the original connection error so the
// server keeps answering requests with an error payload.
type UnavailableStore struct {
	err error
}

// NewUnavailableStore creates a store that always fails with err
func NewUnavailableStore(err error) *UnavailableStore {
	return &UnavailableStore{err: err}
}

func (s *UnavailableStore) fail() error {
	return fmt.Errorf("database unavailable: %w", s.err)
}

func (s *UnavailableStore) List(context.Context) ([]Fruit, error) {
	return nil, s.fail()
}

func (s *UnavailableStore) Get(context.Context, string) (*Fruit, error) {
	return nil, s.fail()
}

func (s *UnavailableStore) Create(context.Context, Fruit) (*Fruit, error) {
	return nil, s.fail()
}

func (s *UnavailableStore) CreateMany(context.Context, []Fruit) ([]Fruit, error) {
	return nil, s.fail()
}

func (s *UnavailableStore) Update(context.Context, string, Fruit) (*Fruit, error) {
	return nil, s.fail()
}

func (s *UnavailableStore) Delete(context.Context, string) (*Fruit, error) {
	return nil, s.fail()
}

func (s *UnavailableStore) DeleteAll(context.Context) error {
	return s.fail()
}

func (s *UnavailableStore) CheckConnectivity(context.Context) error {
	return s.fail()
}
