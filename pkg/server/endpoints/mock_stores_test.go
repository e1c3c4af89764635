package endpoints

import (
	"context"
	"fmt"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/doodlesbykumbi/fruits-in-go/pkg/server/store"
)

// MockFruitsStore implements store.FruitsStore for testing using testify/mock
type MockFruitsStore struct {
	mock.Mock
}

func NewMockFruitsStore() *MockFruitsStore {
	return &MockFruitsStore{}
}

func (m *MockFruitsStore) List(ctx context.Context) ([]store.Fruit, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.Fruit), args.Error(1)
}

func (m *MockFruitsStore) Get(ctx context.Context, id string) (*store.Fruit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Fruit), args.Error(1)
}

func (m *MockFruitsStore) Create(ctx context.Context, fruit store.Fruit) (*store.Fruit, error) {
	args := m.Called(ctx, fruit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Fruit), args.Error(1)
}

func (m *MockFruitsStore) CreateMany(ctx context.Context, fruits []store.Fruit) ([]store.Fruit, error) {
	args := m.Called(ctx, fruits)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.Fruit), args.Error(1)
}

func (m *MockFruitsStore) Update(ctx context.Context, id string, fruit store.Fruit) (*store.Fruit, error) {
	args := m.Called(ctx, id, fruit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Fruit), args.Error(1)
}

func (m *MockFruitsStore) Delete(ctx context.Context, id string) (*store.Fruit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Fruit), args.Error(1)
}

func (m *MockFruitsStore) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockHealthStore implements store.HealthStore for testing using testify/mock
type MockHealthStore struct {
	mock.Mock
}

func NewMockHealthStore() *MockHealthStore {
	return &MockHealthStore{}
}

func (m *MockHealthStore) CheckConnectivity(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// recordingRenderer remembers the last render call and writes its name
type recordingRenderer struct {
	name string
	data interface{}
	err  error
}

func (r *recordingRenderer) Render(w io.Writer, name string, data interface{}) error {
	r.name = name
	r.data = data
	if r.err != nil {
		return r.err
	}
	_, err := fmt.Fprintf(w, "<p>%s</p>", name)
	return err
}
