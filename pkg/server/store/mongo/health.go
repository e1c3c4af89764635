package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/doodlesbykumbi/fruits-in-go/pkg/server/store"
)

var _ store.HealthStore = (*HealthStore)(nil)

// HealthStore provides health check operations against a MongoDB deployment
type HealthStore struct {
	client *mongo.Client
}

// NewHealthStore creates a new HealthStore
func NewHealthStore(client *mongo.Client) *HealthStore {
	return &HealthStore{client: client}
}

// CheckConnectivity pings the primary
func (s *HealthStore) CheckConnectivity(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}
