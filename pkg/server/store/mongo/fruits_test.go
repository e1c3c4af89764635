package mongo

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcmongodb "github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/doodlesbykumbi/fruits-in-go/pkg/server/store"
)

func newContainerClient(t *testing.T) *mongo.Client {
	t.Helper()

	if os.Getenv("INTEGRATION_TEST") == "" {
		t.Skip("Skipping MongoDB tests. Set INTEGRATION_TEST=1 to run.")
	}

	ctx := context.Background()
	container, err := tcmongodb.Run(ctx, "mongo:7")
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })
	return client
}

func TestParseID(t *testing.T) {
	oid := bson.NewObjectID()

	parsed, err := parseID(oid.Hex())
	require.NoError(t, err)
	assert.Equal(t, oid, parsed)

	_, err = parseID("123")
	assert.ErrorContains(t, err, `invalid fruit id "123"`)
}

func TestFruitsStore(t *testing.T) {
	client := newContainerClient(t)
	ctx := context.Background()
	s := NewFruitsStore(client.Database("fruits_test"))

	t.Run("seed resets the collection", func(t *testing.T) {
		_, err := s.Create(ctx, store.Fruit{Name: "Leftover"})
		require.NoError(t, err)

		require.NoError(t, s.DeleteAll(ctx))
		created, err := s.CreateMany(ctx, store.StarterFruits())
		require.NoError(t, err)
		assert.Len(t, created, 5)

		all, err := s.List(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 5)
	})

	t.Run("create, update, delete", func(t *testing.T) {
		created, err := s.Create(ctx, store.Fruit{Name: "Mango", Color: "orange", ReadyToEat: true})
		require.NoError(t, err)

		fetched, err := s.Get(ctx, created.ID)
		require.NoError(t, err)
		require.NotNil(t, fetched)
		assert.Equal(t, *created, *fetched)

		_, err = s.Update(ctx, created.ID, store.Fruit{Name: "Papaya", Color: "yellow"})
		require.NoError(t, err)
		fetched, err = s.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, store.Fruit{ID: created.ID, Name: "Papaya", Color: "yellow"}, *fetched)

		removed, err := s.Delete(ctx, created.ID)
		require.NoError(t, err)
		require.NotNil(t, removed)

		fetched, err = s.Get(ctx, created.ID)
		assert.NoError(t, err)
		assert.Nil(t, fetched)
	})

	t.Run("malformed id", func(t *testing.T) {
		_, err := s.Get(ctx, "nope")
		assert.Error(t, err)
	})

	t.Run("health", func(t *testing.T) {
		assert.NoError(t, NewHealthStore(client).CheckConnectivity(ctx))
	})
}
