package main

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doodlesbykumbi/fruits-in-go/pkg/server/store"
)

func TestSeedFruits(t *testing.T) {
	ctx := context.Background()
	s, err := connectStores(ctx, sqliteURL(t), false)
	require.NoError(t, err)
	defer func() { _ = s.Close(ctx) }()

	_, err = s.Fruits.Create(ctx, store.Fruit{Name: "Durian", Color: "green"})
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, seedFruits(ctx, s.Fruits, &out))

	var printed []store.Fruit
	require.NoError(t, json.Unmarshal(out.Bytes(), &printed))
	require.Len(t, printed, 5)

	all, err := s.Fruits.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 5)
	for _, f := range all {
		assert.NotEqual(t, "Durian", f.Name)
		assert.False(t, f.ReadyToEat)
		assert.NotEmpty(t, f.ID)
	}

	// seeding twice still leaves exactly the starter set
	out.Reset()
	require.NoError(t, seedFruits(ctx, s.Fruits, &out))
	all, err = s.Fruits.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 5)
}
