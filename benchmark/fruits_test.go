package benchmark

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/doodlesbykumbi/fruits-in-go/pkg/db"
	"github.com/doodlesbykumbi/fruits-in-go/pkg/server"
	"github.com/doodlesbykumbi/fruits-in-go/pkg/server/endpoints"
	"github.com/doodlesbykumbi/fruits-in-go/pkg/server/store"
	gormstore "github.com/doodlesbykumbi/fruits-in-go/pkg/server/store/gorm"
	"github.com/doodlesbykumbi/fruits-in-go/pkg/views"
)

func newBenchServer(b *testing.B) (*httptest.Server, []store.Fruit) {
	b.Helper()
	ctx := context.Background()

	database, err := db.Connect(db.Config{URL: "sqlite://" + filepath.Join(b.TempDir(), "bench.db")})
	if err != nil {
		b.Fatal(err)
	}
	fruits := gormstore.NewFruitsStore(database)
	if err := fruits.EnsureTable(ctx); err != nil {
		b.Fatal(err)
	}
	seeded, err := fruits.CreateMany(ctx, store.StarterFruits())
	if err != nil {
		b.Fatal(err)
	}

	renderer, err := views.Embedded()
	if err != nil {
		b.Fatal(err)
	}

	s := server.NewServer(fruits, gormstore.NewHealthStore(database), renderer, zap.NewNop(), "127.0.0.1", "0")
	endpoints.RegisterAll(s)

	// router only; the access log would write every request to stdout
	ts := httptest.NewServer(s.Router)
	b.Cleanup(func() {
		ts.Close()
		if sqlDB, err := database.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return ts, seeded
}

func BenchmarkFruitPages(b *testing.B) {
	ts, seeded := newBenchServer(b)
	client := ts.Client()
	client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}

	get := func(b *testing.B, path string) {
		resp, err := client.Get(ts.URL + path)
		if err != nil {
			b.Fatal(err)
		}
		_ = resp.Body.Close()
	}

	b.Run("GET /fruits", func(b *testing.B) {
		b.ReportAllocs()
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			get(b, "/fruits")
		}
	})

	b.Run("GET /fruits/{id}", func(b *testing.B) {
		path := "/fruits/" + seeded[0].ID

		b.ReportAllocs()
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			get(b, path)
		}
	})

	b.Run("POST /fruits", func(b *testing.B) {
		b.ReportAllocs()
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			form := url.Values{"name": {fmt.Sprintf("Fruit %d", i)}, "color": {"green"}, "readyToEat": {"on"}}
			resp, err := client.Post(ts.URL+"/fruits", "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
			if err != nil {
				b.Fatal(err)
			}
			_ = resp.Body.Close()
		}
	})
}
