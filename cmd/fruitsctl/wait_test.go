package main

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWaitForServer(t *testing.T) {
	t.Run("ready after a few attempts", func(t *testing.T) {
		var calls int32
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if atomic.AddInt32(&calls, 1) < 3 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			_, _ = w.Write([]byte("Server is running..."))
		}))
		defer ts.Close()

		assert.NoError(t, waitForServer(ts.URL+"/", 5, time.Millisecond))
		assert.EqualValues(t, 3, atomic.LoadInt32(&calls))
	})

	t.Run("gives up", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer ts.Close()

		err := waitForServer(ts.URL+"/", 2, time.Millisecond)
		assert.ErrorContains(t, err, "not ready after 2 attempts")
	})
}
