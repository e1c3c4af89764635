package endpoints

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHandleRoot(t *testing.T) {
	handler := handleRoot()

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	handler(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
	assert.Equal(t, "Server is running...", w.Body.String())
}

func TestHandleStatus(t *testing.T) {
	t.Run("ok when the database answers", func(t *testing.T) {
		health := NewMockHealthStore()
		health.On("CheckConnectivity", mock.Anything).Return(nil).Once()

		w := httptest.NewRecorder()
		handleStatus(health, zap.NewNop())(w, httptest.NewRequest("GET", "/status", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		var resp StatusResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "ok", resp.Status)
		assert.Empty(t, resp.Error)
		health.AssertExpectations(t)
	})

	t.Run("unavailable when the database does not", func(t *testing.T) {
		health := NewMockHealthStore()
		health.On("CheckConnectivity", mock.Anything).Return(errors.New("dial tcp: connection refused")).Once()

		w := httptest.NewRecorder()
		handleStatus(health, zap.NewNop())(w, httptest.NewRequest("GET", "/status", nil))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		var resp StatusResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "error", resp.Status)
		assert.NotContains(t, resp.Error, "connection refused")
		health.AssertExpectations(t)
	})
}

func TestRegisteredAmbientRoutes(t *testing.T) {
	env := newTestEnv(t)
	env.fruits.On("List", mock.Anything).Return(nil, errors.New("down")).Once()

	// one request so the counter has a sample
	env.do(httptest.NewRequest("GET", "/fruits", nil))

	t.Run("metrics", func(t *testing.T) {
		w := env.do(httptest.NewRequest("GET", "/metrics", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `fruits_http_requests_total{code="200",method="GET",route="/fruits"} 1`)
	})

	t.Run("stylesheet", func(t *testing.T) {
		w := env.do(httptest.NewRequest("GET", "/css/style.css", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/css")
	})

	t.Run("favicon", func(t *testing.T) {
		w := env.do(httptest.NewRequest("GET", "/favicon.ico", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("unknown route", func(t *testing.T) {
		w := env.do(httptest.NewRequest("GET", "/vegetables", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
