package endpoints

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/doodlesbykumbi/fruits-in-go/pkg/server"
	"github.com/doodlesbykumbi/fruits-in-go/pkg/server/store"
)

// StatusResponse represents the response from /status
type StatusResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// RegisterStatusEndpoints registers the liveness, status and metrics endpoints
func RegisterStatusEndpoints(s *server.Server) {
	// GET / - plain text liveness check
	s.Router.HandleFunc("/", handleRoot()).Methods("GET")

	// GET /status - database connectivity
	s.Router.HandleFunc("/status", handleStatus(s.HealthStore, s.Logger)).Methods("GET")

	s.Router.Handle("/metrics", s.Metrics.Handler()).Methods("GET")
}

func handleRoot() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("Server is running..."))
	}
}

func handleStatus(healthStore store.HealthStore, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := healthStore.CheckConnectivity(r.Context()); err != nil {
			logger.Warn("Database connectivity check failed", zap.Error(err))
			respondWithJSON(w, http.StatusServiceUnavailable, StatusResponse{
				Status: "error",
				Error:  "database connectivity check failed",
			})
			return
		}

		respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
	}
}
