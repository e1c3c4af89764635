package server

import (
	"context"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/doodlesbykumbi/fruits-in-go/pkg/server/store"
	"github.com/doodlesbykumbi/fruits-in-go/pkg/views"
)

type Server struct {
	FruitsStore store.FruitsStore
	HealthStore store.HealthStore
	Renderer    views.Renderer
	Router      *mux.Router
	Logger      *zap.Logger
	Metrics     *Metrics
	srv         *http.Server
}

func NewServer(
	fruitsStore store.FruitsStore,
	healthStore store.HealthStore,
	renderer views.Renderer,
	logger *zap.Logger,
	host string,
	port string,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	router := mux.NewRouter()
	metrics := NewMetrics(prometheus.NewRegistry())
	router.Use(metrics.Middleware)

	s := &Server{
		FruitsStore: fruitsStore,
		HealthStore: healthStore,
		Renderer:    renderer,
		Router:      router,
		Logger:      logger,
		Metrics:     metrics,
	}
	s.srv = &http.Server{
		Handler:      s.Handler(),
		Addr:         host + ":" + port,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}
	return s
}

// Handler returns the router wrapped in the access log, panic recovery and
// _method override middleware. The override runs before routing so that a
// POST carrying _method=PUT matches the PUT route.
func (s *Server) Handler() http.Handler {
	recovery := handlers.RecoveryHandler(
		handlers.RecoveryLogger(zap.NewStdLog(s.Logger)),
	)
	return handlers.LoggingHandler(os.Stdout, recovery(handlers.HTTPMethodOverrideHandler(s.Router)))
}

func (s *Server) Addr() string {
	return s.srv.Addr
}

func (s *Server) Start() error {
	return s.srv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

// StartWithListener serves on an existing listener
func (s *Server) StartWithListener(l net.Listener) error {
	return s.srv.Serve(l)
}
