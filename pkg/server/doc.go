// Package server provides the HTTP server for the fruits application.
//
// It uses gorilla/mux for routing and gorilla/handlers for the access log,
// panic recovery and the _method override that lets HTML forms issue PUT
// and DELETE requests.
//
// # Server Setup
//
//	srv := server.NewServer(fruitsStore, healthStore, renderer, logger, "", "3000")
//	endpoints.RegisterAll(srv)
//	log.Fatal(srv.Start())
//
// # Components
//
// The Server struct holds:
//
//   - FruitsStore: fruit persistence
//   - HealthStore: database connectivity checks
//   - Renderer: HTML template rendering
//   - Router: HTTP request router
//   - Logger: structured application logger
//   - Metrics: request counters and latency histograms
//
// # Endpoints
//
// Endpoints are registered via the endpoints subpackage:
//
//	endpoints.RegisterAll(srv)
package server
