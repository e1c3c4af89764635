package endpoints

import (
	"github.com/doodlesbykumbi/fruits-in-go/pkg/server"
)

// RegisterAll registers all endpoints on the server
func RegisterAll(srv *server.Server) {
	RegisterStatusEndpoints(srv)
	RegisterFruitsEndpoints(srv)

	// Static files
	RegisterStaticFiles(srv)
}
