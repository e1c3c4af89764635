package endpoints

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/doodlesbykumbi/fruits-in-go/pkg/server"
)

//go:embed public/css
var publicFiles embed.FS

// RegisterStaticFiles serves the embedded public assets under /css/.
func RegisterStaticFiles(srv *server.Server) {
	cssFS, _ := fs.Sub(publicFiles, "public/css")
	srv.Router.PathPrefix("/css/").Handler(
		http.StripPrefix("/css/", http.FileServer(http.FS(cssFS))),
	)

	// Serve favicon.ico (return 404 if not present)
	srv.Router.HandleFunc("/favicon.ico", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
}
