package endpoints

import (
	"bytes"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/doodlesbykumbi/fruits-in-go/pkg/server"
	"github.com/doodlesbykumbi/fruits-in-go/pkg/server/store"
	"github.com/doodlesbykumbi/fruits-in-go/pkg/views"
)

const fruitsIndexPath = "/fruits"

// RegisterFruitsEndpoints registers the fruit pages and actions.
// seed and new are registered before {id} so they are not taken as ids.
func RegisterFruitsEndpoints(s *server.Server) {
	fruits := s.FruitsStore
	renderer := s.Renderer
	logger := s.Logger

	s.Router.HandleFunc("/fruits/seed", handleSeedFruits(fruits, logger)).Methods("GET")
	s.Router.HandleFunc("/fruits", handleListFruits(fruits, renderer, logger)).Methods("GET")
	s.Router.HandleFunc("/fruits/new", handleNewFruit(renderer, logger)).Methods("GET")
	s.Router.HandleFunc("/fruits", handleCreateFruit(fruits, logger)).Methods("POST")
	s.Router.HandleFunc("/fruits/{id}/edit", handleEditFruit(fruits, renderer, logger)).Methods("GET")
	s.Router.HandleFunc("/fruits/{id}", handleUpdateFruit(fruits, logger)).Methods("PUT")
	s.Router.HandleFunc("/fruits/{id}", handleDeleteFruit(fruits, logger)).Methods("DELETE")
	s.Router.HandleFunc("/fruits/{id}", handleShowFruit(fruits, renderer, logger)).Methods("GET")
}

// readyToEat is true only for the value a checked checkbox submits
func readyToEat(value string) bool {
	return value == "on"
}

func fruitFromForm(r *http.Request) store.Fruit {
	return store.Fruit{
		Name:       r.PostFormValue("name"),
		Color:      r.PostFormValue("color"),
		ReadyToEat: readyToEat(r.PostFormValue("readyToEat")),
	}
}

func handleSeedFruits(fruits store.FruitsStore, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Two separate calls; a request between them sees an empty collection.
		if err := fruits.DeleteAll(r.Context()); err != nil {
			respondWithStoreError(w, logger, err)
			return
		}

		created, err := fruits.CreateMany(r.Context(), store.StarterFruits())
		if err != nil {
			respondWithStoreError(w, logger, err)
			return
		}

		respondWithJSON(w, http.StatusOK, created)
	}
}

func handleListFruits(fruits store.FruitsStore, renderer views.Renderer, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		all, err := fruits.List(r.Context())
		if err != nil {
			respondWithStoreError(w, logger, err)
			return
		}
		renderPage(w, renderer, logger, "fruits/index", map[string]interface{}{"Fruits": all})
	}
}

func handleNewFruit(renderer views.Renderer, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		renderPage(w, renderer, logger, "fruits/new", nil)
	}
}

func handleCreateFruit(fruits store.FruitsStore, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := fruits.Create(r.Context(), fruitFromForm(r)); err != nil {
			respondWithStoreError(w, logger, err)
			return
		}
		http.Redirect(w, r, fruitsIndexPath, http.StatusFound)
	}
}

// handleEditFruit and handleShowFruit hand a nil fruit to the template when
// the id is well formed but unknown.
func handleEditFruit(fruits store.FruitsStore, renderer views.Renderer, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fruit, err := fruits.Get(r.Context(), mux.Vars(r)["id"])
		if err != nil {
			respondWithStoreError(w, logger, err)
			return
		}
		renderPage(w, renderer, logger, "fruits/edit", map[string]interface{}{"Fruit": fruit})
	}
}

func handleUpdateFruit(fruits store.FruitsStore, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := fruits.Update(r.Context(), mux.Vars(r)["id"], fruitFromForm(r)); err != nil {
			respondWithStoreError(w, logger, err)
			return
		}
		http.Redirect(w, r, fruitsIndexPath, http.StatusFound)
	}
}

func handleDeleteFruit(fruits store.FruitsStore, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := fruits.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
			respondWithStoreError(w, logger, err)
			return
		}
		http.Redirect(w, r, fruitsIndexPath, http.StatusFound)
	}
}

func handleShowFruit(fruits store.FruitsStore, renderer views.Renderer, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fruit, err := fruits.Get(r.Context(), mux.Vars(r)["id"])
		if err != nil {
			respondWithStoreError(w, logger, err)
			return
		}
		renderPage(w, renderer, logger, "fruits/show", map[string]interface{}{"Fruit": fruit})
	}
}

// renderPage buffers the output so a failed render never leaves a partial page
func renderPage(w http.ResponseWriter, renderer views.Renderer, logger *zap.Logger, name string, data interface{}) {
	var buf bytes.Buffer
	if err := renderer.Render(&buf, name, data); err != nil {
		logger.Error("Failed to render page", zap.String("template", name), zap.Error(err))
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}
