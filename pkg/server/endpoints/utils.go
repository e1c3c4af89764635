package endpoints

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// storeErrorStatus is used for every store failure, whatever the cause.
const storeErrorStatus = http.StatusOK

func respondWithError(w http.ResponseWriter, code int, payload interface{}) {
	respondWithJSON(w, code, map[string]interface{}{"error": payload})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

func respondWithStoreError(w http.ResponseWriter, logger *zap.Logger, err error) {
	logger.Error("Database operation failed", zap.Error(err))
	respondWithError(w, storeErrorStatus, err.Error())
}
