package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"glucoface/internal/engine"
)

// SnapshotFunc returns a point-in-time engine snapshot, taken on the
// engine loop by the caller's wiring.
type SnapshotFunc func() engine.Snapshot

// NewRouter sets up the diagnostics routes plus the companion websocket
// endpoint.
func NewRouter(snapshot SnapshotFunc, companionWS http.HandlerFunc, logger *zap.Logger) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	r.HandleFunc("/api/v1/state", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(snapshot()); err != nil {
			logger.Warn("failed to write state snapshot", zap.Error(err))
		}
	}).Methods(http.MethodGet)

	r.HandleFunc("/companion/ws", companionWS)

	return r
}
