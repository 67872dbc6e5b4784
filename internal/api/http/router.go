package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func NewRouter(handler *Handler) http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/health", healthCheck).Methods("GET")
	handler.RegisterRoutes(r)
	return cors.Default().Handler(r)
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    "healthy",
		"service":   "mealhub",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
