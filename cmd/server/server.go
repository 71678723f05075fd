package server

import (
	"log"
	"net/http"

	"github.com/aonescu/kubewatch/internal/state"
)

type APIServer struct {
	store state.Store
	mux   *http.ServeMux
}

func NewAPIServer(store state.Store) *APIServer {
	api := &APIServer{
		store: store,
		mux:   http.NewServeMux(),
	}
	api.registerRoutes()
	return api
}

func (api *APIServer) registerRoutes() {
	// Recorded event queries
	api.mux.HandleFunc("/api/v1/events", api.handleEvents)
	api.mux.HandleFunc("/api/v1/history", api.handleHistory)
	api.mux.HandleFunc("/api/v1/stats", api.handleStats)

	// Health check
	api.mux.HandleFunc("/health", api.handleHealth)
	api.mux.HandleFunc("/ready", api.handleReady)
}

func (api *APIServer) Start(addr string) error {
	log.Printf("Starting API server on %s", addr)

	handler := api.corsMiddleware(api.loggingMiddleware(api.mux))

	return http.ListenAndServe(addr, handler)
}
