package api

import "net/http"

// RegisterRoutes wires every endpoint onto the mux.
func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	// Test acquisition
	mux.HandleFunc("POST /tests", h.requestTest)
	mux.HandleFunc("GET /tests/{generationID}", h.getGeneration)
	mux.HandleFunc("DELETE /tests/{generationID}", h.abandonGeneration)

	// Sessions
	mux.HandleFunc("POST /sessions", h.startSession)
	mux.HandleFunc("GET /sessions/{sessionID}", h.getSession)
	mux.HandleFunc("POST /sessions/{sessionID}/answers", h.selectAnswer)
	mux.HandleFunc("POST /sessions/{sessionID}/navigate", h.navigate)
	mux.HandleFunc("POST /sessions/{sessionID}/submit", h.submit)
	mux.HandleFunc("POST /sessions/{sessionID}/restart", h.restart)
	mux.HandleFunc("GET /sessions/{sessionID}/events", h.streamEvents)

	// History
	mux.HandleFunc("GET /history", h.listHistory)
	mux.HandleFunc("GET /history/export", h.exportHistory)
}
