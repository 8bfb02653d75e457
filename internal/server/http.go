package server

import (
	"encoding/json"
	"net/http"
)

// NewHTTPHandler returns an http.Handler with all routes registered.
// When authToken is non-empty, requests (except GET /v1/health) must include
// a valid Authorization: Bearer <token> header.
func (s *DeskServer) NewHTTPHandler(authToken string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/workspaces/{ws}/issues", s.handleCreateIssue)
	mux.HandleFunc("GET /v1/workspaces/{ws}/issues", s.handleListIssues)
	mux.HandleFunc("GET /v1/issues/{id}", s.handleGetIssue)
	mux.HandleFunc("PATCH /v1/issues/{id}", s.handleUpdateIssue)
	mux.HandleFunc("DELETE /v1/issues/{id}", s.handleDeleteIssue)
	mux.HandleFunc("GET /v1/saved-filters/{ws}", s.handleListSavedFilters)
	mux.HandleFunc("POST /v1/saved-filters/{ws}", s.handleCreateSavedFilter)
	mux.HandleFunc("GET /v1/saved-filters/{ws}/default", s.handleGetDefaultSavedFilter)
	mux.HandleFunc("DELETE /v1/saved-filters/{ws}/{id}", s.handleDeleteSavedFilter)
	mux.HandleFunc("PUT /v1/saved-filters/{ws}/{id}/default", s.handleSetDefaultSavedFilter)
	mux.HandleFunc("GET /v1/events/stream", s.handleEventStream)
	mux.HandleFunc("GET /v1/health", s.handleHealth)

	var h http.Handler = mux
	h = AuthMiddleware(authToken, h)
	h = LoggingMiddleware(s.logger, h)
	h = RecoveryMiddleware(s.logger, h)
	return h
}

// handleHealth handles GET /v1/health.
func (s *DeskServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// userID extracts the acting user from the request headers.
func userID(r *http.Request) string {
	return r.Header.Get(userIDHeader)
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
