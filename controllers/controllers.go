package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/djf2128/WWGemini/middleware"
	"github.com/djf2128/WWGemini/services"
)

var sessions *services.SessionManager

// Init wires the controllers to the session manager. Called once from main.
func Init(mgr *services.SessionManager) {
	sessions = mgr
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// session resolves the caller's session, opening it on first use. Writes the
// error response itself when no user is authenticated.
func session(w http.ResponseWriter, r *http.Request) (*services.Session, bool) {
	userID, ok := middleware.UserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return nil, false
	}
	return sessions.Open(r.Context(), userID), true
}

// statusFor maps workflow errors to HTTP statuses: validation failures are
// the caller's to fix, everything else is a collaborator problem.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrLookupRequired),
		errors.Is(err, services.ErrEmptyName),
		errors.Is(err, services.ErrEmptyLog),
		errors.Is(err, services.ErrUnknownUnit),
		errors.Is(err, services.ErrInvalidEntry):
		return http.StatusUnprocessableEntity
	case errors.Is(err, services.ErrNoSession):
		return http.StatusUnauthorized
	default:
		return http.StatusBadGateway
	}
}
