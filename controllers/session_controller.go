package controllers

import (
	"net/http"

	"github.com/djf2128/WWGemini/middleware"
)

type SessionResponse struct {
	UserID  string `json:"user_id"`
	Loaded  bool   `json:"loaded"`
	Loading bool   `json:"loading"`
}

// OpenSession opens (or returns) the caller's session and starts the log
// subscription.
func OpenSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, SessionResponse{
		UserID:  sess.UserID,
		Loaded:  sess.Log.Loaded(),
		Loading: sess.Log.Loading(),
	})
}

// CloseSession tears the caller's session down, releasing its subscription.
func CloseSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	sessions.Close(userID)
	writeJSON(w, http.StatusOK, map[string]string{"status": "closed"})
}

// GetStatus returns the transient status message, if one is active.
func GetStatus(w http.ResponseWriter, r *http.Request) {
	sess, ok := session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": sess.Status.Message()})
}
