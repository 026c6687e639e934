package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/djf2128/WWGemini/logger"
	"github.com/djf2128/WWGemini/models"
	"github.com/djf2128/WWGemini/points"
)

// LogEntry is a persisted item together with its computed score. Points are
// recomputed on every read so a formula-affecting edit never leaves a stale
// stored score behind.
type LogEntry struct {
	models.FoodItem
	Points int `json:"points"`
}

type LogResponse struct {
	Entries []LogEntry `json:"entries"`
	Total   int        `json:"total_points"`
	Loaded  bool       `json:"loaded"`
	Loading bool       `json:"loading"`
}

func toEntries(items []models.FoodItem) []LogEntry {
	entries := make([]LogEntry, 0, len(items))
	for _, it := range items {
		entries = append(entries, LogEntry{FoodItem: it, Points: points.ForItem(it)})
	}
	return entries
}

// GetLog returns the materialized log view, most recent first, with points
// and the day total.
func GetLog(w http.ResponseWriter, r *http.Request) {
	sess, ok := session(w, r)
	if !ok {
		return
	}
	items := sess.Log.Entries()
	writeJSON(w, http.StatusOK, LogResponse{
		Entries: toEntries(items),
		Total:   points.Total(items),
		Loaded:  sess.Log.Loaded(),
		Loading: sess.Log.Loading(),
	})
}

// CommitPending writes the session's draft to the log. The draft must carry a
// successful lookup; otherwise nothing is written and the gate error comes
// back.
func CommitPending(w http.ResponseWriter, r *http.Request) {
	sess, ok := session(w, r)
	if !ok {
		return
	}

	item, err := sess.Log.Add(r.Context(), sess.Lookup.Pending())
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	sess.Lookup.CommitDone()
	writeJSON(w, http.StatusCreated, LogEntry{FoodItem: item, Points: points.ForItem(item)})
}

// RemoveLogEntry deletes one entry. Deleting an entry that is already gone
// still succeeds.
func RemoveLogEntry(w http.ResponseWriter, r *http.Request) {
	sess, ok := session(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "entry_id")
	if err := sess.Log.Remove(r.Context(), id); err != nil {
		logger.Error("remove failed", "entry_id", id, "error", err)
		writeError(w, http.StatusBadGateway, "could not delete entry")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ClearLog best-effort deletes every entry. If some deletions failed the
// others still went through and one failure is reported.
func ClearLog(w http.ResponseWriter, r *http.Request) {
	sess, ok := session(w, r)
	if !ok {
		return
	}

	if err := sess.Log.Clear(r.Context()); err != nil {
		logger.Error("clear failed", "user_id", sess.UserID, "error", err)
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}
