package routes

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"

	"github.com/djf2128/WWGemini/collection"
	"github.com/djf2128/WWGemini/config"
	"github.com/djf2128/WWGemini/logger"
	"github.com/djf2128/WWGemini/middleware"
	"github.com/djf2128/WWGemini/models"
	"github.com/djf2128/WWGemini/points"
)

type feedEntry struct {
	models.FoodItem
	Points int `json:"points"`
}

type feedSnapshot struct {
	Entries []feedEntry `json:"entries"`
	Total   int         `json:"total_points"`
}

func snapshotPayload(snap []models.FoodItem) feedSnapshot {
	// The snapshot slice is shared between subscribers; sort a copy.
	items := make([]models.FoodItem, len(snap))
	copy(items, snap)
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	entries := make([]feedEntry, 0, len(items))
	for _, it := range items {
		entries = append(entries, feedEntry{FoodItem: it, Points: points.ForItem(it)})
	}
	return feedSnapshot{Entries: entries, Total: points.Total(items)}
}

// LogSSE streams full log snapshots over Server-Sent Events. Each event
// supersedes the previous one entirely.
func LogSSE(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "SSE not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	scope := collection.Scope{AppID: config.AppID(), UserID: userID}
	sub, err := feedCollection.Watch(r.Context(), scope)
	if err != nil {
		http.Error(w, "could not subscribe", http.StatusBadGateway)
		return
	}
	defer sub.Close()

	logger.Info("SSE log feed connected", "user_id", userID)
	fmt.Fprintf(w, "event: connected\ndata: {\"status\": \"connected\"}\n\n")
	flusher.Flush()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			logger.Info("SSE log feed disconnected", "user_id", userID)
			return
		case snap, ok := <-sub.Snapshots():
			if !ok {
				return
			}
			data, err := json.Marshal(snapshotPayload(snap))
			if err != nil {
				logger.Error("failed to marshal log snapshot", "error", err)
				continue
			}
			fmt.Fprintf(w, "event: log_snapshot\ndata: %s\n\n", data)
			flusher.Flush()
		}
	}
}
