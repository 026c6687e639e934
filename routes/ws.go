package routes

import (
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/djf2128/WWGemini/collection"
	"github.com/djf2128/WWGemini/config"
	"github.com/djf2128/WWGemini/logger"
	"github.com/djf2128/WWGemini/middleware"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(_ *http.Request) bool { return true },
}

// LogWS streams full log snapshots over a WebSocket, one JSON message per
// snapshot.
func LogWS(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	scope := collection.Scope{AppID: config.AppID(), UserID: userID}
	sub, err := feedCollection.Watch(r.Context(), scope)
	if err != nil {
		logger.Error("websocket feed subscribe failed", "user_id", userID, "error", err)
		return
	}
	defer sub.Close()

	// Reader goroutine exists only to notice the peer going away.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	logger.Info("websocket log feed connected", "user_id", userID)
	for {
		select {
		case <-done:
			logger.Info("websocket log feed disconnected", "user_id", userID)
			return
		case snap, ok := <-sub.Snapshots():
			if !ok {
				return
			}
			if err := conn.WriteJSON(snapshotPayload(snap)); err != nil {
				logger.Warn("websocket write failed", "user_id", userID, "error", err)
				return
			}
		}
	}
}
