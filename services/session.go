package services

import (
	"context"
	"sync"
	"time"

	"github.com/djf2128/WWGemini/collection"
	"github.com/djf2128/WWGemini/logger"
)

// Oracle is everything the workflows need from the text-generation service.
type Oracle interface {
	NutrientOracle
	AdvisorOracle
}

// Session owns one user's live log view, draft entry and status slot. The
// subscription it holds is released exactly once when the session closes.
type Session struct {
	UserID  string
	Status  *StatusBoard
	Log     *LogStore
	Lookup  *LookupService
	Advisor *AdvisorService

	closeOnce sync.Once
}

// Close tears the session down: the log subscription is released and the
// status timer stopped. Safe to call more than once.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.Log.Unsubscribe()
		s.Status.Stop()
		logger.Info("session closed", "user_id", s.UserID)
	})
}

// SessionManager opens at most one session per user. The core stays inert
// until an authenticated user id exists; nothing subscribes or writes without
// one.
type SessionManager struct {
	col       collection.Collection
	oracle    Oracle
	appID     string
	statusTTL time.Duration

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewSessionManager(col collection.Collection, oracle Oracle, appID string, statusTTL time.Duration) *SessionManager {
	return &SessionManager{
		col:       col,
		oracle:    oracle,
		appID:     appID,
		statusTTL: statusTTL,
		sessions:  make(map[string]*Session),
	}
}

// Open returns the user's session, creating and subscribing it on first use.
// A failed subscription still yields a usable session: the failure is on the
// status board and the next Open retries it.
func (m *SessionManager) Open(ctx context.Context, userID string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if sess, ok := m.sessions[userID]; ok {
		if !sess.Log.Loaded() && !sess.Log.Loading() {
			if err := sess.Log.Subscribe(ctx, m.appID, userID); err != nil {
				logger.Warn("log resubscribe failed", "user_id", userID, "error", err)
			}
		}
		return sess
	}

	status := NewStatusBoard(m.statusTTL)
	log := NewLogStore(m.col, status)
	sess := &Session{
		UserID:  userID,
		Status:  status,
		Log:     log,
		Lookup:  NewLookupService(m.oracle, status),
		Advisor: NewAdvisorService(m.oracle, status, log),
	}
	if err := log.Subscribe(ctx, m.appID, userID); err != nil {
		logger.Warn("log subscribe failed", "user_id", userID, "error", err)
	}
	m.sessions[userID] = sess
	logger.Info("session opened", "user_id", userID)
	return sess
}

// Get returns an already-open session without opening one.
func (m *SessionManager) Get(userID string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[userID]
	return sess, ok
}

// Close ends a user's session. Closing a user with no session is a no-op.
func (m *SessionManager) Close(userID string) {
	m.mu.Lock()
	sess, ok := m.sessions[userID]
	delete(m.sessions, userID)
	m.mu.Unlock()
	if ok {
		sess.Close()
	}
}
