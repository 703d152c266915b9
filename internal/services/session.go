package services

import (
	"sync"
	"time"

	"asir-guide-api/internal/i18n"
	"asir-guide-api/internal/logger"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Session is one visitor's conversation: the chosen language, the landmark
// in focus, the pending recommendation prompt and the transcript renderer.
// The dispatcher is the only writer of the conversational fields.
type Session struct {
	ID                     string
	Language               i18n.Language
	LanguageSet            bool
	CurrentLandmarkID      string
	AwaitingRecommendation bool
	LastSeen               time.Time

	Renderer *TranscriptRenderer

	mu sync.Mutex
}

// SessionManager owns the live sessions and expires idle ones.
type SessionManager struct {
	sessions map[string]*Session
	mu       sync.RWMutex
	ticker   *time.Ticker
	done     chan bool
	timeout  time.Duration
	unit     time.Duration
}

func NewSessionManager(timeout, typingUnit time.Duration) *SessionManager {
	sm := &SessionManager{
		sessions: make(map[string]*Session),
		ticker:   time.NewTicker(time.Minute),
		done:     make(chan bool),
		timeout:  timeout,
		unit:     typingUnit,
	}

	go sm.cleanupRoutine()

	return sm
}

func (sm *SessionManager) cleanupRoutine() {
	for {
		select {
		case <-sm.ticker.C:
			sm.cleanupExpiredSessions()
		case <-sm.done:
			sm.ticker.Stop()
			return
		}
	}
}

func (sm *SessionManager) cleanupExpiredSessions() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	now := time.Now()
	cleaned := 0
	for id, session := range sm.sessions {
		session.mu.Lock()
		lastSeen := session.LastSeen
		session.mu.Unlock()

		if now.Sub(lastSeen) > sm.timeout {
			session.Renderer.Close()
			delete(sm.sessions, id)
			cleaned++
		}
	}
	if cleaned > 0 {
		logger.LogEvent(logrus.InfoLevel, "Expired idle sessions", logrus.Fields{
			"count":   cleaned,
			"timeout": sm.timeout.String(),
		})
	}
}

// Create opens a session in the language-selection state. The welcome runs
// in Arabic until the visitor picks a language.
func (sm *SessionManager) Create() *Session {
	session := &Session{
		ID:       uuid.New().String(),
		Language: i18n.Arabic,
		LastSeen: time.Now(),
		Renderer: NewTranscriptRenderer(sm.unit),
	}

	sm.mu.Lock()
	sm.sessions[session.ID] = session
	sm.mu.Unlock()

	return session
}

func (sm *SessionManager) Get(id string) (*Session, bool) {
	sm.mu.RLock()
	session, ok := sm.sessions[id]
	sm.mu.RUnlock()

	if ok {
		session.mu.Lock()
		session.LastSeen = time.Now()
		session.mu.Unlock()
	}
	return session, ok
}

// Stop halts the cleanup routine; live sessions are left to the process.
func (sm *SessionManager) Stop() {
	sm.done <- true
}
