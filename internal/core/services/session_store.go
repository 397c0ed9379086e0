package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/srgjo27/ferry_booking/internal/core/domain"
	"github.com/srgjo27/ferry_booking/internal/platform/logger"
)

// SessionStore keeps one Wizard per browser session in memory. Intents on
// the same session are serialized; different sessions run in parallel.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*session

	newWizard func() *Wizard
	now       func() time.Time
	log       logger.Logger
}

type session struct {
	mu       sync.Mutex
	wizard   *Wizard
	lastSeen time.Time
}

type SessionOption func(*SessionStore)

func WithSessionClock(now func() time.Time) SessionOption {
	return func(s *SessionStore) { s.now = now }
}

func NewSessionStore(newWizard func() *Wizard, log logger.Logger, opts ...SessionOption) *SessionStore {
	s := &SessionStore{
		sessions:  make(map[uuid.UUID]*session),
		newWizard: newWizard,
		now:       time.Now,
		log:       log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *SessionStore) Create() (uuid.UUID, WizardSnapshot) {
	id := uuid.New()
	w := s.newWizard()

	s.mu.Lock()
	s.sessions[id] = &session{wizard: w, lastSeen: s.now()}
	s.mu.Unlock()

	return id, w.Snapshot()
}

// Do runs fn against the session's wizard while holding the session lock.
func (s *SessionStore) Do(rawID string, fn func(w *Wizard) error) error {
	sess, err := s.lookup(rawID)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.lastSeen = s.now()
	return fn(sess.wizard)
}

func (s *SessionStore) Delete(rawID string) error {
	id, err := parseSessionID(rawID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return domain.NotFoundError{Resource: "session", ID: rawID}
	}
	delete(s.sessions, id)
	return nil
}

func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// RunBackgroundCleanup drops sessions idle for longer than maxIdle, checking
// every interval until ctx is cancelled.
func (s *SessionStore) RunBackgroundCleanup(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.log.Info("Session cleanup started", "interval", interval, "max_idle", maxIdle)

	for {
		select {
		case <-ctx.Done():
			s.log.Info("Session cleanup stopped")
			return
		case <-ticker.C:
			if n := s.Sweep(maxIdle); n > 0 {
				s.log.Info("Expired idle sessions", "count", n)
			}
		}
	}
}

// Sweep removes sessions idle for longer than maxIdle and reports how many
// were removed.
func (s *SessionStore) Sweep(maxIdle time.Duration) int {
	cutoff := s.now().Add(-maxIdle)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.sessions {
		// A session busy with an intent is in use and is skipped.
		if !sess.mu.TryLock() {
			continue
		}
		idle := sess.lastSeen.Before(cutoff)
		sess.mu.Unlock()

		if idle {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

func (s *SessionStore) lookup(rawID string) (*session, error) {
	id, err := parseSessionID(rawID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, domain.NotFoundError{Resource: "session", ID: rawID}
	}
	return sess, nil
}

func parseSessionID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, domain.InvalidInputError{Field: "sessionId", Msg: "must be a UUID"}
	}
	return id, nil
}
