package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/eslsoft/lingoguru/internal/entity"
	"github.com/eslsoft/lingoguru/internal/usecase/practice"
)

// SessionKind names the practice view a session belongs to.
type SessionKind string

const (
	SessionDialogue SessionKind = "dialogue"
	SessionQuiz     SessionKind = "quiz"
	SessionTutor    SessionKind = "tutor"
)

// session is the transient state of one open practice view. mu serializes
// every interaction with the engines it owns.
type session struct {
	id       string
	kind     SessionKind
	lessonID string

	mu       sync.Mutex
	lastUsed time.Time
	dialogue *practice.DialogueEngine
	quiz     *practice.QuizEngine
	tutor    []entity.ChatMessage
}

// sessionRegistry holds open sessions by id and expires idle ones.
type sessionRegistry struct {
	mu       sync.RWMutex
	sessions map[string]*session
	ttl      time.Duration
	clock    func() time.Time
}

func newSessionRegistry(ttl time.Duration, clock func() time.Time) *sessionRegistry {
	return &sessionRegistry{sessions: make(map[string]*session), ttl: ttl, clock: clock}
}

func (r *sessionRegistry) open(kind SessionKind, lessonID string) *session {
	s := &session{id: uuid.NewString(), kind: kind, lessonID: lessonID, lastUsed: r.clock()}
	r.mu.Lock()
	r.sessions[s.id] = s
	r.mu.Unlock()
	return s
}

// acquire looks a session up, checks its kind, locks it and marks it used.
// The caller must unlock s.mu.
func (r *sessionRegistry) acquire(id string, kind SessionKind) (*session, error) {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return nil, entity.ErrSessionNotFound
	}
	if s.kind != kind {
		return nil, entity.ErrSessionKind
	}
	s.mu.Lock()
	s.lastUsed = r.clock()
	return s, nil
}

func (r *sessionRegistry) close(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return entity.ErrSessionNotFound
	}
	delete(r.sessions, id)
	return nil
}

// sweep drops sessions idle for longer than the ttl and reports how many.
func (r *sessionRegistry) sweep() int {
	if r.ttl <= 0 {
		return 0
	}
	cutoff := r.clock().Add(-r.ttl)

	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for id, s := range r.sessions {
		if !s.mu.TryLock() {
			continue // in use
		}
		idle := s.lastUsed.Before(cutoff)
		s.mu.Unlock()
		if idle {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}

func (r *sessionRegistry) len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// run sweeps on every tick until ctx is done.
func (r *sessionRegistry) run(ctx context.Context, interval time.Duration, onSweep func(removed int)) error {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := r.sweep(); n > 0 && onSweep != nil {
				onSweep(n)
			}
		}
	}
}
