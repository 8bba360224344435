package session

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"rent-bo-svc/internal/rentview"
	"rent-bo-svc/pkg/logger"

	"github.com/google/uuid"
)

// ErrNotFound is returned for unknown sessions and for sessions owned by
// another user
var ErrNotFound = errors.New("session not found")

// ScreenFactory builds the unmounted screen of a new session
type ScreenFactory func(sessionID, ownerID string) *rentview.Screen

// Gauge receives the live session count
type Gauge interface {
	SetSessions(n int)
}

// Session is one mounted rent screen bound to the user who created it
type Session struct {
	ID        string
	OwnerID   string
	Screen    *rentview.Screen
	CreatedAt time.Time

	lastUsed time.Time
}

// Store keeps the live sessions in memory
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	factory  ScreenFactory
	gauge    Gauge
	logger   *logger.Logger
	now      func() time.Time
}

// NewStore creates an empty store. gauge may be nil.
func NewStore(factory ScreenFactory, gauge Gauge, logger *logger.Logger) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		factory:  factory,
		gauge:    gauge,
		logger:   logger,
		now:      time.Now,
	}
}

// Create mounts a new screen for ownerID. A failed initial fetch does not
// fail the session; it shows up as a notification in the first view.
func (s *Store) Create(ctx context.Context, ownerID string) *Session {
	id := uuid.New().String()
	now := s.now()
	sess := &Session{
		ID:        id,
		OwnerID:   ownerID,
		Screen:    s.factory(id, ownerID),
		CreatedAt: now,
		lastUsed:  now,
	}

	s.mu.Lock()
	s.sessions[id] = sess
	n := len(s.sessions)
	s.mu.Unlock()
	s.report(n)

	if err := sess.Screen.Mount(ctx); err != nil {
		s.logger.WithError(err).WithField("session_id", id).Warn("Initial rent fetch failed")
	}

	s.logger.WithFields(map[string]interface{}{
		"session_id": id,
		"user_id":    ownerID,
	}).Info("Rent screen session created")
	return sess
}

// Get returns the session if ownerID owns it, marking it as used
func (s *Store) Get(id, ownerID string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok || sess.OwnerID != ownerID {
		return nil, ErrNotFound
	}
	sess.lastUsed = s.now()
	return sess, nil
}

// Delete tears the session down
func (s *Store) Delete(id, ownerID string) error {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	if !ok || sess.OwnerID != ownerID {
		s.mu.Unlock()
		return ErrNotFound
	}
	delete(s.sessions, id)
	n := len(s.sessions)
	s.mu.Unlock()

	sess.Screen.Close()
	s.report(n)
	s.logger.WithField("session_id", id).Info("Rent screen session closed")
	return nil
}

// Sweep closes the sessions unused for longer than idle and returns how many
func (s *Store) Sweep(idle time.Duration) int {
	cutoff := s.now().Add(-idle)

	s.mu.Lock()
	var expired []*Session
	for id, sess := range s.sessions {
		if sess.lastUsed.Before(cutoff) {
			expired = append(expired, sess)
			delete(s.sessions, id)
		}
	}
	n := len(s.sessions)
	s.mu.Unlock()

	for _, sess := range expired {
		sess.Screen.Close()
	}
	s.report(n)
	return len(expired)
}

// CloseAll tears every session down, used at shutdown
func (s *Store) CloseAll() {
	s.mu.Lock()
	all := s.sessions
	s.sessions = make(map[string]*Session)
	s.mu.Unlock()

	for _, sess := range all {
		sess.Screen.Close()
	}
	s.report(0)
}

// Summary describes a live session without exposing its screen
type Summary struct {
	ID        string    `json:"session_id"`
	CreatedAt time.Time `json:"created_at"`
	LastUsed  time.Time `json:"last_used"`
}

// List returns one page of ownerID's sessions, newest first, and the total count
func (s *Store) List(ownerID string, page, limit int) ([]Summary, int64) {
	s.mu.Lock()
	var owned []Summary
	for _, sess := range s.sessions {
		if sess.OwnerID == ownerID {
			owned = append(owned, Summary{ID: sess.ID, CreatedAt: sess.CreatedAt, LastUsed: sess.lastUsed})
		}
	}
	s.mu.Unlock()

	sort.Slice(owned, func(i, j int) bool {
		if owned[i].CreatedAt.Equal(owned[j].CreatedAt) {
			return owned[i].ID < owned[j].ID
		}
		return owned[i].CreatedAt.After(owned[j].CreatedAt)
	})

	total := int64(len(owned))
	offset := (page - 1) * limit
	if offset >= len(owned) {
		return []Summary{}, total
	}
	end := offset + limit
	if end > len(owned) {
		end = len(owned)
	}
	return owned[offset:end], total
}

// Len returns the number of live sessions
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Store) report(n int) {
	if s.gauge != nil {
		s.gauge.SetSessions(n)
	}
}
