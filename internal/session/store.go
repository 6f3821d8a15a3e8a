// Package session keeps one deck viewer per browser session. Sessions are
// identified by random UUIDs carried in a cookie and expire when idle.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-flashcards/internal/domain"
	"github.com/phrazzld/scry-flashcards/internal/viewer"
)

// DefaultTTL is used when a non-positive TTL is configured.
const DefaultTTL = time.Hour

// Session is the per-user state: a viewer, the topic its deck was built
// from and a one-shot notice shown on the next page render.
type Session struct {
	ID     uuid.UUID
	Viewer *viewer.Viewer

	mu       sync.Mutex
	topic    string
	notice   string
	lastSeen time.Time
}

// LoadDeck replaces the viewer's deck and records the topic it was built
// from in one step. The topic is recorded even when cards is empty, in which
// case the viewer's ErrNoCards is returned.
func (s *Session) LoadDeck(topic string, cards []domain.Flashcard) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.Viewer.Load(cards)
	s.topic = topic
	return err
}

// View returns the deck topic with the viewer's current position.
func (s *Session) View() (string, viewer.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.topic, s.Viewer.Snapshot()
}

// Deck returns the deck topic with a copy of its cards.
func (s *Session) Deck() (string, []domain.Flashcard) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.topic, s.Viewer.Deck()
}

// SetNotice stores a message for the next render, replacing any pending one.
func (s *Session) SetNotice(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notice = msg
}

// TakeNotice returns the pending notice and clears it.
func (s *Session) TakeNotice() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg := s.notice
	s.notice = ""
	return msg
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = now
}

func (s *Session) expired(now time.Time, ttl time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen) > ttl
}

// Store is an in-memory, concurrency-safe session registry.
type Store struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
	ttl      time.Duration
	now      func() time.Time
	logger   *slog.Logger
}

// Option customises a Store.
type Option func(*Store)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore creates a Store whose sessions expire after ttl of inactivity.
func NewStore(ttl time.Duration, logger *slog.Logger, opts ...Option) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{
		sessions: make(map[uuid.UUID]*Session),
		ttl:      ttl,
		now:      time.Now,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create starts a new session with an empty viewer.
func (s *Store) Create() *Session {
	sess := &Session{
		ID:       uuid.New(),
		Viewer:   viewer.New(),
		lastSeen: s.now(),
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	return sess
}

// Get returns a live session and refreshes its idle timer. Expired sessions
// are removed and reported as missing.
func (s *Store) Get(id uuid.UUID) (*Session, bool) {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	if sess.expired(now, s.ttl) {
		delete(s.sessions, id)
		return nil, false
	}
	sess.touch(now)
	return sess, true
}

// Resolve looks up the session named by raw, creating a new one when raw is
// not a valid UUID or names no live session. created reports which happened.
func (s *Store) Resolve(raw string) (sess *Session, created bool) {
	if id, err := uuid.Parse(raw); err == nil {
		if sess, ok := s.Get(id); ok {
			return sess, false
		}
	}
	return s.Create(), true
}

// Len returns the number of stored sessions, expired or not.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep removes expired sessions and returns how many were dropped.
func (s *Store) Sweep() int {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.sessions {
		if sess.expired(now, s.ttl) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Run sweeps expired sessions every interval until ctx is done.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = s.ttl / 2
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := s.Sweep(); removed > 0 {
				s.logger.DebugContext(ctx, "expired sessions removed",
					"removed", removed,
					"remaining", s.Len())
			}
		}
	}
}
