package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"video-tutor/internal/model"
	"video-tutor/pkg/log"
)

// Store owns every live tutoring session. A session is keyed by an opaque
// key minted at creation; the user index enforces at most one live session
// per user. One coarse mutex serializes all operations, which is adequate at
// the contention this service sees.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*liveSession
	byUser   map[string]string

	l   log.Logger
	now func() time.Time
}

// NewStore creates an empty session store.
func NewStore(l log.Logger) *Store {
	return &Store{
		sessions: make(map[string]*liveSession),
		byUser:   make(map[string]string),
		l:        l,
		now:      time.Now,
	}
}

// GetOrCreate returns the user's live session key for the lesson, creating
// one if needed. A lesson change destroys the prior session first, so its
// history is unreachable from the new key. Atomic with respect to concurrent
// calls for the same user.
func (s *Store) GetOrCreate(ctx context.Context, userID, lessonID string) (key string, isNew bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existingKey, ok := s.byUser[userID]; ok {
		existing := s.sessions[existingKey]
		if existing != nil && existing.lessonID == lessonID {
			existing.lastSeen = s.now()
			return existingKey, false
		}
		s.destroyLocked(existingKey)
		s.l.Infof(ctx, "session: user %s switched lesson, previous session %s destroyed", userID, existingKey)
	}

	now := s.now()
	sess := &liveSession{
		key:       newKey(userID, lessonID),
		userID:    userID,
		lessonID:  lessonID,
		createdAt: now,
		lastSeen:  now,
	}
	s.sessions[sess.key] = sess
	s.byUser[userID] = sess.key
	return sess.key, true
}

// History returns a copy of the session's entries in append order. An
// unknown key yields an empty history, never an error: the session is
// treated as already cleared.
func (s *Store) History(ctx context.Context, key string) []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[key]
	if !ok {
		return nil
	}
	out := make([]Entry, len(sess.history))
	copy(out, sess.history)
	return out
}

// AppendTurn records one completed question as a user entry plus an
// assistant entry, bumps the turn counter and refreshes last-activity. If
// the key no longer exists (the sweep may have raced an in-flight request)
// it warns and does nothing.
func (s *Store) AppendTurn(ctx context.Context, key, question, answer string, meta model.AnswerMetadata) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[key]
	if !ok {
		s.l.Warnf(ctx, "session: append on unknown key %s, dropping turn", key)
		return
	}

	now := s.now()
	sess.history = append(sess.history,
		Entry{Role: RoleUser, Content: question, At: now},
		Entry{Role: RoleAssistant, Content: answer, Metadata: meta.Clone(), At: now},
	)
	sess.turns++
	sess.tokens += meta.TokensUsed
	sess.lastSeen = now
}

// AddAuxiliaryContext attaches a short text snippet (image analysis, for
// example) to the session, keeping only the most recent maxKeep snippets.
func (s *Store) AddAuxiliaryContext(ctx context.Context, key, text string, maxKeep int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[key]
	if !ok {
		s.l.Warnf(ctx, "session: auxiliary context on unknown key %s, dropping", key)
		return
	}

	sess.auxiliary = append(sess.auxiliary, text)
	if maxKeep > 0 && len(sess.auxiliary) > maxKeep {
		sess.auxiliary = sess.auxiliary[len(sess.auxiliary)-maxKeep:]
	}
	sess.lastSeen = s.now()
}

// AuxiliaryContext returns a copy of the session's auxiliary snippets,
// oldest first.
func (s *Store) AuxiliaryContext(ctx context.Context, key string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[key]
	if !ok {
		return nil
	}
	out := make([]string, len(sess.auxiliary))
	copy(out, sess.auxiliary)
	return out
}

// End destroys the user's live session. Idempotent; reports whether a
// session was actually destroyed.
func (s *Store) End(ctx context.Context, userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	key, ok := s.byUser[userID]
	if !ok {
		return false
	}
	s.destroyLocked(key)
	return true
}

// SweepInactive destroys every session idle longer than maxAge and returns
// the count destroyed.
func (s *Store) SweepInactive(ctx context.Context, maxAge time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-maxAge)
	destroyed := 0
	for key, sess := range s.sessions {
		if sess.lastSeen.Before(cutoff) {
			s.destroyLocked(key)
			destroyed++
		}
	}
	if destroyed > 0 {
		s.l.Infof(ctx, "session: sweep destroyed %d inactive sessions", destroyed)
	}
	return destroyed
}

// Info returns a snapshot of the session behind key.
func (s *Store) Info(ctx context.Context, key string) (Info, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[key]
	if !ok {
		return Info{}, false
	}
	return snapshot(sess), true
}

// InfoForUser returns a snapshot of the user's live session.
func (s *Store) InfoForUser(ctx context.Context, userID string) (Info, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key, ok := s.byUser[userID]
	if !ok {
		return Info{}, false
	}
	return snapshot(s.sessions[key]), true
}

// List returns a snapshot of every live session.
func (s *Store) List(ctx context.Context) []Info {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Info, 0, len(s.sessions))
	for _, sess := range s.sessions {
		out = append(out, snapshot(sess))
	}
	return out
}

func (s *Store) destroyLocked(key string) {
	sess, ok := s.sessions[key]
	if !ok {
		return
	}
	delete(s.sessions, key)
	if s.byUser[sess.userID] == key {
		delete(s.byUser, sess.userID)
	}
}

func snapshot(sess *liveSession) Info {
	return Info{
		Key:          sess.key,
		UserID:       sess.userID,
		LessonID:     sess.lessonID,
		Turns:        sess.turns,
		TokensUsed:   sess.tokens,
		CreatedAt:    sess.createdAt,
		LastActivity: sess.lastSeen,
	}
}

// newKey mints an opaque session key. The user and lesson prefix aids log
// correlation; uniqueness comes from the uuid.
func newKey(userID, lessonID string) string {
	return fmt.Sprintf("%s:%s:%s", userID, lessonID, uuid.NewString())
}
