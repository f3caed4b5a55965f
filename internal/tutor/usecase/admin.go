package usecase

import (
	"context"

	"video-tutor/internal/cache"
	"video-tutor/internal/lesson"
	"video-tutor/internal/session"
	"video-tutor/internal/tutor"
)

// EndSession destroys the user's live session. Idempotent.
func (uc *implUseCase) EndSession(ctx context.Context, userID string) (bool, error) {
	if userID == "" {
		return false, tutor.ErrEmptyUserID
	}
	destroyed := uc.sessions.End(ctx, userID)
	if destroyed {
		uc.l.Infof(ctx, "tutor: session ended for user %s", userID)
	}
	return destroyed, nil
}

// SessionInfo returns the user's live session snapshot.
func (uc *implUseCase) SessionInfo(ctx context.Context, userID string) (session.Info, error) {
	if userID == "" {
		return session.Info{}, tutor.ErrEmptyUserID
	}
	info, ok := uc.sessions.InfoForUser(ctx, userID)
	if !ok {
		return session.Info{}, tutor.ErrNoLiveSession
	}
	return info, nil
}

// Sessions lists every live session.
func (uc *implUseCase) Sessions(ctx context.Context) []session.Info {
	return uc.sessions.List(ctx)
}

// SweepInactiveSessions destroys idle sessions and returns the count.
func (uc *implUseCase) SweepInactiveSessions(ctx context.Context) int {
	return uc.sessions.SweepInactive(ctx, uc.cfg.SessionMaxAge)
}

// CacheStats returns response cache counters.
func (uc *implUseCase) CacheStats(ctx context.Context) cache.Stats {
	return uc.cache.Stats()
}

// ClearCache flushes the response cache. Counters survive.
func (uc *implUseCase) ClearCache(ctx context.Context) {
	uc.cache.Clear()
	uc.l.Infof(ctx, "tutor: response cache cleared")
}

// Lessons lists the lesson catalog.
func (uc *implUseCase) Lessons(ctx context.Context) []lesson.Lesson {
	return uc.catalog.List()
}

// LessonSearch returns lessons matching the query.
func (uc *implUseCase) LessonSearch(ctx context.Context, query string) []lesson.Lesson {
	return uc.catalog.Search(query)
}

// Lesson returns one catalog entry.
func (uc *implUseCase) Lesson(ctx context.Context, id string) (lesson.Lesson, bool) {
	return uc.catalog.Get(id)
}
