package tutor

import (
	"context"

	"video-tutor/internal/cache"
	"video-tutor/internal/convlog"
	"video-tutor/internal/lesson"
	"video-tutor/internal/session"
)

// UseCase defines the business logic interface for the tutor domain.
type UseCase interface {
	// Answer resolves one question: cache first, else the completion
	// service, with a degraded fallback when the service stays down.
	Answer(ctx context.Context, input AnswerInput) (AnswerOutput, error)

	// AnswerStream answers with incremental token events. The channel closes
	// after the terminal event, or without one if ctx is cancelled.
	AnswerStream(ctx context.Context, input AnswerInput) (<-chan StreamEvent, error)

	// AttachImageContext analyzes an image and attaches the result to the
	// user's session as auxiliary context for future answers.
	AttachImageContext(ctx context.Context, input ImageInput) (ImageOutput, error)

	// Transcribe converts recorded audio into question text.
	Transcribe(ctx context.Context, input TranscribeInput) (TranscribeOutput, error)

	// Speak renders answer text as audio in spoken form.
	Speak(ctx context.Context, input SpeakInput) ([]byte, error)

	// EndSession destroys the user's live session; reports whether one existed.
	EndSession(ctx context.Context, userID string) (bool, error)

	// SessionInfo returns the user's live session snapshot.
	SessionInfo(ctx context.Context, userID string) (session.Info, error)

	// Sessions lists every live session.
	Sessions(ctx context.Context) []session.Info

	// SweepInactiveSessions destroys idle sessions and returns the count.
	SweepInactiveSessions(ctx context.Context) int

	// CacheStats returns response cache counters.
	CacheStats(ctx context.Context) cache.Stats

	// ClearCache flushes the response cache (counters survive).
	ClearCache(ctx context.Context)

	// Lessons lists the lesson catalog.
	Lessons(ctx context.Context) []lesson.Lesson

	// LessonSearch returns lessons matching the query by title, topic or
	// keywords.
	LessonSearch(ctx context.Context, query string) []lesson.Lesson

	// Lesson returns one catalog entry.
	Lesson(ctx context.Context, id string) (lesson.Lesson, bool)
}

// Recorder persists completed exchanges for revision. Implemented by
// convlog.Logger; logging is best-effort for callers.
type Recorder interface {
	Log(ctx context.Context, rec convlog.Record) error
}
