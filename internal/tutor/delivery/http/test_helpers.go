package http

import (
	"context"

	"video-tutor/internal/cache"
	"video-tutor/internal/lesson"
	"video-tutor/internal/session"
	"video-tutor/internal/tutor"
)

// Mock logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Info(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Panicf(ctx context.Context, template string, arg ...any)  {}

// Mock use case for testing; unset function fields return zero values.
type mockUseCase struct {
	answerFn       func(ctx context.Context, input tutor.AnswerInput) (tutor.AnswerOutput, error)
	answerStreamFn func(ctx context.Context, input tutor.AnswerInput) (<-chan tutor.StreamEvent, error)
	imageFn        func(ctx context.Context, input tutor.ImageInput) (tutor.ImageOutput, error)
	transcribeFn   func(ctx context.Context, input tutor.TranscribeInput) (tutor.TranscribeOutput, error)
	speakFn        func(ctx context.Context, input tutor.SpeakInput) ([]byte, error)
	endSessionFn   func(ctx context.Context, userID string) (bool, error)
	sessionInfoFn  func(ctx context.Context, userID string) (session.Info, error)
	sessionsFn     func(ctx context.Context) []session.Info
	cacheStatsFn   func(ctx context.Context) cache.Stats
	lessonsFn      func(ctx context.Context) []lesson.Lesson
	lessonSearchFn func(ctx context.Context, query string) []lesson.Lesson
	lessonFn       func(ctx context.Context, id string) (lesson.Lesson, bool)

	cleared bool
	swept   int
}

func (m *mockUseCase) Answer(ctx context.Context, input tutor.AnswerInput) (tutor.AnswerOutput, error) {
	if m.answerFn != nil {
		return m.answerFn(ctx, input)
	}
	return tutor.AnswerOutput{}, nil
}

func (m *mockUseCase) AnswerStream(ctx context.Context, input tutor.AnswerInput) (<-chan tutor.StreamEvent, error) {
	if m.answerStreamFn != nil {
		return m.answerStreamFn(ctx, input)
	}
	ch := make(chan tutor.StreamEvent)
	close(ch)
	return ch, nil
}

func (m *mockUseCase) AttachImageContext(ctx context.Context, input tutor.ImageInput) (tutor.ImageOutput, error) {
	if m.imageFn != nil {
		return m.imageFn(ctx, input)
	}
	return tutor.ImageOutput{}, nil
}

func (m *mockUseCase) Transcribe(ctx context.Context, input tutor.TranscribeInput) (tutor.TranscribeOutput, error) {
	if m.transcribeFn != nil {
		return m.transcribeFn(ctx, input)
	}
	return tutor.TranscribeOutput{}, nil
}

func (m *mockUseCase) Speak(ctx context.Context, input tutor.SpeakInput) ([]byte, error) {
	if m.speakFn != nil {
		return m.speakFn(ctx, input)
	}
	return nil, nil
}

func (m *mockUseCase) EndSession(ctx context.Context, userID string) (bool, error) {
	if m.endSessionFn != nil {
		return m.endSessionFn(ctx, userID)
	}
	return false, nil
}

func (m *mockUseCase) SessionInfo(ctx context.Context, userID string) (session.Info, error) {
	if m.sessionInfoFn != nil {
		return m.sessionInfoFn(ctx, userID)
	}
	return session.Info{}, nil
}

func (m *mockUseCase) Sessions(ctx context.Context) []session.Info {
	if m.sessionsFn != nil {
		return m.sessionsFn(ctx)
	}
	return nil
}

func (m *mockUseCase) SweepInactiveSessions(ctx context.Context) int {
	return m.swept
}

func (m *mockUseCase) CacheStats(ctx context.Context) cache.Stats {
	if m.cacheStatsFn != nil {
		return m.cacheStatsFn(ctx)
	}
	return cache.Stats{}
}

func (m *mockUseCase) ClearCache(ctx context.Context) {
	m.cleared = true
}

func (m *mockUseCase) Lessons(ctx context.Context) []lesson.Lesson {
	if m.lessonsFn != nil {
		return m.lessonsFn(ctx)
	}
	return nil
}

func (m *mockUseCase) LessonSearch(ctx context.Context, query string) []lesson.Lesson {
	if m.lessonSearchFn != nil {
		return m.lessonSearchFn(ctx, query)
	}
	return nil
}

func (m *mockUseCase) Lesson(ctx context.Context, id string) (lesson.Lesson, bool) {
	if m.lessonFn != nil {
		return m.lessonFn(ctx, id)
	}
	return lesson.Lesson{}, false
}
