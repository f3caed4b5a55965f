package usecase

import (
	"context"
	"io"
	"sync"

	"video-tutor/internal/cache"
	"video-tutor/internal/convlog"
	"video-tutor/internal/lesson"
	"video-tutor/internal/session"
	"video-tutor/pkg/openai"
	"video-tutor/pkg/vision"
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

// Mock completion client for testing
type mockLLM struct {
	mu sync.Mutex

	response *openai.Response
	err      error
	calls    int
	lastReq  *openai.Request

	streamTokens []string
	streamErr    error // returned after the tokens instead of io.EOF
	startErr     error // CompleteStream fails outright
}

func (m *mockLLM) Complete(ctx context.Context, req *openai.Request) (*openai.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return m.response, nil
}

func (m *mockLLM) CompleteStream(ctx context.Context, req *openai.Request) (openai.Stream, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.lastReq = req
	if m.startErr != nil {
		return nil, m.startErr
	}
	return &mockStream{tokens: m.streamTokens, finalErr: m.streamErr}, nil
}

func (m *mockLLM) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *mockLLM) lastRequest() *openai.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastReq
}

type mockStream struct {
	tokens   []string
	finalErr error
	pos      int
	closed   bool
}

func (s *mockStream) Recv() (string, error) {
	if s.pos < len(s.tokens) {
		t := s.tokens[s.pos]
		s.pos++
		return t, nil
	}
	if s.finalErr != nil {
		return "", s.finalErr
	}
	return "", io.EOF
}

func (s *mockStream) Close() error {
	s.closed = true
	return nil
}

// Mock vision client for testing
type mockVision struct {
	analysis *vision.Analysis
	err      error
}

func (m *mockVision) Analyze(ctx context.Context, imageBase64 string) (*vision.Analysis, error) {
	return m.analysis, m.err
}

// Mock speech clients for testing
type mockSTT struct {
	text     string
	err      error
	lastLang string
}

func (m *mockSTT) Transcribe(ctx context.Context, audio []byte, languageCode string) (string, error) {
	m.lastLang = languageCode
	return m.text, m.err
}

type mockTTS struct {
	lastText string
	lastLang string
}

func (m *mockTTS) Synthesize(ctx context.Context, text, languageCode string) ([]byte, error) {
	m.lastText = text
	m.lastLang = languageCode
	return []byte("audio"), nil
}

// Mock conversation recorder for testing
type mockRecorder struct {
	mu      sync.Mutex
	records []convlog.Record
	err     error
}

func (m *mockRecorder) Log(ctx context.Context, rec convlog.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.records = append(m.records, rec)
	return nil
}

func (m *mockRecorder) logged() []convlog.Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]convlog.Record, len(m.records))
	copy(out, m.records)
	return out
}

func okResponse(content string, tokens int) *openai.Response {
	return &openai.Response{
		Model: "gpt-4o-mini",
		Choices: []openai.Choice{
			{Message: openai.Message{Role: openai.RoleAssistant, Content: content}},
		},
		Usage: openai.Usage{TotalTokens: tokens},
	}
}

func newTestCache() *cache.Cache {
	return cache.New(&mockLogger{}, 0, 0)
}

func newTestSessions() *session.Store {
	return session.NewStore(&mockLogger{})
}

func newTestCatalog() *lesson.Catalog {
	return lesson.DefaultCatalog()
}
