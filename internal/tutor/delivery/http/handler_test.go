package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"video-tutor/config"
	"video-tutor/internal/cache"
	"video-tutor/internal/lesson"
	"video-tutor/internal/middleware"
	"video-tutor/internal/session"
	"video-tutor/internal/tutor"
)

func newTestRouter(uc tutor.UseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	mw := middleware.New(&mockLogger{}, config.RateLimitConfig{RequestsPerMin: 60000})
	RegisterRoutes(r.Group("/api/v1"), New(&mockLogger{}, uc), mw)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	var envelope struct {
		ErrorCode int             `json:"error_code"`
		Data      json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if out != nil {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			t.Fatalf("decode data: %v", err)
		}
	}
}

func TestAsk(t *testing.T) {
	var gotInput tutor.AnswerInput
	uc := &mockUseCase{
		answerFn: func(ctx context.Context, input tutor.AnswerInput) (tutor.AnswerOutput, error) {
			gotInput = input
			return tutor.AnswerOutput{
				Answer: "pi r squared", TokensUsed: 12, SessionKey: "k1", IsNewSession: true,
			}, nil
		},
	}
	r := newTestRouter(uc)

	w := doJSON(t, r, http.MethodPost, "/api/v1/tutor/ask", askReq{
		UserID: "u1", LessonID: "Area_Circle", Question: "area?", Language: "en",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp askResp
	decodeData(t, w, &resp)
	if resp.Answer != "pi r squared" || resp.TokensUsed != 12 || !resp.IsNewSession {
		t.Errorf("unexpected response: %+v", resp)
	}
	if gotInput.UserID != "u1" || gotInput.Question != "area?" {
		t.Errorf("input not forwarded: %+v", gotInput)
	}
}

func TestAskValidation(t *testing.T) {
	r := newTestRouter(&mockUseCase{})

	w := doJSON(t, r, http.MethodPost, "/api/v1/tutor/ask", askReq{UserID: "u1"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing question: status = %d, want 400", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/api/v1/tutor/ask", askReq{Question: "q"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing user: status = %d, want 400", w.Code)
	}
}

func TestAskInternalErrorHidesCause(t *testing.T) {
	uc := &mockUseCase{
		answerFn: func(ctx context.Context, input tutor.AnswerInput) (tutor.AnswerOutput, error) {
			return tutor.AnswerOutput{}, errors.New("pq: connection refused")
		},
	}
	r := newTestRouter(uc)

	w := doJSON(t, r, http.MethodPost, "/api/v1/tutor/ask", askReq{UserID: "u1", Question: "q"})
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	if strings.Contains(w.Body.String(), "connection refused") {
		t.Error("provider error leaked to the client")
	}
}

func TestAskStreamSSE(t *testing.T) {
	uc := &mockUseCase{
		answerStreamFn: func(ctx context.Context, input tutor.AnswerInput) (<-chan tutor.StreamEvent, error) {
			ch := make(chan tutor.StreamEvent, 3)
			ch <- tutor.StreamEvent{Type: tutor.EventToken, Token: "The "}
			ch <- tutor.StreamEvent{Type: tutor.EventToken, Token: "area"}
			ch <- tutor.StreamEvent{Type: tutor.EventDone, FullText: "The area", TokensUsed: 2}
			close(ch)
			return ch, nil
		},
	}
	r := newTestRouter(uc)

	w := doJSON(t, r, http.MethodPost, "/api/v1/tutor/ask/stream", askReq{UserID: "u1", Question: "area?"})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("content type = %q", ct)
	}

	var types []tutor.StreamEventType
	for _, line := range strings.Split(w.Body.String(), "\n") {
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		var ev tutor.StreamEvent
		if err := json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &ev); err != nil {
			t.Fatalf("bad event line %q: %v", line, err)
		}
		types = append(types, ev.Type)
	}
	want := []tutor.StreamEventType{tutor.EventToken, tutor.EventToken, tutor.EventDone}
	if len(types) != len(want) {
		t.Fatalf("got %d events, want %d", len(types), len(want))
	}
	for i := range want {
		if types[i] != want[i] {
			t.Errorf("event %d = %s, want %s", i, types[i], want[i])
		}
	}
}

func TestAskWS(t *testing.T) {
	uc := &mockUseCase{
		answerStreamFn: func(ctx context.Context, input tutor.AnswerInput) (<-chan tutor.StreamEvent, error) {
			ch := make(chan tutor.StreamEvent, 2)
			ch <- tutor.StreamEvent{Type: tutor.EventToken, Token: "hi"}
			ch <- tutor.StreamEvent{Type: tutor.EventDone, FullText: "hi"}
			close(ch)
			return ch, nil
		},
	}
	srv := httptest.NewServer(newTestRouter(uc))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/tutor/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	if err := conn.WriteJSON(askReq{UserID: "u1", Question: "area?"}); err != nil {
		t.Fatalf("write: %v", err)
	}

	var types []tutor.StreamEventType
	for {
		var ev tutor.StreamEvent
		if err := conn.ReadJSON(&ev); err != nil {
			t.Fatalf("read: %v", err)
		}
		types = append(types, ev.Type)
		if ev.Type == tutor.EventDone || ev.Type == tutor.EventError {
			break
		}
	}
	if len(types) != 2 || types[0] != tutor.EventToken || types[1] != tutor.EventDone {
		t.Errorf("unexpected event sequence: %v", types)
	}
}

func TestTranscribe(t *testing.T) {
	uc := &mockUseCase{
		transcribeFn: func(ctx context.Context, input tutor.TranscribeInput) (tutor.TranscribeOutput, error) {
			if len(input.Audio) == 0 {
				t.Error("audio bytes not forwarded")
			}
			if input.Language != "hi" {
				t.Errorf("language = %q, want hi", input.Language)
			}
			return tutor.TranscribeOutput{Text: "question", Language: "hi"}, nil
		},
	}
	r := newTestRouter(uc)

	var buf bytes.Buffer
	mpw := multipart.NewWriter(&buf)
	fw, _ := mpw.CreateFormFile("audio", "question.wav")
	fw.Write([]byte("RIFFdata"))
	mpw.WriteField("language", "hi")
	mpw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/tutor/transcribe", &buf)
	req.Header.Set("Content-Type", mpw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp transcribeResp
	decodeData(t, w, &resp)
	if resp.Text != "question" || resp.Language != "hi" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestTranscribeMissingFile(t *testing.T) {
	r := newTestRouter(&mockUseCase{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/tutor/transcribe", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestSpeak(t *testing.T) {
	uc := &mockUseCase{
		speakFn: func(ctx context.Context, input tutor.SpeakInput) ([]byte, error) {
			return []byte("mp3-bytes"), nil
		},
	}
	r := newTestRouter(uc)

	w := doJSON(t, r, http.MethodPost, "/api/v1/tutor/speak", speakReq{Text: "A equals pi r squared"})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "audio/mpeg" {
		t.Errorf("content type = %q", ct)
	}
	if w.Body.String() != "mp3-bytes" {
		t.Errorf("unexpected body: %q", w.Body.String())
	}
}

func TestSpeakUnavailable(t *testing.T) {
	uc := &mockUseCase{
		speakFn: func(ctx context.Context, input tutor.SpeakInput) ([]byte, error) {
			return nil, tutor.ErrSpeechOff
		},
	}
	r := newTestRouter(uc)

	w := doJSON(t, r, http.MethodPost, "/api/v1/tutor/speak", speakReq{Text: "hello"})
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", w.Code)
	}
}

func TestSessionDetail(t *testing.T) {
	uc := &mockUseCase{
		sessionInfoFn: func(ctx context.Context, userID string) (session.Info, error) {
			if userID != "u1" {
				return session.Info{}, tutor.ErrNoLiveSession
			}
			return session.Info{Key: "k1", UserID: "u1", LessonID: "Area_Circle", Turns: 3}, nil
		},
	}
	r := newTestRouter(uc)

	w := doJSON(t, r, http.MethodGet, "/api/v1/sessions/u1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp sessionResp
	decodeData(t, w, &resp)
	if resp.SessionKey != "k1" || resp.Turns != 3 {
		t.Errorf("unexpected response: %+v", resp)
	}

	w = doJSON(t, r, http.MethodGet, "/api/v1/sessions/nobody", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown user: status = %d, want 404", w.Code)
	}
}

func TestSessionEnd(t *testing.T) {
	uc := &mockUseCase{
		endSessionFn: func(ctx context.Context, userID string) (bool, error) { return true, nil },
	}
	r := newTestRouter(uc)

	w := doJSON(t, r, http.MethodDelete, "/api/v1/sessions/u1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp sessionEndResp
	decodeData(t, w, &resp)
	if !resp.Ended {
		t.Error("expected ended=true")
	}
}

func TestCacheStats(t *testing.T) {
	uc := &mockUseCase{
		cacheStatsFn: func(ctx context.Context) cache.Stats {
			return cache.Stats{Hits: 3, Misses: 1, TotalEntries: 4, SizeBytes: 512}
		},
	}
	r := newTestRouter(uc)

	w := doJSON(t, r, http.MethodGet, "/api/v1/cache/stats", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp cacheStatsResp
	decodeData(t, w, &resp)
	if resp.Hits != 3 || resp.HitRate != 0.75 {
		t.Errorf("unexpected stats: %+v", resp)
	}
}

func TestCacheClear(t *testing.T) {
	uc := &mockUseCase{}
	r := newTestRouter(uc)

	w := doJSON(t, r, http.MethodPost, "/api/v1/cache/clear", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !uc.cleared {
		t.Error("cache clear not forwarded to use case")
	}
}

func TestLessons(t *testing.T) {
	uc := &mockUseCase{
		lessonsFn: func(ctx context.Context) []lesson.Lesson {
			return []lesson.Lesson{{ID: "Area_Circle", Title: "Area of a Circle"}}
		},
		lessonSearchFn: func(ctx context.Context, query string) []lesson.Lesson {
			if query == "circle" {
				return []lesson.Lesson{{ID: "Area_Circle", Title: "Area of a Circle"}}
			}
			return nil
		},
		lessonFn: func(ctx context.Context, id string) (lesson.Lesson, bool) {
			if id == "Area_Circle" {
				return lesson.Lesson{ID: id, Title: "Area of a Circle"}, true
			}
			return lesson.Lesson{}, false
		},
	}
	r := newTestRouter(uc)

	w := doJSON(t, r, http.MethodGet, "/api/v1/lessons", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var list lessonListResp
	decodeData(t, w, &list)
	if list.Total != 1 || list.Lessons[0].ID != "Area_Circle" {
		t.Errorf("unexpected list: %+v", list)
	}

	w = doJSON(t, r, http.MethodGet, "/api/v1/lessons?q=circle", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("search status = %d", w.Code)
	}
	decodeData(t, w, &list)
	if list.Total != 1 {
		t.Errorf("search should match one lesson, got %+v", list)
	}

	w = doJSON(t, r, http.MethodGet, "/api/v1/lessons?q=calculus", nil)
	decodeData(t, w, &list)
	if list.Total != 0 {
		t.Errorf("search should match nothing, got %+v", list)
	}

	w = doJSON(t, r, http.MethodGet, "/api/v1/lessons/nope", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown lesson: status = %d, want 404", w.Code)
	}
}
