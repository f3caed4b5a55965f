package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"video-tutor/internal/tutor"
	"video-tutor/pkg/openai"
	"video-tutor/pkg/retry"
)

func newTestUseCase(llm *mockLLM) (*implUseCase, *mockRecorder) {
	rec := &mockRecorder{}
	uc := New(
		&mockLogger{},
		llm,
		nil, nil, nil,
		newTestCache(),
		newTestSessions(),
		newTestCatalog(),
		rec,
		retry.NewPolicy(3, time.Millisecond, time.Millisecond, 2),
		Config{},
	)
	return uc, rec
}

func TestAnswerMissThenHit(t *testing.T) {
	llm := &mockLLM{response: okResponse("The area is pi times r squared.", 42)}
	uc, _ := newTestUseCase(llm)
	ctx := context.Background()

	out, err := uc.Answer(ctx, tutor.AnswerInput{
		UserID: "u1", LessonID: "Area_Circle", Question: "What is the area of a circle?", Language: "en",
	})
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if out.FromCache || out.Degraded {
		t.Errorf("first answer should come from the service: %+v", out)
	}
	if out.TokensUsed != 42 {
		t.Errorf("unexpected tokens: %d", out.TokensUsed)
	}
	if !out.IsNewSession {
		t.Error("first question should create the session")
	}

	// Same question modulo case and stop words must hit the cache.
	out2, err := uc.Answer(ctx, tutor.AnswerInput{
		UserID: "u1", LessonID: "Area_Circle", Question: "what is the AREA of a circle", Language: "en",
	})
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if !out2.FromCache {
		t.Error("equivalent question should hit the cache")
	}
	if out2.Answer != out.Answer {
		t.Errorf("cached answer differs: %q vs %q", out2.Answer, out.Answer)
	}
	if llm.callCount() != 1 {
		t.Errorf("completion service should run once, ran %d times", llm.callCount())
	}

	// Both questions, cached or not, count as session turns.
	info, err := uc.SessionInfo(ctx, "u1")
	if err != nil {
		t.Fatalf("SessionInfo: %v", err)
	}
	if info.Turns != 2 {
		t.Errorf("expected 2 turns recorded, got %d", info.Turns)
	}
}

func TestAnswerPromptOrdering(t *testing.T) {
	llm := &mockLLM{response: okResponse("answer", 10)}
	uc, _ := newTestUseCase(llm)
	ctx := context.Background()

	uc.Answer(ctx, tutor.AnswerInput{UserID: "u1", LessonID: "Area_Circle", Question: "first question", Language: "en"})
	uc.Answer(ctx, tutor.AnswerInput{UserID: "u1", LessonID: "Area_Circle", Question: "second question", Language: "en"})

	req := llm.lastRequest()
	msgs := req.Messages
	// system, user(first), assistant, user(second)
	if len(msgs) != 4 {
		t.Fatalf("expected 4 messages, got %d", len(msgs))
	}
	if msgs[0].Role != openai.RoleSystem {
		t.Error("preamble must come first")
	}
	for _, want := range []string{"Math Tutor", "Area of a Circle", "Geometry"} {
		if !strings.Contains(msgs[0].Content, want) {
			t.Errorf("system prompt missing %q", want)
		}
	}
	if msgs[1].Role != openai.RoleUser || msgs[1].Content != "first question" {
		t.Errorf("history user turn misplaced: %+v", msgs[1])
	}
	if msgs[2].Role != openai.RoleAssistant {
		t.Errorf("history assistant turn misplaced: %+v", msgs[2])
	}
	if last := msgs[len(msgs)-1]; last.Role != openai.RoleUser || last.Content != "second question" {
		t.Errorf("current question must come last: %+v", last)
	}
}

func TestAnswerFallbackAfterRetries(t *testing.T) {
	llm := &mockLLM{err: retry.Wrap(retry.CategoryNetwork, errors.New("connection refused"))}
	uc, _ := newTestUseCase(llm)
	ctx := context.Background()

	out, err := uc.Answer(ctx, tutor.AnswerInput{
		UserID: "u1", LessonID: "Area_Circle", Question: "area of circle", Language: "en",
	})
	if err != nil {
		t.Fatalf("degraded answer must not error: %v", err)
	}
	if !out.Degraded {
		t.Error("output should be marked degraded")
	}
	if !strings.Contains(out.Answer, "technical issue") {
		t.Errorf("fallback should mention a technical issue: %q", out.Answer)
	}
	if !strings.Contains(out.Answer, "Area of a Circle") {
		t.Errorf("fallback should stay on topic: %q", out.Answer)
	}
	if llm.callCount() != 3 {
		t.Errorf("expected 3 attempts, got %d", llm.callCount())
	}

	// Degraded answers are never cached: the next ask calls the service again.
	llm.mu.Lock()
	llm.err = nil
	llm.response = okResponse("real answer", 5)
	llm.mu.Unlock()

	out2, _ := uc.Answer(ctx, tutor.AnswerInput{
		UserID: "u1", LessonID: "Area_Circle", Question: "area of circle", Language: "en",
	})
	if out2.FromCache {
		t.Error("fallback must not be served from cache")
	}
	if out2.Answer != "real answer" {
		t.Errorf("expected fresh answer, got %q", out2.Answer)
	}

	// Session reflects both the degraded and the real turn.
	info, _ := uc.SessionInfo(ctx, "u1")
	if info.Turns != 2 {
		t.Errorf("expected 2 turns, got %d", info.Turns)
	}
}

func TestAnswerAuthFailsFast(t *testing.T) {
	llm := &mockLLM{err: retry.Wrap(retry.CategoryAuth, errors.New("invalid api key"))}
	uc, _ := newTestUseCase(llm)

	out, err := uc.Answer(context.Background(), tutor.AnswerInput{
		UserID: "u1", LessonID: "Area_Circle", Question: "area of circle", Language: "en",
	})
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if !out.Degraded {
		t.Error("auth failure should degrade")
	}
	if llm.callCount() != 1 {
		t.Errorf("auth errors must not be retried, got %d attempts", llm.callCount())
	}
}

func TestAnswerValidation(t *testing.T) {
	uc, _ := newTestUseCase(&mockLLM{response: okResponse("x", 1)})
	ctx := context.Background()

	if _, err := uc.Answer(ctx, tutor.AnswerInput{LessonID: "L", Question: "q"}); !errors.Is(err, tutor.ErrEmptyUserID) {
		t.Errorf("expected ErrEmptyUserID, got %v", err)
	}
	if _, err := uc.Answer(ctx, tutor.AnswerInput{UserID: "u", LessonID: "L", Question: "   "}); !errors.Is(err, tutor.ErrEmptyQuestion) {
		t.Errorf("expected ErrEmptyQuestion, got %v", err)
	}
}

func TestAnswerLessonSwitchStartsFresh(t *testing.T) {
	llm := &mockLLM{response: okResponse("answer", 1)}
	uc, _ := newTestUseCase(llm)
	ctx := context.Background()

	out1, _ := uc.Answer(ctx, tutor.AnswerInput{UserID: "u1", LessonID: "Area_Circle", Question: "q1", Language: "en"})
	out2, _ := uc.Answer(ctx, tutor.AnswerInput{UserID: "u1", LessonID: "QuadraticFormula", Question: "q2", Language: "en"})

	if out1.SessionKey == out2.SessionKey {
		t.Error("lesson switch must mint a new session")
	}
	if !out2.IsNewSession {
		t.Error("lesson switch should report a new session")
	}
	// Only the new lesson's turn remains visible.
	req := llm.lastRequest()
	for _, m := range req.Messages {
		if m.Content == "q1" {
			t.Error("prior lesson history leaked into the new session prompt")
		}
	}
}

func TestAnswerStripsMarkdown(t *testing.T) {
	llm := &mockLLM{response: okResponse("The **area** is `pi` times r^2", 1)}
	uc, _ := newTestUseCase(llm)

	out, err := uc.Answer(context.Background(), tutor.AnswerInput{
		UserID: "u1", LessonID: "Area_Circle", Question: "area?", Language: "en",
	})
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if out.Answer != "The area is pi times r^2" {
		t.Errorf("markup not stripped: %q", out.Answer)
	}
}

func TestAnswerRecordsConversation(t *testing.T) {
	llm := &mockLLM{response: okResponse("answer", 7)}
	uc, rec := newTestUseCase(llm)

	uc.Answer(context.Background(), tutor.AnswerInput{
		UserID: "u1", LessonID: "Area_Circle", Question: "area?", Language: "en",
	})

	logged := rec.logged()
	if len(logged) != 1 {
		t.Fatalf("expected 1 logged exchange, got %d", len(logged))
	}
	got := logged[0]
	if got.UserID != "u1" || got.LessonID != "Area_Circle" || got.TokensUsed != 7 {
		t.Errorf("unexpected record: %+v", got)
	}
	if got.LessonTitle != "Area of a Circle (Introduction to Pi)" {
		t.Errorf("unexpected lesson title: %q", got.LessonTitle)
	}
}

func TestAnswerDetectsLanguage(t *testing.T) {
	llm := &mockLLM{response: okResponse("उत्तर", 1)}
	uc, _ := newTestUseCase(llm)

	_, err := uc.Answer(context.Background(), tutor.AnswerInput{
		UserID: "u1", LessonID: "Area_Circle", Question: "वृत्त का क्षेत्रफल क्या है",
	})
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	sys := llm.lastRequest().Messages[0].Content
	if !strings.Contains(sys, "हिंदी") {
		t.Errorf("expected Hindi system prompt, got %q", sys)
	}
}
