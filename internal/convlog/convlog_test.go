package convlog

import (
	"context"
	"testing"
)

func newTestLogger(t *testing.T) *Logger {
	t.Helper()
	c, err := New(mockLogger{}, ":memory:")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestLogAndRecent(t *testing.T) {
	c := newTestLogger(t)
	ctx := context.Background()

	for _, rec := range []Record{
		{UserID: "u1", LessonID: "Area_Circle", Question: "q1", Answer: "a1", TokensUsed: 10},
		{UserID: "u1", LessonID: "Area_Circle", Question: "q2", Answer: "a2", TokensUsed: 20},
		{UserID: "u2", LessonID: "QuadraticFormula", Question: "q3", Answer: "a3", Streaming: true},
	} {
		if err := c.Log(ctx, rec); err != nil {
			t.Fatalf("Log: %v", err)
		}
	}

	recent, err := c.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("expected 3 records, got %d", len(recent))
	}
	if recent[0].Question != "q3" {
		t.Errorf("expected newest first, got %q", recent[0].Question)
	}
	if !recent[0].Streaming {
		t.Error("streaming flag not persisted")
	}
	if recent[0].LoggedAt.IsZero() {
		t.Error("logged_at should be filled in")
	}
}

func TestByLessonAndByUser(t *testing.T) {
	c := newTestLogger(t)
	ctx := context.Background()

	c.Log(ctx, Record{UserID: "u1", LessonID: "Area_Circle", Question: "q1", Answer: "a1"})
	c.Log(ctx, Record{UserID: "u2", LessonID: "Area_Circle", Question: "q2", Answer: "a2"})
	c.Log(ctx, Record{UserID: "u1", LessonID: "QuadraticFormula", Question: "q3", Answer: "a3"})

	byLesson, err := c.ByLesson(ctx, "Area_Circle", 10)
	if err != nil {
		t.Fatalf("ByLesson: %v", err)
	}
	if len(byLesson) != 2 {
		t.Errorf("expected 2 lesson records, got %d", len(byLesson))
	}

	byUser, err := c.ByUser(ctx, "u1", 10)
	if err != nil {
		t.Fatalf("ByUser: %v", err)
	}
	if len(byUser) != 2 {
		t.Errorf("expected 2 user records, got %d", len(byUser))
	}

	n, err := c.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 3 {
		t.Errorf("expected count 3, got %d", n)
	}
}
