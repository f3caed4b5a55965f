package retry

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"testing"
	"time"
)

func noSleepPolicy(maxRetries int) *Policy {
	p := NewPolicy(maxRetries, time.Second, 10*time.Second, 2)
	p.sleep = func(ctx context.Context, d time.Duration) error { return nil }
	return p
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Category
	}{
		{"tagged rate limit", Wrap(CategoryRateLimit, errors.New("429")), CategoryRateLimit},
		{"tagged auth", Wrap(CategoryAuth, errors.New("401")), CategoryAuth},
		{"deadline", context.DeadlineExceeded, CategoryNetwork},
		{"wrapped deadline", fmt.Errorf("call: %w", context.DeadlineExceeded), CategoryNetwork},
		{"net error", &url.Error{Op: "Post", URL: "http://x", Err: errors.New("connection refused")}, CategoryNetwork},
		{"rate limit text", errors.New("rate limit exceeded"), CategoryRateLimit},
		{"auth text", errors.New("invalid api key"), CategoryAuth},
		{"processing text", errors.New("failed to unmarshal body"), CategoryProcessing},
		{"unknown", errors.New("something odd"), CategoryUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.err); got != tt.want {
				t.Errorf("Classify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDelay(t *testing.T) {
	p := NewPolicy(5, time.Second, 10*time.Second, 2)

	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{0, time.Second},
		{1, 2 * time.Second},
		{2, 4 * time.Second},
		{3, 8 * time.Second},
		{4, 10 * time.Second}, // capped at max
		{10, 10 * time.Second},
	}

	for _, tt := range tests {
		if got := p.Delay(tt.attempt); got != tt.want {
			t.Errorf("Delay(%d) = %v, want %v", tt.attempt, got, tt.want)
		}
	}
}

func TestDoRetriesTransient(t *testing.T) {
	p := noSleepPolicy(3)

	calls := 0
	err := p.Do(context.Background(), func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return Wrap(CategoryNetwork, errors.New("connection reset"))
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 attempts, got %d", calls)
	}
}

func TestDoFailsFastOnAuth(t *testing.T) {
	p := noSleepPolicy(3)

	calls := 0
	err := p.Do(context.Background(), func(ctx context.Context) error {
		calls++
		return Wrap(CategoryAuth, errors.New("invalid key"))
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("auth error should not be retried, got %d attempts", calls)
	}
}

func TestDoExhaustsRetries(t *testing.T) {
	p := noSleepPolicy(3)

	calls := 0
	wantErr := Wrap(CategoryRateLimit, errors.New("quota"))
	err := p.Do(context.Background(), func(ctx context.Context) error {
		calls++
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected last error, got %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 attempts, got %d", calls)
	}
}

func TestDoStopsOnCancelledContext(t *testing.T) {
	p := NewPolicy(5, time.Hour, time.Hour, 2)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := p.Do(ctx, func(ctx context.Context) error {
		calls++
		return Wrap(CategoryNetwork, errors.New("down"))
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("expected a single attempt with cancelled context, got %d", calls)
	}
}
