package speech

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

type noopLogger struct{}

func (noopLogger) Debug(ctx context.Context, arg ...any)                    {}
func (noopLogger) Debugf(ctx context.Context, template string, arg ...any)  {}
func (noopLogger) Info(ctx context.Context, arg ...any)                     {}
func (noopLogger) Infof(ctx context.Context, template string, arg ...any)   {}
func (noopLogger) Warn(ctx context.Context, arg ...any)                     {}
func (noopLogger) Warnf(ctx context.Context, template string, arg ...any)   {}
func (noopLogger) Error(ctx context.Context, arg ...any)                    {}
func (noopLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (noopLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (noopLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}
func (noopLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (noopLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (noopLogger) Panic(ctx context.Context, arg ...any)                    {}
func (noopLogger) Panicf(ctx context.Context, template string, arg ...any)  {}

func TestSynthesize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "pi r squared" {
			t.Errorf("unexpected text: %q", got)
		}
		if got := r.URL.Query().Get("tl"); got != "en" {
			t.Errorf("unexpected language: %q", got)
		}
		w.Write([]byte("mp3-bytes"))
	}))
	defer srv.Close()

	c := NewTTS(TTSConfig{BaseURL: srv.URL})
	audio, err := c.Synthesize(context.Background(), "pi r squared", "en")
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if string(audio) != "mp3-bytes" {
		t.Errorf("unexpected audio: %q", audio)
	}
}

func TestSynthesizeEmptyText(t *testing.T) {
	c := NewTTS(TTSConfig{BaseURL: "http://unused"})
	if _, err := c.Synthesize(context.Background(), "", "en"); err == nil {
		t.Fatal("expected error for empty text")
	}
}

func TestTranscribe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("lang"); got != "en-US" {
			t.Errorf("unexpected language: %q", got)
		}
		// First line is the empty interim result the endpoint always sends.
		fmt.Fprintln(w, `{"result":[]}`)
		fmt.Fprintln(w, `{"result":[{"alternative":[{"transcript":"what is the area of a circle","confidence":0.92}]}],"result_index":0}`)
	}))
	defer srv.Close()

	c := NewSTT(STTConfig{BaseURL: srv.URL})
	text, err := c.Transcribe(context.Background(), []byte("flac-bytes"), "en-US")
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if text != "what is the area of a circle" {
		t.Errorf("unexpected transcript: %q", text)
	}
}

func TestTranscribeNoResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, `{"result":[]}`)
	}))
	defer srv.Close()

	c := NewSTT(STTConfig{BaseURL: srv.URL})
	if _, err := c.Transcribe(context.Background(), []byte("flac-bytes"), "en-US"); err == nil {
		t.Fatal("expected error when nothing was recognized")
	}
}

// countingTTS records how often the inner synthesizer runs.
type countingTTS struct{ calls int }

func (c *countingTTS) Synthesize(ctx context.Context, text, languageCode string) ([]byte, error) {
	c.calls++
	return []byte("audio:" + text), nil
}

func TestCachedTTSDegradesWithoutRedis(t *testing.T) {
	// Port 1 is never a listening redis; every cache op fails fast and the
	// wrapper must fall through to the inner synthesizer.
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer rdb.Close()

	inner := &countingTTS{}
	c := NewCachedTTS(noopLogger{}, inner, rdb, time.Hour)

	audio, err := c.Synthesize(context.Background(), "hello", "en")
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if string(audio) != "audio:hello" {
		t.Errorf("unexpected audio: %q", audio)
	}
	if inner.calls != 1 {
		t.Errorf("inner synthesizer should run once, ran %d times", inner.calls)
	}
}

func TestAudioKeyStable(t *testing.T) {
	a := audioKey("text", "en")
	b := audioKey("text", "en")
	if a != b {
		t.Error("audio key must be deterministic")
	}
	if a == audioKey("text", "hi") {
		t.Error("language must be part of the key")
	}
}
