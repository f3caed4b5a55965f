package speech

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/redis/go-redis/v9"

	"video-tutor/pkg/log"
)

// CachedTTS wraps a synthesizer with a Redis byte cache so repeated answers
// are not re-synthesized. Cache failures degrade to a miss: synthesis must
// never be blocked by the cache.
type CachedTTS struct {
	inner ITTS
	rdb   *redis.Client
	ttl   time.Duration
	l     log.Logger
}

// NewCachedTTS wraps inner with the given Redis client.
func NewCachedTTS(l log.Logger, inner ITTS, rdb *redis.Client, ttl time.Duration) *CachedTTS {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &CachedTTS{inner: inner, rdb: rdb, ttl: ttl, l: l}
}

// Synthesize returns cached audio when available, else synthesizes and
// stores the result best-effort.
func (c *CachedTTS) Synthesize(ctx context.Context, text, languageCode string) ([]byte, error) {
	key := audioKey(text, languageCode)

	if audio, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(audio) > 0 {
		return audio, nil
	} else if err != nil && err != redis.Nil {
		c.l.Warnf(ctx, "tts cache: read failed, treating as miss: %v", err)
	}

	audio, err := c.inner.Synthesize(ctx, text, languageCode)
	if err != nil {
		return nil, err
	}

	if err := c.rdb.Set(ctx, key, audio, c.ttl).Err(); err != nil {
		c.l.Warnf(ctx, "tts cache: write failed: %v", err)
	}
	return audio, nil
}

func audioKey(text, languageCode string) string {
	sum := sha256.Sum256([]byte(text + "|" + languageCode))
	return "tts:" + hex.EncodeToString(sum[:])
}
