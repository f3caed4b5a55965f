package usecase

import (
	"time"

	"video-tutor/internal/cache"
	"video-tutor/internal/lesson"
	"video-tutor/internal/session"
	"video-tutor/internal/tutor"
	pkgLog "video-tutor/pkg/log"
	"video-tutor/pkg/openai"
	"video-tutor/pkg/retry"
	"video-tutor/pkg/speech"
	"video-tutor/pkg/vision"
)

// Config tunes the orchestrator.
type Config struct {
	CacheTTL        time.Duration // per-answer cache lifetime; zero uses the cache default
	SessionMaxAge   time.Duration // idle age swept by SweepInactiveSessions
	MaxImageContext int           // auxiliary snippets kept per session
}

type implUseCase struct {
	l        pkgLog.Logger
	llm      openai.IOpenAI
	vision   vision.IVision
	stt      speech.ISTT
	tts      speech.ITTS
	cache    *cache.Cache
	sessions *session.Store
	catalog  *lesson.Catalog
	recorder tutor.Recorder
	policy   *retry.Policy
	cfg      Config
}

// New creates a new tutor UseCase instance. vision, stt, tts and recorder
// are optional; the corresponding operations report themselves unavailable
// when nil.
func New(
	l pkgLog.Logger,
	llm openai.IOpenAI,
	visionClient vision.IVision,
	stt speech.ISTT,
	tts speech.ITTS,
	responseCache *cache.Cache,
	sessions *session.Store,
	catalog *lesson.Catalog,
	recorder tutor.Recorder,
	policy *retry.Policy,
	cfg Config,
) *implUseCase {
	if cfg.SessionMaxAge <= 0 {
		cfg.SessionMaxAge = time.Hour
	}
	if cfg.MaxImageContext <= 0 {
		cfg.MaxImageContext = 5
	}
	return &implUseCase{
		l:        l,
		llm:      llm,
		vision:   visionClient,
		stt:      stt,
		tts:      tts,
		cache:    responseCache,
		sessions: sessions,
		catalog:  catalog,
		recorder: recorder,
		policy:   policy,
		cfg:      cfg,
	}
}
