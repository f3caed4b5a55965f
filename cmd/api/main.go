package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"video-tutor/config"
	_ "video-tutor/docs" // Swagger docs
	"video-tutor/internal/cache"
	"video-tutor/internal/convlog"
	"video-tutor/internal/httpserver"
	"video-tutor/internal/lesson"
	"video-tutor/internal/middleware"
	"video-tutor/internal/session"
	"video-tutor/internal/tutor"
	tutorHTTP "video-tutor/internal/tutor/delivery/http"
	"video-tutor/internal/tutor/usecase"
	"video-tutor/pkg/log"
	"video-tutor/pkg/openai"
	"video-tutor/pkg/retry"
	"video-tutor/pkg/speech"
	"video-tutor/pkg/vision"
)

// @title       Video Tutor API
// @description Conversational AI tutor for video lessons: cached answers, streaming, image understanding, and speech.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Video Tutor...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. External clients
	llm, err := openai.New(openai.Config{
		APIKey:      cfg.OpenAI.APIKey,
		Model:       cfg.OpenAI.Model,
		BaseURL:     cfg.OpenAI.BaseURL,
		Temperature: cfg.OpenAI.Temperature,
		MaxTokens:   cfg.OpenAI.MaxTokens,
		TimeoutSec:  int(cfg.OpenAI.Timeout.Seconds()),
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize completion client: ", err)
		return
	}

	visionClient, err := vision.New(vision.Config{
		APIKey:     cfg.OpenAI.APIKey,
		Model:      cfg.OpenAI.VisionModel,
		BaseURL:    cfg.OpenAI.BaseURL,
		TimeoutSec: int(cfg.OpenAI.Timeout.Seconds()),
	})
	if err != nil {
		logger.Warnf(ctx, "Vision not available (optional): %v", err)
	}

	stt := speech.NewSTT(speech.STTConfig{})
	var tts speech.ITTS = speech.NewTTS(speech.TTSConfig{})
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		tts = speech.NewCachedTTS(logger, tts, rdb, cfg.Redis.TTL)
		logger.Infof(ctx, "TTS audio cache enabled via Redis at %s", cfg.Redis.Addr)
	}

	// 4. Conversation log (optional)
	var recorder tutor.Recorder
	if cfg.ConvLog.Path != "" {
		convLogger, cErr := convlog.New(logger, cfg.ConvLog.Path)
		if cErr != nil {
			logger.Warnf(ctx, "Conversation log not available (optional): %v", cErr)
		} else {
			defer convLogger.Close()
			recorder = convLogger
		}
	}

	// 5. Engine state
	responseCache := cache.New(logger, cfg.Cache.TTL, cfg.Cache.MaxSizeBytes)
	sessions := session.NewStore(logger)
	catalog := lesson.DefaultCatalog()
	policy := retry.NewPolicy(
		cfg.Retry.MaxRetries,
		cfg.Retry.BaseDelay,
		cfg.Retry.MaxDelay,
		cfg.Retry.BackoffMultiplier,
	)

	// 6. Tutor use case and delivery
	var visionDep vision.IVision
	if visionClient != nil {
		visionDep = visionClient
	}
	tutorUC := usecase.New(logger, llm, visionDep, stt, tts, responseCache, sessions, catalog, recorder, policy, usecase.Config{
		CacheTTL:        cfg.Cache.TTL,
		SessionMaxAge:   cfg.Session.MaxAge,
		MaxImageContext: cfg.Session.MaxImageContext,
	})
	tutorHandler := tutorHTTP.New(logger, tutorUC)
	mw := middleware.New(logger, cfg.RateLimit)

	// 7. Session sweeper
	sweeper := session.NewSweeper(sessions, cfg.Session.MaxAge, cfg.Session.SweepInterval)
	go sweeper.Run(ctx)

	// 8. HTTP server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:       logger,
		Port:         cfg.HTTPServer.Port,
		Mode:         cfg.HTTPServer.Mode,
		Environment:  cfg.Environment.Name,
		Middleware:   mw,
		TutorHandler: tutorHandler,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 9. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
