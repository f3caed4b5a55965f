package middleware

import (
	"video-tutor/config"
	"video-tutor/pkg/log"
)

type Middleware struct {
	l       log.Logger
	config  config.RateLimitConfig
	clients *clientLimiters
}

func New(l log.Logger, cfg config.RateLimitConfig) Middleware {
	if cfg.RequestsPerMin <= 0 {
		cfg.RequestsPerMin = 60
	}
	return Middleware{
		l:       l,
		config:  cfg,
		clients: newClientLimiters(cfg.RequestsPerMin),
	}
}
