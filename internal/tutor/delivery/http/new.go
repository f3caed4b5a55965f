package http

import (
	"github.com/gin-gonic/gin"

	"video-tutor/internal/tutor"
	"video-tutor/pkg/log"
)

// Handler is the public interface for the tutor HTTP delivery layer.
type Handler interface {
	Ask(c *gin.Context)
	AskStream(c *gin.Context)
	AskWS(c *gin.Context)
	AttachImage(c *gin.Context)
	Transcribe(c *gin.Context)
	Speak(c *gin.Context)
	SessionList(c *gin.Context)
	SessionDetail(c *gin.Context)
	SessionEnd(c *gin.Context)
	CacheStats(c *gin.Context)
	CacheClear(c *gin.Context)
	LessonList(c *gin.Context)
	LessonDetail(c *gin.Context)
}

type handler struct {
	l  log.Logger
	uc tutor.UseCase
}

// New creates a new HTTP handler for the tutor domain.
func New(l log.Logger, uc tutor.UseCase) *handler {
	return &handler{
		l:  l,
		uc: uc,
	}
}
