package http

import (
	"github.com/gin-gonic/gin"

	"video-tutor/internal/middleware"
)

// RegisterRoutes maps HTTP verbs and paths to Handler methods. The ask
// routes sit behind the rate limiter since each miss costs completion
// tokens; read-only routes do not.
func RegisterRoutes(rg *gin.RouterGroup, h Handler, mw middleware.Middleware) {
	t := rg.Group("/tutor")
	{
		t.POST("/ask", mw.RateLimit(), h.Ask)
		t.POST("/ask/stream", mw.RateLimit(), h.AskStream)
		t.GET("/ws", h.AskWS)
		t.POST("/image", mw.RateLimit(), h.AttachImage)
		t.POST("/transcribe", mw.RateLimit(), h.Transcribe)
		t.POST("/speak", mw.RateLimit(), h.Speak)
	}

	s := rg.Group("/sessions")
	{
		s.GET("", h.SessionList)
		s.GET("/:user_id", h.SessionDetail)
		s.DELETE("/:user_id", h.SessionEnd)
	}

	cache := rg.Group("/cache")
	{
		cache.GET("/stats", h.CacheStats)
		cache.POST("/clear", h.CacheClear)
	}

	lessons := rg.Group("/lessons")
	{
		lessons.GET("", h.LessonList)
		lessons.GET("/:id", h.LessonDetail)
	}
}
