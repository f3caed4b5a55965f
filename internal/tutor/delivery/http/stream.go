package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"video-tutor/pkg/response"
)

// AskStream godoc
// @Summary     Ask a question (streaming)
// @Description Answers a student question as a server-sent event stream of token events, ending with a done or error event.
// @Tags        Tutor
// @Accept      json
// @Produce     text/event-stream
// @Param       body body askReq true "Question"
// @Success     200 {string} string "SSE stream"
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     429 {object} response.Resp "Too Many Requests"
// @Router      /api/v1/tutor/ask/stream [POST]
func (h *handler) AskStream(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processAskReq(c)
	if err != nil {
		response.BadRequest(c, err)
		return
	}

	events, err := h.uc.AnswerStream(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.AnswerStream: %v", err)
		h.respondError(c, err)
		return
	}

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		response.InternalError(c, fmt.Errorf("streaming unsupported"))
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.WriteHeader(http.StatusOK)
	flusher.Flush()

	// The producer closes the channel after the terminal event, or without
	// one when the client goes away and ctx is cancelled.
	for ev := range events {
		payload, mErr := json.Marshal(ev)
		if mErr != nil {
			h.l.Errorf(ctx, "marshal stream event: %v", mErr)
			return
		}
		if _, wErr := fmt.Fprintf(c.Writer, "data: %s\n\n", payload); wErr != nil {
			return
		}
		flusher.Flush()
	}
}
