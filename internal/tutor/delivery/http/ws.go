package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"video-tutor/internal/tutor"
)

const wsWriteTimeout = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// The widget is served from the video player's origin, which varies per
	// deployment; access control happens at the gateway.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// AskWS godoc
// @Summary     Ask questions over a WebSocket
// @Description Upgrades to a WebSocket; each incoming question message is answered with a stream of token events followed by a done or error event.
// @Tags        Tutor
// @Success     101 {string} string "Switching Protocols"
// @Router      /api/v1/tutor/ws [GET]
func (h *handler) AskWS(c *gin.Context) {
	ctx := c.Request.Context()

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.l.Errorf(ctx, "websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	for {
		var req askReq
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.l.Warnf(ctx, "websocket read: %v", err)
			}
			return
		}

		if !h.streamOverWS(ctx, conn, req) {
			return
		}
	}
}

// streamOverWS answers one question over the connection. Returns false when
// the connection is no longer usable.
func (h *handler) streamOverWS(ctx context.Context, conn *websocket.Conn, req askReq) bool {
	// Cancelling on return closes the provider stream if the write side dies
	// mid-answer.
	streamCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	events, err := h.uc.AnswerStream(streamCtx, req.toInput())
	if err != nil {
		wErr := writeWS(conn, tutor.StreamEvent{Type: tutor.EventError, Error: err.Error()})
		return wErr == nil
	}

	for ev := range events {
		if err := writeWS(conn, ev); err != nil {
			h.l.Warnf(ctx, "websocket write: %v", err)
			return false
		}
	}
	return true
}

func writeWS(conn *websocket.Conn, ev tutor.StreamEvent) error {
	conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	return conn.WriteJSON(ev)
}
