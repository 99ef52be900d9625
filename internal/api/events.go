package api

import (
	"net/http"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// streamEvents pushes session state-change events over a websocket. The
// presentation layer subscribes here instead of polling; timer ticks,
// warnings and the final submitted event all arrive as JSON frames.
//
//	@Summary  Stream session events
//	@Param    sessionID path string true "session id"
//	@Router   /sessions/{sessionID}/events [get]
func (h *Handler) streamEvents(w http.ResponseWriter, r *http.Request) {
	sess, err := h.flow.Session(r.PathValue("sessionID"))
	if h.handleFlowError(w, err, "session") {
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	events, unsubscribe := sess.Subscribe()
	defer unsubscribe()

	h.logger.Info("event stream connected", "session_id", sess.ID())

	// Reader goroutine: we never expect client frames, but reading is the
	// only way to notice the peer going away.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-closed:
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if err := conn.WriteJSON(ev); err != nil {
				h.logger.Info("event stream closed", "session_id", sess.ID(), "error", err)
				return
			}
		}
	}
}
