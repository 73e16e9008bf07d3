package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/go-chi/chi/v5"

	practicesession "github.com/remaimber-it/flashcards/internal/domain/practice_session"
	"github.com/remaimber-it/flashcards/internal/service"
)

const socketWriteTimeout = 5 * time.Second

// socketMessage is a command sent by the client.
type socketMessage struct {
	Type   string `json:"type"` // submit, advance or restart
	Answer string `json:"answer,omitempty"`
}

// socketEvent is pushed to the client after connecting and after every command.
type socketEvent struct {
	Type     string                    `json:"type"` // snapshot or error
	Snapshot *practicesession.Snapshot `json:"snapshot,omitempty"`
	Accepted bool                      `json:"accepted"`
	Error    string                    `json:"error,omitempty"`
}

// sessionSocket drives a session over a websocket. The connection follows
// the session across restarts.
func (h *Handler) sessionSocket(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	snap, err := h.quiz.Session(id)
	if h.handleServiceError(w, err, "session") {
		return
	}

	ws, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: originPatterns(h.allowedOrigins),
	})
	if err != nil {
		h.logger.Error("failed to accept websocket", "error", err, "session_id", id)
		return
	}
	defer ws.CloseNow()

	ctx := r.Context()
	if err := h.writeEvent(ctx, ws, socketEvent{Type: "snapshot", Snapshot: &snap, Accepted: true}); err != nil {
		return
	}

	for {
		var msg socketMessage
		if err := wsjson.Read(ctx, ws, &msg); err != nil {
			if websocket.CloseStatus(err) != -1 {
				h.logger.Debug("websocket closed by client", "session_id", id)
			} else {
				h.logger.Warn("websocket read error", "error", err, "session_id", id)
			}
			return
		}

		snap, accepted, err := h.dispatch(ctx, id, msg)
		if err != nil {
			if werr := h.writeEvent(ctx, ws, socketEvent{Type: "error", Error: err.Error()}); werr != nil {
				return
			}
			if errors.Is(err, service.ErrSessionNotFound) {
				ws.Close(websocket.StatusPolicyViolation, "session not found")
				return
			}
			continue
		}

		id = snap.SessionID
		if err := h.writeEvent(ctx, ws, socketEvent{Type: "snapshot", Snapshot: &snap, Accepted: accepted}); err != nil {
			return
		}
	}
}

func (h *Handler) dispatch(ctx context.Context, id string, msg socketMessage) (practicesession.Snapshot, bool, error) {
	switch msg.Type {
	case "submit":
		return h.quiz.Submit(id, msg.Answer)
	case "advance":
		return h.quiz.Advance(ctx, id)
	case "restart":
		snap, err := h.quiz.Restart(ctx, id)
		return snap, err == nil, err
	default:
		return practicesession.Snapshot{}, false, fmt.Errorf("unknown message type %q", msg.Type)
	}
}

func (h *Handler) writeEvent(ctx context.Context, ws *websocket.Conn, ev socketEvent) error {
	ctx, cancel := context.WithTimeout(ctx, socketWriteTimeout)
	defer cancel()

	if err := wsjson.Write(ctx, ws, ev); err != nil {
		h.logger.Debug("websocket write error", "error", err)
		return err
	}
	return nil
}

// originPatterns turns CORS origins into the host patterns websocket.Accept
// matches against: "https://app.example.com:8443" becomes
// "app.example.com:8443" and "*" stays "*". Same-host pages are always
// allowed.
func originPatterns(origins []string) []string {
	patterns := make([]string, 0, len(origins))
	for _, o := range origins {
		if _, host, ok := strings.Cut(o, "://"); ok {
			o = host
		}
		o, _, _ = strings.Cut(o, "/")
		if o != "" {
			patterns = append(patterns, o)
		}
	}
	return patterns
}
