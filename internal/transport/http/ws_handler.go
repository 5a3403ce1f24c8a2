package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"image-quiz-service/internal/app"
	"image-quiz-service/internal/domain"
)

// writeWait bounds a single frame write. A client that stops reading loses its
// connection instead of stalling the session behind it.
const writeWait = 10 * time.Second

// WSHandler gives every WebSocket connection its own private quiz session.
type WSHandler struct {
	service   *app.QuizService
	upgrader  websocket.Upgrader
	log       *zap.Logger
	writeWait time.Duration
}

func NewWSHandler(service *app.QuizService, log *zap.Logger) *WSHandler {
	return &WSHandler{
		service:   service,
		log:       log,
		writeWait: writeWait,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type choosePayload struct {
	Label string `json:"label"`
}

type keyPayload struct {
	Key string `json:"key"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// connSink forwards session commands to the connection writer. Emit never
// blocks past the writer's lifetime, so a dead connection cannot wedge a session.
type connSink struct {
	send       chan outboundMessage[any]
	done       <-chan struct{}
	writerDone <-chan struct{}
}

func (s *connSink) Emit(cmd domain.Command) {
	s.reply(outboundMessage[any]{Type: string(cmd.Type), Payload: cmd.Payload})
}

func (s *connSink) reply(msg outboundMessage[any]) {
	select {
	case s.send <- msg:
	case <-s.done:
	case <-s.writerDone:
	}
}

// ServeWS upgrades HTTP requests to websockets and wires them into a quiz session.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("ws upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	send := make(chan outboundMessage[any], 32)
	done := make(chan struct{})
	writerDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		for {
			select {
			case msg := <-send:
				_ = conn.SetWriteDeadline(time.Now().Add(h.writeWait))
				if err := conn.WriteJSON(msg); err != nil {
					h.log.Debug("ws write error", zap.Error(err))
					return
				}
			case <-done:
				return
			}
		}
	}()

	sink := &connSink{send: send, done: done, writerDone: writerDone}
	session := h.service.StartSession(r.Context(), sink)
	log := h.log.With(zap.String("session", session.ID()))
	log.Info("ws session opened", zap.String("remote", r.RemoteAddr))
	sink.reply(outboundMessage[any]{Type: "session", Payload: session.Snapshot()})

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		switch inbound.Type {
		case "choose":
			var payload choosePayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				sink.reply(outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "invalid choose payload"}})
				continue
			}
			session.SubmitAnswer(domain.Label(payload.Label))
		case "key":
			var payload keyPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				sink.reply(outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "invalid key payload"}})
				continue
			}
			session.PressKey(payload.Key)
		case "skip":
			session.Skip()
		case "restart":
			session.Restart()
		default:
			sink.reply(outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "unsupported message type"}})
		}
	}

	// Stop the session before the writer so no timer emits into a closed pipe.
	h.service.EndSession(session.ID())
	close(done)
	<-writerDone
	log.Info("ws session closed")
}
