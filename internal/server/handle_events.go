package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"nhooyr.io/websocket"

	"github.com/playperu/polis/internal/multiplayer"
)

// feed subscribes to a session and yields the current snapshot first.
func feed(ctx context.Context, sessions *multiplayer.Manager, broker *Broker, id string) (first []byte, ch chan []byte, stop func(), err error) {
	ch = broker.Subscribe(id)
	stop = func() { broker.Unsubscribe(id, ch) }

	s, err := sessions.Get(ctx, id)
	if err != nil {
		stop()
		return nil, nil, nil, err
	}
	first, _ = json.Marshal(SessionEvent{Type: "session", Session: s})
	return first, ch, stop, nil
}

// handleSessionEvents streams session snapshots as Server-Sent Events.
func handleSessionEvents(sessions *multiplayer.Manager, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			writeError(w, http.StatusInternalServerError, "streaming not supported")
			return
		}

		first, ch, stop, err := feed(r.Context(), sessions, broker, chi.URLParam(r, "sessionID"))
		if err != nil {
			writeErr(w, err)
			return
		}
		defer stop()

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("X-Accel-Buffering", "no")
		fmt.Fprintf(w, "event: session\ndata: %s\n\n", first)
		flusher.Flush()

		ping := time.NewTicker(30 * time.Second)
		defer ping.Stop()

		for {
			select {
			case <-r.Context().Done():
				return
			case data := <-ch:
				fmt.Fprintf(w, "event: session\ndata: %s\n\n", data)
				flusher.Flush()
			case <-ping.C:
				fmt.Fprintf(w, ": ping\n\n")
				flusher.Flush()
			}
		}
	}
}

// handleSessionSocket pushes session snapshots over a websocket. Client
// messages are ignored; the feed ends when the client closes.
func handleSessionSocket(logger *slog.Logger, sessions *multiplayer.Manager, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "sessionID")
		first, ch, stop, err := feed(r.Context(), sessions, broker, id)
		if err != nil {
			writeErr(w, err)
			return
		}
		defer stop()

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			InsecureSkipVerify: true,
		})
		if err != nil {
			logger.Error("websocket accept failed", "session_id", id, "error", err)
			return
		}
		defer conn.CloseNow()

		ctx := conn.CloseRead(r.Context())
		if err := writeSocket(ctx, conn, first); err != nil {
			logger.Debug("websocket write failed", "session_id", id, "error", err)
			return
		}
		for {
			select {
			case <-ctx.Done():
				conn.Close(websocket.StatusNormalClosure, "")
				return
			case data := <-ch:
				if err := writeSocket(ctx, conn, data); err != nil {
					logger.Debug("websocket write failed", "session_id", id, "error", err)
					return
				}
			}
		}
	}
}

func writeSocket(ctx context.Context, conn *websocket.Conn, data []byte) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return conn.Write(ctx, websocket.MessageText, data)
}
