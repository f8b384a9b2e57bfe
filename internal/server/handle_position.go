package server

import (
	"log/slog"
	"net/http"
	"time"

	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/playterritory/conquest/internal/game"
	"github.com/playterritory/conquest/internal/geo"
)

// wsCommand is a client frame on the position socket.
type wsCommand struct {
	Type string  `json:"type"` // start | position | stop
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

// wsReply is a server frame on the position socket.
type wsReply struct {
	Type        string          `json:"type"` // trace | loop_closed | error
	TracePoints int             `json:"tracePoints,omitempty"`
	Tracing     bool            `json:"tracing"`
	Territory   *game.Territory `json:"territory,omitempty"`
	Error       string          `json:"error,omitempty"`
}

// handleWSPosition is the primary position ingest: a long-lived socket
// feeding one player's tracker. Closures run the conquest pipeline inline so
// the player gets their loop_closed frame on the same connection.
func handleWSPosition(logger *slog.Logger, sessions *Sessions, presence Presence, broker *Broker, ttl time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get("token")
		if token == "" {
			writeError(w, http.StatusUnauthorized, "token query parameter required")
			return
		}
		store := worldStore(r)
		sess, err := store.PlayerFromToken(r.Context(), token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid session token")
			return
		}

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			InsecureSkipVerify: true,
		})
		if err != nil {
			logger.Error("websocket accept failed", "error", err)
			return
		}
		defer conn.CloseNow()

		ctx := r.Context()
		session := sessions.Get(sess.PlayerID)

		// A dropped connection ends the trace; archived paths survive in
		// the session for the next connection.
		defer session.Do(func(tr *game.Tracker) {
			if tr.Active() {
				tr.Stop()
			}
		})

		for {
			var cmd wsCommand
			if err := wsjson.Read(ctx, conn, &cmd); err != nil {
				logger.Debug("websocket read ended", "player_id", sess.PlayerID, "error", err)
				return
			}

			var reply wsReply
			switch cmd.Type {
			case "start":
				session.Do(func(tr *game.Tracker) {
					tr.Start(&geo.Point{Lat: cmd.Lat, Lng: cmd.Lng})
					reply = wsReply{Type: "trace", TracePoints: len(tr.Trace()), Tracing: true}
				})

			case "stop":
				session.Do(func(tr *game.Tracker) {
					tr.Stop()
					reply = wsReply{Type: "trace"}
				})

			case "position":
				p := geo.Point{Lat: cmd.Lat, Lng: cmd.Lng}
				if err := presence.Set(ctx, sess.PlayerID, p); err != nil {
					logger.Debug("presence update failed", "player_id", sess.PlayerID, "error", err)
				}

				var closure *game.Closure
				session.Do(func(tr *game.Tracker) {
					closure = tr.Feed(p)
					reply = wsReply{Type: "trace", TracePoints: len(tr.Trace()), Tracing: tr.Active()}
				})
				if closure != nil {
					territory, err := applyClosure(ctx, logger, store, broker, closure, sess, ttl)
					if err != nil {
						logger.Error("applying closure", "player_id", sess.PlayerID, "error", err)
						reply = wsReply{Type: "error", Tracing: true, Error: "territory could not be saved"}
					} else if territory != nil {
						reply = wsReply{Type: "loop_closed", TracePoints: 1, Tracing: true, Territory: territory}
					}
				}

			default:
				reply = wsReply{Type: "error", Error: "unknown command type"}
			}

			if err := wsjson.Write(ctx, conn, reply); err != nil {
				logger.Debug("websocket write failed", "player_id", sess.PlayerID, "error", err)
				return
			}
		}
	}
}
