package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/playterritory/conquest/internal/game"
	"github.com/playterritory/conquest/internal/geo"
)

type TraceStartRequest struct {
	Position *geo.Point `json:"position,omitempty"`
}

type TraceStatusResponse struct {
	Tracing     bool          `json:"tracing"`
	TracePoints int           `json:"tracePoints"`
	Paths       [][]geo.Point `json:"paths"`
}

type PositionRequest struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type PositionResponse struct {
	Accepted    bool            `json:"accepted"`
	TracePoints int             `json:"tracePoints"`
	Territory   *game.Territory `json:"territory,omitempty"`
}

func handleTraceStart(sessions *Sessions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := playerFromRequest(r)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or missing session token")
			return
		}

		var req TraceStartRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		var resp TraceStatusResponse
		sessions.Get(sess.PlayerID).Do(func(tr *game.Tracker) {
			tr.Start(req.Position)
			resp = traceStatus(tr)
		})
		writeJSON(w, http.StatusOK, resp)
	}
}

func handleTraceStop(sessions *Sessions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := playerFromRequest(r)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or missing session token")
			return
		}

		var resp TraceStatusResponse
		sessions.Get(sess.PlayerID).Do(func(tr *game.Tracker) {
			tr.Stop()
			resp = traceStatus(tr)
		})
		writeJSON(w, http.StatusOK, resp)
	}
}

// handlePosition is the REST fallback for clients without a usable websocket.
// One position per request; a closure runs the full conquest pipeline before
// replying.
func handlePosition(logger *slog.Logger, sessions *Sessions, presence Presence, broker *Broker, ttl time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := playerFromRequest(r)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or missing session token")
			return
		}

		var req PositionRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		p := geo.Point{Lat: req.Lat, Lng: req.Lng}

		if err := presence.Set(r.Context(), sess.PlayerID, p); err != nil {
			logger.Debug("presence update failed", "player_id", sess.PlayerID, "error", err)
		}

		var closure *game.Closure
		var points int
		sessions.Get(sess.PlayerID).Do(func(tr *game.Tracker) {
			before := len(tr.Trace())
			closure = tr.Feed(p)
			points = len(tr.Trace())
			if closure == nil && points == before {
				points = -1 // rejected as jitter or inactive
			}
		})

		resp := PositionResponse{Accepted: points >= 0, TracePoints: max(points, 0)}
		if closure != nil {
			territory, err := applyClosure(r.Context(), logger, worldStore(r), broker, closure, sess, ttl)
			if err != nil {
				logger.Error("applying closure", "player_id", sess.PlayerID, "error", err)
				writeError(w, http.StatusBadGateway, "territory could not be saved")
				return
			}
			resp.Territory = territory
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func traceStatus(tr *game.Tracker) TraceStatusResponse {
	paths := tr.Paths()
	if paths == nil {
		paths = [][]geo.Point{}
	}
	return TraceStatusResponse{
		Tracing:     tr.Active(),
		TracePoints: len(tr.Trace()),
		Paths:       paths,
	}
}
