package server

import (
	"net/http"
	"time"

	"github.com/playterritory/conquest/internal/game"
	"github.com/playterritory/conquest/internal/geo"
)

type PlayerInfo struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Team  string `json:"team"`
	Score int64  `json:"score"`
}

type GameStateResponse struct {
	Me          PlayerInfo       `json:"me"`
	Territories []game.Territory `json:"territories"`
	Paths       [][]geo.Point    `json:"paths"`
	Tracing     bool             `json:"tracing"`
	Stats       game.Stats       `json:"stats"`
	TTLSeconds  int64            `json:"ttlSeconds"`
}

func handleGameState(sessions *Sessions, ttl time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := playerFromRequest(r)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or missing session token")
			return
		}

		store := worldStore(r)

		territories, err := store.ListActiveTerritories(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		history, err := store.ListConquests(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		var score int64
		players, err := store.ListPlayers(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		for _, p := range players {
			if p.ID == sess.PlayerID {
				score = p.Score
				break
			}
		}

		var paths [][]geo.Point
		var tracing bool
		sessions.Get(sess.PlayerID).Do(func(tr *game.Tracker) {
			paths = tr.Paths()
			tracing = tr.Active()
		})
		if paths == nil {
			paths = [][]geo.Point{}
		}

		writeJSON(w, http.StatusOK, GameStateResponse{
			Me: PlayerInfo{
				ID:    sess.PlayerID,
				Name:  sess.Name,
				Team:  string(sess.Team),
				Score: score,
			},
			Territories: territories,
			Paths:       paths,
			Tracing:     tracing,
			Stats:       game.ComputeStats(territories, history),
			TTLSeconds:  int64(ttl / time.Second),
		})
	}
}
