package server

import (
	"net/http"

	"github.com/playterritory/conquest/internal/geo"
)

type OnlinePlayer struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Team     string     `json:"team"`
	Score    int64      `json:"score"`
	Position *geo.Point `json:"position,omitempty"`
}

type PlayersResponse struct {
	Players []OnlinePlayer `json:"players"`
}

func handlePlayers(presence Presence) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		players, err := worldStore(r).ListPlayers(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		positions, err := presence.All(r.Context())
		if err != nil {
			// Presence is best effort; serve the roster without positions.
			positions = nil
		}

		resp := PlayersResponse{Players: []OnlinePlayer{}}
		for _, p := range players {
			op := OnlinePlayer{
				ID:    p.ID,
				Name:  p.Name,
				Team:  string(p.Team),
				Score: p.Score,
			}
			if pos, ok := positions[p.ID]; ok {
				posCopy := pos
				op.Position = &posCopy
			}
			resp.Players = append(resp.Players, op)
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
