package server

import (
	"net/http"
	"strings"

	"github.com/playterritory/conquest/internal/game"
)

type JoinRequest struct {
	Name string `json:"name"`
	Team string `json:"team"`
}

type JoinResponse struct {
	Token    string `json:"token"`
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
	Team     string `json:"team"`
}

func handleJoin(broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req JoinRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		req.Name = strings.TrimSpace(req.Name)
		if req.Name == "" {
			writeError(w, http.StatusBadRequest, "name is required")
			return
		}
		team := game.NormalizeTeam(req.Team)

		player, token, err := worldStore(r).JoinGame(r.Context(), req.Name, team)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		broker.Publish(SSEEvent{
			Type:       "player_joined",
			Team:       string(team),
			PlayerName: req.Name,
		})

		writeJSON(w, http.StatusOK, JoinResponse{
			Token:    token,
			PlayerID: player.ID,
			Name:     player.Name,
			Team:     string(player.Team),
		})
	}
}
