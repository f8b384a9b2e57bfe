package server

import (
	"log/slog"
	"net/http"
)

// handleAdminReset wipes territories, history, scores and live trace
// sessions, then tells every connected client to start over.
func handleAdminReset(logger *slog.Logger, broker *Broker, sessions *Sessions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := adminFrom(r)

		if err := worldStore(r).ResetWorld(r.Context()); err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		sessions.Clear()

		logger.Info("world reset", "admin", sess.Email)
		broker.Publish(SSEEvent{Type: "world_reset"})
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func handleAdminPlayers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		players, err := worldStore(r).ListPlayers(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, PlayersResponse{Players: toOnlinePlayers(players)})
	}
}

func toOnlinePlayers(players []PlayerRecord) []OnlinePlayer {
	out := make([]OnlinePlayer, 0, len(players))
	for _, p := range players {
		out = append(out, OnlinePlayer{
			ID:    p.ID,
			Name:  p.Name,
			Team:  string(p.Team),
			Score: p.Score,
		})
	}
	return out
}
