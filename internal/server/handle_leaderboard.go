package server

import "net/http"

type LeaderboardResponse struct {
	Players []PlayerRecord `json:"players"`
}

func handleLeaderboard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		players, err := worldStore(r).Leaderboard(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, LeaderboardResponse{Players: players})
	}
}
