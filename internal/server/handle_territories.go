package server

import (
	"net/http"

	"github.com/playterritory/conquest/internal/game"
)

type TerritoriesResponse struct {
	Territories []game.Territory `json:"territories"`
}

func handleTerritories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		territories, err := worldStore(r).ListActiveTerritories(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, TerritoriesResponse{Territories: territories})
	}
}
