package server

import (
	"net/http"

	"github.com/playterritory/conquest/internal/game"
	"github.com/playterritory/conquest/internal/geo"
)

type StatsResponse struct {
	Stats game.Stats `json:"stats"`
	// CoverageKm2 is each team's active holdings with overlapping rings
	// counted once, for the HUD's combined-area readout.
	CoverageKm2 map[string]float64 `json:"coverageKm2"`
}

func handleStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
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

		rings := make(map[game.Team][][]geo.Point)
		for _, t := range territories {
			rings[t.Team] = append(rings[t.Team], t.Ring)
		}
		coverage := make(map[string]float64, len(game.Teams()))
		for _, team := range game.Teams() {
			coverage[string(team)] = geo.UnionArea(rings[team])
		}

		writeJSON(w, http.StatusOK, StatsResponse{
			Stats:       game.ComputeStats(territories, history),
			CoverageKm2: coverage,
		})
	}
}
