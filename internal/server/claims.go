package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/playterritory/conquest/internal/game"
)

// applyClosure lands a closed loop: resolve against the current active set,
// persist the new territory, flip conquered ones, settle scores, broadcast.
// Conquests race with the expiry sweeper and with other closures, so each
// transition is confirmed against the store before its deduction and event
// fire. Returns the created territory, or nil when the claim was rejected.
func applyClosure(ctx context.Context, logger *slog.Logger, store Store, broker *Broker,
	closure *game.Closure, sess playerSession, ttl time.Duration) (*game.Territory, error) {

	existing, err := store.ListActiveTerritories(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing active territories: %w", err)
	}

	claim := game.Claim{Ring: closure.Ring, Team: sess.Team, PlayerID: sess.PlayerID}
	res := game.Resolve(claim, existing, time.Now().UTC(), ttl)
	if res.Territory == nil {
		return nil, nil
	}

	if err := store.CreateTerritory(ctx, *res.Territory); err != nil {
		return nil, fmt.Errorf("creating territory: %w", err)
	}

	for _, rec := range res.Conquests {
		applied, err := store.TransitionStatus(ctx, rec.TerritoryID, game.StatusLost, rec)
		if err != nil {
			return nil, fmt.Errorf("conquering territory %s: %w", rec.TerritoryID, err)
		}
		if !applied {
			// Already lost or expired under a concurrent writer.
			continue
		}
		if err := store.AdjustScore(ctx, rec.PlayerID, -game.ScorePoints(rec.AreaDeltaKm2)); err != nil {
			logger.Error("deducting score", "player_id", rec.PlayerID, "error", err)
		}
		broker.Publish(SSEEvent{
			Type:        "territory_lost",
			TerritoryID: rec.TerritoryID,
			Team:        string(rec.ConqueredTeam),
			AreaKm2:     rec.AreaDeltaKm2,
		})
	}

	if err := store.AdjustScore(ctx, sess.PlayerID, game.ScorePoints(res.Territory.AreaKm2)); err != nil {
		logger.Error("crediting score", "player_id", sess.PlayerID, "error", err)
	}

	broker.Publish(SSEEvent{
		Type:        "territory_created",
		TerritoryID: res.Territory.ID,
		Team:        string(res.Territory.Team),
		PlayerName:  sess.Name,
		AreaKm2:     res.Territory.AreaKm2,
	})
	return res.Territory, nil
}
