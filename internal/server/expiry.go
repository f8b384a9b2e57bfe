package server

import (
	"context"
	"log/slog"
	"time"

	"github.com/playterritory/conquest/internal/game"
)

// RunExpirySweeper periodically expires territories past their expiry
// timestamp. It returns when ctx is cancelled.
func RunExpirySweeper(ctx context.Context, logger *slog.Logger, store Store, broker *Broker, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := sweepExpired(ctx, logger, store, broker, time.Now().UTC()); err != nil {
				logger.Error("expiry sweep failed", "error", err)
			}
		}
	}
}

// sweepExpired flips every overdue territory to expired, once. The status
// transition is the idempotency guard: if a conquest beat the sweep to a
// territory, the flip does not apply and neither does the deduction.
func sweepExpired(ctx context.Context, logger *slog.Logger, store Store, broker *Broker, now time.Time) error {
	overdue, err := store.ListExpiredTerritories(ctx, now)
	if err != nil {
		return err
	}

	for _, t := range overdue {
		rec, delta := game.Expire(t, now)
		applied, err := store.TransitionStatus(ctx, t.ID, game.StatusExpired, rec)
		if err != nil {
			return err
		}
		if !applied {
			continue
		}
		if err := store.AdjustScore(ctx, delta.PlayerID, delta.Points); err != nil {
			logger.Error("deducting score on expiry", "player_id", delta.PlayerID, "error", err)
		}
		broker.Publish(SSEEvent{
			Type:        "territory_expired",
			TerritoryID: t.ID,
			Team:        string(t.Team),
			AreaKm2:     t.AreaKm2,
		})
		logger.Info("territory expired", "territory_id", t.ID, "team", t.Team, "area_km2", t.AreaKm2)
	}
	return nil
}
