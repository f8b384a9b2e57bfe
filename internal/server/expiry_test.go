package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/playterritory/conquest/internal/game"
)

func TestSweepExpired(t *testing.T) {
	store := setupStore(t)
	broker := NewBroker()
	logger := slog.New(slog.DiscardHandler)
	ctx := context.Background()
	now := time.Now().UTC()

	player, _, _ := store.JoinGame(ctx, "Maria", game.TeamGreen)
	store.AdjustScore(ctx, player.ID, 5000)

	overdue := game.NewTerritory(testRing(), game.TeamGreen, player.ID, now.Add(-2*time.Hour), time.Hour)
	fresh := game.NewTerritory(testRing(), game.TeamGreen, player.ID, now, time.Hour)
	for _, territory := range []game.Territory{overdue, fresh} {
		if err := store.CreateTerritory(ctx, territory); err != nil {
			t.Fatalf("creating territory: %v", err)
		}
	}

	events := broker.Subscribe()
	defer broker.Unsubscribe(events)

	if err := sweepExpired(ctx, logger, store, broker, now); err != nil {
		t.Fatalf("sweeping: %v", err)
	}

	// The overdue territory expired, the fresh one survived.
	active, _ := store.ListActiveTerritories(ctx)
	if len(active) != 1 || active[0].ID != fresh.ID {
		t.Fatalf("expected only the fresh territory active, got %+v", active)
	}

	history, _ := store.ListConquests(ctx)
	if len(history) != 1 || !history[0].Expired() {
		t.Fatalf("expected one expiry history row, got %+v", history)
	}
	if history[0].TerritoryID != overdue.ID {
		t.Errorf("history territory = %s, want %s", history[0].TerritoryID, overdue.ID)
	}

	players, _ := store.ListPlayers(ctx)
	want := 5000 - game.ScorePoints(overdue.AreaKm2)
	if players[0].Score != want {
		t.Errorf("score = %d, want %d", players[0].Score, want)
	}

	select {
	case data := <-events:
		var ev SSEEvent
		json.Unmarshal(data, &ev)
		if ev.Type != "territory_expired" || ev.TerritoryID != overdue.ID {
			t.Errorf("unexpected event %+v", ev)
		}
	default:
		t.Error("expected a territory_expired event")
	}

	// Replaying the sweep deducts nothing further.
	if err := sweepExpired(ctx, logger, store, broker, now); err != nil {
		t.Fatalf("second sweep: %v", err)
	}
	players, _ = store.ListPlayers(ctx)
	if players[0].Score != want {
		t.Errorf("second sweep changed score to %d", players[0].Score)
	}
	history, _ = store.ListConquests(ctx)
	if len(history) != 1 {
		t.Errorf("second sweep added history rows: %d", len(history))
	}
}
