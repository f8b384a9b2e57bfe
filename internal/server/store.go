package server

import (
	"context"
	"errors"
	"time"

	"github.com/playterritory/conquest/internal/game"
)

var ErrNotFound = errors.New("not found")

// PlayerRecord is a player row with the score of record.
type PlayerRecord struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Team     game.Team `json:"team"`
	Score    int64     `json:"score"`
	JoinedAt string    `json:"joinedAt"`
}

// Store is the persistence contract the handlers and the sweeper run on.
// Territory writes are designed for racing writers: CreateTerritory inserts,
// TransitionStatus flips active rows only and reports whether it applied, and
// AdjustScore clamps balances at zero.
type Store interface {
	JoinGame(ctx context.Context, name string, team game.Team) (PlayerRecord, string, error)
	PlayerFromToken(ctx context.Context, token string) (playerSession, error)
	ListPlayers(ctx context.Context) ([]PlayerRecord, error)
	Leaderboard(ctx context.Context) ([]PlayerRecord, error)
	AdjustScore(ctx context.Context, playerID string, delta int64) error

	ListActiveTerritories(ctx context.Context) ([]game.Territory, error)
	ListTerritories(ctx context.Context) ([]game.Territory, error)
	CreateTerritory(ctx context.Context, t game.Territory) error
	TransitionStatus(ctx context.Context, territoryID string, to game.Status, rec game.ConquestRecord) (bool, error)
	ListConquests(ctx context.Context) ([]game.ConquestRecord, error)
	ListExpiredTerritories(ctx context.Context, now time.Time) ([]game.Territory, error)

	AdminByEmail(ctx context.Context, email string) (string, string, error)
	CreateAdminSession(ctx context.Context, adminID string) (string, error)
	AdminFromSession(ctx context.Context, sessionID string) (adminSession, error)
	DeleteAdminSession(ctx context.Context, sessionID string) error
	ResetWorld(ctx context.Context) error
}
