package game

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/playterritory/conquest/internal/geo"
)

// Status is a territory's lifecycle tag. Active territories count toward
// their team's holdings; expired and lost are terminal.
type Status string

const (
	StatusActive  Status = "active"
	StatusExpired Status = "expired"
	StatusLost    Status = "lost"
)

// Territory is a claimed polygon. Ring, team, owner and area never change
// after creation; only Status transitions, exactly once, away from active.
type Territory struct {
	ID        string      `json:"id"`
	Team      Team        `json:"team"`
	PlayerID  string      `json:"player_id"`
	Ring      []geo.Point `json:"ring"`
	AreaKm2   float64     `json:"area_km2"`
	Status    Status      `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	ExpiresAt time.Time   `json:"expires_at"`
}

// ConquestRecord is an append-only history entry written once per status
// transition. ConqueringTeam holds either a team tag or ExpiredMarker, so it
// stays a plain string. PlayerID is the losing owner, the account whose score
// the transition deducts from.
type ConquestRecord struct {
	ID             string    `json:"id"`
	TerritoryID    string    `json:"territory_id"`
	ConqueringTeam string    `json:"conquering_team"`
	ConqueredTeam  Team      `json:"conquered_team"`
	AreaDeltaKm2   float64   `json:"area_delta_km2"`
	PlayerID       string    `json:"player_id"`
	CreatedAt      time.Time `json:"created_at"`
}

// Expired reports whether the record marks a time-out rather than a capture.
func (r ConquestRecord) Expired() bool {
	return r.ConqueringTeam == ExpiredMarker
}

// NewTerritory builds an active territory from a closed ring.
func NewTerritory(ring []geo.Point, team Team, playerID string, now time.Time, ttl time.Duration) Territory {
	ring = geo.CloseRing(ring)
	return Territory{
		ID:        uuid.NewString(),
		Team:      team,
		PlayerID:  playerID,
		Ring:      ring,
		AreaKm2:   geo.RingArea(ring),
		Status:    StatusActive,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// ScorePoints converts an area in km² to score points at 1000 points per km²,
// rounded to the nearest point.
func ScorePoints(areaKm2 float64) int64 {
	return int64(math.Round(areaKm2 * 1000))
}
