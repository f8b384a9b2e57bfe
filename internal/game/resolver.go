package game

import (
	"time"

	"github.com/google/uuid"

	"github.com/playterritory/conquest/internal/geo"
)

// Claim is a freshly closed loop waiting to become a territory.
type Claim struct {
	Ring     []geo.Point
	Team     Team
	PlayerID string
}

// ScoreDelta is an advisory score adjustment produced by a resolution.
// Negative deltas are deductions; the store clamps balances at zero.
type ScoreDelta struct {
	PlayerID string
	Points   int64
}

// Resolution is the full outcome of landing one claim on a snapshot of the
// world. Territory is nil when the claim was rejected. Conquests and Deltas
// are advisory until the store's guarded status transitions confirm each
// territory was still active; a stale conquest applies nothing.
type Resolution struct {
	Territory *Territory
	Conquests []ConquestRecord
	Deltas    []ScoreDelta
}

// Resolve lands a claim on a snapshot of existing territories. It is pure:
// it touches no storage and may be re-run on a fresher snapshot.
//
// Every existing active territory of another team whose center lies inside
// the claim ring is conquered: it gets a history record and its owner a
// score deduction. The claimant gains points for the claimed area. Rings
// with fewer than three distinct vertices resolve to nothing.
func Resolve(claim Claim, existing []Territory, now time.Time, ttl time.Duration) Resolution {
	if len(geo.OpenRing(claim.Ring)) < 3 {
		return Resolution{}
	}

	claimed := NewTerritory(claim.Ring, claim.Team, claim.PlayerID, now, ttl)
	res := Resolution{Territory: &claimed}

	lost := make(map[string]int64)
	for _, e := range existing {
		if e.Status != StatusActive || e.Team == claim.Team {
			continue
		}
		center, ok := geo.RingCenter(e.Ring)
		if !ok || !geo.PointInRing(center, claimed.Ring) {
			continue
		}
		res.Conquests = append(res.Conquests, ConquestRecord{
			ID:             uuid.NewString(),
			TerritoryID:    e.ID,
			ConqueringTeam: string(claim.Team),
			ConqueredTeam:  e.Team,
			AreaDeltaKm2:   e.AreaKm2,
			PlayerID:       e.PlayerID,
			CreatedAt:      now,
		})
		lost[e.PlayerID] += ScorePoints(e.AreaKm2)
	}

	res.Deltas = append(res.Deltas, ScoreDelta{
		PlayerID: claim.PlayerID,
		Points:   ScorePoints(claimed.AreaKm2),
	})
	for _, c := range res.Conquests {
		if pts, ok := lost[c.PlayerID]; ok {
			res.Deltas = append(res.Deltas, ScoreDelta{PlayerID: c.PlayerID, Points: -pts})
			delete(lost, c.PlayerID)
		}
	}
	return res
}

// Expire produces the history record and score deduction for a territory
// past its expiry timestamp. The caller pairs it with a guarded status flip
// so a territory expires at most once.
func Expire(t Territory, now time.Time) (ConquestRecord, ScoreDelta) {
	rec := ConquestRecord{
		ID:             uuid.NewString(),
		TerritoryID:    t.ID,
		ConqueringTeam: ExpiredMarker,
		ConqueredTeam:  t.Team,
		AreaDeltaKm2:   t.AreaKm2,
		PlayerID:       t.PlayerID,
		CreatedAt:      now,
	}
	return rec, ScoreDelta{PlayerID: t.PlayerID, Points: -ScorePoints(t.AreaKm2)}
}
