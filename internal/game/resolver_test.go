package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playterritory/conquest/internal/geo"
)

var resolveNow = time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

func squareRing(lat, lng, size float64) []geo.Point {
	return []geo.Point{
		{Lat: lat, Lng: lng},
		{Lat: lat, Lng: lng + size},
		{Lat: lat + size, Lng: lng + size},
		{Lat: lat + size, Lng: lng},
	}
}

func TestResolve_Conquest(t *testing.T) {
	// Blue holds a small square; red closes a loop around it.
	blue := NewTerritory(squareRing(0.4, 0.4, 0.2), TeamBlue, "blue-player", resolveNow.Add(-time.Hour), time.Hour)

	claim := Claim{Ring: squareRing(0, 0, 1), Team: TeamRed, PlayerID: "red-player"}
	res := Resolve(claim, []Territory{blue}, resolveNow, 30*time.Minute)

	require.NotNil(t, res.Territory)
	assert.Equal(t, StatusActive, res.Territory.Status)
	assert.Equal(t, TeamRed, res.Territory.Team)
	assert.Equal(t, resolveNow.Add(30*time.Minute), res.Territory.ExpiresAt)

	require.Len(t, res.Conquests, 1)
	rec := res.Conquests[0]
	assert.Equal(t, blue.ID, rec.TerritoryID)
	assert.Equal(t, "red", rec.ConqueringTeam)
	assert.Equal(t, TeamBlue, rec.ConqueredTeam)
	assert.Equal(t, "blue-player", rec.PlayerID)
	assert.InDelta(t, blue.AreaKm2, rec.AreaDeltaKm2, 1e-9)
	assert.False(t, rec.Expired())

	require.Len(t, res.Deltas, 2)
	assert.Equal(t, ScoreDelta{PlayerID: "red-player", Points: ScorePoints(res.Territory.AreaKm2)}, res.Deltas[0])
	assert.Equal(t, ScoreDelta{PlayerID: "blue-player", Points: -ScorePoints(blue.AreaKm2)}, res.Deltas[1])
}

func TestResolve_SkipsSameTeamAndInactive(t *testing.T) {
	inside := squareRing(0.4, 0.4, 0.2)
	sameTeam := NewTerritory(inside, TeamRed, "ally", resolveNow, time.Hour)
	alreadyLost := NewTerritory(inside, TeamBlue, "blue-player", resolveNow, time.Hour)
	alreadyLost.Status = StatusLost

	claim := Claim{Ring: squareRing(0, 0, 1), Team: TeamRed, PlayerID: "red-player"}
	res := Resolve(claim, []Territory{sameTeam, alreadyLost}, resolveNow, time.Hour)

	require.NotNil(t, res.Territory)
	assert.Empty(t, res.Conquests)
	require.Len(t, res.Deltas, 1)
	assert.Equal(t, "red-player", res.Deltas[0].PlayerID)
}

func TestResolve_CenterOutsideIsSafe(t *testing.T) {
	farAway := NewTerritory(squareRing(10, 10, 0.2), TeamBlue, "blue-player", resolveNow, time.Hour)

	claim := Claim{Ring: squareRing(0, 0, 1), Team: TeamRed, PlayerID: "red-player"}
	res := Resolve(claim, []Territory{farAway}, resolveNow, time.Hour)

	assert.Empty(t, res.Conquests)
}

func TestResolve_RejectsDegenerateRing(t *testing.T) {
	claim := Claim{
		Ring:     []geo.Point{{Lat: 0, Lng: 0}, {Lat: 0, Lng: 1}},
		Team:     TeamRed,
		PlayerID: "red-player",
	}
	res := Resolve(claim, nil, resolveNow, time.Hour)
	assert.Nil(t, res.Territory)
	assert.Empty(t, res.Conquests)
	assert.Empty(t, res.Deltas)

	// A closed two-vertex ring is just as degenerate.
	claim.Ring = []geo.Point{{Lat: 0, Lng: 0}, {Lat: 0, Lng: 1}, {Lat: 0, Lng: 0}}
	res = Resolve(claim, nil, resolveNow, time.Hour)
	assert.Nil(t, res.Territory)
}

func TestResolve_MultipleConquestsProcessedIndependently(t *testing.T) {
	blue := NewTerritory(squareRing(0.1, 0.1, 0.2), TeamBlue, "blue-player", resolveNow, time.Hour)
	green := NewTerritory(squareRing(0.6, 0.6, 0.2), TeamGreen, "green-player", resolveNow, time.Hour)

	claim := Claim{Ring: squareRing(0, 0, 1), Team: TeamRed, PlayerID: "red-player"}
	res := Resolve(claim, []Territory{blue, green}, resolveNow, time.Hour)

	require.Len(t, res.Conquests, 2)
	require.Len(t, res.Deltas, 3)

	byPlayer := map[string]int64{}
	for _, d := range res.Deltas {
		byPlayer[d.PlayerID] += d.Points
	}
	assert.Equal(t, ScorePoints(res.Territory.AreaKm2), byPlayer["red-player"])
	assert.Equal(t, -ScorePoints(blue.AreaKm2), byPlayer["blue-player"])
	assert.Equal(t, -ScorePoints(green.AreaKm2), byPlayer["green-player"])
}

func TestResolve_OnePlayerLosingTwiceDeductsOnceAggregated(t *testing.T) {
	first := NewTerritory(squareRing(0.1, 0.1, 0.2), TeamBlue, "blue-player", resolveNow, time.Hour)
	second := NewTerritory(squareRing(0.6, 0.6, 0.2), TeamBlue, "blue-player", resolveNow, time.Hour)

	claim := Claim{Ring: squareRing(0, 0, 1), Team: TeamRed, PlayerID: "red-player"}
	res := Resolve(claim, []Territory{first, second}, resolveNow, time.Hour)

	require.Len(t, res.Conquests, 2)
	var blueDeltas []ScoreDelta
	for _, d := range res.Deltas {
		if d.PlayerID == "blue-player" {
			blueDeltas = append(blueDeltas, d)
		}
	}
	require.Len(t, blueDeltas, 1)
	assert.Equal(t, -(ScorePoints(first.AreaKm2) + ScorePoints(second.AreaKm2)), blueDeltas[0].Points)
}

func TestExpire(t *testing.T) {
	held := NewTerritory(squareRing(0, 0, 1), TeamGreen, "green-player", resolveNow.Add(-2*time.Hour), time.Hour)

	rec, delta := Expire(held, resolveNow)
	assert.Equal(t, held.ID, rec.TerritoryID)
	assert.Equal(t, ExpiredMarker, rec.ConqueringTeam)
	assert.True(t, rec.Expired())
	assert.Equal(t, TeamGreen, rec.ConqueredTeam)
	assert.InDelta(t, held.AreaKm2, rec.AreaDeltaKm2, 1e-9)
	assert.Equal(t, "green-player", rec.PlayerID)
	assert.Equal(t, ScoreDelta{PlayerID: "green-player", Points: -ScorePoints(held.AreaKm2)}, delta)
}

func TestScorePoints(t *testing.T) {
	assert.Equal(t, int64(1000), ScorePoints(1))
	assert.Equal(t, int64(1500), ScorePoints(1.5))
	assert.Equal(t, int64(0), ScorePoints(0))
	assert.Equal(t, int64(12), ScorePoints(0.0123))
}
