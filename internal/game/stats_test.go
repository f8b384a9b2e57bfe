package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputeStats(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	active := Territory{Team: TeamGreen, AreaKm2: 2.0, Status: StatusActive, CreatedAt: now}
	lostRow := Territory{Team: TeamGreen, AreaKm2: 9.9, Status: StatusLost, CreatedAt: now}
	history := []ConquestRecord{
		{ConqueringTeam: ExpiredMarker, ConqueredTeam: TeamGreen, AreaDeltaKm2: 0.5},
	}

	stats := ComputeStats([]Territory{active, lostRow}, history)

	green := stats[TeamGreen]
	assert.InDelta(t, 2.0, green.Conquered, 1e-9, "only active territories count")
	assert.InDelta(t, 0.5, green.Expired, 1e-9)
	assert.InDelta(t, 0.0, green.Lost, 1e-9)
	assert.InDelta(t, 1.5, green.Net, 1e-9)

	assert.Equal(t, TeamStats{}, stats[TeamBlue])
	assert.Equal(t, TeamStats{}, stats[TeamRed])
}

func TestComputeStats_LostVsExpired(t *testing.T) {
	history := []ConquestRecord{
		{ConqueringTeam: "red", ConqueredTeam: TeamBlue, AreaDeltaKm2: 1.25},
		{ConqueringTeam: ExpiredMarker, ConqueredTeam: TeamBlue, AreaDeltaKm2: 0.75},
	}

	stats := ComputeStats(nil, history)

	blue := stats[TeamBlue]
	assert.InDelta(t, 1.25, blue.Lost, 1e-9)
	assert.InDelta(t, 0.75, blue.Expired, 1e-9)
	assert.InDelta(t, -2.0, blue.Net, 1e-9)
}

func TestComputeStats_UnknownTeamFoldsIntoGreen(t *testing.T) {
	active := Territory{Team: Team("purple"), AreaKm2: 3.0, Status: StatusActive}
	history := []ConquestRecord{
		{ConqueringTeam: "red", ConqueredTeam: Team("mystery"), AreaDeltaKm2: 1.0},
	}

	stats := ComputeStats([]Territory{active}, history)

	green := stats[TeamGreen]
	assert.InDelta(t, 3.0, green.Conquered, 1e-9)
	assert.InDelta(t, 1.0, green.Lost, 1e-9)
}

func TestComputeStats_Empty(t *testing.T) {
	stats := ComputeStats(nil, nil)
	assert.Len(t, stats, 3)
	for _, team := range Teams() {
		assert.Equal(t, TeamStats{}, stats[team])
	}
}
