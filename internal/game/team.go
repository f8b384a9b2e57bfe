// Package game holds the domain core: teams, territories, the per-player
// trace tracker, claim resolution and stats aggregation. Everything here is
// pure in-memory logic; persistence and transport live in internal/server.
package game

// Team identifies one of the three playable factions.
type Team string

const (
	TeamGreen Team = "green"
	TeamBlue  Team = "blue"
	TeamRed   Team = "red"
)

// ExpiredMarker is stored in a conquest record's conquering-team slot when a
// territory timed out rather than being taken. It is deliberately not a Team.
const ExpiredMarker = "expired"

// Teams returns the playable teams in display order.
func Teams() []Team {
	return []Team{TeamGreen, TeamBlue, TeamRed}
}

// NormalizeTeam maps an arbitrary tag to a playable team, defaulting to
// green for anything unrecognized.
func NormalizeTeam(s string) Team {
	switch Team(s) {
	case TeamBlue:
		return TeamBlue
	case TeamRed:
		return TeamRed
	default:
		return TeamGreen
	}
}
