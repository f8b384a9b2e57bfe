package game

// TeamStats are per-team area totals in km², derived on demand.
type TeamStats struct {
	Conquered float64 `json:"conquered"`
	Lost      float64 `json:"lost"`
	Expired   float64 `json:"expired"`
	Net       float64 `json:"net"`
}

// Stats maps every playable team to its totals. All teams are present even
// when zero.
type Stats map[Team]TeamStats

// ComputeStats derives per-team totals from the current territories and the
// conquest history. Conquered counts only active holdings; lost and expired
// come from history rows, split on the expiry marker. Net is conquered minus
// lost minus expired. Unknown team tags fold into green.
func ComputeStats(territories []Territory, history []ConquestRecord) Stats {
	stats := make(Stats, len(Teams()))
	for _, team := range Teams() {
		stats[team] = TeamStats{}
	}

	for _, t := range territories {
		if t.Status != StatusActive {
			continue
		}
		team := NormalizeTeam(string(t.Team))
		s := stats[team]
		s.Conquered += t.AreaKm2
		stats[team] = s
	}

	for _, rec := range history {
		team := NormalizeTeam(string(rec.ConqueredTeam))
		s := stats[team]
		if rec.Expired() {
			s.Expired += rec.AreaDeltaKm2
		} else {
			s.Lost += rec.AreaDeltaKm2
		}
		stats[team] = s
	}

	for team, s := range stats {
		s.Net = s.Conquered - s.Lost - s.Expired
		stats[team] = s
	}
	return stats
}
