package models

// IsByeTeam determines if a team slot is a bye. Stages mark a bye with a nil team
func IsByeTeam(t *Team) bool {
	return t == nil
}

// IsByeMatch determines if a match should be a bye, and is true when fewer than two real teams are in it
func IsByeMatch(m *Match) bool {
	if m == nil {
		return true
	}
	return IsByeTeam(m.Team1) || IsByeTeam(m.Team2)
}

func minTime(current *float64, times []float64) *float64 {
	for _, t := range times {
		if current == nil || t < *current {
			v := t
			current = &v
		}
	}
	return current
}
