package models

import "github.com/rs/xid"

// Match is a single pairing scheduled by a stage. Team2 is nil for a bye.
type Match struct {
	ID     string
	Round  int
	Team1  *Team
	Team2  *Team
	BestOf int

	winner    *Team
	team1Maps int
	team2Maps int
}

// NewMatch creates an unplayed match with a fresh id
func NewMatch(round int, team1, team2 *Team, bestOf int) *Match {
	return &Match{ID: xid.New().String(), Round: round, Team1: team1, Team2: team2, BestOf: bestOf}
}

// SetResult locks in the outcome of the match
func (m *Match) SetResult(winner *Team, team1Maps, team2Maps int) {
	m.winner = winner
	m.team1Maps = team1Maps
	m.team2Maps = team2Maps
}

// IsCompleted reports whether a result has been recorded
func (m *Match) IsCompleted() bool {
	return m.winner != nil
}

func (m *Match) Winner() *Team {
	return m.winner
}

// Loser returns the team that did not win, nil for a bye or an unplayed match
func (m *Match) Loser() *Team {
	switch {
	case m.winner == nil:
		return nil
	case m.winner == m.Team1:
		return m.Team2
	default:
		return m.Team1
	}
}

// Maps returns the maps won by each side
func (m *Match) Maps() (team1, team2 int) {
	return m.team1Maps, m.team2Maps
}

// HasTeam reports whether t plays in the match
func (m *Match) HasTeam(t *Team) bool {
	return m.Side(t) != nil
}

// Side returns the match's own entry for t, which may be a different value
// with the same id (a team reloaded from storage). Nil if t does not play.
func (m *Match) Side(t *Team) *Team {
	switch {
	case t == nil:
		return nil
	case t.Equals(m.Team1):
		return m.Team1
	case m.Team2 != nil && t.Equals(m.Team2):
		return m.Team2
	}
	return nil
}

// NewSeries starts a series ledger for this match
func (m *Match) NewSeries() *Series {
	var team2 uint64
	if m.Team2 != nil {
		team2 = m.Team2.ID
	}
	return NewSeries(m.ID, m.Team1.ID, team2, m.BestOf)
}
