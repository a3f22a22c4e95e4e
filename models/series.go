package models

// Map is the outcome of one game inside a series. Maps compare by value.
type Map struct {
	ID           int
	WinnerTeamID uint64
	WinTime      float64 // seconds
}

// Fields returns the ordered serialization of the map
func (m Map) Fields() Record {
	return Record{
		{"map_id", m.ID},
		{"winner_team_id", m.WinnerTeamID},
		{"win_time", m.WinTime},
	}
}

// Series is the per-map history of one best-of-N meeting between two teams.
//
// Maps lost by a team are counted as maps not won by it, so only maps won by
// one of the two contenders should ever be added.
type Series struct {
	ID      string
	TeamAID uint64
	TeamBID uint64
	BestOf  int

	winnerTeamID *uint64
	mapResults   []Map
}

// NewSeries creates an undecided series between two teams
func NewSeries(id string, teamAID, teamBID uint64, bestOf int) *Series {
	return &Series{ID: id, TeamAID: teamAID, TeamBID: teamBID, BestOf: bestOf}
}

// AddMapResult appends a map outcome unless an identical one is already recorded
func (s *Series) AddMapResult(mapID int, winnerTeamID uint64, winTime float64) {
	m := Map{ID: mapID, WinnerTeamID: winnerTeamID, WinTime: winTime}
	for _, existing := range s.mapResults {
		if existing == m {
			return
		}
	}
	s.mapResults = append(s.mapResults, m)
}

// MapResults returns the recorded maps in insertion order
func (s *Series) MapResults() []Map {
	out := make([]Map, len(s.mapResults))
	copy(out, s.mapResults)
	return out
}

func (s *Series) TeamMapWins(teamID uint64) []Map {
	var won []Map
	for _, m := range s.mapResults {
		if m.WinnerTeamID == teamID {
			won = append(won, m)
		}
	}
	return won
}

func (s *Series) TeamWinTimes(teamID uint64) []float64 {
	var times []float64
	for _, m := range s.mapResults {
		if m.WinnerTeamID == teamID {
			times = append(times, m.WinTime)
		}
	}
	return times
}

func (s *Series) MapsWonCount(teamID uint64) int {
	return len(s.TeamMapWins(teamID))
}

func (s *Series) MapsLostCount(teamID uint64) int {
	return len(s.mapResults) - s.MapsWonCount(teamID)
}

// SetWinner marks the series as decided
func (s *Series) SetWinner(teamID uint64) {
	s.winnerTeamID = &teamID
}

// Winner returns the winning team id once the series is decided
func (s *Series) Winner() (uint64, bool) {
	if s.winnerTeamID == nil {
		return 0, false
	}
	return *s.winnerTeamID, true
}

// MajorityWinner returns the contender that has won more than half of BestOf maps
func (s *Series) MajorityWinner() (uint64, bool) {
	needed := s.BestOf/2 + 1
	for _, id := range []uint64{s.TeamAID, s.TeamBID} {
		if s.MapsWonCount(id) >= needed {
			return id, true
		}
	}
	return 0, false
}

// Fields returns the ordered serialization of the series
func (s *Series) Fields() Record {
	var winner interface{}
	if s.winnerTeamID != nil {
		winner = *s.winnerTeamID
	}
	maps := make([]Record, len(s.mapResults))
	for i, m := range s.mapResults {
		maps[i] = m.Fields()
	}
	return Record{
		{"id", s.ID},
		{"team_a_id", s.TeamAID},
		{"team_b_id", s.TeamBID},
		{"winner_team_id", winner},
		{"best_of", s.BestOf},
		{"map_results", maps},
	}
}
