package models

// Phase is the stage a tournament is currently running
type Phase int32

const (
	Phase_NONE     Phase = 0
	Phase_SWISS    Phase = 1
	Phase_PLAYOFFS Phase = 2
)

var phaseNames = map[Phase]string{
	Phase_NONE:     "none",
	Phase_SWISS:    "swiss",
	Phase_PLAYOFFS: "playoffs",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return "unknown"
}

// ParsePhase is the inverse of Phase.String
func ParsePhase(s string) Phase {
	for p, name := range phaseNames {
		if name == s {
			return p
		}
	}
	return Phase_NONE
}

// MatchResult is the durable record of one reported match
type MatchResult struct {
	MatchID      string // also the id of the match's series
	TournamentID uint64
	Team1ID      uint64
	Team2ID      *uint64 // nil for a bye
	WinnerID     uint64
	Team1MapsWon int
	Team2MapsWon int
	Team1WinTime *float64
	Team2WinTime *float64
	RoundNumber  int
	Phase        Phase
}

// StorageEngine is a backing that durably records a tournament as it progresses
type StorageEngine interface {
	InsertTournament(name string) (uint64, error)
	InsertTeam(name, logoURL string) (uint64, error)
	InsertMatchResult(result MatchResult) error
	UpdateTeamStats(teamID uint64, seriesWon, seriesLost, mapsWon, mapsLost int) error
	UpdateTournamentPhase(tournamentID uint64, phase Phase) error
	SetChampion(tournamentID, teamID uint64) error
}

// SeriesStore is implemented by engines that also keep the per-map history of series
type SeriesStore interface {
	SaveSeries(series *Series) error
}

// Standing is one row of the Swiss table
type Standing struct {
	Team    *Team
	Wins    int
	Losses  int
	MapDiff int
}

// SwissStage runs the group stage: it pairs teams round by round and ranks them
type SwissStage interface {
	StartNextRound() error
	RecordMatchResult(match *Match, winner *Team, team1MapsWon, team2MapsWon int, team1WinTime, team2WinTime *float64) error
	IsCompleted() bool
	Qualifiers() []*Team
	CurrentRound() int
	Matches() []*Match // pairings of the current round
	Standings() []Standing
}

// PlayoffStage runs the elimination bracket over the qualifiers
type PlayoffStage interface {
	RecordMatchResult(match *Match, team1MapsWon, team2MapsWon int, team1WinTime, team2WinTime *float64) error
	IsCompleted() bool
	Winner() *Team
	CurrentRound() int
	Matches() []*Match // pairings of the current round
	Rounds() [][]*Match
}
