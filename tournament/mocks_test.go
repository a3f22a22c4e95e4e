package tournament

import (
	"github.com/stretchr/testify/mock"

	"github.com/justinjudd/swissbracket/models"
)

type mockStorageEngine struct {
	mock.Mock
}

func (m *mockStorageEngine) InsertTournament(name string) (uint64, error) {
	args := m.Called(name)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *mockStorageEngine) InsertTeam(name, logoURL string) (uint64, error) {
	args := m.Called(name, logoURL)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *mockStorageEngine) InsertMatchResult(result models.MatchResult) error {
	return m.Called(result).Error(0)
}

func (m *mockStorageEngine) UpdateTeamStats(teamID uint64, seriesWon, seriesLost, mapsWon, mapsLost int) error {
	return m.Called(teamID, seriesWon, seriesLost, mapsWon, mapsLost).Error(0)
}

func (m *mockStorageEngine) UpdateTournamentPhase(tournamentID uint64, phase models.Phase) error {
	return m.Called(tournamentID, phase).Error(0)
}

func (m *mockStorageEngine) SetChampion(tournamentID, teamID uint64) error {
	return m.Called(tournamentID, teamID).Error(0)
}

type mockSwissStage struct {
	mock.Mock
}

func (m *mockSwissStage) StartNextRound() error {
	return m.Called().Error(0)
}

func (m *mockSwissStage) RecordMatchResult(match *models.Match, winner *models.Team, team1MapsWon, team2MapsWon int, team1WinTime, team2WinTime *float64) error {
	return m.Called(match, winner, team1MapsWon, team2MapsWon, team1WinTime, team2WinTime).Error(0)
}

func (m *mockSwissStage) IsCompleted() bool {
	return m.Called().Bool(0)
}

func (m *mockSwissStage) Qualifiers() []*models.Team {
	return m.Called().Get(0).([]*models.Team)
}

func (m *mockSwissStage) CurrentRound() int {
	return m.Called().Int(0)
}

func (m *mockSwissStage) Matches() []*models.Match {
	return m.Called().Get(0).([]*models.Match)
}

func (m *mockSwissStage) Standings() []models.Standing {
	return m.Called().Get(0).([]models.Standing)
}

type mockPlayoffStage struct {
	mock.Mock
}

func (m *mockPlayoffStage) RecordMatchResult(match *models.Match, team1MapsWon, team2MapsWon int, team1WinTime, team2WinTime *float64) error {
	return m.Called(match, team1MapsWon, team2MapsWon, team1WinTime, team2WinTime).Error(0)
}

func (m *mockPlayoffStage) IsCompleted() bool {
	return m.Called().Bool(0)
}

func (m *mockPlayoffStage) Winner() *models.Team {
	winner, _ := m.Called().Get(0).(*models.Team)
	return winner
}

func (m *mockPlayoffStage) CurrentRound() int {
	return m.Called().Int(0)
}

func (m *mockPlayoffStage) Matches() []*models.Match {
	return m.Called().Get(0).([]*models.Match)
}

func (m *mockPlayoffStage) Rounds() [][]*models.Match {
	return m.Called().Get(0).([][]*models.Match)
}

type recordingObserver struct {
	phases     []models.Phase
	rounds     []int
	qualifiers []*models.Team
	champions  []*models.Team
}

func (o *recordingObserver) PhaseStarted(_ *Tournament, phase models.Phase) {
	o.phases = append(o.phases, phase)
}

func (o *recordingObserver) RoundStarted(_ *Tournament, _ models.Phase, round int) {
	o.rounds = append(o.rounds, round)
}

func (o *recordingObserver) QualifiersDetermined(_ *Tournament, qualifiers []*models.Team) {
	o.qualifiers = qualifiers
}

func (o *recordingObserver) ChampionDetermined(_ *Tournament, champion *models.Team) {
	o.champions = append(o.champions, champion)
}
