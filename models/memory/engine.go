package memory

import (
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/justinjudd/swissbracket/models"
)

// Tournament is the stored state of a tournament
type Tournament struct {
	ID         uint64
	Name       string
	Phase      models.Phase
	ChampionID uint64
}

// Team is the stored state of a team
type Team struct {
	ID         uint64
	Name       string
	LogoURL    string
	SeriesWon  int
	SeriesLost int
	MapsWon    int
	MapsLost   int
}

// Engine is an in-process StorageEngine. Nothing outlives the process.
type Engine struct {
	mu          sync.RWMutex
	nextID      uint64
	tournaments map[uint64]*Tournament
	teams       map[uint64]*Team
	results     []models.MatchResult
	series      map[string]models.Record
}

// NewStorageEngine creates an empty in-memory engine
func NewStorageEngine() *Engine {
	return &Engine{
		tournaments: map[uint64]*Tournament{},
		teams:       map[uint64]*Team{},
	}
}

func (e *Engine) id() uint64 {
	e.nextID++
	return e.nextID
}

func (e *Engine) InsertTournament(name string) (uint64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	t := &Tournament{ID: e.id(), Name: name, Phase: models.Phase_SWISS}
	e.tournaments[t.ID] = t
	return t.ID, nil
}

func (e *Engine) InsertTeam(name, logoURL string) (uint64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	t := &Team{ID: e.id(), Name: name, LogoURL: logoURL}
	e.teams[t.ID] = t
	return t.ID, nil
}

func (e *Engine) InsertMatchResult(result models.MatchResult) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.tournaments[result.TournamentID]; !ok {
		return errors.Newf("tournament %d not found", result.TournamentID)
	}
	e.results = append(e.results, result)
	return nil
}

func (e *Engine) UpdateTeamStats(teamID uint64, seriesWon, seriesLost, mapsWon, mapsLost int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	t, ok := e.teams[teamID]
	if !ok {
		return errors.Newf("team %d not found", teamID)
	}
	t.SeriesWon, t.SeriesLost, t.MapsWon, t.MapsLost = seriesWon, seriesLost, mapsWon, mapsLost
	return nil
}

func (e *Engine) UpdateTournamentPhase(tournamentID uint64, phase models.Phase) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	t, ok := e.tournaments[tournamentID]
	if !ok {
		return errors.Newf("tournament %d not found", tournamentID)
	}
	t.Phase = phase
	return nil
}

func (e *Engine) SetChampion(tournamentID, teamID uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	t, ok := e.tournaments[tournamentID]
	if !ok {
		return errors.Newf("tournament %d not found", tournamentID)
	}
	t.ChampionID = teamID
	return nil
}

// GetTournament returns a copy of the stored tournament
func (e *Engine) GetTournament(id uint64) (Tournament, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	t, ok := e.tournaments[id]
	if !ok {
		return Tournament{}, false
	}
	return *t, true
}

// GetTeam returns a copy of the stored team
func (e *Engine) GetTeam(id uint64) (Team, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	t, ok := e.teams[id]
	if !ok {
		return Team{}, false
	}
	return *t, true
}

// GetMatchResults returns every result recorded for a tournament, oldest first
func (e *Engine) GetMatchResults(tournamentID uint64) []models.MatchResult {
	e.mu.RLock()
	defer e.mu.RUnlock()

	var out []models.MatchResult
	for _, r := range e.results {
		if r.TournamentID == tournamentID {
			out = append(out, r)
		}
	}
	return out
}

// SaveSeries stores a copy of the series map history
func (e *Engine) SaveSeries(series *models.Series) error {
	if err := models.SeriesSchema.Validate(series.Fields()); err != nil {
		return errors.Wrapf(err, "series %s", series.ID)
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.series == nil {
		e.series = map[string]models.Record{}
	}
	e.series[series.ID] = series.Fields()
	return nil
}

// GetSeries returns the stored record of a series
func (e *Engine) GetSeries(id string) (models.Record, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	r, ok := e.series[id]
	return r, ok
}
