package storm

import (
	"time"

	"github.com/asdine/storm"
	"github.com/asdine/storm/codec/msgpack"
	"github.com/asdine/storm/q"
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/justinjudd/swissbracket/models"
)

type tournament struct {
	ID         uint64 `storm:"id,increment"`
	Name       string `storm:"index"`
	Phase      string
	ChampionID uint64
	CreatedAt  time.Time
}

type team struct {
	ID         uint64 `storm:"id,increment"`
	Name       string `storm:"index"`
	LogoURL    string
	SeriesWon  int
	SeriesLost int
	MapsWon    int
	MapsLost   int
	SeriesIDs  []string
}

func (t team) ledger() (*models.Team, error) {
	stats := models.TeamStats{SeriesWon: t.SeriesWon, SeriesLost: t.SeriesLost, MapsWon: t.MapsWon, MapsLost: t.MapsLost}
	return models.RestoreTeam(t.ID, t.Name, t.LogoURL, stats, t.SeriesIDs)
}

// validate checks the row against TeamSchema before it is written
func (e *Engine) validate(t team) error {
	ledger, err := t.ledger()
	if err != nil {
		return err
	}
	rec := ledger.Fields()
	if err := models.TeamSchema.Validate(rec); err != nil {
		return err
	}
	e.log.Debug("saving team", zap.Any("columns", models.TeamSchema.Columns(rec)))
	return nil
}

type matchResult struct {
	ID           uint64 `storm:"id,increment"`
	MatchID      string `storm:"index"`
	TournamentID uint64 `storm:"index"`
	Team1ID      uint64
	Team2ID      *uint64
	WinnerID     uint64
	Team1MapsWon int
	Team2MapsWon int
	Team1WinTime *float64
	Team2WinTime *float64
	RoundNumber  int
	Phase        string
	RecordedAt   time.Time
}

type mapResult struct {
	MapID        int
	WinnerTeamID uint64
	WinTime      float64
}

type series struct {
	ID           string `storm:"id"`
	TeamAID      uint64 `storm:"index"`
	TeamBID      uint64 `storm:"index"`
	WinnerTeamID *uint64
	BestOf       int
	Maps         []mapResult
}

// Engine is a StorageEngine using a storm db backend
type Engine struct {
	*storm.DB
	log *zap.Logger
}

// NewStorageEngine opens (or creates) the storm database at path
func NewStorageEngine(path string, log *zap.Logger) (*Engine, error) {
	if log == nil {
		log = zap.NewNop()
	}
	db, err := storm.Open(path, storm.Codec(msgpack.Codec))
	if err != nil {
		return nil, errors.Wrap(err, "unable to open storage engine")
	}
	log.Debug("opened storage engine", zap.String("path", path))

	return &Engine{DB: db, log: log}, nil
}

func (e *Engine) InsertTournament(name string) (uint64, error) {
	t := tournament{Name: name, Phase: models.Phase_SWISS.String(), CreatedAt: time.Now().UTC()}
	if err := e.Save(&t); err != nil {
		e.log.Error("unable to create tournament", zap.String("name", name), zap.Error(err))
		return 0, errors.Wrap(err, "insert tournament")
	}
	return t.ID, nil
}

func (e *Engine) InsertTeam(name, logoURL string) (uint64, error) {
	t := team{Name: name, LogoURL: logoURL}
	if err := e.validate(t); err != nil {
		return 0, errors.Wrapf(err, "insert team %q", name)
	}
	if err := e.Save(&t); err != nil {
		e.log.Error("unable to create team", zap.String("name", name), zap.Error(err))
		return 0, errors.Wrap(err, "insert team")
	}
	return t.ID, nil
}

func (e *Engine) InsertMatchResult(r models.MatchResult) error {
	var t tournament
	if err := e.One("ID", r.TournamentID, &t); err != nil {
		return errors.Wrapf(err, "insert match result: tournament %d", r.TournamentID)
	}
	m := matchResult{
		MatchID:      r.MatchID,
		TournamentID: r.TournamentID,
		Team1ID:      r.Team1ID,
		Team2ID:      r.Team2ID,
		WinnerID:     r.WinnerID,
		Team1MapsWon: r.Team1MapsWon,
		Team2MapsWon: r.Team2MapsWon,
		Team1WinTime: r.Team1WinTime,
		Team2WinTime: r.Team2WinTime,
		RoundNumber:  r.RoundNumber,
		Phase:        r.Phase.String(),
		RecordedAt:   time.Now().UTC(),
	}
	if err := e.Save(&m); err != nil {
		return errors.Wrap(err, "insert match result")
	}
	if r.MatchID == "" {
		return nil
	}

	teamIDs := []uint64{r.Team1ID}
	if r.Team2ID != nil {
		teamIDs = append(teamIDs, *r.Team2ID)
	}
	for _, id := range teamIDs {
		if err := e.addSeries(id, r.MatchID); err != nil {
			return errors.Wrap(err, "insert match result")
		}
	}
	return nil
}

func (e *Engine) addSeries(teamID uint64, seriesID string) error {
	var t team
	if err := e.One("ID", teamID, &t); err != nil {
		return errors.Wrapf(err, "team %d", teamID)
	}
	for _, id := range t.SeriesIDs {
		if id == seriesID {
			return nil
		}
	}
	t.SeriesIDs = append(t.SeriesIDs, seriesID)
	return e.Save(&t)
}

func (e *Engine) UpdateTeamStats(teamID uint64, seriesWon, seriesLost, mapsWon, mapsLost int) error {
	var t team
	if err := e.One("ID", teamID, &t); err != nil {
		return errors.Wrapf(err, "update team stats: team %d", teamID)
	}
	t.SeriesWon, t.SeriesLost, t.MapsWon, t.MapsLost = seriesWon, seriesLost, mapsWon, mapsLost
	if err := e.validate(t); err != nil {
		return errors.Wrapf(err, "update team stats: team %d", teamID)
	}
	return errors.Wrap(e.Save(&t), "update team stats")
}

func (e *Engine) UpdateTournamentPhase(tournamentID uint64, phase models.Phase) error {
	var t tournament
	if err := e.One("ID", tournamentID, &t); err != nil {
		return errors.Wrapf(err, "update tournament phase: tournament %d", tournamentID)
	}
	t.Phase = phase.String()
	return errors.Wrap(e.Save(&t), "update tournament phase")
}

func (e *Engine) SetChampion(tournamentID, teamID uint64) error {
	var t tournament
	if err := e.One("ID", tournamentID, &t); err != nil {
		return errors.Wrapf(err, "set champion: tournament %d", tournamentID)
	}
	t.ChampionID = teamID
	return errors.Wrap(e.Save(&t), "set champion")
}

// SaveSeries stores the per-map history of a series, replacing any earlier copy
func (e *Engine) SaveSeries(s *models.Series) error {
	rec := s.Fields()
	if err := models.SeriesSchema.Validate(rec); err != nil {
		return errors.Wrapf(err, "save series %s", s.ID)
	}
	e.log.Debug("saving series", zap.Any("columns", models.SeriesSchema.Columns(rec)))

	out := series{ID: s.ID, TeamAID: s.TeamAID, TeamBID: s.TeamBID, BestOf: s.BestOf}
	if winner, ok := s.Winner(); ok {
		out.WinnerTeamID = &winner
	}
	for _, m := range s.MapResults() {
		if err := models.MapSchema.Validate(m.Fields()); err != nil {
			return errors.Wrapf(err, "save series %s: map %d", s.ID, m.ID)
		}
		out.Maps = append(out.Maps, mapResult{MapID: m.ID, WinnerTeamID: m.WinnerTeamID, WinTime: m.WinTime})
	}
	return errors.Wrap(e.Save(&out), "save series")
}

// LoadSeries rebuilds a stored series
func (e *Engine) LoadSeries(id string) (*models.Series, error) {
	var s series
	if err := e.One("ID", id, &s); err != nil {
		return nil, errors.Wrapf(err, "load series %s", id)
	}
	out := models.NewSeries(s.ID, s.TeamAID, s.TeamBID, s.BestOf)
	for _, m := range s.Maps {
		out.AddMapResult(m.MapID, m.WinnerTeamID, m.WinTime)
	}
	if s.WinnerTeamID != nil {
		out.SetWinner(*s.WinnerTeamID)
	}
	return out, nil
}

// LoadTeam rebuilds a team ledger from its stored counters. Its series are
// the matches reported for it plus any stored series it contends in.
func (e *Engine) LoadTeam(id uint64) (*models.Team, error) {
	var t team
	if err := e.One("ID", id, &t); err != nil {
		return nil, errors.Wrapf(err, "load team %d", id)
	}
	var played []series
	err := e.Select(q.Or(q.Eq("TeamAID", id), q.Eq("TeamBID", id))).Find(&played)
	if err != nil && !errors.Is(err, storm.ErrNotFound) {
		return nil, errors.Wrapf(err, "load team %d series", id)
	}
	ledger, err := t.ledger()
	if err != nil {
		return nil, errors.Wrapf(err, "load team %d", id)
	}
	for _, s := range played {
		ledger.AddSeries(s.ID)
	}
	return ledger, nil
}

// TournamentState is the stored phase and champion of a tournament
type TournamentState struct {
	Name       string
	Phase      models.Phase
	ChampionID uint64
}

// GetTournament returns the stored state of a tournament
func (e *Engine) GetTournament(id uint64) (TournamentState, error) {
	var t tournament
	if err := e.One("ID", id, &t); err != nil {
		return TournamentState{}, errors.Wrapf(err, "get tournament %d", id)
	}
	return TournamentState{Name: t.Name, Phase: models.ParsePhase(t.Phase), ChampionID: t.ChampionID}, nil
}

// GetMatchResults returns every result recorded for a tournament, oldest first
func (e *Engine) GetMatchResults(tournamentID uint64) ([]models.MatchResult, error) {
	var stored []matchResult
	err := e.Select(q.Eq("TournamentID", tournamentID)).OrderBy("ID").Find(&stored)
	if err != nil && !errors.Is(err, storm.ErrNotFound) {
		return nil, errors.Wrapf(err, "get match results for tournament %d", tournamentID)
	}
	out := make([]models.MatchResult, len(stored))
	for i, m := range stored {
		out[i] = models.MatchResult{
			TournamentID: m.TournamentID,
			Team1ID:      m.Team1ID,
			Team2ID:      m.Team2ID,
			WinnerID:     m.WinnerID,
			Team1MapsWon: m.Team1MapsWon,
			Team2MapsWon: m.Team2MapsWon,
			Team1WinTime: m.Team1WinTime,
			Team2WinTime: m.Team2WinTime,
			RoundNumber:  m.RoundNumber,
			Phase:        models.ParsePhase(m.Phase),
		}
	}
	return out, nil
}

// Close closes the underlying database
func (e *Engine) Close() error {
	e.log.Debug("closing storage engine")
	return e.DB.Close()
}
