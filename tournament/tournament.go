package tournament

import (
	"math"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/justinjudd/swissbracket/models"
)

// MinTeams is the smallest field a tournament can be run with
const MinTeams = 8

// SwissFactory builds the Swiss stage over the full field
type SwissFactory func(teams []*models.Team, rounds, bestOf int) models.SwissStage

// PlayoffFactory builds the playoff stage over the ranked qualifiers
type PlayoffFactory func(qualifiers []*models.Team, bestOf int) models.PlayoffStage

// Option configures a Tournament
type Option func(*Tournament)

// WithLogger sets the logger used for diagnostics
func WithLogger(log *zap.Logger) Option {
	return func(t *Tournament) { t.log = log }
}

// WithObserver sets the observer notified on phase, round and champion changes
func WithObserver(o Observer) Option {
	return func(t *Tournament) { t.observer = o }
}

// WithSwissStage replaces the default Swiss stage
func WithSwissStage(f SwissFactory) Option {
	return func(t *Tournament) { t.newSwiss = f }
}

// WithPlayoffStage replaces the default single elimination bracket
func WithPlayoffStage(f PlayoffFactory) Option {
	return func(t *Tournament) { t.newPlayoffs = f }
}

// WithBestOf sets the number of maps of every series
func WithBestOf(n int) Option {
	return func(t *Tournament) { t.bestOf = n }
}

// Tournament runs a Swiss group stage followed by an elimination playoff bracket, keeping each team's ledger
// current and echoing every change to a StorageEngine. It is not safe for concurrent use.
type Tournament struct {
	id               uint64
	name             string
	teams            []*models.Team
	phase            models.Phase
	swiss            models.SwissStage
	playoffs         models.PlayoffStage
	champion         *models.Team
	totalSwissRounds int
	bestOf           int
	series           map[string]*models.Series

	store       models.StorageEngine
	observer    Observer
	log         *zap.Logger
	newSwiss    SwissFactory
	newPlayoffs PlayoffFactory
}

// SwissRounds returns how many Swiss rounds a field of n teams plays: three for up to eight teams, and one
// more every time the field doubles.
func SwissRounds(n int) int {
	rounds := int(math.Ceil(math.Log2(float64(n)/8))) + 3
	if rounds < 3 {
		return 3
	}
	return rounds
}

// New creates a tournament over teams, given best seed first, stores it along with every team, and starts
// the first Swiss round
func New(name string, teams []*models.Team, store models.StorageEngine, opts ...Option) (*Tournament, error) {
	if len(teams) < MinTeams {
		return nil, errors.Wrapf(models.ErrInvalidConfiguration, "a tournament must have at least %d teams, got %d", MinTeams, len(teams))
	}
	if store == nil {
		return nil, errors.Wrap(models.ErrInvalidConfiguration, "a storage engine is required")
	}
	seen := make(map[*models.Team]bool, len(teams))
	for i, team := range teams {
		if team == nil {
			return nil, errors.Wrapf(models.ErrInvalidConfiguration, "team %d is nil", i)
		}
		if seen[team] {
			return nil, errors.Wrapf(models.ErrInvalidConfiguration, "team %q entered twice", team.Name)
		}
		seen[team] = true
	}

	t := &Tournament{
		name:     name,
		teams:    append([]*models.Team(nil), teams...),
		bestOf:   3,
		series:   map[string]*models.Series{},
		store:    store,
		observer: nopObserver{},
		log:      zap.NewNop(),
		newSwiss: func(teams []*models.Team, rounds, bestOf int) models.SwissStage {
			return NewSwiss(teams, rounds, bestOf)
		},
		newPlayoffs: func(qualifiers []*models.Team, bestOf int) models.PlayoffStage {
			return NewSingleElimination(qualifiers, bestOf)
		},
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.bestOf < 1 {
		return nil, errors.Wrapf(models.ErrInvalidConfiguration, "series must be at least best of 1, got %d", t.bestOf)
	}

	id, err := store.InsertTournament(name)
	if err != nil {
		return nil, errors.Wrap(err, "storing tournament")
	}
	t.id = id
	for _, team := range t.teams {
		teamID, err := store.InsertTeam(team.Name, team.LogoURL)
		if err != nil {
			return nil, errors.Wrapf(err, "storing team %q", team.Name)
		}
		team.ID = teamID
	}

	t.totalSwissRounds = SwissRounds(len(t.teams))
	t.log.Debug("tournament initialized",
		zap.String("name", name),
		zap.Int("teams", len(t.teams)),
		zap.Int("swiss_rounds", t.totalSwissRounds),
	)

	if err := t.startSwissPhase(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Tournament) startSwissPhase() error {
	swiss := t.newSwiss(append([]*models.Team(nil), t.teams...), t.totalSwissRounds, t.bestOf)
	if err := swiss.StartNextRound(); err != nil {
		return errors.Wrap(err, "starting swiss phase")
	}
	t.swiss = swiss
	t.phase = models.Phase_SWISS
	t.observer.PhaseStarted(t, t.phase)
	t.observer.RoundStarted(t, t.phase, swiss.CurrentRound())
	return nil
}

// ReportMatchResult records the outcome of a match of the active phase, updates both teams' ledgers, and
// stores the result along with both teams' statistics. Win times are the quickest map win of each side.
func (t *Tournament) ReportMatchResult(match *models.Match, winner *models.Team, team1MapsWon, team2MapsWon int, team1WinTime, team2WinTime *float64) error {
	swissActive := t.phase == models.Phase_SWISS && t.swiss != nil
	playoffsActive := t.phase == models.Phase_PLAYOFFS && t.playoffs != nil
	if !swissActive && !playoffsActive {
		return errors.Wrap(models.ErrNoActivePhase, "no active phase to report match results")
	}
	if match == nil || match.Team1 == nil {
		return errors.Wrap(models.ErrInvalidState, "match has no teams")
	}
	side := match.Side(winner)
	if side == nil {
		return errors.Wrapf(models.ErrInvalidState, "winner %q does not play in match %s", teamName(winner), match.ID)
	}
	winner = side
	if team1MapsWon < 0 || team2MapsWon < 0 {
		return errors.Wrapf(models.ErrInvalidState, "map counts cannot be negative (%d-%d)", team1MapsWon, team2MapsWon)
	}

	var round int
	if swissActive {
		round = t.swiss.CurrentRound()
		if err := t.swiss.RecordMatchResult(match, winner, team1MapsWon, team2MapsWon, team1WinTime, team2WinTime); err != nil {
			return err
		}
	} else {
		mapsWinner := match.Team1
		if team2MapsWon > team1MapsWon {
			mapsWinner = match.Team2
		}
		if team1MapsWon == team2MapsWon || mapsWinner != winner {
			return errors.Wrapf(models.ErrInvalidState, "playoff winner must have won more maps (%d-%d)", team1MapsWon, team2MapsWon)
		}
		round = t.playoffs.CurrentRound()
		if err := t.playoffs.RecordMatchResult(match, team1MapsWon, team2MapsWon, team1WinTime, team2WinTime); err != nil {
			return err
		}
		if next := t.playoffs.CurrentRound(); next > round && !t.playoffs.IsCompleted() {
			defer t.observer.RoundStarted(t, t.phase, next)
		}
	}

	team1, team2 := match.Team1, match.Team2
	team1.AddSeries(match.ID)
	team1.RecordSeriesResult(winner == team1, team1MapsWon, team2MapsWon, floatTimes(team1WinTime))
	if team2 != nil {
		team2.AddSeries(match.ID)
		team2.RecordSeriesResult(winner == team2, team2MapsWon, team1MapsWon, floatTimes(team2WinTime))
	}

	result := models.MatchResult{
		MatchID:      match.ID,
		TournamentID: t.id,
		Team1ID:      team1.ID,
		WinnerID:     winner.ID,
		Team1MapsWon: team1MapsWon,
		Team2MapsWon: team2MapsWon,
		Team1WinTime: team1WinTime,
		Team2WinTime: team2WinTime,
		RoundNumber:  round,
		Phase:        t.phase,
	}
	if team2 != nil {
		id := team2.ID
		result.Team2ID = &id
	}
	if err := t.store.InsertMatchResult(result); err != nil {
		return errors.Wrapf(err, "storing result of match %s", match.ID)
	}
	for _, team := range []*models.Team{team1, team2} {
		if team == nil {
			continue
		}
		if err := t.store.UpdateTeamStats(team.ID, team.SeriesWon(), team.SeriesLost(), team.MapsWon(), team.MapsLost()); err != nil {
			return errors.Wrapf(err, "storing stats of team %q", team.Name)
		}
	}

	t.log.Debug("match result recorded",
		zap.String("match", match.ID),
		zap.Stringer("phase", t.phase),
		zap.Int("round", round),
		zap.String("winner", winner.Name),
		zap.Int("team1_maps", team1MapsWon),
		zap.Int("team2_maps", team2MapsWon),
	)
	return nil
}

// ReportSeries reports a match from its map by map history. The winner is the series winner if one was set,
// otherwise the team holding a majority of the maps.
func (t *Tournament) ReportSeries(match *models.Match, series *models.Series) error {
	if match == nil || series == nil || match.Team1 == nil {
		return errors.Wrap(models.ErrInvalidState, "a match and its series are required")
	}
	winnerID, ok := series.Winner()
	if !ok {
		winnerID, ok = series.MajorityWinner()
	}
	if !ok {
		return errors.Wrapf(models.ErrInvalidState, "series %s is undecided", series.ID)
	}

	var winner *models.Team
	for _, team := range []*models.Team{match.Team1, match.Team2} {
		if team != nil && team.ID == winnerID {
			winner = team
		}
	}
	if winner == nil {
		return errors.Wrapf(models.ErrInvalidState, "series %s winner %d does not play in match %s", series.ID, winnerID, match.ID)
	}

	team1Maps := series.MapsWonCount(match.Team1.ID)
	team1Time := quickest(series.TeamWinTimes(match.Team1.ID))
	var team2Maps int
	var team2Time *float64
	if match.Team2 != nil {
		team2Maps = series.MapsWonCount(match.Team2.ID)
		team2Time = quickest(series.TeamWinTimes(match.Team2.ID))
	}

	if err := t.ReportMatchResult(match, winner, team1Maps, team2Maps, team1Time, team2Time); err != nil {
		return err
	}
	series.SetWinner(winnerID)
	t.series[series.ID] = series

	if store, ok := t.store.(models.SeriesStore); ok {
		if err := store.SaveSeries(series); err != nil {
			return errors.Wrapf(err, "storing series %s", series.ID)
		}
	}
	return nil
}

// AdvanceSwissRound starts the next Swiss round, or the playoffs once the Swiss stage is complete
func (t *Tournament) AdvanceSwissRound() error {
	if t.swiss == nil {
		return errors.Wrap(models.ErrPhaseNotStarted, "swiss phase has not been started")
	}
	if t.phase != models.Phase_SWISS {
		return errors.Wrapf(models.ErrInvalidState, "swiss phase is over, tournament is in %s", t.phase)
	}
	if t.swiss.IsCompleted() {
		return t.StartPlayoffsPhase()
	}
	if err := t.swiss.StartNextRound(); err != nil {
		return err
	}
	t.observer.RoundStarted(t, t.phase, t.swiss.CurrentRound())
	return nil
}

// StartPlayoffsPhase builds the playoff bracket from the Swiss qualifiers, in their ranked order
func (t *Tournament) StartPlayoffsPhase() error {
	if t.swiss == nil {
		return errors.Wrap(models.ErrPhaseNotStarted, "swiss phase must be completed before starting playoffs")
	}
	if t.playoffs != nil {
		return errors.Wrap(models.ErrInvalidState, "playoffs have already started")
	}
	qualifiers := t.swiss.Qualifiers()
	if len(qualifiers) == 0 {
		return errors.Wrap(models.ErrInvalidState, "swiss phase produced no qualifiers")
	}

	t.playoffs = t.newPlayoffs(qualifiers, t.bestOf)
	t.phase = models.Phase_PLAYOFFS
	t.observer.QualifiersDetermined(t, qualifiers)
	t.observer.PhaseStarted(t, t.phase)
	if !t.playoffs.IsCompleted() {
		t.observer.RoundStarted(t, t.phase, t.playoffs.CurrentRound())
	}

	if err := t.store.UpdateTournamentPhase(t.id, t.phase); err != nil {
		return errors.Wrap(err, "storing tournament phase")
	}
	return nil
}

// CheckTournamentCompletion reports whether the playoffs have produced a champion. The first time they
// have, the champion is captured and stored; later calls change nothing.
func (t *Tournament) CheckTournamentCompletion() (bool, error) {
	if t.champion != nil {
		return true, nil
	}
	if t.phase != models.Phase_PLAYOFFS || t.playoffs == nil || !t.playoffs.IsCompleted() {
		return false, nil
	}
	winner := t.playoffs.Winner()
	if winner == nil {
		return false, errors.Wrap(models.ErrInvalidState, "playoffs completed without a winner")
	}

	t.champion = winner
	t.observer.ChampionDetermined(t, winner)
	if err := t.store.SetChampion(t.id, winner.ID); err != nil {
		return true, errors.Wrap(err, "storing champion")
	}
	return true, nil
}

func (t *Tournament) ID() uint64   { return t.id }
func (t *Tournament) Name() string { return t.name }

// Teams returns the field in seed order
func (t *Tournament) Teams() []*models.Team {
	return append([]*models.Team(nil), t.teams...)
}

// Team looks a team up by id
func (t *Tournament) Team(id uint64) (*models.Team, bool) {
	for _, team := range t.teams {
		if team.ID == id {
			return team, true
		}
	}
	return nil, false
}

func (t *Tournament) Phase() models.Phase           { return t.phase }
func (t *Tournament) TotalSwissRounds() int         { return t.totalSwissRounds }
func (t *Tournament) BestOf() int                   { return t.bestOf }
func (t *Tournament) Swiss() models.SwissStage      { return t.swiss }
func (t *Tournament) Playoffs() models.PlayoffStage { return t.playoffs }
func (t *Tournament) Champion() *models.Team        { return t.champion }
func (t *Tournament) Completed() bool               { return t.champion != nil }

// Series returns a series reported through ReportSeries
func (t *Tournament) Series(id string) (*models.Series, bool) {
	s, ok := t.series[id]
	return s, ok
}

// CurrentRound is the round of the active phase, 0 if no phase is active
func (t *Tournament) CurrentRound() int {
	switch {
	case t.phase == models.Phase_SWISS && t.swiss != nil:
		return t.swiss.CurrentRound()
	case t.phase == models.Phase_PLAYOFFS && t.playoffs != nil:
		return t.playoffs.CurrentRound()
	}
	return 0
}

// CurrentMatches returns the pairings of the active round, including those already played
func (t *Tournament) CurrentMatches() []*models.Match {
	switch {
	case t.phase == models.Phase_SWISS && t.swiss != nil:
		return t.swiss.Matches()
	case t.phase == models.Phase_PLAYOFFS && t.playoffs != nil:
		if t.playoffs.IsCompleted() {
			return nil
		}
		return t.playoffs.Matches()
	}
	return nil
}
