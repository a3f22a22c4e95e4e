package competition

import (
	"math/rand"

	"github.com/cockroachdb/errors"

	"github.com/justinjudd/swissbracket/models"
	"github.com/justinjudd/swissbracket/tournament"
)

const (
	minMapTime = 900.0
	maxMapTime = 2700.0
	maxRounds  = 64
)

// RandomizeTeams shuffles the seed order of teams in place
func RandomizeTeams(teams []*models.Team, rng *rand.Rand) {
	places := rng.Perm(len(teams))
	tmp := make([]*models.Team, len(teams))
	copy(tmp, teams)
	for i, place := range places {
		teams[i] = tmp[place]
	}
}

// PlayRandomSeries plays maps with random winners and durations until one side of m holds a majority
func PlayRandomSeries(m *models.Match, rng *rand.Rand) *models.Series {
	series := m.NewSeries()
	for mapID := 1; ; mapID++ {
		if _, ok := series.MajorityWinner(); ok {
			return series
		}
		winner := m.Team1.ID
		if rng.Intn(2) == 1 {
			winner = m.Team2.ID
		}
		series.AddMapResult(mapID, winner, minMapTime+rng.Float64()*(maxMapTime-minMapTime))
	}
}

// PlayRound reports a random series for every open match of the active round
func PlayRound(t *tournament.Tournament, rng *rand.Rand) error {
	for _, m := range t.CurrentMatches() {
		if m.IsCompleted() || models.IsByeMatch(m) {
			continue
		}
		if err := t.ReportSeries(m, PlayRandomSeries(m, rng)); err != nil {
			return err
		}
	}
	return nil
}

// Simulate plays t to the end with random results and returns the champion
func Simulate(t *tournament.Tournament, rng *rand.Rand) (*models.Team, error) {
	for i := 0; t.Phase() == models.Phase_SWISS; i++ {
		if i >= maxRounds {
			return nil, errors.Newf("swiss phase did not finish after %d rounds", maxRounds)
		}
		if err := PlayRound(t, rng); err != nil {
			return nil, err
		}
		if err := t.AdvanceSwissRound(); err != nil {
			return nil, err
		}
	}

	for i := 0; ; i++ {
		done, err := t.CheckTournamentCompletion()
		if err != nil {
			return nil, err
		}
		if done {
			return t.Champion(), nil
		}
		if i >= maxRounds {
			return nil, errors.Newf("playoffs did not finish after %d rounds", maxRounds)
		}
		if err := PlayRound(t, rng); err != nil {
			return nil, err
		}
	}
}
