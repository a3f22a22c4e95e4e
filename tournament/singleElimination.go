package tournament

import (
	"github.com/cockroachdb/errors"

	"github.com/justinjudd/swissbracket/models"
)

// SingleElimination fulfills the PlayoffStage interface. Provides the logic for running a seeded single elimination
// bracket, commonly used as the conclusion of a tournament
type SingleElimination struct {
	bestOf int
	rounds [][]*models.Match
	winner *models.Team
}

// NewSingleElimination creates a new Single Elimination bracket over qualifiers, given best seed first
func NewSingleElimination(qualifiers []*models.Team, bestOf int) *SingleElimination {
	s := &SingleElimination{bestOf: bestOf}
	if len(qualifiers) == 1 {
		s.winner = qualifiers[0]
		return s
	}

	seeded := seed(qualifiers)
	var games []*models.Match
	for i := 0; i+1 < len(seeded); i += 2 {
		games = append(games, s.newMatch(1, seeded[i], seeded[i+1]))
	}
	s.rounds = append(s.rounds, games)
	s.advance()

	return s
}

func (s *SingleElimination) newMatch(round int, a, b *models.Team) *models.Match {
	if models.IsByeTeam(a) {
		a, b = b, a
	}
	m := models.NewMatch(round, a, b, s.bestOf)
	if models.IsByeTeam(b) {
		m.SetResult(a, 0, 0)
	}
	return m
}

// advance moves winners forward for as long as the active round is fully decided
func (s *SingleElimination) advance() {
	for s.winner == nil {
		current := s.rounds[len(s.rounds)-1]
		var winners []*models.Team
		for _, m := range current {
			if !m.IsCompleted() {
				return
			}
			winners = append(winners, m.Winner())
		}
		if len(winners) == 1 {
			s.winner = winners[0]
			return
		}

		round := len(s.rounds) + 1
		var games []*models.Match
		for i := 0; i+1 < len(winners); i += 2 {
			games = append(games, s.newMatch(round, winners[i], winners[i+1]))
		}
		s.rounds = append(s.rounds, games)
	}
}

func (s *SingleElimination) RecordMatchResult(match *models.Match, team1MapsWon, team2MapsWon int, team1WinTime, team2WinTime *float64) error {
	if s.winner != nil {
		return errors.Wrap(models.ErrInvalidState, "bracket is already decided")
	}
	found := false
	for _, m := range s.Matches() {
		if m == match {
			found = true
			break
		}
	}
	if !found {
		return errors.Wrap(models.ErrInvalidState, "match is not part of the current playoff round")
	}
	if match.IsCompleted() {
		return errors.Wrapf(models.ErrInvalidState, "match %s already has a result", match.ID)
	}
	if team1MapsWon == team2MapsWon {
		return errors.Wrapf(models.ErrInvalidState, "match %s can't end in a draw (%d-%d)", match.ID, team1MapsWon, team2MapsWon)
	}

	winner := match.Team1
	if team2MapsWon > team1MapsWon {
		winner = match.Team2
	}
	match.SetResult(winner, team1MapsWon, team2MapsWon)
	s.advance()
	return nil
}

func (s *SingleElimination) IsCompleted() bool {
	return s.winner != nil
}

func (s *SingleElimination) Winner() *models.Team {
	return s.winner
}

func (s *SingleElimination) CurrentRound() int {
	return len(s.rounds)
}

func (s *SingleElimination) Matches() []*models.Match {
	if len(s.rounds) == 0 {
		return nil
	}
	return append([]*models.Match(nil), s.rounds[len(s.rounds)-1]...)
}

func (s *SingleElimination) Rounds() [][]*models.Match {
	out := make([][]*models.Match, len(s.rounds))
	for i, r := range s.rounds {
		out[i] = append([]*models.Match(nil), r...)
	}
	return out
}
