package tournament

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justinjudd/swissbracket/models"
)

func TestSingleElimination(t *testing.T) {
	teams := newTeams(4)
	s := NewSingleElimination(teams, 3)
	assert.False(t, s.IsCompleted())
	assert.Equal(t, 1, s.CurrentRound())

	first := s.Matches()
	require.Len(t, first, 2)
	assert.Same(t, teams[0], first[0].Team1)
	assert.Same(t, teams[3], first[0].Team2)
	assert.Same(t, teams[2], first[1].Team1)
	assert.Same(t, teams[1], first[1].Team2)

	require.NoError(t, s.RecordMatchResult(first[0], 2, 0, nil, nil))
	assert.Equal(t, 1, s.CurrentRound(), "round 1 still has an open match")
	require.NoError(t, s.RecordMatchResult(first[1], 1, 2, nil, nil))
	assert.Same(t, teams[1], first[1].Winner())

	assert.Equal(t, 2, s.CurrentRound())
	final := s.Matches()
	require.Len(t, final, 1)
	assert.Same(t, teams[0], final[0].Team1)
	assert.Same(t, teams[1], final[0].Team2)

	require.NoError(t, s.RecordMatchResult(final[0], 0, 2, nil, nil))
	assert.True(t, s.IsCompleted())
	assert.Same(t, teams[1], s.Winner())
	assert.Len(t, s.Rounds(), 2)

	err := s.RecordMatchResult(final[0], 2, 0, nil, nil)
	assert.True(t, errors.Is(err, models.ErrInvalidState))
}

func TestSingleEliminationRejects(t *testing.T) {
	teams := newTeams(4)
	s := NewSingleElimination(teams, 3)
	m := s.Matches()[0]

	err := s.RecordMatchResult(m, 1, 1, nil, nil)
	assert.True(t, errors.Is(err, models.ErrInvalidState), "draw")

	stray := models.NewMatch(1, teams[0], teams[3], 3)
	err = s.RecordMatchResult(stray, 2, 0, nil, nil)
	assert.True(t, errors.Is(err, models.ErrInvalidState), "not scheduled")

	require.NoError(t, s.RecordMatchResult(m, 2, 1, nil, nil))
	err = s.RecordMatchResult(m, 2, 1, nil, nil)
	assert.True(t, errors.Is(err, models.ErrInvalidState), "already reported")
	assert.False(t, s.IsCompleted())
}

func TestSingleEliminationByes(t *testing.T) {
	teams := newTeams(3)
	s := NewSingleElimination(teams, 1)

	matches := s.Matches()
	require.Len(t, matches, 2)
	assert.True(t, models.IsByeMatch(matches[0]))
	assert.True(t, matches[0].IsCompleted())
	assert.Same(t, teams[0], matches[0].Winner())
	assert.False(t, matches[1].IsCompleted())

	require.NoError(t, s.RecordMatchResult(matches[1], 1, 0, nil, nil))
	final := s.Matches()
	require.Len(t, final, 1)
	assert.Same(t, teams[0], final[0].Team1)
	assert.Same(t, teams[2], final[0].Team2)
}

func TestSingleEliminationSingleQualifier(t *testing.T) {
	team := models.NewTeam("Solo", "")
	s := NewSingleElimination([]*models.Team{team}, 3)
	assert.True(t, s.IsCompleted())
	assert.Same(t, team, s.Winner())
	assert.Equal(t, 0, s.CurrentRound())
	assert.Nil(t, s.Matches())
}
