package tournament

import (
	"sort"

	"github.com/cockroachdb/errors"

	"github.com/justinjudd/swissbracket/models"
)

type swissRecord struct {
	seed      int
	wins      int
	losses    int
	mapDiff   int
	byes      int
	opponents map[*models.Team]bool
}

// Swiss fulfills the SwissStage interface. Every round pairs teams with similar records, nobody is eliminated,
// and after a fixed number of rounds the best ranked teams qualify.
type Swiss struct {
	teams   []*models.Team
	rounds  int
	bestOf  int
	matches [][]*models.Match
	records map[*models.Team]*swissRecord
}

// NewSwiss creates a Swiss stage over teams, given best seed first, lasting the given number of rounds
func NewSwiss(teams []*models.Team, rounds, bestOf int) *Swiss {
	s := &Swiss{
		teams:   append([]*models.Team(nil), teams...),
		rounds:  rounds,
		bestOf:  bestOf,
		records: make(map[*models.Team]*swissRecord, len(teams)),
	}
	for i, t := range teams {
		s.records[t] = &swissRecord{seed: i, opponents: map[*models.Team]bool{}}
	}
	return s
}

func (s *Swiss) CurrentRound() int {
	return len(s.matches)
}

// TotalRounds is the number of rounds the stage lasts
func (s *Swiss) TotalRounds() int {
	return s.rounds
}

func (s *Swiss) roundComplete() bool {
	if len(s.matches) == 0 {
		return false
	}
	for _, m := range s.matches[len(s.matches)-1] {
		if !m.IsCompleted() {
			return false
		}
	}
	return true
}

func (s *Swiss) IsCompleted() bool {
	return s.CurrentRound() == s.rounds && s.roundComplete()
}

func (s *Swiss) StartNextRound() error {
	if s.CurrentRound() > 0 && !s.roundComplete() {
		return errors.Wrapf(models.ErrInvalidState, "can't start a new round until round %d is completed", s.CurrentRound())
	}
	if s.CurrentRound() >= s.rounds {
		return errors.Wrapf(models.ErrInvalidState, "all %d swiss rounds have been played", s.rounds)
	}

	round := s.CurrentRound() + 1
	pool := s.ranked()
	var games []*models.Match

	if len(pool)%2 != 0 {
		bye := s.byeCandidate(pool)
		for i, t := range pool {
			if t == bye {
				pool = append(pool[:i], pool[i+1:]...)
				break
			}
		}
		m := models.NewMatch(round, bye, nil, s.bestOf)
		m.SetResult(bye, 0, 0)
		s.records[bye].wins++
		s.records[bye].byes++
		games = append(games, m)
	}

	if round == 1 {
		half := len(pool) / 2
		for i := 0; i < half; i++ {
			games = append(games, s.pair(round, pool[i], pool[i+half]))
		}
	} else {
		pairs := s.avoidRematches(pool)
		if pairs == nil {
			pairs = s.closestPairs(pool)
		}
		for _, p := range pairs {
			games = append(games, s.pair(round, p[0], p[1]))
		}
	}

	s.matches = append(s.matches, games)
	return nil
}

// byeCandidate is the lowest ranked team that has had the fewest byes
func (s *Swiss) byeCandidate(ranked []*models.Team) *models.Team {
	best := ranked[len(ranked)-1]
	for i := len(ranked) - 1; i >= 0; i-- {
		if s.records[ranked[i]].byes < s.records[best].byes {
			best = ranked[i]
		}
	}
	return best
}

// maxPairingSteps bounds the rematch search on large pools
const maxPairingSteps = 1 << 16

// avoidRematches pairs the ranked pool from the top, each team against the
// best ranked team it has not met yet, backtracking when the teams left over
// can't all get new opponents. Nil if no such pairing was found.
func (s *Swiss) avoidRematches(pool []*models.Team) [][2]*models.Team {
	steps := maxPairingSteps
	return s.searchPairs(pool, &steps)
}

func (s *Swiss) searchPairs(pool []*models.Team, steps *int) [][2]*models.Team {
	if len(pool) < 2 {
		return [][2]*models.Team{}
	}
	a := pool[0]
	for j := 1; j < len(pool) && *steps > 0; j++ {
		b := pool[j]
		if s.records[a].opponents[b] {
			continue
		}
		*steps--
		rest := make([]*models.Team, 0, len(pool)-2)
		rest = append(rest, pool[1:j]...)
		rest = append(rest, pool[j+1:]...)
		if pairs := s.searchPairs(rest, steps); pairs != nil {
			return append([][2]*models.Team{{a, b}}, pairs...)
		}
	}
	return nil
}

// closestPairs pairs the ranked pool greedily, allowing rematches once a team
// has met everyone still unpaired
func (s *Swiss) closestPairs(pool []*models.Team) [][2]*models.Team {
	pool = append([]*models.Team(nil), pool...)
	var pairs [][2]*models.Team
	for len(pool) > 1 {
		a := pool[0]
		j := 1
		for k := 1; k < len(pool); k++ {
			if !s.records[a].opponents[pool[k]] {
				j = k
				break
			}
		}
		pairs = append(pairs, [2]*models.Team{a, pool[j]})
		pool = append(pool[1:j], pool[j+1:]...)
	}
	return pairs
}

func (s *Swiss) pair(round int, a, b *models.Team) *models.Match {
	s.records[a].opponents[b] = true
	s.records[b].opponents[a] = true
	return models.NewMatch(round, a, b, s.bestOf)
}

func (s *Swiss) RecordMatchResult(match *models.Match, winner *models.Team, team1MapsWon, team2MapsWon int, team1WinTime, team2WinTime *float64) error {
	if !s.inCurrentRound(match) {
		return errors.Wrap(models.ErrInvalidState, "match is not part of the current swiss round")
	}
	if match.IsCompleted() {
		return errors.Wrapf(models.ErrInvalidState, "match %s already has a result", match.ID)
	}
	if models.IsByeMatch(match) {
		return errors.Wrapf(models.ErrInvalidState, "match %s is a bye", match.ID)
	}
	if !match.HasTeam(winner) {
		return errors.Wrapf(models.ErrInvalidState, "winner %q does not play in match %s", teamName(winner), match.ID)
	}
	winner = match.Side(winner)

	match.SetResult(winner, team1MapsWon, team2MapsWon)
	loser := match.Loser()
	s.records[winner].wins++
	s.records[loser].losses++
	diff := team1MapsWon - team2MapsWon
	s.records[match.Team1].mapDiff += diff
	s.records[match.Team2].mapDiff -= diff
	return nil
}

func (s *Swiss) inCurrentRound(match *models.Match) bool {
	if match == nil || len(s.matches) == 0 {
		return false
	}
	for _, m := range s.matches[len(s.matches)-1] {
		if m == match {
			return true
		}
	}
	return false
}

func (s *Swiss) ranked() []*models.Team {
	ranked := append([]*models.Team(nil), s.teams...)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := s.records[ranked[i]], s.records[ranked[j]]
		if a.wins != b.wins {
			return a.wins > b.wins
		}
		if a.losses != b.losses {
			return a.losses < b.losses
		}
		if a.mapDiff != b.mapDiff {
			return a.mapDiff > b.mapDiff
		}
		return a.seed < b.seed
	})
	return ranked
}

// Qualifiers returns the best ranked teams, as many as the largest power of two not above half the field
func (s *Swiss) Qualifiers() []*models.Team {
	n := 1
	for n*2 <= len(s.teams)/2 {
		n *= 2
	}
	if n < 2 {
		n = 2
	}
	return s.ranked()[:n]
}

func (s *Swiss) Matches() []*models.Match {
	if len(s.matches) == 0 {
		return nil
	}
	return append([]*models.Match(nil), s.matches[len(s.matches)-1]...)
}

func (s *Swiss) Standings() []models.Standing {
	ranked := s.ranked()
	out := make([]models.Standing, len(ranked))
	for i, t := range ranked {
		r := s.records[t]
		out[i] = models.Standing{Team: t, Wins: r.wins, Losses: r.losses, MapDiff: r.mapDiff}
	}
	return out
}

func teamName(t *models.Team) string {
	if t == nil {
		return "BYE"
	}
	return t.Name
}
