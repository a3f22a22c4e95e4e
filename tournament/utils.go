package tournament

import (
	"math"

	"github.com/justinjudd/swissbracket/models"
)

func orderPivots(n int) []int {
	ordered := []int{0}
	for i := n - 1; i > 0; i-- {
		ordered = append(ordered, i)
	}

	return ordered
}

type pivot struct {
	Place int
	Span  int
}

// seed lays teams, ranked best first, into bracket order so that the top seeds
// can only meet in the late rounds. The field is padded with byes (nil) up to
// a power of two.
func seed(ranked []*models.Team) []*models.Team {
	if len(ranked) < 2 {
		return append([]*models.Team(nil), ranked...)
	}
	teamSize := int(math.Pow(2.0, math.Ceil(math.Log2(float64(len(ranked))))))
	teams := make([]*models.Team, teamSize)
	copy(teams, ranked)

	orderedTeams := make([]*models.Team, teamSize)
	count := 0
	pivots := []pivot{{0, len(teams)}}
	place := func(p pivot, order int) {
		a := p.Place
		b := a + 1
		if order%2 != 0 {
			a = a - 1
			if a < 0 {
				a += p.Span
			}
			b = a - 1
		}
		orderedTeams[a] = teams[count]
		orderedTeams[b] = teams[len(teams)-(count+1)]
		count++
	}
	for count < len(teams)/2 {
		ordered := orderPivots(len(pivots))
		order := 0
		for _, i := range ordered {
			place(pivots[i], order)
			order++
		}
		for i := len(ordered) - 1; i >= 0 && count < len(teams)/2; i-- {
			place(pivots[ordered[i]], order)
			order++
		}

		newPivots := []pivot{}
		for _, p := range pivots {
			span := p.Span / 2
			if at := p.Place - span; at > 0 && at < len(teams) {
				newPivots = append(newPivots, pivot{at, span})
			}
			if at := p.Place + span; at > 0 && at < len(teams) {
				newPivots = append(newPivots, pivot{at, span})
			}
		}
		pivots = newPivots
	}

	return orderedTeams
}

func floatTimes(t *float64) []float64 {
	if t == nil {
		return nil
	}
	return []float64{*t}
}

func quickest(times []float64) *float64 {
	var best *float64
	for _, t := range times {
		if best == nil || t < *best {
			v := t
			best = &v
		}
	}
	return best
}
