package models

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRestoreTeamRejectsNegativeCounters(t *testing.T) {
	cases := []TeamStats{
		{SeriesWon: -1},
		{SeriesLost: -1},
		{MapsWon: -1},
		{MapsLost: -1},
	}
	for _, stats := range cases {
		_, err := RestoreTeam(1, "Falcons", "", stats, nil)
		assert.True(t, errors.Is(err, ErrInvalidState), "stats %+v", stats)
	}

	team, err := RestoreTeam(7, "Falcons", "falcons.png", TeamStats{SeriesWon: 2, SeriesLost: 1, MapsWon: 5, MapsLost: 3}, []string{"a", "b", "a"})
	require.NoError(t, err)
	assert.Equal(t, uint64(7), team.ID)
	assert.Equal(t, 3, team.TotalSeriesPlayed())
	assert.Equal(t, []string{"a", "b"}, team.SeriesIDs())
}

func TestRecordSeriesResult(t *testing.T) {
	team := NewTeam("Vitality", "")

	team.RecordSeriesResult(true, 2, 1, []float64{1500, 1320.5})
	team.RecordSeriesResult(false, 0, 2, nil)
	team.RecordSeriesResult(false, 1, 2, []float64{1800})

	assert.Equal(t, 1, team.SeriesWon())
	assert.Equal(t, 2, team.SeriesLost())
	assert.Equal(t, 3, team.MapsWon())
	assert.Equal(t, 5, team.MapsLost())
	assert.Equal(t, 3, team.TotalSeriesPlayed())
	assert.Equal(t, 8, team.TotalMapsPlayed())

	quickest, ok := team.QuickestMapWinTime()
	require.True(t, ok)
	assert.Equal(t, 1320.5, quickest)

	team.RecordSeriesResult(true, 2, 0, []float64{900})
	quickest, _ = team.QuickestMapWinTime()
	assert.Equal(t, 900.0, quickest)
}

func TestQuickestMapWinTimeUnsetUntilRecorded(t *testing.T) {
	team := NewTeam("MOUZ", "")
	_, ok := team.QuickestMapWinTime()
	assert.False(t, ok)

	team.RecordSeriesResult(true, 2, 0, []float64{})
	_, ok = team.QuickestMapWinTime()
	assert.False(t, ok)

	team.RecordSeriesResult(true, 2, 0, []float64{1200})
	team.RecordSeriesResult(true, 2, 0, []float64{1300})
	quickest, ok := team.QuickestMapWinTime()
	require.True(t, ok)
	assert.Equal(t, 1200.0, quickest)
}

func TestSeriesCountNeverExceedsCalls(t *testing.T) {
	team := NewTeam("G2", "")
	previous := 0
	for i := 1; i <= 20; i++ {
		team.RecordSeriesResult(i%3 == 0, i%2, (i+1)%2, nil)
		total := team.TotalSeriesPlayed()
		assert.GreaterOrEqual(t, total, previous)
		assert.LessOrEqual(t, total, i)
		previous = total

		stats := team.Stats()
		for _, c := range []int{stats.SeriesWon, stats.SeriesLost, stats.MapsWon, stats.MapsLost} {
			assert.GreaterOrEqual(t, c, 0)
		}
	}
}

func TestWinRates(t *testing.T) {
	team := NewTeam("NAVI", "")
	assert.Equal(t, 0.0, team.SeriesWinRate())
	assert.Equal(t, 0.0, team.MapsWinRate())

	team.RecordSeriesResult(true, 2, 1, nil)
	team.RecordSeriesResult(false, 1, 2, nil)
	team.RecordSeriesResult(true, 2, 0, nil)
	team.RecordSeriesResult(true, 2, 0, nil)

	assert.Equal(t, 75.0, team.SeriesWinRate())
	assert.InDelta(t, 7.0/10.0*100, team.MapsWinRate(), 1e-9)
}

func TestAddSeriesIsIdempotent(t *testing.T) {
	team := NewTeam("FaZe", "")
	team.AddSeries("s1")
	team.AddSeries("s2")
	team.AddSeries("s1")
	assert.Equal(t, []string{"s1", "s2"}, team.SeriesIDs())

	ids := team.SeriesIDs()
	ids[0] = "changed"
	assert.Equal(t, "s1", team.SeriesIDs()[0])
}

func TestTeamFields(t *testing.T) {
	team := NewTeam("Liquid", "liquid.png")
	team.ID = 3
	team.RecordSeriesResult(true, 2, 1, []float64{1000})
	team.AddSeries("s1")

	rec := team.Fields()
	assert.Equal(t, []string{"id", "name", "logo_url", "series_won", "series_lost", "maps_won", "maps_lost", "quickest_map_win_time", "series_ids"}, rec.Names())
	v, ok := rec.Get("quickest_map_win_time")
	require.True(t, ok)
	assert.Equal(t, 1000.0, v)
	require.NoError(t, TeamSchema.Validate(rec))

	body, err := rec.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":3,"name":"Liquid","logo_url":"liquid.png","series_won":1,"series_lost":0,"maps_won":2,"maps_lost":1,"quickest_map_win_time":1000,"series_ids":["s1"]}`, string(body))
}

func TestTeamEquals(t *testing.T) {
	a := NewTeam("A", "")
	b := NewTeam("A", "")
	assert.True(t, a.Equals(a))
	assert.False(t, a.Equals(b))
	assert.False(t, a.Equals(nil))

	a.ID, b.ID = 4, 4
	assert.True(t, a.Equals(b))
}
