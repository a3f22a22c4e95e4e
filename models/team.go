package models

import "github.com/cockroachdb/errors"

// TeamStats is a snapshot of a team's cumulative record
type TeamStats struct {
	SeriesWon          int
	SeriesLost         int
	MapsWon            int
	MapsLost           int
	QuickestMapWinTime *float64
}

// Team is a tournament entrant together with its statistical ledger. Counters
// only change through RecordSeriesResult and AddSeries.
type Team struct {
	ID      uint64
	Name    string
	LogoURL string

	seriesWon          int
	seriesLost         int
	mapsWon            int
	mapsLost           int
	quickestMapWinTime *float64
	seriesIDs          []string
}

// NewTeam creates a team with an empty record
func NewTeam(name, logoURL string) *Team {
	return &Team{Name: name, LogoURL: logoURL}
}

// RestoreTeam rebuilds a team from a stored record. It fails with ErrInvalidState if any counter is negative.
func RestoreTeam(id uint64, name, logoURL string, stats TeamStats, seriesIDs []string) (*Team, error) {
	if stats.SeriesWon < 0 || stats.SeriesLost < 0 || stats.MapsWon < 0 || stats.MapsLost < 0 {
		return nil, errors.Wrapf(ErrInvalidState, "team %q: win and loss counts cannot be negative", name)
	}
	t := &Team{
		ID:         id,
		Name:       name,
		LogoURL:    logoURL,
		seriesWon:  stats.SeriesWon,
		seriesLost: stats.SeriesLost,
		mapsWon:    stats.MapsWon,
		mapsLost:   stats.MapsLost,
	}
	if stats.QuickestMapWinTime != nil {
		v := *stats.QuickestMapWinTime
		t.quickestMapWinTime = &v
	}
	for _, id := range seriesIDs {
		t.AddSeries(id)
	}
	return t, nil
}

// RecordSeriesResult adds one finished series to the ledger. A nil mapWinTimes means no times were recorded.
func (t *Team) RecordSeriesResult(won bool, mapsWon, mapsLost int, mapWinTimes []float64) {
	if won {
		t.seriesWon++
	} else {
		t.seriesLost++
	}
	t.mapsWon += mapsWon
	t.mapsLost += mapsLost
	t.quickestMapWinTime = minTime(t.quickestMapWinTime, mapWinTimes)
}

// AddSeries records participation in a series. Adding the same id twice has no effect.
func (t *Team) AddSeries(seriesID string) {
	for _, id := range t.seriesIDs {
		if id == seriesID {
			return
		}
	}
	t.seriesIDs = append(t.seriesIDs, seriesID)
}

func (t *Team) SeriesWon() int  { return t.seriesWon }
func (t *Team) SeriesLost() int { return t.seriesLost }
func (t *Team) MapsWon() int    { return t.mapsWon }
func (t *Team) MapsLost() int   { return t.mapsLost }

// QuickestMapWinTime returns the fastest recorded map win in seconds, if any
func (t *Team) QuickestMapWinTime() (float64, bool) {
	if t.quickestMapWinTime == nil {
		return 0, false
	}
	return *t.quickestMapWinTime, true
}

// SeriesIDs returns the series the team has played in
func (t *Team) SeriesIDs() []string {
	out := make([]string, len(t.seriesIDs))
	copy(out, t.seriesIDs)
	return out
}

// Stats returns a snapshot of the team's counters
func (t *Team) Stats() TeamStats {
	s := TeamStats{
		SeriesWon:  t.seriesWon,
		SeriesLost: t.seriesLost,
		MapsWon:    t.mapsWon,
		MapsLost:   t.mapsLost,
	}
	if t.quickestMapWinTime != nil {
		v := *t.quickestMapWinTime
		s.QuickestMapWinTime = &v
	}
	return s
}

func (t *Team) TotalSeriesPlayed() int {
	return t.seriesWon + t.seriesLost
}

func (t *Team) TotalMapsPlayed() int {
	return t.mapsWon + t.mapsLost
}

// SeriesWinRate is the percentage of series won, 0 when none were played
func (t *Team) SeriesWinRate() float64 {
	return rate(t.seriesWon, t.TotalSeriesPlayed())
}

// MapsWinRate is the percentage of maps won, 0 when none were played
func (t *Team) MapsWinRate() float64 {
	return rate(t.mapsWon, t.TotalMapsPlayed())
}

func rate(won, total int) float64 {
	if total == 0 {
		return 0.0
	}
	return float64(won) / float64(total) * 100
}

// Equals compares teams by identity
func (t *Team) Equals(t2 *Team) bool {
	if t == nil || t2 == nil {
		return t == t2
	}
	if t.ID != 0 || t2.ID != 0 {
		return t.ID == t2.ID
	}
	return t == t2
}

// Fields returns the ordered serialization of the team
func (t *Team) Fields() Record {
	var quickest interface{}
	if t.quickestMapWinTime != nil {
		quickest = *t.quickestMapWinTime
	}
	return Record{
		{"id", t.ID},
		{"name", t.Name},
		{"logo_url", t.LogoURL},
		{"series_won", t.seriesWon},
		{"series_lost", t.seriesLost},
		{"maps_won", t.mapsWon},
		{"maps_lost", t.mapsLost},
		{"quickest_map_win_time", quickest},
		{"series_ids", t.SeriesIDs()},
	}
}
