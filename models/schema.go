package models

import "github.com/cockroachdb/errors"

// Column describes how a record field is stored
type Column struct {
	Field       string
	Storage     string
	Type        string
	Required    bool
	Description string
}

// Schema is the storage layout of one record type. Only storage adapters consume it.
type Schema []Column

var TeamSchema = Schema{
	{"id", "team_id", "integer", true, "Unique identifier for the team"},
	{"name", "team_name", "string", true, "Name of the team"},
	{"logo_url", "logo_url", "string", false, "URL of the team's logo"},
	{"series_won", "series_wons", "integer", true, "Number of series won by the team"},
	{"series_lost", "series_losts", "integer", true, "Number of series lost by the team"},
	{"maps_won", "maps_won", "integer", true, "Number of maps won by the team"},
	{"maps_lost", "maps_lost", "integer", true, "Number of maps lost by the team"},
	{"quickest_map_win_time", "quickest_map_win_time", "float", false, "Quickest map win time in seconds"},
	{"series_ids", "series_ids", "list of strings", false, "Series the team has participated in"},
}

var SeriesSchema = Schema{
	{"id", "series_id", "string", true, "Unique identifier for the series"},
	{"team_a_id", "team_a_id", "integer", true, "Unique identifier for Team A"},
	{"team_b_id", "team_b_id", "integer", true, "Unique identifier for Team B"},
	{"winner_team_id", "winner_team_id", "integer", false, "Unique identifier for the winning team"},
	{"best_of", "best_of", "integer", true, "Number of maps in the series"},
	{"map_results", "map_results", "list of maps", false, "Map results including winner and win time"},
}

var MapSchema = Schema{
	{"map_id", "map_id", "integer", true, "Identifier of the map"},
	{"winner_team_id", "winner_team_id", "integer", true, "Team that won the map"},
	{"win_time", "win_time", "float", true, "Time taken to win the map in seconds"},
}

// Column looks up the column for a field name
func (s Schema) Column(field string) (Column, bool) {
	for _, c := range s {
		if c.Field == field {
			return c, true
		}
	}
	return Column{}, false
}

// Validate checks that every required field is present and set, and that no unknown field is present
func (s Schema) Validate(r Record) error {
	for _, c := range s {
		if !c.Required {
			continue
		}
		v, ok := r.Get(c.Field)
		if !ok || v == nil {
			return errors.Newf("missing required field %q", c.Field)
		}
	}
	for _, f := range r {
		if _, ok := s.Column(f.Name); !ok {
			return errors.Newf("unknown field %q", f.Name)
		}
	}
	return nil
}

// Columns renames the record's fields to their storage names
func (s Schema) Columns(r Record) map[string]interface{} {
	out := make(map[string]interface{}, len(r))
	for _, f := range r {
		if c, ok := s.Column(f.Name); ok {
			out[c.Storage] = f.Value
		}
	}
	return out
}
