package competition

import (
	"bytes"
	"fmt"
	"html/template"
	"reflect"

	"github.com/justinjudd/swissbracket/models"
	"github.com/justinjudd/swissbracket/tournament"
)

const standingsHTML = `
<table class="standings">
<caption>Swiss stage{{if .Completed}} (final){{else}} round {{.Round}} of {{.Rounds}}{{end}}</caption>
<tr><th>#</th><th>Team</th><th>W</th><th>L</th><th>Maps</th><th>Series %</th><th>Maps %</th></tr>
{{ range $i, $row := .Rows -}}
<tr{{if qualified $i}} class="qualified"{{end}}><td>{{inc $i}}</td><td>{{if $row.Team.LogoURL}}<img src="{{$row.Team.LogoURL}}">{{end}}{{$row.Team.Name}}</td><td>{{$row.Wins}}</td><td>{{$row.Losses}}</td><td>{{signed $row.MapDiff}}</td><td>{{percent $row.Team.SeriesWinRate}}</td><td>{{percent $row.Team.MapsWinRate}}</td></tr>
{{ end }}</table>
`

// Table is the Swiss standings view
type Table struct {
	Rows       []models.Standing
	Round      int
	Rounds     int
	Completed  bool
	Qualifying int
}

// ToHTML renders the standings table
func (t *Table) ToHTML() ([]byte, error) {
	funcMap := template.FuncMap{
		"inc": func(i int) int {
			return i + 1
		},
		"qualified": func(i int) bool {
			return t.Completed && i < t.Qualifying
		},
		"signed": func(n int) string {
			return fmt.Sprintf("%+d", n)
		},
		"percent": func(f float64) string {
			return fmt.Sprintf("%.1f", f)
		},
	}
	tmpl, err := template.New("table").Funcs(funcMap).Parse(standingsHTML)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	err = tmpl.Execute(&buf, t)
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

const bracketHTML = `
<h4>Playoffs</h4>
<main class="bracket">
{{ range $i, $round := .Rounds }}
    <ul>
    {{ range $j, $game := $round -}}
        <li class="game game-top{{if winner $game $game.Team1}} winner{{end}}">{{name $game.Team1}} <span>{{if played $game}}{{maps $game 1}}{{end}}</span></li>
        <li class="game game-bottom{{if winner $game $game.Team2}} winner{{end}}">{{name $game.Team2}} <span>{{if played $game}}{{maps $game 2}}{{end}}</span></li>
        {{if last $j $round | not }}<li>&nbsp;</li> {{end}}
    {{ end -}}</ul>
{{ end }}{{with .Champion}}<ul><li class="game round-winner">{{if .LogoURL}}<img src="{{.LogoURL}}">{{else}}<span></span>{{end}}{{.Name}} <span></span></li></ul>{{end}}
</main>
`

// Bracket is the playoff bracket view
type Bracket struct {
	Rounds   [][]*models.Match
	Champion *models.Team
}

// FancyHTML renders the bracket as nested lists, one per round
func (b Bracket) FancyHTML() ([]byte, error) {
	funcMap := template.FuncMap{
		"last": func(x int, a interface{}) bool {
			return x == reflect.ValueOf(a).Len()-1
		},
		"winner": func(game *models.Match, team *models.Team) bool {
			return team != nil && game.Winner() == team
		},
		"played": func(game *models.Match) bool {
			return game.IsCompleted() && !models.IsByeMatch(game)
		},
		"maps": func(game *models.Match, side int) int {
			team1, team2 := game.Maps()
			if side == 1 {
				return team1
			}
			return team2
		},
		"name": func(team *models.Team) string {
			if models.IsByeTeam(team) {
				return "BYE"
			}
			return team.Name
		},
	}
	tmpl, err := template.New("bracket").Funcs(funcMap).Parse(bracketHTML)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, b)
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// GenerateTournamentHTML renders the Swiss standings and, once started, the playoff bracket of t
func GenerateTournamentHTML(t *tournament.Tournament) ([]byte, error) {
	var out []byte

	out = append(out, []byte("<h1>"+template.HTMLEscapeString(t.Name())+"</h1>")...)

	if swiss := t.Swiss(); swiss != nil {
		table := Table{
			Rows:       swiss.Standings(),
			Round:      swiss.CurrentRound(),
			Rounds:     t.TotalSwissRounds(),
			Completed:  swiss.IsCompleted(),
			Qualifying: len(swiss.Qualifiers()),
		}
		h, err := table.ToHTML()
		if err != nil {
			return nil, err
		}
		out = append(out, h...)
	}

	if playoffs := t.Playoffs(); playoffs != nil {
		bracket := Bracket{Rounds: playoffs.Rounds(), Champion: t.Champion()}
		h, err := bracket.FancyHTML()
		if err != nil {
			return nil, err
		}
		out = append(out, h...)
	}

	return out, nil
}
