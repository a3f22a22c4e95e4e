package server

import (
	"net/http"
	"strconv"

	"github.com/bytedance/sonic"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	competition "github.com/justinjudd/swissbracket"
	"github.com/justinjudd/swissbracket/models"
	"github.com/justinjudd/swissbracket/tournament"
)

type summary struct {
	ID               uint64        `json:"id"`
	Name             string        `json:"name"`
	Phase            string        `json:"phase"`
	Round            int           `json:"round"`
	TotalSwissRounds int           `json:"total_swiss_rounds"`
	Champion         models.Record `json:"champion,omitempty"`
	Teams            int           `json:"teams"`
}

type server struct {
	t   *tournament.Tournament
	log *zap.Logger
}

// New returns a read-only HTTP view of t. Callers must not mutate t while the handler is serving.
func New(t *tournament.Tournament, log *zap.Logger) http.Handler {
	if log == nil {
		log = zap.NewNop()
	}
	s := &server{t: t, log: log}

	r := mux.NewRouter()
	r.HandleFunc("/", s.handleHTML).Methods(http.MethodGet)
	r.HandleFunc("/tournament", s.handleTournament).Methods(http.MethodGet)
	r.HandleFunc("/teams", s.handleTeams).Methods(http.MethodGet)
	r.HandleFunc("/teams/{id:[0-9]+}", s.handleTeam).Methods(http.MethodGet)
	return r
}

func (s *server) handleHTML(w http.ResponseWriter, r *http.Request) {
	body, err := competition.GenerateTournamentHTML(s.t)
	if err != nil {
		s.log.Error("rendering tournament", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(body)
}

func (s *server) handleTournament(w http.ResponseWriter, r *http.Request) {
	out := summary{
		ID:               s.t.ID(),
		Name:             s.t.Name(),
		Phase:            s.t.Phase().String(),
		Round:            s.t.CurrentRound(),
		TotalSwissRounds: s.t.TotalSwissRounds(),
		Teams:            len(s.t.Teams()),
	}
	if champion := s.t.Champion(); champion != nil {
		out.Champion = champion.Fields()
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *server) handleTeams(w http.ResponseWriter, r *http.Request) {
	teams := s.t.Teams()
	out := make([]models.Record, len(teams))
	for i, t := range teams {
		out[i] = t.Fields()
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *server) handleTeam(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid team id"})
		return
	}
	team, ok := s.t.Team(id)
	if !ok {
		s.writeJSON(w, http.StatusNotFound, map[string]string{"error": "team not found"})
		return
	}
	s.writeJSON(w, http.StatusOK, team.Fields())
}

func (s *server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	body, err := sonic.Marshal(v)
	if err != nil {
		s.log.Error("encoding response", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}
