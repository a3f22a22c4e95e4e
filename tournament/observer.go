package tournament

import (
	"go.uber.org/zap"

	"github.com/justinjudd/swissbracket/models"
)

// Observer is notified as a tournament moves through its phases. Rendering is left entirely to implementations.
type Observer interface {
	PhaseStarted(t *Tournament, phase models.Phase)
	RoundStarted(t *Tournament, phase models.Phase, round int)
	QualifiersDetermined(t *Tournament, qualifiers []*models.Team)
	ChampionDetermined(t *Tournament, champion *models.Team)
}

type nopObserver struct{}

func (nopObserver) PhaseStarted(*Tournament, models.Phase)           {}
func (nopObserver) RoundStarted(*Tournament, models.Phase, int)      {}
func (nopObserver) QualifiersDetermined(*Tournament, []*models.Team) {}
func (nopObserver) ChampionDetermined(*Tournament, *models.Team)     {}

type logObserver struct {
	log *zap.Logger
}

// NewLogObserver returns an Observer writing every transition to log
func NewLogObserver(log *zap.Logger) Observer {
	return &logObserver{log: log}
}

func (o *logObserver) PhaseStarted(t *Tournament, phase models.Phase) {
	o.log.Info("phase started",
		zap.String("tournament", t.Name()),
		zap.Stringer("phase", phase),
		zap.Int("teams", len(t.Teams())),
	)
}

func (o *logObserver) RoundStarted(t *Tournament, phase models.Phase, round int) {
	o.log.Info("round started",
		zap.String("tournament", t.Name()),
		zap.Stringer("phase", phase),
		zap.Int("round", round),
	)
}

func (o *logObserver) QualifiersDetermined(t *Tournament, qualifiers []*models.Team) {
	names := make([]string, len(qualifiers))
	for i, q := range qualifiers {
		names[i] = q.Name
	}
	o.log.Info("qualified for playoffs", zap.String("tournament", t.Name()), zap.Strings("teams", names))
}

func (o *logObserver) ChampionDetermined(t *Tournament, champion *models.Team) {
	o.log.Info("tournament champion",
		zap.String("tournament", t.Name()),
		zap.String("champion", champion.Name),
		zap.Float64("series_win_rate", champion.SeriesWinRate()),
		zap.Float64("maps_win_rate", champion.MapsWinRate()),
	)
}
