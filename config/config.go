package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap/zapcore"
)

// Config stores runtime configuration for the tracker.
type Config struct {
	Name      string        `env:"SWISSBRACKET_NAME" envDefault:"Open Cup" validate:"required"`
	Teams     []string      `env:"SWISSBRACKET_TEAMS" envSeparator:","`
	TeamCount int           `env:"SWISSBRACKET_TEAM_COUNT" envDefault:"16" validate:"min=8"`
	BestOf    int           `env:"SWISSBRACKET_BEST_OF" envDefault:"3" validate:"min=1,max=7,odd"`
	Shuffle   bool          `env:"SWISSBRACKET_SHUFFLE" envDefault:"false"`
	DBPath    string        `env:"SWISSBRACKET_DB_PATH"`
	Seed      int64         `env:"SWISSBRACKET_SEED" envDefault:"1"`
	HTTPAddr  string        `env:"SWISSBRACKET_HTTP_ADDR"`
	LogLevel  zapcore.Level `env:"LOG_LEVEL" envDefault:"info"`
}

// TeamNames returns the configured entrants, generating names when none were listed
func (c *Config) TeamNames() []string {
	if len(c.Teams) > 0 {
		return c.Teams
	}
	names := make([]string, c.TeamCount)
	for i := range names {
		names[i] = fmt.Sprintf("Team %d", i+1)
	}
	return names
}

func isOdd(fl validator.FieldLevel) bool {
	return fl.Field().Int()%2 == 1
}

func newValidator() (*validator.Validate, error) {
	v := validator.New()
	if err := v.RegisterValidation("odd", isOdd); err != nil {
		return nil, errors.Wrap(err, "registering odd validation")
	}
	return v, nil
}

// Load parses and validates the configuration from the environment.
func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, errors.Wrap(err, "parsing environment")
	}
	if len(cfg.Teams) > 0 {
		cfg.TeamCount = len(cfg.Teams)
	}
	validate, err := newValidator()
	if err != nil {
		return nil, err
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, errors.Wrap(err, "validating config")
	}
	return &cfg, nil
}
