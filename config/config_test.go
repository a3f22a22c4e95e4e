package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "Open Cup", cfg.Name)
	assert.Equal(t, 16, cfg.TeamCount)
	assert.Equal(t, 3, cfg.BestOf)
	assert.Equal(t, int64(1), cfg.Seed)
	assert.False(t, cfg.Shuffle)
	assert.Empty(t, cfg.DBPath)
	assert.Equal(t, zapcore.InfoLevel, cfg.LogLevel)

	names := cfg.TeamNames()
	require.Len(t, names, 16)
	assert.Equal(t, "Team 1", names[0])
	assert.Equal(t, "Team 16", names[15])
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SWISSBRACKET_NAME", "Winter Major")
	t.Setenv("SWISSBRACKET_TEAMS", "a,b,c,d,e,f,g,h,i")
	t.Setenv("SWISSBRACKET_BEST_OF", "5")
	t.Setenv("SWISSBRACKET_SHUFFLE", "true")
	t.Setenv("SWISSBRACKET_DB_PATH", "/tmp/major.db")
	t.Setenv("SWISSBRACKET_HTTP_ADDR", ":8080")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "Winter Major", cfg.Name)
	assert.Equal(t, 9, cfg.TeamCount)
	assert.Equal(t, []string{"a", "b", "c", "d", "e", "f", "g", "h", "i"}, cfg.TeamNames())
	assert.Equal(t, 5, cfg.BestOf)
	assert.True(t, cfg.Shuffle)
	assert.Equal(t, "/tmp/major.db", cfg.DBPath)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, zapcore.DebugLevel, cfg.LogLevel)
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"even best of", "SWISSBRACKET_BEST_OF", "4"},
		{"best of too long", "SWISSBRACKET_BEST_OF", "9"},
		{"zero best of", "SWISSBRACKET_BEST_OF", "0"},
		{"small field", "SWISSBRACKET_TEAM_COUNT", "7"},
		{"too few listed teams", "SWISSBRACKET_TEAMS", "a,b,c"},
		{"bad number", "SWISSBRACKET_TEAM_COUNT", "many"},
		{"bad level", "LOG_LEVEL", "loud"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestNewValidator(t *testing.T) {
	v, err := newValidator()
	require.NoError(t, err)

	type bestOf struct {
		N int `validate:"odd"`
	}
	assert.NoError(t, v.Struct(bestOf{N: 5}))
	assert.Error(t, v.Struct(bestOf{N: 4}))
}
