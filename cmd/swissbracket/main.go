package main

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	competition "github.com/justinjudd/swissbracket"
	"github.com/justinjudd/swissbracket/config"
	"github.com/justinjudd/swissbracket/models"
	"github.com/justinjudd/swissbracket/models/memory"
	"github.com/justinjudd/swissbracket/models/storm"
	"github.com/justinjudd/swissbracket/server"
	"github.com/justinjudd/swissbracket/tournament"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %+v\n", err)
		os.Exit(1)
	}
}

func newLogger(w io.Writer, level zapcore.Level) *zap.Logger {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "time"
	encoderCfg.EncodeTime = zapcore.RFC3339NanoTimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), zapcore.Lock(zapcore.AddSync(w)), level)
	return zap.New(core, zap.AddCaller())
}

func run(ctx context.Context, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "loading config")
	}

	log := newLogger(stdout, cfg.LogLevel)
	defer log.Sync()

	var store models.StorageEngine
	if cfg.DBPath != "" {
		db, err := storm.NewStorageEngine(cfg.DBPath, log.Named("storm"))
		if err != nil {
			return err
		}
		defer db.Close()
		store = db
		log.Info("opened storage", zap.String("path", cfg.DBPath))
	} else {
		store = memory.NewStorageEngine()
		log.Info("using in-memory storage")
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	var teams []*models.Team
	for _, name := range cfg.TeamNames() {
		teams = append(teams, models.NewTeam(name, ""))
	}
	if cfg.Shuffle {
		competition.RandomizeTeams(teams, rng)
	}

	t, err := tournament.New(cfg.Name, teams, store,
		tournament.WithBestOf(cfg.BestOf),
		tournament.WithLogger(log.Named("tournament")),
		tournament.WithObserver(tournament.NewLogObserver(log)),
	)
	if err != nil {
		return errors.Wrap(err, "creating tournament")
	}

	champion, err := competition.Simulate(t, rng)
	if err != nil {
		return errors.Wrap(err, "running tournament")
	}
	log.Info("tournament finished", zap.String("champion", champion.Name), zap.Int("teams", len(teams)))

	if cfg.HTTPAddr == "" {
		return nil
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           server.New(t, log.Named("http")),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		log.Info("starting http server", zap.String("addr", cfg.HTTPAddr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "serving http")
	case <-ctx.Done():
		log.Info("shutting down http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
