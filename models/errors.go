package models

import "github.com/cockroachdb/errors"

// Error kinds reported by the ledgers and the tournament orchestrator. Call
// sites wrap them with detail, so match them with errors.Is.
var (
	// ErrInvalidConfiguration is returned when a tournament is set up with a field it cannot run.
	ErrInvalidConfiguration = errors.New("invalid configuration")
	// ErrInvalidState is returned when an operation would break a ledger or stage invariant.
	ErrInvalidState = errors.New("invalid state")
	// ErrNoActivePhase is returned when a result is reported while no stage is running.
	ErrNoActivePhase = errors.New("no active phase")
	// ErrPhaseNotStarted is returned when a phase operation runs before its prerequisite phase exists.
	ErrPhaseNotStarted = errors.New("phase not started")
)
