// Package db declares the shared configuration of the storage backends
// and the fallbacks used when the server runs without a database.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/minseo-kang/wordgrid/game"
	"github.com/minseo-kang/wordgrid/game/word"
)

type (
	// Config contains the properties shared by all backends.
	Config struct {
		// QueryPeriod is the amount of time each database request can
		// take before it fails.
		QueryPeriod time.Duration
	}

	// NoBackend is the storage used when no database is configured.
	// Dictionaries come up empty (and therefore permissive), and game
	// results are not persisted.
	NoBackend struct{}
)

// validate ensures the configuration has no errors.
func (cfg Config) validate() error {
	if cfg.QueryPeriod <= 0 {
		return fmt.Errorf("positive query period required")
	}
	return nil
}

// Words returns no rows, leaving the dictionary permissive.
func (b NoBackend) Words(ctx context.Context) ([]word.Row, error) {
	return nil, nil
}

// SaveResult returns an error; finished games are not archived.
func (b NoBackend) SaveResult(ctx context.Context, r game.Result) (string, error) {
	return "", fmt.Errorf("no database to save game result")
}
