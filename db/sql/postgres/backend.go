// Package postgres stores dictionaries and game results in a postgresql
// database.
package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/minseo-kang/wordgrid/db"
	"github.com/minseo-kang/wordgrid/db/sql"
	"github.com/minseo-kang/wordgrid/game"
	"github.com/minseo-kang/wordgrid/game/word"
)

// driverName identifies the postgres driver, registered by importing
// github.com/lib/pq in the main package.
const driverName = "postgres"

// Backend reads the dictionary table and archives finished games.
type Backend struct {
	DB *sql.Database
}

// NewBackend opens a connection pool for the database url.
func NewBackend(cfg db.Config, databaseURL string) (*Backend, error) {
	d, err := sql.NewDatabase(driverName, databaseURL, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating postgres backend: %w", err)
	}
	b := Backend{
		DB: d,
	}
	return &b, nil
}

// Words hydrates the full dictionary table.
func (b *Backend) Words(ctx context.Context) ([]word.Row, error) {
	cmd := "SELECT word, language, length, score FROM dictionary"
	var rows []word.Row
	err := b.DB.QueryRows(ctx, cmd, nil, func(scan func(dest ...interface{}) error) error {
		var r word.Row
		if err := scan(&r.Word, &r.Lang, &r.Length, &r.Score); err != nil {
			return err
		}
		rows = append(rows, r)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("loading dictionary: %w", err)
	}
	return rows, nil
}

// SaveResult inserts the game and its per-player rows in one
// transaction, returning the new game id.
func (b *Backend) SaveResult(ctx context.Context, r game.Result) (string, error) {
	gameID := uuid.NewString()
	stmts := make([]sql.Stmt, 0, 1+len(r.Players))
	stmts = append(stmts, sql.Stmt{
		Cmd:  "INSERT INTO games (id, room_code, winner_id, created_at) VALUES ($1, $2, $3, to_timestamp($4))",
		Args: []interface{}{gameID, r.RoomCode, r.WinnerID, r.CreatedAt},
	})
	for _, p := range r.Players {
		stmts = append(stmts, sql.Stmt{
			Cmd:  "INSERT INTO game_players (game_id, user_id, score, rank) VALUES ($1, $2, $3, $4)",
			Args: []interface{}{gameID, p.UserID, p.Score, p.Rank},
		})
	}
	if err := b.DB.Exec(ctx, stmts...); err != nil {
		return "", fmt.Errorf("saving game result: %w", err)
	}
	return gameID, nil
}
