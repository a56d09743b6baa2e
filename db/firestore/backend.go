// Package firestore archives game results in a google cloud firestore
// database.
package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"

	"github.com/minseo-kang/wordgrid/db"
	"github.com/minseo-kang/wordgrid/game"
)

// Backend archives finished games.
type Backend struct {
	client *firestore.Client
	db.Config
}

// NewBackend creates a firestore client for the project.
func NewBackend(ctx context.Context, cfg db.Config, projectID string) (*Backend, error) {
	b := Backend{
		Config: cfg,
	}
	client, err := firestore.NewClient(ctx, projectID) // do not timeout context - the client outlives the call
	if err != nil {
		return nil, fmt.Errorf("creating firestore client: %w", err)
	}
	b.client = client
	return &b, nil
}

func (b *Backend) gamesCollection() *firestore.CollectionRef {
	return b.client.Collection("services").Doc("wordgrid").Collection("games")
}

// SaveResult stores the game document under a generated id.
func (b *Backend) SaveResult(ctx context.Context, r game.Result) (string, error) {
	gameID := uuid.NewString()
	players := make([]map[string]interface{}, len(r.Players))
	for i, p := range r.Players {
		players[i] = map[string]interface{}{
			"user_id": p.UserID,
			"score":   p.Score,
			"rank":    p.Rank,
		}
	}
	m := map[string]interface{}{
		"room_code":  r.RoomCode,
		"winner_id":  r.WinnerID,
		"created_at": r.CreatedAt,
		"players":    players,
	}
	ctx, cancelFunc := context.WithTimeout(ctx, b.QueryPeriod)
	defer cancelFunc()
	if _, err := b.gamesCollection().Doc(gameID).Create(ctx, m); err != nil {
		return "", fmt.Errorf("saving game result: %w", err)
	}
	return gameID, nil
}
