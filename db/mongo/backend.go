// Package mongo stores dictionaries and game results in mongodb.
package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/minseo-kang/wordgrid/db"
	"github.com/minseo-kang/wordgrid/game"
	"github.com/minseo-kang/wordgrid/game/word"
)

const (
	databaseName   = "wordgrid-db"
	wordCollection = "dictionary"
	gameCollection = "games"
)

// Backend reads the dictionary collection and archives finished games.
type Backend struct {
	Dict  *mongo.Collection
	Games *mongo.Collection
	db.Config
}

// NewBackend connects to the mongodb instance at the url.
func NewBackend(ctx context.Context, cfg db.Config, databaseURL string) (*Backend, error) {
	clientOptions := options.Client()
	clientOptions.ApplyURI(databaseURL)
	ctx, cancelFunc := context.WithTimeout(ctx, cfg.QueryPeriod)
	defer cancelFunc()
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("connecting to mongodb: %w", err)
	}
	database := client.Database(databaseName)
	b := Backend{
		Dict:   database.Collection(wordCollection),
		Games:  database.Collection(gameCollection),
		Config: cfg,
	}
	return &b, nil
}

// wordDoc is the stored form of a dictionary row.
type wordDoc struct {
	Word   string `bson:"word"`
	Lang   string `bson:"language"`
	Length int    `bson:"length"`
	Score  int    `bson:"score"`
}

// Words hydrates the full dictionary collection.
func (b *Backend) Words(ctx context.Context) ([]word.Row, error) {
	ctx, cancelFunc := context.WithTimeout(ctx, b.QueryPeriod)
	defer cancelFunc()
	cursor, err := b.Dict.Find(ctx, d())
	if err != nil {
		return nil, fmt.Errorf("loading dictionary: %w", err)
	}
	defer cursor.Close(ctx)
	var rows []word.Row
	for cursor.Next(ctx) {
		var doc wordDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decoding dictionary row: %w", err)
		}
		rows = append(rows, word.Row{
			Word:   doc.Word,
			Lang:   game.Lang(doc.Lang),
			Length: doc.Length,
			Score:  doc.Score,
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterating dictionary rows: %w", err)
	}
	return rows, nil
}

// SaveResult inserts the game document and returns its generated id.
func (b *Backend) SaveResult(ctx context.Context, r game.Result) (string, error) {
	players := make([]bson.D, len(r.Players))
	for i, p := range r.Players {
		players[i] = d(
			e("user_id", p.UserID),
			e("score", p.Score),
			e("rank", p.Rank),
		)
	}
	document := d(
		e("room_code", r.RoomCode),
		e("winner_id", r.WinnerID),
		e("created_at", r.CreatedAt),
		e("players", players),
	)
	ctx, cancelFunc := context.WithTimeout(ctx, b.QueryPeriod)
	defer cancelFunc()
	res, err := b.Games.InsertOne(ctx, document)
	if err != nil {
		return "", fmt.Errorf("saving game result: %w", err)
	}
	return fmt.Sprintf("%v", res.InsertedID), nil
}

func d(e ...bson.E) bson.D {
	return bson.D(e)
}

func e(key string, value interface{}) bson.E {
	return bson.E{Key: key, Value: value}
}
