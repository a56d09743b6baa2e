package main

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"github.com/minseo-kang/wordgrid/db"
	"github.com/minseo-kang/wordgrid/db/firestore"
	"github.com/minseo-kang/wordgrid/db/mongo"
	"github.com/minseo-kang/wordgrid/db/sql/postgres"
	"github.com/minseo-kang/wordgrid/game/bag"
	"github.com/minseo-kang/wordgrid/game/word"
	"github.com/minseo-kang/wordgrid/server"
	"github.com/minseo-kang/wordgrid/server/auth"
	"github.com/minseo-kang/wordgrid/server/log"
	"github.com/minseo-kang/wordgrid/server/room"
	"github.com/minseo-kang/wordgrid/server/socket"
)

const (
	dbQueryPeriod   = 10 * time.Second
	sessionValidSec = 7 * 24 * 60 * 60
	serverStopDur   = 5 * time.Second
)

// createDictionary loads words from the configured backend.  Without a
// backend the dictionary is empty and accepts everything.
func (m mainFlags) createDictionary(ctx context.Context, l log.Logger) (*word.Dictionary, error) {
	cfg := db.Config{
		QueryPeriod: dbQueryPeriod,
	}
	var src word.Source
	switch m.wordBackend {
	case "postgres":
		b, err := postgres.NewBackend(cfg, m.databaseURL)
		if err != nil {
			return nil, fmt.Errorf("creating word backend: %w", err)
		}
		src = b
	case "mongo":
		b, err := mongo.NewBackend(ctx, cfg, m.mongoURL)
		if err != nil {
			return nil, fmt.Errorf("creating word backend: %w", err)
		}
		src = b
	case "", "none":
		l.Printf("no word backend configured, all words will be accepted")
		return word.Empty(), nil
	default:
		return nil, fmt.Errorf("unknown word backend: %q", m.wordBackend)
	}
	d, err := word.Load(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("loading dictionary: %w", err)
	}
	return d, nil
}

// createResultWriter picks where finished games are archived.
func (m mainFlags) createResultWriter(ctx context.Context, l log.Logger) (room.ResultWriter, error) {
	cfg := db.Config{
		QueryPeriod: dbQueryPeriod,
	}
	switch m.resultBackend {
	case "postgres":
		return postgres.NewBackend(cfg, m.databaseURL)
	case "mongo":
		return mongo.NewBackend(ctx, cfg, m.mongoURL)
	case "firestore":
		return firestore.NewBackend(ctx, cfg, m.firestoreProject)
	case "", "none":
		l.Printf("no result backend configured, game results will not be saved")
		return db.NoBackend{}, nil
	}
	return nil, fmt.Errorf("unknown result backend: %q", m.resultBackend)
}

// createTokenizer builds the session token codec.  An ephemeral random
// secret is used when none is configured, which invalidates sessions
// across restarts.
func (m mainFlags) createTokenizer(l log.Logger) (auth.Tokenizer, error) {
	secret := []byte(m.jwtSecret)
	if len(secret) == 0 {
		secret = make([]byte, 64)
		if _, err := rand.Read(secret); err != nil {
			return nil, fmt.Errorf("generating session secret: %w", err)
		}
		l.Printf("no session secret configured, using an ephemeral one")
	}
	cfg := auth.TokenizerConfig{
		Secret:   secret,
		TimeFunc: time.Now,
		ValidSec: sessionValidSec,
	}
	return cfg.NewTokenizer()
}

// createServer assembles the dictionary, room registry, websocket
// handler, and http server.
func (m mainFlags) createServer(ctx context.Context, l log.Logger) (*server.Server, error) {
	dict, err := m.createDictionary(ctx, l)
	if err != nil {
		return nil, err
	}
	results, err := m.createResultWriter(ctx, l)
	if err != nil {
		return nil, err
	}
	tokenizer, err := m.createTokenizer(l)
	if err != nil {
		return nil, err
	}
	jamoWeights, err := bag.LoadJamoWeights(m.jamoWeightsFile)
	if err != nil {
		return nil, fmt.Errorf("loading jamo weights: %w", err)
	}
	roomCfg := room.Config{
		Debug:       m.debugGame,
		Log:         l,
		Dict:        dict,
		Results:     results,
		JamoWeights: jamoWeights,
		TimeFunc:    time.Now,
	}
	rooms, err := room.NewRegistry(roomCfg)
	if err != nil {
		return nil, fmt.Errorf("creating room registry: %w", err)
	}
	socketCfg := socket.Config{
		Debug: m.debugGame,
		Log:   l,
		Auth:  tokenizer,
		Rooms: rooms,
	}
	ws, err := socketCfg.NewHandler()
	if err != nil {
		return nil, fmt.Errorf("creating websocket handler: %w", err)
	}
	serverCfg := server.Config{
		HTTPPort: m.httpPort,
		StopDur:  serverStopDur,
	}
	return serverCfg.NewServer(l, ws)
}
