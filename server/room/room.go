// Package room contains the per-room game engine and the registry that
// multiplexes connections onto rooms.  Each room is a shared-nothing
// island behind a single mutex; the only process-wide shared state is
// the read-only dictionary.
package room

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/minseo-kang/wordgrid/game"
	"github.com/minseo-kang/wordgrid/game/bag"
	"github.com/minseo-kang/wordgrid/game/board"
	"github.com/minseo-kang/wordgrid/game/message"
	"github.com/minseo-kang/wordgrid/game/tile"
	"github.com/minseo-kang/wordgrid/game/word"
	"github.com/minseo-kang/wordgrid/server/log"
)

type (
	// ResultWriter persists the record of a finished game.  It returns
	// the stored game id.
	ResultWriter interface {
		SaveResult(ctx context.Context, r game.Result) (string, error)
	}

	// Config contains the properties shared by all rooms.
	Config struct {
		// Debug logs the message types rooms handle.
		Debug bool
		// Log is used to log errors and other information.
		Log log.Logger
		// Dict is the process-wide dictionary, read-only after load.
		Dict *word.Dictionary
		// Results receives one write per finished game.
		Results ResultWriter
		// JamoWeights configures Korean tile bags; nil uses the built-in
		// table.
		JamoWeights *bag.JamoWeights
		// GroupDelay is how long a pending group waits for more tiles
		// before it is validated.
		GroupDelay time.Duration
		// CountdownDelay is the pause between the start countdown
		// broadcast and the match actually starting.
		CountdownDelay time.Duration
		// CleanupDelay is how long a finished room lingers before it is
		// removed from the registry.
		CleanupDelay time.Duration
		// PenaltyCooldown suppresses repeat penalties for a player.
		PenaltyCooldown time.Duration
		// WriteTimeout bounds the end-of-game persistence write.
		WriteTimeout time.Duration
		// TimeFunc supplies the current time.
		TimeFunc func() time.Time
	}

	// Room is the authoritative state of one game room.  Every exported
	// method acquires the room mutex and holds it across the mutation
	// and the resulting broadcasts; broadcasts never block, so nothing
	// suspends while the lock is held.
	Room struct {
		Config
		code string

		mu           sync.Mutex
		status       game.Status
		settings     game.Settings
		board        board.Board
		pending      []*tile.Pending
		timers       map[groupKey]*groupTimer
		players      map[string]*Player
		order        []string
		bag          *bag.Bag
		remaining    int
		clockStop    chan struct{}
		penalties    map[string]time.Time
		groupSeq     int
		countingDown bool
		closed       bool
		closeFunc    func()
	}
)

// Default durations, used when the config leaves them zero.
const (
	defaultGroupDelay      = 3 * time.Second
	defaultCountdownDelay  = 3500 * time.Millisecond
	defaultCleanupDelay    = 60 * time.Second
	defaultPenaltyCooldown = 5 * time.Second
	defaultWriteTimeout    = 5 * time.Second
)

// validate ensures the configuration has no errors.
func (cfg Config) validate() error {
	switch {
	case cfg.Log == nil:
		return fmt.Errorf("log required")
	case cfg.Dict == nil:
		return fmt.Errorf("dictionary required")
	case cfg.Results == nil:
		return fmt.Errorf("result writer required")
	case cfg.TimeFunc == nil:
		return fmt.Errorf("time func required")
	}
	return nil
}

// normalize fills zero durations with defaults.
func (cfg Config) normalize() Config {
	if cfg.GroupDelay <= 0 {
		cfg.GroupDelay = defaultGroupDelay
	}
	if cfg.CountdownDelay <= 0 {
		cfg.CountdownDelay = defaultCountdownDelay
	}
	if cfg.CleanupDelay <= 0 {
		cfg.CleanupDelay = defaultCleanupDelay
	}
	if cfg.PenaltyCooldown <= 0 {
		cfg.PenaltyCooldown = defaultPenaltyCooldown
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = defaultWriteTimeout
	}
	return cfg
}

// newRoom creates a lobby-status room.  closeFunc removes the room from
// its registry and is called at most once.
func newRoom(code string, cfg Config, closeFunc func()) *Room {
	r := Room{
		Config:    cfg.normalize(),
		code:      code,
		status:    game.Lobby,
		settings:  game.Settings{}.Normalize(),
		board:     board.New(),
		timers:    make(map[groupKey]*groupTimer),
		players:   make(map[string]*Player),
		penalties: make(map[string]time.Time),
		closeFunc: closeFunc,
	}
	return &r
}

// Code returns the room code.
func (r *Room) Code() string {
	return r.code
}

// Join attaches a player to the room and sends the greeting messages:
// INIT to the joiner, then an UPDATE to everyone.  A returning uuid
// replaces its previous connection.
func (r *Room) Join(id, name, color string) (*Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if old, ok := r.players[id]; ok {
		close(old.sink)
		old.dropped = true
		delete(r.players, id)
		r.pruneOrder(id)
	}
	if len(r.players) >= r.settings.MaxPlayers {
		return nil, errRoomFull
	}
	p := newPlayer(id, name, color, len(r.order))
	r.players[id] = p
	r.order = append(r.order, id)
	state := r.stateLocked()
	p.send(message.Message{
		Type:     message.Init,
		PlayerID: id,
		State:    state,
	})
	r.broadcast(message.Message{
		Type:  message.Update,
		State: state,
	})
	return p, nil
}

// Leave detaches the player with the id.  The last player leaving
// closes the room.
func (r *Room) Leave(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.players[id]
	if !ok {
		return
	}
	r.leaveLocked(p)
}

// Detach detaches the exact player.  A stale connection whose uuid has
// since rejoined does not evict the replacement.
func (r *Room) Detach(p *Player) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cur, ok := r.players[p.ID]; !ok || cur != p {
		return
	}
	r.leaveLocked(p)
}

func (r *Room) leaveLocked(p *Player) {
	close(p.sink)
	p.dropped = true
	delete(r.players, p.ID)
	r.pruneOrder(p.ID)
	if len(r.players) == 0 {
		r.closeLocked()
		return
	}
	r.broadcastState(0)
}

// Empty reports whether the room has no players.
func (r *Room) Empty() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.players) == 0
}

// Chat fans a chat line out to the room, unmodified.
func (r *Room) Chat(senderID string, text string) {
	if len(text) == 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.players[senderID]
	if !ok {
		return
	}
	r.broadcast(message.Message{
		Type:     message.Chat,
		Sender:   p.Name,
		SenderID: p.ID,
		Message:  text,
	})
}

// SendError queues an ERROR frame for one player only.
func (r *Room) SendError(playerID, text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.players[playerID]
	if !ok {
		return
	}
	p.send(message.Message{
		Type:    message.Error,
		Message: text,
	})
}

// host returns the earliest-joined player still present, or nil.
func (r *Room) host() *Player {
	if len(r.order) == 0 {
		return nil
	}
	return r.players[r.order[0]]
}

// requireHost fails unless the player is the current host.
func (r *Room) requireHost(id string) error {
	h := r.host()
	switch {
	case h == nil, r.players[id] == nil:
		return errNotInRoom
	case h.ID != id:
		return errNotHost
	}
	return nil
}

// pruneOrder removes the id from the join-order list, migrating the host
// role implicitly.
func (r *Room) pruneOrder(id string) {
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			return
		}
	}
}

// closeLocked cancels all timers and removes the room from its registry.
func (r *Room) closeLocked() {
	if r.closed {
		return
	}
	r.closed = true
	for k, gt := range r.timers {
		gt.t.Stop()
		delete(r.timers, k)
	}
	r.stopClockLocked()
	if r.closeFunc != nil {
		r.closeFunc()
	}
}

// stopClockLocked stops the global timer loop, if running.
func (r *Room) stopClockLocked() {
	if r.clockStop != nil {
		close(r.clockStop)
		r.clockStop = nil
	}
}

// broadcast queues the message on every attached sink without blocking.
// Peers whose buffers are full are dropped from the room silently; the
// broadcast itself is never aborted.
func (r *Room) broadcast(m message.Message) {
	var slow []string
	for id, p := range r.players {
		if !p.send(m) {
			slow = append(slow, id)
		}
	}
	for _, id := range slow {
		r.Log.Printf("room %v: dropping slow peer %v", r.code, id)
		p := r.players[id]
		close(p.sink)
		delete(r.players, id)
		r.pruneOrder(id)
	}
	if len(slow) > 0 && len(r.players) == 0 {
		r.closeLocked()
	}
}

// broadcastState sends an UPDATE snapshot; timerHint > 0 tells clients a
// validation timer of that many seconds was just set.
func (r *Room) broadcastState(timerHint int) {
	r.broadcast(message.Message{
		Type:  message.Update,
		State: r.stateLocked(),
		Timer: timerHint,
	})
}

// stateLocked builds a snapshot of the room.
func (r *Room) stateLocked() *game.State {
	players := make(map[string]game.PlayerInfo, len(r.players))
	for id, p := range r.players {
		players[id] = p.info()
	}
	pending := make([]tile.Pending, len(r.pending))
	for i, p := range r.pending {
		pending[i] = *p
	}
	return &game.State{
		RoomCode:      r.code,
		Status:        r.status,
		Settings:      r.settings,
		Players:       players,
		Board:         r.board.Tiles(),
		PendingTiles:  pending,
		RemainingTime: r.remaining,
	}
}

// State returns a snapshot of the room.
func (r *Room) State() *game.State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stateLocked()
}

// pendingAt returns the pending tile at the cell, or nil.
func (r *Room) pendingAt(p tile.Point) *tile.Pending {
	for _, t := range r.pending {
		if t.Point == p {
			return t
		}
	}
	return nil
}

// pendingView builds a Cells view of the pending set.
func (r *Room) pendingView() board.Cells {
	m := make(pendingCells, len(r.pending))
	for _, t := range r.pending {
		m[t.Point] = t.Letter
	}
	return m
}

type pendingCells map[tile.Point]tile.Letter

func (pc pendingCells) LetterAt(p tile.Point) (tile.Letter, bool) {
	l, ok := pc[p]
	return l, ok
}

// newGroupID allocates the next group id.  Fixed-width formatting keeps
// lexicographic order equal to allocation order.
func (r *Room) newGroupID() tile.GroupID {
	r.groupSeq++
	return tile.GroupID(fmt.Sprintf("g%06d", r.groupSeq))
}
