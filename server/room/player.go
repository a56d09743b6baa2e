package room

import (
	"github.com/minseo-kang/wordgrid/game"
	"github.com/minseo-kang/wordgrid/game/message"
	"github.com/minseo-kang/wordgrid/game/tile"
)

// RackSize is the number of letter slots every player holds.
const RackSize = 10

// sinkBuffer is the per-player outbound queue.  A peer that falls this
// far behind is dropped from the room.
const sinkBuffer = 64

// Player is a participant of one room.  All fields are guarded by the
// room mutex.
type Player struct {
	// ID is the user uuid from the session, or a minted guest uuid.
	ID    string
	Name  string
	Color string
	Score int
	// Rack holds the player's letters; empty slots hold the empty
	// letter.
	Rack [RackSize]tile.Letter

	sink    chan message.Message
	dropped bool
}

// defaultColors are assigned round-robin to players who do not pick one.
var defaultColors = []string{
	"#e6194b", "#3cb44b", "#4363d8", "#f58231",
	"#911eb4", "#46f0f0", "#f032e6", "#bcf60c",
}

func newPlayer(id, name, color string, seat int) *Player {
	if len(name) == 0 {
		name = "Guest"
	}
	if len(color) == 0 {
		color = defaultColors[seat%len(defaultColors)]
	}
	return &Player{
		ID:    id,
		Name:  name,
		Color: color,
		sink:  make(chan message.Message, sinkBuffer),
	}
}

// Sink is the player's outbound message queue.  The room closes it when
// the player leaves.
func (p *Player) Sink() <-chan message.Message {
	return p.sink
}

// send queues a message without blocking.  It reports false when the
// peer's buffer is full, marking the player for removal.
func (p *Player) send(m message.Message) bool {
	if p.dropped {
		return false
	}
	select {
	case p.sink <- m:
		return true
	default:
		p.dropped = true
		return false
	}
}

// slotWith returns the first rack slot holding the letter, or -1.
func (p *Player) slotWith(l tile.Letter) int {
	for i, r := range p.Rack {
		if r == l {
			return i
		}
	}
	return -1
}

// emptySlot returns the preferred slot if it is empty, otherwise the
// first empty slot, otherwise -1.
func (p *Player) emptySlot(preferred int) int {
	if 0 <= preferred && preferred < RackSize && p.Rack[preferred].Empty() {
		return preferred
	}
	for i, r := range p.Rack {
		if r.Empty() {
			return i
		}
	}
	return -1
}

// addScore adjusts the score, flooring at zero.
func (p *Player) addScore(delta int) {
	p.Score += delta
	if p.Score < 0 {
		p.Score = 0
	}
}

// info builds the snapshot entry for the player.
func (p *Player) info() game.PlayerInfo {
	hand := make([]tile.Letter, RackSize)
	copy(hand, p.Rack[:])
	return game.PlayerInfo{
		Name:  p.Name,
		Color: p.Color,
		Score: p.Score,
		Hand:  hand,
	}
}
