package room

import (
	"math"
	"time"

	"github.com/minseo-kang/wordgrid/game"
	"github.com/minseo-kang/wordgrid/game/board"
	"github.com/minseo-kang/wordgrid/game/jamo"
	"github.com/minseo-kang/wordgrid/game/message"
	"github.com/minseo-kang/wordgrid/game/tile"
)

type (
	// groupKey identifies a pending group on one axis.
	groupKey struct {
		axis tile.Axis
		id   tile.GroupID
	}

	// groupTimer owns the delayed validation of one group.  The timer
	// callback compares itself against the registered entry so a
	// rescheduled or cancelled timer firing late is a no-op.
	groupTimer struct {
		key groupKey
		t   *time.Timer
	}
)

// scheduleGroup starts (or restarts) the validation countdown for a
// group.  Callers hold the room mutex.
func (r *Room) scheduleGroup(k groupKey) {
	if prev, ok := r.timers[k]; ok {
		prev.t.Stop()
	}
	gt := &groupTimer{key: k}
	gt.t = time.AfterFunc(r.GroupDelay, func() {
		r.fireGroup(k, gt)
	})
	r.timers[k] = gt
}

// cancelGroup stops and forgets a group's timer, if any.  Callers hold
// the room mutex.
func (r *Room) cancelGroup(k groupKey) {
	if gt, ok := r.timers[k]; ok {
		gt.t.Stop()
		delete(r.timers, k)
	}
}

// fireGroup runs in the timer goroutine when a group's countdown ends.
func (r *Room) fireGroup(k groupKey, gt *groupTimer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.timers[k] != gt {
		// Rescheduled or cancelled while this callback was in flight.
		return
	}
	delete(r.timers, k)
	if r.closed {
		return
	}
	r.finalizeGroup(k.axis, k.id)
}

// finalizeGroup validates the word a group spells and either promotes
// its tiles to the board with scoring or dissolves the group.  Callers
// hold the room mutex.
func (r *Room) finalizeGroup(a tile.Axis, id tile.GroupID) {
	r.cancelGroup(groupKey{axis: a, id: id})
	group := r.groupTiles(a, id)
	if len(group) == 0 {
		return
	}
	// Validation sees only the board and this group, so unrelated
	// in-flight groups cannot lend letters to the word or its crossings.
	view := board.Overlay{r.board, groupCells(group)}
	run := board.RunThrough(view, group[0].Point, a)
	if run.Len() < 2 {
		// A lone letter never formed a word on this axis; let it go
		// quietly so its crossing group can still complete.
		r.dissolveGroup(a, id, false)
		return
	}
	res := r.Dict.Lookup(run.Word, r.settings.Lang)
	if res.Valid && r.crossWordsValid(view, group, a) {
		r.promoteGroup(a, id, group, run)
		return
	}
	r.dissolveGroup(a, id, true)
}

// crossWordsValid checks every perpendicular run through the group's
// tiles; a cross run of length one is trivially fine.
func (r *Room) crossWordsValid(view board.Cells, group []*tile.Pending, a tile.Axis) bool {
	cross := a.Cross()
	for _, t := range group {
		run := board.RunThrough(view, t.Point, cross)
		if run.Len() >= 2 && !r.Dict.Lookup(run.Word, r.settings.Lang).Valid {
			return false
		}
	}
	return true
}

// promoteGroup commits a validated group: tiles become permanent board
// tiles, the whole run is recolored to the completing player, scores
// are split, and racks are replenished.
func (r *Room) promoteGroup(a tile.Axis, id tile.GroupID, group []*tile.Pending, run board.Run) {
	total := int(math.Pow(float64(run.Len()), 1.5))
	per := total / len(group)
	completer := group[len(group)-1]
	for _, t := range group {
		r.board.Add(tile.Tile{Point: t.Point, Letter: t.Letter, Color: t.Color})
	}
	for _, pt := range run.Points {
		r.board.Recolor(pt, completer.Color)
	}
	for _, t := range group {
		p, ok := r.players[t.PlayerID]
		t.SetGroup(a, "")
		if !ok {
			continue
		}
		p.addScore(per)
		r.replenish(p, t.Slot)
	}
	r.removePromoted(group)
	word := run.Word
	display := word
	if r.settings.Lang == game.Korean {
		display = jamo.Compose(word)
	}
	completed := make([]tile.Pending, 0, run.Len())
	for _, pt := range run.Points {
		if t, ok := r.board[pt]; ok {
			completed = append(completed, tile.Pending{Point: t.Point, Letter: t.Letter, Color: t.Color})
		}
	}
	r.broadcast(message.Message{
		Type:  message.WordCompleted,
		Word:  word,
		Tiles: completed,
	})
	r.broadcastState(0)
	r.broadcast(message.Message{
		Type:    message.Modal,
		Message: "Word completed: " + display,
	})
}

// groupCells builds a Cells view holding only the group's own tiles.
func groupCells(group []*tile.Pending) board.Cells {
	m := make(pendingCells, len(group))
	for _, t := range group {
		m[t.Point] = t.Letter
	}
	return m
}

// removePromoted drops promoted tiles from the pending set and sweeps
// any cross-axis groups they emptied.
func (r *Room) removePromoted(group []*tile.Pending) {
	promoted := make(map[*tile.Pending]bool, len(group))
	for _, t := range group {
		promoted[t] = true
	}
	crossKeys := make(map[groupKey]bool)
	kept := r.pending[:0]
	for _, t := range r.pending {
		if !promoted[t] {
			kept = append(kept, t)
			continue
		}
		for _, a := range []tile.Axis{tile.Horizontal, tile.Vertical} {
			if id := t.Group(a); len(id) != 0 {
				crossKeys[groupKey{axis: a, id: id}] = true
			}
		}
	}
	r.pending = kept
	for k := range crossKeys {
		if len(r.groupTiles(k.axis, k.id)) == 0 {
			r.cancelGroup(k)
		}
	}
}

// replenish draws one letter into the player's rack, preferring the
// slot the placement came from.
func (r *Room) replenish(p *Player, preferred int) {
	slot := p.emptySlot(preferred)
	if slot < 0 || r.bag == nil {
		return
	}
	drawn := r.bag.Draw(1)
	if len(drawn) == 0 {
		return
	}
	p.Rack[slot] = drawn[0]
}

// dissolveGroup breaks a failed group apart.  Tiles still held by the
// crossing axis stay pending; the rest return to their racks.  When
// penalize is set, each distinct placer not inside the cooldown window
// loses five points.
func (r *Room) dissolveGroup(a tile.Axis, id tile.GroupID, penalize bool) {
	group := r.groupTiles(a, id)
	if len(group) == 0 {
		return
	}
	r.cancelGroup(groupKey{axis: a, id: id})
	charged := false
	if penalize {
		now := r.TimeFunc()
		penalized := make(map[string]bool)
		for _, t := range group {
			if penalized[t.PlayerID] {
				continue
			}
			penalized[t.PlayerID] = true
			if last, ok := r.penalties[t.PlayerID]; ok && now.Sub(last) < r.PenaltyCooldown {
				continue
			}
			r.penalties[t.PlayerID] = now
			if p, ok := r.players[t.PlayerID]; ok {
				p.addScore(-5)
				charged = true
			}
		}
	}
	var removed []tile.Pending
	kept := r.pending[:0]
	for _, t := range r.pending {
		if t.Group(a) != id {
			kept = append(kept, t)
			continue
		}
		t.SetGroup(a, "")
		if other := t.Group(a.Cross()); len(other) != 0 {
			// The crossing group still claims this tile.
			kept = append(kept, t)
			continue
		}
		slot := -1
		if p, ok := r.players[t.PlayerID]; ok {
			if slot = p.emptySlot(t.Slot); slot >= 0 {
				p.Rack[slot] = t.Letter
			}
		}
		if slot < 0 && r.bag != nil {
			// The placer left or has a full rack; the letter goes back
			// into circulation instead of vanishing.
			r.bag.Return([]tile.Letter{t.Letter})
		}
		removed = append(removed, *t)
	}
	r.pending = kept
	if len(removed) > 0 {
		r.broadcast(message.Message{
			Type:  message.TileRemoved,
			Tiles: removed,
		})
	}
	r.broadcastState(0)
	if charged {
		r.broadcast(message.Message{
			Type:    message.Modal,
			Message: "Invalid word! -5 points",
		})
	}
}
