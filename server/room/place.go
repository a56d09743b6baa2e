package room

import (
	"github.com/minseo-kang/wordgrid/game"
	"github.com/minseo-kang/wordgrid/game/board"
	"github.com/minseo-kang/wordgrid/game/message"
	"github.com/minseo-kang/wordgrid/game/tile"
)

// PlaceTile places a letter from the player's rack at (x,y).
//
// Precondition failures are returned as warnings and leave the room
// untouched.  A placement whose row or column can no longer be grown
// into any dictionary word is not an error: it is accepted, exploded
// immediately with a one point penalty, and the letter returns to the
// rack.
func (r *Room) PlaceTile(playerID string, x, y int, letter tile.Letter, color string, handIndex *int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Debug {
		r.Log.Printf("room %v: %v places %v at (%d,%d)", r.code, playerID, letter, x, y)
	}
	p, ok := r.players[playerID]
	if !ok {
		return errNotInRoom
	}
	if r.status != game.InGame {
		return errNotInGame
	}
	pt := tile.P(x, y)
	if r.board.Occupied(pt) || r.pendingAt(pt) != nil {
		return errOccupied
	}
	slot, err := r.rackSlot(p, letter, handIndex)
	if err != nil {
		return err
	}
	occupied := board.Overlay{r.board, r.pendingView()}
	firstTile := len(r.board) == 0 && len(r.pending) == 0
	if !firstTile && !board.Adjacent(occupied, pt) {
		return errNotAdjacent
	}
	if len(color) == 0 {
		color = p.Color
	}

	// Early pruning: if either run through the new cell can no longer be
	// grown into a word from either end, explode the placement now
	// instead of letting a doomed group sit on the board.
	withPlaced := board.Overlay{r.board, r.pendingView(), board.Extra{Point: pt, Letter: letter}}
	for _, a := range []tile.Axis{tile.Horizontal, tile.Vertical} {
		run := board.RunThrough(withPlaced, pt, a)
		if run.Len() >= 2 && !r.Dict.HasEdgeSubstring(run.Word, r.settings.Lang) {
			r.explodePlacement(p, pt, letter, color, slot)
			return nil
		}
	}

	hID := r.resolveGroup(pt, tile.Horizontal)
	vID := r.resolveGroup(pt, tile.Vertical)
	placed := &tile.Pending{
		Point:    pt,
		Letter:   letter,
		PlayerID: playerID,
		Color:    color,
		HGroup:   hID,
		VGroup:   vID,
		Slot:     slot,
	}
	r.pending = append(r.pending, placed)
	p.Rack[slot] = ""

	finalized := r.validateImmediately(pt, hID, vID)

	// Any direction left pending gets a fresh validation timer; merges
	// and extensions reschedule the survivor's key.
	timerSet := false
	for _, a := range []tile.Axis{tile.Horizontal, tile.Vertical} {
		id := placed.Group(a)
		if finalized[a] || len(r.groupTiles(a, id)) == 0 {
			continue
		}
		r.scheduleGroup(groupKey{axis: a, id: id})
		timerSet = true
	}
	if len(finalized) == 0 {
		hint := 0
		if timerSet {
			hint = int(r.GroupDelay.Seconds())
		}
		r.broadcastState(hint)
	}
	return nil
}

// rackSlot resolves which rack slot the placement consumes.
func (r *Room) rackSlot(p *Player, letter tile.Letter, handIndex *int) (int, error) {
	if handIndex != nil {
		i := *handIndex
		if i < 0 || i >= RackSize || p.Rack[i] != letter {
			return 0, errNotInRack
		}
		return i, nil
	}
	if i := p.slotWith(letter); i >= 0 {
		return i, nil
	}
	return 0, errNotInRack
}

// explodePlacement handles the substring-invalid path: the tile flashes
// on the board, comes straight back to the rack, and costs a point.
func (r *Room) explodePlacement(p *Player, pt tile.Point, letter tile.Letter, color string, slot int) {
	p.addScore(-1)
	r.broadcast(message.Message{
		Type:  message.TileRemoved,
		Tiles: []tile.Pending{{
			Point:    pt,
			Letter:   letter,
			PlayerID: p.ID,
			Color:    color,
			Slot:     slot,
		}},
	})
	r.broadcastState(0)
	r.broadcast(message.Message{
		Type:    message.Modal,
		Message: "Invalid placement! -1 points",
	})
}

// resolveGroup determines the group id a tile placed at pt belongs to on
// the axis.  Walking outward over contiguous board tiles, the first
// pending tile on each side contributes its group; two distinct groups
// merge under the lexicographically smallest id.
func (r *Room) resolveGroup(pt tile.Point, a tile.Axis) tile.GroupID {
	occupied := board.Overlay{r.board, r.pendingView()}
	var found []tile.GroupID
	for _, step := range []func(tile.Point) tile.Point{a.Prev, a.Next} {
		for q := step(pt); ; q = step(q) {
			if _, ok := occupied.LetterAt(q); !ok {
				break
			}
			if pend := r.pendingAt(q); pend != nil {
				if id := pend.Group(a); len(id) != 0 {
					found = append(found, id)
				}
				break
			}
		}
	}
	switch len(found) {
	case 0:
		return r.newGroupID()
	case 1:
		return found[0]
	}
	winner, loser := found[0], found[1]
	if loser < winner {
		winner, loser = loser, winner
	}
	if winner != loser {
		r.mergeGroups(a, winner, loser)
	}
	return winner
}

// mergeGroups rewrites every tile of the losing group and cancels its
// timer so it can never finalize under the stale id.
func (r *Room) mergeGroups(a tile.Axis, winner, loser tile.GroupID) {
	for _, t := range r.pending {
		if t.Group(a) == loser {
			t.SetGroup(a, winner)
		}
	}
	r.cancelGroup(groupKey{axis: a, id: loser})
}

// validateImmediately finalizes each direction whose word is already a
// valid dictionary word, provided the crossing direction is trivial or
// valid too.  It returns the axes that were finalized.
func (r *Room) validateImmediately(pt tile.Point, hID, vID tile.GroupID) map[tile.Axis]bool {
	occupied := board.Overlay{r.board, r.pendingView()}
	hRun := board.RunThrough(occupied, pt, tile.Horizontal)
	vRun := board.RunThrough(occupied, pt, tile.Vertical)
	hValid := hRun.Len() >= 2 && r.Dict.Lookup(hRun.Word, r.settings.Lang).Valid
	vValid := vRun.Len() >= 2 && r.Dict.Lookup(vRun.Word, r.settings.Lang).Valid
	hOK := hValid || hRun.Len() == 1
	vOK := vValid || vRun.Len() == 1
	finalized := make(map[tile.Axis]bool)
	if !hOK || !vOK || (!hValid && !vValid) {
		return finalized
	}
	if hValid {
		r.finalizeGroup(tile.Horizontal, hID)
		finalized[tile.Horizontal] = true
	}
	if vValid && len(r.groupTiles(tile.Vertical, vID)) > 0 {
		r.finalizeGroup(tile.Vertical, vID)
		finalized[tile.Vertical] = true
	}
	return finalized
}

// groupTiles returns the pending tiles carrying the group id on the
// axis, in insertion order.
func (r *Room) groupTiles(a tile.Axis, id tile.GroupID) []*tile.Pending {
	if len(id) == 0 {
		return nil
	}
	var tiles []*tile.Pending
	for _, t := range r.pending {
		if t.Group(a) == id {
			tiles = append(tiles, t)
		}
	}
	return tiles
}
