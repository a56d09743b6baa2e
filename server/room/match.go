package room

import (
	"context"
	"sort"
	"time"

	"github.com/minseo-kang/wordgrid/game"
	"github.com/minseo-kang/wordgrid/game/bag"
	"github.com/minseo-kang/wordgrid/game/board"
	"github.com/minseo-kang/wordgrid/game/message"
	"github.com/minseo-kang/wordgrid/game/tile"
)

// StartGame begins the start countdown.  Only the host can start, only
// from the lobby, and only once.
func (r *Room) StartGame(playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.requireHost(playerID); err != nil {
		return err
	}
	if r.status != game.Lobby {
		return errNotInLobby
	}
	if r.countingDown {
		return errCountdownBusy
	}
	r.countingDown = true
	r.broadcast(message.Message{
		Type:    message.GameStartCountdown,
		Seconds: 3,
	})
	time.AfterFunc(r.CountdownDelay, func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.countingDown = false
		if r.closed || r.status != game.Lobby || len(r.players) == 0 {
			return
		}
		r.startMatchLocked()
	})
	return nil
}

// UpdateSettings replaces the room settings.  Settings freeze once the
// match starts.
func (r *Room) UpdateSettings(playerID string, s game.Settings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.requireHost(playerID); err != nil {
		return err
	}
	if r.status != game.Lobby || r.countingDown {
		return errNotInLobby
	}
	s = s.Normalize()
	if s.MaxPlayers < len(r.players) {
		return errBadSettings
	}
	r.settings = s
	r.broadcastState(0)
	return nil
}

// startMatchLocked resets the room into a fresh in-game state: new bag,
// new board with starting words, full racks, zero scores.
func (r *Room) startMatchLocked() {
	var weights *bag.JamoWeights
	if r.settings.Lang == game.Korean {
		weights = r.JamoWeights
		if weights == nil {
			weights = bag.DefaultJamoWeights()
		}
	}
	r.bag = bag.New(r.settings.Lang, weights)
	r.board = board.New()
	r.pending = nil
	for k, gt := range r.timers {
		gt.t.Stop()
		delete(r.timers, k)
	}
	r.penalties = make(map[string]time.Time)
	r.placeStartingWords()
	for _, id := range r.order {
		r.dealRack(r.players[id])
	}
	r.status = game.InGame
	r.broadcast(message.Message{Type: message.GameStarted})
	r.startClockLocked(r.settings.Mode.Clock())
	r.broadcastState(0)
}

// dealRack fills a rack with the letters of a dictionary word, preferring
// one of full rack length, falling back to a shorter word, and topping
// the rest up from the bag.  Word-shaped racks give every player at
// least one guaranteed play.
func (r *Room) dealRack(p *Player) {
	p.Score = 0
	for i := range p.Rack {
		p.Rack[i] = ""
	}
	w := r.Dict.RandomWord(0, 0, RackSize, r.settings.Lang)
	if len(w) == 0 {
		w = r.Dict.RandomWord(4, RackSize-1, 0, r.settings.Lang)
	}
	i := 0
	for _, l := range lettersOf(w) {
		if i >= RackSize {
			break
		}
		p.Rack[i] = l
		i++
	}
	if i < RackSize {
		for _, l := range r.bag.Draw(RackSize - i) {
			p.Rack[i] = l
			i++
		}
	}
}

// startingWordCount scales the number of seed words with the head count:
// one word per five players, capped at four.
func startingWordCount(players int) int {
	n := 1 + (players-1)/5
	if n > 4 {
		n = 4
	}
	return n
}

// placeStartingWords seeds the board with neutral words laid in a
// zigzag: each word starts on the last cell of the previous one and
// alternates direction.  The chain stops early if no word starting with
// the required letter can be found.
func (r *Room) placeStartingWords() {
	count := startingWordCount(len(r.players))
	w := r.Dict.RandomWord(4, 7, 0, r.settings.Lang)
	if len(w) == 0 {
		return
	}
	a := tile.Horizontal
	pt := tile.P(0, 0)
	for n := 0; n < count; n++ {
		letters := lettersOf(w)
		for j, l := range letters {
			q := pt
			for s := 0; s < j; s++ {
				q = a.Next(q)
			}
			if !r.board.Occupied(q) {
				r.board.Add(tile.Tile{Point: q, Letter: l, Color: ""})
			}
			if j == len(letters)-1 {
				pt = q
			}
		}
		if n+1 >= count {
			break
		}
		next, ok := r.wordStartingWith(letters[len(letters)-1])
		if !ok {
			break
		}
		w = next
		a = a.Cross()
	}
}

// wordStartingWith samples a bounded number of random words looking for
// one whose first letter matches.
func (r *Room) wordStartingWith(first tile.Letter) (string, bool) {
	for range [40]struct{}{} {
		w := r.Dict.RandomWord(4, 7, 0, r.settings.Lang)
		if len(w) == 0 {
			return "", false
		}
		letters := lettersOf(w)
		if len(letters) > 0 && letters[0] == first {
			return w, true
		}
	}
	return "", false
}

// lettersOf splits a dictionary word into board letters, one per rune.
// Korean words are stored as jamo sequences, so the per-rune split is
// right for both languages.
func lettersOf(w string) []tile.Letter {
	letters := make([]tile.Letter, 0, len(w))
	for _, r := range w {
		letters = append(letters, tile.Letter(r))
	}
	return letters
}

// startClockLocked launches the per-second countdown loop.
func (r *Room) startClockLocked(seconds int) {
	r.stopClockLocked()
	r.remaining = seconds
	stop := make(chan struct{})
	r.clockStop = stop
	go r.runClock(stop)
}

// runClock ticks the match clock down once per second, broadcasting the
// remaining time, and ends the match at zero.
func (r *Room) runClock(stop chan struct{}) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
		}
		r.mu.Lock()
		if r.clockStop != stop {
			r.mu.Unlock()
			return
		}
		r.remaining--
		rem := r.remaining
		if rem > 0 {
			r.broadcast(message.Message{
				Type: message.TimerTick,
				Time: &rem,
			})
			r.mu.Unlock()
			continue
		}
		r.broadcast(message.Message{
			Type: message.TimerTick,
			Time: &rem,
		})
		r.endGameLocked("TIME_UP")
		r.mu.Unlock()
		return
	}
}

// StartTimer restarts the global clock with the duration in seconds,
// or the mode's clock when the duration is not positive.
func (r *Room) StartTimer(playerID string, duration int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.players[playerID]; !ok {
		return errNotInRoom
	}
	if r.status != game.InGame {
		return errNotInGame
	}
	if duration <= 0 {
		duration = r.settings.Mode.Clock()
	}
	r.startClockLocked(duration)
	r.broadcastState(0)
	return nil
}

// EndGame ends the match early.  Any player in the room may end it.
func (r *Room) EndGame(playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.players[playerID]; !ok {
		return errNotInRoom
	}
	if r.status != game.InGame {
		return errNotInGame
	}
	r.endGameLocked("")
	return nil
}

// endGameLocked settles outstanding groups, persists the result, and
// moves the room to the finished state.
func (r *Room) endGameLocked(reason string) {
	if r.status != game.InGame {
		return
	}
	for k, gt := range r.timers {
		gt.t.Stop()
		delete(r.timers, k)
	}
	// Settle leftover groups in the order they first appeared so scoring
	// is deterministic.
	for {
		var k groupKey
		found := false
		for _, t := range r.pending {
			for _, a := range []tile.Axis{tile.Horizontal, tile.Vertical} {
				if id := t.Group(a); len(id) != 0 {
					k = groupKey{axis: a, id: id}
					found = true
					break
				}
			}
			if found {
				break
			}
		}
		if !found {
			break
		}
		r.finalizeGroup(k.axis, k.id)
	}
	r.pending = nil
	r.status = game.Finished
	r.stopClockLocked()
	r.remaining = 0

	result := r.buildResultLocked()
	var gameID *string
	ctx, cancel := context.WithTimeout(context.Background(), r.WriteTimeout)
	defer cancel()
	id, err := r.Results.SaveResult(ctx, result)
	switch {
	case err != nil:
		r.Log.Printf("room %v: saving game result: %v", r.code, err)
	default:
		gameID = &id
	}
	r.penalties = make(map[string]time.Time)
	r.broadcast(message.Message{
		Type:   message.GameOver,
		GameID: gameID,
		State:  r.stateLocked(),
		Reason: reason,
	})
	time.AfterFunc(r.CleanupDelay, func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.closeLocked()
	})
}

// buildResultLocked ranks the players by score and names the winner.
func (r *Room) buildResultLocked() game.Result {
	ids := make([]string, len(r.order))
	copy(ids, r.order)
	sort.SliceStable(ids, func(i, j int) bool {
		return r.players[ids[i]].Score > r.players[ids[j]].Score
	})
	players := make([]game.PlayerResult, len(ids))
	winner := ""
	for i, id := range ids {
		players[i] = game.PlayerResult{
			UserID: id,
			Score:  r.players[id].Score,
			Rank:   i + 1,
		}
		if i == 0 {
			winner = id
		}
	}
	return game.Result{
		RoomCode:  r.code,
		WinnerID:  winner,
		CreatedAt: r.TimeFunc().Unix(),
		Players:   players,
	}
}

// DrawTiles fills up to count empty rack slots from the bag.
func (r *Room) DrawTiles(playerID string, count int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.players[playerID]
	if !ok {
		return errNotInRoom
	}
	if r.status != game.InGame {
		return errNotInGame
	}
	if count <= 0 || count > RackSize {
		count = RackSize
	}
	drawn := 0
	for i := range p.Rack {
		if drawn >= count {
			break
		}
		if !p.Rack[i].Empty() {
			continue
		}
		letters := r.bag.Draw(1)
		if len(letters) == 0 {
			break
		}
		p.Rack[i] = letters[0]
		drawn++
	}
	if drawn == 0 {
		return errNothingToDraw
	}
	r.broadcastState(0)
	return nil
}

// Reroll returns the player's whole rack to the bag and deals ten fresh
// letters.
func (r *Room) Reroll(playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.players[playerID]
	if !ok {
		return errNotInRoom
	}
	if r.status != game.InGame {
		return errNotInGame
	}
	var returned []tile.Letter
	for i, l := range p.Rack {
		if !l.Empty() {
			returned = append(returned, l)
		}
		p.Rack[i] = ""
	}
	r.bag.Return(returned)
	for i, l := range r.bag.Draw(RackSize) {
		p.Rack[i] = l
	}
	r.broadcastState(0)
	return nil
}

// DestroyTile discards one rack letter and draws a replacement into the
// same slot.
func (r *Room) DestroyTile(playerID string, slot int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.players[playerID]
	if !ok {
		return errNotInRoom
	}
	if r.status != game.InGame {
		return errNotInGame
	}
	if slot < 0 || slot >= RackSize || p.Rack[slot].Empty() {
		return errBadSlot
	}
	p.Rack[slot] = ""
	if letters := r.bag.Draw(1); len(letters) > 0 {
		p.Rack[slot] = letters[0]
	}
	r.broadcastState(0)
	return nil
}
