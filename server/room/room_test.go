package room

import (
	"context"
	"io"
	"log"
	"sync"
	"testing"
	"time"

	"github.com/minseo-kang/wordgrid/game"
	"github.com/minseo-kang/wordgrid/game/bag"
	"github.com/minseo-kang/wordgrid/game/message"
	"github.com/minseo-kang/wordgrid/game/tile"
	"github.com/minseo-kang/wordgrid/game/word"
)

type mockResultWriter struct {
	mu    sync.Mutex
	saved []game.Result
	id    string
	err   error
}

func (m *mockResultWriter) SaveResult(ctx context.Context, r game.Result) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved = append(m.saved, r)
	return m.id, m.err
}

func testDictionary() *word.Dictionary {
	return word.New([]word.Row{
		{Word: "CAT", Lang: game.English},
		{Word: "CATS", Lang: game.English},
		{Word: "DUAL", Lang: game.English},
		{Word: "ACT", Lang: game.English},
		{Word: "TOAD", Lang: game.English},
	})
}

// testConfig uses a huge group delay so validation timers never fire on
// their own during a test.
func testConfig(results *mockResultWriter) Config {
	return Config{
		Log:            log.New(io.Discard, "", 0),
		Dict:           testDictionary(),
		Results:        results,
		GroupDelay:     time.Hour,
		CountdownDelay: time.Millisecond,
		CleanupDelay:   time.Hour,
		WriteTimeout:   time.Second,
		TimeFunc:       time.Now,
	}
}

func testRoom(t *testing.T, results *mockResultWriter) *Room {
	t.Helper()
	if results == nil {
		results = &mockResultWriter{id: "game-1"}
	}
	cfg := testConfig(results)
	if err := cfg.validate(); err != nil {
		t.Fatalf("unwanted error: %v", err)
	}
	return newRoom("ROOM1", cfg, func() {})
}

// startMatch puts the room straight into the in-game state with an
// empty board, skipping the countdown and starting words.
func startMatch(t *testing.T, r *Room) {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status = game.InGame
	r.bag = bag.New(game.English, nil)
}

func setRack(r *Room, playerID string, letters ...tile.Letter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.players[playerID]
	for i := range p.Rack {
		p.Rack[i] = ""
	}
	copy(p.Rack[:], letters)
}

func nextMessage(t *testing.T, p *Player, want message.Type) message.Message {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case m, ok := <-p.Sink():
			if !ok {
				t.Fatalf("sink closed waiting for %v", want)
			}
			if m.Type == want {
				return m
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %v", want)
		}
	}
}

func TestJoinGreetsAndTracksHost(t *testing.T) {
	r := testRoom(t, nil)
	p1, err := r.Join("uuid-1", "alice", "")
	if err != nil {
		t.Fatalf("unwanted error: %v", err)
	}
	init := nextMessage(t, p1, message.Init)
	switch {
	case init.PlayerID != "uuid-1":
		t.Errorf("wanted init addressed to uuid-1, got %v", init.PlayerID)
	case init.State == nil, init.State.Status != game.Lobby:
		t.Errorf("wanted lobby state in init, got %+v", init.State)
	}
	p2, err := r.Join("uuid-2", "", "")
	if err != nil {
		t.Fatalf("unwanted error: %v", err)
	}
	nextMessage(t, p2, message.Init)
	if p2.Name != "Guest" {
		t.Errorf("wanted default name Guest, got %v", p2.Name)
	}
	if h := r.host(); h == nil || h.ID != "uuid-1" {
		t.Errorf("wanted uuid-1 as host, got %+v", h)
	}
	r.Leave("uuid-1")
	if h := r.host(); h == nil || h.ID != "uuid-2" {
		t.Errorf("wanted host migrated to uuid-2, got %+v", h)
	}
}

func TestLastLeaveClosesRoom(t *testing.T) {
	closed := false
	cfg := testConfig(&mockResultWriter{})
	r := newRoom("ROOM1", cfg, func() { closed = true })
	r.Join("uuid-1", "", "")
	r.Leave("uuid-1")
	if !closed {
		t.Error("wanted room closed when last player left")
	}
	if !r.Empty() {
		t.Error("wanted room empty")
	}
}

func TestJoinRoomFull(t *testing.T) {
	r := testRoom(t, nil)
	r.settings.MaxPlayers = 2
	r.Join("uuid-1", "", "")
	r.Join("uuid-2", "", "")
	if _, err := r.Join("uuid-3", "", ""); err != errRoomFull {
		t.Errorf("wanted %v, got %v", errRoomFull, err)
	}
}

func TestPlacePreconditions(t *testing.T) {
	r := testRoom(t, nil)
	r.Join("uuid-1", "", "")
	if err := r.PlaceTile("uuid-1", 0, 0, "C", "", nil); err != errNotInGame {
		t.Errorf("wanted %v in lobby, got %v", errNotInGame, err)
	}
	startMatch(t, r)
	setRack(r, "uuid-1", "C", "A", "T")
	if err := r.PlaceTile("uuid-2", 0, 0, "C", "", nil); err != errNotInRoom {
		t.Errorf("wanted %v, got %v", errNotInRoom, err)
	}
	if err := r.PlaceTile("uuid-1", 0, 0, "Z", "", nil); err != errNotInRack {
		t.Errorf("wanted %v, got %v", errNotInRack, err)
	}
	if err := r.PlaceTile("uuid-1", 0, 0, "C", "", nil); err != nil {
		t.Fatalf("unwanted error: %v", err)
	}
	if err := r.PlaceTile("uuid-1", 0, 0, "A", "", nil); err != errOccupied {
		t.Errorf("wanted %v, got %v", errOccupied, err)
	}
	if err := r.PlaceTile("uuid-1", 5, 5, "A", "", nil); err != errNotAdjacent {
		t.Errorf("wanted %v, got %v", errNotAdjacent, err)
	}
}

func TestPlaceCompletesWordImmediately(t *testing.T) {
	r := testRoom(t, nil)
	r.Join("uuid-1", "", "")
	startMatch(t, r)
	r.mu.Lock()
	r.board.Add(tile.Tile{Point: tile.P(0, 0), Letter: "C"})
	r.board.Add(tile.Tile{Point: tile.P(1, 0), Letter: "A"})
	r.mu.Unlock()
	setRack(r, "uuid-1", "T")
	if err := r.PlaceTile("uuid-1", 2, 0, "T", "", nil); err != nil {
		t.Fatalf("unwanted error: %v", err)
	}
	state := r.State()
	p := state.Players["uuid-1"]
	switch {
	case p.Score != 5: // floor(3^1.5), one promoted tile
		t.Errorf("wanted score 5, got %v", p.Score)
	case len(state.Board) != 3:
		t.Errorf("wanted 3 board tiles, got %v", len(state.Board))
	case len(state.PendingTiles) != 0:
		t.Errorf("wanted no pending tiles, got %v", state.PendingTiles)
	case p.Hand[0].Empty():
		t.Errorf("wanted rack slot 0 replenished, got %v", p.Hand)
	}
	r.mu.Lock()
	if len(r.timers) != 0 {
		t.Errorf("wanted no timers after word completed, got %v", len(r.timers))
	}
	r.mu.Unlock()
}

func TestPlaceBuildsWordAcrossPlacements(t *testing.T) {
	r := testRoom(t, nil)
	r.Join("uuid-1", "", "")
	startMatch(t, r)
	setRack(r, "uuid-1", "D", "U", "A", "L")
	for i, placement := range []struct {
		x int
		l tile.Letter
	}{{0, "D"}, {1, "U"}, {2, "A"}, {3, "L"}} {
		if err := r.PlaceTile("uuid-1", placement.x, 0, placement.l, "", nil); err != nil {
			t.Fatalf("placement %v: unwanted error: %v", i, err)
		}
		if i < 3 {
			state := r.State()
			if len(state.PendingTiles) != i+1 {
				t.Fatalf("placement %v: wanted %v pending tiles, got %v", i, i+1, len(state.PendingTiles))
			}
		}
	}
	state := r.State()
	p := state.Players["uuid-1"]
	switch {
	case p.Score != 8: // floor(4^1.5) split over four placements
		t.Errorf("wanted score 8, got %v", p.Score)
	case len(state.Board) != 4:
		t.Errorf("wanted 4 board tiles, got %v", len(state.Board))
	case len(state.PendingTiles) != 0:
		t.Errorf("wanted no pending tiles, got %v", state.PendingTiles)
	}
	r.mu.Lock()
	if len(r.timers) != 0 {
		t.Errorf("wanted no timers after word completed, got %v", len(r.timers))
	}
	r.mu.Unlock()
}

func TestGroupTimerFailureAndSilentDissolve(t *testing.T) {
	r := testRoom(t, nil)
	r.Join("uuid-1", "", "")
	startMatch(t, r)
	r.mu.Lock()
	r.players["uuid-1"].Score = 10
	r.mu.Unlock()
	setRack(r, "uuid-1", "D", "U")
	// DU is a valid prefix of DUAL but not a word.
	r.PlaceTile("uuid-1", 0, 0, "D", "", nil)
	r.PlaceTile("uuid-1", 1, 0, "U", "", nil)
	r.mu.Lock()
	hKey := groupKey{axis: tile.Horizontal, id: r.pending[0].HGroup}
	hTimer := r.timers[hKey]
	r.mu.Unlock()
	if hTimer == nil {
		t.Fatal("wanted a timer for the horizontal group")
	}
	r.fireGroup(hKey, hTimer)
	state := r.State()
	switch {
	case state.Players["uuid-1"].Score != 5:
		t.Errorf("wanted 5 points after penalty, got %v", state.Players["uuid-1"].Score)
	case len(state.PendingTiles) != 2:
		// Both tiles are still claimed by their vertical groups.
		t.Errorf("wanted tiles kept pending by vertical groups, got %v", state.PendingTiles)
	}
	// The single-letter vertical groups dissolve without a penalty.
	for {
		r.mu.Lock()
		var k groupKey
		var gt *groupTimer
		for key, timer := range r.timers {
			k, gt = key, timer
			break
		}
		r.mu.Unlock()
		if gt == nil {
			break
		}
		r.fireGroup(k, gt)
	}
	state = r.State()
	switch {
	case state.Players["uuid-1"].Score != 5:
		t.Errorf("wanted no extra penalty, got score %v", state.Players["uuid-1"].Score)
	case len(state.PendingTiles) != 0:
		t.Errorf("wanted pending tiles dissolved, got %v", state.PendingTiles)
	case !state.Players["uuid-1"].Hand[0].Empty() && state.Players["uuid-1"].Hand[0] != "D" && state.Players["uuid-1"].Hand[0] != "U":
		t.Errorf("wanted letters returned to rack, got %v", state.Players["uuid-1"].Hand)
	}
	r.mu.Lock()
	back := 0
	for _, l := range r.players["uuid-1"].Rack {
		if l == "D" || l == "U" {
			back++
		}
	}
	r.mu.Unlock()
	if back != 2 {
		t.Errorf("wanted both letters back in the rack, got %v", back)
	}
}

func TestPlaceInvalidSubstringExplodes(t *testing.T) {
	r := testRoom(t, nil)
	r.Join("uuid-1", "", "")
	startMatch(t, r)
	r.mu.Lock()
	r.players["uuid-1"].Score = 3
	r.mu.Unlock()
	setRack(r, "uuid-1", "C", "X")
	r.PlaceTile("uuid-1", 0, 0, "C", "", nil)
	// CX can never be grown into a word from either end.
	if err := r.PlaceTile("uuid-1", 1, 0, "X", "", nil); err != nil {
		t.Fatalf("unwanted error: %v", err)
	}
	state := r.State()
	switch {
	case state.Players["uuid-1"].Score != 2:
		t.Errorf("wanted 2 points after -1 penalty, got %v", state.Players["uuid-1"].Score)
	case len(state.PendingTiles) != 1:
		t.Errorf("wanted only C pending, got %v", state.PendingTiles)
	case state.Players["uuid-1"].Hand[1] != "X":
		t.Errorf("wanted X still in rack, got %v", state.Players["uuid-1"].Hand)
	}
}

func TestResolveGroupMergesUnderSmallestID(t *testing.T) {
	r := testRoom(t, nil)
	r.Join("uuid-1", "", "")
	startMatch(t, r)
	r.mu.Lock()
	r.groupSeq = 2
	r.pending = []*tile.Pending{
		{Point: tile.P(0, 0), Letter: "A", PlayerID: "uuid-1", HGroup: "g000001"},
		{Point: tile.P(2, 0), Letter: "T", PlayerID: "uuid-1", HGroup: "g000002"},
	}
	id := r.resolveGroup(tile.P(1, 0), tile.Horizontal)
	switch {
	case id != "g000001":
		t.Errorf("wanted merge under g000001, got %v", id)
	case r.pending[1].HGroup != "g000001":
		t.Errorf("wanted losing group rewritten, got %v", r.pending[1].HGroup)
	}
	r.mu.Unlock()
}

func TestStartGame(t *testing.T) {
	results := &mockResultWriter{id: "game-1"}
	r := testRoom(t, results)
	r.CountdownDelay = 100 * time.Millisecond
	host, _ := r.Join("uuid-1", "", "")
	r.Join("uuid-2", "", "")
	if err := r.StartGame("uuid-2"); err != errNotHost {
		t.Fatalf("wanted %v, got %v", errNotHost, err)
	}
	if err := r.StartGame("uuid-1"); err != nil {
		t.Fatalf("unwanted error: %v", err)
	}
	if err := r.StartGame("uuid-1"); err != errCountdownBusy {
		t.Errorf("wanted %v during countdown, got %v", errCountdownBusy, err)
	}
	nextMessage(t, host, message.GameStartCountdown)
	nextMessage(t, host, message.GameStarted)
	state := r.State()
	switch {
	case state.Status != game.InGame:
		t.Fatalf("wanted in-game status, got %v", state.Status)
	case state.RemainingTime != game.Classic.Clock():
		t.Errorf("wanted %v seconds on the clock, got %v", game.Classic.Clock(), state.RemainingTime)
	case len(state.Board) == 0:
		t.Error("wanted starting word on the board")
	}
	for id, p := range state.Players {
		for i, l := range p.Hand {
			if l.Empty() {
				t.Errorf("wanted full rack for %v, slot %v empty", id, i)
			}
		}
	}
	if err := r.StartGame("uuid-1"); err != errNotInLobby {
		t.Errorf("wanted %v once started, got %v", errNotInLobby, err)
	}
	if err := r.EndGame("uuid-1"); err != nil {
		t.Fatalf("unwanted error: %v", err)
	}
}

func TestEndGamePersistsResult(t *testing.T) {
	results := &mockResultWriter{id: "game-9"}
	r := testRoom(t, results)
	host, _ := r.Join("uuid-1", "", "")
	r.Join("uuid-2", "", "")
	startMatch(t, r)
	r.mu.Lock()
	r.players["uuid-1"].Score = 3
	r.players["uuid-2"].Score = 7
	r.mu.Unlock()
	if err := r.EndGame("uuid-404"); err != errNotInRoom {
		t.Fatalf("wanted %v, got %v", errNotInRoom, err)
	}
	// Ending the game is not a host privilege.
	if err := r.EndGame("uuid-2"); err != nil {
		t.Fatalf("unwanted error: %v", err)
	}
	over := nextMessage(t, host, message.GameOver)
	switch {
	case over.GameID == nil, *over.GameID != "game-9":
		t.Errorf("wanted game id game-9, got %v", over.GameID)
	case over.State == nil, over.State.Status != game.Finished:
		t.Errorf("wanted finished state, got %+v", over.State)
	}
	results.mu.Lock()
	defer results.mu.Unlock()
	if len(results.saved) != 1 {
		t.Fatalf("wanted 1 saved result, got %v", len(results.saved))
	}
	saved := results.saved[0]
	switch {
	case saved.WinnerID != "uuid-2":
		t.Errorf("wanted uuid-2 to win, got %v", saved.WinnerID)
	case len(saved.Players) != 2:
		t.Fatalf("wanted 2 player rows, got %v", len(saved.Players))
	case saved.Players[0].Rank != 1, saved.Players[0].UserID != "uuid-2":
		t.Errorf("wanted uuid-2 ranked first, got %+v", saved.Players[0])
	case saved.Players[1].Rank != 2, saved.Players[1].Score != 3:
		t.Errorf("wanted uuid-1 ranked second with 3 points, got %+v", saved.Players[1])
	}
}

func TestEndGameResultWriteFailure(t *testing.T) {
	results := &mockResultWriter{err: context.DeadlineExceeded}
	r := testRoom(t, results)
	host, _ := r.Join("uuid-1", "", "")
	startMatch(t, r)
	if err := r.EndGame("uuid-1"); err != nil {
		t.Fatalf("unwanted error: %v", err)
	}
	over := nextMessage(t, host, message.GameOver)
	if over.GameID != nil {
		t.Errorf("wanted nil game id on write failure, got %v", *over.GameID)
	}
}

func TestStartTimerAnyPlayer(t *testing.T) {
	r := testRoom(t, nil)
	r.Join("uuid-1", "", "")
	r.Join("uuid-2", "", "")
	if err := r.StartTimer("uuid-2", 30); err != errNotInGame {
		t.Fatalf("wanted %v in lobby, got %v", errNotInGame, err)
	}
	startMatch(t, r)
	if err := r.StartTimer("uuid-404", 30); err != errNotInRoom {
		t.Errorf("wanted %v, got %v", errNotInRoom, err)
	}
	if err := r.StartTimer("uuid-2", 30); err != nil {
		t.Fatalf("unwanted error: %v", err)
	}
	if got := r.State().RemainingTime; got != 30 {
		t.Errorf("wanted 30 seconds on the clock, got %v", got)
	}
	if err := r.StartTimer("uuid-2", 0); err != nil {
		t.Fatalf("unwanted error: %v", err)
	}
	if got := r.State().RemainingTime; got != game.Classic.Clock() {
		t.Errorf("wanted the mode clock, got %v", got)
	}
}

func TestPenaltyCooldownSkipsRepeat(t *testing.T) {
	r := testRoom(t, nil)
	p, _ := r.Join("uuid-1", "", "")
	startMatch(t, r)
	r.mu.Lock()
	r.players["uuid-1"].Score = 20
	r.pending = []*tile.Pending{
		{Point: tile.P(0, 0), Letter: "C", PlayerID: "uuid-1", HGroup: "g000001"},
		{Point: tile.P(1, 0), Letter: "A", PlayerID: "uuid-1", HGroup: "g000001"},
		{Point: tile.P(0, 5), Letter: "A", PlayerID: "uuid-1", HGroup: "g000002"},
		{Point: tile.P(1, 5), Letter: "C", PlayerID: "uuid-1", HGroup: "g000002"},
	}
	// Neither CA nor AC is a word; both groups fail, but the second
	// failure lands inside the penalty cooldown window.
	r.finalizeGroup(tile.Horizontal, "g000001")
	r.finalizeGroup(tile.Horizontal, "g000002")
	r.mu.Unlock()
	if got := r.State().Players["uuid-1"].Score; got != 15 {
		t.Errorf("wanted a single -5 inside the cooldown window, got score %v", got)
	}
	modals := 0
drain:
	for {
		select {
		case m := <-p.Sink():
			if m.Type == message.Modal {
				modals++
			}
		default:
			break drain
		}
	}
	if modals != 1 {
		t.Errorf("wanted one penalty modal, got %v", modals)
	}
	if err := r.EndGame("uuid-1"); err != nil {
		t.Fatalf("unwanted error: %v", err)
	}
	r.mu.Lock()
	if len(r.penalties) != 0 {
		t.Errorf("wanted penalty cooldowns cleared at game end, got %v", r.penalties)
	}
	r.mu.Unlock()
}

func TestDissolveReturnsLetterToBagWhenRackFull(t *testing.T) {
	r := testRoom(t, nil)
	r.Join("uuid-1", "", "")
	startMatch(t, r)
	setRack(r, "uuid-1", "A", "A", "A", "A", "A", "A", "A", "A", "A", "A")
	r.mu.Lock()
	r.pending = []*tile.Pending{
		{Point: tile.P(0, 0), Letter: "Z", PlayerID: "uuid-1", HGroup: "g000001"},
	}
	before := r.bag.Peek()
	r.finalizeGroup(tile.Horizontal, "g000001")
	after := r.bag.Peek()
	left := len(r.pending)
	r.mu.Unlock()
	switch {
	case after != before+1:
		t.Errorf("wanted the letter back in the bag, got %v -> %v", before, after)
	case left != 0:
		t.Errorf("wanted pending cleared, got %v tiles", left)
	}
	for i, l := range r.State().Players["uuid-1"].Hand {
		if l != "A" {
			t.Errorf("wanted rack untouched, slot %v holds %v", i, l)
		}
	}
}

func TestGlobalTimerExpiryEndsGame(t *testing.T) {
	results := &mockResultWriter{id: "game-3"}
	r := testRoom(t, results)
	p, _ := r.Join("uuid-1", "", "")
	startMatch(t, r)
	r.mu.Lock()
	r.startClockLocked(1)
	r.mu.Unlock()
	tick := nextMessage(t, p, message.TimerTick)
	if tick.Time == nil || *tick.Time != 0 {
		t.Errorf("wanted final tick of 0, got %v", tick.Time)
	}
	over := nextMessage(t, p, message.GameOver)
	switch {
	case over.Reason != "TIME_UP":
		t.Errorf("wanted reason TIME_UP, got %v", over.Reason)
	case over.GameID == nil, *over.GameID != "game-3":
		t.Errorf("wanted game id game-3, got %v", over.GameID)
	}
	if got := r.State().Status; got != game.Finished {
		t.Errorf("wanted finished status, got %v", got)
	}
}

func TestUpdateSettings(t *testing.T) {
	r := testRoom(t, nil)
	r.Join("uuid-1", "", "")
	r.Join("uuid-2", "", "")
	if err := r.UpdateSettings("uuid-2", game.Settings{}); err != errNotHost {
		t.Errorf("wanted %v, got %v", errNotHost, err)
	}
	if err := r.UpdateSettings("uuid-1", game.Settings{MaxPlayers: 1}); err != errBadSettings {
		t.Errorf("wanted %v below player count, got %v", errBadSettings, err)
	}
	want := game.Settings{Lang: game.Korean, Mode: game.Bullet, MaxPlayers: 4}
	if err := r.UpdateSettings("uuid-1", want); err != nil {
		t.Fatalf("unwanted error: %v", err)
	}
	if got := r.State().Settings; got != want {
		t.Errorf("wanted %+v, got %+v", want, got)
	}
	startMatch(t, r)
	if err := r.UpdateSettings("uuid-1", want); err != errNotInLobby {
		t.Errorf("wanted settings frozen after start, got %v", err)
	}
}

func TestChat(t *testing.T) {
	r := testRoom(t, nil)
	r.Join("uuid-1", "alice", "")
	p2, _ := r.Join("uuid-2", "bob", "")
	r.Chat("uuid-1", "")      // ignored
	r.Chat("uuid-404", "hi?") // unknown sender ignored
	r.Chat("uuid-1", "hello")
	m := nextMessage(t, p2, message.Chat)
	switch {
	case m.Sender != "alice", m.SenderID != "uuid-1":
		t.Errorf("wanted chat attributed to alice/uuid-1, got %v/%v", m.Sender, m.SenderID)
	case m.Message != "hello":
		t.Errorf("wanted hello, got %v", m.Message)
	}
}

func TestRackOperations(t *testing.T) {
	r := testRoom(t, nil)
	r.Join("uuid-1", "", "")
	startMatch(t, r)
	setRack(r, "uuid-1")
	if err := r.DrawTiles("uuid-1", 0); err != nil {
		t.Fatalf("unwanted error: %v", err)
	}
	state := r.State()
	for i, l := range state.Players["uuid-1"].Hand {
		if l.Empty() {
			t.Errorf("wanted slot %v filled after draw, got empty", i)
		}
	}
	if err := r.DrawTiles("uuid-1", 1); err != errNothingToDraw {
		t.Errorf("wanted %v with a full rack, got %v", errNothingToDraw, err)
	}
	if err := r.DestroyTile("uuid-1", RackSize); err != errBadSlot {
		t.Errorf("wanted %v, got %v", errBadSlot, err)
	}
	if err := r.DestroyTile("uuid-1", 0); err != nil {
		t.Fatalf("unwanted error: %v", err)
	}
	if r.State().Players["uuid-1"].Hand[0].Empty() {
		t.Error("wanted destroyed slot refilled")
	}
	if err := r.Reroll("uuid-1"); err != nil {
		t.Fatalf("unwanted error: %v", err)
	}
	for i, l := range r.State().Players["uuid-1"].Hand {
		if l.Empty() {
			t.Errorf("wanted slot %v filled after reroll, got empty", i)
		}
	}
}
