// Package game defines the shared vocabulary of a match: statuses,
// settings, and the state snapshot sent to players.
package game

import (
	"encoding/json"
	"fmt"

	"github.com/minseo-kang/wordgrid/game/tile"
)

type (
	// Status is the lifecycle phase of a room.
	Status int

	// Lang selects the dictionary and tile set of a room.
	Lang string

	// Mode selects the clock of a room.
	Mode string

	// Settings are the room options the host can change in the lobby.
	Settings struct {
		Lang       Lang `json:"lang"`
		Mode       Mode `json:"mode"`
		MaxPlayers int  `json:"max_players"`
	}

	// PlayerInfo is the per-player portion of a state snapshot.
	PlayerInfo struct {
		Name  string        `json:"name"`
		Color string        `json:"color"`
		Score int           `json:"score"`
		Hand  []tile.Letter `json:"hand"`
	}

	// State is the full room snapshot broadcast after every mutation.
	State struct {
		RoomCode      string                `json:"room_code"`
		Status        Status                `json:"status"`
		Settings      Settings              `json:"settings"`
		Players       map[string]PlayerInfo `json:"players"`
		Board         []tile.Tile           `json:"board"`
		PendingTiles  []tile.Pending        `json:"pending_tiles"`
		RemainingTime int                   `json:"remaining_time"`
	}

	// Result is the record persisted when a game ends.
	Result struct {
		RoomCode  string
		WinnerID  string
		CreatedAt int64
		Players   []PlayerResult
	}

	// PlayerResult is one player's row of a game result, ranked by
	// descending score with rank 1 highest.
	PlayerResult struct {
		UserID string
		Score  int
		Rank   int
	}
)

const (
	// Lobby is the status of a room that has not started a match.
	Lobby Status = iota
	// InGame is the status of a room with a match in progress.
	InGame
	// Finished is the status of a room whose match has ended.
	Finished
)

const (
	// English selects the A-Z dictionary and letter frequencies.
	English Lang = "en"
	// Korean selects the jamo dictionary and frequencies.
	Korean Lang = "ko"
)

const (
	// Classic is a five minute game.
	Classic Mode = "classic"
	// Blitz is a two minute game.
	Blitz Mode = "blitz"
	// Bullet is a one minute game.
	Bullet Mode = "bullet"
)

var statusNames = map[Status]string{
	Lobby:    "LOBBY",
	InGame:   "INGAME",
	Finished: "FINISHED",
}

// String returns the wire name of the status.
func (s Status) String() string {
	if n, ok := statusNames[s]; ok {
		return n
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// MarshalJSON encodes the status by its wire name.
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes the status from its wire name.
func (s *Status) UnmarshalJSON(b []byte) error {
	var n string
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	for status, name := range statusNames {
		if name == n {
			*s = status
			return nil
		}
	}
	return fmt.Errorf("unknown status: %q", n)
}

// Clock returns the round length in seconds for the mode.
func (m Mode) Clock() int {
	switch m {
	case Blitz:
		return 120
	case Bullet:
		return 60
	default:
		return 300
	}
}

// Valid reports whether the language is supported.
func (l Lang) Valid() bool {
	return l == English || l == Korean
}

// Valid reports whether the mode is supported.
func (m Mode) Valid() bool {
	return m == Classic || m == Blitz || m == Bullet
}

// Normalize fills zero-valued settings with defaults.
func (s Settings) Normalize() Settings {
	if !s.Lang.Valid() {
		s.Lang = English
	}
	if !s.Mode.Valid() {
		s.Mode = Classic
	}
	if s.MaxPlayers <= 0 {
		s.MaxPlayers = 8
	}
	return s
}
