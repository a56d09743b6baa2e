// Package message contains the JSON envelopes passed between clients and
// the server over a room's websocket.
package message

import (
	"github.com/minseo-kang/wordgrid/game"
	"github.com/minseo-kang/wordgrid/game/tile"
)

type (
	// Type is the purpose of a message, carried in the "type" field.
	Type string

	// Message is the envelope for every frame in either direction.
	// Unused fields are omitted from the encoded JSON.
	Message struct {
		// Type is the purpose of the message.
		Type Type `json:"type"`
		// X and Y locate a placement.
		X int `json:"x,omitempty"`
		Y int `json:"y,omitempty"`
		// Letter is the placed letter token.
		Letter tile.Letter `json:"letter,omitempty"`
		// Color is the requested tile color of a placement.
		Color string `json:"color,omitempty"`
		// HandIndex is the rack slot a placement or discard came from.
		HandIndex *int `json:"hand_index,omitempty"`
		// Settings carries a settings change request.
		Settings *game.Settings `json:"settings,omitempty"`
		// Count is the number of tiles to draw.
		Count int `json:"count,omitempty"`
		// Duration is a global timer length in seconds.
		Duration int `json:"duration,omitempty"`
		// Message is chat, modal, or error text.
		Message string `json:"message,omitempty"`

		// PlayerID identifies the addressed player in an INIT frame.
		PlayerID string `json:"playerId,omitempty"`
		// State is the room snapshot accompanying most server frames.
		State *game.State `json:"state,omitempty"`
		// Timer hints that a group validation timer was started.
		Timer int `json:"timer,omitempty"`
		// Time is the remaining global time in a TIMER frame.  A pointer
		// so the final zero tick is still encoded.
		Time *int `json:"time,omitempty"`
		// Seconds is the countdown length before a match starts.
		Seconds int `json:"seconds,omitempty"`
		// Word is the completed word of a WORD_COMPLETED frame.
		Word string `json:"word,omitempty"`
		// Tiles are the tiles of a completed word, or the pending tiles
		// taken off the board in a TILE_REMOVED frame.
		Tiles []tile.Pending `json:"tiles,omitempty"`
		// Sender and SenderID attribute a chat message.
		Sender   string `json:"sender,omitempty"`
		SenderID string `json:"senderId,omitempty"`
		// GameID is the persisted id of a finished game, null when the
		// result write failed.
		GameID *string `json:"game_id,omitempty"`
		// Reason explains a GAME_OVER frame.
		Reason string `json:"reason,omitempty"`
	}
)

// Client to server message types.
const (
	// StartGame asks the host to begin the match countdown.
	StartGame Type = "START_GAME"
	// Place puts a letter from the sender's rack onto the board.
	Place Type = "PLACE"
	// UpdateSettings changes room settings; host only, lobby only.
	UpdateSettings Type = "UPDATE_SETTINGS"
	// Draw deals tiles from the bag into the sender's rack.
	Draw Type = "DRAW"
	// StartTimer starts the global round timer.
	StartTimer Type = "START_TIMER"
	// RerollHand returns the sender's rack to the bag and redraws.
	RerollHand Type = "REROLL_HAND"
	// DestroyTile discards one rack slot and draws a replacement.
	DestroyTile Type = "DESTROY_TILE"
	// Chat broadcasts a chat line to the room.
	Chat Type = "CHAT"
	// EndGame finishes the match immediately.
	EndGame Type = "END_GAME"
)

// Server to client message types.
const (
	// Init greets a joining player with their id and the room state.
	Init Type = "INIT"
	// Update carries a new state snapshot.
	Update Type = "UPDATE"
	// WordCompleted announces a promoted word and its tiles.
	WordCompleted Type = "WORD_COMPLETED"
	// TileRemoved announces pending tiles returned to their racks.
	TileRemoved Type = "TILE_REMOVED"
	// Modal asks the client to show a notification.
	Modal Type = "MODAL"
	// GameStartCountdown announces the pre-match countdown.
	GameStartCountdown Type = "GAME_START_COUNTDOWN"
	// GameStarted announces that the match began.
	GameStarted Type = "GAME_STARTED"
	// GameOver announces the end of the match.
	GameOver Type = "GAME_OVER"
	// Error reports a failed request to its sender only.
	Error Type = "ERROR"
	// TimerTick reports the remaining global time every second.
	TimerTick Type = "TIMER"
)

var clientTypes = map[Type]struct{}{
	StartGame:      {},
	Place:          {},
	UpdateSettings: {},
	Draw:           {},
	StartTimer:     {},
	RerollHand:     {},
	DestroyTile:    {},
	Chat:           {},
	EndGame:        {},
}

// FromClient reports whether the type is one clients may send.  Anything
// else in a received frame is a protocol error.
func (t Type) FromClient() bool {
	_, ok := clientTypes[t]
	return ok
}
