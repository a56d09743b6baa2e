package room

// Warning is an expected, player-caused failure.  Warnings are reported
// to the offending player only and never mutate room state.
type Warning string

// Error implements the error interface.
func (w Warning) Error() string {
	return string(w)
}

const (
	errNotInRoom     Warning = "player is not in this room"
	errRoomFull      Warning = "no room for another player"
	errOccupied      Warning = "cell is already occupied"
	errNotInRack     Warning = "letter is not in your rack"
	errNotAdjacent   Warning = "tile must touch an existing tile"
	errNotHost       Warning = "only the host can do that"
	errNotInLobby    Warning = "match has already started"
	errNotInGame     Warning = "match is not in progress"
	errBadSlot       Warning = "no tile in that rack slot"
	errBadSettings   Warning = "unsupported settings"
	errCountdownBusy Warning = "match start is already counting down"
	errNothingToDraw Warning = "rack has no empty slots"
)
