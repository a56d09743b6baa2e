// Package tile contains the pieces players place on the board.
package tile

type (
	// Letter is a single letter token: an upper-case A-Z letter in English
	// games, a single jamo in Korean games.  The empty string marks an
	// empty rack slot.
	Letter string

	// X is the column of a board cell.
	X int

	// Y is the row of a board cell.
	Y int

	// Point identifies a board cell.  The board is unbounded in both axes.
	Point struct {
		X X `json:"x"`
		Y Y `json:"y"`
	}

	// Tile is a letter that has been permanently placed on the board.
	// Tiles are never moved after promotion, but their color can change
	// when a later word spans them.
	Tile struct {
		Point
		Letter Letter `json:"letter"`
		Color  string `json:"color"`
	}

	// GroupID identifies a run of pending tiles along one axis.  Rooms
	// allocate ids in increasing lexicographic order, so in a merge the
	// smallest id is also the oldest.
	GroupID string

	// Pending is a tentatively placed tile that has not been promoted to
	// the board.  A pending tile belongs to at most one horizontal and
	// one vertical group; a cleared group id is the empty string.
	Pending struct {
		Point
		Letter   Letter  `json:"letter"`
		PlayerID string  `json:"player_id,omitempty"`
		Color    string  `json:"color"`
		HGroup   GroupID `json:"h_group,omitempty"`
		VGroup   GroupID `json:"v_group,omitempty"`
		// Slot is the rack index the letter came from, so a dissolved
		// group can give it back to the same slot.
		Slot int `json:"slot"`
	}
)

// P is shorthand for creating a Point.
func P(x, y int) Point {
	return Point{X: X(x), Y: Y(y)}
}

// Empty reports whether the letter marks an empty rack slot.
func (l Letter) Empty() bool {
	return len(l) == 0
}

// String returns the letter as a string.
func (l Letter) String() string {
	return string(l)
}

// Group returns the group id of the pending tile on the given axis.
func (p Pending) Group(a Axis) GroupID {
	if a == Horizontal {
		return p.HGroup
	}
	return p.VGroup
}

// SetGroup sets the group id of the pending tile on the given axis.
func (p *Pending) SetGroup(a Axis, id GroupID) {
	if a == Horizontal {
		p.HGroup = id
	} else {
		p.VGroup = id
	}
}
