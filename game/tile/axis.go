package tile

// Axis is a board direction that words are read along.
type Axis int

const (
	// Horizontal is the +x direction.
	Horizontal Axis = iota
	// Vertical is the +y direction.
	Vertical
)

// String returns "H" or "V".
func (a Axis) String() string {
	if a == Horizontal {
		return "H"
	}
	return "V"
}

// Cross returns the other axis.
func (a Axis) Cross() Axis {
	if a == Horizontal {
		return Vertical
	}
	return Horizontal
}

// Next returns the neighboring point one step forward along the axis.
func (a Axis) Next(p Point) Point {
	if a == Horizontal {
		p.X++
	} else {
		p.Y++
	}
	return p
}

// Prev returns the neighboring point one step backward along the axis.
func (a Axis) Prev(p Point) Point {
	if a == Horizontal {
		p.X--
	} else {
		p.Y--
	}
	return p
}
