// Package board stores the permanently placed tiles of a room and
// answers the row/column walks the engine needs.  The board is a hash
// map keyed by cell, so it is unbounded in both axes and every walk is
// O(word length) from a known cell.
package board

import (
	"fmt"

	"github.com/minseo-kang/wordgrid/game/tile"
)

type (
	// Board maps occupied cells to their tiles.
	Board map[tile.Point]tile.Tile

	// Cells is any read-only view of occupied cells.  The engine layers
	// the board, the pending set, and hypothetical placements into one
	// view when measuring runs.
	Cells interface {
		// LetterAt returns the letter at the cell and whether the cell is
		// occupied.
		LetterAt(p tile.Point) (tile.Letter, bool)
	}

	// Overlay is a Cells view over several layers; earlier layers win.
	Overlay []Cells

	// Extra is a single hypothetical cell, used to measure the run a
	// placement would create before committing it.
	Extra struct {
		Point  tile.Point
		Letter tile.Letter
	}

	// Run is a maximal contiguous line of occupied cells through a cell.
	Run struct {
		Start  tile.Point
		Axis   tile.Axis
		Word   string
		Points []tile.Point
	}
)

// New creates an empty board.
func New() Board {
	return make(Board)
}

// LetterAt implements Cells.
func (b Board) LetterAt(p tile.Point) (tile.Letter, bool) {
	t, ok := b[p]
	return t.Letter, ok
}

// Occupied reports whether the cell holds a tile.
func (b Board) Occupied(p tile.Point) bool {
	_, ok := b[p]
	return ok
}

// Add places a tile, failing if the cell is already occupied.
func (b Board) Add(t tile.Tile) error {
	if _, ok := b[t.Point]; ok {
		return fmt.Errorf("cell (%d,%d) is already occupied", t.X, t.Y)
	}
	b[t.Point] = t
	return nil
}

// Recolor re-tags the tile at the cell, if any, with the color.
func (b Board) Recolor(p tile.Point, color string) {
	if t, ok := b[p]; ok {
		t.Color = color
		b[p] = t
	}
}

// Tiles returns the board tiles in an unspecified order.
func (b Board) Tiles() []tile.Tile {
	tiles := make([]tile.Tile, 0, len(b))
	for _, t := range b {
		tiles = append(tiles, t)
	}
	return tiles
}

// LetterAt implements Cells over the layers.
func (o Overlay) LetterAt(p tile.Point) (tile.Letter, bool) {
	for _, c := range o {
		if l, ok := c.LetterAt(p); ok {
			return l, ok
		}
	}
	return "", false
}

// LetterAt implements Cells for the single hypothetical cell.
func (e Extra) LetterAt(p tile.Point) (tile.Letter, bool) {
	if p == e.Point {
		return e.Letter, true
	}
	return "", false
}

// RunThrough walks backward then forward from p along the axis,
// collecting the maximal contiguous run of occupied cells.  p itself
// must be occupied in the view.
func RunThrough(c Cells, p tile.Point, a tile.Axis) Run {
	start := p
	for {
		prev := a.Prev(start)
		if _, ok := c.LetterAt(prev); !ok {
			break
		}
		start = prev
	}
	r := Run{Start: start, Axis: a}
	for q := start; ; q = a.Next(q) {
		l, ok := c.LetterAt(q)
		if !ok {
			break
		}
		r.Word += string(l)
		r.Points = append(r.Points, q)
	}
	return r
}

// Len returns the number of cells in the run.
func (r Run) Len() int {
	return len(r.Points)
}

// Adjacent reports whether any of the four neighbors of p is occupied.
func Adjacent(c Cells, p tile.Point) bool {
	neighbors := [4]tile.Point{
		{X: p.X - 1, Y: p.Y},
		{X: p.X + 1, Y: p.Y},
		{X: p.X, Y: p.Y - 1},
		{X: p.X, Y: p.Y + 1},
	}
	for _, n := range neighbors {
		if _, ok := c.LetterAt(n); ok {
			return true
		}
	}
	return false
}
