package board

import (
	"reflect"
	"testing"

	"github.com/minseo-kang/wordgrid/game/tile"
)

func TestAdd(t *testing.T) {
	b := New()
	if err := b.Add(tile.Tile{Point: tile.P(0, 0), Letter: "C"}); err != nil {
		t.Fatalf("unwanted error: %v", err)
	}
	if err := b.Add(tile.Tile{Point: tile.P(0, 0), Letter: "X"}); err == nil {
		t.Error("wanted error adding to occupied cell")
	}
	if l, ok := b.LetterAt(tile.P(0, 0)); !ok || l != "C" {
		t.Errorf("wanted C at origin, got %q (%v)", l, ok)
	}
	if !b.Occupied(tile.P(0, 0)) || b.Occupied(tile.P(1, 0)) {
		t.Error("wanted only origin occupied")
	}
}

func TestRecolor(t *testing.T) {
	b := New()
	b.Add(tile.Tile{Point: tile.P(2, 3), Letter: "A", Color: "#111"})
	b.Recolor(tile.P(2, 3), "#222")
	b.Recolor(tile.P(9, 9), "#333") // no-op on empty cell
	if got := b[tile.P(2, 3)].Color; got != "#222" {
		t.Errorf("wanted recolored tile, got %q", got)
	}
}

// lineBoard lays word horizontally starting at (x,y).
func lineBoard(word string, x, y int) Board {
	b := New()
	for i, r := range word {
		b.Add(tile.Tile{Point: tile.P(x+i, y), Letter: tile.Letter(r)})
	}
	return b
}

func TestRunThrough(t *testing.T) {
	b := lineBoard("CAT", 5, 2)
	b.Add(tile.Tile{Point: tile.P(6, 1), Letter: "O"}) // above the A
	runThroughTests := []struct {
		p          tile.Point
		axis       tile.Axis
		wantWord   string
		wantStart  tile.Point
		wantPoints int
	}{
		{ // whole row from any cell of it
			p:          tile.P(6, 2),
			axis:       tile.Horizontal,
			wantWord:   "CAT",
			wantStart:  tile.P(5, 2),
			wantPoints: 3,
		},
		{
			p:          tile.P(7, 2),
			axis:       tile.Horizontal,
			wantWord:   "CAT",
			wantStart:  tile.P(5, 2),
			wantPoints: 3,
		},
		{ // the vertical run through the A picks up the O
			p:          tile.P(6, 2),
			axis:       tile.Vertical,
			wantWord:   "OA",
			wantStart:  tile.P(6, 1),
			wantPoints: 2,
		},
		{ // single-cell run
			p:          tile.P(5, 2),
			axis:       tile.Vertical,
			wantWord:   "C",
			wantStart:  tile.P(5, 2),
			wantPoints: 1,
		},
	}
	for i, test := range runThroughTests {
		got := RunThrough(b, test.p, test.axis)
		switch {
		case got.Word != test.wantWord:
			t.Errorf("Test %v: wanted word %q, got %q", i, test.wantWord, got.Word)
		case got.Start != test.wantStart:
			t.Errorf("Test %v: wanted start %v, got %v", i, test.wantStart, got.Start)
		case got.Len() != test.wantPoints:
			t.Errorf("Test %v: wanted %v points, got %v", i, test.wantPoints, got.Len())
		}
	}
}

func TestOverlay(t *testing.T) {
	b := lineBoard("AB", 0, 0)
	extra := Extra{Point: tile.P(2, 0), Letter: "C"}
	view := Overlay{b, extra}
	run := RunThrough(view, tile.P(2, 0), tile.Horizontal)
	want := Run{
		Start:  tile.P(0, 0),
		Axis:   tile.Horizontal,
		Word:   "ABC",
		Points: []tile.Point{tile.P(0, 0), tile.P(1, 0), tile.P(2, 0)},
	}
	if !reflect.DeepEqual(run, want) {
		t.Errorf("wanted %+v, got %+v", want, run)
	}
}

func TestOverlayEarlierLayersWin(t *testing.T) {
	b := lineBoard("A", 0, 0)
	extra := Extra{Point: tile.P(0, 0), Letter: "Z"}
	view := Overlay{b, extra}
	if l, _ := view.LetterAt(tile.P(0, 0)); l != "A" {
		t.Errorf("wanted board layer to win, got %q", l)
	}
}

func TestAdjacent(t *testing.T) {
	b := lineBoard("A", 0, 0)
	adjacentTests := []struct {
		p    tile.Point
		want bool
	}{
		{p: tile.P(1, 0), want: true},
		{p: tile.P(-1, 0), want: true},
		{p: tile.P(0, 1), want: true},
		{p: tile.P(0, -1), want: true},
		{p: tile.P(1, 1)}, // diagonal does not count
		{p: tile.P(5, 5)},
	}
	for i, test := range adjacentTests {
		if got := Adjacent(b, test.p); got != test.want {
			t.Errorf("Test %v: wanted %v for %v, got %v", i, test.want, test.p, got)
		}
	}
}
