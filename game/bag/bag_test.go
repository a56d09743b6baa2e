package bag

import (
	"testing"

	"github.com/minseo-kang/wordgrid/game"
	"github.com/minseo-kang/wordgrid/game/jamo"
	"github.com/minseo-kang/wordgrid/game/tile"
)

func TestNewFillsBag(t *testing.T) {
	b := New(game.English, nil)
	if got := b.Peek(); got != capacityTarget {
		t.Errorf("wanted %v letters after fill, got %v", capacityTarget, got)
	}
	for _, l := range b.letters {
		if len(l) != 1 || l[0] < 'A' || l[0] > 'Z' {
			t.Errorf("wanted uppercase English letter, got %q", l)
		}
	}
}

func TestDrawRefillsWhenLow(t *testing.T) {
	b := New(game.English, nil)
	drawn := b.Draw(capacityTarget - refillThreshold + 1)
	if len(drawn) != capacityTarget-refillThreshold+1 {
		t.Fatalf("wanted %v letters drawn, got %v", capacityTarget-refillThreshold+1, len(drawn))
	}
	// The last draw dipped below the threshold, so a refill happened.
	if got := b.Peek(); got < refillThreshold {
		t.Errorf("wanted bag refilled above %v letters, got %v", refillThreshold, got)
	}
}

func TestDrawNeverEmpty(t *testing.T) {
	b := New(game.English, nil)
	for n := 0; n < 50; n++ {
		if got := b.Draw(10); len(got) != 10 {
			t.Fatalf("draw %v: wanted 10 letters, got %v", n, len(got))
		}
	}
}

func TestReturnSkipsEmptySlots(t *testing.T) {
	b := New(game.English, nil)
	before := b.Peek()
	b.Return([]tile.Letter{"A", "", "B", ""})
	if got := b.Peek(); got != before+2 {
		t.Errorf("wanted %v letters after return, got %v", before+2, got)
	}
}

func TestKoreanClassSplit(t *testing.T) {
	b := New(game.Korean, nil)
	var cho, jung, jong int
	for _, l := range b.letters {
		r := []rune(string(l))[0]
		switch {
		case jamo.IsJungsung(r):
			jung++
		case jamo.IsChosung(r):
			// Chosung overlaps jongsung; the default table only uses
			// consonants valid in both roles, so count by share below.
			cho++
		case jamo.IsJongsung(r):
			jong++
		default:
			t.Fatalf("unexpected letter %q in Korean bag", l)
		}
	}
	if jung != jungShare {
		t.Errorf("wanted %v vowels, got %v", jungShare, jung)
	}
	if cho+jong != capacityTarget-jungShare {
		t.Errorf("wanted %v consonants, got %v", capacityTarget-jungShare, cho+jong)
	}
}

func TestPickWeighted(t *testing.T) {
	pickWeightedTests := []struct {
		weights map[tile.Letter]float64
		count   int
		wantLen int
	}{
		{ // empty table
			count: 5,
		},
		{ // nonpositive count
			weights: map[tile.Letter]float64{"A": 1},
		},
		{ // zero weights are skipped entirely
			weights: map[tile.Letter]float64{"A": 0},
			count:   5,
		},
		{
			weights: map[tile.Letter]float64{"A": 1},
			count:   5,
			wantLen: 5,
		},
	}
	for i, test := range pickWeightedTests {
		got := pickWeighted(test.weights, test.count)
		if len(got) != test.wantLen {
			t.Errorf("Test %v: wanted %v letters, got %v", i, test.wantLen, len(got))
		}
	}
	only := pickWeighted(map[tile.Letter]float64{"Q": 2.5}, 10)
	for _, l := range only {
		if l != "Q" {
			t.Errorf("wanted only Q from single-letter table, got %q", l)
		}
	}
}

func TestLoadJamoWeights(t *testing.T) {
	loadJamoWeightsTests := []struct {
		path        string
		wantOk      bool
		wantDefault bool
	}{
		{ // empty path falls back to the built-in table
			wantOk:      true,
			wantDefault: true,
		},
		{ // missing file falls back to the built-in table
			path:        "testdata/does-not-exist.json",
			wantOk:      true,
			wantDefault: true,
		},
	}
	want := DefaultJamoWeights()
	for i, test := range loadJamoWeightsTests {
		jw, err := LoadJamoWeights(test.path)
		switch {
		case !test.wantOk:
			if err == nil {
				t.Errorf("Test %v: wanted error", i)
			}
		case err != nil:
			t.Errorf("Test %v: unwanted error: %v", i, err)
		case test.wantDefault && len(jw.Chosung) != len(want.Chosung):
			t.Errorf("Test %v: wanted built-in table, got %v", i, jw)
		}
	}
}
