// Package bag implements the shuffled queue of letters a room draws
// replacement tiles from.
package bag

import (
	"math/rand"

	"github.com/minseo-kang/wordgrid/game"
	"github.com/minseo-kang/wordgrid/game/tile"
)

const (
	// capacityTarget is the batch size of a fill or refill.
	capacityTarget = 100
	// refillThreshold triggers a refill before a draw continues.
	refillThreshold = 20
)

// Korean fills split the batch across the three jamo classes so racks can
// always form syllables: 42 initial consonants, 46 vowels, 12 finals.
const (
	choShare  = 42
	jungShare = 46
)

// Bag is an ordered multiset of letters.  It is not safe for concurrent
// use; the owning room serializes access.
type Bag struct {
	letters []tile.Letter
	lang    game.Lang
	jamo    *JamoWeights
}

// New creates a filled, shuffled bag for the language.  jamo weights are
// only consulted for Korean and may be nil to use the built-in table.
func New(lang game.Lang, jamo *JamoWeights) *Bag {
	if jamo == nil {
		jamo = DefaultJamoWeights()
	}
	b := Bag{
		lang: lang,
		jamo: jamo,
	}
	b.refill()
	return &b
}

// Peek returns the number of letters left.
func (b *Bag) Peek() int {
	return len(b.letters)
}

// Draw removes and returns up to n letters from the tail.  The bag
// refills itself whenever it runs low so a draw only comes up short when
// n exceeds a full refill.
func (b *Bag) Draw(n int) []tile.Letter {
	drawn := make([]tile.Letter, 0, n)
	for len(drawn) < n {
		if len(b.letters) < refillThreshold {
			b.refill()
		}
		if len(b.letters) == 0 {
			break
		}
		last := len(b.letters) - 1
		drawn = append(drawn, b.letters[last])
		b.letters = b.letters[:last]
	}
	return drawn
}

// Return puts letters back and reshuffles.  Empty slots are skipped.
func (b *Bag) Return(letters []tile.Letter) {
	for _, l := range letters {
		if !l.Empty() {
			b.letters = append(b.letters, l)
		}
	}
	b.shuffle()
}

// refill appends a freshly weighted batch and reshuffles.
func (b *Bag) refill() {
	b.letters = append(b.letters, b.generate(capacityTarget)...)
	b.shuffle()
}

func (b *Bag) shuffle() {
	rand.Shuffle(len(b.letters), func(i, j int) {
		b.letters[i], b.letters[j] = b.letters[j], b.letters[i]
	})
}

// generate draws count letters weighted by the language's frequency
// tables.
func (b *Bag) generate(count int) []tile.Letter {
	if b.lang != game.Korean {
		return pickWeighted(englishWeights, count)
	}
	cho := count * choShare / capacityTarget
	jung := count * jungShare / capacityTarget
	jong := count - cho - jung
	letters := make([]tile.Letter, 0, count)
	letters = append(letters, pickWeighted(b.jamo.Chosung, cho)...)
	letters = append(letters, pickWeighted(b.jamo.Jungsung, jung)...)
	letters = append(letters, pickWeighted(b.jamo.Jongsung, jong)...)
	return letters
}

// pickWeighted draws count letters from the weight table with
// replacement, each letter proportional to its weight.
func pickWeighted(weights map[tile.Letter]float64, count int) []tile.Letter {
	if count <= 0 || len(weights) == 0 {
		return nil
	}
	letters := make([]tile.Letter, 0, len(weights))
	cumulative := make([]float64, 0, len(weights))
	var total float64
	for l, w := range weights {
		if w <= 0 {
			continue
		}
		total += w
		letters = append(letters, l)
		cumulative = append(cumulative, total)
	}
	if total <= 0 {
		return nil
	}
	picked := make([]tile.Letter, count)
	for i := range picked {
		f := rand.Float64() * total
		lo, hi := 0, len(cumulative)-1
		for lo < hi {
			mid := (lo + hi) / 2
			if cumulative[mid] < f {
				lo = mid + 1
			} else {
				hi = mid
			}
		}
		picked[i] = letters[lo]
	}
	return picked
}

// englishWeights is the approximate frequency of each letter in English
// text, in percent.
var englishWeights = map[tile.Letter]float64{
	"E": 12.02, "T": 9.10, "A": 8.12, "O": 7.68, "I": 7.31, "N": 6.95,
	"S": 6.28, "R": 6.02, "H": 5.92, "D": 4.32, "L": 3.98, "U": 2.88,
	"C": 2.71, "M": 2.61, "F": 2.30, "Y": 2.11, "W": 2.09, "G": 2.03,
	"P": 1.82, "B": 1.49, "V": 1.11, "K": 0.69, "X": 0.17, "Q": 0.11,
	"J": 0.10, "Z": 0.07,
}
