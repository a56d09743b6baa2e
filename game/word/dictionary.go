package word

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/minseo-kang/wordgrid/game"
)

type (
	// Row is one hydrated dictionary entry.
	Row struct {
		Word   string
		Lang   game.Lang
		Length int
		Score  int
	}

	// Source supplies dictionary rows, typically from a database, once
	// at startup.
	Source interface {
		Words(ctx context.Context) ([]Row, error)
	}

	// Entry is the stored value for a word.
	Entry struct {
		Length int
		Score  int
	}

	// Result is the outcome of a lookup.
	Result struct {
		Valid  bool
		Word   string
		Length int
		Score  int
	}

	// Dictionary indexes words per language for exact lookup, sampling by
	// length, and prefix/suffix pruning.  It is read-only after New and
	// safe for concurrent use.
	Dictionary struct {
		langs map[game.Lang]*langIndex
	}

	langIndex struct {
		words    map[string]Entry
		byLength map[int][]string
		trie     Bidirectional
	}
)

// New builds a dictionary from rows.  A zero Length is derived from the
// word itself.
func New(rows []Row) *Dictionary {
	d := Dictionary{
		langs: make(map[game.Lang]*langIndex),
	}
	for _, r := range rows {
		w := fold(r.Word, r.Lang)
		if len(w) == 0 {
			continue
		}
		li, ok := d.langs[r.Lang]
		if !ok {
			li = &langIndex{
				words:    make(map[string]Entry),
				byLength: make(map[int][]string),
			}
			d.langs[r.Lang] = li
		}
		if _, ok := li.words[w]; ok {
			continue
		}
		length := r.Length
		if length <= 0 {
			length = len([]rune(w))
		}
		li.words[w] = Entry{Length: length, Score: r.Score}
		li.byLength[length] = append(li.byLength[length], w)
		li.trie.Add(w)
	}
	return &d
}

// Load hydrates a dictionary from the source.
func Load(ctx context.Context, src Source) (*Dictionary, error) {
	rows, err := src.Words(ctx)
	if err != nil {
		return nil, fmt.Errorf("hydrating dictionary: %w", err)
	}
	return New(rows), nil
}

// Empty returns a dictionary with no words.  Its pruning checks are
// permissive and its lookups always fail.
func Empty() *Dictionary {
	return New(nil)
}

// Len returns the number of words loaded for the language.
func (d *Dictionary) Len(lang game.Lang) int {
	if li, ok := d.langs[lang]; ok {
		return len(li.words)
	}
	return 0
}

// Lookup checks a word for exact membership.  English words are folded
// to upper case; Korean words are matched verbatim as jamo strings.
func (d *Dictionary) Lookup(w string, lang game.Lang) Result {
	w = fold(w, lang)
	r := Result{Word: w}
	li, ok := d.langs[lang]
	if !ok {
		return r
	}
	e, ok := li.words[w]
	if !ok {
		return r
	}
	r.Valid = true
	r.Length = e.Length
	r.Score = e.Score
	return r
}

// HasPrefix reports whether some word in the language starts with p.
// Unloaded languages are permissive.
func (d *Dictionary) HasPrefix(p string, lang game.Lang) bool {
	li, ok := d.langs[lang]
	if !ok {
		return true
	}
	return li.trie.HasPrefix(fold(p, lang))
}

// HasSuffix reports whether some word in the language ends with s.
// Unloaded languages are permissive.
func (d *Dictionary) HasSuffix(s string, lang game.Lang) bool {
	li, ok := d.langs[lang]
	if !ok {
		return true
	}
	return li.trie.HasSuffix(fold(s, lang))
}

// HasEdgeSubstring reports whether s could be grown into a word from
// either end.
func (d *Dictionary) HasEdgeSubstring(s string, lang game.Lang) bool {
	return d.HasPrefix(s, lang) || d.HasSuffix(s, lang)
}

// RandomWord draws uniformly from words whose length satisfies the
// constraint.  exactLen takes precedence over the min/max range; zero
// values leave a bound open.  The empty string is returned when no word
// matches.
func (d *Dictionary) RandomWord(minLen, maxLen, exactLen int, lang game.Lang) string {
	li, ok := d.langs[lang]
	if !ok {
		return ""
	}
	var candidates []string
	switch {
	case exactLen > 0:
		candidates = li.byLength[exactLen]
	default:
		for length, words := range li.byLength {
			if minLen > 0 && length < minLen {
				continue
			}
			if maxLen > 0 && length > maxLen {
				continue
			}
			candidates = append(candidates, words...)
		}
	}
	if len(candidates) == 0 {
		return ""
	}
	return candidates[rand.Intn(len(candidates))]
}

// fold normalizes a word for the language: upper case for English,
// verbatim jamo for Korean.
func fold(w string, lang game.Lang) string {
	if lang == game.English {
		return strings.ToUpper(w)
	}
	return w
}
