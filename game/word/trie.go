// Package word provides dictionary lookups and the prefix/suffix
// pruning structure used to reject hopeless placements early.
package word

type (
	// Trie is a forward prefix tree over dictionary words.
	Trie struct {
		root trieNode
		size int
	}

	trieNode struct {
		children map[rune]*trieNode
		terminal bool
	}

	// Bidirectional pairs a forward trie with a trie of reversed words so
	// prefix, suffix, and edge-substring queries all run in O(m).
	//
	// An empty Bidirectional is permissive: HasPrefix and HasSuffix report
	// true so gameplay is not blocked before or without a dictionary.
	Bidirectional struct {
		forward Trie
		reverse Trie
	}
)

// Add inserts a word into the trie.
func (t *Trie) Add(w string) {
	if len(w) == 0 {
		return
	}
	n := &t.root
	for _, r := range w {
		if n.children == nil {
			n.children = make(map[rune]*trieNode)
		}
		next, ok := n.children[r]
		if !ok {
			next = &trieNode{}
			n.children[r] = next
		}
		n = next
	}
	if !n.terminal {
		n.terminal = true
		t.size++
	}
}

// Len returns the number of distinct words added.
func (t *Trie) Len() int {
	return t.size
}

// walk descends along the runes of s, returning the final node or nil.
func (t *Trie) walk(s string) *trieNode {
	n := &t.root
	for _, r := range s {
		next, ok := n.children[r]
		if !ok {
			return nil
		}
		n = next
	}
	return n
}

// Contains reports whether the exact word was added.
func (t *Trie) Contains(w string) bool {
	n := t.walk(w)
	return n != nil && n.terminal
}

// HasPrefix reports whether any added word starts with p.  An empty trie
// is permissive and reports true.
func (t *Trie) HasPrefix(p string) bool {
	if t.size == 0 {
		return true
	}
	return t.walk(p) != nil
}

// Add inserts a word into both underlying tries.
func (b *Bidirectional) Add(w string) {
	b.forward.Add(w)
	b.reverse.Add(reverse(w))
}

// Len returns the number of distinct words added.
func (b *Bidirectional) Len() int {
	return b.forward.Len()
}

// Contains reports whether the exact word was added.
func (b *Bidirectional) Contains(w string) bool {
	return b.forward.Contains(w)
}

// HasPrefix reports whether some word starts with p.
func (b *Bidirectional) HasPrefix(p string) bool {
	return b.forward.HasPrefix(p)
}

// HasSuffix reports whether some word ends with s.
func (b *Bidirectional) HasSuffix(s string) bool {
	return b.reverse.HasPrefix(reverse(s))
}

// HasEdgeSubstring reports whether s could still be grown into a word
// from either end.  This is a pruning check, not a substring test: it is
// exactly HasPrefix(s) or HasSuffix(s).
func (b *Bidirectional) HasEdgeSubstring(s string) bool {
	return b.HasPrefix(s) || b.HasSuffix(s)
}

// reverse returns the runes of s in reverse order.
func reverse(s string) string {
	rs := []rune(s)
	for i, j := 0, len(rs)-1; i < j; i, j = i+1, j-1 {
		rs[i], rs[j] = rs[j], rs[i]
	}
	return string(rs)
}
