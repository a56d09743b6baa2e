// Package jamo converts between Hangul syllables and their constituent
// jamo letters.  Korean words are stored and played as decomposed jamo
// strings, one jamo per tile.
package jamo

import "strings"

// Hangul syllable block range.
const (
	syllableBase = 0xAC00 // '가'
	syllableEnd  = 0xD7A3 // '힣'
)

// Class is the role a jamo plays inside a syllable.
type Class int

const (
	// Unknown is any rune that is not a playable jamo.
	Unknown Class = iota
	// Chosung is an initial consonant.
	Chosung
	// Jungsung is a medial vowel.
	Jungsung
	// Jongsung is a final consonant.
	Jongsung
)

// Chosungs are the 19 initial consonants in code point order.
var Chosungs = []rune{
	'ㄱ', 'ㄲ', 'ㄴ', 'ㄷ', 'ㄸ', 'ㄹ', 'ㅁ', 'ㅂ', 'ㅃ',
	'ㅅ', 'ㅆ', 'ㅇ', 'ㅈ', 'ㅉ', 'ㅊ', 'ㅋ', 'ㅌ', 'ㅍ', 'ㅎ',
}

// Jungsungs are the 21 medial vowels in code point order.
var Jungsungs = []rune{
	'ㅏ', 'ㅐ', 'ㅑ', 'ㅒ', 'ㅓ', 'ㅔ', 'ㅕ', 'ㅖ', 'ㅗ', 'ㅘ',
	'ㅙ', 'ㅚ', 'ㅛ', 'ㅜ', 'ㅝ', 'ㅞ', 'ㅟ', 'ㅠ', 'ㅡ', 'ㅢ', 'ㅣ',
}

// Jongsungs are the 28 final consonant values; index 0 is the absent
// final consonant.
var Jongsungs = []rune{
	0, 'ㄱ', 'ㄲ', 'ㄳ', 'ㄴ', 'ㄵ', 'ㄶ', 'ㄷ', 'ㄹ', 'ㄺ', 'ㄻ',
	'ㄼ', 'ㄽ', 'ㄾ', 'ㄿ', 'ㅀ', 'ㅁ', 'ㅂ', 'ㅄ', 'ㅅ', 'ㅆ', 'ㅇ',
	'ㅈ', 'ㅊ', 'ㅋ', 'ㅌ', 'ㅍ', 'ㅎ',
}

var (
	chosungIndex  = indexOf(Chosungs)
	jungsungIndex = indexOf(Jungsungs)
	jongsungIndex = indexOf(Jongsungs[1:])
)

func indexOf(rs []rune) map[rune]int {
	m := make(map[rune]int, len(rs))
	for i, r := range rs {
		m[r] = i
	}
	return m
}

// IsSyllable reports whether the rune is a complete Hangul syllable.
func IsSyllable(r rune) bool {
	return syllableBase <= r && r <= syllableEnd
}

// ClassOf returns the role of a jamo rune.  Runes that can be both a
// final and an initial consonant are classified as Chosung; callers
// resolving syllable boundaries handle the overlap by looking ahead.
func ClassOf(r rune) Class {
	switch {
	case contains(chosungIndex, r):
		return Chosung
	case contains(jungsungIndex, r):
		return Jungsung
	case contains(jongsungIndex, r):
		return Jongsung
	}
	return Unknown
}

func contains(m map[rune]int, r rune) bool {
	_, ok := m[r]
	return ok
}

// IsJungsung reports whether the rune is a medial vowel.
func IsJungsung(r rune) bool {
	return contains(jungsungIndex, r)
}

// IsChosung reports whether the rune can start a syllable.
func IsChosung(r rune) bool {
	return contains(chosungIndex, r)
}

// IsJongsung reports whether the rune can end a syllable.
func IsJongsung(r rune) bool {
	return contains(jongsungIndex, r)
}

// DecomposeSyllable splits a syllable into initial, medial, and final
// jamo.  The final is 0 when the syllable has no final consonant.
// Non-Hangul runes come back unchanged as the initial.
func DecomposeSyllable(r rune) (cho, jung, jong rune) {
	if !IsSyllable(r) {
		return r, 0, 0
	}
	code := r - syllableBase
	jongIdx := code % 28
	jungIdx := (code / 28) % 21
	choIdx := code / 28 / 21
	return Chosungs[choIdx], Jungsungs[jungIdx], Jongsungs[jongIdx]
}

// ComposeSyllable combines jamo into a syllable.  jong may be 0.  If the
// pair is not composable the jamo are returned concatenated as-is.
func ComposeSyllable(cho, jung, jong rune) string {
	choIdx, choOK := chosungIndex[cho]
	jungIdx, jungOK := jungsungIndex[jung]
	if !choOK || !jungOK {
		var sb strings.Builder
		sb.WriteRune(cho)
		if jung != 0 {
			sb.WriteRune(jung)
		}
		if jong != 0 {
			sb.WriteRune(jong)
		}
		return sb.String()
	}
	jongIdx := 0
	if jong != 0 {
		for i, r := range Jongsungs {
			if r == jong {
				jongIdx = i
				break
			}
		}
	}
	return string(rune(syllableBase + choIdx*21*28 + jungIdx*28 + jongIdx))
}

// Decompose flattens a Korean word into a jamo string.  Non-Hangul runes
// pass through unchanged.
func Decompose(word string) string {
	var sb strings.Builder
	for _, r := range word {
		if !IsSyllable(r) {
			sb.WriteRune(r)
			continue
		}
		cho, jung, jong := DecomposeSyllable(r)
		sb.WriteRune(cho)
		sb.WriteRune(jung)
		if jong != 0 {
			sb.WriteRune(jong)
		}
	}
	return sb.String()
}

// Compose rebuilds a word from a jamo string.  A consonant between two
// vowel-led syllables starts the next syllable rather than closing the
// current one.  Jamo that do not fit a syllable pattern pass through.
func Compose(jamos string) string {
	rs := []rune(jamos)
	var sb strings.Builder
	for i := 0; i < len(rs); {
		if !IsChosung(rs[i]) {
			sb.WriteRune(rs[i])
			i++
			continue
		}
		cho := rs[i]
		i++
		if i >= len(rs) || !IsJungsung(rs[i]) {
			sb.WriteRune(cho)
			continue
		}
		jung := rs[i]
		i++
		var jong rune
		if i < len(rs) && IsJongsung(rs[i]) {
			// Look ahead: a consonant followed by a vowel belongs to the
			// next syllable.
			if !(i+1 < len(rs) && IsJungsung(rs[i+1])) {
				jong = rs[i]
				i++
			}
		}
		sb.WriteString(ComposeSyllable(cho, jung, jong))
	}
	return sb.String()
}

// ValidPattern reports whether the jamo string parses as one or more
// complete syllables, each at least an initial consonant plus a vowel.
func ValidPattern(jamos string) bool {
	rs := []rune(jamos)
	if len(rs) == 0 {
		return false
	}
	for i := 0; i < len(rs); {
		if !IsChosung(rs[i]) {
			return false
		}
		i++
		if i >= len(rs) || !IsJungsung(rs[i]) {
			return false
		}
		i++
		if i < len(rs) && IsJongsung(rs[i]) {
			if !(i+1 < len(rs) && IsJungsung(rs[i+1])) {
				i++
			}
		}
	}
	return true
}
