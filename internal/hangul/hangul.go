// Package hangul decomposes Korean syllables into their component letters so
// that partially typed words can be matched against complete text.
package hangul

import (
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	leadingJamo  = []rune("ㄱㄲㄴㄷㄸㄹㅁㅂㅃㅅㅆㅇㅈㅉㅊㅋㅌㅍㅎ")
	trailingJamo = []rune("ㄱㄲㄳㄴㄵㄶㄷㄹㄺㄻㄼㄽㄾㄿㅀㅁㅂㅄㅅㅆㅇㅈㅊㅋㅌㅍㅎ")
)

// compound letters split into the keys typed to produce them. Double
// consonants such as ㄲ are single keys and stay whole.
var compounds = map[rune][]rune{
	'ㅘ': []rune("ㅗㅏ"),
	'ㅙ': []rune("ㅗㅐ"),
	'ㅚ': []rune("ㅗㅣ"),
	'ㅝ': []rune("ㅜㅓ"),
	'ㅞ': []rune("ㅜㅔ"),
	'ㅟ': []rune("ㅜㅣ"),
	'ㅢ': []rune("ㅡㅣ"),
	'ㄳ': []rune("ㄱㅅ"),
	'ㄵ': []rune("ㄴㅈ"),
	'ㄶ': []rune("ㄴㅎ"),
	'ㄺ': []rune("ㄹㄱ"),
	'ㄻ': []rune("ㄹㅁ"),
	'ㄼ': []rune("ㄹㅂ"),
	'ㄽ': []rune("ㄹㅅ"),
	'ㄾ': []rune("ㄹㅌ"),
	'ㄿ': []rune("ㄹㅍ"),
	'ㅀ': []rune("ㄹㅎ"),
	'ㅄ': []rune("ㅂㅅ"),
}

// Decomposed is a lowered, whitespace-free letter sequence together with the
// rune offset in the source text that produced each letter.
type Decomposed struct {
	Letters []rune
	Source  []int
}

// Disassemble returns the letters of text as a string. Hangul syllables
// become compatibility jamo, other letters are lowercased and whitespace is
// removed.
func Disassemble(text string) string {
	return string(Decompose(text).Letters)
}

// Decompose is Disassemble with the source position of every letter kept.
func Decompose(text string) Decomposed {
	var out Decomposed
	index := 0
	for _, r := range text {
		if !unicode.IsSpace(r) {
			for _, letter := range letters(r) {
				out.Letters = append(out.Letters, letter)
				out.Source = append(out.Source, index)
			}
		}
		index++
	}
	return out
}

func letters(r rune) []rune {
	if !isSyllable(r) {
		return expand(unicode.ToLower(toCompatibility(r)))
	}

	var out []rune
	for _, part := range norm.NFD.String(string(r)) {
		out = append(out, expand(toCompatibility(part))...)
	}
	return out
}

func expand(r rune) []rune {
	if parts, ok := compounds[r]; ok {
		return parts
	}
	return []rune{r}
}

func isSyllable(r rune) bool {
	return r >= 0xAC00 && r <= 0xD7A3
}

// toCompatibility maps conjoining jamo to the compatibility block typed on a
// keyboard. Other runes are returned unchanged.
func toCompatibility(r rune) rune {
	switch {
	case r >= 0x1100 && r <= 0x1112:
		return leadingJamo[r-0x1100]
	case r >= 0x1161 && r <= 0x1175:
		return 0x314F + (r - 0x1161)
	case r >= 0x11A8 && r <= 0x11C2:
		return trailingJamo[r-0x11A8]
	}
	return r
}

// Subsequence reports whether every letter of needle appears in haystack in
// order. Matching is greedy from the left.
func Subsequence(haystack, needle []rune) ([]int, bool) {
	if len(needle) == 0 {
		return nil, false
	}
	positions := make([]int, 0, len(needle))
	j := 0
	for i := 0; i < len(haystack) && j < len(needle); i++ {
		if haystack[i] == needle[j] {
			positions = append(positions, i)
			j++
		}
	}
	if j < len(needle) {
		return nil, false
	}
	return positions, true
}

// Contains reports whether the decomposed needle is a subsequence of the
// decomposed haystack.
func Contains(haystack, needle string) bool {
	_, ok := Subsequence(Decompose(haystack).Letters, Decompose(needle).Letters)
	return ok
}
