package engine

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// asciiFallbacks maps letters that have no combining-mark
// decomposition to a plain-ASCII spelling.
var asciiFallbacks = map[rune]string{
	'æ': "ae", 'Æ': "AE",
	'œ': "oe", 'Œ': "OE",
	'ß': "ss",
	'ø': "o", 'Ø': "O",
	'đ': "d", 'Đ': "D",
	'ł': "l", 'Ł': "L",
	'þ': "th", 'Þ': "Th",
	'ð': "dh", 'Ð': "Dh",
}

// strippedRunes are dropped outright: inverted Spanish punctuation,
// the degree sign and curly quotes all confuse the legacy display
// surface the replies end up on.
var strippedRunes = map[rune]bool{
	'¿': true, '¡': true, '°': true,
	'“': true, '”': true, // “ ”
	'‘': true, '’': true, // ‘ ’
}

var decompose = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))

// Normalize canonicalizes text to the character repertoire the
// downstream surface accepts. It is pure and idempotent; malformed
// input yields the empty string.
func Normalize(text string) string {
	if text == "" || !utf8.ValidString(text) {
		return ""
	}

	decomposed, _, err := transform.String(decompose, text)
	if err != nil {
		return ""
	}

	var b strings.Builder
	b.Grow(len(decomposed))
	skipLF := false
	for _, r := range decomposed {
		if skipLF {
			skipLF = false
			if r == '\n' {
				continue
			}
		}
		if r == '\r' {
			b.WriteByte('\n')
			skipLF = true
			continue
		}
		if strippedRunes[r] {
			continue
		}
		if repl, ok := asciiFallbacks[r]; ok {
			b.WriteString(repl)
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}
