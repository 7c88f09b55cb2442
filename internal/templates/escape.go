package templates

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/toyz/implgen/internal/errors"
)

// Escape rewrites every codepoint at or above 128 as a \uXXXX escape. Codepoints
// outside the basic plane become a surrogate pair so each escape stays four
// hex digits wide.
func Escape(s string) (string, error) {
	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); {
		c := s[i]
		if c < utf8.RuneSelf {
			b.WriteByte(c)
			i++
			continue
		}

		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size <= 1 {
			if !utf8.FullRuneInString(s[i:]) {
				return "", errors.MalformedText("truncated unexpectedly", i)
			}
			return "", errors.MalformedText("invalid encoding", i)
		}

		if r1, r2 := utf16.EncodeRune(r); r1 != utf8.RuneError {
			writeUnit(&b, r1)
			writeUnit(&b, r2)
		} else {
			writeUnit(&b, r)
		}
		i += size
	}

	return b.String(), nil
}

// MustEscape escapes s and panics on malformed input. Only for text known to be
// valid UTF-8.
func MustEscape(s string) string {
	escaped, err := Escape(s)
	if err != nil {
		panic(err)
	}
	return escaped
}

func writeUnit(b *strings.Builder, r rune) {
	fmt.Fprintf(b, "\\u%04x", r)
}

// Unescape decodes \uXXXX escapes, including surrogate pairs and the repeated
// 'u' form allowed in Java source. A backslash that does not start an escape
// is kept as is.
func Unescape(s string) (string, error) {
	if !strings.Contains(s, `\u`) {
		return s, nil
	}

	var units []rune
	var b strings.Builder
	flush := func() {
		if len(units) > 0 {
			b.WriteString(string(utf16.Decode(toUint16(units))))
			units = units[:0]
		}
	}

	for i := 0; i < len(s); {
		if s[i] == '\\' && i+1 < len(s) && s[i+1] == 'u' && !precededByBackslash(s, i) {
			j := i + 1
			for j < len(s) && s[j] == 'u' {
				j++
			}
			if j+4 > len(s) {
				return "", errors.MalformedText("truncated unicode escape", i)
			}
			v, err := strconv.ParseUint(s[j:j+4], 16, 16)
			if err != nil {
				return "", errors.MalformedText(fmt.Sprintf("invalid unicode escape %q", s[i:j+4]), i)
			}
			units = append(units, rune(v))
			i = j + 4
			continue
		}

		flush()
		r, size := utf8.DecodeRuneInString(s[i:])
		b.WriteRune(r)
		i += size
	}
	flush()

	return b.String(), nil
}

// precededByBackslash reports whether the backslash at i is itself escaped by
// an odd run of backslashes before it.
func precededByBackslash(s string, i int) bool {
	n := 0
	for j := i - 1; j >= 0 && s[j] == '\\'; j-- {
		n++
	}
	return n%2 == 1
}

func toUint16(units []rune) []uint16 {
	out := make([]uint16, len(units))
	for i, u := range units {
		out[i] = uint16(u)
	}
	return out
}
