// internal/zhuyin/zhuyin.go
//
// Character to zhuyin (bopomofo) conversion.
//
// A character is first resolved to tone-numbered pinyin (e.g. "he2"), the
// base syllable is mapped through a static table and a tone mark is appended.
//
// Fallbacks never fail the caller:
//   - no pinyin for the character  → the character itself
//   - syllable missing from table  → the pinyin string unchanged

package zhuyin

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/mozillazg/go-pinyin"
)

// ErrNotSingleChar is returned for input that is not exactly one character.
var ErrNotSingleChar = errors.New("zhuyin: input must be a single character")

// LookupFunc returns the tone-numbered pinyin readings of one character,
// most common first. An empty result means the character is unknown.
type LookupFunc func(char string) []string

var toneMarks = map[byte]string{
	'1': "",
	'2': "ˊ",
	'3': "ˇ",
	'4': "ˋ",
	'5': "˙",
}

// Converter turns characters into zhuyin. It holds no mutable state.
type Converter struct {
	lookup LookupFunc
}

// New returns a Converter backed by go-pinyin.
func New() *Converter {
	return NewWithLookup(pinyinLookup)
}

// NewWithLookup returns a Converter using fn for pinyin lookup.
func NewWithLookup(fn LookupFunc) *Converter {
	return &Converter{lookup: fn}
}

func pinyinLookup(char string) []string {
	args := pinyin.NewArgs()
	args.Style = pinyin.Tone3
	res := pinyin.Pinyin(char, args)
	if len(res) == 0 {
		return nil
	}
	return res[0]
}

// CharToZhuyin converts a single character.
func (c *Converter) CharToZhuyin(char string) (string, error) {
	if utf8.RuneCountInString(char) != 1 {
		return "", ErrNotSingleChar
	}
	readings := c.lookup(char)
	if len(readings) == 0 || readings[0] == "" {
		return char, nil
	}
	return PinyinToZhuyin(readings[0]), nil
}

// PinyinToZhuyin maps one tone-numbered pinyin syllable such as "zhong1".
// A missing tone digit is read as first tone.
func PinyinToZhuyin(p string) string {
	s := strings.ToLower(strings.TrimSpace(p))
	s = strings.ReplaceAll(s, "ü", "v")

	tone := byte('1')
	if n := len(s); n > 0 && s[n-1] >= '0' && s[n-1] <= '9' {
		tone = s[n-1]
		s = s[:n-1]
	}
	if s == "" || !isLetters(s) {
		return p
	}

	base, ok := syllables[s]
	if !ok {
		return p
	}
	return base + toneMarks[tone]
}

func isLetters(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 'a' || s[i] > 'z' {
			return false
		}
	}
	return true
}

// Size is the number of syllables in the table.
func Size() int { return len(syllables) }
