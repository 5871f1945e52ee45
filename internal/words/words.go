// internal/words/words.go
//
// Two-character word index used to decide whether a hint is legal.
//
// Responsibilities:
//   - Load the word list from WORDS_FILE or fall back to the embedded list.
//   - Maintain the word set plus lookups keyed by leading and trailing character.
//   - Validate hint/secret pairs and pick characters that make good secrets.
//
// File formats accepted by Load:
//   - JSON object {"count": n, "words": [...]} as produced by the dictionary tool.
//   - JSON array of strings.
//   - Plain text, one word per line ('#' starts a comment line).
//
// Constraints:
//   • Only entries of exactly two characters are indexed.
//   • An Index never changes after construction and is safe for concurrent reads.

package words

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/guessword/go-server/assets"
)

// Position tells which side of the secret a hint sits on in the formed word.
type Position string

const (
	PositionBefore Position = "before" // hint + secret
	PositionAfter  Position = "after"  // secret + hint
)

// Validation is the outcome of ValidateHintPair.
type Validation struct {
	Valid    bool     `json:"valid"`
	Word     string   `json:"word,omitempty"`
	Position Position `json:"position,omitempty"`
	Reason   string   `json:"reason,omitempty"`
}

// Index holds the known two-character words.
type Index struct {
	all      map[string]struct{}
	byFirst  map[string][]string
	bySecond map[string][]string
	chars    []string // every indexed character, sorted
	fallback bool
}

// ErrEmptyList is returned when a word file yields no usable words.
var ErrEmptyList = errors.New("words: no two-character words in list")

// New builds an index from a list, skipping anything that is not two characters.
func New(list []string) *Index {
	idx := &Index{
		all:      make(map[string]struct{}, len(list)),
		byFirst:  make(map[string][]string),
		bySecond: make(map[string][]string),
	}
	for _, w := range list {
		w = strings.TrimSpace(w)
		if utf8.RuneCountInString(w) != 2 {
			continue
		}
		if _, dup := idx.all[w]; dup {
			continue
		}
		idx.all[w] = struct{}{}

		first, size := utf8.DecodeRuneInString(w)
		a, b := string(first), w[size:]
		idx.byFirst[a] = append(idx.byFirst[a], w)
		idx.bySecond[b] = append(idx.bySecond[b], w)
	}

	seen := make(map[string]struct{}, len(idx.byFirst)+len(idx.bySecond))
	for c := range idx.byFirst {
		seen[c] = struct{}{}
	}
	for c := range idx.bySecond {
		seen[c] = struct{}{}
	}
	idx.chars = make([]string, 0, len(seen))
	for c := range seen {
		idx.chars = append(idx.chars, c)
	}
	sort.Strings(idx.chars)
	return idx
}

// Fallback returns an index over the embedded word list.
func Fallback() *Index {
	idx := New(assets.FallbackWords())
	idx.fallback = true
	return idx
}

// Load reads a word file. An empty path selects the embedded list.
// On error the caller is expected to fall back to Fallback().
func Load(path string) (*Index, error) {
	if path == "" {
		return Fallback(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	list, err := parseList(raw)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	idx := New(list)
	if idx.Len() == 0 {
		return nil, ErrEmptyList
	}
	return idx, nil
}

// parseList sniffs the payload: JSON object, JSON array, or one word per line.
func parseList(raw []byte) ([]string, error) {
	trimmed := bytes.TrimSpace(raw)
	switch {
	case bytes.HasPrefix(trimmed, []byte("{")):
		var doc struct {
			Words []string `json:"words"`
		}
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return nil, err
		}
		return doc.Words, nil
	case bytes.HasPrefix(trimmed, []byte("[")):
		var list []string
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, err
		}
		return list, nil
	}

	var out []string
	sc := bufio.NewScanner(bytes.NewReader(trimmed))
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, s)
	}
	return out, sc.Err()
}

// ValidateHintPair checks whether hint+secret or secret+hint is a known word.
// When both orders are words, the hint-first reading wins.
func (x *Index) ValidateHintPair(secret, hint string) Validation {
	if w := hint + secret; x.Contains(w) {
		return Validation{Valid: true, Word: w, Position: PositionBefore}
	}
	if w := secret + hint; x.Contains(w) {
		return Validation{Valid: true, Word: w, Position: PositionAfter}
	}
	return Validation{
		Valid:  false,
		Reason: fmt.Sprintf("「%s」和「%s」無法組成有效的兩字詞", hint, secret),
	}
}

// Contains reports whether w is an indexed word.
func (x *Index) Contains(w string) bool {
	_, ok := x.all[w]
	return ok
}

// WordsContaining returns every word that starts or ends with char, sorted.
func (x *Index) WordsContaining(char string) []string {
	set := make(map[string]struct{})
	for _, w := range x.byFirst[char] {
		set[w] = struct{}{}
	}
	for _, w := range x.bySecond[char] {
		set[w] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for w := range set {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// IsGoodSecretCandidate reports whether char combines into at least min words.
func (x *Index) IsGoodSecretCandidate(char string, min int) bool {
	return x.countContaining(char) >= min
}

// countContaining is len(WordsContaining(char)) without building the list.
// A doubled word such as 常常 sits in both maps and is counted once.
func (x *Index) countContaining(char string) int {
	n := len(x.byFirst[char]) + len(x.bySecond[char])
	if _, ok := x.all[char+char]; ok {
		n--
	}
	return n
}

// candidates lists characters with at least minWords combinable words, in sorted order.
func (x *Index) candidates(minWords int) []string {
	var out []string
	for _, c := range x.chars {
		if x.IsGoodSecretCandidate(c, minWords) {
			out = append(out, c)
		}
	}
	return out
}

// RandomSecret picks one good secret character, or false if none qualify.
func (x *Index) RandomSecret(rng *rand.Rand, minWords int) (string, bool) {
	c := x.candidates(minWords)
	if len(c) == 0 {
		return "", false
	}
	return c[rng.Intn(len(c))], true
}

// Suggest returns up to n distinct secret candidates in random order.
func (x *Index) Suggest(rng *rand.Rand, n, minWords int) []string {
	c := x.candidates(minWords)
	rng.Shuffle(len(c), func(i, j int) { c[i], c[j] = c[j], c[i] })
	if n < len(c) {
		c = c[:n]
	}
	return c
}

// Len is the number of indexed words.
func (x *Index) Len() int { return len(x.all) }

// Stats returns word and character counts plus whether the embedded list is in use.
func (x *Index) Stats() (words int, chars int, fallback bool) {
	return len(x.all), len(x.chars), x.fallback
}
