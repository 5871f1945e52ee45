// Package assets bundles static data shipped inside the binary.
package assets

import (
	"bufio"
	_ "embed"
	"strings"
)

//go:embed two_char_words.txt
var twoCharWords string

// FallbackWords returns the built-in two-character word list.
// Blank lines and lines starting with '#' are skipped.
func FallbackWords() []string {
	var out []string
	sc := bufio.NewScanner(strings.NewReader(twoCharWords))
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, s)
	}
	return out
}
