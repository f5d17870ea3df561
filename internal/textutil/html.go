// Package textutil turns provider-supplied instruction markup into clean
// speakable text.
package textutil

import (
	"html"
	"regexp"
	"strings"
)

var (
	// brTagPattern matches <br>, <br/> and <br /> in any case. Line-break
	// tags become a single space so adjacent words stay separated.
	brTagPattern = regexp.MustCompile(`(?i)<br\s*/?>`)

	tagPattern        = regexp.MustCompile(`<[^>]+>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// CleanInstruction strips HTML markup from a navigation instruction and
// returns plain text suitable for text-to-speech.
//
// Processing order: replace <br> variants with a space, remove remaining
// tags, unescape HTML entities, collapse runs of whitespace, trim.
// Unescaping can surface new markup (&lt;b&gt; decodes to <b>), so the
// unescape/strip pair repeats until the text stops changing. The function
// is idempotent on its own output and never fails; empty input yields an
// empty string.
func CleanInstruction(s string) string {
	if s == "" {
		return ""
	}
	t := brTagPattern.ReplaceAllString(s, " ")
	t = tagPattern.ReplaceAllString(t, "")
	for {
		u := html.UnescapeString(t)
		u = brTagPattern.ReplaceAllString(u, " ")
		u = tagPattern.ReplaceAllString(u, "")
		if u == t {
			break
		}
		t = u
	}
	t = whitespacePattern.ReplaceAllString(t, " ")
	return strings.TrimSpace(t)
}
