// Package tagalog converts English navigation instructions into spoken
// Tagalog and prepares the result for a TTS engine: rule-based phrase
// rewriting, syllable hints for words engines mangle, and a delivery
// style wrapper.
package tagalog

import (
	"fmt"
	"regexp"
	"strings"
)

// navRule rewrites one English navigation phrase to its Tagalog
// equivalent. Patterns are matched case-insensitively.
type navRule struct {
	pattern *regexp.Regexp
	repl    string
}

func rule(pattern, repl string) navRule {
	return navRule{pattern: regexp.MustCompile("(?i)" + pattern), repl: repl}
}

// navRules covers the phrases the Directions API actually emits for
// walking steps. Longer phrases come before their substrings so that
// "Take the exit" is not half-eaten by the "Exit" rule.
var navRules = []navRule{
	rule(`\bHead north\b`, "Dumiretso pahilaga"),
	rule(`\bHead south\b`, "Dumiretso patimog"),
	rule(`\bHead east\b`, "Dumiretso pasilangan"),
	rule(`\bHead west\b`, "Dumiretso pakanluran"),

	rule(`\bContinue\b`, "Magpatuloy"),
	rule(`\bKeep left\b`, "Manatili sa kaliwa"),
	rule(`\bKeep right\b`, "Manatili sa kanan"),

	rule(`\bTurn left\b`, "Kumaliwa"),
	rule(`\bTurn right\b`, "Kumanan"),
	rule(`\bSlight left\b`, "Bahagyang kumaliwa"),
	rule(`\bSlight right\b`, "Bahagyang kumanan"),

	rule(`\bMake a U-turn\b`, "Mag-U-turn"),

	rule(`\bTake the exit\b`, "Dumaan sa labasan"),
	rule(`\bExit\b`, "Lumabas"),
	rule(`\bMerge\b`, "Sumanib sa daan"),

	rule(`\bDestination will be on the left\b`, "Ang pupuntahan ay nasa kaliwa"),
	rule(`\bDestination will be on the right\b`, "Ang pupuntahan ay nasa kanan"),
	rule(`\bYou have arrived\b`, "Nakarating na tayo"),
	rule(`\bArrive\b`, "Dumating"),
}

// Leading-imperative rules only fire at the start of the instruction.
var (
	leadingWalk = regexp.MustCompile(`(?i)^Walk\b`)
	leadingGo   = regexp.MustCompile(`(?i)^Go\b`)

	stripTags  = regexp.MustCompile(`<[^>]+>`)
	whitespace = regexp.MustCompile(`\s+`)
)

var quoteNormalizer = strings.NewReplacer("’", "'", "“", `"`, "”", `"`)

func clean(s string) string {
	return strings.TrimSpace(whitespace.ReplaceAllString(s, " "))
}

// Rewrite converts an English navigation instruction to Tagalog. The
// rewrite is rule-based and best-effort: street names and anything the
// table does not cover pass through untouched. The result always ends
// with sentence punctuation so TTS engines pause naturally.
func Rewrite(text string) string {
	t := clean(text)
	t = stripTags.ReplaceAllString(t, "")
	t = quoteNormalizer.Replace(t)

	for _, r := range navRules {
		t = r.pattern.ReplaceAllString(t, r.repl)
	}
	t = leadingWalk.ReplaceAllString(t, "Maglakad")
	t = leadingGo.ReplaceAllString(t, "Pumunta")

	t = clean(t)
	if t != "" && !strings.HasSuffix(t, ".") && !strings.HasSuffix(t, "?") && !strings.HasSuffix(t, "!") {
		t += "."
	}
	return t
}

// DistancePhrase renders the spoken lead-in for an upcoming maneuver.
// Below 15 meters the maneuver is effectively here.
func DistancePhrase(meters int) string {
	if meters < 15 {
		return "Malapit na."
	}
	return fmt.Sprintf("Pagkalipas ng %d metro,", meters)
}
