package speech

import "github.com/zeusluffy10/tara-ai/internal/tagalog"

// PrepareText runs the full pre-synthesis pipeline: Tagalog rewrite and
// pronunciation hints when the language selects Filipino, then style
// shaping. Both the synchronous endpoint and the async job worker feed
// their text through here so spoken output is identical either way.
func PrepareText(text, lang, style string) string {
	t := text
	if IsFilipino(lang) {
		t = tagalog.Rewrite(t)
		t = tagalog.Pronounce(t)
	}
	return ApplyStyle(t, style)
}
