package tagalog

// syllableHints hyphenates Tagalog words that general-purpose TTS
// voices tend to slur. The list is deliberately short; grow it only
// when a specific word audibly misrenders.
var syllableHints = []navRule{
	rule(`\bkumanan\b`, "ku-ma-nan"),
	rule(`\bkumain\b`, "ku-ma-in"),
	rule(`\bkain\b`, "ka-in"),
	rule(`\bdumaan\b`, "du-ma-an"),
	rule(`\bumikot\b`, "u-mi-kot"),
	rule(`\bkaliwa\b`, "ka-li-wa"),
	rule(`\bkanan\b`, "ka-nan"),
	rule(`\bdiretso\b`, "di-ret-so"),
	rule(`\bmalapit\b`, "ma-la-pit"),
	rule(`\bmalayo\b`, "ma-la-yo"),
	rule(`\btawid\b`, "ta-wid"),
	rule(`\bhinto\b`, "hin-to"),

	rule(`\bpo\b`, "po"),
	rule(`\bopo\b`, "o-po"),
}

// Pronounce inserts syllable hints into Tagalog text so a TTS engine
// paces the tricky words correctly. Words outside the hint table pass
// through untouched.
func Pronounce(text string) string {
	t := clean(text)
	for _, h := range syllableHints {
		t = h.pattern.ReplaceAllString(t, h.repl)
	}
	return t
}
