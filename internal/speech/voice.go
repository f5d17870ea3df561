package speech

import "strings"

// Delivery styles. The synthesis API has no real style parameter, so
// style is expressed through wording and punctuation before synthesis.
const (
	StyleCalm    = "calm"
	StyleWarning = "warning"
)

// Voice defaults. The assistant speaks with a female voice unless the
// caller asks otherwise.
const (
	voiceFemale = "nova"
	voiceMale   = "alloy"
)

// NormalizeVoice resolves the convenience aliases "female" and "male"
// to concrete synthesis voices. An empty voice defaults to female.
// Anything else is passed through and assumed to be a valid voice id.
func NormalizeVoice(voice string) string {
	if voice == "" {
		return voiceFemale
	}
	switch strings.ToLower(strings.TrimSpace(voice)) {
	case "female", "girl", "woman":
		return voiceFemale
	case "male", "man", "boy":
		return voiceMale
	}
	return voice
}

// ApplyStyle shapes the text for the requested delivery style. A
// warning gets a short urgent prefix; calm and unknown styles pass
// through unchanged.
func ApplyStyle(text, style string) string {
	t := strings.TrimSpace(text)
	if style == StyleWarning {
		return "Babala. " + t + "."
	}
	return t
}

// NormalizeLang folds the Filipino language variants to "fil" and the
// English ones to "en". Anything else passes through lowercased.
func NormalizeLang(lang string) string {
	l := strings.ToLower(strings.TrimSpace(lang))
	switch l {
	case "", "fil", "tl", "tagalog", "fil-ph", "tl-ph":
		return "fil"
	}
	if strings.HasPrefix(l, "en") {
		return "en"
	}
	return l
}

// IsFilipino reports whether the normalized language selects the
// Tagalog rewrite pipeline.
func IsFilipino(lang string) bool {
	return strings.HasPrefix(NormalizeLang(lang), "fil")
}
