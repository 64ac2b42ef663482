package questionnaire

import (
	"strings"
	"unicode"
)

// Humanize turns a snake_case option token into a display label:
// "v_neck" becomes "V Neck". Only the first letter of each word is touched,
// so humanizing an already humanized label returns it unchanged.
func Humanize(token string) string {
	spaced := strings.ReplaceAll(token, "_", " ")

	var b strings.Builder
	b.Grow(len(spaced))
	prevWord := false
	for _, r := range spaced {
		word := isWordRune(r)
		if word && !prevWord {
			r = unicode.ToUpper(r)
		}
		b.WriteRune(r)
		prevWord = word
	}
	return b.String()
}

// SpaceUnderscores is the lighter form used for voice matching.
func SpaceUnderscores(token string) string {
	return strings.ReplaceAll(token, "_", " ")
}

// isWordRune treats every Unicode letter and digit as part of a word, so
// "naïve" becomes "Naïve" rather than splitting at the non-ASCII letter.
func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
