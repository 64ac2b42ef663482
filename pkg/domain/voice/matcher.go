package voice

import (
	"strings"

	"github.com/felixgeelhaar/fashionous/pkg/domain/questionnaire"
)

// NoMatchMessage is shown when an utterance matches none of the options.
const NoMatchMessage = "Could not match voice input to an option. Please try again or tap an option."

// Rule identifies which equivalence accepted a transcript.
type Rule int

const (
	RuleExact Rule = iota + 1
	RuleSpaced
	RuleOptionContains
	RuleTranscriptContains
)

func (r Rule) String() string {
	switch r {
	case RuleExact:
		return "exact"
	case RuleSpaced:
		return "spaced"
	case RuleOptionContains:
		return "option-contains"
	case RuleTranscriptContains:
		return "transcript-contains"
	default:
		return "none"
	}
}

// MatchResult is the option a transcript resolved to.
type MatchResult struct {
	Option string
	Rule   Rule
}

// Normalize lower-cases and trims a raw transcript.
func Normalize(transcript string) string {
	return strings.ToLower(strings.TrimSpace(transcript))
}

// Match resolves transcript against options. Options are tried in list
// order and the first one satisfying any rule wins; within an option the
// rules are checked exact, spaced, option-contains, transcript-contains.
// A blank transcript never matches, and neither does a blank option, since
// the empty string is contained in every other string.
func Match(transcript string, options []string) (MatchResult, bool) {
	t := Normalize(transcript)
	if t == "" {
		return MatchResult{}, false
	}
	for _, opt := range options {
		if rule := matchOption(t, opt); rule != 0 {
			return MatchResult{Option: opt, Rule: rule}, true
		}
	}
	return MatchResult{}, false
}

func matchOption(t, opt string) Rule {
	raw := strings.ToLower(opt)
	spaced := questionnaire.SpaceUnderscores(raw)
	switch {
	case t == raw:
		return RuleExact
	case t == spaced:
		return RuleSpaced
	case spaced != "" && strings.Contains(spaced, t):
		return RuleOptionContains
	case spaced != "" && strings.Contains(t, spaced):
		return RuleTranscriptContains
	}
	return 0
}
