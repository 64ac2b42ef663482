// Package questionnaire models the blouse-finder question flow: the fixed
// steps, the answers collected so far and the criteria sent to the catalog.
package questionnaire

// Step keys, in the order the questions are asked.
const (
	KeyFabric   = "fabric"
	KeyOccasion = "occasion"
	KeyNeckline = "neckline"
	KeySleeve   = "sleeve"
)

// Step is one question in the questionnaire.
type Step struct {
	Key     string   `json:"key"`
	Label   string   `json:"label"`
	Options []string `json:"options"`
}

// Options maps a step key to the option tokens offered for it.
type Options map[string][]string

// DefaultSteps returns the four questions with empty option lists.
func DefaultSteps() []Step {
	return []Step{
		{Key: KeyFabric, Label: "What fabric do you prefer?"},
		{Key: KeyOccasion, Label: "Is this for a specific occasion?"},
		{Key: KeyNeckline, Label: "Any preferred neckline style?"},
		{Key: KeySleeve, Label: "What sleeve style do you like?"},
	}
}

// WithOptions returns a copy of steps with each step's options taken from
// opts. Steps without an entry get an empty list.
func WithOptions(steps []Step, opts Options) []Step {
	out := make([]Step, len(steps))
	for i, s := range steps {
		list := opts[s.Key]
		s.Options = make([]string, len(list))
		copy(s.Options, list)
		out[i] = s
	}
	return out
}

// HasOption reports whether option is offered by the step.
func (s Step) HasOption(option string) bool {
	for _, o := range s.Options {
		if o == option {
			return true
		}
	}
	return false
}
