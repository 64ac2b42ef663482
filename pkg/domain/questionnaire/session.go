package questionnaire

import "fmt"

// BackPolicy decides what happens to a step's criteria entry when the user
// navigates back onto it.
type BackPolicy string

const (
	// RetainOnBack keeps the stale entry until Confirm or Skip overwrites it.
	RetainOnBack BackPolicy = "retain"
	// ClearOnBack removes the entry as soon as the step is re-entered.
	ClearOnBack BackPolicy = "clear"
)

// ParseBackPolicy maps a config value to a BackPolicy. Empty means retain.
func ParseBackPolicy(v string) (BackPolicy, error) {
	switch BackPolicy(v) {
	case "", RetainOnBack:
		return RetainOnBack, nil
	case ClearOnBack:
		return ClearOnBack, nil
	default:
		return "", fmt.Errorf("unknown back policy %q (want %q or %q)", v, RetainOnBack, ClearOnBack)
	}
}

// Session is the state of one questionnaire run. It is a value: every
// transition returns a new Session and leaves the receiver untouched.
//
// len(Answers()) == Current() holds between transitions.
type Session struct {
	steps      []Step
	current    int
	criteria   Criteria
	answers    []Answer
	pending    string
	hasPending bool
}

// NewSession starts a run at the first step.
func NewSession(steps []Step) Session {
	return Session{
		steps:    steps,
		criteria: Criteria{},
	}
}

// Steps returns the questions of this run. Callers must not modify it.
func (s Session) Steps() []Step { return s.steps }

// Current is the cursor: the index of the step being asked, or len(Steps())
// once every step is answered.
func (s Session) Current() int { return s.current }

// Complete reports whether every step has been answered or skipped.
func (s Session) Complete() bool { return s.current >= len(s.steps) }

// CurrentStep returns the step under the cursor.
func (s Session) CurrentStep() (Step, bool) {
	if s.Complete() {
		return Step{}, false
	}
	return s.steps[s.current], true
}

// Criteria returns a copy of the accumulated criteria.
func (s Session) Criteria() Criteria { return s.criteria.Clone() }

// Answers returns a copy of the answer log.
func (s Session) Answers() []Answer {
	out := make([]Answer, len(s.answers))
	copy(out, s.answers)
	return out
}

// Pending returns the tentatively chosen option, if any.
func (s Session) Pending() (string, bool) { return s.pending, s.hasPending }

// Select records option as the pending choice for the current step. The
// cursor does not move.
func (s Session) Select(option string) (Session, error) {
	step, ok := s.CurrentStep()
	if !ok {
		return s, ErrNotAsking
	}
	if !step.HasOption(option) {
		return s, fmt.Errorf("%w: %q for %s", ErrUnknownOption, option, step.Key)
	}
	s.pending = option
	s.hasPending = true
	return s, nil
}

// Confirm commits the pending choice and advances. Without a pending choice
// it returns the session unchanged and false.
func (s Session) Confirm() (Session, bool) {
	if !s.hasPending || s.Complete() {
		return s, false
	}
	return s.commit(s.pending, s.pending), true
}

// Skip advances without an answer, recording an empty criteria value and
// the "Skipped" log marker regardless of any pending choice.
func (s Session) Skip() (Session, bool) {
	if s.Complete() {
		return s, false
	}
	return s.commit("", SkippedValue), true
}

// Back steps the cursor back and drops the last log entry. At the first
// step it is a no-op and returns false.
func (s Session) Back(policy BackPolicy) (Session, bool) {
	if s.current == 0 {
		return s, false
	}
	s.current--
	s.answers = s.answers[:s.current:s.current]
	s.pending, s.hasPending = "", false
	if policy == ClearOnBack {
		s.criteria = s.criteria.Clone()
		delete(s.criteria, s.steps[s.current].Key)
	}
	return s, true
}

func (s Session) commit(criteriaValue, logValue string) Session {
	step := s.steps[s.current]

	criteria := s.criteria.Clone()
	criteria[step.Key] = criteriaValue
	s.criteria = criteria

	s.answers = append(s.answers[:len(s.answers):len(s.answers)], Answer{Label: step.Label, Value: logValue})
	s.current++
	s.pending, s.hasPending = "", false
	return s
}
