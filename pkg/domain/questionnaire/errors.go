package questionnaire

import "errors"

// Domain errors for the questionnaire flow.
var (
	// ErrBusy indicates a run is already loading, asking or searching.
	ErrBusy = errors.New("questionnaire already in progress")

	// ErrNotAsking indicates an answer action arrived outside a question step.
	ErrNotAsking = errors.New("no question is being asked")

	// ErrUnknownOption indicates the option is not offered by the current step.
	ErrUnknownOption = errors.New("option not offered by current step")
)

// PhaseError provides details about a rejected phase transition.
type PhaseError struct {
	Phase string
	Event string
}

func (e *PhaseError) Error() string {
	return "cannot " + e.Event + " while questionnaire is " + e.Phase
}

// Is allows errors.Is to match ErrBusy for rejected starts.
func (e *PhaseError) Is(target error) bool {
	return target == ErrBusy && e.Event == EventStart
}
