package questionnaire

import (
	"fmt"

	"github.com/felixgeelhaar/statekit"
)

// Phase constants for statekit integration.
const (
	PhaseIdle      = "idle"
	PhaseLoading   = "loading"
	PhaseAsking    = "asking"
	PhaseSearching = "searching"
	PhaseDone      = "done"
	PhaseFailed    = "failed"
)

// Flow events.
const (
	EventStart    = "start"
	EventLoaded   = "loaded"
	EventComplete = "complete"
	EventFound    = "found"
	EventFail     = "fail"
)

// FlowContext carries state data. The flow keeps none; answers live in Session.
type FlowContext struct{}

// FlowMachine tracks which phase of a run the questionnaire is in. Start is
// only accepted from idle, done or failed, so a second run cannot begin
// while options or results are still being fetched.
type FlowMachine struct {
	interpreter *statekit.Interpreter[FlowContext]
}

func NewFlowMachine() (*FlowMachine, error) {
	builder := statekit.NewMachine[FlowContext]("questionnaire-flow").
		WithInitial(statekit.StateID(PhaseIdle)).
		WithContext(FlowContext{})

	builder.State(PhaseIdle).
		On(EventStart).Target(PhaseLoading).
		Done()

	builder.State(PhaseLoading).
		On(EventLoaded).Target(PhaseAsking).
		On(EventFail).Target(PhaseFailed).
		Done()

	builder.State(PhaseAsking).
		On(EventComplete).Target(PhaseSearching).
		Done()

	builder.State(PhaseSearching).
		On(EventFound).Target(PhaseDone).
		On(EventFail).Target(PhaseFailed).
		Done()

	builder.State(PhaseDone).
		On(EventStart).Target(PhaseLoading).
		Done()

	builder.State(PhaseFailed).
		On(EventStart).Target(PhaseLoading).
		Done()

	machine, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build flow machine: %w", err)
	}

	interpreter := statekit.NewInterpreter(machine)
	interpreter.Start()

	return &FlowMachine{interpreter: interpreter}, nil
}

// Transition sends event and reports a *PhaseError if the phase did not change.
func (m *FlowMachine) Transition(event string) error {
	before := m.Current()
	m.interpreter.Send(statekit.Event{Type: statekit.EventType(event)})
	if m.Current() != before {
		return nil
	}
	return &PhaseError{Phase: before, Event: event}
}

func (m *FlowMachine) Current() string {
	return string(m.interpreter.State().Value)
}

// CanStart reports whether a new run may begin.
func (m *FlowMachine) CanStart() bool {
	switch m.Current() {
	case PhaseIdle, PhaseDone, PhaseFailed:
		return true
	}
	return false
}

// Busy reports whether a network call is outstanding.
func (m *FlowMachine) Busy() bool {
	p := m.Current()
	return p == PhaseLoading || p == PhaseSearching
}
