package application

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/fashionous/pkg/domain/questionnaire"
)

// ProgressItem is one entry of the step indicator, e.g. "1. Fabric".
type ProgressItem struct {
	Label  string
	Active bool
}

// Card is a selectable option.
type Card struct {
	Value    string
	Label    string
	Selected bool
}

// Controls holds which buttons are shown.
type Controls struct {
	Start      bool
	StartLabel string
	Confirm    bool
	Skip       bool
	Back       bool
}

// QuestionnaireView is a read-only projection of the service state that a
// renderer can draw without touching the service.
type QuestionnaireView struct {
	SessionID      string
	Phase          string
	StepIndex      int
	StepCount      int
	Question       string
	Progress       []ProgressItem
	Cards          []Card
	Controls       Controls
	Transcript     []Message
	Loading        bool
	Results        []questionnaire.Suggestion
	NoResults      bool
	Listening      bool
	VoiceAvailable bool
}

// View projects the current state.
func (s *QuestionnaireService) View() QuestionnaireView {
	phase := s.flow.Current()
	steps := s.session.Steps()

	v := QuestionnaireView{
		SessionID:      s.sessionID,
		Phase:          phase,
		StepIndex:      s.session.Current(),
		StepCount:      len(steps),
		Transcript:     s.transcript.Messages(),
		Loading:        s.flow.Busy(),
		Listening:      s.voice.Listening(),
		VoiceAvailable: s.voice.Available(),
	}

	if phase != questionnaire.PhaseIdle && phase != questionnaire.PhaseLoading {
		active := s.session.Current()
		if active >= len(steps) {
			active = len(steps) - 1
		}
		v.Progress = progressItems(steps, active)
	}

	if step, ok := s.session.CurrentStep(); ok && phase == questionnaire.PhaseAsking {
		pending, hasPending := s.session.Pending()
		v.Question = step.Label
		v.Cards = make([]Card, len(step.Options))
		for i, opt := range step.Options {
			v.Cards[i] = Card{
				Value:    opt,
				Label:    questionnaire.Humanize(opt),
				Selected: hasPending && pending == opt,
			}
		}
		v.Controls.Confirm = hasPending
		v.Controls.Skip = true
		v.Controls.Back = s.session.Current() > 0
	}

	if s.flow.CanStart() {
		v.Controls.Start = true
		v.Controls.StartLabel = "Start"
		if phase == questionnaire.PhaseDone || phase == questionnaire.PhaseFailed {
			v.Controls.StartLabel = "Restart"
		}
	}

	if phase == questionnaire.PhaseDone {
		v.Results = s.results
		v.NoResults = len(s.results) == 0
	}
	return v
}

func progressItems(steps []questionnaire.Step, active int) []ProgressItem {
	items := make([]ProgressItem, len(steps))
	for i, st := range steps {
		items[i] = ProgressItem{
			Label:  fmt.Sprintf("%d. %s", i+1, capitalize(st.Key)),
			Active: i == active,
		}
	}
	return items
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// PriceLabel renders the price the way suggestion cards show it.
func PriceLabel(s questionnaire.Suggestion) string {
	if s.PriceINR == nil || *s.PriceINR == 0 {
		return "₹N/A"
	}
	return fmt.Sprintf("₹%s", formatAmount(*s.PriceINR))
}

func formatAmount(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}

// OrNA substitutes "N/A" for empty card fields.
func OrNA(v string) string {
	if v == "" {
		return "N/A"
	}
	return v
}
