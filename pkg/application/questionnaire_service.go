package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/felixgeelhaar/fashionous/pkg/catalog"
	"github.com/felixgeelhaar/fashionous/pkg/domain/questionnaire"
	"github.com/felixgeelhaar/fashionous/pkg/domain/voice"
	"github.com/google/uuid"
)

// Transcript texts shown by the questionnaire.
const (
	GreetingText     = "👋 Hi! Let's find your perfect blouse. Please answer a few quick questions."
	SummaryHeading   = "Here's a summary of your answers:"
	SearchingText    = "Searching for your perfect blouse..."
	MatchesHeading   = "Here are your best matches:"
	PopularText      = "Here are some popular blouses you might like:"
	NoProductsText   = "Sorry, no products found in our database."
	CatalogErrorText = "Could not reach the catalog. Press Restart to try again."
)

// Effects tells the caller which asynchronous work a transition requested.
type Effects struct {
	// Listen asks for one voice capture for the current step.
	Listen bool
	// Search asks for the product search with Criteria().
	Search bool
}

// QuestionnaireService drives one questionnaire at a time: it owns the
// session, the flow phase, the transcript and the search results.
//
// It is not safe for concurrent use. Network calls and voice captures are
// run by the caller, which feeds their outcome back through ApplyOptions,
// ApplyResults and HandleUtterance on the same goroutine.
type QuestionnaireService struct {
	catalog    catalog.Client
	voice      *voice.Adapter
	flow       *questionnaire.FlowMachine
	backPolicy questionnaire.BackPolicy
	logger     *slog.Logger

	sessionID  string
	session    questionnaire.Session
	transcript Transcript
	results    []questionnaire.Suggestion
}

func NewQuestionnaireService(client catalog.Client, adapter *voice.Adapter, policy questionnaire.BackPolicy, logger *slog.Logger) (*QuestionnaireService, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if adapter == nil {
		adapter = voice.NewAdapter(nil, "", logger)
	}
	if policy == "" {
		policy = questionnaire.RetainOnBack
	}
	flow, err := questionnaire.NewFlowMachine()
	if err != nil {
		return nil, err
	}
	return &QuestionnaireService{
		catalog:    client,
		voice:      adapter,
		flow:       flow,
		backPolicy: policy,
		logger:     logger,
		session:    questionnaire.NewSession(questionnaire.DefaultSteps()),
	}, nil
}

// Voice exposes the voice adapter so the caller can run captures.
func (s *QuestionnaireService) Voice() *voice.Adapter { return s.voice }

// Phase returns the current flow phase.
func (s *QuestionnaireService) Phase() string { return s.flow.Current() }

// Session returns the current session value.
func (s *QuestionnaireService) Session() questionnaire.Session { return s.session }

// Criteria returns the criteria to post to the matching endpoint.
func (s *QuestionnaireService) Criteria() questionnaire.Criteria { return s.session.Criteria() }

// Begin clears the previous run and enters the loading phase. It fails with
// an error matching questionnaire.ErrBusy while a run is in progress.
func (s *QuestionnaireService) Begin() error {
	if err := s.flow.Transition(questionnaire.EventStart); err != nil {
		return err
	}
	s.sessionID = uuid.New().String()
	s.session = questionnaire.NewSession(questionnaire.DefaultSteps())
	s.results = nil
	s.transcript.Reset()
	s.transcript.Append(Message{Sender: SenderBot, Kind: KindGreeting, Text: GreetingText})

	s.logger.Info("questionnaire started", "session_id", s.sessionID)
	return nil
}

// ApplyOptions assigns the fetched options and shows the first question.
// A fetch error moves the run to the failed phase.
func (s *QuestionnaireService) ApplyOptions(opts questionnaire.Options, err error) Effects {
	if s.flow.Current() != questionnaire.PhaseLoading {
		return Effects{}
	}
	if err != nil {
		s.fail("fetch options", err)
		return Effects{}
	}
	s.session = questionnaire.NewSession(questionnaire.WithOptions(questionnaire.DefaultSteps(), opts))
	if err := s.flow.Transition(questionnaire.EventLoaded); err != nil {
		s.logger.Error("flow transition failed", "session_id", s.sessionID, "error", err)
		return Effects{}
	}
	s.logger.Debug("options loaded", "session_id", s.sessionID, "steps", len(s.session.Steps()))
	return s.renderStep()
}

// Start runs Begin, fetches the options and applies them.
func (s *QuestionnaireService) Start(ctx context.Context) (Effects, error) {
	if err := s.Begin(); err != nil {
		return Effects{}, err
	}
	opts, err := s.catalog.FetchOptions(ctx)
	eff := s.ApplyOptions(opts, err)
	if err != nil {
		return eff, fmt.Errorf("fetch options: %w", err)
	}
	return eff, nil
}

// Select marks option as the pending choice for the current step.
func (s *QuestionnaireService) Select(option string) error {
	if s.flow.Current() != questionnaire.PhaseAsking {
		return questionnaire.ErrNotAsking
	}
	next, err := s.session.Select(option)
	if err != nil {
		return err
	}
	s.session = next
	return nil
}

// Confirm commits the pending choice. Without one it does nothing.
func (s *QuestionnaireService) Confirm() Effects {
	if s.flow.Current() != questionnaire.PhaseAsking {
		return Effects{}
	}
	pending, _ := s.session.Pending()
	next, ok := s.session.Confirm()
	if !ok {
		return Effects{}
	}
	s.session = next
	s.transcript.Append(Message{Sender: SenderUser, Kind: KindAnswer, Text: questionnaire.Humanize(pending)})
	return s.advance()
}

// Skip advances without answering the current step.
func (s *QuestionnaireService) Skip() Effects {
	if s.flow.Current() != questionnaire.PhaseAsking {
		return Effects{}
	}
	next, ok := s.session.Skip()
	if !ok {
		return Effects{}
	}
	s.session = next
	s.transcript.Append(Message{Sender: SenderUser, Kind: KindSkipped, Text: questionnaire.SkippedValue})
	return s.advance()
}

// Back re-asks the previous step. At the first step it does nothing.
func (s *QuestionnaireService) Back() Effects {
	if s.flow.Current() != questionnaire.PhaseAsking {
		return Effects{}
	}
	next, ok := s.session.Back(s.backPolicy)
	if !ok {
		return Effects{}
	}
	s.session = next
	return s.renderStep()
}

// Listen re-arms voice capture for the current step.
func (s *QuestionnaireService) Listen() Effects {
	if s.flow.Current() != questionnaire.PhaseAsking {
		return Effects{}
	}
	return Effects{Listen: s.voice.Begin()}
}

// HandleUtterance ends the running capture and applies a recognized
// utterance: a matching option is selected and confirmed, anything else
// leaves the step unchanged and re-arms capture.
func (s *QuestionnaireService) HandleUtterance(transcript string) Effects {
	s.voice.End()
	return s.applyUtterance(transcript)
}

// AnswerText applies typed text the way an utterance is applied. It does
// not touch the listening flag, so a capture already running stays the
// only one.
func (s *QuestionnaireService) AnswerText(text string) Effects {
	return s.applyUtterance(text)
}

func (s *QuestionnaireService) applyUtterance(transcript string) Effects {
	step, ok := s.session.CurrentStep()
	if s.flow.Current() != questionnaire.PhaseAsking || !ok {
		return Effects{}
	}

	match, ok := voice.Match(transcript, step.Options)
	if !ok {
		s.logger.Debug("voice input unmatched", "session_id", s.sessionID, "step", step.Key, "transcript", transcript)
		s.transcript.Append(Message{Sender: SenderBot, Kind: KindError, Text: voice.NoMatchMessage})
		return Effects{Listen: s.voice.Begin()}
	}

	s.logger.Debug("voice input matched",
		"session_id", s.sessionID,
		"step", step.Key,
		"option", match.Option,
		"rule", match.Rule.String())
	next, err := s.session.Select(match.Option)
	if err != nil {
		return Effects{}
	}
	s.session = next
	return s.Confirm()
}

// VoiceEnded records that a capture finished without an utterance.
func (s *QuestionnaireService) VoiceEnded(err error) {
	s.voice.End()
	if err != nil {
		s.logger.Debug("voice capture ended", "session_id", s.sessionID, "error", err)
	}
}

// ApplyResults shows the search outcome and re-enables Restart.
func (s *QuestionnaireService) ApplyResults(results []questionnaire.Suggestion, err error) {
	if s.flow.Current() != questionnaire.PhaseSearching {
		return
	}
	if err != nil {
		s.fail("match products", err)
		return
	}
	if err := s.flow.Transition(questionnaire.EventFound); err != nil {
		s.logger.Error("flow transition failed", "session_id", s.sessionID, "error", err)
		return
	}
	s.results = results
	if len(results) == 0 {
		s.transcript.Append(Message{Sender: SenderBot, Kind: KindStatus, Text: PopularText})
		s.transcript.Append(Message{Sender: SenderBot, Kind: KindStatus, Text: MatchesHeading})
		s.transcript.Append(Message{Sender: SenderBot, Kind: KindStatus, Text: NoProductsText})
	} else {
		s.transcript.Append(Message{Sender: SenderBot, Kind: KindStatus, Text: MatchesHeading})
	}
	s.logger.Info("questionnaire finished", "session_id", s.sessionID, "results", len(results))
}

// Search posts the criteria and applies the results.
func (s *QuestionnaireService) Search(ctx context.Context) error {
	results, err := s.catalog.MatchProducts(ctx, s.Criteria())
	s.ApplyResults(results, err)
	if err != nil {
		return fmt.Errorf("match products: %w", err)
	}
	return nil
}

func (s *QuestionnaireService) renderStep() Effects {
	step, ok := s.session.CurrentStep()
	if !ok {
		return Effects{}
	}
	s.transcript.Append(Message{Sender: SenderBot, Kind: KindQuestion, Text: step.Label})
	return Effects{Listen: s.voice.Begin()}
}

func (s *QuestionnaireService) advance() Effects {
	if !s.session.Complete() {
		return s.renderStep()
	}
	if err := s.flow.Transition(questionnaire.EventComplete); err != nil {
		s.logger.Error("flow transition failed", "session_id", s.sessionID, "error", err)
		return Effects{}
	}

	answers := s.session.Answers()
	lines := make([]string, len(answers))
	for i, a := range answers {
		lines[i] = a.Label + ": " + a.DisplayValue()
	}
	s.transcript.Append(Message{Sender: SenderBot, Kind: KindSummary, Text: SummaryHeading, Lines: lines})
	s.transcript.Append(Message{Sender: SenderBot, Kind: KindStatus, Text: SearchingText})

	s.logger.Debug("criteria complete", "session_id", s.sessionID, "criteria", s.session.Criteria())
	return Effects{Search: true}
}

func (s *QuestionnaireService) fail(op string, err error) {
	if terr := s.flow.Transition(questionnaire.EventFail); terr != nil {
		s.logger.Error("flow transition failed", "session_id", s.sessionID, "error", terr)
	}
	s.voice.End()
	s.logger.Error("catalog call failed", "session_id", s.sessionID, "op", op, "error", err)
	s.transcript.Append(Message{Sender: SenderBot, Kind: KindError, Text: CatalogErrorText})
}
