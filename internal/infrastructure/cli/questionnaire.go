package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/felixgeelhaar/fashionous/pkg/application"
	"github.com/felixgeelhaar/fashionous/pkg/catalog"
	"github.com/felixgeelhaar/fashionous/pkg/domain/questionnaire"
	"github.com/felixgeelhaar/fashionous/pkg/domain/voice"
	"github.com/spf13/cobra"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Run the interactive blouse questionnaire",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}
		if os.Getenv("FASHIONOUS_SKIP_TUI_RUN") == "true" {
			return nil
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		m := newQuestionnaireModel(ctx, services.Questionnaire, services.Catalog)
		p := tea.NewProgram(m)
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("questionnaire run failed: %w", err)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			PaddingLeft(1).
			PaddingRight(1)

	focusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	blurredStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	botStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
	userStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	cardStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	selectedCardStyle = cardStyle.
				BorderForeground(lipgloss.Color("205")).
				Bold(true)

	resultStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1).
			MarginBottom(1)

	priceStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true)
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1)
)

type optionsMsg struct {
	options questionnaire.Options
	err     error
}

type resultsMsg struct {
	results []questionnaire.Suggestion
	err     error
}

type utteranceMsg struct {
	transcript string
}

type voiceEndedMsg struct {
	err error
}

type questionnaireModel struct {
	ctx     context.Context
	svc     *application.QuestionnaireService
	catalog catalog.Client
	spinner spinner.Model
	input   textinput.Model
	typing  bool
	cursor  int
	width   int
	err     error
}

func newQuestionnaireModel(ctx context.Context, svc *application.QuestionnaireService, client catalog.Client) questionnaireModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = focusedStyle

	in := textinput.New()
	in.Placeholder = "say an option, e.g. \"cotton\""
	in.CharLimit = 80
	in.Width = 40

	return questionnaireModel{
		ctx:     ctx,
		svc:     svc,
		catalog: client,
		spinner: s,
		input:   in,
		width:   80,
	}
}

func (m questionnaireModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m questionnaireModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.typing {
			return m.updateTyping(msg)
		}
		return m.updateKeys(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case optionsMsg:
		m.cursor = 0
		return m, m.run(m.svc.ApplyOptions(msg.options, msg.err))

	case resultsMsg:
		m.svc.ApplyResults(msg.results, msg.err)
		return m, nil

	case utteranceMsg:
		before := m.svc.Session().Current()
		cmd := m.run(m.svc.HandleUtterance(msg.transcript))
		if m.svc.Session().Current() != before {
			m.cursor = 0
		}
		return m, cmd

	case voiceEndedMsg:
		m.svc.VoiceEnded(msg.err)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m questionnaireModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	view := m.svc.View()
	m.err = nil

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "s":
		if view.Controls.Start {
			return m.start()
		}

	case "enter":
		if view.Controls.Confirm {
			m.cursor = 0
			return m, m.run(m.svc.Confirm())
		}
		if view.Controls.Start {
			return m.start()
		}

	case "left", "up", "h":
		if m.cursor > 0 {
			m.cursor--
		}

	case "right", "down", "l":
		if m.cursor < len(view.Cards)-1 {
			m.cursor++
		}

	case " ":
		if m.cursor < len(view.Cards) {
			if err := m.svc.Select(view.Cards[m.cursor].Value); err != nil {
				m.err = err
			}
		}

	case "k":
		if view.Controls.Skip {
			m.cursor = 0
			return m, m.run(m.svc.Skip())
		}

	case "b":
		if view.Controls.Back {
			m.cursor = 0
			return m, m.run(m.svc.Back())
		}

	case "r":
		return m, m.run(m.svc.Listen())

	case "v":
		if view.Phase == questionnaire.PhaseAsking {
			m.typing = true
			m.input.Reset()
			return m, m.input.Focus()
		}
	}
	return m, nil
}

// updateTyping handles the typed utterance box, which stands in for a
// microphone when no voice engine is configured.
func (m questionnaireModel) updateTyping(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.typing = false
		m.input.Blur()
		return m, nil
	case "enter":
		text := m.input.Value()
		m.typing = false
		m.input.Blur()
		before := m.svc.Session().Current()
		cmd := m.run(m.svc.AnswerText(text))
		if m.svc.Session().Current() != before {
			m.cursor = 0
		}
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m questionnaireModel) start() (tea.Model, tea.Cmd) {
	if err := m.svc.Begin(); err != nil {
		if !errors.Is(err, questionnaire.ErrBusy) {
			m.err = err
		}
		return m, nil
	}
	m.cursor = 0
	return m, fetchOptionsCmd(m.ctx, m.catalog)
}

// run turns requested side effects into commands.
func (m questionnaireModel) run(eff application.Effects) tea.Cmd {
	var cmds []tea.Cmd
	if eff.Listen {
		cmds = append(cmds, listenCmd(m.ctx, m.svc.Voice()))
	}
	if eff.Search {
		cmds = append(cmds, searchCmd(m.ctx, m.catalog, m.svc.Criteria()))
	}
	return tea.Batch(cmds...)
}

func fetchOptionsCmd(ctx context.Context, client catalog.Client) tea.Cmd {
	return func() tea.Msg {
		opts, err := client.FetchOptions(ctx)
		return optionsMsg{options: opts, err: err}
	}
}

func searchCmd(ctx context.Context, client catalog.Client, criteria questionnaire.Criteria) tea.Cmd {
	return func() tea.Msg {
		results, err := client.MatchProducts(ctx, criteria)
		return resultsMsg{results: results, err: err}
	}
}

func listenCmd(ctx context.Context, adapter *voice.Adapter) tea.Cmd {
	return func() tea.Msg {
		u, err := adapter.Listen(ctx)
		if err != nil {
			return voiceEndedMsg{err: err}
		}
		return utteranceMsg{transcript: u.Transcript}
	}
}

func (m questionnaireModel) View() string {
	view := m.svc.View()
	var b strings.Builder

	b.WriteString(headerStyle.Render("Fashionous · Blouse Finder"))
	if view.SessionID != "" {
		b.WriteString(blurredStyle.Render("  session " + shortID(view.SessionID)))
	}
	b.WriteString("\n\n")

	if len(view.Progress) > 0 {
		b.WriteString(renderProgress(view.Progress))
		b.WriteString("\n\n")
	}

	for _, msg := range view.Transcript {
		b.WriteString(renderMessage(msg))
		b.WriteString("\n")
	}

	if view.Loading {
		b.WriteString(m.spinner.View() + blurredStyle.Render(" typing..."))
		b.WriteString("\n")
	}

	if len(view.Cards) > 0 {
		b.WriteString("\n")
		b.WriteString(renderCards(view.Cards, m.cursor))
		b.WriteString("\n")
	}

	if len(view.Results) > 0 {
		b.WriteString("\n")
		for _, r := range view.Results {
			b.WriteString(renderSuggestion(r))
			b.WriteString("\n")
		}
	}

	if m.typing {
		b.WriteString("\n" + m.input.View() + "\n")
	}

	if view.Listening {
		b.WriteString(focusedStyle.Render("🎤 listening (" + m.svc.Voice().Locale() + ")"))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString(errorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render(helpLine(view, m.typing)))
	b.WriteString("\n")
	return b.String()
}

func renderProgress(items []application.ProgressItem) string {
	parts := make([]string, len(items))
	for i, it := range items {
		if it.Active {
			parts[i] = focusedStyle.Bold(true).Render(it.Label)
		} else {
			parts[i] = blurredStyle.Render(it.Label)
		}
	}
	return strings.Join(parts, "  ")
}

func renderMessage(msg application.Message) string {
	if msg.Sender == application.SenderUser {
		return userStyle.Render("You: " + msg.Text)
	}

	style := botStyle
	if msg.Kind == application.KindError {
		style = errorStyle
	}
	text := style.Render(msg.Text)
	for _, line := range msg.Lines {
		text += "\n  " + line
	}
	return text
}

func renderCards(cards []application.Card, cursor int) string {
	rendered := make([]string, len(cards))
	for i, c := range cards {
		label := c.Label
		if i == cursor {
			label = "> " + label
		}
		style := cardStyle
		if c.Selected {
			style = selectedCardStyle
		}
		rendered[i] = style.Render(label)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func renderSuggestion(s questionnaire.Suggestion) string {
	occasion := "N/A"
	if s.OccasionTags != nil {
		occasion = strings.Join(s.OccasionTags, ", ")
	}
	lines := []string{
		lipgloss.NewStyle().Bold(true).Render(s.Title),
		blurredStyle.Render("ID: " + s.DesignID),
		priceStyle.Render(application.PriceLabel(s)),
		"Fabric: " + application.OrNA(s.Fabric.String()),
		"Neckline: " + application.OrNA(s.Neckline) + " | Sleeve: " + application.OrNA(s.Sleeve),
		"Occasion: " + occasion,
	}
	if s.FrontImageURL != "" {
		lines = append(lines, blurredStyle.Render(s.FrontImageURL))
	}
	return resultStyle.Render(strings.Join(lines, "\n"))
}

func helpLine(view application.QuestionnaireView, typing bool) string {
	if typing {
		return "enter: submit • esc: cancel"
	}
	var keys []string
	if view.Controls.Start {
		keys = append(keys, "s: "+strings.ToLower(view.Controls.StartLabel))
	}
	if len(view.Cards) > 0 {
		keys = append(keys, "←/→: move", "space: select")
	}
	if view.Controls.Confirm {
		keys = append(keys, "enter: confirm")
	}
	if view.Controls.Skip {
		keys = append(keys, "k: skip")
	}
	if view.Controls.Back {
		keys = append(keys, "b: back")
	}
	if view.Phase == questionnaire.PhaseAsking {
		keys = append(keys, "v: type answer")
		if view.VoiceAvailable && !view.Listening {
			keys = append(keys, "r: listen")
		}
	}
	keys = append(keys, "q: quit")
	return strings.Join(keys, " • ")
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
