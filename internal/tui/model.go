// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/timer"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/verte-zerg/typist/internal/corpus"
	"github.com/verte-zerg/typist/internal/model"
	"github.com/verte-zerg/typist/internal/typing"
)

const (
	tickInterval = 100 * time.Millisecond
	textLines    = 3
)

// Model implements the Bubble Tea typing UI.
type Model struct {
	session *typing.Session
	logger  *zap.Logger

	mode    model.Mode
	words   int
	lengths []corpus.QuoteLength
	punct   bool
	numbers bool

	keys  keyMap
	help  help.Model
	timer timer.Model

	results *results
	errMsg  string

	prompting bool
	langInput textinput.Model

	width  int
	height int
}

var (
	correctStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	correctedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#E0B060"))
	incorrectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	currentWordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	cursorStyle      = pendingStyle.Copy().Underline(true)
	footerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	modalStyle       = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#C89A3A")).
				Padding(1, 2)
)

// NewModel constructs a typing TUI model. The session's first attempt is
// generated immediately; a failure is shown instead of the text.
func NewModel(cfg model.Config, session *typing.Session, logger *zap.Logger) *Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	mode := cfg.Mode
	if mode == nil {
		mode = model.DefaultMode()
	}
	m := &Model{
		session: session,
		logger:  logger,
		mode:    mode,
		words:   cfg.Words,
		lengths: cfg.QuoteLengths,
		keys:    defaultKeyMap(),
		help:    help.New(),
	}
	if wm, ok := mode.(model.WordsMode); ok {
		m.punct = wm.Punctuation
		m.numbers = wm.Numbers
	}
	m.langInput = textinput.New()
	m.langInput.Prompt = "Language: "
	m.langInput.Placeholder = corpus.DefaultLanguage.String()
	m.langInput.Cursor.SetMode(cursor.CursorBlink)

	session.SetLanguage(cfg.Lang)
	session.SetMode(mode)
	session.SetDecoration(cfg.PunctPct, cfg.NumbersPct)
	m.restart()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.langInput.Width = modalInnerWidth(msg.Width) - lipgloss.Width(m.langInput.Prompt)
		if m.results != nil {
			m.results.resize(m.width, m.resultsHeight())
		}
		return m, nil
	case timer.TickMsg, timer.StartStopMsg, timer.TimeoutMsg:
		var cmd tea.Cmd
		m.timer, cmd = m.timer.Update(msg)
		if m.session.Expire() {
			m.showResults()
		}
		return m, cmd
	case tea.KeyMsg:
		if m.prompting {
			return m.updatePrompt(msg)
		}
		return m.updateKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.NewTest):
		return m, m.restart()
	case key.Matches(msg, m.keys.CycleMode):
		m.setMode(model.NextMode(m.mode, m.words, m.lengths))
		return m, m.restart()
	case key.Matches(msg, m.keys.TogglePunct):
		m.punct = !m.punct
		m.setMode(m.mode)
		return m, m.restart()
	case key.Matches(msg, m.keys.ToggleNumbers):
		m.numbers = !m.numbers
		m.setMode(m.mode)
		return m, m.restart()
	case key.Matches(msg, m.keys.Language):
		m.prompting = true
		m.langInput.SetValue(m.session.Language().String())
		m.langInput.CursorEnd()
		return m, m.langInput.Focus()
	}

	if m.results != nil {
		return m, m.results.update(msg, m.keys)
	}

	switch msg.Type {
	case tea.KeyBackspace, tea.KeyDelete:
		m.session.ApplyBackspace()
		return m, nil
	case tea.KeySpace:
		return m, m.handleRunes([]rune{' '})
	case tea.KeyRunes:
		return m, m.handleRunes(msg.Runes)
	default:
		return m, nil
	}
}

func (m *Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.prompting = false
		m.langInput.Blur()
		return m, nil
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEnter:
		m.prompting = false
		m.langInput.Blur()
		lang := corpus.Language(strings.TrimSpace(m.langInput.Value()))
		if lang == "" {
			return m, nil
		}
		prev := m.session.Language()
		m.session.SetLanguage(lang)
		cmd := m.restart()
		if m.errMsg != "" {
			m.session.SetLanguage(prev)
		}
		return m, cmd
	}
	var cmd tea.Cmd
	m.langInput, cmd = m.langInput.Update(msg)
	return m, cmd
}

// setMode applies the punctuation and number toggles to words mode and
// stages the result.
func (m *Model) setMode(mode model.Mode) {
	if wm, ok := mode.(model.WordsMode); ok {
		wm.Punctuation = m.punct
		wm.Numbers = m.numbers
		mode = wm
	}
	m.mode = mode
	m.session.SetMode(mode)
}

// restart starts a new attempt. On failure the current attempt, including a
// results screen, stays in place and the error is shown.
func (m *Model) restart() tea.Cmd {
	if err := m.session.NewTest(); err != nil {
		m.errMsg = err.Error()
		m.logger.Warn("failed to start new test", zap.Error(err))
		return nil
	}
	m.errMsg = ""
	m.results = nil
	if m.timer.Running() {
		return m.timer.Stop()
	}
	return nil
}

func (m *Model) handleRunes(runes []rune) tea.Cmd {
	before := m.session.State()
	for _, r := range runes {
		m.session.ApplyKeystroke(r)
	}
	switch m.session.State() {
	case typing.Completed:
		m.showResults()
		if m.timer.Running() {
			return m.timer.Stop()
		}
	case typing.InProgress:
		if before != typing.Ready {
			return nil
		}
		if left, ok := m.session.Remaining(); ok {
			m.timer = timer.NewWithInterval(left, tickInterval)
			return m.timer.Init()
		}
	}
	return nil
}

func (m *Model) showResults() {
	summary, ok := m.session.Summary()
	if !ok {
		return
	}
	m.results = newResults(summary, m.session.Events(), m.width, m.resultsHeight())
}

func (m *Model) resultsHeight() int {
	return maxInt(1, m.height-2)
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.prompting && m.width > 0 && m.height > 0 {
		return m.renderPrompt()
	}
	if m.results != nil && m.width > 0 && m.height > 0 {
		footer := m.renderFooter()
		if m.errMsg != "" {
			footer = errorStyle.Render(truncateLine(m.errMsg, m.width))
		}
		return m.results.view() + "\n" + footer + "\n" + m.renderHelp()
	}
	target := m.session.Target()
	if len(target) == 0 {
		if m.errMsg != "" {
			return errorStyle.Render(m.errMsg)
		}
		return ""
	}
	typed := m.session.Typed()
	cursorIndex := -1
	if len(typed) < len(target) {
		cursorIndex = len(typed)
	}
	wrong := map[int]struct{}{}
	for _, pos := range m.session.WrongPositions() {
		wrong[pos] = struct{}{}
	}
	styledRunes := buildStyledRunes(target, typed, wrong, cursorIndex)
	if m.width == 0 || m.height == 0 {
		return renderStyledRunes(styledRunes)
	}
	contentWidth := int(float64(m.width) * 0.70)
	if contentWidth < 1 {
		contentWidth = 1
	}
	lines := wrapLines(styledRunes, contentWidth)
	content := lipgloss.NewStyle().Width(contentWidth).Render(renderWindow(lines, cursorIndex, textLines))

	footer := []string{m.renderFooter(), m.renderHelp()}
	if m.errMsg != "" {
		footer = append(footer, errorStyle.Render(truncateLine(m.errMsg, m.width)))
	}
	if m.height < len(footer)+2 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	bodyHeight := m.height - len(footer)
	body := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, content)
	for i, line := range footer {
		footer[i] = lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, line)
	}
	return body + "\n" + strings.Join(footer, "\n")
}

func (m *Model) renderFooter() string {
	segments := []string{fmt.Sprintf("%s · %s", m.session.Mode(), m.session.Language())}
	if left, ok := m.session.Remaining(); ok {
		segments = append(segments, fmt.Sprintf("%ds left", int(left.Round(time.Second).Seconds())))
	} else if total := len(m.session.Target()); total > 0 {
		progress := int(float64(m.session.TypedLen()) / float64(total) * 100)
		segments = append(segments, fmt.Sprintf("Progress %d%%", progress))
	}
	if m.session.State() != typing.Ready && m.session.State() != typing.Idle {
		segments = append(segments, fmt.Sprintf("%d WPM · %.1f%%", m.session.WPM(), m.session.Accuracy()))
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}

func (m *Model) renderHelp() string {
	return m.help.View(m.keys)
}

func (m *Model) renderPrompt() string {
	body := []string{
		cardValueStyle.Render("Change Language"),
		m.langInput.View(),
		footerStyle.Render("Enter to apply / Esc to cancel"),
	}
	box := modalStyle.Width(modalWidth(m.width)).Render(strings.Join(body, "\n"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
