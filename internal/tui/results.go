package tui

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/typist/internal/model"
	"github.com/verte-zerg/typist/internal/stats"
)

const (
	tabOverview = iota
	tabMissed
)

const (
	chartHeight     = 8
	missedCharLimit = 20
	sparkWindow     = 3
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	cardStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
)

// results shows a completed attempt: headline cards, the per-word curve and
// a table of missed characters.
type results struct {
	summary model.Summary
	missed  []model.CharAggregate

	tabs      []string
	activeTab int
	overview  viewport.Model
	charTable table.Model

	width  int
	height int
}

func newResults(summary model.Summary, events []model.Keystroke, width, height int) *results {
	r := &results{
		summary:  summary,
		missed:   stats.MissedChars(stats.CharAggregates(events), missedCharLimit),
		tabs:     []string{"Overview", "Missed Chars"},
		overview: viewport.New(0, 0),
	}
	r.charTable = buildMissedTable(r.missed)
	r.resize(width, height)
	return r
}

func (r *results) resize(width, height int) {
	r.width = width
	r.height = height
	bodyHeight := r.bodyHeight()
	r.overview.Width = width
	r.overview.Height = bodyHeight
	r.charTable.SetWidth(width)
	r.charTable.SetHeight(maxInt(1, bodyHeight-1))
	r.overview.SetContent(renderOverview(r.summary, maxInt(width, 40)))
}

func (r *results) bodyHeight() int {
	tabsHeight := lipgloss.Height(activeNavStyle.Render("X"))
	return maxInt(1, r.height-tabsHeight)
}

func (r *results) update(msg tea.KeyMsg, keys keyMap) tea.Cmd {
	switch {
	case key.Matches(msg, keys.PrevTab):
		r.moveTab(-1)
		return nil
	case key.Matches(msg, keys.NextTab):
		r.moveTab(1)
		return nil
	}
	var cmd tea.Cmd
	if r.activeTab == tabMissed {
		r.charTable, cmd = r.charTable.Update(msg)
		return cmd
	}
	r.overview, cmd = r.overview.Update(msg)
	return cmd
}

func (r *results) moveTab(delta int) {
	count := len(r.tabs)
	next := (r.activeTab + delta + count) % count
	r.activeTab = next
	if r.activeTab == tabMissed {
		r.charTable.Focus()
	} else {
		r.charTable.Blur()
	}
}

func (r *results) view() string {
	parts := make([]string, 0, len(r.tabs))
	for i, tab := range r.tabs {
		if i == r.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	header := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	var body string
	if r.activeTab == tabMissed {
		if len(r.missed) == 0 {
			body = "No missed characters."
		} else {
			body = r.charTable.View()
		}
	} else {
		body = r.overview.View()
	}
	return header + "\n" + fitLines(body, r.width, r.bodyHeight())
}

func renderOverview(s model.Summary, width int) string {
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		metricCard("WPM", fmt.Sprintf("%d", s.WPM)),
		metricCard("Accuracy", fmt.Sprintf("%.2f%%", s.Accuracy)),
		metricCard("Time", fmt.Sprintf("%.1fs", s.Duration().Seconds())),
	)

	var buf bytes.Buffer
	if err := stats.RenderSummary(&buf, s); err != nil {
		return fmt.Sprintf("Failed to render summary: %v", err)
	}
	if s.Source != "" {
		buf.WriteString(fmt.Sprintf("Source     %s\n", s.Source))
	}
	if s.FirstDelay > 0 {
		buf.WriteString(fmt.Sprintf("Reaction   %.2fs before the first keystroke\n", s.FirstDelay.Seconds()))
	}
	buf.WriteString("\n")
	series := stats.WordSeries{WPM: s.WordWPM, ErrorWords: s.ErrorWords}
	if err := stats.RenderWordCurve(&buf, series, stats.ChartWidthFor(width, 4), chartHeight, false); err != nil {
		return fmt.Sprintf("Failed to render curve: %v", err)
	}
	if len(s.WordWPM) > 1 {
		trend := stats.Sparkline(stats.MovingAverage(s.WordWPM, sparkWindow))
		buf.WriteString(fmt.Sprintf("\nTrend      %s\n", truncateLine(trend, maxInt(1, width-11))))
	}
	return strings.TrimRight(cards+"\n\n"+buf.String(), "\n")
}

func metricCard(label, value string) string {
	return cardStyle.Render(cardTitleStyle.Render(label) + "\n" + cardValueStyle.Render(value))
}

func buildMissedTable(aggs []model.CharAggregate) table.Model {
	columns := []table.Column{
		{Title: "Char", Width: 7},
		{Title: "Missed", Width: 7},
		{Title: "Accuracy", Width: 9},
		{Title: "Avg Latency (ms)", Width: 17},
	}
	rows := make([]table.Row, 0, len(aggs))
	for _, agg := range aggs {
		total := agg.Correct + agg.Incorrect
		acc := 0.0
		if total > 0 {
			acc = float64(agg.Correct) / float64(total) * 100
		}
		lat := 0.0
		if agg.LatencyCount > 0 {
			lat = float64(agg.LatencySumMs) / float64(agg.LatencyCount)
		}
		rows = append(rows, table.Row{
			agg.Char,
			fmt.Sprintf("%d", agg.Incorrect),
			fmt.Sprintf("%.2f%%", acc),
			fmt.Sprintf("%.1f", lat),
		})
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
	)
	t.SetStyles(charTableStyles())
	return t
}

func charTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}
