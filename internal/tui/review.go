// Package tui implements the interactive review screen for estimate
// action items.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/voltfield/ohmwork/internal/cli"
	"github.com/voltfield/ohmwork/internal/estimate"
	"github.com/voltfield/ohmwork/internal/match"
	"github.com/voltfield/ohmwork/internal/model"
)

// candidateCount is how many match candidates the picker offers per line.
const candidateCount = 8

// ReviewModel walks the user through an estimate's flagged lines, offering
// the top match candidates for each and applying the chosen record.
type ReviewModel struct {
	engine      *estimate.Engine
	matcher     *match.Matcher
	est         *model.Estimate
	searchInput textinput.Model
	candidates  []model.MatchCandidate
	items       []int
	pos         int
	cursor      int
	resolved    int
	searching   bool
	done        bool
	err         error
}

// NewReviewModel creates a review model over the estimate's current
// action items.
func NewReviewModel(eng *estimate.Engine, matcher *match.Matcher, est *model.Estimate) ReviewModel {
	input := textinput.New()
	input.Placeholder = "Search the labor table..."
	input.CharLimit = 80

	totals := estimate.Totals(est.Lines)
	m := ReviewModel{
		engine:      eng,
		matcher:     matcher,
		est:         est,
		searchInput: input,
		items:       totals.ActionItems,
	}
	m.loadCandidates()
	return m
}

// loadCandidates ranks candidates for the current action item.
func (m *ReviewModel) loadCandidates() {
	m.cursor = 0
	m.candidates = nil
	if m.pos >= len(m.items) {
		return
	}
	line := &m.est.Lines[m.items[m.pos]]
	m.candidates = m.matcher.TopN(line.RawDescription, candidateCount)
}

// Init returns initial commands.
func (m ReviewModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input events.
func (m ReviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.searching {
		return m.updateSearch(keyMsg)
	}

	switch keyMsg.String() {
	case "q", "esc", "ctrl+c":
		m.done = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.candidates)-1 {
			m.cursor++
		}
	case "enter":
		m.assign()
		return m.advance()
	case "s", "n":
		return m.advance()
	case "/":
		m.searching = true
		m.searchInput.SetValue("")
		m.searchInput.Focus()
	}
	return m, nil
}

func (m ReviewModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.searchInput.Blur()
		return m, nil
	case "enter":
		query := strings.TrimSpace(m.searchInput.Value())
		m.searching = false
		m.searchInput.Blur()
		if query != "" {
			m.cursor = 0
			m.candidates = m.matcher.TopN(query, candidateCount)
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// assign applies the highlighted candidate to the current line.
func (m *ReviewModel) assign() {
	if m.cursor >= len(m.candidates) {
		return
	}
	index := m.items[m.pos]
	if err := m.engine.AssignRecord(m.est, index, m.candidates[m.cursor].Record); err != nil {
		m.err = err
		return
	}
	m.resolved++
}

func (m ReviewModel) advance() (tea.Model, tea.Cmd) {
	m.pos++
	if m.pos >= len(m.items) {
		m.done = true
		return m, tea.Quit
	}
	m.loadCandidates()
	return m, nil
}

// View renders the current action item and its candidates.
func (m ReviewModel) View() string {
	if m.done || m.pos >= len(m.items) {
		return cli.SuccessStyle.Render(fmt.Sprintf("Review complete: %d of %d lines resolved.\n", m.resolved, len(m.items)))
	}

	line := &m.est.Lines[m.items[m.pos]]

	var b strings.Builder
	b.WriteString(cli.TitleStyle.Render(fmt.Sprintf("Action item %d/%d", m.pos+1, len(m.items))))
	b.WriteString("\n")
	b.WriteString(cli.BoldStyle.Render(line.RawDescription))
	b.WriteString("\n")
	b.WriteString(cli.SubtleStyle.Render(fmt.Sprintf("qty %s  %s  %s",
		line.Quantity.String(), line.Condition, strings.Join(line.FlagReasons, "; "))))
	b.WriteString("\n\n")

	if m.searching {
		b.WriteString(m.searchInput.View())
		b.WriteString("\n")
		b.WriteString(cli.SubtleStyle.Render("enter: search  esc: cancel"))
		return cli.BoxStyle.Render(b.String())
	}

	for i, cand := range m.candidates {
		marker := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			marker = "> "
			style = cli.BoldStyle
		}
		b.WriteString(style.Render(fmt.Sprintf("%s%-60s %s",
			marker, truncate(cand.Record.Display(), 60), cli.FormatConfidence(cand.Score))))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(cli.SubtleStyle.Render("enter: accept  s: skip  /: search  q: quit"))
	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(cli.ErrorStyle.Render(m.err.Error()))
	}
	return cli.BoxStyle.Render(b.String())
}

// Resolved reports how many lines were resolved during the session.
func (m ReviewModel) Resolved() int {
	return m.resolved
}

// Run executes the review session and returns the number of resolved lines.
func Run(eng *estimate.Engine, matcher *match.Matcher, est *model.Estimate) (int, error) {
	program := tea.NewProgram(NewReviewModel(eng, matcher, est))
	final, err := program.Run()
	if err != nil {
		return 0, fmt.Errorf("review session failed: %w", err)
	}
	m, ok := final.(ReviewModel)
	if !ok {
		return 0, fmt.Errorf("unexpected model type %T", final)
	}
	return m.Resolved(), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
