// Package tui implements the interactive terminal browser for assessment
// results. It presents the summary, per-layer chart, control list, and a
// rendered report over tabs backed by a scrolling viewport.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/layercheck/layercheck/internal/audit"
	"github.com/layercheck/layercheck/internal/compliance"
	"github.com/layercheck/layercheck/internal/report"
	"github.com/layercheck/layercheck/pkg/buildinfo"
)

// Tab identifies one of the browser views.
type Tab int

const (
	TabOverview Tab = iota
	TabLayers
	TabControls
	TabReport
)

var tabNames = []string{"Overview", "Layers", "Controls", "Report"}

// String returns the tab's display name.
func (t Tab) String() string {
	if int(t) < 0 || int(t) >= len(tabNames) {
		return ""
	}
	return tabNames[int(t)]
}

// Model is the Bubbletea model for the results browser.
type Model struct {
	summary     compliance.Summary
	assessments []compliance.Assessment
	external    *audit.Metrics
	tab         Tab
	missingOnly bool
	viewport    viewport.Model
	renderer    *glamour.TermRenderer
	width       int
	height      int
	ready       bool
}

// New creates a results browser over a completed assessment.
func New(summary compliance.Summary, assessments []compliance.Assessment, external *audit.Metrics) Model {
	return Model{
		summary:     summary,
		assessments: assessments,
		external:    external,
	}
}

// Init implements tea.Model. The browser works on data it already holds,
// so there is no startup command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		contentH := msg.Height - 6 // reserve for header/footer
		if contentH < 5 {
			contentH = 5
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width, contentH)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = contentH
		}
		m.renderer = newMarkdownRenderer(msg.Width)
		m.viewport.SetContent(m.renderContent())
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "tab", "right", "l":
			m = m.switchTab((m.tab + 1) % Tab(len(tabNames)))
			return m, nil
		case "shift+tab", "left", "h":
			m = m.switchTab((m.tab + Tab(len(tabNames)) - 1) % Tab(len(tabNames)))
			return m, nil
		case "1", "2", "3", "4":
			m = m.switchTab(Tab(int(msg.String()[0] - '1')))
			return m, nil
		case "m":
			m.missingOnly = !m.missingOnly
			if m.ready {
				m.viewport.SetContent(m.renderContent())
				m.viewport.GotoTop()
			}
			return m, nil
		}
	}

	// Delegate to viewport for scrolling
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// switchTab changes the active tab and refreshes the viewport.
func (m Model) switchTab(tab Tab) Model {
	m.tab = tab
	if m.ready {
		m.viewport.SetContent(m.renderContent())
		m.viewport.GotoTop()
	}
	return m
}

// View renders the browser.
func (m Model) View() string {
	var b strings.Builder

	header := headerStyle.Render(
		titleStyle.Render("layercheck") +
			dimStyle.Render(" "+buildinfo.Version) +
			dimStyle.Render(" | Compliance Assessment") +
			"\n" + m.renderTabBar())
	b.WriteString(header)
	b.WriteString("\n")

	if !m.ready {
		b.WriteString("\n  Initializing...\n")
		return b.String()
	}

	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	b.WriteString(footerStyle.Render(m.renderFooter()))

	return b.String()
}

func (m Model) renderTabBar() string {
	var tabs []string
	for i, name := range tabNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if Tab(i) == m.tab {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(label))
		}
	}
	return strings.Join(tabs, " ")
}

func (m Model) renderContent() string {
	switch m.tab {
	case TabLayers:
		return renderLayerChart(m.summary, m.width, m.height)
	case TabControls:
		return renderControls(m.assessments, m.missingOnly)
	case TabReport:
		return m.renderReport()
	default:
		return renderOverview(m.summary, m.external, m.width)
	}
}

// renderReport renders the Markdown report through glamour, falling back
// to the raw document when the renderer is unavailable.
func (m Model) renderReport() string {
	doc := report.Markdown(m.summary, m.assessments, m.external)
	if m.renderer == nil {
		return doc
	}
	out, err := m.renderer.Render(doc)
	if err != nil {
		return doc
	}
	return out
}

func (m Model) renderFooter() string {
	keys := " [q] Quit  [tab] Next view  [1-4] Jump"
	if m.tab == TabControls {
		keys += "  [m] Missing only"
	}
	return fmt.Sprintf("%s  | %d controls | %.1f%% compliant",
		keys, m.summary.TotalControls, m.summary.ComplianceRate)
}

// newMarkdownRenderer builds the glamour renderer for the report tab,
// sized to the current terminal width.
func newMarkdownRenderer(width int) *glamour.TermRenderer {
	wrap := width - 4
	if wrap < 40 {
		wrap = 40
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return nil
	}
	return renderer
}
