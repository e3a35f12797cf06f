package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/layercheck/layercheck/internal/audit"
	"github.com/layercheck/layercheck/internal/compliance"
)

func testAssessments() []compliance.Assessment {
	return []compliance.Assessment{
		{
			Control: compliance.Control{
				LayerNumber: "1", LayerName: "Host & OS Hardening",
				Group: "Kernel", Description: "Seccomp profiles enforced",
				ArtifactSpec: "configs/seccomp.json",
			},
			Status: compliance.StatusImplemented,
			Reason: "artifact found",
		},
		{
			Control: compliance.Control{
				LayerNumber: "1", LayerName: "Host & OS Hardening",
				Group: "Kernel", Description: "AppArmor profiles loaded",
				ArtifactSpec: "configs/apparmor/*.profile",
			},
			Status: compliance.StatusMissing,
			Reason: "artifact not found",
		},
		{
			Control: compliance.Control{
				LayerNumber: "4", LayerName: "Application & API Security",
				Description: "Threat model reviewed quarterly",
			},
			Status: compliance.StatusNotApplicable,
			Reason: "no artifact specified",
		},
	}
}

func testModel() Model {
	assessments := testAssessments()
	return New(compliance.Summarize(assessments), assessments, nil)
}

// ---------------------------------------------------------------------------
// statusIcon / statusLabel
// ---------------------------------------------------------------------------

func TestStatusIcon(t *testing.T) {
	tests := []struct {
		status compliance.Status
		want   string // substring (the glyph)
	}{
		{compliance.StatusImplemented, "●"},
		{compliance.StatusMissing, "✖"},
		{compliance.StatusNotApplicable, "○"},
		{compliance.StatusUnknown, "?"},
		{"", "?"},
	}
	for _, tt := range tests {
		got := statusIcon(tt.status)
		if !strings.Contains(got, tt.want) {
			t.Errorf("statusIcon(%q) = %q, want substring %q", tt.status, got, tt.want)
		}
	}
}

func TestStatusLabel(t *testing.T) {
	tests := []struct {
		status compliance.Status
		want   string
	}{
		{compliance.StatusImplemented, "IMPL"},
		{compliance.StatusMissing, "MISS"},
		{compliance.StatusNotApplicable, "N/A"},
		{compliance.StatusUnknown, "UNKN"},
		{"", "UNKN"},
	}
	for _, tt := range tests {
		got := statusLabel(tt.status)
		if !strings.Contains(got, tt.want) {
			t.Errorf("statusLabel(%q) = %q, want substring %q", tt.status, got, tt.want)
		}
	}
}

// ---------------------------------------------------------------------------
// layerSections
// ---------------------------------------------------------------------------

func TestLayerSections_GroupsInOrder(t *testing.T) {
	sections := layerSections(testAssessments())
	if len(sections) != 2 {
		t.Fatalf("len(sections) = %d, want 2", len(sections))
	}
	if sections[0].Number != "1" || sections[1].Number != "4" {
		t.Errorf("section order = [%s %s], want [1 4]", sections[0].Number, sections[1].Number)
	}
	if len(sections[0].Items) != 2 {
		t.Errorf("layer 1 items = %d, want 2", len(sections[0].Items))
	}
	if sections[0].Name != "Host & OS Hardening" {
		t.Errorf("section name = %q", sections[0].Name)
	}
}

func TestLayerSections_BackfillsName(t *testing.T) {
	assessments := []compliance.Assessment{
		{Control: compliance.Control{LayerNumber: "7"}, Status: compliance.StatusMissing},
		{Control: compliance.Control{LayerNumber: "7", LayerName: "Monitoring"}, Status: compliance.StatusImplemented},
	}
	sections := layerSections(assessments)
	if len(sections) != 1 {
		t.Fatalf("len(sections) = %d, want 1", len(sections))
	}
	if sections[0].Name != "Monitoring" {
		t.Errorf("Name = %q, want Monitoring", sections[0].Name)
	}
}

// ---------------------------------------------------------------------------
// renderLayerSection / renderItem
// ---------------------------------------------------------------------------

func TestRenderLayerSection(t *testing.T) {
	sections := layerSections(testAssessments())
	got := renderLayerSection(sections[0])

	if !strings.Contains(got, "Host & OS Hardening") {
		t.Error("section should contain layer name")
	}
	if !strings.Contains(got, "1/2 implemented") {
		t.Errorf("section should show 1/2 implemented, got: %q", got)
	}
	if !strings.Contains(got, "Seccomp profiles enforced") {
		t.Error("section should list control descriptions")
	}
}

func TestRenderItem(t *testing.T) {
	for _, a := range testAssessments() {
		got := renderItem(a)
		if got == "" {
			t.Errorf("renderItem(%s) returned empty string", a.Description)
		}
		if !strings.Contains(got, a.Description) {
			t.Errorf("renderItem(%s) missing description in output", a.Description)
		}
	}
}

// ---------------------------------------------------------------------------
// renderSummaryBar
// ---------------------------------------------------------------------------

func TestRenderSummaryBar_NoControls(t *testing.T) {
	got := renderSummaryBar(compliance.Summary{}, 80)
	if !strings.Contains(got, "No controls assessed") {
		t.Errorf("empty summary should show 'No controls assessed', got: %q", got)
	}
}

func TestRenderSummaryBar_MixedStatuses(t *testing.T) {
	summary := compliance.Summarize(testAssessments())
	got := renderSummaryBar(summary, 80)

	if !strings.Contains(got, "1/2") {
		t.Errorf("should show implemented/applicable, got: %q", got)
	}
	if !strings.Contains(got, "MISS") {
		t.Errorf("should show MISS count, got: %q", got)
	}
	if !strings.Contains(got, "N/A") {
		t.Errorf("should show N/A count, got: %q", got)
	}
	if !strings.Contains(got, "50.0%") {
		t.Errorf("should show rate, got: %q", got)
	}
}

func TestRenderSummaryBar_WideTerminal(t *testing.T) {
	assessments := []compliance.Assessment{
		{Control: compliance.Control{LayerNumber: "1"}, Status: compliance.StatusImplemented},
	}
	summary := compliance.Summarize(assessments)
	got80 := renderSummaryBar(summary, 80)
	got120 := renderSummaryBar(summary, 120)
	count80 := strings.Count(got80, "█")
	count120 := strings.Count(got120, "█")
	if count120 <= count80 {
		t.Errorf("wider terminal should produce wider bar: 80=%d chars, 120=%d chars", count80, count120)
	}
}

// ---------------------------------------------------------------------------
// renderOverview
// ---------------------------------------------------------------------------

func TestRenderOverview_NoMetrics(t *testing.T) {
	summary := compliance.Summarize(testAssessments())
	got := renderOverview(summary, nil, 80)

	if !strings.Contains(got, "Total controls") {
		t.Error("overview should show total controls")
	}
	if !strings.Contains(got, "Not collected") {
		t.Errorf("overview should mark metrics as not collected, got: %q", got)
	}
}

func TestRenderOverview_WithMetrics(t *testing.T) {
	summary := compliance.Summarize(testAssessments())
	external := &audit.Metrics{
		CollectedAt: "2026-08-23T10:00:00Z",
		Results: []audit.Result{
			{
				Tool:      audit.ToolCargoAudit,
				Available: true,
				Metrics:   map[string]int{audit.MetricVulnerabilities: 2, audit.MetricCritical: 0},
			},
			{Tool: audit.ToolCargoDeny, Reason: audit.ReasonTimeout},
		},
	}
	got := renderOverview(summary, external, 80)

	if !strings.Contains(got, "cargo-audit") {
		t.Error("overview should list available tools")
	}
	if !strings.Contains(got, "vulnerabilities=2") {
		t.Errorf("overview should show metric values, got: %q", got)
	}
	if !strings.Contains(got, "unavailable (timeout)") {
		t.Errorf("overview should show unavailability reason, got: %q", got)
	}
}

// ---------------------------------------------------------------------------
// renderLayerChart
// ---------------------------------------------------------------------------

func TestRenderLayerChart_Empty(t *testing.T) {
	got := renderLayerChart(compliance.Summary{}, 80, 40)
	if !strings.Contains(got, "No layer data available") {
		t.Errorf("empty summary should show placeholder, got: %q", got)
	}
}

func TestRenderLayerChart_LegendListsLayers(t *testing.T) {
	summary := compliance.Summarize(testAssessments())
	got := renderLayerChart(summary, 80, 40)

	if !strings.Contains(got, "Compliance by Security Layer") {
		t.Error("chart should have a title")
	}
	if !strings.Contains(got, "Layer 1 Host & OS Hardening: 1/2 (50.0%)") {
		t.Errorf("legend missing layer 1 entry, got: %q", got)
	}
	if !strings.Contains(got, "Layer 4 Application & API Security: 0/0 (0.0%)") {
		t.Errorf("legend missing layer 4 entry, got: %q", got)
	}
}

// ---------------------------------------------------------------------------
// Model
// ---------------------------------------------------------------------------

func TestNewModel(t *testing.T) {
	m := testModel()
	if m.ready {
		t.Error("should not be ready initially")
	}
	if m.tab != TabOverview {
		t.Errorf("initial tab = %v, want TabOverview", m.tab)
	}
	if m.Init() != nil {
		t.Error("Init should return no command")
	}
}

func TestView_NotReady(t *testing.T) {
	m := testModel()
	got := m.View()
	if !strings.Contains(got, "Initializing") {
		t.Errorf("not-ready model should show 'Initializing', got: %q", got)
	}
}

func TestUpdate_WindowSizeMsg(t *testing.T) {
	m := testModel()
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	model := updated.(Model)
	if !model.ready {
		t.Error("should be ready after WindowSizeMsg")
	}
	if model.width != 100 {
		t.Errorf("width = %d, want 100", model.width)
	}
	if model.viewport.Width != 100 {
		t.Errorf("viewport width = %d, want 100", model.viewport.Width)
	}
}

func TestUpdate_WindowSizeMsg_SmallHeight(t *testing.T) {
	m := testModel()
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 8})
	model := updated.(Model)
	if model.viewport.Height < 5 {
		t.Errorf("viewport height = %d, should be at least 5", model.viewport.Height)
	}
}

func TestUpdate_TabCycling(t *testing.T) {
	m := testModel()
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 40})
	model := updated.(Model)

	updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyTab})
	model = updated.(Model)
	if model.tab != TabLayers {
		t.Errorf("tab after one cycle = %v, want TabLayers", model.tab)
	}

	for i := 0; i < 3; i++ {
		updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyTab})
		model = updated.(Model)
	}
	if model.tab != TabOverview {
		t.Errorf("tab should wrap around to TabOverview, got %v", model.tab)
	}
}

func TestUpdate_DirectTabJump(t *testing.T) {
	m := testModel()
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 40})
	model := updated.(Model)

	updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'3'}})
	model = updated.(Model)
	if model.tab != TabControls {
		t.Errorf("tab = %v, want TabControls", model.tab)
	}
}

func TestUpdate_Quit(t *testing.T) {
	m := testModel()
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("q should produce a quit command")
	}
	if msg := cmd(); msg != tea.Quit() {
		t.Errorf("command = %v, want tea.Quit", msg)
	}
}

func TestRenderContent_PerTab(t *testing.T) {
	m := testModel()
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 40})
	model := updated.(Model)

	model.tab = TabOverview
	if got := model.renderContent(); !strings.Contains(got, "Total controls") {
		t.Error("overview tab missing summary lines")
	}

	model.tab = TabControls
	if got := model.renderContent(); !strings.Contains(got, "AppArmor profiles loaded") {
		t.Error("controls tab missing control list")
	}

	model.tab = TabReport
	if got := model.renderContent(); !strings.Contains(got, "Security Compliance Report") {
		t.Error("report tab missing rendered report")
	}
}

func TestRenderControls_MissingOnly(t *testing.T) {
	got := renderControls(testAssessments(), true)
	if !strings.Contains(got, "Showing missing controls only") {
		t.Error("filtered view should announce the active filter")
	}
	if !strings.Contains(got, "AppArmor profiles loaded") {
		t.Error("filtered view should keep the missing control")
	}
	if strings.Contains(got, "Seccomp profiles enforced") {
		t.Error("filtered view should drop implemented controls")
	}
	if strings.Contains(got, "Threat model reviewed quarterly") {
		t.Error("filtered view should drop not-applicable controls")
	}
}

func TestRenderControls_MissingOnlyAllImplemented(t *testing.T) {
	assessments := []compliance.Assessment{testAssessments()[0]}
	got := renderControls(assessments, true)
	if !strings.Contains(got, "No missing controls") {
		t.Errorf("want empty-filter notice, got %q", got)
	}
}

func TestUpdate_MissingFilterToggle(t *testing.T) {
	m := testModel()
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 40})
	model := updated.(Model)

	updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'3'}})
	model = updated.(Model)
	updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'m'}})
	model = updated.(Model)

	if !model.missingOnly {
		t.Fatal("m should enable the missing-only filter")
	}
	if got := model.renderContent(); strings.Contains(got, "Seccomp profiles enforced") {
		t.Error("filtered controls tab should drop implemented controls")
	}
	if got := model.renderFooter(); !strings.Contains(got, "[m] Missing only") {
		t.Errorf("controls tab footer should mention the filter key, got %q", got)
	}

	updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'m'}})
	model = updated.(Model)
	if model.missingOnly {
		t.Error("m should toggle the filter back off")
	}
}

func TestTabString(t *testing.T) {
	tests := []struct {
		tab  Tab
		want string
	}{
		{TabOverview, "Overview"},
		{TabLayers, "Layers"},
		{TabControls, "Controls"},
		{TabReport, "Report"},
		{Tab(9), ""},
	}
	for _, tt := range tests {
		if got := tt.tab.String(); got != tt.want {
			t.Errorf("Tab(%d).String() = %q, want %q", tt.tab, got, tt.want)
		}
	}
}
