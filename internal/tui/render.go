package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/layercheck/layercheck/internal/audit"
	"github.com/layercheck/layercheck/internal/compliance"
)

// statusIcon returns a colored icon for an assessment status.
func statusIcon(s compliance.Status) string {
	switch s {
	case compliance.StatusImplemented:
		return implStyle.Render("●")
	case compliance.StatusMissing:
		return missStyle.Render("✖")
	case compliance.StatusNotApplicable:
		return naStyle.Render("○")
	default:
		return unknStyle.Render("?")
	}
}

// statusLabel returns a colored four-character status label.
func statusLabel(s compliance.Status) string {
	switch s {
	case compliance.StatusImplemented:
		return implStyle.Render("IMPL")
	case compliance.StatusMissing:
		return missStyle.Render("MISS")
	case compliance.StatusNotApplicable:
		return naStyle.Render("N/A ")
	default:
		return unknStyle.Render("UNKN")
	}
}

// layerSection groups one layer's assessments for the controls view.
type layerSection struct {
	Number string
	Name   string
	Items  []compliance.Assessment
}

// layerSections groups assessments by layer in checklist order.
func layerSections(assessments []compliance.Assessment) []layerSection {
	var sections []layerSection
	index := make(map[string]int)
	for _, a := range assessments {
		i, ok := index[a.LayerNumber]
		if !ok {
			i = len(sections)
			index[a.LayerNumber] = i
			sections = append(sections, layerSection{
				Number: a.LayerNumber,
				Name:   a.LayerName,
			})
		}
		if sections[i].Name == "" {
			sections[i].Name = a.LayerName
		}
		sections[i].Items = append(sections[i].Items, a)
	}
	return sections
}

// renderLayerSection renders one layer with its control lines.
func renderLayerSection(section layerSection) string {
	var b strings.Builder

	implemented, applicable := 0, 0
	for _, item := range section.Items {
		switch item.Status {
		case compliance.StatusImplemented:
			implemented++
			applicable++
		case compliance.StatusMissing:
			applicable++
		}
	}

	title := section.Number
	if section.Name != "" {
		title += " " + section.Name
	}
	name := layerNameStyle.Render("Layer " + title)
	count := layerCountStyle.Render(fmt.Sprintf("%d/%d implemented", implemented, applicable))
	b.WriteString(fmt.Sprintf(" %s  %s\n", name, count))

	for _, item := range section.Items {
		b.WriteString(renderItem(item))
		b.WriteString("\n")
	}

	return b.String()
}

// renderItem renders a single control line.
func renderItem(a compliance.Assessment) string {
	icon := statusIcon(a.Status)
	label := statusLabel(a.Status)
	name := a.Description

	// Dim implemented controls to reduce noise, highlight gaps
	switch a.Status {
	case compliance.StatusImplemented:
		name = dimStyle.Render(name)
	case compliance.StatusMissing:
		name = missStyle.Render(name)
	case compliance.StatusNotApplicable:
		name = naStyle.Render(name)
	case compliance.StatusUnknown:
		name = unknStyle.Render(name)
	}

	return fmt.Sprintf("   %s %-52s %s", icon, name, label)
}

// renderSummaryBar renders the top-level compliance summary box.
func renderSummaryBar(summary compliance.Summary, width int) string {
	if summary.TotalControls == 0 {
		return dimStyle.Render("No controls assessed")
	}

	parts := []string{}
	parts = append(parts, implStyle.Render(fmt.Sprintf("%d IMPL", summary.Implemented)))
	if summary.Missing > 0 {
		parts = append(parts, missStyle.Render(fmt.Sprintf("%d MISS", summary.Missing)))
	}
	if summary.NotApplicable > 0 {
		parts = append(parts, naStyle.Render(fmt.Sprintf("%d N/A", summary.NotApplicable)))
	}
	if summary.Unknown > 0 {
		parts = append(parts, unknStyle.Render(fmt.Sprintf("%d UNKN", summary.Unknown)))
	}

	counts := fmt.Sprintf("  %d/%d  %s", summary.Implemented, summary.Applicable, strings.Join(parts, "   "))

	barWidth := 20
	if width > 80 {
		barWidth = 30
	}
	filled := 0
	if summary.Applicable > 0 {
		filled = (summary.Implemented * barWidth) / summary.Applicable
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)

	percentStr := fmt.Sprintf("%.1f%%", summary.ComplianceRate)
	pStyle := rateRender(summary.ComplianceRate)

	return summaryBoxStyle.Render(counts + "   " + pStyle(percentStr) + " " + pStyle(bar))
}

// rateRender picks the render function for a compliance rate, using the
// same thresholds as the HTML dashboard.
func rateRender(rate float64) func(...string) string {
	switch {
	case rate >= 90:
		return implStyle.Render
	case rate >= 70:
		return unknStyle.Render
	default:
		return missStyle.Render
	}
}

// renderOverview renders the overview tab content.
func renderOverview(summary compliance.Summary, external *audit.Metrics, width int) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(renderSummaryBar(summary, width))
	b.WriteString("\n")

	line := func(label string, value string) {
		b.WriteString(fmt.Sprintf("   %-24s %s\n", dimStyle.Render(label), value))
	}
	line("Generated", summary.GeneratedAt)
	line("Total controls", fmt.Sprintf("%d", summary.TotalControls))
	line("Implemented", implStyle.Render(fmt.Sprintf("%d", summary.Implemented)))
	line("Missing", missStyle.Render(fmt.Sprintf("%d", summary.Missing)))
	line("Not applicable", naStyle.Render(fmt.Sprintf("%d", summary.NotApplicable)))
	if summary.Unknown > 0 {
		line("Unknown", unknStyle.Render(fmt.Sprintf("%d", summary.Unknown)))
	}
	line("Compliance rate", rateRender(summary.ComplianceRate)(fmt.Sprintf("%.2f%%", summary.ComplianceRate)))

	b.WriteString("\n")
	b.WriteString(layerNameStyle.Render(" External Audits"))
	b.WriteString("\n")
	if external == nil {
		b.WriteString(dimStyle.Render("   Not collected. Run 'layercheck dashboard' to include them."))
		b.WriteString("\n")
		return b.String()
	}
	for _, result := range external.Results {
		if !result.Available {
			b.WriteString(fmt.Sprintf("   %s %-20s %s\n",
				unknStyle.Render("?"), result.Tool,
				dimStyle.Render(fmt.Sprintf("unavailable (%s)", result.Reason))))
			continue
		}
		var metrics []string
		for _, key := range sortedKeys(result.Metrics) {
			metrics = append(metrics, fmt.Sprintf("%s=%d", key, result.Metrics[key]))
		}
		b.WriteString(fmt.Sprintf("   %s %-20s %s\n",
			implStyle.Render("●"), result.Tool, strings.Join(metrics, "  ")))
	}

	return b.String()
}

func sortedKeys(metrics map[string]int) []string {
	keys := make([]string, 0, len(metrics))
	for key := range metrics {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// renderControls renders the per-control tab content, optionally limited
// to missing controls.
func renderControls(assessments []compliance.Assessment, missingOnly bool) string {
	if len(assessments) == 0 {
		return "\n" + dimStyle.Render("   No controls loaded") + "\n"
	}
	if missingOnly {
		assessments = missingControls(assessments)
		if len(assessments) == 0 {
			return "\n" + implStyle.Render("   No missing controls") + "\n"
		}
	}
	var b strings.Builder
	b.WriteString("\n")
	if missingOnly {
		b.WriteString(missStyle.Render("   Showing missing controls only"))
		b.WriteString("\n\n")
	}
	for _, section := range layerSections(assessments) {
		b.WriteString(renderLayerSection(section))
	}
	return b.String()
}

func missingControls(assessments []compliance.Assessment) []compliance.Assessment {
	var missing []compliance.Assessment
	for _, a := range assessments {
		if a.Status == compliance.StatusMissing {
			missing = append(missing, a)
		}
	}
	return missing
}
