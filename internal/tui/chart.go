package tui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"

	"github.com/layercheck/layercheck/internal/compliance"
)

// layerBarColor maps a layer's compliance rate to a bar color.
func layerBarColor(layer compliance.LayerStats) lipgloss.Color {
	if layer.Applicable() == 0 {
		return colorNA
	}
	rate := layer.ComplianceRate()
	switch {
	case rate >= 90:
		return colorPass
	case rate >= 70:
		return colorWarn
	default:
		return colorFail
	}
}

// renderLayerChart renders a bar chart of per-layer compliance rates.
func renderLayerChart(summary compliance.Summary, width, height int) string {
	if len(summary.Layers) == 0 {
		return "\n" + dimStyle.Render("   No layer data available") + "\n"
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(chartTitleStyle.Render("Compliance by Security Layer"))
	b.WriteString("\n\n")

	chartW := width - 4
	if chartW < 20 {
		chartW = 20
	}
	chartH := height - 10 - len(summary.Layers)
	if chartH < 6 {
		chartH = 6
	}

	bc := barchart.New(chartW, chartH,
		barchart.WithNoAutoBarWidth(),
		barchart.WithBarWidth(3),
		barchart.WithBarGap(1),
	)

	var items []barchart.BarData
	for _, layer := range summary.Layers {
		color := layerBarColor(layer)
		items = append(items, barchart.BarData{
			Label: truncateString(layer.LayerNumber, 6),
			Values: []barchart.BarValue{{
				Name:  compliance.LayerDisplayName(layer),
				Value: layer.ComplianceRate(),
				Style: lipgloss.NewStyle().Foreground(color),
			}},
		})
	}
	bc.PushAll(items)
	bc.Draw()

	b.WriteString(bc.View())
	b.WriteString("\n\n")

	// Legend with full layer names
	for _, layer := range summary.Layers {
		marker := lipgloss.NewStyle().Foreground(layerBarColor(layer)).Render("█")
		b.WriteString(fmt.Sprintf("%s Layer %s %s: %d/%d (%.1f%%)\n",
			marker, layer.LayerNumber, compliance.LayerDisplayName(layer),
			layer.Implemented, layer.Applicable(), layer.ComplianceRate()))
	}

	return b.String()
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-1] + "."
}
