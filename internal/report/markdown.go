package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/layercheck/layercheck/internal/audit"
	"github.com/layercheck/layercheck/internal/compliance"
)

// Markdown renders the assessment as a Markdown document. The same
// document backs the Markdown export and the TUI report tab.
func Markdown(summary compliance.Summary, assessments []compliance.Assessment, external *audit.Metrics) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Security Compliance Report\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", summary.GeneratedAt)

	fmt.Fprintf(&b, "## Summary\n\n")
	fmt.Fprintf(&b, "| Metric | Value |\n")
	fmt.Fprintf(&b, "|--------|-------|\n")
	fmt.Fprintf(&b, "| Total Controls | %d |\n", summary.TotalControls)
	fmt.Fprintf(&b, "| Implemented | %d |\n", summary.Implemented)
	fmt.Fprintf(&b, "| Missing | %d |\n", summary.Missing)
	fmt.Fprintf(&b, "| Not Applicable | %d |\n", summary.NotApplicable)
	if summary.Unknown > 0 {
		fmt.Fprintf(&b, "| Unknown | %d |\n", summary.Unknown)
	}
	fmt.Fprintf(&b, "| Compliance Rate | %.2f%% |\n\n", summary.ComplianceRate)

	fmt.Fprintf(&b, "## Layer Statistics\n\n")
	fmt.Fprintf(&b, "| Layer | Name | Implemented | Applicable | Rate |\n")
	fmt.Fprintf(&b, "|-------|------|-------------|------------|------|\n")
	for _, layer := range summary.Layers {
		fmt.Fprintf(&b, "| %s | %s | %d | %d | %.1f%% |\n",
			layer.LayerNumber, compliance.LayerDisplayName(layer),
			layer.Implemented, layer.Applicable(), layer.ComplianceRate())
	}
	b.WriteString("\n")

	missing := filterByStatus(assessments, compliance.StatusMissing)
	if len(missing) > 0 {
		fmt.Fprintf(&b, "## Missing Controls\n\n")
		for _, a := range missing {
			fmt.Fprintf(&b, "- **Layer %s**: %s - %s\n", a.LayerNumber, a.Group, a.Description)
			if a.ArtifactSpec != "" {
				fmt.Fprintf(&b, "  - Artifact: `%s`\n", a.ArtifactSpec)
			}
		}
		b.WriteString("\n")
	}

	unresolved := filterByStatus(assessments, compliance.StatusUnknown)
	if len(unresolved) > 0 {
		fmt.Fprintf(&b, "## Unresolved Controls\n\n")
		for _, a := range unresolved {
			fmt.Fprintf(&b, "- **Layer %s**: %s - %s\n", a.LayerNumber, a.Group, a.Description)
			fmt.Fprintf(&b, "  - %s\n", a.Reason)
		}
		b.WriteString("\n")
	}

	if external != nil {
		fmt.Fprintf(&b, "## External Metrics\n\n")
		fmt.Fprintf(&b, "Collected: %s\n\n", external.CollectedAt)
		for _, result := range external.Results {
			if !result.Available {
				fmt.Fprintf(&b, "- **%s**: unavailable (%s)\n", result.Tool, result.Reason)
				continue
			}
			fmt.Fprintf(&b, "- **%s**:\n", result.Tool)
			for _, key := range sortedMetricKeys(result.Metrics) {
				fmt.Fprintf(&b, "  - %s: %d\n", key, result.Metrics[key])
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}

// WriteMarkdown writes the Markdown report to path.
func WriteMarkdown(path string, summary compliance.Summary, assessments []compliance.Assessment, external *audit.Metrics) error {
	return writeAtomic(path, func(w io.Writer) error {
		_, err := io.WriteString(w, Markdown(summary, assessments, external))
		return err
	})
}

func sortedMetricKeys(metrics map[string]int) []string {
	keys := make([]string, 0, len(metrics))
	for key := range metrics {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
