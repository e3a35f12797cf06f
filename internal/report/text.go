package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/layercheck/layercheck/internal/compliance"
)

// Text renders the plain text compliance report. The section banners and
// line formats are stable; log scrapers key off them.
func Text(summary compliance.Summary, assessments []compliance.Assessment) string {
	var b strings.Builder
	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format, args...)
		b.WriteByte('\n')
	}

	line("SECURITY COMPLIANCE REPORT")
	line(strings.Repeat("=", 50))
	line("Generated: %s", summary.GeneratedAt)
	line("")

	line("SUMMARY")
	line(strings.Repeat("-", 20))
	line("Total Controls: %d", summary.TotalControls)
	line("Implemented: %d", summary.Implemented)
	line("Missing: %d", summary.Missing)
	line("Not Applicable: %d", summary.NotApplicable)
	if summary.Unknown > 0 {
		line("Unknown: %d", summary.Unknown)
	}
	line("Compliance Rate: %.2f%%", summary.ComplianceRate)
	line("")

	line("LAYER STATISTICS")
	line(strings.Repeat("-", 20))
	for _, layer := range summary.Layers {
		line("Layer %s: %d/%d (%.1f%%)",
			layer.LayerNumber, layer.Implemented, layer.Applicable(), layer.ComplianceRate())
	}
	line("")

	missing := filterByStatus(assessments, compliance.StatusMissing)
	if len(missing) > 0 {
		line("MISSING CONTROLS")
		line(strings.Repeat("-", 20))
		for _, a := range missing {
			line("Layer %s: %s - %s", a.LayerNumber, a.Group, a.Description)
			line("  Artifact: %s", a.ArtifactSpec)
			line("")
		}
	}

	unknown := filterByStatus(assessments, compliance.StatusUnknown)
	if len(unknown) > 0 {
		line("UNRESOLVED CONTROLS")
		line(strings.Repeat("-", 20))
		for _, a := range unknown {
			line("Layer %s: %s - %s", a.LayerNumber, a.Group, a.Description)
			line("  Reason: %s", a.Reason)
			line("")
		}
	}

	return b.String()
}

// WriteText writes the plain text report to path.
func WriteText(path string, summary compliance.Summary, assessments []compliance.Assessment) error {
	return writeAtomic(path, func(w io.Writer) error {
		_, err := io.WriteString(w, Text(summary, assessments))
		return err
	})
}

func filterByStatus(assessments []compliance.Assessment, status compliance.Status) []compliance.Assessment {
	var out []compliance.Assessment
	for _, a := range assessments {
		if a.Status == status {
			out = append(out, a)
		}
	}
	return out
}
