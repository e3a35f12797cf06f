package report

import (
	"encoding/json"
	"io"

	"github.com/layercheck/layercheck/internal/audit"
	"github.com/layercheck/layercheck/internal/compliance"
)

// reportPayload is the schema of security-compliance-report.json.
type reportPayload struct {
	Summary     compliance.Summary      `json:"summary"`
	Assessments []compliance.Assessment `json:"assessments"`
}

// dashboardPayload is the schema of security-dashboard.json.
type dashboardPayload struct {
	GeneratedAt     string             `json:"generated_at"`
	Summary         compliance.Summary `json:"summary"`
	ExternalMetrics *audit.Metrics     `json:"external_metrics,omitempty"`
}

// WriteJSON writes the full machine-readable report to path.
func WriteJSON(path string, summary compliance.Summary, assessments []compliance.Assessment) error {
	if assessments == nil {
		assessments = []compliance.Assessment{}
	}
	return writeAtomic(path, func(w io.Writer) error {
		return encodeJSON(w, reportPayload{Summary: summary, Assessments: assessments})
	})
}

// WriteDashboardJSON writes the dashboard data file: the summary plus the
// typed external audit results. An absent metrics set is omitted rather
// than rendered as zero findings.
func WriteDashboardJSON(path string, summary compliance.Summary, external *audit.Metrics) error {
	return writeAtomic(path, func(w io.Writer) error {
		return encodeJSON(w, dashboardPayload{
			GeneratedAt:     summary.GeneratedAt,
			Summary:         summary,
			ExternalMetrics: external,
		})
	})
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
