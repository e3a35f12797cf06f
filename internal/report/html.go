package report

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"strconv"

	"github.com/layercheck/layercheck/internal/audit"
	"github.com/layercheck/layercheck/internal/compliance"
)

// Rate thresholds for the dashboard's color classes.
const (
	rateCompliant = 90
	rateWarning   = 70
)

// rateClass maps a compliance rate to its dashboard CSS class.
func rateClass(rate float64) string {
	switch {
	case rate >= rateCompliant:
		return "compliant"
	case rate >= rateWarning:
		return "warning"
	default:
		return "non-compliant"
	}
}

// WriteHTML writes the static HTML dashboard to path.
func WriteHTML(path string, summary compliance.Summary, external *audit.Metrics) error {
	var buf bytes.Buffer
	buildDashboard(&buf, summary, external)
	return writeAtomic(path, func(w io.Writer) error {
		_, err := w.Write(buf.Bytes())
		return err
	})
}

func buildDashboard(buf *bytes.Buffer, s compliance.Summary, external *audit.Metrics) {
	w := func(s string) { buf.WriteString(s) }
	wf := func(f string, a ...any) { buf.WriteString(fmt.Sprintf(f, a...)) }
	e := html.EscapeString

	w(`<!DOCTYPE html>
<html>
<head>
    <title>Security Dashboard</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 20px; }
        .header { background-color: #f0f0f0; padding: 20px; border-radius: 5px; }
        .metrics { display: flex; flex-wrap: wrap; gap: 20px; margin: 20px 0; }
        .metric-card { background-color: #f9f9f9; padding: 15px; border-radius: 5px; min-width: 200px; }
        .metric-value { font-size: 24px; font-weight: bold; }
        .metric-note { color: #666; }
        .chart-container { margin: 20px 0; }
        .layer-table { width: 100%; border-collapse: collapse; margin: 20px 0; }
        .layer-table th, .layer-table td { border: 1px solid #ddd; padding: 8px; text-align: left; }
        .layer-table th { background-color: #f2f2f2; }
        .compliant { color: green; }
        .non-compliant { color: red; }
        .warning { color: orange; }
        .na { color: #888; }
    </style>
</head>
<body>
`)

	wf(`    <div class="header">
        <h1>Security Dashboard</h1>
        <p>Generated: %s</p>
    </div>
`, e(s.GeneratedAt))

	// Metric cards
	w(`    <div class="metrics">
`)
	wf(`        <div class="metric-card">
            <h3>Overall Compliance</h3>
            <div class="metric-value %s">%.1f%%</div>
            <p>%d/%d controls implemented</p>
        </div>
`, rateClass(s.ComplianceRate), s.ComplianceRate, s.Implemented, s.TotalControls)
	wf(`        <div class="metric-card">
            <h3>Vulnerabilities</h3>
            <div class="metric-value">%s</div>
            <p>%s critical</p>
        </div>
`, e(metricOrNA(external, audit.ToolCargoAudit, audit.MetricVulnerabilities)),
		e(metricOrNA(external, audit.ToolCargoAudit, audit.MetricCritical)))
	wf(`        <div class="metric-card">
            <h3>Missing Controls</h3>
            <div class="metric-value">%d</div>
            <p>controls need implementation</p>
        </div>
`, s.Missing)
	w(`    </div>
`)

	// Per-layer breakdown
	w(`    <div class="chart-container">
        <h2>Compliance by Security Layer</h2>
        <table class="layer-table">
            <thead>
                <tr>
                    <th>Layer #</th>
                    <th>Layer Name</th>
                    <th>Compliance Rate</th>
                    <th>Implemented</th>
                    <th>Total</th>
                </tr>
            </thead>
            <tbody>
`)
	for _, layer := range s.Layers {
		rate := layer.ComplianceRate()
		wf(`                <tr>
                    <td>%s</td>
                    <td>%s</td>
                    <td class="%s">%.1f%%</td>
                    <td>%d</td>
                    <td>%d</td>
                </tr>
`, e(layer.LayerNumber), e(compliance.LayerDisplayName(layer)), rateClass(rate), rate, layer.Implemented, layer.Total())
	}
	w(`            </tbody>
        </table>
    </div>
`)

	// External audit metrics
	w(`    <div class="chart-container">
        <h2>Security Metrics</h2>
        <h3>Vulnerability Assessment</h3>
`)
	wf("        <p>Critical Vulnerabilities: %s</p>\n", e(metricOrNA(external, audit.ToolCargoAudit, audit.MetricCritical)))
	wf("        <p>Total Vulnerabilities: %s</p>\n", e(metricOrNA(external, audit.ToolCargoAudit, audit.MetricVulnerabilities)))
	w(`        <h3>Compliance Issues</h3>
`)
	wf("        <p>License Issues: %s</p>\n", e(metricOrNA(external, audit.ToolCargoDeny, audit.MetricLicenseIssues)))
	wf("        <p>Ban Issues: %s</p>\n", e(metricOrNA(external, audit.ToolCargoDeny, audit.MetricBanIssues)))
	w(`    </div>
</body>
</html>
`)
}

// metricOrNA renders a sub-metric as a number, or as a differentiated
// "N/A" when the tool's findings are unavailable. A tool that never ran
// must not read as zero findings.
func metricOrNA(external *audit.Metrics, tool, key string) string {
	if external == nil {
		return "N/A (not collected)"
	}
	result, ok := external.Lookup(tool)
	if !ok {
		return "N/A (not collected)"
	}
	if !result.Available {
		return fmt.Sprintf("N/A (%s)", result.Reason)
	}
	value, _ := result.Metric(key)
	return strconv.Itoa(value)
}
