package audit

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Tool names and the metric keys they report. Renderers key off these.
const (
	ToolCargoAudit = "cargo-audit"
	ToolCargoDeny  = "cargo-deny"

	MetricVulnerabilities = "vulnerabilities"
	MetricCritical        = "critical"
	MetricLicenseIssues   = "license_issues"
	MetricBanIssues       = "ban_issues"
)

// CargoAudit scans the Rust dependency tree for known vulnerabilities
// (RustSec advisory database).
func CargoAudit() Tool {
	return Tool{
		Name:  ToolCargoAudit,
		Bin:   "cargo",
		Args:  []string{"audit", "--json"},
		Parse: parseCargoAudit,
	}
}

// CargoDeny checks dependency licenses and bans.
func CargoDeny() Tool {
	return Tool{
		Name:  ToolCargoDeny,
		Bin:   "cargo",
		Args:  []string{"deny", "check", "--format", "json"},
		Parse: parseCargoDeny,
	}
}

// DefaultTools returns the audit tools run against a Rust workspace.
func DefaultTools() []Tool {
	return []Tool{CargoAudit(), CargoDeny()}
}

type cargoAuditVulnerability struct {
	Severity string `json:"severity"`
	Advisory struct {
		ID       string `json:"id"`
		Severity string `json:"severity"`
	} `json:"advisory"`
}

func (v cargoAuditVulnerability) severity() string {
	if v.Severity != "" {
		return v.Severity
	}
	return v.Advisory.Severity
}

type cargoAuditReport struct {
	Vulnerabilities struct {
		Count int                       `json:"count"`
		List  []cargoAuditVulnerability `json:"list"`
	} `json:"vulnerabilities"`
}

func parseCargoAudit(output []byte) (map[string]int, error) {
	var report cargoAuditReport
	if err := json.Unmarshal(output, &report); err != nil {
		return nil, fmt.Errorf("decode cargo audit output: %w", err)
	}

	total := report.Vulnerabilities.Count
	if total == 0 {
		total = len(report.Vulnerabilities.List)
	}
	critical := 0
	for _, v := range report.Vulnerabilities.List {
		if strings.EqualFold(v.severity(), "critical") {
			critical++
		}
	}
	return map[string]int{
		MetricVulnerabilities: total,
		MetricCritical:        critical,
	}, nil
}

type cargoDenyReport struct {
	Licenses []json.RawMessage `json:"licenses"`
	Bans     []json.RawMessage `json:"bans"`
}

func parseCargoDeny(output []byte) (map[string]int, error) {
	var report cargoDenyReport
	if err := json.Unmarshal(output, &report); err != nil {
		return nil, fmt.Errorf("decode cargo deny output: %w", err)
	}
	return map[string]int{
		MetricLicenseIssues: len(report.Licenses),
		MetricBanIssues:     len(report.Bans),
	}, nil
}
