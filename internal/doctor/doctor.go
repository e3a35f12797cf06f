// Package doctor runs environment preflight checks for layercheck.
//
// It verifies the checklist is readable, the artifact root and output
// directory are usable, and reports which external audit tools are
// installed, so a failed assessment can be diagnosed before it runs.
package doctor

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/layercheck/layercheck/internal/checklist"
	"github.com/layercheck/layercheck/internal/config"
)

// Severity indicates the impact level of a check result.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// Status indicates whether a check passed, failed, or produced a warning.
type Status string

const (
	StatusPass Status = "pass"
	StatusFail Status = "fail"
	StatusWarn Status = "warn"
	StatusSkip Status = "skip"
)

// CheckResult holds the outcome of a single preflight check.
type CheckResult struct {
	Name        string   `json:"name"`
	Status      Status   `json:"status"`
	Severity    Severity `json:"severity"`
	Message     string   `json:"message"`
	Details     string   `json:"details,omitempty"`
	Remediation string   `json:"remediation,omitempty"`
	Timestamp   string   `json:"timestamp"`
}

// Report holds the complete preflight output.
type Report struct {
	Version   string        `json:"version"`
	Platform  string        `json:"platform"`
	Timestamp string        `json:"timestamp"`
	Results   []CheckResult `json:"results"`
	Summary   Summary       `json:"summary"`
}

// Summary aggregates check results.
type Summary struct {
	Total    int `json:"total"`
	Passed   int `json:"passed"`
	Failed   int `json:"failed"`
	Warnings int `json:"warnings"`
	Skipped  int `json:"skipped"`
}

// RunAllChecks executes all preflight checks against the given
// configuration. Returns an error if any critical check fails.
func RunAllChecks(cfg *config.Config) ([]CheckResult, error) {
	checks := []func(*config.Config) CheckResult{
		checkChecklist,
		checkRoot,
		checkOutputDir,
	}

	var results []CheckResult
	for _, check := range checks {
		results = append(results, check(cfg))
	}
	results = append(results, checkAuditTools(cfg)...)

	var criticalFailures []string
	for _, r := range results {
		if r.Status == StatusFail && r.Severity == SeverityCritical {
			criticalFailures = append(criticalFailures, r.Name)
		}
	}
	if len(criticalFailures) > 0 {
		return results, fmt.Errorf("critical checks failed: %s", strings.Join(criticalFailures, ", "))
	}
	return results, nil
}

// GenerateReport runs all checks and produces a full report.
func GenerateReport(version string, cfg *config.Config) (*Report, error) {
	results, err := RunAllChecks(cfg)

	report := &Report{
		Version:   version,
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Results:   results,
	}

	for _, r := range results {
		report.Summary.Total++
		switch r.Status {
		case StatusPass:
			report.Summary.Passed++
		case StatusFail:
			report.Summary.Failed++
		case StatusWarn:
			report.Summary.Warnings++
		case StatusSkip:
			report.Summary.Skipped++
		}
	}

	return report, err
}

// PrintReport outputs the preflight report as formatted JSON.
func PrintReport(report *Report) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// checkChecklist verifies the control checklist loads and has rows.
func checkChecklist(cfg *config.Config) CheckResult {
	result := CheckResult{
		Name:      "checklist_readable",
		Severity:  SeverityCritical,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	controls, err := checklist.Load(cfg.Checklist)
	if err != nil {
		result.Status = StatusFail
		result.Message = fmt.Sprintf("Cannot load checklist %s", cfg.Checklist)
		result.Details = err.Error()
		result.Remediation = "Run 'layercheck init' to scaffold a config, or point checklist at your control CSV"
		return result
	}
	if len(controls) == 0 {
		result.Status = StatusWarn
		result.Message = "Checklist loaded but contains no controls"
		result.Remediation = "Add control rows to " + cfg.Checklist
		return result
	}

	result.Status = StatusPass
	result.Message = fmt.Sprintf("Checklist loaded: %d controls", len(controls))
	return result
}

// checkRoot verifies the artifact root directory exists.
func checkRoot(cfg *config.Config) CheckResult {
	result := CheckResult{
		Name:      "artifact_root",
		Severity:  SeverityCritical,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	root := cfg.Root
	if root == "" {
		root = "."
	}
	info, err := os.Stat(root)
	if err != nil {
		result.Status = StatusFail
		result.Message = fmt.Sprintf("Artifact root %s is not accessible", root)
		result.Details = err.Error()
		return result
	}
	if !info.IsDir() {
		result.Status = StatusFail
		result.Message = fmt.Sprintf("Artifact root %s is not a directory", root)
		return result
	}

	result.Status = StatusPass
	result.Message = fmt.Sprintf("Artifact root %s is accessible", root)
	return result
}

// checkOutputDir verifies reports can be written to the output directory.
func checkOutputDir(cfg *config.Config) CheckResult {
	result := CheckResult{
		Name:      "output_dir_writable",
		Severity:  SeverityWarning,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	dir := cfg.OutputDir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		result.Status = StatusWarn
		result.Message = fmt.Sprintf("Cannot create output directory %s", dir)
		result.Details = err.Error()
		return result
	}

	probe, err := os.CreateTemp(dir, ".layercheck-doctor-*")
	if err != nil {
		result.Status = StatusWarn
		result.Message = fmt.Sprintf("Output directory %s is not writable", dir)
		result.Details = err.Error()
		return result
	}
	probe.Close()
	os.Remove(probe.Name())

	result.Status = StatusPass
	result.Message = fmt.Sprintf("Output directory %s is writable", dir)
	return result
}

// checkAuditTools reports which external audit tools are installed.
// Missing tools are warnings: assessment still runs, their findings are
// just reported as unavailable.
func checkAuditTools(cfg *config.Config) []CheckResult {
	tools := []struct {
		name    string
		bin     string
		install string
	}{
		{"cargo_installed", "cargo", "Install the Rust toolchain: https://rustup.rs"},
		{"cargo_audit_installed", "cargo-audit", "cargo install cargo-audit"},
		{"cargo_deny_installed", "cargo-deny", "cargo install cargo-deny"},
	}

	var results []CheckResult
	for _, tool := range tools {
		result := CheckResult{
			Name:      tool.name,
			Severity:  SeverityWarning,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		}
		if !cfg.Audit.Enabled {
			result.Status = StatusSkip
			result.Message = "External audits disabled in config"
			results = append(results, result)
			continue
		}
		path, err := exec.LookPath(tool.bin)
		if err != nil {
			result.Status = StatusWarn
			result.Message = fmt.Sprintf("%s not found in PATH", tool.bin)
			result.Remediation = tool.install
		} else {
			result.Status = StatusPass
			result.Message = fmt.Sprintf("%s found at %s", tool.bin, filepath.Clean(path))
		}
		results = append(results, result)
	}
	return results
}
