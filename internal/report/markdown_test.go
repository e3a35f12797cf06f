package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/layercheck/layercheck/internal/compliance"
)

func TestMarkdown_Sections(t *testing.T) {
	assessments := sampleAssessments()
	summary := sampleSummary(assessments)
	out := Markdown(summary, assessments, sampleMetrics())

	wantFragments := []string{
		"# Security Compliance Report",
		"Generated: " + summary.GeneratedAt,
		"## Summary",
		"| Total Controls | 3 |",
		"| Compliance Rate | 50.00% |",
		"## Layer Statistics",
		"| 1 | Host & OS Hardening | 1 | 2 | 50.0% |",
		"## Missing Controls",
		"- **Layer 1**: Kernel - AppArmor profiles loaded",
		"Artifact: `configs/apparmor/*.profile`",
		"## External Metrics",
		"- **cargo-audit**:",
		"critical: 1",
		"vulnerabilities: 3",
		"- **cargo-deny**: unavailable (not-installed)",
	}
	for _, want := range wantFragments {
		if !strings.Contains(out, want) {
			t.Errorf("markdown missing %q\n%s", want, out)
		}
	}

	if strings.Contains(out, "| Unknown |") {
		t.Errorf("unknown row shown with no unknown controls")
	}
	if strings.Contains(out, "## Unresolved Controls") {
		t.Errorf("unresolved section shown with no unknown controls")
	}
}

func TestMarkdown_UnresolvedSection(t *testing.T) {
	assessments := append(sampleAssessments(), compliance.Assessment{
		Control: compliance.Control{
			LayerNumber: "3", Group: "Network", Description: "Firewall rules applied",
			ArtifactSpec: "configs/fw/[",
		},
		Status: compliance.StatusUnknown,
		Reason: "artifact check failed: syntax error in pattern",
	})
	summary := sampleSummary(assessments)
	out := Markdown(summary, assessments, nil)

	if !strings.Contains(out, "| Unknown | 1 |") {
		t.Errorf("unknown count row missing:\n%s", out)
	}
	if !strings.Contains(out, "## Unresolved Controls") {
		t.Errorf("unresolved section missing")
	}
	if !strings.Contains(out, "- **Layer 3**: Network - Firewall rules applied") {
		t.Errorf("unresolved entry missing")
	}
	if strings.Contains(out, "## External Metrics") {
		t.Errorf("external metrics section shown with nil metrics")
	}
}

func TestWriteMarkdown(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.md")

	assessments := sampleAssessments()
	if err := WriteMarkdown(path, sampleSummary(assessments), assessments, nil); err != nil {
		t.Fatalf("WriteMarkdown: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.HasPrefix(string(data), "# Security Compliance Report") {
		t.Errorf("markdown file missing title")
	}
}
