package checklist

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleCSV = `Layer #,Layer Name,Control Group,Control,Policy/Config Artifact,Component (Rust/K8s/Web3),Test Category,Metric/KPI,Evidence to Store
1,Governance & Policy,Policy,Security policy ratified,docs/security-policy.md,Rust,Manual,review age < 1y,signed PDF
5,Secrets Management,Vault,No plaintext secrets in repo,,Rust,Automated,0 findings,scan log
10,Containers & Orchestration,K8s,Pod security standards enforced,k8s/policies/*.yaml,K8s,Automated,100% namespaces,admission audit
`

func TestLoad_SampleChecklist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checklist.csv")
	if err := os.WriteFile(path, []byte(sampleCSV), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	controls, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(controls) != 3 {
		t.Fatalf("got %d controls, want 3", len(controls))
	}

	first := controls[0]
	if first.LayerNumber != "1" {
		t.Errorf("LayerNumber = %q, want 1", first.LayerNumber)
	}
	if first.LayerName != "Governance & Policy" {
		t.Errorf("LayerName = %q", first.LayerName)
	}
	if first.ArtifactSpec != "docs/security-policy.md" {
		t.Errorf("ArtifactSpec = %q", first.ArtifactSpec)
	}
	if first.Evidence != "signed PDF" {
		t.Errorf("Evidence = %q", first.Evidence)
	}

	if controls[1].ArtifactSpec != "" {
		t.Errorf("empty artifact cell should stay empty, got %q", controls[1].ArtifactSpec)
	}
	if controls[2].LayerNumber != "10" {
		t.Errorf("row order not preserved: got layer %q", controls[2].LayerNumber)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.csv"))
	if err == nil {
		t.Fatal("expected error for missing checklist")
	}
	if !strings.Contains(err.Error(), "open checklist") {
		t.Errorf("error %q should mention the open failure", err)
	}
}

func TestRead_EmptyFile(t *testing.T) {
	controls, err := Read(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(controls) != 0 {
		t.Errorf("got %d controls from empty input, want 0", len(controls))
	}
}

func TestRead_HeaderOnly(t *testing.T) {
	controls, err := Read(strings.NewReader("Layer #,Layer Name,Control\n"))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(controls) != 0 {
		t.Errorf("got %d controls, want 0", len(controls))
	}
}

func TestRead_MissingColumnsDefaultEmpty(t *testing.T) {
	csv := "Layer #,Control\n3,Signed releases\n"
	controls, err := Read(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(controls) != 1 {
		t.Fatalf("got %d controls, want 1", len(controls))
	}
	c := controls[0]
	if c.LayerNumber != "3" || c.Description != "Signed releases" {
		t.Errorf("parsed cells wrong: %+v", c)
	}
	if c.LayerName != "" || c.ArtifactSpec != "" || c.Evidence != "" {
		t.Errorf("absent columns should be empty strings: %+v", c)
	}
}

func TestRead_RaggedRow(t *testing.T) {
	csv := "Layer #,Layer Name,Control,Policy/Config Artifact\n7,Network,mTLS everywhere\n"
	controls, err := Read(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if controls[0].ArtifactSpec != "" {
		t.Errorf("short row artifact = %q, want empty", controls[0].ArtifactSpec)
	}
}

func TestRead_BOMHeader(t *testing.T) {
	csv := "\ufeffLayer #,Control\n2,Threat model current\n"
	controls, err := Read(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if controls[0].LayerNumber != "2" {
		t.Errorf("BOM header not handled: LayerNumber = %q", controls[0].LayerNumber)
	}
}
