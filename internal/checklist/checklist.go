// Package checklist loads the security layers checklist from its CSV form
// into control records for assessment.
package checklist

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/layercheck/layercheck/internal/compliance"
)

// Column headers as they appear in security_layers_checklist.csv. Lookup is
// by name so column order and extra columns do not matter.
const (
	colLayerNumber  = "Layer #"
	colLayerName    = "Layer Name"
	colGroup        = "Control Group"
	colControl      = "Control"
	colArtifact     = "Policy/Config Artifact"
	colComponent    = "Component (Rust/K8s/Web3)"
	colTestCategory = "Test Category"
	colMetricKPI    = "Metric/KPI"
	colEvidence     = "Evidence to Store"
)

// DefaultFile is the conventional checklist filename.
const DefaultFile = "security_layers_checklist.csv"

// Load reads the checklist CSV at path. Row order is preserved. Cells for
// absent columns default to the empty string; an empty file yields zero
// controls. Open and parse failures are returned to the caller, which is
// expected to treat them as fatal.
func Load(path string) ([]compliance.Control, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open checklist: %w", err)
	}
	defer f.Close()

	controls, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("read checklist %s: %w", path, err)
	}
	return controls, nil
}

// Read parses checklist CSV content from r.
func Read(r io.Reader) ([]compliance.Control, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // tolerate ragged rows
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("parse header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	cell := func(row []string, column string) string {
		i, ok := index[column]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var controls []compliance.Control
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse row %d: %w", len(controls)+2, err)
		}
		controls = append(controls, compliance.Control{
			LayerNumber:  cell(row, colLayerNumber),
			LayerName:    cell(row, colLayerName),
			Group:        cell(row, colGroup),
			Description:  cell(row, colControl),
			ArtifactSpec: cell(row, colArtifact),
			Component:    cell(row, colComponent),
			TestCategory: cell(row, colTestCategory),
			MetricKPI:    cell(row, colMetricKPI),
			Evidence:     cell(row, colEvidence),
		})
	}
	return controls, nil
}
