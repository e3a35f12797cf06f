package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/layercheck/layercheck/internal/compliance"
)

// WriteCSV writes the per-control assessment results as a CSV file.
// A UTF-8 BOM is prepended so spreadsheet tools detect the encoding.
func WriteCSV(path string, assessments []compliance.Assessment) error {
	return writeAtomic(path, func(w io.Writer) error {
		if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return err
		}
		cw := csv.NewWriter(w)
		header := []string{
			"Layer #", "Layer Name", "Control Group", "Control",
			"Status", "Reason", "Artifact", "Component", "Test Category",
			"Metric/KPI", "Evidence",
		}
		if err := cw.Write(header); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
		for _, a := range assessments {
			row := []string{
				a.LayerNumber, a.LayerName, a.Group, a.Description,
				string(a.Status), a.Reason, a.ArtifactSpec, a.Component,
				a.TestCategory, a.MetricKPI, a.Evidence,
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("write row: %w", err)
			}
		}
		cw.Flush()
		return cw.Error()
	})
}
