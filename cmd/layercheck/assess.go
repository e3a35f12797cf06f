package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/layercheck/layercheck/internal/report"
)

var assessCmd = &cobra.Command{
	Use:   "assess",
	Short: "Run the compliance assessment and write reports",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		summary, assessments, err := runAssessment(cfg)
		if err != nil {
			return err
		}

		fmt.Print(report.Text(summary, assessments))

		if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}

		textPath := filepath.Join(cfg.OutputDir, report.TextReportName)
		if err := report.WriteText(textPath, summary, assessments); err != nil {
			return err
		}
		jsonPath := filepath.Join(cfg.OutputDir, report.JSONReportName)
		if err := report.WriteJSON(jsonPath, summary, assessments); err != nil {
			return err
		}
		saved := []string{textPath, jsonPath}

		// Extra formats configured under reports.formats.
		for _, name := range cfg.Reports.Formats {
			format, err := report.ParseFormat(name)
			if err != nil {
				return err
			}
			if format == report.FormatText || format == report.FormatJSON {
				continue
			}
			path := extraReportPath(cfg.OutputDir, format)
			if err := report.Write(format, path, summary, assessments, nil); err != nil {
				return err
			}
			saved = append(saved, path)
		}

		fmt.Println("\nReports saved:")
		for _, path := range saved {
			fmt.Printf("- %s\n", path)
		}
		return nil
	},
}

// extraReportPath names a configured extra report inside the output dir.
func extraReportPath(dir string, format report.Format) string {
	if format == report.FormatHTML {
		return filepath.Join(dir, report.DashboardHTMLName)
	}
	return filepath.Join(dir, "security-compliance-report"+format.Extension())
}

func init() {
	rootCmd.AddCommand(assessCmd)
}
