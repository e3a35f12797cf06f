package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/layercheck/layercheck/internal/report"
)

var (
	exportFormat string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Run the assessment and export it in a chosen format",
	Long: `Export runs the assessment and writes a single artifact in the given
format: text, json, html, csv, markdown, or sqlite.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		format, err := report.ParseFormat(exportFormat)
		if err != nil {
			return err
		}

		summary, assessments, err := runAssessment(cfg)
		if err != nil {
			return err
		}

		external := collectAudits(cmd.Context(), cfg)

		out := exportOut
		if out == "" {
			out = filepath.Join(cfg.OutputDir, report.DefaultExportName(format))
		}
		if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
		if err := report.Write(format, out, summary, assessments, external); err != nil {
			return err
		}

		fmt.Printf("Exported %s report to %s\n", format, out)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "export format (text, json, html, csv, markdown, sqlite)")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output path (default: timestamped file in the output dir)")
	exportCmd.Flags().BoolVar(&skipAudit, "skip-audit", false, "skip running external audit tools")
	rootCmd.AddCommand(exportCmd)
}
