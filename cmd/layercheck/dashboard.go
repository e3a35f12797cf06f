package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/layercheck/layercheck/internal/audit"
	"github.com/layercheck/layercheck/internal/config"
	"github.com/layercheck/layercheck/internal/report"
)

var skipAudit bool

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Run the assessment plus external audits and write the dashboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		fmt.Println("Generating security dashboard...")

		external := collectAudits(cmd.Context(), cfg)

		summary, assessments, err := runAssessment(cfg)
		if err != nil {
			return err
		}

		if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}

		htmlPath := filepath.Join(cfg.OutputDir, report.DashboardHTMLName)
		if err := report.WriteHTML(htmlPath, summary, external); err != nil {
			return err
		}
		jsonPath := filepath.Join(cfg.OutputDir, report.DashboardJSONName)
		if err := report.WriteDashboardJSON(jsonPath, summary, external); err != nil {
			return err
		}

		fmt.Println("Security dashboard generated successfully!")
		fmt.Printf("- %s\n", htmlPath)
		fmt.Printf("- %s\n", jsonPath)

		fmt.Println("\nDashboard Summary:")
		fmt.Printf("Compliance Rate: %.1f%%\n", summary.ComplianceRate)
		fmt.Printf("Implemented Controls: %d/%d\n", summary.Implemented, summary.TotalControls)
		fmt.Printf("Missing Controls: %d\n", summary.Missing)
		fmt.Printf("Critical Vulnerabilities: %s\n", criticalVulns(external))
		return nil
	},
}

// collectAudits runs the external audit tools unless disabled. A nil
// return means no collection happened at all.
func collectAudits(ctx context.Context, cfg *config.Config) *audit.Metrics {
	if skipAudit || !cfg.Audit.Enabled {
		vlog("skipping external audits")
		return nil
	}
	vlog("collecting external audit metrics (timeout %s)", cfg.Timeout())
	runner := audit.NewRunner(
		audit.WithTimeout(cfg.Timeout()),
		audit.WithDir(cfg.Audit.Dir),
	)
	metrics := runner.Collect(ctx, audit.DefaultTools()...)
	for _, result := range metrics.Results {
		if !result.Available {
			logger.Printf("%s unavailable: %s (%s)", result.Tool, result.Reason, result.Detail)
		}
	}
	return &metrics
}

// criticalVulns renders the critical vulnerability count for the console
// summary; a tool that did not run is never reported as zero findings.
func criticalVulns(external *audit.Metrics) string {
	if external == nil {
		return "N/A (not collected)"
	}
	result, ok := external.Lookup(audit.ToolCargoAudit)
	if !ok || !result.Available {
		if !ok {
			return "N/A (not collected)"
		}
		return fmt.Sprintf("N/A (%s)", result.Reason)
	}
	critical, _ := result.Metric(audit.MetricCritical)
	return fmt.Sprintf("%d", critical)
}

func init() {
	dashboardCmd.Flags().BoolVar(&skipAudit, "skip-audit", false, "skip running external audit tools")
	rootCmd.AddCommand(dashboardCmd)
}
