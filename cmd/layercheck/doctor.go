package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/layercheck/layercheck/internal/doctor"
	"github.com/layercheck/layercheck/pkg/buildinfo"
)

var doctorJSON bool

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the environment before running an assessment",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		fmt.Fprintf(os.Stderr, "%s\n", buildinfo.String())
		fmt.Fprintf(os.Stderr, "Running preflight checks...\n\n")

		rep, checkErr := doctor.GenerateReport(buildinfo.Version, cfg)

		if doctorJSON {
			if err := doctor.PrintReport(rep); err != nil {
				return err
			}
			return checkErr
		}

		for _, r := range rep.Results {
			fmt.Printf(" %s %-26s %s\n", checkMarker(r.Status), r.Name, r.Message)
			if r.Remediation != "" {
				fmt.Printf("     hint: %s\n", r.Remediation)
			}
		}
		fmt.Printf("\n%d passed, %d failed, %d warnings, %d skipped\n",
			rep.Summary.Passed, rep.Summary.Failed, rep.Summary.Warnings, rep.Summary.Skipped)

		return checkErr
	},
}

func checkMarker(s doctor.Status) string {
	switch s {
	case doctor.StatusPass:
		return "✓"
	case doctor.StatusFail:
		return "✗"
	case doctor.StatusWarn:
		return "!"
	default:
		return "-"
	}
}

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false, "output the report as JSON")
	rootCmd.AddCommand(doctorCmd)
}
