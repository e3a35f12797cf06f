package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/layercheck/layercheck/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse assessment results interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		summary, assessments, err := runAssessment(cfg)
		if err != nil {
			return err
		}
		external := collectAudits(cmd.Context(), cfg)

		p := tea.NewProgram(tui.New(summary, assessments, external), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("run tui: %w", err)
		}
		return nil
	},
}

func init() {
	tuiCmd.Flags().BoolVar(&skipAudit, "skip-audit", false, "skip running external audit tools")
	rootCmd.AddCommand(tuiCmd)
}
