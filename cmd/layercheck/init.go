package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/layercheck/layercheck/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a layercheck configuration interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("%s already exists; remove it first or pass --config", configPath)
		}

		scanner := bufio.NewScanner(os.Stdin)
		ask := func(label, def string) string {
			fmt.Printf("%s [%s] > ", label, def)
			if !scanner.Scan() {
				return def
			}
			answer := strings.TrimSpace(scanner.Text())
			if answer == "" {
				return def
			}
			return answer
		}

		fmt.Println("layercheck setup")
		fmt.Println("----------------")

		cfg := config.NewDefaultConfig()
		cfg.Checklist = ask("Checklist CSV path", cfg.Checklist)
		cfg.Root = ask("Artifact root directory", cfg.Root)
		cfg.OutputDir = ask("Report output directory", cfg.OutputDir)

		audits := ask("Run external audit tools (cargo-audit, cargo-deny)? (y/n)", "y")
		cfg.Audit.Enabled = !strings.HasPrefix(strings.ToLower(audits), "n")

		if err := cfg.Validate(); err != nil {
			return err
		}
		if err := config.WriteConfig(configPath, cfg); err != nil {
			return err
		}

		fmt.Println("----------------")
		fmt.Printf("Wrote %s\n", configPath)
		fmt.Println("Run 'layercheck doctor' to verify the environment, then 'layercheck assess'.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
