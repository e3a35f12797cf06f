package main

import (
	"errors"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/layercheck/layercheck/internal/checklist"
	"github.com/layercheck/layercheck/internal/compliance"
	"github.com/layercheck/layercheck/internal/config"
)

var (
	configPath    string
	flagChecklist string
	flagRoot      string
	flagOutputDir string
	verbose       bool
)

var logger = log.New(os.Stderr, "[layercheck] ", log.LstdFlags)

var rootCmd = &cobra.Command{
	Use:   "layercheck",
	Short: "Layered security compliance assessment",
	Long: `Layercheck walks a layered security control checklist, checks each
control's evidence artifact against the repository tree, and reports
per-layer and overall compliance alongside external audit findings.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "path to the layercheck config file")
	rootCmd.PersistentFlags().StringVar(&flagChecklist, "checklist", "", "checklist CSV path (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagRoot, "root", "", "artifact root directory (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagOutputDir, "output-dir", "", "report output directory (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
}

// loadConfig reads the config file and applies flag overrides. A missing
// file at the default path is not an error; defaults apply.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && configPath == config.DefaultPath {
			cfg = config.NewDefaultConfig()
		} else {
			return nil, err
		}
	}
	if flagChecklist != "" {
		cfg.Checklist = flagChecklist
	}
	if flagRoot != "" {
		cfg.Root = flagRoot
	}
	if flagOutputDir != "" {
		cfg.OutputDir = flagOutputDir
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// runAssessment loads the checklist and assesses every control.
func runAssessment(cfg *config.Config) (compliance.Summary, []compliance.Assessment, error) {
	controls, err := checklist.Load(cfg.Checklist)
	if err != nil {
		return compliance.Summary{}, nil, err
	}
	vlog("loaded %d controls from %s", len(controls), cfg.Checklist)

	assessor := compliance.NewAssessor(compliance.NewPathResolver(cfg.Root))
	assessments := assessor.AssessAll(controls)
	summary := compliance.Summarize(assessments)
	vlog("assessed %d controls: %d implemented, %d missing, %d not applicable, %d unknown",
		summary.TotalControls, summary.Implemented, summary.Missing, summary.NotApplicable, summary.Unknown)

	return summary, assessments, nil
}

func vlog(format string, args ...any) {
	if verbose {
		logger.Printf(format, args...)
	}
}
