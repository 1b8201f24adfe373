package cmd

import (
	"fmt"
	"os"

	"github.com/skit-sh/skit/config"
	"github.com/skit-sh/skit/internal/pipeline"

	"github.com/spf13/cobra"
)

func BuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build <ModuleName>",
		Short: "Build a script into its wrapper and bundle",
		Long:  "Extract a script's metadata and produce the wrapper + bundle pair the host scanner consumes. A missing script is scaffolded instead.",
		Args:  cobra.ExactArgs(1),
		RunE:  runBuild,
	}

	cmd.Flags().Bool("debug", false, "Enable debug logging")

	return cmd
}

func runBuild(cmd *cobra.Command, args []string) error {
	debug, _ := cmd.Flags().GetBool("debug")

	if err := handleWorkDir(); err != nil {
		return err
	}

	// Load configuration using enhanced system
	cm := config.NewConfigManager(config.ConfigLoadOptions{
		Path:              "skit.yaml",
		AllowMissing:      false,
		ValidateStructure: true,
		ApplyDefaults:     true,
		WarnOnDeprecated:  false, // Don't show warnings during build
		Quiet:             false,
	})

	cfg, err := cm.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	orchestrator := pipeline.NewOrchestrator(cfg, nil, debug)
	return orchestrator.Build(args[0])
}

// handleWorkDir changes to the SKIT_WORK_DIR if set (for development mode)
func handleWorkDir() error {
	workDir := os.Getenv("SKIT_WORK_DIR")
	if workDir != "" {
		if err := os.Chdir(workDir); err != nil {
			return fmt.Errorf("failed to change to work directory %s: %w", workDir, err)
		}
	}
	return nil
}
