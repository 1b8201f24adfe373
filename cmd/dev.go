package cmd

import (
	"fmt"

	"github.com/skit-sh/skit/config"
	"github.com/skit-sh/skit/internal/dev"

	"github.com/spf13/cobra"
)

func DevCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dev <ModuleName>",
		Short: "Rebuild a script on every save",
		Long:  "Watch a script's source file and rerun the build pipeline whenever it changes",
		Args:  cobra.ExactArgs(1),
		RunE:  runDev,
	}

	cmd.Flags().Bool("debug", false, "Enable debug logging")

	return cmd
}

func runDev(cmd *cobra.Command, args []string) error {
	debug, _ := cmd.Flags().GetBool("debug")

	if err := handleWorkDir(); err != nil {
		return err
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	orchestrator := dev.NewOrchestrator(cfg, args[0], debug)
	return orchestrator.Start()
}
