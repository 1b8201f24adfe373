package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/skit-sh/skit/cmd"
)

var version = "0.1.0"

func main() {
	// Handle working directory for development mode
	if workDir := os.Getenv("SKIT_WORK_DIR"); workDir != "" {
		if err := os.Chdir(workDir); err != nil {
			fmt.Fprintf(os.Stderr, "Error: Failed to change to work directory %s: %v\n", workDir, err)
			os.Exit(1)
		}
	}

	rootCmd := &cobra.Command{
		Use:     "skit",
		Short:   "SKit - script starter kit for the desktop automation host",
		Long:    `SKit scaffolds user scripts, extracts their metadata and bundles them into the wrapper + bundle pair the host's script scanner consumes.`,
		Version: version,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("🚀 SKit CLI v" + version)
			fmt.Println("Run 'skit --help' for available commands")
		},
	}

	// Add commands
	rootCmd.AddCommand(cmd.BuildCmd())
	rootCmd.AddCommand(cmd.NewCmd())
	rootCmd.AddCommand(cmd.DevCmd())
	rootCmd.AddCommand(cmd.ListCmd())
	rootCmd.AddCommand(cmd.ConfigCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
