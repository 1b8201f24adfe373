package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/skit-sh/skit/config"
	"github.com/skit-sh/skit/internal/pipeline"

	"github.com/spf13/cobra"
)

func ListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List script modules in this project",
		Long:  "Show every script source in the scripts directory and whether its wrapper has been built",
		RunE:  runList,
	}
}

func runList(cmd *cobra.Command, args []string) error {
	if err := handleWorkDir(); err != nil {
		return err
	}

	cfg, err := config.LoadConfigQuiet()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	entries, err := os.ReadDir(cfg.ScriptsDir)
	if err != nil {
		return fmt.Errorf("failed to read scripts directory %s: %w", cfg.ScriptsDir, err)
	}

	fmt.Printf("📋 Scripts in %s:\n", cfg.ScriptsDir)

	found := 0
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, cfg.Extension) {
			continue
		}
		// Leftover probe/harness temps are not scripts
		if strings.Contains(name, ".probe") || strings.Contains(name, ".harness") {
			continue
		}

		// Best-effort guess: a script can override its display name, which
		// changes the artifact slug.
		module := strings.TrimSuffix(name, cfg.Extension)
		slug := pipeline.DefaultSlug(module)

		status := " "
		if _, err := os.Stat(filepath.Join(cfg.ScanDir, slug+".js")); err == nil {
			status = "✅"
		}

		fmt.Printf("  %s %s (%s)\n", status, module, slug)
		found++
	}

	if found == 0 {
		fmt.Println("  (none - run 'skit new' to create one)")
	}

	return nil
}
