package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/skit-sh/skit/config"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func ConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage project configuration",
		Long:  "Validate, view, and manage your SKit project configuration",
	}

	cmd.AddCommand(configValidateCmd())
	cmd.AddCommand(configShowCmd())
	cmd.AddCommand(configInitCmd())

	return cmd
}

func configValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [config-file]",
		Short: "Validate configuration file",
		Long:  "Validate the syntax and structure of a SKit configuration file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runConfigValidate,
	}
}

func configShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [config-file]",
		Short: "Show configuration information",
		Long:  "Display detailed information about the current configuration",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runConfigShow,
	}

	cmd.Flags().Bool("verbose", false, "Show detailed configuration breakdown")

	return cmd
}

func configInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new configuration file",
		Long:  "Create a new skit.yaml configuration file with default values",
		RunE:  runConfigInit,
	}

	cmd.Flags().Bool("force", false, "Overwrite existing configuration file")
	cmd.Flags().String("name", "", "Project name (default: current directory name)")

	return cmd
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	if err := handleWorkDir(); err != nil {
		return err
	}

	configPath := getConfigPath(args)

	fmt.Printf("🔍 Validating configuration file: %s\n", configPath)

	if err := config.ValidateConfigFile(configPath); err != nil {
		fmt.Printf("❌ Configuration validation failed:\n%v\n", err)
		return err
	}

	fmt.Printf("✅ Configuration is valid!\n")

	// Show summary
	info, err := config.GetConfigInfo(configPath)
	if err == nil {
		fmt.Printf("\n%s\n", info.String())
	}

	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	if err := handleWorkDir(); err != nil {
		return err
	}

	configPath := getConfigPath(args)
	verbose, _ := cmd.Flags().GetBool("verbose")

	info, err := config.GetConfigInfo(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	fmt.Printf("%s\n", info.String())

	if verbose {
		fmt.Printf("\n📝 Detailed Configuration:\n")

		cm := config.NewConfigManager(config.DefaultLoadOptions())
		cfg, err := cm.LoadConfigFromPath(configPath)
		if err != nil {
			return fmt.Errorf("failed to load full configuration: %w", err)
		}

		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to marshal configuration: %w", err)
		}

		fmt.Printf("```yaml\n%s```\n", string(data))
	}

	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	if err := handleWorkDir(); err != nil {
		return err
	}

	force, _ := cmd.Flags().GetBool("force")
	projectName, _ := cmd.Flags().GetString("name")

	configPath := "skit.yaml"

	// Check if file exists
	if !force {
		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("configuration file already exists: %s\nUse --force to overwrite", configPath)
		}
	}

	// Get project name from directory if not provided
	if projectName == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}
		projectName = filepath.Base(wd)
	}

	cfg := &config.ProjectConfig{
		Name:          projectName,
		ScriptsDir:    "src",
		ScanDir:       "..",
		Extension:     ".ts",
		RuntimeImport: "@kit/api",
		StoreDir:      "db",
		Bundler: config.BundlerConfig{
			RunCmd:    "npx tsx {{script}}",
			BundleCmd: "npx esbuild {{entry}} --bundle --format=esm --outfile={{output}}",
			Exclude:   []string{"@kit/api"},
			Quiet:     true,
		},
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}

	fmt.Printf("✅ Created configuration file: %s\n", configPath)
	fmt.Printf("   Project: %s\n", projectName)

	return nil
}

func getConfigPath(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "skit.yaml"
}
