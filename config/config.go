package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("config validation error in field '%s': %s (value: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors represents multiple validation errors
type ValidationErrors []ValidationError

func (errs ValidationErrors) Error() string {
	if len(errs) == 0 {
		return "no validation errors"
	}

	var messages []string
	for _, err := range errs {
		messages = append(messages, err.Error())
	}
	return strings.Join(messages, "; ")
}

func (errs ValidationErrors) HasErrors() bool {
	return len(errs) > 0
}

// ConfigLoadOptions provides options for loading configuration
type ConfigLoadOptions struct {
	Path              string
	AllowMissing      bool
	ValidateStructure bool
	ApplyDefaults     bool
	WarnOnDeprecated  bool
	Quiet             bool
}

// DefaultLoadOptions returns sensible defaults for config loading
func DefaultLoadOptions() ConfigLoadOptions {
	return ConfigLoadOptions{
		Path:              "skit.yaml",
		AllowMissing:      false,
		ValidateStructure: true,
		ApplyDefaults:     true,
		WarnOnDeprecated:  true,
		Quiet:             false,
	}
}

// ConfigManager handles configuration loading, validation, and management
type ConfigManager struct {
	options ConfigLoadOptions
}

// NewConfigManager creates a new configuration manager
func NewConfigManager(options ConfigLoadOptions) *ConfigManager {
	return &ConfigManager{
		options: options,
	}
}

// LoadConfig loads and validates the configuration with comprehensive error handling
func (cm *ConfigManager) LoadConfig() (*ProjectConfig, error) {
	return cm.LoadConfigFromPath(cm.options.Path)
}

// LoadConfigFromPath loads configuration from a specific path
func (cm *ConfigManager) LoadConfigFromPath(path string) (*ProjectConfig, error) {
	// Check if file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if cm.options.AllowMissing {
			if !cm.options.Quiet {
				fmt.Printf("⚠️  Configuration file not found at %s, using defaults\n", path)
			}
			return cm.createDefaultConfig(), nil
		}
		return nil, fmt.Errorf("configuration file not found: %s\n\nAre you in a SKit project directory?\nRun 'skit config init' to create one", path)
	}

	// Read file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %s: %w", path, err)
	}

	// Parse YAML
	var config ProjectConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %s: %w\n\nPlease check your YAML syntax", path, err)
	}

	// Apply defaults if requested
	if cm.options.ApplyDefaults {
		cm.applyDefaults(&config)
	}

	// Validate structure if requested
	if cm.options.ValidateStructure {
		if errs := cm.validateConfig(&config); errs.HasErrors() {
			return nil, fmt.Errorf("configuration validation failed:\n%s", cm.formatValidationErrors(errs))
		}
	}

	// Check for deprecated fields and warn
	if cm.options.WarnOnDeprecated && !cm.options.Quiet {
		cm.checkDeprecatedFields(&config)
	}

	return &config, nil
}

// validateConfig performs comprehensive validation on the configuration
func (cm *ConfigManager) validateConfig(config *ProjectConfig) ValidationErrors {
	var errors ValidationErrors

	// Validate basic fields
	if config.Name == "" {
		errors = append(errors, ValidationError{
			Field:   "name",
			Value:   config.Name,
			Message: "project name cannot be empty",
		})
	}

	if config.ScriptsDir == "" {
		errors = append(errors, ValidationError{
			Field:   "scripts_dir",
			Value:   config.ScriptsDir,
			Message: "scripts directory cannot be empty",
		})
	}

	if config.ScanDir == "" {
		errors = append(errors, ValidationError{
			Field:   "scan_dir",
			Value:   config.ScanDir,
			Message: "scan directory cannot be empty",
		})
	}

	if !strings.HasPrefix(config.Extension, ".") {
		errors = append(errors, ValidationError{
			Field:   "extension",
			Value:   config.Extension,
			Message: "script extension must start with '.'",
		})
	}

	if config.RuntimeImport == "" {
		errors = append(errors, ValidationError{
			Field:   "runtime_import",
			Value:   config.RuntimeImport,
			Message: "runtime import cannot be empty",
		})
	}

	// Validate bundler configuration
	if !strings.Contains(config.Bundler.RunCmd, "{{script}}") {
		errors = append(errors, ValidationError{
			Field:   "bundler.run_cmd",
			Value:   config.Bundler.RunCmd,
			Message: "run command must contain the {{script}} placeholder",
		})
	}

	if !strings.Contains(config.Bundler.BundleCmd, "{{entry}}") || !strings.Contains(config.Bundler.BundleCmd, "{{output}}") {
		errors = append(errors, ValidationError{
			Field:   "bundler.bundle_cmd",
			Value:   config.Bundler.BundleCmd,
			Message: "bundle command must contain the {{entry}} and {{output}} placeholders",
		})
	}

	return errors
}

// applyDefaults sets default values for missing configuration fields
func (cm *ConfigManager) applyDefaults(config *ProjectConfig) {
	if config.ScriptsDir == "" {
		config.ScriptsDir = "src"
	}
	if config.ScanDir == "" {
		config.ScanDir = ".."
	}
	if config.Extension == "" {
		config.Extension = ".ts"
	}
	if config.RuntimeImport == "" {
		config.RuntimeImport = "@kit/api"
	}
	if config.StoreDir == "" {
		config.StoreDir = "db"
	}

	// Set default bundler configuration
	if config.Bundler.RunCmd == "" {
		config.Bundler.RunCmd = "npx tsx {{script}}"
	}
	if config.Bundler.BundleCmd == "" {
		config.Bundler.BundleCmd = "npx esbuild {{entry}} --bundle --format=esm --outfile={{output}}"
	}
	if config.Bundler.Exclude == nil {
		// The host runtime ships its own copy of the bindings package, so
		// bundles must not carry one.
		config.Bundler.Exclude = []string{config.RuntimeImport}
	}
}

// checkDeprecatedFields warns about deprecated configuration fields
func (cm *ConfigManager) checkDeprecatedFields(config *ProjectConfig) {
	if config.StoreSchema != "" {
		fmt.Printf("⚠️  Deprecated field 'store_schema' is no longer used\n")
		fmt.Printf("   Store records always use the single 'value' field layout now\n")
	}
}

// createDefaultConfig creates a default configuration when no config file exists
func (cm *ConfigManager) createDefaultConfig() *ProjectConfig {
	config := &ProjectConfig{
		Name:          "my-scripts",
		ScriptsDir:    "src",
		ScanDir:       "..",
		Extension:     ".ts",
		RuntimeImport: "@kit/api",
		StoreDir:      "db",
		Bundler: BundlerConfig{
			RunCmd:    "npx tsx {{script}}",
			BundleCmd: "npx esbuild {{entry}} --bundle --format=esm --outfile={{output}}",
			Exclude:   []string{"@kit/api"},
			Quiet:     true,
		},
	}

	return config
}

// formatValidationErrors formats validation errors in a user-friendly way
func (cm *ConfigManager) formatValidationErrors(errors ValidationErrors) string {
	var lines []string
	for i, err := range errors {
		lines = append(lines, fmt.Sprintf("  %d. %s", i+1, err.Error()))
	}
	return strings.Join(lines, "\n")
}

// ValidateConfigFile validates a configuration file without loading it fully
func ValidateConfigFile(path string) error {
	cm := NewConfigManager(ConfigLoadOptions{
		Path:              path,
		AllowMissing:      false,
		ValidateStructure: true,
		ApplyDefaults:     false,
		WarnOnDeprecated:  true,
		Quiet:             false,
	})

	_, err := cm.LoadConfigFromPath(path)
	return err
}

// GetConfigInfo returns information about the current configuration
func GetConfigInfo(path string) (*ConfigInfo, error) {
	cm := NewConfigManager(DefaultLoadOptions())
	config, err := cm.LoadConfigFromPath(path)
	if err != nil {
		return nil, err
	}

	absPath, _ := filepath.Abs(path)

	return &ConfigInfo{
		Path:          absPath,
		ProjectName:   config.Name,
		ScriptsDir:    config.ScriptsDir,
		ScanDir:       config.ScanDir,
		Extension:     config.Extension,
		RuntimeImport: config.RuntimeImport,
		StoreDir:      config.StoreDir,
		BundlerRun:    config.Bundler.RunCmd,
		BundlerBundle: config.Bundler.BundleCmd,
		Excluded:      len(config.Bundler.Exclude),
	}, nil
}

// ConfigInfo contains summary information about a configuration
type ConfigInfo struct {
	Path          string
	ProjectName   string
	ScriptsDir    string
	ScanDir       string
	Extension     string
	RuntimeImport string
	StoreDir      string
	BundlerRun    string
	BundlerBundle string
	Excluded      int
}

// String returns a formatted string representation of config info
func (info *ConfigInfo) String() string {
	var lines []string
	lines = append(lines, "📋 Configuration Summary")
	lines = append(lines, fmt.Sprintf("   Path: %s", info.Path))
	lines = append(lines, fmt.Sprintf("   Project: %s", info.ProjectName))
	lines = append(lines, fmt.Sprintf("   Scripts: %s (%s)", info.ScriptsDir, info.Extension))
	lines = append(lines, fmt.Sprintf("   Scan Directory: %s", info.ScanDir))
	lines = append(lines, fmt.Sprintf("   Runtime Import: %s", info.RuntimeImport))
	lines = append(lines, fmt.Sprintf("   Store: %s", info.StoreDir))
	lines = append(lines, fmt.Sprintf("   Bundler Run: %s", info.BundlerRun))
	lines = append(lines, fmt.Sprintf("   Bundler Bundle: %s (%d excluded deps)", info.BundlerBundle, info.Excluded))

	return strings.Join(lines, "\n")
}

// Convenience functions for common use cases

// LoadConfig loads configuration using default options
func LoadConfig() (*ProjectConfig, error) {
	cm := NewConfigManager(DefaultLoadOptions())
	return cm.LoadConfig()
}

// LoadConfigQuiet loads configuration without warnings or messages
func LoadConfigQuiet() (*ProjectConfig, error) {
	options := DefaultLoadOptions()
	options.Quiet = true
	options.WarnOnDeprecated = false

	cm := NewConfigManager(options)
	return cm.LoadConfig()
}

// LoadConfigWithDefaults loads configuration, creating defaults if missing
func LoadConfigWithDefaults() (*ProjectConfig, error) {
	options := DefaultLoadOptions()
	options.AllowMissing = true

	cm := NewConfigManager(options)
	return cm.LoadConfig()
}

// ProjectConfig describes a SKit script project
type ProjectConfig struct {
	Name          string        `yaml:"name"`
	ScriptsDir    string        `yaml:"scripts_dir"`
	ScanDir       string        `yaml:"scan_dir"`
	Extension     string        `yaml:"extension"`
	RuntimeImport string        `yaml:"runtime_import"`
	StoreDir      string        `yaml:"store_dir"`
	Bundler       BundlerConfig `yaml:"bundler"`

	// StoreSchema selected between the legacy 'tracks' layout and the
	// current 'value' layout. Deprecated: only 'value' is supported.
	StoreSchema string `yaml:"store_schema,omitempty"`
}

// BundlerConfig describes how the external bundler is invoked
type BundlerConfig struct {
	RunCmd    string   `yaml:"run_cmd"`    // executes a module directly, used for the metadata probe
	BundleCmd string   `yaml:"bundle_cmd"` // produces the bundle artifact
	Exclude   []string `yaml:"exclude"`    // dependencies the host runtime already provides
	Quiet     bool     `yaml:"quiet"`      // suppress bundler output unless it fails
}
