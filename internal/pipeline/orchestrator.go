package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/skit-sh/skit/config"
	"github.com/skit-sh/skit/internal/templates"
)

// Orchestrator runs the fixed build sequence for a single script module:
// extract metadata, generate the wrapper, generate the harness, bundle,
// clean up. Repeated runs are idempotent overwrites.
type Orchestrator struct {
	config *config.ProjectConfig
	runner Runner
	debug  bool
	temps  []string
}

// NewOrchestrator creates a build orchestrator. A nil runner gets the
// default shell runner honoring the bundler's quiet setting.
func NewOrchestrator(cfg *config.ProjectConfig, runner Runner, debug bool) *Orchestrator {
	if runner == nil {
		runner = ShellRunner{Quiet: cfg.Bundler.Quiet}
	}
	return &Orchestrator{
		config: cfg,
		runner: runner,
		debug:  debug,
	}
}

func (o *Orchestrator) log(message, color string) {
	timestamp := time.Now().Format("15:04:05")
	if color == "" {
		color = "\x1b[0m"
	}
	fmt.Printf("%s[%s] %s\x1b[0m\n", color, timestamp, message)
}

// SourcePath returns the path of a module's script source file.
func (o *Orchestrator) SourcePath(module string) string {
	return filepath.Join(o.config.ScriptsDir, module+o.config.Extension)
}

// Exists reports whether the module's source file is present.
func (o *Orchestrator) Exists(module string) bool {
	_, err := os.Stat(o.SourcePath(module))
	return err == nil
}

// Build runs the full pipeline for a module. A missing module is scaffolded
// instead; editing it and running build again produces the artifacts.
func (o *Orchestrator) Build(module string) error {
	if !o.Exists(module) {
		o.log(fmt.Sprintf("📦 %s not found, scaffolding it...", module), "\x1b[33m")

		if err := o.Scaffold(module, ScriptMetadata{}); err != nil {
			return err
		}

		o.log(fmt.Sprintf("✅ Scaffolded %s", o.SourcePath(module)), "\x1b[32m")
		o.log("💡 Edit the script and run build again to bundle it", "\x1b[36m")
		return nil
	}

	// Temp files are removed on every exit path, including failures.
	defer o.Cleanup()

	o.log(fmt.Sprintf("🚀 Building %s...", module), "\x1b[32m")

	meta, err := o.ExtractMetadata(module)
	if err != nil {
		return err
	}
	if o.debug {
		o.log(fmt.Sprintf("Metadata: name=%q slug=%q", meta.Name, meta.Slug), "\x1b[36m")
	}

	if err := o.GenerateWrapper(meta); err != nil {
		return err
	}

	harness, err := o.GenerateHarness(module)
	if err != nil {
		return err
	}

	if err := o.Bundle(harness, meta.Slug); err != nil {
		return err
	}

	o.log(fmt.Sprintf("🎉 Built %s → %s", module, filepath.Join(o.config.ScanDir, meta.Slug+".js")), "\x1b[32m")
	return nil
}

// Scaffold writes a new script source from the embedded template plus a
// placeholder wrapper. It refuses to overwrite an existing source.
func (o *Orchestrator) Scaffold(module string, meta ScriptMetadata) error {
	if o.Exists(module) {
		return fmt.Errorf("script %s already exists at %s", module, o.SourcePath(module))
	}

	if meta.Name == "" {
		meta.Name = humanize(module)
	}
	meta.Slug = Slugify(meta.Name)

	data := templates.Data{
		ModuleName:    module,
		Name:          meta.Name,
		Slug:          meta.Slug,
		Description:   meta.Description,
		Shortcut:      meta.Shortcut,
		RuntimeImport: o.config.RuntimeImport,
	}

	if err := templates.RenderToFile("script.tmpl", o.SourcePath(module), data); err != nil {
		return fmt.Errorf("failed to scaffold script: %w", err)
	}

	// Placeholder wrapper so the host lists the script before its first real
	// build.
	if err := o.GenerateWrapper(meta); err != nil {
		return err
	}

	return nil
}

// ExtractMetadata writes a temporary probe module that imports the user
// script and serializes its declared name/description/shortcut, runs it
// through the bundler's run command, and reads the result back.
func (o *Orchestrator) ExtractMetadata(module string) (ScriptMetadata, error) {
	o.log("🔍 Extracting script metadata...", "\x1b[36m")

	probePath := filepath.Join(o.config.ScriptsDir, module+".probe"+o.config.Extension)
	metaPath := filepath.Join(o.config.ScriptsDir, module+".metadata.json")
	o.track(probePath)
	o.track(metaPath)

	data := templates.Data{
		ModuleName:   module,
		MetadataPath: filepath.ToSlash(metaPath),
	}
	if err := templates.RenderToFile("probe.tmpl", probePath, data); err != nil {
		return ScriptMetadata{}, fmt.Errorf("failed to write metadata probe: %w", err)
	}

	command := strings.ReplaceAll(o.config.Bundler.RunCmd, "{{script}}", probePath)
	if err := o.runner.Run(command, ""); err != nil {
		return ScriptMetadata{}, fmt.Errorf("metadata probe failed for %s: %w", module, err)
	}

	raw, err := os.ReadFile(metaPath)
	if err != nil {
		return ScriptMetadata{}, fmt.Errorf("probe produced no metadata file: %w", err)
	}

	meta, err := ParseMetadata(raw)
	if err != nil {
		return ScriptMetadata{}, fmt.Errorf("invalid metadata for %s: %w", module, err)
	}

	return meta, nil
}

// GenerateWrapper renders the scanner-facing wrapper file for the script.
// The wrapper carries only the header comments, one initialization import
// and one dynamic import of the sibling bundle; the host's synchronous
// directory scan hangs on anything more.
func (o *Orchestrator) GenerateWrapper(meta ScriptMetadata) error {
	data := templates.Data{
		Name:          meta.Name,
		Slug:          meta.Slug,
		Description:   meta.Description,
		Shortcut:      meta.Shortcut,
		RuntimeImport: o.config.RuntimeImport,
	}

	wrapperPath := filepath.Join(o.config.ScanDir, meta.Slug+".js")
	if err := templates.RenderToFile("wrapper.tmpl", wrapperPath, data); err != nil {
		return fmt.Errorf("failed to write wrapper: %w", err)
	}

	return nil
}

// GenerateHarness writes the temporary bundle entry that wraps the user
// module for the bundler's quiet execution mode. Returns the harness path.
func (o *Orchestrator) GenerateHarness(module string) (string, error) {
	harnessPath := filepath.Join(o.config.ScriptsDir, module+".harness"+o.config.Extension)
	o.track(harnessPath)

	data := templates.Data{
		ModuleName:    module,
		RuntimeImport: o.config.RuntimeImport,
		Quiet:         o.config.Bundler.Quiet,
	}
	if err := templates.RenderToFile("harness.tmpl", harnessPath, data); err != nil {
		return "", fmt.Errorf("failed to write harness: %w", err)
	}

	return harnessPath, nil
}

// Bundle invokes the bundler on the harness entry, excluding the
// dependencies the host runtime already provides.
func (o *Orchestrator) Bundle(entry, slug string) error {
	o.log("📦 Bundling...", "\x1b[36m")

	outputPath := filepath.Join(o.config.ScanDir, slug+".mjs")

	command := strings.ReplaceAll(o.config.Bundler.BundleCmd, "{{entry}}", entry)
	command = strings.ReplaceAll(command, "{{output}}", outputPath)
	for _, dep := range o.config.Bundler.Exclude {
		command += " --external:" + dep
	}

	if err := o.runner.Run(command, ""); err != nil {
		return fmt.Errorf("bundling failed: %w", err)
	}

	return nil
}

// Cleanup removes every temp file recorded so far. Best effort: a file that
// was never created or cannot be removed only produces a warning.
func (o *Orchestrator) Cleanup() {
	for _, path := range o.temps {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			o.log(fmt.Sprintf("⚠️  Warning: Could not remove %s: %v", path, err), "\x1b[33m")
		}
	}
	o.temps = nil
}

func (o *Orchestrator) track(path string) {
	o.temps = append(o.temps, path)
}

// humanize turns a module name like "JazzStandards" or "jazz_standards"
// into a display name like "Jazz Standards".
func humanize(module string) string {
	var b strings.Builder
	prev := rune(0)

	for _, r := range module {
		switch {
		case r == '_' || r == '-':
			b.WriteByte(' ')
		case r >= 'A' && r <= 'Z' && prev != 0 && prev != ' ' && !(prev >= 'A' && prev <= 'Z'):
			b.WriteByte(' ')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
		prev = r
	}

	s := strings.TrimSpace(b.String())
	if s == "" {
		return module
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
