package templates

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/skit-sh/skit/templates"
)

// Data contains the values passed to templates
type Data struct {
	ModuleName    string
	Name          string
	Slug          string
	Description   string
	Shortcut      string
	RuntimeImport string
	MetadataPath  string
	Quiet         bool
}

// Render executes a named template from the embedded filesystem
func Render(name string, data Data) ([]byte, error) {
	content, err := templates.TemplatesFS.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read template %s: %w", name, err)
	}

	tmpl, err := template.New(name).Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute template %s: %w", name, err)
	}

	return buf.Bytes(), nil
}

// RenderToFile renders a named template and writes the result to outputPath,
// creating parent directories as needed
func RenderToFile(name, outputPath string, data Data) error {
	content, err := Render(name, data)
	if err != nil {
		return err
	}

	outputDir := filepath.Dir(outputPath)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", outputDir, err)
	}

	if err := os.WriteFile(outputPath, content, 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", outputPath, err)
	}

	return nil
}

// ListTemplates returns all available template files
func ListTemplates() ([]string, error) {
	var templateFiles []string

	err := fs.WalkDir(templates.TemplatesFS, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() && strings.HasSuffix(d.Name(), ".tmpl") {
			templateFiles = append(templateFiles, path)
		}

		return nil
	})

	return templateFiles, err
}
