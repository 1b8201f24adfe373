package pipeline

import (
	"encoding/json"
	"fmt"
)

// ScriptMetadata describes a user script as declared by its definition.
// It is computed fresh on every build and never persisted beyond the
// transient probe output.
type ScriptMetadata struct {
	Name        string `json:"name"`
	Slug        string `json:"-"`
	Description string `json:"description"`
	Shortcut    string `json:"shortcut"`
}

// ParseMetadata decodes the probe's JSON output and derives the slug.
// A script that does not declare a name is rejected.
func ParseMetadata(data []byte) (ScriptMetadata, error) {
	var meta ScriptMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return ScriptMetadata{}, fmt.Errorf("script metadata is not valid JSON: %w", err)
	}

	if meta.Name == "" {
		return ScriptMetadata{}, fmt.Errorf("script does not declare a name; export a definition with a 'name' field")
	}

	meta.Slug = Slugify(meta.Name)
	return meta, nil
}
