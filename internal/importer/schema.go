package importer

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ImportSchema is the top-level structure of a session import file. JSON
// files are accepted too, since JSON is valid YAML.
type ImportSchema struct {
	Defaults *DefaultsImport `yaml:"defaults,omitempty"`
	Sessions []SessionImport `yaml:"sessions"`
}

// DefaultsImport fills fields that a session entry leaves empty.
type DefaultsImport struct {
	Language string `yaml:"language,omitempty"`
	Type     string `yaml:"type,omitempty"`
	Status   string `yaml:"status,omitempty"`
}

// SessionImport is one logged session. Item is a work item name, resolved
// the same way as `session log --name`.
type SessionImport struct {
	Item       string   `yaml:"item"`
	Language   string   `yaml:"language,omitempty"`
	Type       string   `yaml:"type,omitempty"`
	New        bool     `yaml:"new,omitempty"`
	Date       string   `yaml:"date"`
	Hours      *float64 `yaml:"hours"`
	Status     string   `yaml:"status,omitempty"`
	Notes      string   `yaml:"notes,omitempty"`
	Tags       []string `yaml:"tags,omitempty"`
	Difficulty string   `yaml:"difficulty,omitempty"`
	Topic      string   `yaml:"topic,omitempty"`
}

// LoadImportSchema reads and parses an import file. Unknown fields are
// rejected so typos do not silently drop data.
func LoadImportSchema(path string) (*ImportSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseImportSchema(data)
}

func ParseImportSchema(data []byte) (*ImportSchema, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var schema ImportSchema
	if err := dec.Decode(&schema); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &schema, nil
}
