// Package registry loads table column definitions from a YAML schema
// registry. Streams without an in-memory dataset resolve their columns here.
package registry

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"spectrum-sync/internal/domain"
)

// Column defines one column of a registered table schema.
type Column struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// Table defines the registered schema for one stream.
type Table struct {
	Name    string   `yaml:"name"`
	Columns []Column `yaml:"columns"`
}

// document is the on-disk envelope of a registry file.
type document struct {
	Tables []Table `yaml:"tables"`
}

// Registry resolves column definition fragments by stream name.
type Registry struct {
	tables map[string]Table
}

// Load reads and parses a YAML schema registry file.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is caller-controlled
	if err != nil {
		return nil, fmt.Errorf("read schema registry %s: %w", path, err)
	}
	reg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return reg, nil
}

// Parse decodes a registry document. Unknown fields are rejected so typos in
// schema files fail loudly instead of silently dropping columns.
func Parse(data []byte) (*Registry, error) {
	var doc document
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse schema registry: %w", err)
	}

	reg := &Registry{tables: make(map[string]Table, len(doc.Tables))}
	for _, tbl := range doc.Tables {
		if tbl.Name == "" {
			return nil, domain.ErrValidation("schema registry: table with empty name")
		}
		if len(tbl.Columns) == 0 {
			return nil, domain.ErrValidation("schema registry: table %q has no columns", tbl.Name)
		}
		if _, dup := reg.tables[tbl.Name]; dup {
			return nil, domain.ErrValidation("schema registry: duplicate table %q", tbl.Name)
		}
		for _, col := range tbl.Columns {
			if col.Name == "" || col.Type == "" {
				return nil, domain.ErrValidation("schema registry: table %q has a column missing name or type", tbl.Name)
			}
		}
		reg.tables[tbl.Name] = tbl
	}
	return reg, nil
}

// Columns returns the column definition fragment for a registered stream.
func (r *Registry) Columns(stream string) (string, error) {
	tbl, ok := r.tables[stream]
	if !ok {
		return "", domain.ErrNotFound("stream %q is not in the schema registry", stream)
	}
	return FormatColumns(tbl.Columns), nil
}

// Tables returns the registered stream names sorted alphabetically.
func (r *Registry) Tables() []string {
	names := make([]string, 0, len(r.tables))
	for name := range r.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FormatColumns renders columns as a definition fragment, one "name TYPE" per
// line, comma separated, ready to embed in a CREATE EXTERNAL TABLE statement.
func FormatColumns(cols []Column) string {
	defs := make([]string, len(cols))
	for i, col := range cols {
		defs[i] = fmt.Sprintf("%s %s", col.Name, col.Type)
	}
	return strings.Join(defs, ",\n")
}
