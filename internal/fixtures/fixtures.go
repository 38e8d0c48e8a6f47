// Package fixtures holds the static catalog the service starts from and
// decodes fixture documents supplied by the CLI.
package fixtures

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"musicstore/internal/repository"
)

//go:embed data/catalog.json
var catalogJSON []byte

// Default returns a fresh decode of the embedded catalog.
func Default() (repository.Seed, error) {
	return Decode("catalog.json", catalogJSON)
}

// Decode parses a fixture document. Files named *.yaml or *.yml are read as
// YAML, everything else as JSON. Both use the JSON field names.
func Decode(name string, data []byte) (repository.Seed, error) {
	var seed repository.Seed

	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return seed, fmt.Errorf("parse %s: %w", name, err)
		}
		// route through JSON so both formats share the json tags
		raw, err := json.Marshal(doc)
		if err != nil {
			return seed, fmt.Errorf("convert %s: %w", name, err)
		}
		data = raw
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&seed); err != nil {
		return seed, fmt.Errorf("parse %s: %w", name, err)
	}
	return seed, nil
}
