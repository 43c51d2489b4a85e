// Package yaml implements the context engine for the YAML format.
package yaml

import (
	"go.dedis.ch/benc/serde"
	"gopkg.in/yaml.v2"
)

// yamlEngine is a context engine to marshal and unmarshal in YAML format.
//
// - implements serde.ContextEngine
type yamlEngine struct{}

// NewContext returns a YAML context.
func NewContext() serde.Context {
	return serde.NewContext(yamlEngine{})
}

// GetFormat implements serde.ContextEngine. It returns the YAML format name.
func (yamlEngine) GetFormat() serde.Format {
	return serde.FormatYAML
}

// Marshal implements serde.ContextEngine.
func (yamlEngine) Marshal(m interface{}) ([]byte, error) {
	return yaml.Marshal(m)
}

// Unmarshal implements serde.ContextEngine. Mappings are decoded with
// interface keys when the destination is untyped.
func (yamlEngine) Unmarshal(data []byte, m interface{}) error {
	return yaml.Unmarshal(data, m)
}
