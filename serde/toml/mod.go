// Package toml implements the context engine for the TOML format. Only tables
// can be represented at the top level of a document.
package toml

import (
	"bytes"

	"github.com/BurntSushi/toml"
	"go.dedis.ch/benc/serde"
)

// tomlEngine is a context engine to marshal and unmarshal in TOML format.
//
// - implements serde.ContextEngine
type tomlEngine struct{}

// NewContext returns a TOML context.
func NewContext() serde.Context {
	return serde.NewContext(tomlEngine{})
}

// GetFormat implements serde.ContextEngine. It returns the TOML format name.
func (tomlEngine) GetFormat() serde.Format {
	return serde.FormatTOML
}

// Marshal implements serde.ContextEngine.
func (tomlEngine) Marshal(m interface{}) ([]byte, error) {
	buffer := new(bytes.Buffer)

	err := toml.NewEncoder(buffer).Encode(m)
	if err != nil {
		return nil, err
	}

	return buffer.Bytes(), nil
}

// Unmarshal implements serde.ContextEngine.
func (tomlEngine) Unmarshal(data []byte, m interface{}) error {
	return toml.Unmarshal(data, m)
}
