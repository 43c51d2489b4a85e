package yaml

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.dedis.ch/benc/serde"
)

func TestYAMLEngine_GetFormat(t *testing.T) {
	require.Equal(t, serde.FormatYAML, NewContext().GetFormat())
}

func TestYAMLEngine_Marshal(t *testing.T) {
	ctx := NewContext()

	data, err := ctx.Marshal(fakeConfig{Name: "node", Port: 2000})
	require.NoError(t, err)
	require.Equal(t, "name: node\nport: 2000\n", string(data))
}

func TestYAMLEngine_Unmarshal(t *testing.T) {
	ctx := NewContext()

	var cfg fakeConfig
	err := ctx.Unmarshal([]byte("name: node\nport: 2000\n"), &cfg)
	require.NoError(t, err)
	require.Equal(t, fakeConfig{Name: "node", Port: 2000}, cfg)

	var m interface{}
	err = ctx.Unmarshal([]byte("a: [1, b]"), &m)
	require.NoError(t, err)
	require.Equal(t, map[interface{}]interface{}{"a": []interface{}{1, "b"}}, m)

	err = ctx.Unmarshal([]byte("a: [b"), &m)
	require.Error(t, err)
}

// -----------------------------------------------------------------------------
// Utility functions

type fakeConfig struct {
	Name string `yaml:"name"`
	Port int    `yaml:"port"`
}
