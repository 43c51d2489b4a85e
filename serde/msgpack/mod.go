// Package msgpack implements the context engine for the MessagePack format.
package msgpack

import (
	"github.com/vmihailenco/msgpack/v5"
	"go.dedis.ch/benc/serde"
)

// msgpackEngine is a context engine to marshal and unmarshal in MessagePack
// format.
//
// - implements serde.ContextEngine
type msgpackEngine struct{}

// NewContext returns a MessagePack context.
func NewContext() serde.Context {
	return serde.NewContext(msgpackEngine{})
}

// GetFormat implements serde.ContextEngine. It returns the MessagePack format
// name.
func (msgpackEngine) GetFormat() serde.Format {
	return serde.FormatMsgpack
}

// Marshal implements serde.ContextEngine.
func (msgpackEngine) Marshal(m interface{}) ([]byte, error) {
	return msgpack.Marshal(m)
}

// Unmarshal implements serde.ContextEngine.
func (msgpackEngine) Unmarshal(data []byte, m interface{}) error {
	return msgpack.Unmarshal(data, m)
}
