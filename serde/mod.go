// Package serde defines the primitives to serialize and deserialize (serde)
// messages with a format chosen at runtime.
//
// A message is given a context that holds the engine of the format. The
// message then looks up the format engine registered for its type and the
// context format, and the engine produces the bytes by using the context to
// marshal a data structure.
//
// The available formats are:
// - bencode (encoding only)
// - JSON
// - YAML
// - TOML
// - MessagePack
package serde

// Format is the identifier of a serialization format.
type Format string

const (
	// FormatBencode is the identifier of the bencode format.
	FormatBencode Format = "bencode"

	// FormatJSON is the identifier of the JSON format.
	FormatJSON Format = "json"

	// FormatYAML is the identifier of the YAML format.
	FormatYAML Format = "yaml"

	// FormatTOML is the identifier of the TOML format.
	FormatTOML Format = "toml"

	// FormatMsgpack is the identifier of the MessagePack format.
	FormatMsgpack Format = "msgpack"
)

// Message is the interface a data model should implement to be serialized.
type Message interface {
	// Serialize returns the bytes of the message in the format of the context.
	Serialize(ctx Context) ([]byte, error)
}

// Factory is the interface to implement to instantiate a message from its
// serialized form.
type Factory interface {
	// Deserialize returns the message populated with the data, which must be
	// in the format of the context.
	Deserialize(ctx Context, data []byte) (Message, error)
}

// FormatEngine is the interface to implement for a message to support a given
// format.
type FormatEngine interface {
	// Encode returns the bytes of the message in the format of the context.
	Encode(ctx Context, message Message) ([]byte, error)

	// Decode returns the message populated with the data.
	Decode(ctx Context, data []byte) (Message, error)
}
