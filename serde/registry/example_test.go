package registry_test

import (
	"errors"
	"fmt"

	"go.dedis.ch/benc/serde"
	"go.dedis.ch/benc/serde/bencode"
	"go.dedis.ch/benc/serde/registry"
)

func ExampleSimpleRegistry_Register() {
	exampleRegistry.Register(serde.FormatBencode, exampleBencodeFormat{})

	msg := exampleMessage{
		value: 42,
	}

	data, err := msg.Serialize(bencode.NewContext())
	if err != nil {
		panic("serialization failed: " + err.Error())
	}

	fmt.Println(string(data))

	// Output: d5:valuei42ee
}

var exampleRegistry = registry.NewSimpleRegistry()

// exampleMessage is the data model for a message example.
//
// - implements serde.Message
type exampleMessage struct {
	value int
}

// exampleMessageBencode is the bencode message for a message example.
type exampleMessageBencode struct {
	Value int `serde:"value"`
}

// Serialize implements serde.Message. It returns the serialization of a
// message example in the format of the context.
func (m exampleMessage) Serialize(ctx serde.Context) ([]byte, error) {
	format := exampleRegistry.Get(ctx.GetFormat())

	data, err := format.Encode(ctx, m)
	if err != nil {
		return nil, err
	}

	return data, nil
}

// exampleBencodeFormat is an example of a format to serialize a message
// example using the bencode encoding.
//
// - implements serde.FormatEngine
type exampleBencodeFormat struct{}

// Encode implements serde.FormatEngine. It populates a message that complies
// the bencode encoding and marshal it.
func (exampleBencodeFormat) Encode(ctx serde.Context, msg serde.Message) ([]byte, error) {
	example, ok := msg.(exampleMessage)
	if !ok {
		return nil, errors.New("unsupported message")
	}

	m := exampleMessageBencode{
		Value: example.value,
	}

	return ctx.Marshal(m)
}

// Decode implements serde.FormatEngine. Bencode messages cannot be decoded.
func (exampleBencodeFormat) Decode(ctx serde.Context, data []byte) (serde.Message, error) {
	return nil, errors.New("not implemented")
}
