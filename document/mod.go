// Package document defines a generic value tree that can be decoded from any
// input format supported by the module and encoded in any output format, in
// particular bencode.
//
// Decoded values are normalized so that every format produces the same tree:
// maps have string keys, integers are int64 or uint64 and floats are float64.
package document

import (
	"go.dedis.ch/benc/serde"
	"go.dedis.ch/benc/serde/registry"
	"golang.org/x/xerrors"
)

var formats = registry.NewSimpleRegistry()

func init() {
	for _, format := range []serde.Format{
		serde.FormatBencode,
		serde.FormatJSON,
		serde.FormatYAML,
		serde.FormatMsgpack,
	} {
		RegisterFormat(format, genericFormat{})
	}

	RegisterFormat(serde.FormatTOML, tableFormat{})
}

// RegisterFormat registers the engine for the format.
func RegisterFormat(format serde.Format, engine serde.FormatEngine) {
	formats.Register(format, engine)
}

// Document is a value tree made of maps, slices and primitives.
//
// - implements serde.Message
type Document struct {
	value interface{}
}

// New returns a document of the value. The value is normalized, which fails
// when two keys of a map have the same text.
func New(value interface{}) (Document, error) {
	tree, err := normalize(value)
	if err != nil {
		return Document{}, xerrors.Errorf("couldn't normalize: %v", err)
	}

	return Document{value: tree}, nil
}

// Value returns the root of the tree.
func (d Document) Value() interface{} {
	return d.value
}

// Serialize implements serde.Message. It returns the document encoded in the
// format of the context.
func (d Document) Serialize(ctx serde.Context) ([]byte, error) {
	format := formats.Get(ctx.GetFormat())

	data, err := format.Encode(ctx, d)
	if err != nil {
		return nil, xerrors.Errorf("couldn't encode document: %v", err)
	}

	return data, nil
}

// Factory is the factory of documents.
//
// - implements serde.Factory
type Factory struct{}

// NewFactory returns a new document factory.
func NewFactory() Factory {
	return Factory{}
}

// Deserialize implements serde.Factory. It decodes the data according to the
// format of the context.
func (f Factory) Deserialize(ctx serde.Context, data []byte) (serde.Message, error) {
	format := formats.Get(ctx.GetFormat())

	msg, err := format.Decode(ctx, data)
	if err != nil {
		return nil, xerrors.Errorf("couldn't decode document: %v", err)
	}

	return msg, nil
}

// DocumentOf decodes the data with the context and returns the document.
func DocumentOf(ctx serde.Context, data []byte) (Document, error) {
	msg, err := NewFactory().Deserialize(ctx, data)
	if err != nil {
		return Document{}, err
	}

	doc, ok := msg.(Document)
	if !ok {
		return Document{}, xerrors.Errorf("invalid message of type '%T'", msg)
	}

	return doc, nil
}
