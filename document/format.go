package document

import (
	"go.dedis.ch/benc/serde"
	"golang.org/x/xerrors"
)

// genericFormat decodes any value into an untyped tree.
//
// - implements serde.FormatEngine
type genericFormat struct{}

// Encode implements serde.FormatEngine. It marshals the tree of the document.
func (genericFormat) Encode(ctx serde.Context, msg serde.Message) ([]byte, error) {
	doc, ok := msg.(Document)
	if !ok {
		return nil, xerrors.Errorf("unsupported message of type '%T'", msg)
	}

	data, err := ctx.Marshal(doc.value)
	if err != nil {
		return nil, xerrors.Errorf("couldn't marshal: %v", err)
	}

	return data, nil
}

// Decode implements serde.FormatEngine. It unmarshals and normalizes the tree.
func (genericFormat) Decode(ctx serde.Context, data []byte) (serde.Message, error) {
	var value interface{}

	err := ctx.Unmarshal(data, &value)
	if err != nil {
		return nil, xerrors.Errorf("couldn't unmarshal: %v", err)
	}

	doc, err := New(value)
	if err != nil {
		return nil, err
	}

	return doc, nil
}

// tableFormat is the engine of formats that only accept a table at the root
// of a document.
//
// - implements serde.FormatEngine
type tableFormat struct {
	genericFormat
}

// Decode implements serde.FormatEngine. It unmarshals the root table and
// normalizes the tree.
func (tableFormat) Decode(ctx serde.Context, data []byte) (serde.Message, error) {
	table := make(map[string]interface{})

	err := ctx.Unmarshal(data, &table)
	if err != nil {
		return nil, xerrors.Errorf("couldn't unmarshal: %v", err)
	}

	doc, err := New(table)
	if err != nil {
		return nil, err
	}

	return doc, nil
}
