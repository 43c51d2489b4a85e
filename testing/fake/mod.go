// Package fake provides implementations of the interfaces of the module that
// return canned values or errors. It is only meant to be used in tests.
package fake

import (
	"encoding/json"
	"fmt"

	"go.dedis.ch/benc/serde"
	"golang.org/x/xerrors"
)

var fakeErr = xerrors.New("fake error")

// GetError returns the fake error.
func GetError() error {
	return fakeErr
}

// Err returns the message of an error wrapping the fake error with the given
// prefix.
func Err(msg string) string {
	return fmt.Sprintf("%s: %v", msg, fakeErr)
}

const (
	// GoodFormat is the format of a context that works.
	GoodFormat = serde.Format("FakeGood")

	// BadFormat is the format of a context that always fails.
	BadFormat = serde.Format("FakeBad")
)

// Message is a fake implementation of a serde message.
//
// - implements serde.Message
type Message struct {
	Digest []byte
}

// Serialize implements serde.Message. It returns the JSON data of the message.
func (m Message) Serialize(ctx serde.Context) ([]byte, error) {
	return []byte("{}"), nil
}

// Format is a fake format engine. It returns the message or the error.
//
// - implements serde.FormatEngine
type Format struct {
	Msg serde.Message
	Err error
}

// Encode implements serde.FormatEngine.
func (f Format) Encode(ctx serde.Context, msg serde.Message) ([]byte, error) {
	if f.Err != nil {
		return nil, f.Err
	}

	return []byte("fake format"), nil
}

// Decode implements serde.FormatEngine.
func (f Format) Decode(ctx serde.Context, data []byte) (serde.Message, error) {
	return f.Msg, f.Err
}

// ContextEngine is a fake context engine that marshals with JSON, or returns
// an error when it is bad.
//
// - implements serde.ContextEngine
type ContextEngine struct {
	format serde.Format
	err    error
}

// NewContext returns a context that works.
func NewContext() serde.Context {
	return NewContextWithFormat(GoodFormat)
}

// NewContextWithFormat returns a context that works with the given format.
func NewContextWithFormat(format serde.Format) serde.Context {
	return serde.NewContext(ContextEngine{format: format})
}

// NewBadContext returns a context that always fails.
func NewBadContext() serde.Context {
	return serde.NewContext(ContextEngine{
		format: BadFormat,
		err:    fakeErr,
	})
}

// GetFormat implements serde.ContextEngine.
func (ctx ContextEngine) GetFormat() serde.Format {
	return ctx.format
}

// Marshal implements serde.ContextEngine.
func (ctx ContextEngine) Marshal(message interface{}) ([]byte, error) {
	if ctx.err != nil {
		return nil, ctx.err
	}

	return json.Marshal(message)
}

// Unmarshal implements serde.ContextEngine.
func (ctx ContextEngine) Unmarshal(data []byte, message interface{}) error {
	if ctx.err != nil {
		return ctx.err
	}

	return json.Unmarshal(data, message)
}
