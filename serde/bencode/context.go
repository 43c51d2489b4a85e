package bencode

import (
	"go.dedis.ch/benc"
	"go.dedis.ch/benc/encoding"
	"go.dedis.ch/benc/serde"
	"golang.org/x/xerrors"
)

// Engine is a context engine that marshals values into bencode.
//
// - implements serde.ContextEngine
type Engine struct {
	opts []encoding.Option
}

// NewContext returns a serde context that uses the bencode engine. The options
// are given to the encoder of each marshaled value.
func NewContext(opts ...encoding.Option) serde.Context {
	return serde.NewContext(Engine{opts: opts})
}

// GetFormat implements serde.ContextEngine.
func (Engine) GetFormat() serde.Format {
	return serde.FormatBencode
}

// Marshal implements serde.ContextEngine. It returns the bencode
// representation of the message.
func (e Engine) Marshal(message interface{}) ([]byte, error) {
	data, err := ToBytes(message, e.opts...)
	if err != nil {
		promFailures.WithLabelValues(failureLabel(err)).Inc()

		benc.Logger.Debug().Err(err).Msgf("couldn't marshal %T", message)

		return nil, err
	}

	promValues.Inc()
	promOutputSize.Observe(float64(len(data)))

	return data, nil
}

// Unmarshal implements serde.ContextEngine. It always returns an error as the
// engine only supports the encoding.
func (Engine) Unmarshal([]byte, interface{}) error {
	return xerrors.New("bencode decoding is not supported")
}

func failureLabel(err error) string {
	var tagged *Error
	if !xerrors.As(err, &tagged) {
		return "other"
	}

	if tagged.Kind() == EncodingFailure {
		return "encoding"
	}

	return "message"
}
