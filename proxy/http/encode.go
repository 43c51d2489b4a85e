package http

import (
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"
	"go.dedis.ch/benc/document"
	"go.dedis.ch/benc/encoding"
	"go.dedis.ch/benc/serde"
	"go.dedis.ch/benc/serde/bencode"
	"golang.org/x/xerrors"
)

// MaxBodySize is the maximum size of a request body accepted by the encode
// handler.
const MaxBodySize = 8 << 20

// EncodeHandler returns a handler that converts the body of a POST request into
// bencode. The input format is read from the "from" query parameter, or from
// the Content-Type header.
func EncodeHandler(logger zerolog.Logger, opts ...encoding.Option) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			http.Error(w, "only POST requests are allowed", http.StatusMethodNotAllowed)
			return
		}

		format, err := requestFormat(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnsupportedMediaType)
			return
		}

		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodySize))
		if err != nil {
			http.Error(w, fmt.Sprintf("couldn't read body: %v", err), http.StatusBadRequest)
			return
		}

		in, err := document.NewContext(format)
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnsupportedMediaType)
			return
		}

		doc, err := document.DocumentOf(in, body)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		data, err := doc.Serialize(bencode.NewContext(opts...))
		if err != nil {
			logger.Warn().Err(err).Str("requestID", RequestID(r)).Msg("encoding failed")
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}

		w.Header().Set("Content-Type", document.BencodeMediaType)
		w.Write(data)
	}
}

func requestFormat(r *http.Request) (serde.Format, error) {
	var format serde.Format
	var err error

	from := r.URL.Query().Get("from")

	switch {
	case from != "":
		format, err = document.ParseFormat(from)
	case r.Header.Get("Content-Type") != "":
		format, err = document.ParseMediaType(r.Header.Get("Content-Type"))
	default:
		return "", xerrors.New("missing input format")
	}

	if err != nil {
		return "", err
	}

	if format == serde.FormatBencode {
		return "", xerrors.New("bencode input is not supported")
	}

	return format, nil
}
