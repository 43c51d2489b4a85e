package document

import (
	"mime"
	"strings"

	"go.dedis.ch/benc/encoding"
	"go.dedis.ch/benc/serde"
	"go.dedis.ch/benc/serde/bencode"
	"go.dedis.ch/benc/serde/json"
	"go.dedis.ch/benc/serde/msgpack"
	"go.dedis.ch/benc/serde/toml"
	"go.dedis.ch/benc/serde/yaml"
	"golang.org/x/xerrors"
)

// BencodeMediaType is the media type of bencode data.
const BencodeMediaType = "application/x-bencode"

var names = map[string]serde.Format{
	"bencode": serde.FormatBencode,
	"benc":    serde.FormatBencode,
	"json":    serde.FormatJSON,
	"yaml":    serde.FormatYAML,
	"yml":     serde.FormatYAML,
	"toml":    serde.FormatTOML,
	"msgpack": serde.FormatMsgpack,
	"mpk":     serde.FormatMsgpack,
}

var mediaTypes = map[string]serde.Format{
	BencodeMediaType:        serde.FormatBencode,
	"application/json":      serde.FormatJSON,
	"text/json":             serde.FormatJSON,
	"application/yaml":      serde.FormatYAML,
	"application/x-yaml":    serde.FormatYAML,
	"text/yaml":             serde.FormatYAML,
	"application/toml":      serde.FormatTOML,
	"application/msgpack":   serde.FormatMsgpack,
	"application/x-msgpack": serde.FormatMsgpack,
}

// ParseFormat returns the format of the name, which is case insensitive. File
// extensions like "yml" are accepted.
func ParseFormat(name string) (serde.Format, error) {
	format, found := names[strings.ToLower(strings.TrimPrefix(name, "."))]
	if !found {
		return "", xerrors.Errorf("unknown format '%s'", name)
	}

	return format, nil
}

// ParseMediaType returns the format of a Content-Type header value.
func ParseMediaType(value string) (serde.Format, error) {
	mediaType, _, err := mime.ParseMediaType(value)
	if err != nil {
		return "", xerrors.Errorf("couldn't parse media type: %v", err)
	}

	format, found := mediaTypes[mediaType]
	if !found {
		return "", xerrors.Errorf("unsupported media type '%s'", mediaType)
	}

	return format, nil
}

// NewContext returns the serde context of the format. The options only apply
// to the bencode format.
func NewContext(format serde.Format, opts ...encoding.Option) (serde.Context, error) {
	switch format {
	case serde.FormatBencode:
		return bencode.NewContext(opts...), nil
	case serde.FormatJSON:
		return json.NewContext(), nil
	case serde.FormatYAML:
		return yaml.NewContext(), nil
	case serde.FormatTOML:
		return toml.NewContext(), nil
	case serde.FormatMsgpack:
		return msgpack.NewContext(), nil
	default:
		return serde.Context{}, xerrors.Errorf("format '%s' is not implemented", format)
	}
}

// Convert decodes the data in the input format and encodes the document in the
// output format.
func Convert(data []byte, from, to serde.Format, opts ...encoding.Option) ([]byte, error) {
	in, err := NewContext(from)
	if err != nil {
		return nil, err
	}

	doc, err := DocumentOf(in, data)
	if err != nil {
		return nil, err
	}

	out, err := NewContext(to, opts...)
	if err != nil {
		return nil, err
	}

	return doc.Serialize(out)
}
