// Package encoding implements the low-level token emission of the bencode
// format.
//
// A bencode stream is made of four kinds of self-delimiting tokens:
//
// 	integer      i<decimal>e
// 	byte string  <length>:<bytes>
// 	list         l<items>e
// 	dictionary   d<key><value>...e
//
// Dictionary keys are byte strings and must appear in strictly increasing
// byte-lexicographic order. The encoder enforces that rule, either by
// rejecting keys out of order (SortedDictEncoder) or by sorting them before
// they are written (UnsortedDictEncoder).
//
// The Encoder accepts any number of values and accumulates them, while a
// SingleItemEncoder accepts exactly one value and is handed out when a single
// value must be produced, like the value of a dictionary pair.
package encoding

// DefaultMaxDepth is the maximum nesting of lists and dictionaries allowed by
// an encoder unless another value is given with WithMaxDepth.
const DefaultMaxDepth = 2048

// Emitter is the common set of primitives of the encoders. Both Encoder and
// SingleItemEncoder implement it, with the difference that a single item
// encoder accepts only one call.
type Emitter interface {
	// EmitInt writes a signed integer.
	EmitInt(v int64) error

	// EmitUint writes an unsigned integer.
	EmitUint(v uint64) error

	// EmitBytes writes a byte string.
	EmitBytes(v []byte) error

	// EmitString writes the bytes of the string as a byte string.
	EmitString(v string) error

	// EmitList writes a list whose items are written by the callback, in the
	// order it produces them.
	EmitList(fn func(*Encoder) error) error

	// EmitDict writes a dictionary whose pairs are written by the callback.
	// The keys must be given in strictly increasing order.
	EmitDict(fn func(*SortedDictEncoder) error) error

	// EmitUnsortedDict writes a dictionary whose pairs are written by the
	// callback in any order. Pairs are sorted before being written.
	EmitUnsortedDict(fn func(*UnsortedDictEncoder) error) error
}

type template struct {
	maxDepth int
}

// Option is the type of option to set some fields of an encoder.
type Option func(*template)

// WithMaxDepth is an option to set the maximum nesting of lists and
// dictionaries.
func WithMaxDepth(depth int) Option {
	return func(tmpl *template) {
		tmpl.maxDepth = depth
	}
}
