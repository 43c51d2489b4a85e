package encoding

import (
	"bytes"
	"sort"
	"strconv"
)

// Encoder is an append-only bencode sink. It can be used to emit several
// values one after the other. The first failure is kept and returned by any
// later call.
//
// - implements encoding.Emitter
type Encoder struct {
	buf      []byte
	depth    int
	maxDepth int
	err      error
}

// NewEncoder returns a new empty encoder.
func NewEncoder(opts ...Option) *Encoder {
	tmpl := template{
		maxDepth: DefaultMaxDepth,
	}

	for _, opt := range opts {
		opt(&tmpl)
	}

	return &Encoder{
		maxDepth: tmpl.maxDepth,
	}
}

// EmitInt implements encoding.Emitter. It writes the integer in its decimal
// form.
func (e *Encoder) EmitInt(v int64) error {
	if e.err != nil {
		return e.err
	}

	e.buf = append(e.buf, 'i')
	e.buf = strconv.AppendInt(e.buf, v, 10)
	e.buf = append(e.buf, 'e')

	return nil
}

// EmitUint implements encoding.Emitter. It writes the unsigned integer in its
// decimal form.
func (e *Encoder) EmitUint(v uint64) error {
	if e.err != nil {
		return e.err
	}

	e.buf = append(e.buf, 'i')
	e.buf = strconv.AppendUint(e.buf, v, 10)
	e.buf = append(e.buf, 'e')

	return nil
}

// EmitBytes implements encoding.Emitter. It writes the length prefix followed
// by the raw bytes.
func (e *Encoder) EmitBytes(v []byte) error {
	if e.err != nil {
		return e.err
	}

	e.buf = strconv.AppendInt(e.buf, int64(len(v)), 10)
	e.buf = append(e.buf, ':')
	e.buf = append(e.buf, v...)

	return nil
}

// EmitString implements encoding.Emitter.
func (e *Encoder) EmitString(v string) error {
	if e.err != nil {
		return e.err
	}

	e.buf = strconv.AppendInt(e.buf, int64(len(v)), 10)
	e.buf = append(e.buf, ':')
	e.buf = append(e.buf, v...)

	return nil
}

// EmitList implements encoding.Emitter. The callback receives the same encoder
// one level deeper.
func (e *Encoder) EmitList(fn func(*Encoder) error) error {
	err := e.open('l')
	if err != nil {
		return err
	}

	err = fn(e)
	if err != nil {
		return e.fail(err)
	}

	return e.close()
}

// EmitDict implements encoding.Emitter. Pairs are written in place so the keys
// must be provided in strictly increasing order.
func (e *Encoder) EmitDict(fn func(*SortedDictEncoder) error) error {
	err := e.open('d')
	if err != nil {
		return err
	}

	err = fn(&SortedDictEncoder{enc: e})
	if err != nil {
		return e.fail(err)
	}

	return e.close()
}

// EmitUnsortedDict implements encoding.Emitter. Each value is buffered until
// the callback returns, then the pairs are written in key order.
func (e *Encoder) EmitUnsortedDict(fn func(*UnsortedDictEncoder) error) error {
	err := e.open('d')
	if err != nil {
		return err
	}

	dict := &UnsortedDictEncoder{
		parent: e,
		pairs:  make(map[string][]byte),
	}

	err = fn(dict)
	if err != nil {
		return e.fail(err)
	}

	if e.err != nil {
		return e.err
	}

	keys := make([]string, 0, len(dict.pairs))
	for key := range dict.pairs {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	for _, key := range keys {
		e.buf = strconv.AppendInt(e.buf, int64(len(key)), 10)
		e.buf = append(e.buf, ':')
		e.buf = append(e.buf, key...)
		e.buf = append(e.buf, dict.pairs[key]...)
	}

	return e.close()
}

// Output returns the bytes written so far. It returns an error if a previous
// operation failed or if a list or a dictionary is still open.
func (e *Encoder) Output() ([]byte, error) {
	if e.err != nil {
		return nil, e.err
	}

	if e.depth != 0 {
		return nil, newError(Unfinished, "%d container(s) still open", e.depth)
	}

	return e.buf, nil
}

func (e *Encoder) open(tag byte) error {
	if e.err != nil {
		return e.err
	}

	if e.depth >= e.maxDepth {
		return e.fail(newError(NestingTooDeep, "limit is %d", e.maxDepth))
	}

	e.depth++
	e.buf = append(e.buf, tag)

	return nil
}

func (e *Encoder) close() error {
	if e.err != nil {
		return e.err
	}

	e.depth--
	e.buf = append(e.buf, 'e')

	return nil
}

func (e *Encoder) fail(err error) error {
	if e.err == nil {
		e.err = err
	}

	return err
}

// SortedDictEncoder writes the pairs of a dictionary directly into the
// encoder. It refuses a key that is not strictly greater than the previous one.
type SortedDictEncoder struct {
	enc     *Encoder
	lastKey []byte
	started bool
}

// EmitPairWith writes the key and lets the callback write the value through a
// single item encoder.
func (d *SortedDictEncoder) EmitPairWith(key []byte, fn func(*SingleItemEncoder) error) error {
	if d.enc.err != nil {
		return d.enc.err
	}

	if d.started {
		switch cmp := bytes.Compare(key, d.lastKey); {
		case cmp == 0:
			return d.enc.fail(newError(DuplicateKey, "%q", key))
		case cmp < 0:
			return d.enc.fail(newError(UnsortedKeys, "%q after %q", key, d.lastKey))
		}
	}

	d.started = true
	d.lastKey = append(d.lastKey[:0], key...)

	err := d.enc.EmitBytes(key)
	if err != nil {
		return err
	}

	sink := &SingleItemEncoder{enc: d.enc}

	err = fn(sink)
	if err != nil {
		return d.enc.fail(err)
	}

	if d.enc.err != nil {
		return d.enc.err
	}

	if !sink.used {
		return d.enc.fail(newError(MissingValue, "key %q", key))
	}

	return nil
}

// UnsortedDictEncoder collects the pairs of a dictionary in any order. The
// pairs are sorted by key when the dictionary is closed.
type UnsortedDictEncoder struct {
	parent *Encoder
	pairs  map[string][]byte
}

// EmitPairWith lets the callback write the value of the key through a single
// item encoder. A key can only be given once.
func (d *UnsortedDictEncoder) EmitPairWith(key []byte, fn func(*SingleItemEncoder) error) error {
	if d.parent.err != nil {
		return d.parent.err
	}

	_, found := d.pairs[string(key)]
	if found {
		return d.parent.fail(newError(DuplicateKey, "%q", key))
	}

	child := &Encoder{
		depth:    d.parent.depth,
		maxDepth: d.parent.maxDepth,
	}

	sink := &SingleItemEncoder{enc: child}

	err := fn(sink)
	if err != nil {
		return d.parent.fail(err)
	}

	if child.err != nil {
		return d.parent.fail(child.err)
	}

	if !sink.used {
		return d.parent.fail(newError(MissingValue, "key %q", key))
	}

	d.pairs[string(key)] = child.buf

	return nil
}
