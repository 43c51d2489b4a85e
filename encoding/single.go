package encoding

// SingleItemEncoder is an encoder that accepts exactly one value. Any call
// after the first one fails with ErrSingleItemReused and poisons the
// underlying encoder.
//
// - implements encoding.Emitter
type SingleItemEncoder struct {
	enc  *Encoder
	used bool
}

// NewSingleItemEncoder returns a single item encoder that writes its value
// into the given encoder.
func NewSingleItemEncoder(enc *Encoder) *SingleItemEncoder {
	return &SingleItemEncoder{enc: enc}
}

// Used returns true when the value has been emitted.
func (s *SingleItemEncoder) Used() bool {
	return s.used
}

// EmitInt implements encoding.Emitter.
func (s *SingleItemEncoder) EmitInt(v int64) error {
	err := s.claim()
	if err != nil {
		return err
	}

	return s.enc.EmitInt(v)
}

// EmitUint implements encoding.Emitter.
func (s *SingleItemEncoder) EmitUint(v uint64) error {
	err := s.claim()
	if err != nil {
		return err
	}

	return s.enc.EmitUint(v)
}

// EmitBytes implements encoding.Emitter.
func (s *SingleItemEncoder) EmitBytes(v []byte) error {
	err := s.claim()
	if err != nil {
		return err
	}

	return s.enc.EmitBytes(v)
}

// EmitString implements encoding.Emitter.
func (s *SingleItemEncoder) EmitString(v string) error {
	err := s.claim()
	if err != nil {
		return err
	}

	return s.enc.EmitString(v)
}

// EmitList implements encoding.Emitter.
func (s *SingleItemEncoder) EmitList(fn func(*Encoder) error) error {
	err := s.claim()
	if err != nil {
		return err
	}

	return s.enc.EmitList(fn)
}

// EmitDict implements encoding.Emitter.
func (s *SingleItemEncoder) EmitDict(fn func(*SortedDictEncoder) error) error {
	err := s.claim()
	if err != nil {
		return err
	}

	return s.enc.EmitDict(fn)
}

// EmitUnsortedDict implements encoding.Emitter.
func (s *SingleItemEncoder) EmitUnsortedDict(fn func(*UnsortedDictEncoder) error) error {
	err := s.claim()
	if err != nil {
		return err
	}

	return s.enc.EmitUnsortedDict(fn)
}

func (s *SingleItemEncoder) claim() error {
	if s.used {
		return s.enc.fail(ErrSingleItemReused)
	}

	s.used = true

	return nil
}
