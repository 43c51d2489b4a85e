// Package bencode implements the bencode format for the generic serialization
// framework of package ser.
//
// The Serializer translates every callback of the framework into bencode
// tokens. It writes either into a shared encoder, which accepts any number of
// values, or into a single item encoder which accepts exactly one value. The
// latter is used for the value slot of a dictionary pair so that a payload can
// never produce more than one value.
package bencode

import (
	"encoding/binary"
	"fmt"
	"math"

	"go.dedis.ch/benc/encoding"
	"go.dedis.ch/benc/serde/ser"
)

type mode int

const (
	sharedEncoder mode = iota
	singleItem
)

// Serializer is the bencode implementation of the serialization visitor. In
// shared mode it can be used for many values. In single item mode it must be
// used exactly once; a second use is a programming error and panics.
//
// - implements ser.Serializer
type Serializer struct {
	mode    mode
	encoder *encoding.Encoder
	single  *encoding.SingleItemEncoder
}

// NewSerializer returns a serializer that writes into the shared encoder.
// Serializing several values produces their concatenation.
func NewSerializer(enc *encoding.Encoder) *Serializer {
	return &Serializer{
		mode:    sharedEncoder,
		encoder: enc,
	}
}

// NewSingleItemSerializer returns a serializer that writes exactly one value
// into the sink.
func NewSingleItemSerializer(sink *encoding.SingleItemEncoder) *Serializer {
	return &Serializer{
		mode:   singleItem,
		single: sink,
	}
}

// ToBytes returns the bencode representation of the value. The value is walked
// with ser.Serialize and the data model is mapped as follows:
//
// 	bool                 integer 1 or 0
// 	integers             integer
// 	f32 / f64            byte string of the 4 / 8 bytes of the IEEE-754 value
// 	                     in little-endian order
// 	char                 integer of the code point
// 	string, bytes        byte string
// 	none, unit           empty list
// 	some(v)              list with the single item v
// 	unit variant         byte string of the variant name
// 	newtype variant      dictionary {variant: payload}
// 	seq, tuple           list
// 	map, struct          dictionary with sorted keys
// 	tuple variant        dictionary {variant: list}
// 	struct variant       dictionary {variant: dictionary}
//
// Floats and characters have no bencode primitive, a reader must apply the same
// convention to get them back. Map keys must serialize to a string or bytes.
//
// Nothing is returned on failure, even if some bytes were already written.
func ToBytes(v interface{}, opts ...encoding.Option) ([]byte, error) {
	enc := encoding.NewEncoder(opts...)

	err := ser.Serialize(NewSerializer(enc), v)
	if err != nil {
		return nil, tagError(err)
	}

	out, err := enc.Output()
	if err != nil {
		return nil, tagError(err)
	}

	return out, nil
}

// target returns the emitter the next value is written into. A single item
// serializer gives its sink away and cannot be used again.
func (s *Serializer) target(op string) encoding.Emitter {
	if s.mode == sharedEncoder {
		return s.encoder
	}

	if s.single == nil {
		panic(fmt.Sprintf("Serializer.%s: single item encoder reused", op))
	}

	sink := s.single
	s.single = nil

	return sink
}

func (s *Serializer) emitInt(v int64) error {
	return wrapError(s.target("emit").EmitInt(v))
}

func (s *Serializer) emitUint(v uint64) error {
	return wrapError(s.target("emit").EmitUint(v))
}

func (s *Serializer) emitBytes(v []byte) error {
	return wrapError(s.target("emit").EmitBytes(v))
}

func (s *Serializer) emitString(v string) error {
	return wrapError(s.target("emit").EmitString(v))
}

func (s *Serializer) emitList(fn func(*encoding.Encoder) error) error {
	return wrapError(s.target("emitList").EmitList(fn))
}

func (s *Serializer) emitDict(fn func(*encoding.SortedDictEncoder) error) error {
	return wrapError(s.target("emitDict").EmitDict(fn))
}

func (s *Serializer) emitUnsortedDict(fn func(*encoding.UnsortedDictEncoder) error) error {
	return wrapError(s.target("emitDict").EmitUnsortedDict(fn))
}

// emitVariant writes the single-key dictionary of an enum variant. The payload
// is written in place through a single item serializer.
func (s *Serializer) emitVariant(variant string, payload func(*Serializer) error) error {
	return s.emitDict(func(dict *encoding.SortedDictEncoder) error {
		return dict.EmitPairWith([]byte(variant), func(sink *encoding.SingleItemEncoder) error {
			return payload(NewSingleItemSerializer(sink))
		})
	})
}

func emptyList(*encoding.Encoder) error {
	return nil
}

// SerializeBool implements ser.Serializer. It writes the integer 1 or 0.
func (s *Serializer) SerializeBool(v bool) error {
	if v {
		return s.emitInt(1)
	}

	return s.emitInt(0)
}

// SerializeI8 implements ser.Serializer.
func (s *Serializer) SerializeI8(v int8) error {
	return s.emitInt(int64(v))
}

// SerializeI16 implements ser.Serializer.
func (s *Serializer) SerializeI16(v int16) error {
	return s.emitInt(int64(v))
}

// SerializeI32 implements ser.Serializer.
func (s *Serializer) SerializeI32(v int32) error {
	return s.emitInt(int64(v))
}

// SerializeI64 implements ser.Serializer.
func (s *Serializer) SerializeI64(v int64) error {
	return s.emitInt(v)
}

// SerializeU8 implements ser.Serializer.
func (s *Serializer) SerializeU8(v uint8) error {
	return s.emitUint(uint64(v))
}

// SerializeU16 implements ser.Serializer.
func (s *Serializer) SerializeU16(v uint16) error {
	return s.emitUint(uint64(v))
}

// SerializeU32 implements ser.Serializer.
func (s *Serializer) SerializeU32(v uint32) error {
	return s.emitUint(uint64(v))
}

// SerializeU64 implements ser.Serializer.
func (s *Serializer) SerializeU64(v uint64) error {
	return s.emitUint(v)
}

// SerializeF32 implements ser.Serializer. It writes the 4 bytes of the value
// in little-endian order.
func (s *Serializer) SerializeF32(v float32) error {
	var buffer [4]byte
	binary.LittleEndian.PutUint32(buffer[:], math.Float32bits(v))

	return s.emitBytes(buffer[:])
}

// SerializeF64 implements ser.Serializer. It writes the 8 bytes of the value
// in little-endian order.
func (s *Serializer) SerializeF64(v float64) error {
	var buffer [8]byte
	binary.LittleEndian.PutUint64(buffer[:], math.Float64bits(v))

	return s.emitBytes(buffer[:])
}

// SerializeChar implements ser.Serializer. It writes the code point as an
// unsigned 32-bit integer.
func (s *Serializer) SerializeChar(v rune) error {
	return s.emitUint(uint64(uint32(v)))
}

// SerializeStr implements ser.Serializer.
func (s *Serializer) SerializeStr(v string) error {
	return s.emitString(v)
}

// SerializeBytes implements ser.Serializer.
func (s *Serializer) SerializeBytes(v []byte) error {
	return s.emitBytes(v)
}

// SerializeNone implements ser.Serializer. It writes an empty list.
func (s *Serializer) SerializeNone() error {
	return s.emitList(emptyList)
}

// SerializeSome implements ser.Serializer. It writes a list with the value as
// the only item.
func (s *Serializer) SerializeSome(v interface{}) error {
	return s.emitList(func(enc *encoding.Encoder) error {
		return ser.Serialize(NewSerializer(enc), v)
	})
}

// SerializeUnit implements ser.Serializer. It writes an empty list.
func (s *Serializer) SerializeUnit() error {
	return s.emitList(emptyList)
}

// SerializeUnitStruct implements ser.Serializer. It writes an empty list.
func (s *Serializer) SerializeUnitStruct(name string) error {
	return s.emitList(emptyList)
}

// SerializeUnitVariant implements ser.Serializer. It writes the name of the
// variant.
func (s *Serializer) SerializeUnitVariant(name string, index uint32, variant string) error {
	return s.SerializeStr(variant)
}

// SerializeNewtypeStruct implements ser.Serializer. The wrapper is transparent.
func (s *Serializer) SerializeNewtypeStruct(name string, v interface{}) error {
	return ser.Serialize(s, v)
}

// SerializeNewtypeVariant implements ser.Serializer. It writes a dictionary
// with the variant name as the only key and the payload as its value.
func (s *Serializer) SerializeNewtypeVariant(name string, index uint32, variant string,
	v interface{}) error {

	return s.emitVariant(variant, func(payload *Serializer) error {
		return ser.Serialize(payload, v)
	})
}

// SerializeSeq implements ser.Serializer. It writes a list of the elements.
func (s *Serializer) SerializeSeq(length int, body func(ser.SeqSerializer) error) error {
	return s.emitList(func(enc *encoding.Encoder) error {
		return body(seqSerializer{enc: enc})
	})
}

// SerializeTuple implements ser.Serializer. It writes a list of the elements.
func (s *Serializer) SerializeTuple(length int, body func(ser.SeqSerializer) error) error {
	return s.SerializeSeq(length, body)
}

// SerializeTupleStruct implements ser.Serializer. It writes a list of the
// fields.
func (s *Serializer) SerializeTupleStruct(name string, length int,
	body func(ser.SeqSerializer) error) error {

	return s.SerializeSeq(length, body)
}

// SerializeTupleVariant implements ser.Serializer. It writes a dictionary with
// the variant name as the only key and the list of the fields as its value.
func (s *Serializer) SerializeTupleVariant(name string, index uint32, variant string,
	length int, body func(ser.SeqSerializer) error) error {

	return s.emitVariant(variant, func(payload *Serializer) error {
		return payload.SerializeSeq(length, body)
	})
}

// SerializeMap implements ser.Serializer. It writes a dictionary of the
// entries sorted by key.
func (s *Serializer) SerializeMap(length int, body func(ser.MapSerializer) error) error {
	return s.emitUnsortedDict(func(dict *encoding.UnsortedDictEncoder) error {
		return body(mapSerializer{dict: dict})
	})
}

// SerializeStruct implements ser.Serializer. It writes a dictionary of the
// fields sorted by name.
func (s *Serializer) SerializeStruct(name string, length int,
	body func(ser.StructSerializer) error) error {

	return s.emitUnsortedDict(func(dict *encoding.UnsortedDictEncoder) error {
		return body(structSerializer{dict: dict})
	})
}

// SerializeStructVariant implements ser.Serializer. It writes a dictionary
// with the variant name as the only key and the dictionary of the fields as
// its value.
func (s *Serializer) SerializeStructVariant(name string, index uint32, variant string,
	length int, body func(ser.StructSerializer) error) error {

	return s.emitVariant(variant, func(payload *Serializer) error {
		return payload.SerializeStruct(name, length, body)
	})
}

// Custom implements ser.Serializer. It returns a message error.
func (s *Serializer) Custom(message string) error {
	return newMessageError(message)
}
