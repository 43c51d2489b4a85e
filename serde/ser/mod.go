// Package ser defines a generic serialization framework: a visitor interface
// implemented by the output formats, and a walker that drives any Go value
// through that visitor.
//
// The data model is made of primitives (booleans, integers of every width,
// floats, characters, strings, bytes), options (none and some), unit values,
// sequences, tuples, maps, structs, and enum variants. Go has no enum, so a
// type that wants to be seen as a variant implements Serializable and calls
// the variant callbacks itself:
//
// 	type Shape struct{ Radius *float64; Side *float64 }
//
// 	func (s Shape) SerializeTo(out ser.Serializer) error {
// 		if s.Radius != nil {
// 			return out.SerializeNewtypeVariant("Shape", 0, "Circle", *s.Radius)
// 		}
// 		return out.SerializeNewtypeVariant("Shape", 1, "Square", *s.Side)
// 	}
package ser

// Char is a rune that is serialized as a character instead of an int32.
type Char rune

// Serializable is the interface a value implements to drive the serializer by
// itself instead of relying on reflection.
type Serializable interface {
	SerializeTo(s Serializer) error
}

// SeqSerializer is given to the body of sequences, tuples and tuple variants.
type SeqSerializer interface {
	// SerializeElement appends the element to the sequence.
	SerializeElement(v interface{}) error
}

// MapSerializer is given to the body of maps.
type MapSerializer interface {
	// SerializeEntry adds the key and its value to the map.
	SerializeEntry(key, value interface{}) error
}

// StructSerializer is given to the body of structs and struct variants.
type StructSerializer interface {
	// SerializeField adds the named field and its value.
	SerializeField(key string, value interface{}) error

	// SkipField tells the serializer that the field is omitted.
	SkipField(key string) error
}

// Serializer is the visitor an output format implements. Each callback
// receives one shape of the data model. Nested values are given as they are
// and the serializer drives them with Serialize.
//
// Lengths are the number of items announced by the caller, or -1 when unknown.
type Serializer interface {
	SerializeBool(v bool) error

	SerializeI8(v int8) error

	SerializeI16(v int16) error

	SerializeI32(v int32) error

	SerializeI64(v int64) error

	SerializeU8(v uint8) error

	SerializeU16(v uint16) error

	SerializeU32(v uint32) error

	SerializeU64(v uint64) error

	SerializeF32(v float32) error

	SerializeF64(v float64) error

	SerializeChar(v rune) error

	SerializeStr(v string) error

	SerializeBytes(v []byte) error

	// SerializeNone is an absent optional value.
	SerializeNone() error

	// SerializeSome is a present optional value.
	SerializeSome(v interface{}) error

	// SerializeUnit is a value without any data.
	SerializeUnit() error

	// SerializeUnitStruct is a named value without any data.
	SerializeUnitStruct(name string) error

	// SerializeUnitVariant is an enum alternative without payload.
	SerializeUnitVariant(name string, index uint32, variant string) error

	// SerializeNewtypeStruct is a named wrapper around a single value.
	SerializeNewtypeStruct(name string, v interface{}) error

	// SerializeNewtypeVariant is an enum alternative with a single payload.
	SerializeNewtypeVariant(name string, index uint32, variant string, v interface{}) error

	SerializeSeq(length int, body func(SeqSerializer) error) error

	SerializeTuple(length int, body func(SeqSerializer) error) error

	SerializeTupleStruct(name string, length int, body func(SeqSerializer) error) error

	// SerializeTupleVariant is an enum alternative with unnamed fields.
	SerializeTupleVariant(name string, index uint32, variant string, length int,
		body func(SeqSerializer) error) error

	SerializeMap(length int, body func(MapSerializer) error) error

	SerializeStruct(name string, length int, body func(StructSerializer) error) error

	// SerializeStructVariant is an enum alternative with named fields.
	SerializeStructVariant(name string, index uint32, variant string, length int,
		body func(StructSerializer) error) error

	// Custom returns an error of the format built from the message. It allows a
	// value to fail the serialization with an error the format understands.
	Custom(message string) error
}
