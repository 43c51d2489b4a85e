package ser

import "golang.org/x/xerrors"

// UnimplementedSerializer is a default implementation of the serializer
// interface which returns an error to each callback. It can be embedded into a
// serializer that only accepts a subset of the data model.
//
// - implements ser.Serializer
type UnimplementedSerializer struct{}

func unsupported(what string) error {
	return xerrors.Errorf("%s is not supported", what)
}

// SerializeBool implements ser.Serializer. It returns an error.
func (UnimplementedSerializer) SerializeBool(bool) error {
	return unsupported("bool")
}

// SerializeI8 implements ser.Serializer. It returns an error.
func (UnimplementedSerializer) SerializeI8(int8) error {
	return unsupported("i8")
}

// SerializeI16 implements ser.Serializer. It returns an error.
func (UnimplementedSerializer) SerializeI16(int16) error {
	return unsupported("i16")
}

// SerializeI32 implements ser.Serializer. It returns an error.
func (UnimplementedSerializer) SerializeI32(int32) error {
	return unsupported("i32")
}

// SerializeI64 implements ser.Serializer. It returns an error.
func (UnimplementedSerializer) SerializeI64(int64) error {
	return unsupported("i64")
}

// SerializeU8 implements ser.Serializer. It returns an error.
func (UnimplementedSerializer) SerializeU8(uint8) error {
	return unsupported("u8")
}

// SerializeU16 implements ser.Serializer. It returns an error.
func (UnimplementedSerializer) SerializeU16(uint16) error {
	return unsupported("u16")
}

// SerializeU32 implements ser.Serializer. It returns an error.
func (UnimplementedSerializer) SerializeU32(uint32) error {
	return unsupported("u32")
}

// SerializeU64 implements ser.Serializer. It returns an error.
func (UnimplementedSerializer) SerializeU64(uint64) error {
	return unsupported("u64")
}

// SerializeF32 implements ser.Serializer. It returns an error.
func (UnimplementedSerializer) SerializeF32(float32) error {
	return unsupported("f32")
}

// SerializeF64 implements ser.Serializer. It returns an error.
func (UnimplementedSerializer) SerializeF64(float64) error {
	return unsupported("f64")
}

// SerializeChar implements ser.Serializer. It returns an error.
func (UnimplementedSerializer) SerializeChar(rune) error {
	return unsupported("char")
}

// SerializeStr implements ser.Serializer. It returns an error.
func (UnimplementedSerializer) SerializeStr(string) error {
	return unsupported("string")
}

// SerializeBytes implements ser.Serializer. It returns an error.
func (UnimplementedSerializer) SerializeBytes([]byte) error {
	return unsupported("bytes")
}

// SerializeNone implements ser.Serializer. It returns an error.
func (UnimplementedSerializer) SerializeNone() error {
	return unsupported("none")
}

// SerializeSome implements ser.Serializer. It returns an error.
func (UnimplementedSerializer) SerializeSome(interface{}) error {
	return unsupported("some")
}

// SerializeUnit implements ser.Serializer. It returns an error.
func (UnimplementedSerializer) SerializeUnit() error {
	return unsupported("unit")
}

// SerializeUnitStruct implements ser.Serializer. It returns an error.
func (UnimplementedSerializer) SerializeUnitStruct(string) error {
	return unsupported("unit struct")
}

// SerializeUnitVariant implements ser.Serializer. It returns an error.
func (UnimplementedSerializer) SerializeUnitVariant(string, uint32, string) error {
	return unsupported("unit variant")
}

// SerializeNewtypeStruct implements ser.Serializer. It returns an error.
func (UnimplementedSerializer) SerializeNewtypeStruct(string, interface{}) error {
	return unsupported("newtype struct")
}

// SerializeNewtypeVariant implements ser.Serializer. It returns an error.
func (UnimplementedSerializer) SerializeNewtypeVariant(string, uint32, string, interface{}) error {
	return unsupported("newtype variant")
}

// SerializeSeq implements ser.Serializer. It returns an error.
func (UnimplementedSerializer) SerializeSeq(int, func(SeqSerializer) error) error {
	return unsupported("sequence")
}

// SerializeTuple implements ser.Serializer. It returns an error.
func (UnimplementedSerializer) SerializeTuple(int, func(SeqSerializer) error) error {
	return unsupported("tuple")
}

// SerializeTupleStruct implements ser.Serializer. It returns an error.
func (UnimplementedSerializer) SerializeTupleStruct(string, int, func(SeqSerializer) error) error {
	return unsupported("tuple struct")
}

// SerializeTupleVariant implements ser.Serializer. It returns an error.
func (UnimplementedSerializer) SerializeTupleVariant(string, uint32, string, int,
	func(SeqSerializer) error) error {

	return unsupported("tuple variant")
}

// SerializeMap implements ser.Serializer. It returns an error.
func (UnimplementedSerializer) SerializeMap(int, func(MapSerializer) error) error {
	return unsupported("map")
}

// SerializeStruct implements ser.Serializer. It returns an error.
func (UnimplementedSerializer) SerializeStruct(string, int, func(StructSerializer) error) error {
	return unsupported("struct")
}

// SerializeStructVariant implements ser.Serializer. It returns an error.
func (UnimplementedSerializer) SerializeStructVariant(string, uint32, string, int,
	func(StructSerializer) error) error {

	return unsupported("struct variant")
}

// Custom implements ser.Serializer. It returns an error with the message.
func (UnimplementedSerializer) Custom(message string) error {
	return xerrors.New(message)
}
