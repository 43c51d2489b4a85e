package bencode

import (
	"fmt"

	"go.dedis.ch/benc/encoding"
	"go.dedis.ch/benc/serde/ser"
	"golang.org/x/xerrors"
)

// - implements ser.SeqSerializer
type seqSerializer struct {
	enc *encoding.Encoder
}

// SerializeElement implements ser.SeqSerializer. The element is written by a
// fresh serializer sharing the list encoder.
func (seq seqSerializer) SerializeElement(v interface{}) error {
	return ser.Serialize(NewSerializer(seq.enc), v)
}

// - implements ser.MapSerializer
type mapSerializer struct {
	dict *encoding.UnsortedDictEncoder
}

// SerializeEntry implements ser.MapSerializer. The key must serialize to a
// string or bytes.
func (m mapSerializer) SerializeEntry(key, value interface{}) error {
	k, err := dictKey(key)
	if err != nil {
		return err
	}

	return m.dict.EmitPairWith(k, func(sink *encoding.SingleItemEncoder) error {
		return ser.Serialize(NewSingleItemSerializer(sink), value)
	})
}

// - implements ser.StructSerializer
type structSerializer struct {
	dict *encoding.UnsortedDictEncoder
}

// SerializeField implements ser.StructSerializer.
func (st structSerializer) SerializeField(key string, value interface{}) error {
	return st.dict.EmitPairWith([]byte(key), func(sink *encoding.SingleItemEncoder) error {
		return ser.Serialize(NewSingleItemSerializer(sink), value)
	})
}

// SkipField implements ser.StructSerializer. Omitted fields are not written.
func (st structSerializer) SkipField(string) error {
	return nil
}

// keySerializer captures the bytes of a dictionary key. Any shape other than
// a string or bytes is refused.
//
// - implements ser.Serializer
type keySerializer struct {
	ser.UnimplementedSerializer

	key []byte
}

func (k *keySerializer) SerializeStr(v string) error {
	k.key = []byte(v)
	return nil
}

func (k *keySerializer) SerializeBytes(v []byte) error {
	k.key = append([]byte{}, v...)
	return nil
}

func (k *keySerializer) SerializeUnitVariant(name string, index uint32, variant string) error {
	return k.SerializeStr(variant)
}

func (k *keySerializer) SerializeNewtypeStruct(name string, v interface{}) error {
	return ser.Serialize(k, v)
}

func (k *keySerializer) Custom(message string) error {
	return newMessageError(message)
}

func dictKey(key interface{}) ([]byte, error) {
	ks := &keySerializer{}

	err := ser.Serialize(ks, key)
	if err != nil {
		var tagged *Error
		if xerrors.As(err, &tagged) {
			return nil, err
		}

		return nil, newMessageError(fmt.Sprintf("invalid dictionary key: %v", err))
	}

	return ks.key, nil
}
