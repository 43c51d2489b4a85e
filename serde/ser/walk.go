package ser

import (
	"encoding"
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// TagName is the struct tag read by the walker. The tag holds the name of the
// field followed by options, "-" skips the field:
//
// 	Name  string `serde:"name"`
// 	Note  string `serde:"note,omitempty"`
// 	Cache []byte `serde:"-"`
const TagName = "serde"

var (
	serializableType  = reflect.TypeOf((*Serializable)(nil)).Elem()
	textMarshalerType = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
	charType          = reflect.TypeOf(Char(0))
)

// Serialize drives the serializer with the value. The mapping between Go and
// the data model is:
//
// 	Serializable                   its own SerializeTo
// 	nil, nil pointer or interface  none
// 	non-nil pointer                some of the pointed value
// 	bool, intN, uintN, floatN      the primitive of the same width
// 	int, uint, uintptr             64-bit integers
// 	Char                           character
// 	string                         string
// 	[]byte, [N]byte                bytes
// 	encoding.TextMarshaler         string of the text form
// 	slice                          sequence
// 	array                          tuple
// 	map                            map
// 	struct without fields          unit (anonymous) or unit struct
// 	struct                         struct of the exported fields
//
// Any other type (channels, functions, complex numbers) is reported with the
// Custom error of the serializer.
func Serialize(s Serializer, v interface{}) error {
	return serializeValue(s, reflect.ValueOf(v))
}

func serializeValue(s Serializer, rv reflect.Value) error {
	if !rv.IsValid() {
		return s.SerializeNone()
	}

	typ := rv.Type()

	switch typ.Kind() {
	case reflect.Ptr:
		if rv.IsNil() {
			return s.SerializeNone()
		}

		// Methods declared on the pointer take precedence over the option.
		if pointerMethod(typ, serializableType) {
			return rv.Interface().(Serializable).SerializeTo(s)
		}
		if pointerMethod(typ, textMarshalerType) {
			return serializeText(s, rv)
		}

		return s.SerializeSome(rv.Elem().Interface())
	case reflect.Interface:
		if rv.IsNil() {
			return s.SerializeNone()
		}

		return serializeValue(s, rv.Elem())
	}

	if typ.Implements(serializableType) {
		return rv.Interface().(Serializable).SerializeTo(s)
	}

	if typ == charType {
		return s.SerializeChar(rune(rv.Int()))
	}

	if typ.Implements(textMarshalerType) {
		return serializeText(s, rv)
	}

	switch typ.Kind() {
	case reflect.Bool:
		return s.SerializeBool(rv.Bool())
	case reflect.Int8:
		return s.SerializeI8(int8(rv.Int()))
	case reflect.Int16:
		return s.SerializeI16(int16(rv.Int()))
	case reflect.Int32:
		return s.SerializeI32(int32(rv.Int()))
	case reflect.Int, reflect.Int64:
		return s.SerializeI64(rv.Int())
	case reflect.Uint8:
		return s.SerializeU8(uint8(rv.Uint()))
	case reflect.Uint16:
		return s.SerializeU16(uint16(rv.Uint()))
	case reflect.Uint32:
		return s.SerializeU32(uint32(rv.Uint()))
	case reflect.Uint, reflect.Uint64, reflect.Uintptr:
		return s.SerializeU64(rv.Uint())
	case reflect.Float32:
		return s.SerializeF32(float32(rv.Float()))
	case reflect.Float64:
		return s.SerializeF64(rv.Float())
	case reflect.String:
		return s.SerializeStr(rv.String())
	case reflect.Slice:
		if typ.Elem().Kind() == reflect.Uint8 {
			return s.SerializeBytes(rv.Bytes())
		}

		return s.SerializeSeq(rv.Len(), func(seq SeqSerializer) error {
			return serializeElements(seq, rv)
		})
	case reflect.Array:
		if typ.Elem().Kind() == reflect.Uint8 {
			buffer := make([]byte, rv.Len())
			reflect.Copy(reflect.ValueOf(buffer), rv)

			return s.SerializeBytes(buffer)
		}

		return s.SerializeTuple(rv.Len(), func(seq SeqSerializer) error {
			return serializeElements(seq, rv)
		})
	case reflect.Map:
		return s.SerializeMap(rv.Len(), func(m MapSerializer) error {
			iter := rv.MapRange()
			for iter.Next() {
				err := m.SerializeEntry(iter.Key().Interface(), iter.Value().Interface())
				if err != nil {
					return err
				}
			}

			return nil
		})
	case reflect.Struct:
		return serializeStruct(s, rv)
	default:
		return s.Custom(fmt.Sprintf("unsupported type %v", typ))
	}
}

func serializeElements(seq SeqSerializer, rv reflect.Value) error {
	for i := 0; i < rv.Len(); i++ {
		err := seq.SerializeElement(rv.Index(i).Interface())
		if err != nil {
			return err
		}
	}

	return nil
}

func serializeText(s Serializer, rv reflect.Value) error {
	text, err := rv.Interface().(encoding.TextMarshaler).MarshalText()
	if err != nil {
		return s.Custom(fmt.Sprintf("couldn't marshal %v as text: %v", rv.Type(), err))
	}

	return s.SerializeStr(string(text))
}

func serializeStruct(s Serializer, rv reflect.Value) error {
	typ := rv.Type()
	fields := cachedFields(typ)

	if len(fields) == 0 {
		if typ.Name() == "" {
			return s.SerializeUnit()
		}

		return s.SerializeUnitStruct(typ.Name())
	}

	return s.SerializeStruct(typ.Name(), len(fields), func(st StructSerializer) error {
		for _, f := range fields {
			value := rv.Field(f.index)

			var err error
			if f.omitEmpty && value.IsZero() {
				err = st.SkipField(f.name)
			} else {
				err = st.SerializeField(f.name, value.Interface())
			}

			if err != nil {
				return err
			}
		}

		return nil
	})
}

// pointerMethod returns true when the interface is implemented by the pointer
// type but not by the pointed type.
func pointerMethod(typ, iface reflect.Type) bool {
	return typ.Implements(iface) && !typ.Elem().Implements(iface)
}

type field struct {
	name      string
	index     int
	omitEmpty bool
}

var fieldCache sync.Map

func cachedFields(typ reflect.Type) []field {
	fields, found := fieldCache.Load(typ)
	if found {
		return fields.([]field)
	}

	fields, _ = fieldCache.LoadOrStore(typ, typeFields(typ))

	return fields.([]field)
}

func typeFields(typ reflect.Type) []field {
	fields := make([]field, 0, typ.NumField())

	for i := 0; i < typ.NumField(); i++ {
		sf := typ.Field(i)
		if !sf.IsExported() {
			continue
		}

		tag := sf.Tag.Get(TagName)
		if tag == "-" {
			continue
		}

		name, opts, _ := strings.Cut(tag, ",")
		if name == "" {
			name = sf.Name
		}

		f := field{
			name:  name,
			index: i,
		}

		for _, opt := range strings.Split(opts, ",") {
			if opt == "omitempty" {
				f.omitEmpty = true
			}
		}

		fields = append(fields, f)
	}

	return fields
}
