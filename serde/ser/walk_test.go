package ser

import (
	"fmt"
	"math"
	"net"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/xerrors"
)

func TestSerialize_Primitives(t *testing.T) {
	type myInt int16

	cases := []struct {
		value    interface{}
		expected string
	}{
		{true, "bool(true)"},
		{int8(-1), "i8(-1)"},
		{int16(2), "i16(2)"},
		{int32(3), "i32(3)"},
		{int64(math.MinInt64), "i64(-9223372036854775808)"},
		{42, "i64(42)"},
		{myInt(7), "i16(7)"},
		{uint8(255), "u8(255)"},
		{uint16(4), "u16(4)"},
		{uint32(5), "u32(5)"},
		{uint64(math.MaxUint64), "u64(18446744073709551615)"},
		{uint(6), "u64(6)"},
		{uintptr(8), "u64(8)"},
		{float32(1.5), "f32(1.5)"},
		{2.25, "f64(2.25)"},
		{Char('é'), "char(233)"},
		{'é', "i32(233)"},
		{"abc", `str("abc")`},
		{[]byte{1, 2}, "bytes(0102)"},
		{[3]byte{1, 2, 3}, "bytes(010203)"},
	}

	for _, c := range cases {
		require.Equal(t, c.expected, trace(t, c.value), "%T", c.value)
	}
}

func TestSerialize_Options(t *testing.T) {
	value := 5

	require.Equal(t, "none", trace(t, nil))
	require.Equal(t, "none", trace(t, (*int)(nil)))
	require.Equal(t, "some(i64(5))", trace(t, &value))

	var itf fmt.Stringer
	require.Equal(t, "none", trace(t, []interface{}{itf}[0]))
	require.Equal(t, "seq(1)[none]", trace(t, []fmt.Stringer{nil}))
	require.Equal(t, `seq(1)[str("1s")]`, trace(t, []interface{}{time.Second.String()}))
}

func TestSerialize_Composites(t *testing.T) {
	require.Equal(t, "seq(2)[i64(1),i64(2)]", trace(t, []int{1, 2}))
	require.Equal(t, "seq(0)[]", trace(t, []string(nil)))
	require.Equal(t, `tuple(2)[str("a"),str("b")]`, trace(t, [2]string{"a", "b"}))
	require.Equal(t, `map(2){str("a"):i64(1),str("b"):i64(2)}`,
		trace(t, map[string]int{"b": 2, "a": 1}))
	require.Equal(t, "unit", trace(t, struct{}{}))

	type empty struct{}
	require.Equal(t, "unit_struct(empty)", trace(t, empty{}))

	type hidden struct {
		value int
		Skip  int `serde:"-"`
	}
	require.Equal(t, "unit_struct(hidden)", trace(t, hidden{value: 1, Skip: 2}))
}

func TestSerialize_Struct(t *testing.T) {
	type inner struct {
		A bool
	}

	type outer struct {
		Name    string `serde:"name"`
		Note    string `serde:"note,omitempty"`
		Count   int    `serde:",omitempty"`
		Inner   inner
		Pointer *inner
		private int
		Ignored int `serde:"-"`
	}

	value := outer{Name: "n", Inner: inner{A: true}, private: 1, Ignored: 2}

	require.Equal(t,
		`struct(outer,5){name:str("n"),-note,-Count,Inner:struct(inner,1){A:bool(true)},Pointer:none}`,
		trace(t, value))

	value.Note = "x"
	value.Pointer = &inner{}
	require.Equal(t,
		`struct(outer,5){name:str("n"),note:str("x"),-Count,Inner:struct(inner,1){A:bool(true)},`+
			`Pointer:some(struct(inner,1){A:bool(false)})}`,
		trace(t, value))
}

func TestSerialize_Serializable(t *testing.T) {
	require.Equal(t, `newtype_variant(Shape,0,Circle)[f64(1)]`, trace(t, shape{radius: 1}))
	require.Equal(t, `some(newtype_variant(Shape,0,Circle)[f64(1)])`, trace(t, &shape{radius: 1}))
	require.Equal(t, `unit_variant(Shape,1,Point)`, trace(t, shape{}))
	require.Equal(t, `unit_variant(Level,0,Low)`, trace(t, &level{}))
	require.Equal(t, `none`, trace(t, (*level)(nil)))
}

func TestSerialize_TextMarshaler(t *testing.T) {
	date := time.Date(2020, 10, 7, 0, 0, 0, 0, time.UTC)

	require.Equal(t, `str("2020-10-07T00:00:00Z")`, trace(t, date))
	require.Equal(t, `str("127.0.0.1")`, trace(t, net.IPv4(127, 0, 0, 1)))
}

func TestSerialize_Unsupported(t *testing.T) {
	err := Serialize(newTracer(), make(chan int))
	require.EqualError(t, err, "unsupported type chan int")

	err = Serialize(newTracer(), []func(){nil})
	require.EqualError(t, err, "unsupported type func()")

	err = Serialize(newTracer(), complex(1, 2))
	require.EqualError(t, err, "unsupported type complex128")

	err = Serialize(newTracer(), badText{})
	require.EqualError(t, err, "couldn't marshal ser.badText as text: oops")
}

func TestSerialize_ErrorPropagation(t *testing.T) {
	err := Serialize(newTracer(), []interface{}{1, failing{}})
	require.EqualError(t, err, "oops")

	err = Serialize(newTracer(), map[string]interface{}{"a": failing{}})
	require.EqualError(t, err, "oops")

	err = Serialize(newTracer(), struct{ A failing }{})
	require.EqualError(t, err, "oops")
}

func TestUnimplementedSerializer(t *testing.T) {
	var s Serializer = UnimplementedSerializer{}

	calls := map[string]func() error{
		"bool":            func() error { return s.SerializeBool(true) },
		"i8":              func() error { return s.SerializeI8(0) },
		"i16":             func() error { return s.SerializeI16(0) },
		"i32":             func() error { return s.SerializeI32(0) },
		"i64":             func() error { return s.SerializeI64(0) },
		"u8":              func() error { return s.SerializeU8(0) },
		"u16":             func() error { return s.SerializeU16(0) },
		"u32":             func() error { return s.SerializeU32(0) },
		"u64":             func() error { return s.SerializeU64(0) },
		"f32":             func() error { return s.SerializeF32(0) },
		"f64":             func() error { return s.SerializeF64(0) },
		"char":            func() error { return s.SerializeChar(0) },
		"string":          func() error { return s.SerializeStr("") },
		"bytes":           func() error { return s.SerializeBytes(nil) },
		"none":            func() error { return s.SerializeNone() },
		"some":            func() error { return s.SerializeSome(nil) },
		"unit":            func() error { return s.SerializeUnit() },
		"unit struct":     func() error { return s.SerializeUnitStruct("") },
		"unit variant":    func() error { return s.SerializeUnitVariant("", 0, "") },
		"newtype struct":  func() error { return s.SerializeNewtypeStruct("", nil) },
		"newtype variant": func() error { return s.SerializeNewtypeVariant("", 0, "", nil) },
		"sequence":        func() error { return s.SerializeSeq(0, nil) },
		"tuple":           func() error { return s.SerializeTuple(0, nil) },
		"tuple struct":    func() error { return s.SerializeTupleStruct("", 0, nil) },
		"tuple variant":   func() error { return s.SerializeTupleVariant("", 0, "", 0, nil) },
		"map":             func() error { return s.SerializeMap(0, nil) },
		"struct":          func() error { return s.SerializeStruct("", 0, nil) },
		"struct variant":  func() error { return s.SerializeStructVariant("", 0, "", 0, nil) },
	}

	for what, call := range calls {
		require.EqualError(t, call(), what+" is not supported")
	}

	require.EqualError(t, s.Custom("oops"), "oops")
}

// -----------------------------------------------------------------------------
// Utility functions

type shape struct {
	radius float64
}

func (s shape) SerializeTo(out Serializer) error {
	if s.radius == 0 {
		return out.SerializeUnitVariant("Shape", 1, "Point")
	}

	return out.SerializeNewtypeVariant("Shape", 0, "Circle", s.radius)
}

type level struct{}

func (l *level) SerializeTo(out Serializer) error {
	return out.SerializeUnitVariant("Level", 0, "Low")
}

type failing struct{}

func (failing) SerializeTo(Serializer) error {
	return xerrors.New("oops")
}

type badText struct{}

func (badText) MarshalText() ([]byte, error) {
	return nil, xerrors.New("oops")
}

func trace(t *testing.T, v interface{}) string {
	tr := newTracer()

	err := Serialize(tr, v)
	require.NoError(t, err)

	return tr.out.String()
}

// tracer is a serializer that writes a textual trace of the callbacks. Map
// entries are sorted so that the trace is deterministic.
type tracer struct {
	out *strings.Builder
}

func newTracer() tracer {
	return tracer{out: new(strings.Builder)}
}

func (tr tracer) printf(format string, args ...interface{}) error {
	fmt.Fprintf(tr.out, format, args...)
	return nil
}

func (tr tracer) SerializeBool(v bool) error { return tr.printf("bool(%v)", v) }
func (tr tracer) SerializeI8(v int8) error { return tr.printf("i8(%d)", v) }
func (tr tracer) SerializeI16(v int16) error { return tr.printf("i16(%d)", v) }
func (tr tracer) SerializeI32(v int32) error { return tr.printf("i32(%d)", v) }
func (tr tracer) SerializeI64(v int64) error { return tr.printf("i64(%d)", v) }
func (tr tracer) SerializeU8(v uint8) error { return tr.printf("u8(%d)", v) }
func (tr tracer) SerializeU16(v uint16) error { return tr.printf("u16(%d)", v) }
func (tr tracer) SerializeU32(v uint32) error { return tr.printf("u32(%d)", v) }
func (tr tracer) SerializeU64(v uint64) error { return tr.printf("u64(%d)", v) }
func (tr tracer) SerializeF32(v float32) error { return tr.printf("f32(%v)", v) }
func (tr tracer) SerializeF64(v float64) error { return tr.printf("f64(%v)", v) }
func (tr tracer) SerializeChar(v rune) error { return tr.printf("char(%d)", v) }
func (tr tracer) SerializeStr(v string) error { return tr.printf("str(%q)", v) }
func (tr tracer) SerializeBytes(v []byte) error { return tr.printf("bytes(%x)", v) }
func (tr tracer) SerializeNone() error { return tr.printf("none") }
func (tr tracer) SerializeUnit() error { return tr.printf("unit") }
func (tr tracer) Custom(message string) error { return xerrors.New(message) }
func (tr tracer) SerializeUnitStruct(n string) error {
	return tr.printf("unit_struct(%s)", n)
}

func (tr tracer) SerializeSome(v interface{}) error {
	tr.printf("some(")
	err := Serialize(tr, v)
	tr.printf(")")
	return err
}

func (tr tracer) SerializeUnitVariant(name string, index uint32, variant string) error {
	return tr.printf("unit_variant(%s,%d,%s)", name, index, variant)
}

func (tr tracer) SerializeNewtypeStruct(name string, v interface{}) error {
	tr.printf("newtype_struct(%s)[", name)
	err := Serialize(tr, v)
	tr.printf("]")
	return err
}

func (tr tracer) SerializeNewtypeVariant(name string, index uint32, variant string,
	v interface{}) error {

	tr.printf("newtype_variant(%s,%d,%s)[", name, index, variant)
	err := Serialize(tr, v)
	tr.printf("]")
	return err
}

func (tr tracer) seq(head string, body func(SeqSerializer) error) error {
	tr.printf("%s[", head)
	err := body(&tracerSeq{tracer: tr})
	tr.printf("]")
	return err
}

func (tr tracer) SerializeSeq(length int, body func(SeqSerializer) error) error {
	return tr.seq(fmt.Sprintf("seq(%d)", length), body)
}

func (tr tracer) SerializeTuple(length int, body func(SeqSerializer) error) error {
	return tr.seq(fmt.Sprintf("tuple(%d)", length), body)
}

func (tr tracer) SerializeTupleStruct(name string, length int,
	body func(SeqSerializer) error) error {

	return tr.seq(fmt.Sprintf("tuple_struct(%s,%d)", name, length), body)
}

func (tr tracer) SerializeTupleVariant(name string, index uint32, variant string,
	length int, body func(SeqSerializer) error) error {

	return tr.seq(fmt.Sprintf("tuple_variant(%s,%d,%s,%d)", name, index, variant, length), body)
}

func (tr tracer) SerializeMap(length int, body func(MapSerializer) error) error {
	m := &tracerMap{}

	err := body(m)
	if err != nil {
		return err
	}

	sort.Strings(m.entries)

	return tr.printf("map(%d){%s}", length, strings.Join(m.entries, ","))
}

func (tr tracer) structure(head string, body func(StructSerializer) error) error {
	tr.printf("%s{", head)
	err := body(&tracerStruct{tracer: tr})
	tr.printf("}")
	return err
}

func (tr tracer) SerializeStruct(name string, length int,
	body func(StructSerializer) error) error {

	return tr.structure(fmt.Sprintf("struct(%s,%d)", name, length), body)
}

func (tr tracer) SerializeStructVariant(name string, index uint32, variant string,
	length int, body func(StructSerializer) error) error {

	return tr.structure(fmt.Sprintf("struct_variant(%s,%d,%s,%d)", name, index, variant, length), body)
}

type tracerSeq struct {
	tracer
	count int
}

func (seq *tracerSeq) SerializeElement(v interface{}) error {
	if seq.count > 0 {
		seq.printf(",")
	}
	seq.count++

	return Serialize(seq.tracer, v)
}

type tracerMap struct {
	entries []string
}

func (m *tracerMap) SerializeEntry(key, value interface{}) error {
	k := newTracer()
	err := Serialize(k, key)
	if err != nil {
		return err
	}

	v := newTracer()
	err = Serialize(v, value)
	if err != nil {
		return err
	}

	m.entries = append(m.entries, k.out.String()+":"+v.out.String())

	return nil
}

type tracerStruct struct {
	tracer
	count int
}

func (st *tracerStruct) separator() {
	if st.count > 0 {
		st.printf(",")
	}
	st.count++
}

func (st *tracerStruct) SerializeField(key string, value interface{}) error {
	st.separator()
	st.printf("%s:", key)

	return Serialize(st.tracer, value)
}

func (st *tracerStruct) SkipField(key string) error {
	st.separator()

	return st.printf("-%s", key)
}
