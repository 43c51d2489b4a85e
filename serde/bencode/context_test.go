package bencode

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"go.dedis.ch/benc/encoding"
	"go.dedis.ch/benc/serde"
)

func TestEngine_GetFormat(t *testing.T) {
	ctx := NewContext()
	require.Equal(t, serde.FormatBencode, ctx.GetFormat())
}

func TestEngine_Marshal(t *testing.T) {
	ctx := NewContext()

	values := testutil.ToFloat64(promValues)

	data, err := ctx.Marshal(record{Name: "alice", Age: 7})
	require.NoError(t, err)
	require.Equal(t, "d3:agei7e4:name5:alice4:tagslee", string(data))
	require.Equal(t, values+1, testutil.ToFloat64(promValues))

	failures := testutil.ToFloat64(promFailures.WithLabelValues("message"))

	_, err = ctx.Marshal(failing{})
	require.EqualError(t, err, "value is broken")
	require.Equal(t, failures+1, testutil.ToFloat64(promFailures.WithLabelValues("message")))

	ctx = NewContext(encoding.WithMaxDepth(1))
	failures = testutil.ToFloat64(promFailures.WithLabelValues("encoding"))

	_, err = ctx.Marshal([][]int{{1}})
	require.EqualError(t, err, "encoding failed: nesting too deep: limit is 1")
	require.Equal(t, failures+1, testutil.ToFloat64(promFailures.WithLabelValues("encoding")))
}

func TestEngine_Unmarshal(t *testing.T) {
	ctx := NewContext()

	err := ctx.Unmarshal([]byte("i1e"), new(int))
	require.EqualError(t, err, "bencode decoding is not supported")
}

func TestFailureLabel(t *testing.T) {
	require.Equal(t, "encoding", failureLabel(newEncodingError(encoding.ErrUnfinished)))
	require.Equal(t, "message", failureLabel(newMessageError("oops")))
	require.Equal(t, "other", failureLabel(encoding.ErrUnfinished))
}
