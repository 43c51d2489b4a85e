package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"go.dedis.ch/benc/document"
	"go.dedis.ch/benc/encoding"
	"go.dedis.ch/benc/testing/fake"
)

func TestEncodeHandler(t *testing.T) {
	handler := EncodeHandler(zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/encode", strings.NewReader(`{"b":1,"a":"x"}`))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, document.BencodeMediaType, rec.Header().Get("Content-Type"))
	require.Equal(t, "d1:a1:x1:bi1ee", rec.Body.String())

	req = httptest.NewRequest(http.MethodPost, "/encode?from=yaml", strings.NewReader("- 1\n- two\n"))

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "li1e3:twoe", rec.Body.String())
}

func TestEncodeHandler_Failures(t *testing.T) {
	logger, check := fake.CheckLog("encoding failed",
		fake.Field(zerolog.LevelFieldName, zerolog.WarnLevel))
	handler := EncodeHandler(logger, encoding.WithMaxDepth(1))

	var table = []struct {
		method string
		target string
		ctype  string
		body   string
		status int
		msg    string
	}{
		{
			method: http.MethodGet, target: "/encode",
			status: http.StatusMethodNotAllowed, msg: "only POST requests are allowed",
		},
		{
			method: http.MethodPost, target: "/encode",
			status: http.StatusUnsupportedMediaType, msg: "missing input format",
		},
		{
			method: http.MethodPost, target: "/encode?from=xml",
			status: http.StatusUnsupportedMediaType, msg: "unknown format 'xml'",
		},
		{
			method: http.MethodPost, target: "/encode", ctype: "text/plain",
			status: http.StatusUnsupportedMediaType, msg: "unsupported media type 'text/plain'",
		},
		{
			method: http.MethodPost, target: "/encode?from=bencode",
			status: http.StatusUnsupportedMediaType, msg: "bencode input is not supported",
		},
		{
			method: http.MethodPost, target: "/encode?from=json", body: "{",
			status: http.StatusBadRequest,
			msg:    "couldn't decode document: couldn't unmarshal: unexpected EOF",
		},
		{
			method: http.MethodPost, target: "/encode?from=json", body: "[[1]]",
			status: http.StatusUnprocessableEntity,
			msg: "couldn't encode document: couldn't marshal: " +
				"encoding failed: nesting too deep: limit is 1",
		},
	}

	for _, entry := range table {
		req := httptest.NewRequest(entry.method, entry.target, strings.NewReader(entry.body))
		if entry.ctype != "" {
			req.Header.Set("Content-Type", entry.ctype)
		}

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, entry.status, rec.Code, entry.target)
		require.Equal(t, entry.msg+"\n", rec.Body.String())
	}

	check(t)
}

func TestNewMetricsHandler(t *testing.T) {
	counter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "benc_test_requests_total",
		Help: "counter used by the tests",
	})
	counter.Inc()

	handler, err := NewMetricsHandler(counter)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "benc_test_requests_total 1")

	_, err = NewMetricsHandler(counter, counter)
	require.Error(t, err)
	require.Regexp(t, "^failed to register: ", err.Error())
}
