// Package http implements the proxy with the standard HTTP server. Requests are
// given an identifier and logged once served.
package http

import (
	"context"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/xid"
	"github.com/rs/zerolog"
	"go.dedis.ch/benc"
	"golang.org/x/xerrors"
)

type key int

const (
	requestIDKey key = 0

	// RequestIDHeader is the header that carries the identifier of a request.
	RequestIDHeader = "X-Request-Id"

	shutdownTimeout = 10 * time.Second
)

// HTTP is the proxy server.
//
// - implements proxy.Proxy
type HTTP struct {
	sync.Mutex

	mux        *http.ServeMux
	server     *http.Server
	logger     zerolog.Logger
	listenAddr string
	ln         net.Listener
	quit       chan struct{}
	stopOnce   sync.Once
}

// NewHTTP creates a new proxy that will listen on the address. An empty
// address or a zero port picks a free port.
func NewHTTP(listenAddr string) *HTTP {
	logger := benc.Logger.With().Str("role", "http proxy").Logger()

	nextRequestID := func() string {
		return xid.New().String()
	}

	mux := http.NewServeMux()

	return &HTTP{
		mux: mux,
		server: &http.Server{
			Handler:           tracing(nextRequestID)(logging(logger)(mux)),
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger:     logger,
		listenAddr: listenAddr,
		quit:       make(chan struct{}),
	}
}

// Listen implements proxy.Proxy. It serves the requests until Stop is called.
// A server cannot listen again after it stopped.
func (h *HTTP) Listen() error {
	ln, err := net.Listen("tcp", h.listenAddr)
	if err != nil {
		return xerrors.Errorf("failed to listen on '%s': %v", h.listenAddr, err)
	}

	h.Lock()
	h.ln = ln
	h.Unlock()

	served := make(chan struct{})
	done := make(chan struct{})

	go func() {
		defer close(done)

		select {
		case <-h.quit:
		case <-served:
			return
		}

		h.logger.Info().Msg("server is shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		h.server.SetKeepAlivesEnabled(false)

		err := h.server.Shutdown(ctx)
		if err != nil {
			h.logger.Err(err).Msg("couldn't gracefully shutdown the server")
		}
	}()

	h.logger.Info().Msgf("server is ready to handle requests at %s", displayURL(ln.Addr()))

	err = h.server.Serve(ln)
	close(served)

	<-done

	h.Lock()
	h.ln = nil
	h.Unlock()

	if err != nil && err != http.ErrServerClosed {
		return xerrors.Errorf("failed to serve: %v", err)
	}

	h.logger.Info().Msg("server stopped")

	return nil
}

// Stop implements proxy.Proxy. It can be called multiple times.
func (h *HTTP) Stop() {
	h.stopOnce.Do(func() {
		close(h.quit)
	})
}

// GetAddr implements proxy.Proxy.
func (h *HTTP) GetAddr() net.Addr {
	h.Lock()
	defer h.Unlock()

	if h.ln == nil {
		return nil
	}

	return h.ln.Addr()
}

// RegisterHandler implements proxy.Proxy.
func (h *HTTP) RegisterHandler(path string, handler func(http.ResponseWriter, *http.Request)) {
	h.mux.HandleFunc(path, handler)
}

func displayURL(addr net.Addr) *url.URL {
	u := &url.URL{Scheme: "http", Host: addr.String()}

	if strings.HasPrefix(u.Host, "[::]") {
		u.Host = "localhost" + strings.TrimPrefix(u.Host, "[::]")
	}

	return u
}

// statusRecorder remembers the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// logging is a middleware that logs every request once it is served.
func logging(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()

			defer func() {
				requestID, ok := r.Context().Value(requestIDKey).(string)
				if !ok {
					requestID = "unknown"
				}

				logger.Info().Str("requestID", requestID).
					Str("method", r.Method).
					Str("url", r.URL.Path).
					Int("status", rec.status).
					Dur("duration", time.Since(start)).
					Str("remoteAddr", r.RemoteAddr).
					Str("agent", r.UserAgent()).
					Msg("request served")
			}()

			next.ServeHTTP(rec, r)
		})
	}
}

// tracing is a middleware that gives an identifier to every request, unless
// the client provides one.
func tracing(nextRequestID func() string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(RequestIDHeader)
			if requestID == "" {
				requestID = nextRequestID()
			}

			ctx := context.WithValue(r.Context(), requestIDKey, requestID)
			w.Header().Set(RequestIDHeader, requestID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequestID returns the identifier of the request, or an empty string.
func RequestID(r *http.Request) string {
	requestID, _ := r.Context().Value(requestIDKey).(string)

	return requestID
}
