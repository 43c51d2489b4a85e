// Package proxy defines the HTTP front of the module that lets clients encode
// documents without linking the library.
package proxy

import (
	"net"
	"net/http"
)

// Proxy defines the primitives of an HTTP server that handles client requests.
type Proxy interface {
	// Listen starts the server. The call is blocking until the server is
	// stopped or fails to listen.
	Listen() error

	// Stop stops the server.
	Stop()

	// GetAddr returns the address the server listens on, or nil if it is not
	// listening.
	GetAddr() net.Addr

	// RegisterHandler registers a new handler for the path.
	RegisterHandler(path string, handler func(http.ResponseWriter, *http.Request))
}
