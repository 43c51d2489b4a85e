// Package registry defines the format registry mechanism.
//
// It also provides a default implementation that will always return a format
// engine, using an empty one when the format is unknown. The empty engine
// always returns an error.
package registry

import (
	"go.dedis.ch/benc/serde"
)

// Registry is an interface to register and get format engines for a specific
// format.
type Registry interface {
	// Register takes a format and its engine and it registers them so that the
	// engine can be looked up later.
	Register(serde.Format, serde.FormatEngine)

	// Get returns the engine associated with the format.
	Get(serde.Format) serde.FormatEngine

	// Formats returns the registered formats in alphabetical order.
	Formats() []serde.Format
}
