package registry

import (
	"sort"
	"sync"

	"go.dedis.ch/benc/serde"
	"golang.org/x/xerrors"
)

// SimpleRegistry is a default implementation of the Registry interface. It will
// always return a format which means an empty one is returned if the key is
// unknown. It is safe for concurrent use.
//
// - implements registry.Registry
type SimpleRegistry struct {
	sync.RWMutex
	store map[serde.Format]serde.FormatEngine
}

// NewSimpleRegistry returns a new empty registry.
func NewSimpleRegistry() *SimpleRegistry {
	return &SimpleRegistry{
		store: make(map[serde.Format]serde.FormatEngine),
	}
}

// Register implements registry.Registry. It registers the engine for the given
// format, replacing any previous one.
func (r *SimpleRegistry) Register(name serde.Format, f serde.FormatEngine) {
	r.Lock()
	r.store[name] = f
	r.Unlock()
}

// Get implements registry.Registry. It returns the format engine associated
// with the format if it exists, otherwise it returns an empty format.
func (r *SimpleRegistry) Get(name serde.Format) serde.FormatEngine {
	r.RLock()
	defer r.RUnlock()

	fmt := r.store[name]
	if fmt == nil {
		return emptyFormat{name: name}
	}

	return fmt
}

// Formats implements registry.Registry.
func (r *SimpleRegistry) Formats() []serde.Format {
	r.RLock()
	defer r.RUnlock()

	formats := make([]serde.Format, 0, len(r.store))
	for name := range r.store {
		formats = append(formats, name)
	}

	sort.Slice(formats, func(i, j int) bool {
		return formats[i] < formats[j]
	})

	return formats
}

// EmptyFormat is an implementation of the FormatEngine interface. It implements
// the functions but always returns an error so that the serialization and
// deserialization can fail with meaningful errors without checking the format
// existance.
//
// - implements serde.FormatEngine
type emptyFormat struct {
	name serde.Format
}

// Encode implements serde.FormatEngine. It always returns an error.
func (f emptyFormat) Encode(serde.Context, serde.Message) ([]byte, error) {
	return nil, xerrors.Errorf("format '%s' is not implemented", f.name)
}

// Decode implements serde.FormatEngine. It always returns an error.
func (f emptyFormat) Decode(serde.Context, []byte) (serde.Message, error) {
	return nil, xerrors.Errorf("format '%s' is not implemented", f.name)
}
