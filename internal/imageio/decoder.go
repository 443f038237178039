package imageio

import (
	"io"
	"sort"
	"sync"
)

// Priority is a decoder's try-order tier; lower numeric value is tried
// first (Highest before Lowest), per section 6.
type Priority int

const (
	Highest Priority = iota
	High
	Normal
	Low
	Lowest
)

// Decoder is the capability set a registered image format implements.
// Render/Flip/Rotate/Free are optional: a nil hook means the caller
// falls back to the default frame-array pixmap primitives (section
// 4.3's "dispatch to decoder hooks if provided").
type Decoder interface {
	// Name identifies the decoder for diagnostics and registry lookups.
	Name() string

	// Probe reports whether this decoder can plausibly handle r without
	// consuming it irrecoverably; implementations that must consume the
	// reader to probe should wrap it so Decode still sees the full
	// stream.
	Probe(r io.Reader) bool

	// Decode reads r fully and populates img's frames/thumbnail/format/
	// metadata. It returns a wrapped ErrFormatError or ErrIO on failure.
	Decode(r io.Reader, img *Image) error
}

// HookedDecoder is implemented by decoders that override the default
// frame-array render/flip/rotate behavior (vector formats that must
// re-rasterize).
type HookedDecoder interface {
	Decoder
	Hooks() Hooks
}

// Hooks holds the optional custom overrides named in section 3's Image
// data model. Any nil field falls back to the default pixmap-primitive
// implementation.
type Hooks struct {
	Render func(img *Image, frame, dstW, dstH int) error
	Flip   func(img *Image, vertical bool) error
	Rotate func(img *Image, degrees int) error
	Free   func(img *Image)
}

type registryEntry struct {
	decoder  Decoder
	priority Priority
}

// Registry holds registered decoders and tries them in priority order
// on Load, stopping at the first one whose Probe claims the data.
type Registry struct {
	mu      sync.RWMutex
	entries []registryEntry
}

// NewRegistry returns an empty decoder registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a decoder at the given priority tier. Decoders within
// the same tier are tried in registration order.
func (r *Registry) Register(d Decoder, p Priority) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, registryEntry{decoder: d, priority: p})
	sort.SliceStable(r.entries, func(i, j int) bool {
		return r.entries[i].priority < r.entries[j].priority
	})
}

// Decoders returns the registered decoders in try order.
func (r *Registry) Decoders() []Decoder {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Decoder, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.decoder
	}
	return out
}
