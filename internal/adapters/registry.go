package adapters

import (
	"sort"
	"strings"
)

// Registry resolves case-insensitive source identifiers (including aliases)
// to adapters. It is constructed once at process start and passed to
// whatever resolves sources; there is no package-level instance.
type Registry struct {
	byID    map[string]Adapter
	sources []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byID: make(map[string]Adapter)}
}

// NewDefaultRegistry returns a registry with the built-in CSV adapters
// registered under their usual aliases.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(NewTAAFT(), "taaft", "theresanaiforthat")
	r.Register(NewProductHunt(), "producthunt", "ph")
	r.Register(NewHexofy(), "hexofy.com")
	return r
}

// Register adds an adapter under its canonical source name plus any aliases.
// Later registrations win, which lets callers override a built-in adapter.
// Registration happens at startup only; the registry is read-only afterwards,
// so Resolve and Sources are safe for concurrent use.
func (r *Registry) Register(adapter Adapter, aliases ...string) {
	ids := append([]string{adapter.SourceName()}, aliases...)
	for _, id := range ids {
		r.byID[normalizeID(id)] = adapter
	}
	r.sources = r.sources[:0]
	for id := range r.byID {
		r.sources = append(r.sources, id)
	}
	sort.Strings(r.sources)
}

// Resolve returns the adapter registered for id. Unknown ids fail with an
// *UnsupportedSourceError carrying the registered ids.
func (r *Registry) Resolve(id string) (Adapter, error) {
	adapter, ok := r.byID[normalizeID(id)]
	if !ok {
		return nil, &UnsupportedSourceError{Source: id, Available: r.Sources()}
	}
	return adapter, nil
}

// Sources returns the sorted list of registered identifiers and aliases.
func (r *Registry) Sources() []string {
	return append([]string(nil), r.sources...)
}

func normalizeID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}
