package gen

import (
	"fmt"
	"sort"
	"sync"
)

// OutputFile represents a single generated file.
type OutputFile struct {
	Path    string // relative to the generator's output directory
	Content []byte
}

// Generator is implemented by every output target. Adding a target means
// implementing this interface and calling Register from init.
type Generator interface {
	// Name returns the generator name (e.g., "exports", "java").
	Name() string

	// Generate produces output files for the bindings in ctx.
	Generate(ctx *Context) ([]*OutputFile, error)
}

var (
	registryMu sync.RWMutex
	registry   = map[string]func() Generator{}
)

// Register adds a generator factory to the registry.
func Register(name string, factory func() Generator) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := registry[name]; exists {
		panic(fmt.Sprintf("generator %q already registered", name))
	}
	registry[name] = factory
}

// Get returns a new instance of the named generator.
func Get(name string) (Generator, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	factory, ok := registry[name]
	if !ok {
		return nil, false
	}
	return factory(), true
}

// All returns the names of all registered generators, sorted.
func All() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
