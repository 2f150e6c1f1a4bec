package check

import (
	"fmt"
	"os"
	"sync"
)

//nolint:gochecknoglobals // Global registry required for auto-registration pattern
var (
	globalRegistry     *Registry
	globalRegistryOnce sync.Once
)

// GetGlobalRegistry returns the shared check registry.
func GetGlobalRegistry() *Registry {
	globalRegistryOnce.Do(func() {
		globalRegistry = NewRegistry()
	})

	return globalRegistry
}

// MustRegisterCheck registers a check in the global registry.
// Panics if registration fails.
func MustRegisterCheck(name string, fn Func, tags ...Tag) {
	if err := GetGlobalRegistry().Register(name, fn, tags...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Failed to register check %s: %v\n", name, err)
		panic(err)
	}
}
