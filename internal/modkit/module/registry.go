package module

import (
	"maps"
	"slices"
	"sync"
)

// registry maps mounted module names to their port sets
var registry struct {
	sync.RWMutex
	ports map[string]any
}

// Register records the ports of a mounted module, a later call for name wins
func Register(name string, ports any) {
	registry.Lock()
	defer registry.Unlock()
	if registry.ports == nil {
		registry.ports = map[string]any{}
	}
	registry.ports[name] = ports
}

// PortsAs returns the ports registered under name when they are a T
func PortsAs[T any](name string) (T, bool) {
	registry.RLock()
	defer registry.RUnlock()
	t, ok := registry.ports[name].(T)
	return t, ok
}

// Names lists registered modules in order
func Names() []string {
	registry.RLock()
	defer registry.RUnlock()
	return slices.Sorted(maps.Keys(registry.ports))
}

// Reset forgets every registration
func Reset() {
	registry.Lock()
	registry.ports = nil
	registry.Unlock()
}
