package module

import "reflect"

// PortsOf finds a T in m.Ports(), either the set itself or one of its exported fields
func PortsOf[T any](m Module) (T, bool) {
	var zero T
	set := m.Ports()
	if set == nil {
		return zero, false
	}
	if t, ok := set.(T); ok {
		return t, true
	}
	v := reflect.ValueOf(set)
	if v.Kind() != reflect.Struct {
		return zero, false
	}
	for i := range v.NumField() {
		f := v.Field(i)
		if !f.CanInterface() {
			continue
		}
		if t, ok := f.Interface().(T); ok {
			return t, true
		}
	}
	return zero, false
}

// MustPortsOf is PortsOf for wiring in main, a missing port panics
func MustPortsOf[T any](m Module) T {
	t, ok := PortsOf[T](m)
	if !ok {
		panic("module: " + m.Name() + " has no port of the requested type")
	}
	return t
}
