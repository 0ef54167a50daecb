package modkit

import (
	"net/http"

	"cinebot/internal/modkit/httpkit"
	str "cinebot/internal/platform/strings"
)

// Option mutates build configuration for a module
type Option func(*Built)

// Built is the resolved module configuration
type Built struct {
	Name   string
	Prefix string
	Mw     []func(http.Handler) http.Handler
	Ports  any
}

// WithName sets a module name used in logs and the port registry
func WithName(name string) Option {
	return func(b *Built) { b.Name = name }
}

// WithPrefix mounts a module under a path prefix
func WithPrefix(prefix string) Option {
	return func(b *Built) { b.Prefix = prefix }
}

// WithMiddlewares attaches per module middleware in order
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(b *Built) { b.Mw = append(b.Mw, mw...) }
}

// WithPorts injects ports another module declared, the importing module owns T
func WithPorts[T any](p T) Option {
	return func(b *Built) { b.Ports = p }
}

// Build applies defaults first, then caller options
func Build(defaults []Option, opts ...Option) Built {
	var b Built
	for _, o := range append(defaults, opts...) {
		o(&b)
	}
	return b
}

// Mount registers routes under the module prefix with its middleware applied
func (b Built) Mount(r httpkit.Router, register func(httpkit.Router)) {
	r.Route(str.MustPrefix(b.Prefix), func(rr httpkit.Router) {
		if len(b.Mw) > 0 {
			rr.Use(b.Mw...)
		}
		register(rr)
	})
}
