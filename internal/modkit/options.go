package modkit

import (
	"net/http"

	"refstar/internal/modkit/httpkit"
)

// Option adjusts how a module is built
type Option func(*Built)

// WithName names the module, constructors set their own default
func WithName(name string) Option { return func(b *Built) { b.Name = name } }

// WithPrefix sets the path the module's routes mount under
func WithPrefix(prefix string) Option { return func(b *Built) { b.Prefix = prefix } }

// WithMiddlewares adds middleware run only for this module's routes
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(b *Built) { b.Mw = append(b.Mw, mw...) }
}

// WithPorts injects ports exported by another module, the importing module owns the type
func WithPorts[T any](p T) Option { return func(b *Built) { b.Ports = p } }

// WithRoutes registers extra routes next to the module's own
func WithRoutes(fn func(httpkit.Router)) Option {
	return func(b *Built) { b.extra = append(b.extra, fn) }
}
