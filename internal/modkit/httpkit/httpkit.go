// Package httpkit is the routing surface modules register against
// modules use it instead of importing the platform http package
package httpkit

import (
	"net/http"

	phttp "refstar/internal/platform/net/http"
)

type (
	// Router is the platform router seam
	Router = phttp.Router

	// Envelope is the body of every response, named in swagger annotations
	Envelope = phttp.Envelope
)

// PostJSON registers a POST handler whose T body is bound and validated first
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Post(path, phttp.JSONHandler(h))
}

// Get registers a GET handler, its result or error is enveloped
func Get(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, phttp.NoBody(h))
}

// MountAPIV1 scopes mount under /api/v1 with mw applied to every route in it
func MountAPIV1(r Router, mw []func(http.Handler) http.Handler, mount func(Router)) {
	r.Route("/api/v1", func(api Router) {
		api.Use(mw...)
		mount(api)
	})
}
