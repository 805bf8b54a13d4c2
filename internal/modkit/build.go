package modkit

import (
	"net/http"

	"refstar/internal/modkit/httpkit"
	str "refstar/internal/platform/strings"
)

// Built is the result of applying options
type Built struct {
	Name   string
	Prefix string
	Mw     []func(http.Handler) http.Handler
	Ports  any

	extra []func(httpkit.Router)
}

// Build applies opts in order, later options win
func Build(opts ...Option) Built {
	var b Built
	for _, o := range opts {
		o(&b)
	}
	return b
}

// Routes turns b into a Routes mounting register followed by any WithRoutes extras
func (b Built) Routes(register func(httpkit.Router)) Routes {
	return Routes{
		name:     str.MustString(b.Name, "module name"),
		prefix:   str.MustPrefix(b.Prefix),
		mw:       b.Mw,
		register: append([]func(httpkit.Router){register}, b.extra...),
	}
}

// Routes implements Name and MountRoutes for modules that embed it
type Routes struct {
	name     string
	prefix   string
	mw       []func(http.Handler) http.Handler
	register []func(httpkit.Router)
}

// Name is the module name
func (rt Routes) Name() string { return rt.name }

// Prefix is the normalized mount path
func (rt Routes) Prefix() string { return rt.prefix }

// MountRoutes mounts the module's routes under its prefix with its middleware
func (rt Routes) MountRoutes(r httpkit.Router) {
	r.Route(rt.prefix, func(sub httpkit.Router) {
		sub.Use(rt.mw...)
		for _, fn := range rt.register {
			fn(sub)
		}
	})
}
