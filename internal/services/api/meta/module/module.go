// Package module wires health, readiness and build endpoints into the API
package module

import (
	"time"

	"refstar/internal/core/version"
	"refstar/internal/modkit"
	"refstar/internal/modkit/httpkit"
	metahttp "refstar/internal/services/api/meta/http"
)

// Module serves /meta, it exports no ports
type Module struct {
	modkit.Routes
}

// New builds the meta module, readiness pings whichever stores deps carries
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("meta"), modkit.WithPrefix("/meta")}, opts...)...)

	d := metahttp.Deps{
		ServiceName: version.Info().Service,
		StartedAt:   time.Now(),
		PG:          deps.PG,
		Lite:        deps.Lite,
	}
	return &Module{Routes: b.Routes(func(r httpkit.Router) { metahttp.Register(r, d) })}
}

// Ports implements modkit.Module
func (m *Module) Ports() any { return nil }
