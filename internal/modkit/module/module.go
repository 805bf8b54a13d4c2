// Package module is the contract API modules satisfy and the lookup of their ports
package module

import phttp "refstar/internal/platform/net/http"

// Module mounts its routes and exposes a port set other modules are built from
type Module interface {
	Name() string
	MountRoutes(r phttp.Router)

	// Ports is the module's port set, nil when it exports none
	Ports() any
}
