// Package modkit assembles API modules: shared deps, build options and prefixed route mounting
package modkit

import "refstar/internal/modkit/module"

// Module is the contract every API module satisfies
type Module = module.Module
