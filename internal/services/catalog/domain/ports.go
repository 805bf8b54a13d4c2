// Package domain holds the catalog ports shared by the selection service and the CLI
// the catalog is read only here, loading it belongs to the planning database
package domain

import (
	"context"

	"refstar/internal/core/astrometry"
)

// Reader is a read session over the star catalog
// it satisfies the selector Catalog contract
type Reader interface {
	// Lookup returns every row whose name equals name exactly
	Lookup(ctx context.Context, name string) ([]astrometry.Entry, error)
	// ByClass returns every row of class c in catalog order
	ByClass(ctx context.Context, c astrometry.Class) ([]astrometry.Entry, error)
}

// ViewPort runs fn inside one read only transaction so every read sees the same snapshot
type ViewPort interface {
	View(ctx context.Context, fn func(Reader) error) error
}

// Stats summarizes catalog contents per class
type Stats struct {
	Total   int64
	ByClass map[string]int64
}

// StatsPort reports catalog contents
type StatsPort interface {
	Stats(ctx context.Context) (Stats, error)
}
