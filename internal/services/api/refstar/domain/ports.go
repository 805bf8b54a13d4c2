package domain

import "context"

// ServicePort is consumed by handlers, the CLI and other modules
type ServicePort interface {
	Select(ctx context.Context, in SelectInput) (SelectOutput, error)
	Pointing(ctx context.Context, in PointingInput) (PointingOutput, error)
	Catalog(ctx context.Context) (CatalogOutput, error)
}
