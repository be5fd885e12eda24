package domain

import "context"

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	// Catalog lists every category with its title count
	Catalog(ctx context.Context) Catalog
	// Lookup resolves one job title, unknown titles are Uncategorized
	Lookup(ctx context.Context, in LookupInput) Lookup
	// Titles lists the raw titles of a category, empty when unknown
	Titles(ctx context.Context, in TitlesInput) Titles
}
