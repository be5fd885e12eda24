package module

import (
	"context"

	"paydash/internal/services/api/categories/domain"
	catsvc "paydash/internal/services/api/categories/service"
)

// Ports is the port set the categories module exposes to other modules
type Ports struct {
	Categories domain.ServicePort
}

type adaptCategoriesPort struct{ svc catsvc.Service }

// Catalog lists every category with its title count
func (a adaptCategoriesPort) Catalog(ctx context.Context) domain.Catalog { return a.svc.Catalog(ctx) }

// Lookup resolves one job title
func (a adaptCategoriesPort) Lookup(ctx context.Context, in domain.LookupInput) domain.Lookup {
	return a.svc.Lookup(ctx, in)
}

// Titles lists the raw titles of a category
func (a adaptCategoriesPort) Titles(ctx context.Context, in domain.TitlesInput) domain.Titles {
	return a.svc.Titles(ctx, in)
}
