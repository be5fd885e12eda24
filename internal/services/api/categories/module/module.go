// Package module wires the category index into the API using modkit
package module

import (
	modkit "paydash/internal/modkit"
	"paydash/internal/modkit/httpkit"
	"paydash/internal/modkit/swaggerkit"
	cathttp "paydash/internal/services/api/categories/http"
	catsvc "paydash/internal/services/api/categories/service"
)

// Module serves the category taxonomy under /categories
type Module struct {
	*modkit.Base
	svc catsvc.Service
}

// New constructs the categories module over deps.Categories
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("categories"), modkit.WithPrefix("/categories")}, opts...)...)
	m := &Module{Base: b, svc: catsvc.New(deps.Categories)}

	b.Export(Ports{Categories: adaptCategoriesPort{svc: m.svc}})
	b.Serve(func(r httpkit.Router) { cathttp.Register(r, m.svc) })

	prefix := b.Prefix()
	swaggerkit.Register(swaggerkit.Document(
		swaggerkit.Operation{Path: prefix, Tag: "Categories", Summary: "Loaded categories with title counts", ID: "categoriesCatalog"},
		swaggerkit.Operation{
			Path: prefix + "/lookup", Tag: "Categories", Summary: "Category of one job title", ID: "categoriesLookup",
			Params: []swaggerkit.Param{{Name: "title", Required: true}},
		},
		swaggerkit.Operation{
			Path: prefix + "/titles", Tag: "Categories", Summary: "Job titles mapped to a category", ID: "categoriesTitles",
			Params: []swaggerkit.Param{{Name: "category", Required: true}},
		},
	))
	return m
}
