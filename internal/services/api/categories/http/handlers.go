// Package http provides http transport for the category index
package http

import (
	stdhttp "net/http"

	"paydash/internal/modkit/httpkit"
	"paydash/internal/services/api/categories/domain"
)

// Register mounts category endpoints on the given router
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}

	httpkit.Get(r, "/", h.catalog)
	httpkit.GetQuery[domain.LookupInput](r, "/lookup", h.lookup)
	httpkit.GetQuery[domain.TitlesInput](r, "/titles", h.titles)
}

type handlers struct{ svc domain.ServicePort }

// swagger:route GET /categories Categories categoriesCatalog
// @Summary Loaded categories with title counts
// @Tags Categories
// @Produce json
// @Success 200 {object} domain.Catalog "ok"
// @Router /categories [get]
func (h *handlers) catalog(r *stdhttp.Request) (any, error) {
	return h.svc.Catalog(r.Context()), nil
}

// swagger:route GET /categories/lookup Categories categoriesLookup
// @Summary Category of one job title
// @Tags Categories
// @Produce json
// @Param title query string true "job title"
// @Success 200 {object} domain.Lookup "ok"
// @Router /categories/lookup [get]
func (h *handlers) lookup(r *stdhttp.Request, in domain.LookupInput) (any, error) {
	return h.svc.Lookup(r.Context(), in), nil
}

// swagger:route GET /categories/titles Categories categoriesTitles
// @Summary Job titles mapped to a category
// @Tags Categories
// @Produce json
// @Param category query string true "category"
// @Success 200 {object} domain.Titles "ok"
// @Router /categories/titles [get]
func (h *handlers) titles(r *stdhttp.Request, in domain.TitlesInput) (any, error) {
	return h.svc.Titles(r.Context(), in), nil
}
