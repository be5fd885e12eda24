// Package http provides http transport for dataset reports
package http

import (
	stdhttp "net/http"

	"paydash/internal/modkit/httpkit"
	"paydash/internal/platform/logger"
	pnet "paydash/internal/platform/net"
	"paydash/internal/services/api/reports/domain"
)

// Register mounts the report endpoints of one dataset on the given router
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}

	r.Use(Dataset(s.Dataset()))

	// dropdown entries with counts under the other active filters
	httpkit.Get(r, "/filters", h.filters)

	// filtered, sorted page with category annotation
	httpkit.Get(r, "/records", h.records)

	// unfiltered table by id
	httpkit.GetQuery[domain.BrowseInput](r, "/raw", h.raw)
}

// Dataset tags the request context and its logger with the dataset name
func Dataset(name string) func(stdhttp.Handler) stdhttp.Handler {
	return func(next stdhttp.Handler) stdhttp.Handler {
		return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
			ctx := pnet.WithDataset(r.Context(), name)
			ctx = logger.WithRequest(ctx, pnet.RequestID(ctx), name)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

type handlers struct{ svc domain.ServicePort }

// swagger:route GET /{dataset}/filters Reports reportFilters
// @Summary Filter options with counts
// @Tags Reports
// @Produce json
// @Success 200 {object} domain.FilterOptions "ok"
// @Router /{dataset}/filters [get]
func (h *handlers) filters(r *stdhttp.Request) (any, error) {
	return h.svc.FilterOptions(r.Context(), r.URL.Query())
}

// swagger:route GET /{dataset}/records Reports reportRecords
// @Summary Filtered page of records
// @Tags Reports
// @Produce json
// @Success 200 {object} httpkit.Envelope{data=[]domain.Record,pagination=httpkit.Pagination} "paged records with warnings"
// @Router /{dataset}/records [get]
func (h *handlers) records(r *stdhttp.Request) (any, error) {
	res, err := h.svc.Page(r.Context(), r.URL.Query())
	if err != nil {
		return nil, err
	}
	return paged(res), nil
}

// swagger:route GET /{dataset}/raw Reports reportRaw
// @Summary Unfiltered table by id
// @Tags Reports
// @Produce json
// @Param page query int false "page"
// @Param pageSize query int false "page size, at most 1000"
// @Success 200 {object} httpkit.Envelope{data=[]domain.Record,pagination=httpkit.Pagination} "paged records with warnings"
// @Router /{dataset}/raw [get]
func (h *handlers) raw(r *stdhttp.Request, in domain.BrowseInput) (any, error) {
	res, err := h.svc.Browse(r.Context(), in)
	if err != nil {
		return nil, err
	}
	return paged(res), nil
}

func paged(res domain.PageResult) httpkit.Response {
	rows := res.Rows
	if rows == nil {
		rows = []domain.Record{}
	}
	return httpkit.Paged(rows, httpkit.Pagination{
		Total:      res.Total,
		Page:       res.Page,
		PageSize:   res.PageSize,
		TotalPages: res.TotalPages,
	}, res.Warnings)
}
