package module

import (
	"context"
	"net/url"

	"paydash/internal/services/api/reports/domain"
	reportsvc "paydash/internal/services/api/reports/service"
)

// Ports is the port set a reports module exposes to other modules
type Ports struct {
	Reports domain.ServicePort
}

type adaptReportsPort struct{ svc reportsvc.Service }

// Dataset names the table family behind the port
func (a adaptReportsPort) Dataset() string { return a.svc.Dataset() }

// FilterOptions resolves dropdown entries with counts
func (a adaptReportsPort) FilterOptions(ctx context.Context, q url.Values) (domain.FilterOptions, error) {
	return a.svc.FilterOptions(ctx, q)
}

// Page returns one filtered, sorted page
func (a adaptReportsPort) Page(ctx context.Context, q url.Values) (domain.PageResult, error) {
	return a.svc.Page(ctx, q)
}

// Browse lists the table unfiltered by id
func (a adaptReportsPort) Browse(ctx context.Context, in domain.BrowseInput) (domain.PageResult, error) {
	return a.svc.Browse(ctx, in)
}
