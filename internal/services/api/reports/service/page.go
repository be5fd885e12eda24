package service

import (
	"context"

	"paydash/internal/core/filter"
	"paydash/internal/core/query"
	perr "paydash/internal/platform/errors"
	"paydash/internal/platform/logger"
	"paydash/internal/services/api/reports/domain"

	"golang.org/x/sync/errgroup"
)

// ExecutePage runs the data and count queries of one listing concurrently
// both share the predicate and its arguments; only the data query is ordered and paginated
func (s *Svc) ExecutePage(ctx context.Context, spec filter.Spec) (domain.PageResult, error) {
	ctx, cancel := s.deadline(ctx)
	defer cancel()

	ix := s.cats.Current()
	e, err := s.expander(ctx, ix, spec)
	if err != nil {
		return domain.PageResult{}, err
	}
	pred := s.builder(e).Build(spec, filter.None)
	order := s.sorter.Resolve(spec.SortKey, spec.SortDir)

	warnings := append([]filter.Warning{}, pred.Warnings...)
	if order.Warning != nil {
		logger.C(ctx).Info().Str("sort_key", spec.SortKey).Msg("unknown sort key; default order")
		warnings = append(warnings, *order.Warning)
	}

	page, size := pageOf(spec.Page, spec.PageSize, filter.DefaultPageSize)
	rows, total, err := s.pageAndCount(ctx, s.schema.SelectPage(pred, order, page, size), s.schema.Count(pred))
	if err != nil {
		return domain.PageResult{}, err
	}

	// rows are materialized and the connection released before any lookup
	jobCol := s.schema.JobTitleCol
	for _, r := range rows {
		title, _ := r[jobCol].(string)
		r[domain.CategoryKey] = ix.Lookup(title)
	}

	return domain.PageResult{
		Rows:       rows,
		Total:      total,
		Page:       page,
		PageSize:   size,
		TotalPages: totalPages(total, size),
		Warnings:   warnings,
	}, nil
}

// Browse lists the table unfiltered by id, pageSize is clamped to the browse bound
func (s *Svc) Browse(ctx context.Context, in domain.BrowseInput) (domain.PageResult, error) {
	ctx, cancel := s.deadline(ctx)
	defer cancel()

	page, size := pageOf(in.Page, in.PageSize, query.MaxBrowsePageSize)
	if size > query.MaxBrowsePageSize {
		size = query.MaxBrowsePageSize
	}
	rows, total, err := s.pageAndCount(ctx, s.schema.Browse(page, size), s.schema.Count(query.Predicate{}))
	if err != nil {
		return domain.PageResult{}, err
	}
	return domain.PageResult{
		Rows:       rows,
		Total:      total,
		Page:       page,
		PageSize:   size,
		TotalPages: totalPages(total, size),
		Warnings:   []filter.Warning{},
	}, nil
}

// pageAndCount runs data and count under the request deadline, any failure fails both
func (s *Svc) pageAndCount(ctx context.Context, data, count query.Statement) ([]domain.Record, int64, error) {
	var (
		raw   []map[string]any
		total int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		raw, err = s.repo.Rows(gctx, data)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.repo.Count(gctx, count)
		return err
	})
	if err := g.Wait(); err != nil {
		logger.C(ctx).Error().Err(err).Bool("timeout", perr.IsTimeout(err)).Msg("listing query failed")
		return nil, 0, perr.FromQuery(err, s.schema.Name+" listing query failed")
	}

	rows := make([]domain.Record, len(raw))
	for i, m := range raw {
		rows[i] = domain.Record(m)
	}
	return rows, total, nil
}

// pageOf applies paging defaults
func pageOf(page, size, def int) (int, int) {
	if page < 1 {
		page = filter.DefaultPage
	}
	if size < 1 {
		size = def
	}
	return page, size
}
