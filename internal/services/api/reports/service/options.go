package service

import (
	"context"
	"errors"
	"sort"

	"paydash/internal/core/category"
	"paydash/internal/core/filter"
	"paydash/internal/core/query"
	perr "paydash/internal/platform/errors"
	"paydash/internal/platform/logger"
	"paydash/internal/services/api/reports/domain"
	"paydash/internal/services/api/reports/repo"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"
)

// cachedOptions remembers which category snapshot produced an entry
type cachedOptions struct {
	ix  *category.Index
	out domain.FilterOptions
}

// ResolveOptions computes the dropdown counts of every filterable dimension
// each dimension is counted with its own filter removed and all others applied
func (s *Svc) ResolveOptions(ctx context.Context, spec filter.Spec) (domain.FilterOptions, error) {
	ix := s.cats.Current()
	key := s.schema.Name + "|" + spec.Key()
	if s.cache != nil {
		if v, ok := s.cache.Get(key); ok {
			if c, ok := v.(cachedOptions); ok && c.ix == ix {
				return c.out, nil
			}
		}
	}

	ctx, cancel := s.deadline(ctx)
	defer cancel()

	e, err := s.expander(ctx, ix, spec)
	if err != nil {
		return domain.FilterOptions{}, err
	}
	b := s.builder(e)
	// warnings of the full predicate, the per dimension builds would repeat them
	warnings := append([]filter.Warning{}, b.Build(spec, filter.None).Warnings...)

	dims := filter.Filterable()
	results := make([][]domain.FilterOption, len(dims))
	errs := make([]error, len(dims))

	// failures stay per dimension so a plain Group, not WithContext
	var g errgroup.Group
	if s.opts.Parallelism > 0 {
		g.SetLimit(s.opts.Parallelism)
	}
	for i, d := range dims {
		g.Go(func() error {
			results[i], errs[i] = s.dimension(ctx, b, ix, spec, d)
			return nil
		})
	}
	_ = g.Wait()

	var out domain.FilterOptions
	failed := 0
	for i, d := range dims {
		if err := errs[i]; err != nil {
			failed++
			logger.C(ctx).Warn().Err(err).Str("dimension", d.String()).
				Bool("timeout", perr.IsTimeout(err)).Msg("filter options query failed")
			warnings = append(warnings, filter.Warnf(filter.PartialDimensionFailure, d,
				"%s options are unavailable: %s", d, failureReason(err)))
			results[i] = nil
		}
		out.Options.Set(d, results[i])
	}
	if failed == len(dims) {
		return domain.FilterOptions{}, perr.FromQuery(errors.Join(errs...), "filter options unavailable")
	}
	out.Warnings = warnings

	if s.cache != nil && failed == 0 {
		s.cache.Set(key, cachedOptions{ix: ix, out: out}, cache.DefaultExpiration)
	}
	return out, nil
}

// dimension runs the grouped count of one dimension
func (s *Svc) dimension(ctx context.Context, b query.Builder, ix *category.Index, spec filter.Spec, d filter.Dimension) ([]domain.FilterOption, error) {
	pred := b.Build(spec, d)
	if d == filter.Category {
		buckets, err := s.repo.Buckets(ctx, s.schema.GroupCount(pred, filter.JobTitle))
		if err != nil {
			return nil, err
		}
		return categoryOptions(ix, buckets), nil
	}

	buckets, err := s.repo.Buckets(ctx, s.schema.GroupCount(pred, d))
	if err != nil {
		return nil, err
	}
	out := make([]domain.FilterOption, 0, len(buckets))
	for _, bk := range buckets {
		label := bk.Value
		if d == filter.Status {
			label = filter.StatusLabel(bk.Value)
		}
		out = append(out, domain.FilterOption{Value: bk.Value, Label: label, Count: bk.Count})
	}
	return out, nil
}

// categoryOptions sums job title counts per category
// every known category is listed, Uncategorized only when some title falls into it
func categoryOptions(ix *category.Index, buckets []repo.Bucket) []domain.FilterOption {
	counts := map[string]int64{}
	for _, c := range ix.Categories() {
		counts[c] = 0
	}
	for _, bk := range buckets {
		counts[ix.Lookup(bk.Value)] += bk.Count
	}
	if n, ok := counts[category.Uncategorized]; ok && n == 0 && ix.TitleCount(category.Uncategorized) == 0 {
		delete(counts, category.Uncategorized)
	}

	out := make([]domain.FilterOption, 0, len(counts))
	for c, n := range counts {
		out = append(out, domain.FilterOption{Value: c, Label: c, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Value < out[j].Value })
	return out
}

// failureReason is the client facing cause of a failed dimension, driver text stays in the log
func failureReason(err error) string {
	if perr.IsTimeout(err) {
		return "query timed out"
	}
	return "query failed"
}
