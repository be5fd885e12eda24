// Package service contains the report workflows of one dataset
package service

import (
	"context"
	"net/url"
	"time"

	"paydash/internal/core/category"
	"paydash/internal/core/filter"
	"paydash/internal/core/query"
	"paydash/internal/modkit/repokit"
	perr "paydash/internal/platform/errors"
	"paydash/internal/platform/logger"
	"paydash/internal/services/api/reports/domain"
	"paydash/internal/services/api/reports/repo"

	"github.com/patrickmn/go-cache"
)

// Service defines the reports service contract
type Service interface {
	domain.ServicePort
}

// Options tunes one dataset service
type Options struct {
	// QueryTimeout is the single deadline shared by every sub-query of a request, zero disables it
	QueryTimeout time.Duration
	// Parallelism bounds concurrent cardinality queries, zero or less means one per dimension
	Parallelism int
	// CacheTTL keeps filter options per dataset and filter key, zero disables the cache
	CacheTTL time.Duration
	// EmptyCategory decides what a category filter without titles does
	EmptyCategory query.EmptyCategoryPolicy
	// Strict rejects malformed filter values instead of dropping them with a warning
	Strict bool
	// MaxPageSize clamps the filtered listing, zero means unbounded
	MaxPageSize int
}

// Svc implements the reports service for one dataset
type Svc struct {
	schema query.Schema
	sorter *query.Sorter
	repo   repo.Repo
	cats   *category.Holder
	opts   Options
	cache  *cache.Cache
}

// New constructs a reports service over schema, q serves the schema's table
func New(schema query.Schema, q repokit.Queryer, binder repokit.Binder[repo.Repo], cats *category.Holder, opts Options) *Svc {
	if binder == nil {
		panic("reports.Service requires a non nil Repo binder")
	}
	if cats == nil {
		cats = category.Static(nil)
	}
	s := &Svc{
		schema: schema,
		sorter: query.NewSorter(schema),
		repo:   repokit.MustBind(binder, q, schema.Name),
		cats:   cats,
		opts:   opts,
	}
	if opts.CacheTTL > 0 {
		s.cache = cache.New(opts.CacheTTL, 2*opts.CacheTTL)
	}
	return s
}

// Dataset names the table family this service reads
func (s *Svc) Dataset() string { return s.schema.Name }

// Parse turns raw query parameters into a spec under the service strictness
func (s *Svc) Parse(q url.Values) (filter.Spec, []filter.Warning, error) {
	return filter.Parse(q, filter.ParseOptions{Strict: s.opts.Strict, MaxPageSize: s.opts.MaxPageSize})
}

// FilterOptions parses q and resolves per dimension counts
func (s *Svc) FilterOptions(ctx context.Context, q url.Values) (domain.FilterOptions, error) {
	spec, warns, err := s.Parse(q)
	if err != nil {
		return domain.FilterOptions{}, err
	}
	out, err := s.ResolveOptions(ctx, spec)
	if err != nil {
		return domain.FilterOptions{}, err
	}
	out.Warnings = append(warns, out.Warnings...)
	if out.Warnings == nil {
		out.Warnings = []filter.Warning{}
	}
	return out, nil
}

// Page parses q and returns one filtered, sorted page
func (s *Svc) Page(ctx context.Context, q url.Values) (domain.PageResult, error) {
	spec, warns, err := s.Parse(q)
	if err != nil {
		return domain.PageResult{}, err
	}
	res, err := s.ExecutePage(ctx, spec)
	if err != nil {
		return domain.PageResult{}, err
	}
	res.Warnings = append(warns, res.Warnings...)
	if res.Warnings == nil {
		res.Warnings = []filter.Warning{}
	}
	return res, nil
}

// builder binds the schema to one category expansion for the whole request
func (s *Svc) builder(e query.Expander) query.Builder {
	return query.Builder{Schema: s.schema, Expander: e, Policy: s.opts.EmptyCategory}
}

// expander resolves categories against the titles the table actually stores
// so a category filter selects exactly the rows Lookup counts under it
func (s *Svc) expander(ctx context.Context, ix *category.Index, spec filter.Spec) (query.Expander, error) {
	if !spec.Has(filter.Category) {
		return ix, nil
	}
	titles, err := s.repo.Strings(ctx, s.schema.StoredTitles())
	if err != nil {
		logger.C(ctx).Error().Err(err).Bool("timeout", perr.IsTimeout(err)).Msg("stored titles query failed")
		return nil, perr.FromQuery(err, s.schema.Name+" job titles query failed")
	}
	return storedTitles{ix: ix, titles: titles}, nil
}

// storedTitles expands a category into the stored spellings that map to it
type storedTitles struct {
	ix     *category.Index
	titles []string
}

func (st storedTitles) TitlesForCategory(cat string) []string {
	if m := st.ix.Matching(cat, st.titles); len(m) > 0 {
		return m
	}
	// a known category without stored rows keeps its imported titles and matches nothing
	return st.ix.TitlesForCategory(cat)
}

// deadline applies QueryTimeout to ctx
func (s *Svc) deadline(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.opts.QueryTimeout > 0 {
		return context.WithTimeout(ctx, s.opts.QueryTimeout)
	}
	return context.WithCancel(ctx)
}

// totalPages is ceil(total/size), zero for an empty result
func totalPages(total int64, size int) int {
	if size <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(size) - 1) / int64(size))
}
