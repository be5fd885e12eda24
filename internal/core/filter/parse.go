package filter

import (
	"net/url"
	"strconv"
	"strings"

	perr "paydash/internal/platform/errors"
)

// ParseOptions tunes how strictly raw parameters are accepted
type ParseOptions struct {
	// Strict rejects malformed values instead of dropping them with a warning
	Strict bool
	// MaxPageSize clamps pageSize, zero means unbounded
	MaxPageSize int
}

// Query parameter keys besides the dimension names
const (
	KeyPage      = "page"
	KeyPageSize  = "pageSize"
	KeySortBy    = "sortBy"
	KeySortOrder = "sortOrder"
)

type parser struct {
	q     url.Values
	opts  ParseOptions
	warns []Warning
	err   error
}

// Parse builds a Spec from raw query parameters
// key[] and repeated keys produce array selections, a single key is a scalar
func Parse(q url.Values, opts ParseOptions) (Spec, []Warning, error) {
	p := &parser{q: q, opts: opts}

	spec := Spec{
		Search:     p.single(Search, Search.String()),
		Branches:   p.selection(Branch.String()),
		JobTitles:  p.selection(JobTitle.String()),
		Statuses:   p.selection(Status.String()),
		Categories: p.selection(Category.String()),
		Period:     p.single(Period, Period.String()),
		Page:       p.positive(KeyPage, DefaultPage),
		PageSize:   p.positive(KeyPageSize, DefaultPageSize),
		SortKey:    p.single(None, KeySortBy),
		SortDir:    p.direction(),
	}
	if p.opts.MaxPageSize > 0 && spec.PageSize > p.opts.MaxPageSize {
		p.malformed(None, KeyPageSize, "pageSize %d exceeds %d", spec.PageSize, p.opts.MaxPageSize)
		spec.PageSize = p.opts.MaxPageSize
	}
	if p.err != nil {
		return Spec{}, nil, p.err
	}
	return spec, p.warns, nil
}

func (p *parser) values(key string) ([]string, bool) {
	plain, bracket := p.q[key], p.q[key+"[]"]
	if len(bracket) > 0 {
		return append(append([]string(nil), plain...), bracket...), true
	}
	return plain, len(plain) > 1
}

func (p *parser) selection(key string) Selection {
	vs, many := p.values(key)
	return clean(Selection{Values: vs, Many: many})
}

// single reads a scalar only key, extra values are ignored with a warning
func (p *parser) single(d Dimension, key string) string {
	vs, many := p.values(key)
	sel := clean(Selection{Values: vs, Many: many})
	if !sel.Set() {
		return ""
	}
	if sel.Many {
		p.malformed(d, key, "%s takes a single value, got %d; using %q", key, len(sel.Values), sel.Values[0])
	}
	return sel.Values[0]
}

func (p *parser) positive(key string, def int) int {
	raw := p.single(None, key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		p.malformed(None, key, "%s must be a positive integer, got %q", key, raw)
		return def
	}
	return n
}

func (p *parser) direction() string {
	raw := strings.ToLower(p.single(None, KeySortOrder))
	switch raw {
	case "", "asc", "desc":
		return raw
	}
	p.malformed(None, KeySortOrder, "sortOrder must be asc or desc, got %q", raw)
	return ""
}

func (p *parser) malformed(d Dimension, key, format string, a ...any) {
	w := Warnf(MalformedFilter, d, format, a...)
	if d == None {
		w.Dimension = key
	}
	if p.opts.Strict {
		if p.err == nil {
			p.err = perr.WithField(perr.InvalidArgf("%s", w.Message), key)
		}
		return
	}
	p.warns = append(p.warns, w)
}
