package query

import (
	"fmt"
	"strings"

	"paydash/internal/core/filter"
)

// EmptyCategoryPolicy decides what a category filter without titles does
type EmptyCategoryPolicy uint8

const (
	// FailOpen drops the category clause, the result equals no category filter
	FailOpen EmptyCategoryPolicy = iota
	// MatchNone renders a FALSE clause, the result is empty
	MatchNone
)

// ParseEmptyCategoryPolicy maps a config value onto a policy, FailOpen by default
func ParseEmptyCategoryPolicy(s string) EmptyCategoryPolicy {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "match_none", "matchnone", "none":
		return MatchNone
	}
	return FailOpen
}

// Builder translates specs into predicates for one dataset
type Builder struct {
	Schema   Schema
	Expander Expander
	Policy   EmptyCategoryPolicy
}

// build holds the argument list of one predicate under construction
type build struct {
	b    Builder
	pred Predicate
}

// Build renders every active dimension of spec except exclude, in fixed order
// malformed values are dropped with a warning, Build never fails
func (b Builder) Build(spec filter.Spec, exclude filter.Dimension) Predicate {
	st := &build{b: b}
	for _, d := range filter.Order() {
		if d == exclude || !spec.Has(d) {
			continue
		}
		switch d {
		case filter.Search:
			st.search(spec.Search)
		case filter.Branch:
			st.text(d, spec.Branches)
		case filter.JobTitle:
			st.text(d, spec.JobTitles)
		case filter.Status:
			st.status(spec.Statuses)
		case filter.Period:
			st.period(spec.Period)
		case filter.Category:
			st.category(spec.Categories)
		}
	}
	return st.pred
}

// recordValue appends an argument and returns its placeholder
func (st *build) recordValue(v any) string {
	st.pred.Args = append(st.pred.Args, v)
	return fmt.Sprintf("$%d", len(st.pred.Args))
}

func (st *build) add(d filter.Dimension, format string, a ...any) {
	st.pred.Clauses = append(st.pred.Clauses, Clause{Dimension: d, SQL: fmt.Sprintf(format, a...)})
}

func (st *build) warn(w filter.Warning) {
	st.pred.Warnings = append(st.pred.Warnings, w)
}

func (st *build) search(term string) {
	cols := st.b.Schema.SearchCols
	if len(cols) == 0 {
		return
	}
	ph := st.recordValue(contains(term))
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = fmt.Sprintf("%s ILIKE %s", c, ph)
	}
	st.add(filter.Search, "(%s)", strings.Join(parts, " OR "))
}

// text is substring match for a scalar and membership for an array
func (st *build) text(d filter.Dimension, sel filter.Selection) {
	col := st.b.Schema.Column(d)
	if v, ok := sel.Scalar(); ok {
		st.add(d, "%s ILIKE %s", col, st.recordValue(contains(v)))
		return
	}
	st.add(d, "%s = ANY(%s)", col, st.recordValue(sel.Values))
}

func (st *build) status(sel filter.Selection) {
	col := st.b.Schema.StatusCol
	codes := filter.StatusCodes(sel.Values)
	if !sel.Many && len(codes) == 1 {
		st.add(filter.Status, "%s = %s", col, st.recordValue(codes[0]))
		return
	}
	st.add(filter.Status, "%s = ANY(%s)", col, st.recordValue(codes))
}

func (st *build) period(p string) {
	col := st.b.Schema.PeriodCol
	kind := filter.KindOf(p)
	if kind != filter.PeriodExact && !filter.OnCalendar(p) {
		st.warn(filter.Warnf(filter.MalformedFilter, filter.Period, "period %q is not a calendar %s; ignored", p, kind))
		return
	}
	switch kind {
	case filter.PeriodDay:
		st.add(filter.Period, "date_trunc('day', %s) = %s::date", col, st.recordValue(p))
	case filter.PeriodMonth:
		st.add(filter.Period, "date_trunc('month', %s) = %s::date", col, st.recordValue(filter.MonthStart(p)))
	default:
		ts, ok := filter.ParseExact(p)
		if !ok {
			st.warn(filter.Warnf(filter.MalformedFilter, filter.Period, "period %q is not a day, month or timestamp; ignored", p))
			return
		}
		st.add(filter.Period, "%s = %s", col, st.recordValue(ts))
	}
}

func (st *build) category(sel filter.Selection) {
	exp := Expand(st.b.Expander, sel)
	st.pred.Expansion = exp
	if len(exp.Empty) > 0 {
		st.warn(filter.Warnf(filter.CategoryExpansionEmpty, filter.Category,
			"no job titles are mapped to %s", strings.Join(quoteAll(exp.Empty), ", ")))
	}
	switch exp.State {
	case Filtered:
		st.add(filter.Category, "%s = ANY(%s)", st.b.Schema.JobTitleCol, st.recordValue(exp.Titles))
	case FilteredEmpty:
		if st.b.Policy == MatchNone {
			st.add(filter.Category, "FALSE")
		}
	}
}

// contains wraps v for a substring ILIKE, escaping LIKE metacharacters
func contains(v string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(v) + "%"
}

func quoteAll(vs []string) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = fmt.Sprintf("%q", v)
	}
	return out
}
