package query

import (
	"fmt"
	"strings"

	"paydash/internal/core/filter"
)

// Statement is SQL text plus its positional arguments
type Statement struct {
	SQL  string
	Args []any
}

// Group count result columns
const (
	ValueCol = "value"
	CountCol = "count"
)

// MaxBrowsePageSize bounds the unfiltered raw table path
const MaxBrowsePageSize = 1000

func limitOffsetSQL(page, size int) string {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = filter.DefaultPageSize
	}
	return fmt.Sprintf("LIMIT %d OFFSET %d", size, (page-1)*size)
}

func join(parts ...string) string {
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}

// SelectPage is the ordered, paginated data query
// limit and offset are literals so the arguments match Count exactly
func (s Schema) SelectPage(p Predicate, o Order, page, size int) Statement {
	return Statement{
		SQL: join(
			"SELECT", strings.Join(s.SelectCols, ", "),
			"FROM", s.Table,
			p.Where(),
			o.SQL(),
			limitOffsetSQL(page, size),
		),
		Args: p.Args,
	}
}

// Count is the total matching rows under p, never ordered or paginated
func (s Schema) Count(p Predicate) Statement {
	return Statement{
		SQL:  join("SELECT COUNT(*) FROM", s.Table, p.Where()),
		Args: p.Args,
	}
}

// GroupCount counts rows per value of dimension d under p, null values excluded
func (s Schema) GroupCount(p Predicate, d filter.Dimension) Statement {
	expr, col := s.GroupExpr(d), s.Column(d)
	notNull := fmt.Sprintf("%s IS NOT NULL", col)
	where := p.Where()
	if where == "" {
		where = "WHERE " + notNull
	} else {
		where += " AND " + notNull
	}
	return Statement{
		SQL: join(
			fmt.Sprintf("SELECT %s AS %s, COUNT(*) AS %s", expr, ValueCol, CountCol),
			"FROM", s.Table,
			where,
			"GROUP BY 1 ORDER BY 1",
		),
		Args: p.Args,
	}
}

// Browse lists the table unfiltered by id, size is clamped to MaxBrowsePageSize
func (s Schema) Browse(page, size int) Statement {
	if size > MaxBrowsePageSize {
		size = MaxBrowsePageSize
	}
	return Statement{
		SQL: join(
			"SELECT", strings.Join(s.SelectCols, ", "),
			"FROM", s.Table,
			fmt.Sprintf("ORDER BY %s ASC", s.IDCol),
			limitOffsetSQL(page, size),
		),
	}
}

// StoredTitles lists the distinct job titles present in the table
func (s Schema) StoredTitles() Statement {
	return Statement{
		SQL: join(
			"SELECT DISTINCT", s.JobTitleCol,
			"FROM", s.Table,
			fmt.Sprintf("WHERE %s IS NOT NULL", s.JobTitleCol),
			"ORDER BY 1",
		),
	}
}
