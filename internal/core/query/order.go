package query

import (
	"strings"

	"paydash/internal/core/filter"
)

// Term is one ORDER BY item
type Term struct {
	Expr string
	Desc bool
}

func (t Term) String() string {
	if t.Desc {
		return t.Expr + " DESC"
	}
	return t.Expr + " ASC"
}

// Order is a resolved ordering: primary terms followed by the fixed tie-break
type Order struct {
	Field    string // resolved field id, empty when the default ordering applies
	Terms    []Term
	Tiebreak []Term
	Warning  *filter.Warning
}

// SQL renders the ORDER BY clause
func (o Order) SQL() string {
	all := make([]string, 0, len(o.Terms)+len(o.Tiebreak))
	for _, t := range o.Terms {
		all = append(all, t.String())
	}
	for _, t := range o.Tiebreak {
		all = append(all, t.String())
	}
	return "ORDER BY " + strings.Join(all, ", ")
}

// Sorter resolves client sort keys against a schema's closed field table
type Sorter struct {
	schema Schema
	fields map[string]SortField
}

// NewSorter indexes the sortable fields of s by id and alias
func NewSorter(s Schema) *Sorter {
	so := &Sorter{schema: s, fields: make(map[string]SortField, len(s.Sort)*3)}
	for _, f := range s.Sort {
		so.fields[sortKey(f.ID)] = f
		for _, a := range f.Aliases {
			so.fields[sortKey(a)] = f
		}
	}
	return so
}

// sortKey folds case and drops whitespace, underscores and dashes
func sortKey(k string) string {
	k = strings.ToLower(strings.TrimSpace(k))
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '_', '-':
			return -1
		}
		return r
	}, k)
}

// Resolve maps key and dir onto an ordering
// an empty key gives the default ordering, an unknown key gives it with a warning
func (so *Sorter) Resolve(key, dir string) Order {
	o := Order{Tiebreak: so.tiebreak()}
	if f, ok := so.fields[sortKey(key)]; ok {
		o.Field = f.ID
		o.Terms = []Term{{Expr: f.Expr(), Desc: strings.EqualFold(strings.TrimSpace(dir), "desc")}}
		return o
	}
	o.Terms = append([]Term(nil), so.schema.DefaultSort...)
	if strings.TrimSpace(key) != "" {
		w := filter.Warning{Kind: filter.UnknownSortKey, Dimension: filter.KeySortBy, Message: "unknown sort key " + quote(key) + "; using default order"}
		o.Warning = &w
	}
	return o
}

// tiebreak is appended after every primary ordering, even a duplicate one
func (so *Sorter) tiebreak() []Term {
	s := so.schema
	return []Term{
		{Expr: s.SecondaryPeriodCol, Desc: true},
		{Expr: s.NameCol},
		{Expr: s.IDCol},
	}
}

// Fields returns the wire ids of every sortable field in table order
func (so *Sorter) Fields() []string {
	out := make([]string, len(so.schema.Sort))
	for i, f := range so.schema.Sort {
		out[i] = f.ID
	}
	return out
}

func quote(s string) string { return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"` }
