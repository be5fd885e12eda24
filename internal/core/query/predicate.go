package query

import (
	"sort"
	"strings"

	"paydash/internal/core/filter"
)

// Clause is one boolean SQL fragment tagged with the dimension it filters
type Clause struct {
	Dimension filter.Dimension
	SQL       string
}

// Predicate is an ordered clause list plus its positional arguments
// placeholder $n in any clause refers to Args[n-1]
type Predicate struct {
	Clauses   []Clause
	Args      []any
	Expansion Expansion
	Warnings  []filter.Warning
}

// Where renders the clauses joined by AND, empty when nothing filters
func (p Predicate) Where() string {
	if len(p.Clauses) == 0 {
		return ""
	}
	parts := make([]string, len(p.Clauses))
	for i, c := range p.Clauses {
		parts[i] = c.SQL
	}
	return "WHERE " + strings.Join(parts, " AND ")
}

// Has reports whether a clause for dimension d is present
func (p Predicate) Has(d filter.Dimension) bool {
	for _, c := range p.Clauses {
		if c.Dimension == d {
			return true
		}
	}
	return false
}

// ExpansionState distinguishes an absent category filter from one that matched no titles
type ExpansionState uint8

const (
	// NoFilter means no category was requested
	NoFilter ExpansionState = iota
	// Filtered means the requested categories expanded to at least one title
	Filtered
	// FilteredEmpty means categories were requested but none has a known title
	FilteredEmpty
)

func (s ExpansionState) String() string {
	switch s {
	case Filtered:
		return "filtered"
	case FilteredEmpty:
		return "filtered_empty"
	default:
		return "no_filter"
	}
}

// Expansion is the result of turning category names into job titles
type Expansion struct {
	State     ExpansionState
	Titles    []string // sorted union, deduplicated
	Requested []string
	Empty     []string // requested categories without any title
}

// Expander resolves a category into the raw job titles mapped to it
type Expander interface {
	TitlesForCategory(category string) []string
}

// Expand unions the titles of every requested category
func Expand(e Expander, sel filter.Selection) Expansion {
	if !sel.Set() {
		return Expansion{State: NoFilter}
	}
	exp := Expansion{Requested: append([]string(nil), sel.Values...)}
	seen := map[string]struct{}{}
	for _, cat := range sel.Values {
		var titles []string
		if e != nil {
			titles = e.TitlesForCategory(cat)
		}
		if len(titles) == 0 {
			exp.Empty = append(exp.Empty, cat)
		}
		for _, t := range titles {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			exp.Titles = append(exp.Titles, t)
		}
	}
	sort.Strings(exp.Titles)
	if len(exp.Titles) == 0 {
		exp.State = FilteredEmpty
	} else {
		exp.State = Filtered
	}
	return exp
}
