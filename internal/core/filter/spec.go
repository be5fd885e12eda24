package filter

import (
	"sort"
	"strconv"
	"strings"
)

// Selection is a scalar or array filter value
// an empty selection is the same as an absent filter
type Selection struct {
	Values []string
	Many   bool
}

// One builds a scalar selection
func One(v string) Selection { return clean(Selection{Values: []string{v}}) }

// AnyOf builds an array selection
func AnyOf(vs ...string) Selection { return clean(Selection{Values: vs, Many: true}) }

// Set reports whether the selection filters anything
func (s Selection) Set() bool { return len(s.Values) > 0 }

// Scalar returns the single value of a scalar selection
func (s Selection) Scalar() (string, bool) {
	if s.Many || len(s.Values) != 1 {
		return "", false
	}
	return s.Values[0], true
}

// clean trims values, drops blanks and demotes an emptied array to absent
func clean(s Selection) Selection {
	out := make([]string, 0, len(s.Values))
	for _, v := range s.Values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return Selection{}
	}
	return Selection{Values: out, Many: s.Many}
}

// Defaults for paging
const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

// Spec is the set of active selections for one request
type Spec struct {
	Search     string
	Branches   Selection
	JobTitles  Selection
	Statuses   Selection
	Categories Selection
	Period     string

	Page     int
	PageSize int
	SortKey  string
	SortDir  string
}

// Has reports whether dimension d carries an active filter
func (s Spec) Has(d Dimension) bool {
	switch d {
	case Search:
		return s.Search != ""
	case Branch:
		return s.Branches.Set()
	case JobTitle:
		return s.JobTitles.Set()
	case Status:
		return s.Statuses.Set()
	case Period:
		return s.Period != ""
	case Category:
		return s.Categories.Set()
	}
	return false
}

// Without returns a copy with dimension d cleared
func (s Spec) Without(d Dimension) Spec {
	switch d {
	case Search:
		s.Search = ""
	case Branch:
		s.Branches = Selection{}
	case JobTitle:
		s.JobTitles = Selection{}
	case Status:
		s.Statuses = Selection{}
	case Period:
		s.Period = ""
	case Category:
		s.Categories = Selection{}
	}
	return s
}

// Offset returns the zero based row offset of the requested page
func (s Spec) Offset() int {
	page, size := s.Page, s.PageSize
	if page < 1 {
		page = DefaultPage
	}
	if size < 1 {
		size = DefaultPageSize
	}
	return (page - 1) * size
}

// Key is a canonical serialization of every filter selection
// equivalent specs share a key regardless of value order, paging and sort are excluded
func (s Spec) Key() string {
	var b strings.Builder
	put := func(name string, sel Selection) {
		if !sel.Set() {
			return
		}
		vs := append([]string(nil), sel.Values...)
		sort.Strings(vs)
		b.WriteString(name)
		if sel.Many {
			b.WriteString("[]")
		}
		b.WriteByte('=')
		for i, v := range vs {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.Quote(v))
		}
		b.WriteByte(';')
	}
	if s.Search != "" {
		put(Search.String(), One(s.Search))
	}
	put(Branch.String(), s.Branches)
	put(JobTitle.String(), s.JobTitles)
	put(Status.String(), Selection{Values: StatusCodes(s.Statuses.Values), Many: s.Statuses.Many})
	if s.Period != "" {
		put(Period.String(), One(s.Period))
	}
	put(Category.String(), s.Categories)
	return b.String()
}
