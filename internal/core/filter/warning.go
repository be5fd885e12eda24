package filter

import "fmt"

// WarningKind classifies a recoverable problem surfaced next to a response
type WarningKind string

const (
	// MalformedFilter is a filter value with an unexpected shape that was dropped
	MalformedFilter WarningKind = "malformed_filter"
	// CategoryExpansionEmpty is a requested category with no known job titles
	CategoryExpansionEmpty WarningKind = "category_expansion_empty"
	// PartialDimensionFailure is one cardinality query that failed while others succeeded
	PartialDimensionFailure WarningKind = "partial_dimension_failure"
	// UnknownSortKey is a sort key outside the sortable field table
	UnknownSortKey WarningKind = "unknown_sort_key"
)

// Warning is an out of band notice returned alongside successful results
type Warning struct {
	Kind      WarningKind `json:"kind"`
	Dimension string      `json:"dimension,omitempty"`
	Message   string      `json:"message"`
}

// Warnf builds a Warning for dimension d
func Warnf(kind WarningKind, d Dimension, format string, a ...any) Warning {
	return Warning{Kind: kind, Dimension: d.String(), Message: fmt.Sprintf(format, a...)}
}
