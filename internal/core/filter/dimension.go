// Package filter models the filter selections carried by one listing request
// A Spec is built fresh per request, never mutated and never persisted
package filter

// Dimension is one independently filterable axis
type Dimension uint8

const (
	// None excludes nothing when passed to a predicate builder
	None Dimension = iota
	Search
	Branch
	JobTitle
	Status
	Period
	Category
)

var dimNames = [...]string{
	None:     "",
	Search:   "search",
	Branch:   "branch",
	JobTitle: "jobTitle",
	Status:   "status",
	Period:   "period",
	Category: "category",
}

// String returns the wire name, also used as the query parameter key
func (d Dimension) String() string {
	if int(d) < len(dimNames) {
		return dimNames[d]
	}
	return "unknown"
}

// Order is the fixed clause order every predicate is rendered in
func Order() []Dimension {
	return []Dimension{Search, Branch, JobTitle, Status, Period, Category}
}

// Filterable lists the dimensions that get a dropdown with counts
func Filterable() []Dimension {
	return []Dimension{Branch, JobTitle, Status, Period, Category}
}

// ParseDimension maps a wire name back to its Dimension
func ParseDimension(s string) (Dimension, bool) {
	for d, n := range dimNames {
		if n != "" && n == s {
			return Dimension(d), true
		}
	}
	return None, false
}
