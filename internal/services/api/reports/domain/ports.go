package domain

import (
	"context"
	"net/url"
)

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	// Dataset names the table family the port reads
	Dataset() string
	// FilterOptions parses raw query parameters and resolves per dimension counts
	FilterOptions(ctx context.Context, q url.Values) (FilterOptions, error)
	// Page parses raw query parameters and returns one filtered, sorted page
	Page(ctx context.Context, q url.Values) (PageResult, error)
	// Browse lists the table unfiltered by id
	Browse(ctx context.Context, in BrowseInput) (PageResult, error)
}
