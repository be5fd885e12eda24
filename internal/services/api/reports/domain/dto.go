// Package domain holds DTOs for the reports http and service contracts
package domain

import (
	"paydash/internal/core/filter"
)

// FilterOption is one dropdown entry with the number of records it would match
type FilterOption struct {
	Value string `json:"value" example:"Norte"`
	Label string `json:"label" example:"Norte"`
	Count int64  `json:"count" example:"42"`
}

// Options holds the dropdown entries of every filterable dimension
// a dimension whose query failed is an empty list, never null
type Options struct {
	Branch   []FilterOption `json:"branch"`
	JobTitle []FilterOption `json:"jobTitle"`
	Status   []FilterOption `json:"status"`
	Period   []FilterOption `json:"period"`
	Category []FilterOption `json:"category"`
}

// Set stores opts under dimension d, nil becomes an empty list
func (o *Options) Set(d filter.Dimension, opts []FilterOption) {
	if opts == nil {
		opts = []FilterOption{}
	}
	switch d {
	case filter.Branch:
		o.Branch = opts
	case filter.JobTitle:
		o.JobTitle = opts
	case filter.Status:
		o.Status = opts
	case filter.Period:
		o.Period = opts
	case filter.Category:
		o.Category = opts
	}
}

// Get returns the entries of dimension d
func (o Options) Get(d filter.Dimension) []FilterOption {
	switch d {
	case filter.Branch:
		return o.Branch
	case filter.JobTitle:
		return o.JobTitle
	case filter.Status:
		return o.Status
	case filter.Period:
		return o.Period
	case filter.Category:
		return o.Category
	}
	return nil
}

// FilterOptions is the payload of the filters endpoint
type FilterOptions struct {
	Options  Options          `json:"options"`
	Warnings []filter.Warning `json:"warnings"`
}

// Record is one dataset row keyed by column name plus its derived category
type Record map[string]any

// CategoryKey is the field every listed record carries its category under
const CategoryKey = "category"

// PageResult is one page of a listing with its totals
type PageResult struct {
	Rows       []Record
	Total      int64
	Page       int
	PageSize   int
	TotalPages int
	Warnings   []filter.Warning
}

// BrowseInput is the paging of the unfiltered table listing
type BrowseInput struct {
	Page     int `query:"page" validate:"omitempty,min=1" example:"1"`
	PageSize int `query:"pageSize" validate:"omitempty,min=1,max=1000" example:"100"`
}
