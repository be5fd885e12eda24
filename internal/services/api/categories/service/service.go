// Package service exposes the category index read side
package service

import (
	"context"

	"paydash/internal/core/category"
	"paydash/internal/services/api/categories/domain"
)

// Service defines the categories service contract
type Service interface {
	domain.ServicePort
}

// Svc reads the current snapshot of a category holder
type Svc struct {
	cats *category.Holder
}

// New constructs a categories service, a nil holder serves an empty index
func New(cats *category.Holder) *Svc {
	if cats == nil {
		cats = category.Static(nil)
	}
	return &Svc{cats: cats}
}

// Catalog lists every category with its title count
func (s *Svc) Catalog(context.Context) domain.Catalog {
	ix := s.cats.Current()
	names := ix.Categories()
	out := domain.Catalog{Categories: make([]domain.Category, 0, len(names)), Titles: ix.Len()}
	for _, n := range names {
		out.Categories = append(out.Categories, domain.Category{Name: n, Titles: ix.TitleCount(n)})
	}
	return out
}

// Lookup resolves one job title
func (s *Svc) Lookup(_ context.Context, in domain.LookupInput) domain.Lookup {
	return domain.Lookup{
		Title:      in.Title,
		Normalized: category.Normalize(in.Title),
		Category:   s.cats.Current().Lookup(in.Title),
	}
}

// Titles lists the raw titles of a category
func (s *Svc) Titles(_ context.Context, in domain.TitlesInput) domain.Titles {
	titles := s.cats.Current().TitlesForCategory(in.Category)
	if titles == nil {
		titles = []string{}
	}
	return domain.Titles{Category: in.Category, Titles: titles}
}
