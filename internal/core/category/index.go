// Package category maps free text job titles onto a fixed category taxonomy
// The index is built once from a two column source and is read only afterwards
package category

import (
	"sort"
)

// Uncategorized is returned for empty or unmapped titles
const Uncategorized = "Uncategorized"

// Index is an immutable title -> category lookup, safe for concurrent reads
type Index struct {
	byTitle map[string]string              // normalized title -> category
	raw     map[string]map[string]struct{} // normalized title -> raw titles as imported
	byCat   map[string]map[string]struct{} // category -> normalized titles
}

// Empty returns an index where every lookup yields Uncategorized
func Empty() *Index {
	return &Index{
		byTitle: map[string]string{},
		raw:     map[string]map[string]struct{}{},
		byCat:   map[string]map[string]struct{}{},
	}
}

// Build creates an index from (title, category) records
// rows with a blank title or blank category are skipped, later rows win
func Build(records []Record) *Index {
	ix := Empty()
	for _, rec := range records {
		ix.put(rec.Title, rec.Category)
	}
	return ix
}

func (ix *Index) put(title, cat string) {
	key := Normalize(title)
	cat = collapse(cat)
	if key == "" || cat == "" {
		return
	}
	if prev, ok := ix.byTitle[key]; ok && prev != cat {
		// reassigned: move the title and drop categories left empty
		delete(ix.byCat[prev], key)
		if len(ix.byCat[prev]) == 0 {
			delete(ix.byCat, prev)
		}
	}
	ix.byTitle[key] = cat
	if ix.byCat[cat] == nil {
		ix.byCat[cat] = map[string]struct{}{}
	}
	ix.byCat[cat][key] = struct{}{}
	if ix.raw[key] == nil {
		ix.raw[key] = map[string]struct{}{}
	}
	ix.raw[key][collapse(title)] = struct{}{}
}

// Lookup returns the category for title or Uncategorized
func (ix *Index) Lookup(title string) string {
	if ix == nil {
		return Uncategorized
	}
	if cat, ok := ix.byTitle[Normalize(title)]; ok {
		return cat
	}
	return Uncategorized
}

// TitlesForCategory returns every raw title whose normalized form maps to cat
// the result is sorted and empty when cat is unknown
func (ix *Index) TitlesForCategory(cat string) []string {
	if ix == nil {
		return nil
	}
	keys := ix.byCat[collapse(cat)]
	if len(keys) == 0 {
		return nil
	}
	out := make([]string, 0, len(keys))
	for k := range keys {
		for t := range ix.raw[k] {
			out = append(out, t)
		}
	}
	sort.Strings(out)
	return out
}

// Matching returns the candidates that Lookup assigns to cat, sorted and deduplicated
// candidates are usually the titles stored in a dataset, spelled however the rows spell them
func (ix *Index) Matching(cat string, candidates []string) []string {
	cat = collapse(cat)
	seen := make(map[string]struct{}, len(candidates))
	var out []string
	for _, t := range candidates {
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		if ix.Lookup(t) == cat {
			out = append(out, t)
		}
	}
	sort.Strings(out)
	return out
}

// Categories returns the known categories sorted by name
func (ix *Index) Categories() []string {
	if ix == nil {
		return nil
	}
	out := make([]string, 0, len(ix.byCat))
	for c := range ix.byCat {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// TitleCount returns how many distinct normalized titles map to cat
func (ix *Index) TitleCount(cat string) int {
	if ix == nil {
		return 0
	}
	return len(ix.byCat[collapse(cat)])
}

// Len returns the number of distinct normalized titles
func (ix *Index) Len() int {
	if ix == nil {
		return 0
	}
	return len(ix.byTitle)
}

func collapse(s string) string {
	// categories keep their case, only whitespace is tidied
	out := make([]byte, 0, len(s))
	space := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			space = len(out) > 0
			continue
		}
		if space {
			out = append(out, ' ')
			space = false
		}
		out = append(out, c)
	}
	return string(out)
}
