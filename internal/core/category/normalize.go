package category

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// pool of fresh transformer chains, a chain is not safe for concurrent use
var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFKC,
			cases.Fold(),
			runes.Remove(runes.In(unicode.Cf)), // zero width and BOM noise from spreadsheets
		)
	},
}

// Normalize folds a job title into its lookup key
// case folded, NFKC, internal whitespace collapsed to single spaces and trimmed
func Normalize(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return ""
	}
	title = strings.ToValidUTF8(title, "")

	tr := chainPool.Get().(transform.Transformer)
	out, _, err := transform.String(tr, title)
	tr.Reset()
	chainPool.Put(tr)
	if err != nil {
		out = strings.ToLower(title)
	}
	return strings.Join(strings.Fields(out), " ")
}
