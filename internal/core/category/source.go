package category

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"

	"paydash/internal/platform/logger"
)

// Record is one row of the category source
type Record struct {
	Title    string
	Category string
}

// Source yields the raw (Title, CategorizedTitle) rows
type Source interface {
	Records(ctx context.Context) ([]Record, error)
}

// Rows is an in memory Source
type Rows []Record

// Records implements Source
func (r Rows) Records(context.Context) ([]Record, error) { return r, nil }

// CSVFile reads a two column CSV, the header row is optional
type CSVFile struct {
	Path string
}

// Records implements Source
func (f CSVFile) Records(ctx context.Context) ([]Record, error) {
	if strings.TrimSpace(f.Path) == "" {
		return nil, errors.New("category csv path is empty")
	}
	fh, err := os.Open(f.Path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = fh.Close() }()
	return ReadCSV(ctx, fh)
}

// ReadCSV parses Title,CategorizedTitle rows from r
// extra columns are ignored and short rows are skipped
func ReadCSV(ctx context.Context, r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var out []Record
	first := true
	for line := 1; ; line++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("category csv line %d: %w", line, err)
		}
		if first {
			first = false
			if isHeader(row) {
				continue
			}
		}
		if len(row) < 2 {
			continue
		}
		out = append(out, Record{Title: strings.TrimPrefix(row[0], "\ufeff"), Category: row[1]})
	}
}

func isHeader(row []string) bool {
	if len(row) < 2 {
		return false
	}
	a := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(row[0], "\ufeff")))
	b := strings.ToLower(strings.TrimSpace(row[1]))
	return a == "title" && b == "categorizedtitle"
}

// Read builds an index from src and reports why it could not
func Read(ctx context.Context, src Source) (*Index, error) {
	if src == nil {
		return nil, errors.New("no category source configured")
	}
	recs, err := src.Records(ctx)
	if err != nil {
		return nil, err
	}
	ix := Build(recs)
	logger.Named("category").Info().
		Int("rows", len(recs)).Int("titles", ix.Len()).Int("categories", len(ix.byCat)).
		Msg("category index loaded")
	return ix, nil
}

// Load builds an index from src and never fails
// a missing source or a parse error logs and yields an empty index
func Load(ctx context.Context, src Source) *Index {
	ix, err := Read(ctx, src)
	if err != nil {
		logger.Named("category").Warn().Err(err).Msg("category source unreadable; every title is Uncategorized")
		return Empty()
	}
	return ix
}

// Holder publishes the current index and swaps it on full reload
type Holder struct {
	src Source
	cur atomic.Pointer[Index]
}

// NewHolder loads src once and returns a Holder over it
func NewHolder(ctx context.Context, src Source) *Holder {
	h := &Holder{src: src}
	h.cur.Store(Load(ctx, src))
	return h
}

// Static wraps an already built index, Reload keeps it as is
func Static(ix *Index) *Holder {
	h := &Holder{}
	if ix == nil {
		ix = Empty()
	}
	h.cur.Store(ix)
	return h
}

// Current returns the published index
func (h *Holder) Current() *Index {
	if h == nil {
		return Empty()
	}
	return h.cur.Load()
}

// Reload rebuilds the index from the source and publishes it
// when the source cannot be read the published index stays in place
func (h *Holder) Reload(ctx context.Context) *Index {
	if h.src == nil {
		return h.Current()
	}
	ix, err := Read(ctx, h.src)
	if err != nil {
		logger.Named("category").Warn().Err(err).Msg("category reload failed; keeping the current index")
		return h.Current()
	}
	h.cur.Store(ix)
	return ix
}
