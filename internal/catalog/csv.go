// Package catalog reads the fashion product dataset and maps article types to images.
package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/and161185/tonefit/internal/model"
)

// Columns that must be present in the header.
var requiredColumns = []string{
	"id", "gender", "masterCategory", "subCategory", "articleType",
	"baseColour", "season", "year", "usage", "productDisplayName",
}

// Reader streams catalog items from a styles.csv file.
type Reader struct {
	r       *csv.Reader
	index   map[string]int
	line    int
	Skipped int // rows dropped for missing id or short records
}

// NewReader parses the header of src and prepares a Reader.
func NewReader(src io.Reader) (*Reader, error) {
	cr := csv.NewReader(src)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	for _, c := range requiredColumns {
		if _, ok := index[c]; !ok {
			return nil, fmt.Errorf("missing column %q", c)
		}
	}
	return &Reader{r: cr, index: index, line: 1}, nil
}

// Next returns the next valid item or io.EOF.
func (rd *Reader) Next() (model.CatalogItem, error) {
	for {
		rec, err := rd.r.Read()
		rd.line++
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				rd.Skipped++
				continue
			}
			return model.CatalogItem{}, err
		}
		it, ok := rd.item(rec)
		if !ok {
			rd.Skipped++
			continue
		}
		return it, nil
	}
}

// ReadBatch reads up to n items; it returns io.EOF only with an empty batch.
func (rd *Reader) ReadBatch(n int) ([]model.CatalogItem, error) {
	out := make([]model.CatalogItem, 0, n)
	for len(out) < n {
		it, err := rd.Next()
		if errors.Is(err, io.EOF) {
			if len(out) == 0 {
				return nil, io.EOF
			}
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", rd.line, err)
		}
		out = append(out, it)
	}
	return out, nil
}

func (rd *Reader) item(rec []string) (model.CatalogItem, bool) {
	get := func(col string) string {
		i := rd.index[col]
		if i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}
	if len(rec) < len(requiredColumns) {
		return model.CatalogItem{}, false
	}
	id := get("id")
	if id == "" {
		return model.CatalogItem{}, false
	}
	year, _ := strconv.Atoi(get("year"))
	return model.CatalogItem{
		ItemID:      id,
		Gender:      get("gender"),
		Category:    get("masterCategory"),
		SubCategory: get("subCategory"),
		ArticleType: get("articleType"),
		BaseColour:  get("baseColour"),
		Season:      get("season"),
		Year:        year,
		Usage:       get("usage"),
		ProductName: get("productDisplayName"),
	}, true
}
