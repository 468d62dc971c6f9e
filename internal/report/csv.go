// Package report serializes analysis results for download and archival.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/Bano733-code/gc-content-analyzer/internal/gc"
)

// CSVHeader is the column order of the summary export.
var CSVHeader = []string{"identifier", "length", "count_a", "count_t", "count_g", "count_c", "count_other", "gc_percent"}

// WriteSummaryCSV writes one header row plus one row per summary.
// GC percentages are rounded to three decimals.
func WriteSummaryCSV(w io.Writer, rows []gc.SummaryStats) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range rows {
		rec := []string{
			r.Identifier,
			strconv.Itoa(r.Length),
			strconv.Itoa(r.CountA),
			strconv.Itoa(r.CountT),
			strconv.Itoa(r.CountG),
			strconv.Itoa(r.CountC),
			strconv.Itoa(r.CountOther),
			strconv.FormatFloat(r.GCPercent, 'f', 3, 64),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write csv row for %q: %w", r.Identifier, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
