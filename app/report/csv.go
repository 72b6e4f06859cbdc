package report

import (
	"io"

	"github.com/gocarina/gocsv"
)

// CSVRenderer writes one line per product and sector.
type CSVRenderer struct{}

func (CSVRenderer) Format() string      { return "csv" }
func (CSVRenderer) ContentType() string { return "text/csv; charset=utf-8" }
func (CSVRenderer) FileName() string    { return "balanco-mensal.csv" }

func (CSVRenderer) Render(w io.Writer, r *Report) error {
	entries := r.Entries
	if entries == nil {
		entries = []Entry{}
	}
	return gocsv.Marshal(&entries, w)
}
