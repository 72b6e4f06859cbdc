package report

import (
	"fmt"
	"io"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/shopspring/decimal"
)

const (
	summarySheet = "Balanço"
	heavySheet   = "Pesados"
)

// XLSXRenderer writes the summary on the first sheet and heavy goods on a second one.
// Quantities are stored as numbers.
type XLSXRenderer struct{}

func (XLSXRenderer) Format() string { return "xlsx" }
func (XLSXRenderer) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}
func (XLSXRenderer) FileName() string { return "balanco-mensal.xlsx" }

func (XLSXRenderer) Render(w io.Writer, r *Report) error {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", summarySheet)
	writeSheet(f, summarySheet, r, r.Summary)

	if r.Heavy != nil {
		f.NewSheet(heavySheet)
		writeSheet(f, heavySheet, r, r.Heavy)
	}
	return f.Write(w)
}

func writeSheet(f *excelize.File, sheet string, r *Report, t *Table) {
	f.SetCellValue(sheet, "A1", r.Title)
	f.SetCellValue(sheet, "A2", IssuedLine(r.GeneratedAt))
	if t == nil {
		return
	}

	const headerRow = 4
	for i, h := range t.Headers {
		f.SetCellValue(sheet, cellName(i, headerRow), h)
	}
	for n, row := range t.Rows {
		for i, cell := range row {
			axis := cellName(i, headerRow+1+n)
			if i == 0 {
				f.SetCellValue(sheet, axis, cell)
				continue
			}
			if d, err := decimal.NewFromString(cell); err == nil {
				f.SetCellValue(sheet, axis, d.InexactFloat64())
			} else {
				f.SetCellValue(sheet, axis, cell)
			}
		}
	}
	f.SetColWidth(sheet, "A", "A", 32)
}

// cellName converts a zero-based column and a one-based row to an A1 reference.
func cellName(col, row int) string {
	name := ""
	for col >= 0 {
		name = string(rune('A'+col%26)) + name
		col = col/26 - 1
	}
	return fmt.Sprintf("%s%d", name, row)
}
