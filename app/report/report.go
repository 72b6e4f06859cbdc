package report

import (
	"fmt"
	"time"

	"github.com/mytheresa/balanco-mensal/models"
	"github.com/shopspring/decimal"
)

var monthNames = [...]string{
	"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
	"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
}

// Table is a titled grid of already formatted cells. The first column is always the
// product name.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// Entry is one product/sector pair of the long CSV layout.
type Entry struct {
	Produto    string `csv:"produto"`
	Setor      string `csv:"setor"`
	Quantidade string `csv:"quantidade"`
}

// Report is everything a renderer needs, derived from one ledger snapshot.
type Report struct {
	Title       string
	GeneratedAt time.Time

	// Sectors has one table per non-empty sector, in catalog order.
	Sectors []Table
	// Summary crosses products with every whole-unit sector, "0" where absent.
	Summary *Table
	// Heavy lists the weight/volume sectors, nil when none has entries.
	Heavy *Table

	Entries []Entry
}

// Title returns "Balanço <Mês> <Ano>" for t.
func Title(t time.Time) string {
	return fmt.Sprintf("Balanço %s %d", monthNames[t.Month()-1], t.Year())
}

// IssuedLine returns the "Emitido em ..." subtitle for t.
func IssuedLine(t time.Time) string {
	return fmt.Sprintf("Emitido em %s às %s", t.Format("02/01/2006"), t.Format("15:04:05"))
}

// Build derives a report from a ledger snapshot.
func Build(l *models.Ledger, catalog *models.Catalog, now time.Time, sorted bool) *Report {
	r := &Report{
		Title:       Title(now),
		GeneratedAt: now,
	}

	for _, s := range catalog.Sectors() {
		view := l.SectorView(s, sorted)
		if len(view) == 0 {
			continue
		}
		t := Table{Title: s.Label, Headers: []string{"Produto", "Quantidade"}}
		for _, row := range view {
			t.Rows = append(t.Rows, []string{row.Name, row.Display})
			r.Entries = append(r.Entries, Entry{Produto: row.Name, Setor: s.Label, Quantidade: row.Display})
		}
		r.Sectors = append(r.Sectors, t)
	}

	records := l.Records()
	if sorted {
		models.SortByName(records, func(p models.ProductRecord) string { return p.Name })
	}
	r.Summary = matrix("Balanço por setor", records, catalog.CountSectors())
	r.Heavy = matrix("Pesados", records, catalog.DecimalSectors())
	return r
}

// Empty reports whether no sector has any entry.
func (r *Report) Empty() bool {
	return len(r.Sectors) == 0
}

func matrix(title string, records []models.ProductRecord, sectors []models.Sector) *Table {
	if len(sectors) == 0 {
		return nil
	}
	t := &Table{Title: title, Headers: []string{"Produto"}}
	for _, s := range sectors {
		t.Headers = append(t.Headers, s.Label)
	}
	for _, rec := range records {
		if !rec.Quantities.AnyPositive(sectors) {
			continue
		}
		row := []string{rec.Name}
		for _, s := range sectors {
			q := rec.Quantity(s.ID)
			if !q.IsPositive() {
				q = decimal.Zero
			}
			row = append(row, models.FormatQuantity(s, q))
		}
		t.Rows = append(t.Rows, row)
	}
	if len(t.Rows) == 0 {
		return nil
	}
	return t
}
