package models

import (
	"sort"

	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Quantities maps a sector to the amount counted there. A missing sector and a
// zero amount mean the same thing: the product is not in that sector's view.
type Quantities map[SectorID]decimal.Decimal

// Get returns the amount for a sector, zero when absent.
func (q Quantities) Get(id SectorID) decimal.Decimal {
	if v, ok := q[id]; ok {
		return v
	}
	return decimal.Zero
}

// AnyPositive reports whether at least one of the given sectors holds a positive amount.
func (q Quantities) AnyPositive(sectors []Sector) bool {
	for _, s := range sectors {
		if q.Get(s.ID).IsPositive() {
			return true
		}
	}
	return false
}

func (q Quantities) clone() Quantities {
	out := make(Quantities, len(q))
	for k, v := range q {
		out[k] = v
	}
	return out
}

// ProductRecord holds every sector quantity of one product.
type ProductRecord struct {
	Name       string     `json:"name"`
	Quantities Quantities `json:"quantities"`
}

// Key is the case-insensitive identity of the record.
func (p ProductRecord) Key() string {
	return NameKey(p.Name)
}

// Quantity returns the amount stored for a sector.
func (p ProductRecord) Quantity(id SectorID) decimal.Decimal {
	return p.Quantities.Get(id)
}

// Clone returns a deep copy.
func (p ProductRecord) Clone() ProductRecord {
	return ProductRecord{Name: p.Name, Quantities: p.Quantities.clone()}
}

// SectorRow is one line of a sector view.
type SectorRow struct {
	Name     string
	Quantity decimal.Decimal
	Display  string
}

// Ledger is the authoritative list of product records, one per NameKey, kept in
// insertion order.
type Ledger struct {
	records []ProductRecord
	index   map[string]int
}

// NewLedger builds a ledger from stored records. Records that share a NameKey are
// merged by summing their quantities; the first display name wins.
func NewLedger(records ...ProductRecord) *Ledger {
	l := &Ledger{index: make(map[string]int, len(records))}
	for _, r := range records {
		name := NormalizeProductName(r.Name)
		if name == "" {
			continue
		}
		i, ok := l.index[NameKey(name)]
		if !ok {
			l.append(ProductRecord{Name: name, Quantities: r.Quantities.clone()})
			continue
		}
		for id, v := range r.Quantities {
			l.records[i].Quantities[id] = l.records[i].Quantities.Get(id).Add(v)
		}
	}
	return l
}

func (l *Ledger) append(r ProductRecord) {
	if r.Quantities == nil {
		r.Quantities = Quantities{}
	}
	l.index[r.Key()] = len(l.records)
	l.records = append(l.records, r)
}

// Len returns the number of records.
func (l *Ledger) Len() int {
	return len(l.records)
}

// Records returns a copy of every record in insertion order.
func (l *Ledger) Records() []ProductRecord {
	out := make([]ProductRecord, len(l.records))
	for i, r := range l.records {
		out[i] = r.Clone()
	}
	return out
}

// Find looks a product up by name, ignoring case and surrounding spaces.
func (l *Ledger) Find(name string) (ProductRecord, bool) {
	i, ok := l.index[NameKey(name)]
	if !ok {
		return ProductRecord{}, false
	}
	return l.records[i].Clone(), true
}

// Add accumulates the positive amounts of q into the record for name, creating it
// when missing. The stored display name of an existing record is kept.
func (l *Ledger) Add(name string, q Quantities) {
	name = NormalizeProductName(name)
	i, ok := l.index[NameKey(name)]
	if !ok {
		l.append(ProductRecord{Name: name, Quantities: positiveOnly(q)})
		return
	}
	rec := &l.records[i]
	for id, v := range q {
		if !v.IsPositive() {
			continue
		}
		rec.Quantities[id] = rec.Quantities.Get(id).Add(v)
	}
}

// Replace overwrites every listed sector of the record for name with the amount in q,
// zero included. A missing record is created with the positive amounts only.
// The display name becomes name.
func (l *Ledger) Replace(name string, q Quantities, sectors []Sector) {
	name = NormalizeProductName(name)
	i, ok := l.index[NameKey(name)]
	if !ok {
		l.append(ProductRecord{Name: name, Quantities: positiveOnly(q)})
		return
	}
	rec := &l.records[i]
	rec.Name = name
	for _, s := range sectors {
		rec.Quantities[s.ID] = q.Get(s.ID)
	}
}

// SetQuantity stores q for one sector of an existing record.
func (l *Ledger) SetQuantity(name string, id SectorID, q decimal.Decimal) bool {
	i, ok := l.index[NameKey(name)]
	if !ok {
		return false
	}
	l.records[i].Quantities[id] = q
	return true
}

// Remove drops the record for name entirely.
func (l *Ledger) Remove(name string) bool {
	i, ok := l.index[NameKey(name)]
	if !ok {
		return false
	}
	l.records = append(l.records[:i], l.records[i+1:]...)
	l.index = make(map[string]int, len(l.records))
	for j, r := range l.records {
		l.index[r.Key()] = j
	}
	return true
}

// Clone returns a deep copy of the ledger.
func (l *Ledger) Clone() *Ledger {
	return NewLedger(l.records...)
}

// SectorView lists the products with a positive amount in s. When sorted is set the
// rows follow pt-BR collation, ignoring case and comparing digit runs numerically;
// otherwise insertion order is kept.
func (l *Ledger) SectorView(s Sector, sorted bool) []SectorRow {
	var rows []SectorRow
	for _, r := range l.records {
		q := r.Quantity(s.ID)
		if !q.IsPositive() {
			continue
		}
		rows = append(rows, SectorRow{Name: r.Name, Quantity: q, Display: FormatQuantity(s, q)})
	}
	if sorted {
		SortByName(rows, func(r SectorRow) string { return r.Name })
	}
	return rows
}

// SortByName orders items by display name using pt-BR, case-insensitive, numeric
// collation. The sort is stable.
func SortByName[T any](items []T, name func(T) string) {
	c := collate.New(language.BrazilianPortuguese, collate.IgnoreCase, collate.Numeric)
	sort.SliceStable(items, func(i, j int) bool {
		return c.CompareString(name(items[i]), name(items[j])) < 0
	})
}

func positiveOnly(q Quantities) Quantities {
	out := make(Quantities, len(q))
	for id, v := range q {
		if v.IsPositive() {
			out[id] = v
		}
	}
	return out
}
