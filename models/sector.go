package models

import (
	"fmt"
	"strings"
)

// SectorID identifies a storage location in the monthly inventory.
type SectorID string

const (
	SectorEstoque    SectorID = "estoque"
	SectorCamera     SectorID = "camera"
	SectorBar        SectorID = "bar"
	SectorAdegaSalao SectorID = "adegaSalao"
	SectorAdegaBar   SectorID = "adegaBar"
	SectorPesados    SectorID = "pesados"
)

// Sector represents one column of the inventory form.
// Decimal sectors track weight or volume with three fraction digits,
// every other sector counts whole units.
type Sector struct {
	ID      SectorID
	Label   string
	InputID string
	Decimal bool
}

// DefaultSectors lists every known sector in form order.
var DefaultSectors = []Sector{
	{ID: SectorEstoque, Label: "Estoque Geral", InputID: "qtd-estoque"},
	{ID: SectorCamera, Label: "Câmara Fria", InputID: "qtd-camera"},
	{ID: SectorBar, Label: "Bar", InputID: "qtd-bar"},
	{ID: SectorAdegaSalao, Label: "Adega Salão", InputID: "qtd-adega-salao"},
	{ID: SectorAdegaBar, Label: "Adega Bar", InputID: "qtd-adega-bar"},
	{ID: SectorPesados, Label: "Pesados", InputID: "qtd-pesados", Decimal: true},
}

// Catalog is the closed, ordered set of sectors enabled for a ledger.
type Catalog struct {
	sectors []Sector
	byID    map[SectorID]int
}

// NewCatalog builds a catalog from the given sector ids, keeping their order.
// An empty list enables every default sector.
func NewCatalog(ids ...string) (*Catalog, error) {
	if len(ids) == 0 {
		return newCatalog(DefaultSectors), nil
	}

	known := make(map[SectorID]Sector, len(DefaultSectors))
	for _, s := range DefaultSectors {
		known[s.ID] = s
	}

	sectors := make([]Sector, 0, len(ids))
	seen := make(map[SectorID]bool, len(ids))
	for _, raw := range ids {
		id := SectorID(strings.TrimSpace(raw))
		if id == "" || seen[id] {
			continue
		}
		s, ok := known[id]
		if !ok {
			return nil, fmt.Errorf("unknown sector %q", raw)
		}
		seen[id] = true
		sectors = append(sectors, s)
	}
	if len(sectors) == 0 {
		return nil, fmt.Errorf("no sectors enabled")
	}
	return newCatalog(sectors), nil
}

// DefaultCatalog enables every sector in DefaultSectors.
func DefaultCatalog() *Catalog {
	return newCatalog(DefaultSectors)
}

func newCatalog(sectors []Sector) *Catalog {
	c := &Catalog{
		sectors: append([]Sector(nil), sectors...),
		byID:    make(map[SectorID]int, len(sectors)),
	}
	for i, s := range c.sectors {
		c.byID[s.ID] = i
	}
	return c
}

// Sectors returns the enabled sectors in order.
func (c *Catalog) Sectors() []Sector {
	return append([]Sector(nil), c.sectors...)
}

// Lookup finds an enabled sector by id.
func (c *Catalog) Lookup(id SectorID) (Sector, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Sector{}, false
	}
	return c.sectors[i], true
}

// CountSectors returns the enabled sectors that count whole units.
func (c *Catalog) CountSectors() []Sector {
	var out []Sector
	for _, s := range c.sectors {
		if !s.Decimal {
			out = append(out, s)
		}
	}
	return out
}

// DecimalSectors returns the enabled weight/volume sectors.
func (c *Catalog) DecimalSectors() []Sector {
	var out []Sector
	for _, s := range c.sectors {
		if s.Decimal {
			out = append(out, s)
		}
	}
	return out
}
