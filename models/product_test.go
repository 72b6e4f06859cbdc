package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestLedgerAddSumsCaseInsensitively(t *testing.T) {
	l := NewLedger()
	l.Add("Vinho Tinto", Quantities{SectorAdegaSalao: dec("3")})
	l.Add("  vinho tinto ", Quantities{SectorAdegaSalao: dec("2"), SectorBar: dec("1")})

	require.Equal(t, 1, l.Len())
	rec, ok := l.Find("VINHO TINTO")
	require.True(t, ok)
	assert.Equal(t, "Vinho Tinto", rec.Name)
	assert.True(t, dec("5").Equal(rec.Quantity(SectorAdegaSalao)))
	assert.True(t, dec("1").Equal(rec.Quantity(SectorBar)))
}

func TestLedgerAddSkipsZeroSectors(t *testing.T) {
	l := NewLedger()
	l.Add("Cerveja", Quantities{SectorBar: dec("6"), SectorCamera: decimal.Zero})

	rec, _ := l.Find("cerveja")
	_, populated := rec.Quantities[SectorCamera]
	assert.False(t, populated)
}

func TestLedgerReplaceOverwritesZeros(t *testing.T) {
	sectors := DefaultCatalog().Sectors()
	l := NewLedger()
	l.Add("Cerveja", Quantities{SectorBar: dec("6"), SectorCamera: dec("10")})

	l.Replace("cerveja", Quantities{SectorBar: dec("4")}, sectors)

	rec, _ := l.Find("Cerveja")
	assert.Equal(t, "cerveja", rec.Name)
	assert.True(t, dec("4").Equal(rec.Quantity(SectorBar)))
	assert.True(t, rec.Quantity(SectorCamera).IsZero())
	assert.Equal(t, 1, l.Len())
}

func TestLedgerReplaceCreatesMissingRecord(t *testing.T) {
	l := NewLedger()
	l.Replace("Água", Quantities{SectorEstoque: dec("12"), SectorBar: decimal.Zero}, DefaultCatalog().Sectors())

	rec, ok := l.Find("água")
	require.True(t, ok)
	assert.Len(t, rec.Quantities, 1)
}

func TestLedgerRemoveReindexes(t *testing.T) {
	l := NewLedger(
		ProductRecord{Name: "A", Quantities: Quantities{SectorBar: dec("1")}},
		ProductRecord{Name: "B", Quantities: Quantities{SectorBar: dec("2")}},
		ProductRecord{Name: "C", Quantities: Quantities{SectorBar: dec("3")}},
	)

	assert.True(t, l.Remove("b"))
	assert.False(t, l.Remove("b"))

	rec, ok := l.Find("c")
	require.True(t, ok)
	assert.Equal(t, "C", rec.Name)
	assert.Equal(t, 2, l.Len())
}

func TestNewLedgerMergesDuplicates(t *testing.T) {
	l := NewLedger(
		ProductRecord{Name: "Gelo", Quantities: Quantities{SectorCamera: dec("2")}},
		ProductRecord{Name: " gelo", Quantities: Quantities{SectorCamera: dec("3")}},
		ProductRecord{Name: "   "},
	)

	require.Equal(t, 1, l.Len())
	rec, _ := l.Find("GELO")
	assert.True(t, dec("5").Equal(rec.Quantity(SectorCamera)))
}

func TestLedgerCloneIsDeep(t *testing.T) {
	l := NewLedger(ProductRecord{Name: "Gelo", Quantities: Quantities{SectorCamera: dec("2")}})
	c := l.Clone()
	c.Add("Gelo", Quantities{SectorCamera: dec("1")})

	orig, _ := l.Find("Gelo")
	assert.True(t, dec("2").Equal(orig.Quantity(SectorCamera)))
}

func TestSectorView(t *testing.T) {
	pesados, _ := DefaultCatalog().Lookup(SectorPesados)
	l := NewLedger(
		ProductRecord{Name: "item 10", Quantities: Quantities{SectorPesados: dec("1")}},
		ProductRecord{Name: "Item 2", Quantities: Quantities{SectorPesados: dec("2.5")}},
		ProductRecord{Name: "abacate", Quantities: Quantities{SectorPesados: decimal.Zero}},
		ProductRecord{Name: "Açúcar", Quantities: Quantities{SectorPesados: dec("0.75")}},
	)

	t.Run("Insertion order", func(t *testing.T) {
		rows := l.SectorView(pesados, false)
		require.Len(t, rows, 3)
		assert.Equal(t, "item 10", rows[0].Name)
		assert.Equal(t, "2.500", rows[1].Display)
	})

	t.Run("Collated order", func(t *testing.T) {
		rows := l.SectorView(pesados, true)
		require.Len(t, rows, 3)
		assert.Equal(t, "Açúcar", rows[0].Name)
		assert.Equal(t, "Item 2", rows[1].Name)
		assert.Equal(t, "item 10", rows[2].Name)
	})
}
