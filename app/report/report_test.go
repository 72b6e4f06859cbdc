package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/gocarina/gocsv"
	"github.com/mytheresa/balanco-mensal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var reportTime = time.Date(2026, time.October, 18, 9, 5, 7, 0, time.UTC)

func sampleLedger() *models.Ledger {
	return models.NewLedger(
		models.ProductRecord{Name: "Vinho Tinto", Quantities: models.Quantities{
			models.SectorAdegaSalao: decimal.NewFromInt(5),
			models.SectorBar:        decimal.NewFromInt(2),
		}},
		models.ProductRecord{Name: "Farinha", Quantities: models.Quantities{
			models.SectorPesados: decimal.NewFromFloat(2.5),
		}},
		models.ProductRecord{Name: "Cerveja <Lata>", Quantities: models.Quantities{
			models.SectorBar:    decimal.NewFromInt(24),
			models.SectorCamera: decimal.Zero,
		}},
	)
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Balanço Outubro 2026", Title(reportTime))
	assert.Equal(t, "Balanço Março 2025", Title(time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "Emitido em 18/10/2026 às 09:05:07", IssuedLine(reportTime))
}

func TestBuild(t *testing.T) {
	r := Build(sampleLedger(), models.DefaultCatalog(), reportTime, true)

	require.Len(t, r.Sectors, 3)
	assert.Equal(t, "Bar", r.Sectors[0].Title)
	assert.Equal(t, [][]string{{"Cerveja <Lata>", "24"}, {"Vinho Tinto", "2"}}, r.Sectors[0].Rows)
	assert.Equal(t, "Adega Salão", r.Sectors[1].Title)
	assert.Equal(t, "Pesados", r.Sectors[2].Title)

	require.NotNil(t, r.Summary)
	assert.Equal(t, []string{"Produto", "Estoque Geral", "Câmara Fria", "Bar", "Adega Salão", "Adega Bar"}, r.Summary.Headers)
	assert.Equal(t, [][]string{
		{"Cerveja <Lata>", "0", "0", "24", "0", "0"},
		{"Vinho Tinto", "0", "0", "2", "5", "0"},
	}, r.Summary.Rows)

	require.NotNil(t, r.Heavy)
	assert.Equal(t, [][]string{{"Farinha", "2.500"}}, r.Heavy.Rows)
	assert.Len(t, r.Entries, 4)
	assert.False(t, r.Empty())
}

func TestBuildWithoutHeavyGoods(t *testing.T) {
	l := models.NewLedger(models.ProductRecord{Name: "Gelo", Quantities: models.Quantities{
		models.SectorCamera: decimal.NewFromInt(3),
	}})

	r := Build(l, models.DefaultCatalog(), reportTime, false)

	assert.Nil(t, r.Heavy)
	require.NotNil(t, r.Summary)
	assert.Len(t, r.Summary.Rows, 1)
}

func TestBuildEmptyLedger(t *testing.T) {
	r := Build(models.NewLedger(), models.DefaultCatalog(), reportTime, true)

	assert.True(t, r.Empty())
	assert.Nil(t, r.Summary)
	assert.Nil(t, r.Heavy)
}

func TestRendererFor(t *testing.T) {
	for _, format := range []string{"print", "pdf", "xlsx", " CSV "} {
		r, err := RendererFor(format)
		require.NoError(t, err, format)
		assert.Equal(t, strings.ToLower(strings.TrimSpace(format)), r.Format())
	}

	_, err := RendererFor("docx")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestPrintRenderer(t *testing.T) {
	var buf bytes.Buffer
	err := PrintRenderer{}.Render(&buf, Build(sampleLedger(), models.DefaultCatalog(), reportTime, true))
	require.NoError(t, err)

	html := buf.String()
	assert.Contains(t, html, "<title>Balanço Outubro 2026</title>")
	assert.Contains(t, html, "Emitido em 18/10/2026 às 09:05:07")
	assert.Contains(t, html, "<h2 style=\"margin: 16px 0 8px 0;\">Adega Salão</h2>")
	assert.Contains(t, html, "<td>Cerveja &lt;Lata&gt;</td>")
	assert.Contains(t, html, "<td>2.500</td>")
	assert.Contains(t, html, "window.print()")
	assert.NotContains(t, html, "Câmara Fria", "empty sectors are skipped")
	assert.NotContains(t, html, "Editar")
}

func TestPrintRendererEmptyLedger(t *testing.T) {
	var buf bytes.Buffer
	err := PrintRenderer{}.Render(&buf, Build(models.NewLedger(), models.DefaultCatalog(), reportTime, true))
	require.NoError(t, err)

	html := buf.String()
	assert.Contains(t, html, "Nenhum produto lançado.")
	assert.NotContains(t, html, "<table")
}

func TestPDFRenderer(t *testing.T) {
	for name, l := range map[string]*models.Ledger{"filled": sampleLedger(), "empty": models.NewLedger()} {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			err := PDFRenderer{}.Render(&buf, Build(l, models.DefaultCatalog(), reportTime, true))
			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
		})
	}
	assert.Equal(t, "balanco-mensal.pdf", PDFRenderer{}.FileName())
}

func TestXLSXRenderer(t *testing.T) {
	var buf bytes.Buffer
	err := XLSXRenderer{}.Render(&buf, Build(sampleLedger(), models.DefaultCatalog(), reportTime, true))
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, "Balanço Outubro 2026", f.GetCellValue("Balanço", "A1"))
	assert.Equal(t, "Produto", f.GetCellValue("Balanço", "A4"))
	assert.Equal(t, "Cerveja <Lata>", f.GetCellValue("Balanço", "A5"))
	assert.Equal(t, "24", f.GetCellValue("Balanço", "D5"))
	assert.Equal(t, "Farinha", f.GetCellValue("Pesados", "A5"))
	assert.Equal(t, "2.5", f.GetCellValue("Pesados", "B5"))
}

func TestCSVRenderer(t *testing.T) {
	var buf bytes.Buffer
	err := CSVRenderer{}.Render(&buf, Build(sampleLedger(), models.DefaultCatalog(), reportTime, true))
	require.NoError(t, err)

	var entries []Entry
	require.NoError(t, gocsv.UnmarshalBytes(buf.Bytes(), &entries))
	require.Len(t, entries, 4)
	assert.Equal(t, Entry{Produto: "Cerveja <Lata>", Setor: "Bar", Quantidade: "24"}, entries[0])
	assert.Equal(t, Entry{Produto: "Farinha", Setor: "Pesados", Quantidade: "2.500"}, entries[3])
	assert.True(t, strings.HasPrefix(buf.String(), "produto,setor,quantidade"))
}

func TestCellName(t *testing.T) {
	assert.Equal(t, "A1", cellName(0, 1))
	assert.Equal(t, "F4", cellName(5, 4))
	assert.Equal(t, "AA2", cellName(26, 2))
}
