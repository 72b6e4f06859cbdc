package entries

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/mytheresa/balanco-mensal/app/ledger"
	"github.com/mytheresa/balanco-mensal/app/respond"
	"github.com/mytheresa/balanco-mensal/models"
)

type SectorResponse struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	InputID string `json:"input_id"`
	Decimal bool   `json:"decimal"`
}

type Product struct {
	Name       string            `json:"name"`
	Quantities map[string]string `json:"quantities"`
}

type Response struct {
	Total    int       `json:"total"`
	Editing  string    `json:"editing,omitempty"`
	Products []Product `json:"products"`
}

type Row struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
}

type FormResponse struct {
	Name        string            `json:"name"`
	Values      map[string]string `json:"values"`
	Editing     bool              `json:"editing"`
	Product     string            `json:"product,omitempty"`
	SubmitLabel string            `json:"submit_label"`
}

type LedgerProvider interface {
	Catalog() *models.Catalog
	Snapshot() *models.Ledger
	State() ledger.EditState
	ParseSubmission(name string, raw map[models.SectorID]string) ledger.Submission
	Submit(ctx context.Context, sub ledger.Submission) (models.ProductRecord, error)
	StartEdit(name string) (ledger.Form, error)
	CancelEdit() ledger.Form
	DeleteSector(ctx context.Context, name string, sector models.SectorID) error
	DeleteProduct(ctx context.Context, name string) error
}

type EntriesHandler struct {
	ledger    LedgerProvider
	sortViews bool
}

func NewEntriesHandler(l LedgerProvider, sortViews bool) *EntriesHandler {
	return &EntriesHandler{
		ledger:    l,
		sortViews: sortViews,
	}
}

func (h *EntriesHandler) HandleGetSectors(w http.ResponseWriter, r *http.Request) {
	sectors := h.ledger.Catalog().Sectors()
	response := make([]SectorResponse, len(sectors))
	for i, s := range sectors {
		response[i] = SectorResponse{
			ID:      string(s.ID),
			Label:   s.Label,
			InputID: s.InputID,
			Decimal: s.Decimal,
		}
	}
	respond.JSON(w, http.StatusOK, response)
}

func (h *EntriesHandler) HandleGetLedger(w http.ResponseWriter, r *http.Request) {
	snapshot := h.ledger.Snapshot()
	catalog := h.ledger.Catalog()

	records := snapshot.Records()
	products := make([]Product, len(records))
	for i, rec := range records {
		products[i] = h.mapProduct(catalog, rec)
	}

	respond.JSON(w, http.StatusOK, Response{
		Total:    len(products),
		Editing:  h.ledger.State().Product(),
		Products: products,
	})
}

func (h *EntriesHandler) HandleGetSectorView(w http.ResponseWriter, r *http.Request) {
	sector, ok := h.ledger.Catalog().Lookup(models.SectorID(r.PathValue("sector")))
	if !ok {
		respond.Error(w, http.StatusNotFound, "Sector not found")
		return
	}

	view := h.ledger.Snapshot().SectorView(sector, h.sortViews)
	rows := make([]Row, len(view))
	for i, v := range view {
		rows[i] = Row{Name: v.Name, Quantity: v.Display}
	}
	respond.JSON(w, http.StatusOK, rows)
}

func (h *EntriesHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name       string         `json:"name"`
		Quantities map[string]any `json:"quantities"`
		Editing    string         `json:"editing"`
	}

	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(&input); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	raw := make(map[models.SectorID]string, len(input.Quantities))
	for key, v := range input.Quantities {
		id := models.SectorID(key)
		if _, ok := h.ledger.Catalog().Lookup(id); !ok {
			respond.Error(w, http.StatusBadRequest, "Unknown sector: "+key)
			return
		}
		if v != nil {
			raw[id] = fmt.Sprint(v)
		}
	}

	sub := h.ledger.ParseSubmission(input.Name, raw)
	sub.Editing = input.Editing
	rec, err := h.ledger.Submit(r.Context(), sub)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, h.mapProduct(h.ledger.Catalog(), rec))
}

func (h *EntriesHandler) HandleStartEdit(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	form, err := h.ledger.StartEdit(input.Name)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, mapForm(form))
}

func (h *EntriesHandler) HandleCancelEdit(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, mapForm(h.ledger.CancelEdit()))
}

func (h *EntriesHandler) HandleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.ledger.DeleteProduct(r.Context(), r.PathValue("name")); err != nil {
		writeLedgerError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *EntriesHandler) HandleDeleteSector(w http.ResponseWriter, r *http.Request) {
	sector := models.SectorID(r.PathValue("sector"))
	if err := h.ledger.DeleteSector(r.Context(), r.PathValue("name"), sector); err != nil {
		writeLedgerError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *EntriesHandler) mapProduct(catalog *models.Catalog, rec models.ProductRecord) Product {
	p := Product{Name: rec.Name, Quantities: map[string]string{}}
	for _, s := range catalog.Sectors() {
		q := rec.Quantity(s.ID)
		if q.IsPositive() {
			p.Quantities[string(s.ID)] = models.FormatQuantity(s, q)
		}
	}
	return p
}

func mapForm(f ledger.Form) FormResponse {
	values := make(map[string]string, len(f.Values))
	for id, v := range f.Values {
		values[string(id)] = v
	}
	return FormResponse{
		Name:        f.Name,
		Values:      values,
		Editing:     f.Editing,
		Product:     f.Product,
		SubmitLabel: f.SubmitLabel,
	}
}

func writeLedgerError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledger.ErrEmptyName):
		respond.Error(w, http.StatusBadRequest, "Missing product name")
	case errors.Is(err, ledger.ErrNoQuantity):
		respond.Error(w, http.StatusUnprocessableEntity, ledger.NoQuantityMessage)
	case errors.Is(err, ledger.ErrUnknownSector):
		respond.Error(w, http.StatusBadRequest, "Unknown sector")
	case errors.Is(err, ledger.ErrProductNotFound):
		respond.Error(w, http.StatusNotFound, "Product not found")
	default:
		respond.Error(w, http.StatusInternalServerError, "Failed to save ledger")
	}
}
