package inventory

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"

	"github.com/mytheresa/balanco-mensal/app/ledger"
	"github.com/mytheresa/balanco-mensal/models"
	"go.uber.org/zap"
)

const (
	msgNotFound   = "Produto não encontrado."
	msgSaveFailed = "Não foi possível salvar o balanço. Tente novamente."
)

//go:embed templates/page.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/page.html"))

type LedgerProvider interface {
	Catalog() *models.Catalog
	Snapshot() *models.Ledger
	Form() ledger.Form
	ParseSubmission(name string, raw map[models.SectorID]string) ledger.Submission
	Submit(ctx context.Context, sub ledger.Submission) (models.ProductRecord, error)
	StartEdit(name string) (ledger.Form, error)
	CancelEdit() ledger.Form
	DeleteSector(ctx context.Context, name string, sector models.SectorID) error
}

type field struct {
	Sector models.Sector
	Value  string
}

type sectorView struct {
	Sector models.Sector
	Rows   []models.SectorRow
}

type page struct {
	Form      ledger.Form
	Fields    []field
	Views     []sectorView
	Warning   string
	FocusName bool
	Downloads []string
}

type InventoryHandler struct {
	ledger    LedgerProvider
	sortViews bool
	downloads []string
}

// NewInventoryHandler serves the monthly inventory page. downloads lists the report
// formats linked next to the print button.
func NewInventoryHandler(l LedgerProvider, sortViews bool, downloads ...string) *InventoryHandler {
	return &InventoryHandler{
		ledger:    l,
		sortViews: sortViews,
		downloads: downloads,
	}
}

func (h *InventoryHandler) HandlePage(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, h.ledger.Form(), "", false)
}

func (h *InventoryHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	name := r.PostFormValue("produto")
	raw := make(map[models.SectorID]string)
	for _, s := range h.ledger.Catalog().Sectors() {
		raw[s.ID] = r.PostFormValue(s.InputID)
	}

	sub := h.ledger.ParseSubmission(name, raw)
	sub.Editing = r.PostFormValue("editando")
	_, err := h.ledger.Submit(r.Context(), sub)
	if err == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	// Keep what the user typed so nothing is lost on a rejected submission.
	form := h.ledger.Form()
	form.Name = name
	form.Values = raw

	switch {
	case errors.Is(err, ledger.ErrEmptyName):
		h.render(w, http.StatusBadRequest, form, "", true)
	case errors.Is(err, ledger.ErrNoQuantity):
		h.render(w, http.StatusUnprocessableEntity, form, ledger.NoQuantityMessage, false)
	default:
		h.render(w, http.StatusInternalServerError, form, msgSaveFailed, false)
	}
}

func (h *InventoryHandler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	if _, err := h.ledger.StartEdit(r.PostFormValue("produto")); err != nil {
		h.render(w, http.StatusNotFound, h.ledger.Form(), msgNotFound, false)
		return
	}
	http.Redirect(w, r, "/#form-produto", http.StatusSeeOther)
}

func (h *InventoryHandler) HandleCancelEdit(w http.ResponseWriter, r *http.Request) {
	h.ledger.CancelEdit()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *InventoryHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	name := r.PostFormValue("produto")
	sector := models.SectorID(r.PostFormValue("setor"))

	err := h.ledger.DeleteSector(r.Context(), name, sector)
	switch {
	case err == nil:
		http.Redirect(w, r, "/", http.StatusSeeOther)
	case errors.Is(err, ledger.ErrProductNotFound), errors.Is(err, ledger.ErrUnknownSector):
		h.render(w, http.StatusNotFound, h.ledger.Form(), msgNotFound, false)
	default:
		h.render(w, http.StatusInternalServerError, h.ledger.Form(), msgSaveFailed, false)
	}
}

// render always rebuilds every sector view from a fresh ledger snapshot.
func (h *InventoryHandler) render(w http.ResponseWriter, status int, form ledger.Form, warning string, focusName bool) {
	snapshot := h.ledger.Snapshot()
	p := page{
		Form:      form,
		Warning:   warning,
		FocusName: focusName,
		Downloads: h.downloads,
	}
	for _, s := range h.ledger.Catalog().Sectors() {
		p.Fields = append(p.Fields, field{Sector: s, Value: form.Values[s.ID]})
		p.Views = append(p.Views, sectorView{Sector: s, Rows: snapshot.SectorView(s, h.sortViews)})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pageTemplate.Execute(w, p); err != nil {
		zap.L().Error("failed to render inventory page", zap.Error(err))
	}
}
