package report

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/mytheresa/balanco-mensal/app/respond"
	"github.com/mytheresa/balanco-mensal/internal/clock"
	"github.com/mytheresa/balanco-mensal/models"
	"go.uber.org/zap"
)

type SnapshotProvider interface {
	Catalog() *models.Catalog
	Snapshot() *models.Ledger
}

type ReportHandler struct {
	ledger    SnapshotProvider
	clock     clock.Clock
	sortViews bool
}

func NewReportHandler(l SnapshotProvider, c clock.Clock, sortViews bool) *ReportHandler {
	return &ReportHandler{
		ledger:    l,
		clock:     c,
		sortViews: sortViews,
	}
}

// HandleExport renders the current ledger in the format named by the path. The
// document is rendered fully before anything is written, so a failure never produces
// a partial file.
func (h *ReportHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	renderer, err := RendererFor(r.PathValue("format"))
	if err != nil {
		respond.Error(w, http.StatusNotFound, "Unknown report format")
		return
	}

	var buf bytes.Buffer
	if err := Export(&buf, renderer, h.ledger, h.clock, h.sortViews); err != nil {
		zap.L().Error("failed to render report", zap.String("format", renderer.Format()), zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "Não foi possível gerar o relatório.")
		return
	}

	w.Header().Set("Content-Type", renderer.ContentType())
	if name := renderer.FileName(); name != "" {
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	}
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// Export builds a report from the current ledger and renders it to buf.
func Export(buf *bytes.Buffer, renderer Renderer, l SnapshotProvider, c clock.Clock, sorted bool) error {
	if renderer == nil {
		return errors.New("no renderer")
	}
	rep := Build(l.Snapshot(), l.Catalog(), c.Now(), sorted)
	if err := renderer.Render(buf, rep); err != nil {
		buf.Reset()
		return fmt.Errorf("render %s report: %w", renderer.Format(), err)
	}
	return nil
}
