package main

import (
	"net/http"
	"time"

	"github.com/mytheresa/balanco-mensal/app/entries"
	"github.com/mytheresa/balanco-mensal/app/inventory"
	"github.com/mytheresa/balanco-mensal/app/ledger"
	"github.com/mytheresa/balanco-mensal/app/report"
	"github.com/mytheresa/balanco-mensal/internal/clock"
	"go.uber.org/zap"
)

func newRouter(c *ledger.Controller, clk clock.Clock, sortViews bool) http.Handler {
	var downloads []string
	for _, r := range report.Renderers() {
		if r.FileName() != "" {
			downloads = append(downloads, r.Format())
		}
	}

	inventoryHandler := inventory.NewInventoryHandler(c, sortViews, downloads...)
	entriesHandler := entries.NewEntriesHandler(c, sortViews)
	reportHandler := report.NewReportHandler(c, clk, sortViews)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", inventoryHandler.HandlePage)
	mux.HandleFunc("POST /produtos", inventoryHandler.HandleSubmit)
	mux.HandleFunc("POST /produtos/editar", inventoryHandler.HandleEdit)
	mux.HandleFunc("POST /produtos/excluir", inventoryHandler.HandleDelete)
	mux.HandleFunc("POST /edicao/cancelar", inventoryHandler.HandleCancelEdit)

	mux.HandleFunc("GET /relatorio/{format}", reportHandler.HandleExport)

	mux.HandleFunc("GET /api/sectors", entriesHandler.HandleGetSectors)
	mux.HandleFunc("GET /api/ledger", entriesHandler.HandleGetLedger)
	mux.HandleFunc("GET /api/ledger/sectors/{sector}", entriesHandler.HandleGetSectorView)
	mux.HandleFunc("POST /api/ledger/entries", entriesHandler.HandleSubmit)
	mux.HandleFunc("POST /api/ledger/edit", entriesHandler.HandleStartEdit)
	mux.HandleFunc("DELETE /api/ledger/edit", entriesHandler.HandleCancelEdit)
	mux.HandleFunc("DELETE /api/ledger/products/{name}", entriesHandler.HandleDeleteProduct)
	mux.HandleFunc("DELETE /api/ledger/products/{name}/sectors/{sector}", entriesHandler.HandleDeleteSector)

	return logRequests(mux)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		zap.L().Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("elapsed", time.Since(start)))
	})
}
