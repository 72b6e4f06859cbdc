package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/mytheresa/balanco-mensal/app/archive"
	"github.com/mytheresa/balanco-mensal/app/report"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the inventory form, JSON API and report downloads",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rt, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer rt.close()

	if rt.cfg.ArchiveCron != "" {
		renderer, err := report.RendererFor(rt.cfg.ReportFormat)
		if err != nil {
			return fmt.Errorf("REPORT_FORMAT %q: %w", rt.cfg.ReportFormat, err)
		}
		archiver := archive.NewArchiver(rt.controller, renderer, rt.cfg.ArchiveDir, rt.clock, rt.cfg.SortViews)
		scheduler, err := archive.NewScheduler(rt.cfg.ArchiveCron, archiver)
		if err != nil {
			return err
		}
		scheduler.Start()
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			scheduler.Stop(stopCtx)
		}()
		zap.L().Info("report archive scheduled", zap.String("cron", rt.cfg.ArchiveCron), zap.String("dir", rt.cfg.ArchiveDir))
	}

	srv := &http.Server{
		Addr:              rt.cfg.HTTPAddr,
		Handler:           newRouter(rt.controller, rt.clock, rt.cfg.SortViews),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zap.L().Info("http server listening", zap.String("addr", rt.cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	zap.L().Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
