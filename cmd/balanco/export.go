package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/mytheresa/balanco-mensal/app/archive"
	"github.com/mytheresa/balanco-mensal/app/report"
	"github.com/mytheresa/balanco-mensal/models"
	"github.com/spf13/cobra"
)

var (
	exportFormat string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the monthly report to a file",
	RunE:  runExport,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print every sector table",
	RunE:  runList,
}

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Archive this month's report into ARCHIVE_DIR now",
	RunE:  runArchive,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "print, pdf, xlsx or csv (default REPORT_FORMAT)")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default the report's file name)")
}

func runExport(cmd *cobra.Command, args []string) error {
	rt, err := bootstrap(cmd.Context())
	if err != nil {
		return err
	}
	defer rt.close()

	format := exportFormat
	if format == "" {
		format = rt.cfg.ReportFormat
	}
	renderer, err := report.RendererFor(format)
	if err != nil {
		return fmt.Errorf("%w: %s", err, format)
	}

	out := exportOut
	if out == "" {
		out = renderer.FileName()
	}
	if out == "" {
		out = "balanco-mensal.html"
	}

	var buf bytes.Buffer
	if err := report.Export(&buf, renderer, rt.controller, rt.clock, rt.cfg.SortViews); err != nil {
		return err
	}
	if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Relatório salvo em %s\n", out)
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	rt, err := bootstrap(cmd.Context())
	if err != nil {
		return err
	}
	defer rt.close()

	printSectors(cmd, rt.controller.Snapshot(), rt.controller.Catalog(), rt.cfg.SortViews)
	return nil
}

func printSectors(cmd *cobra.Command, l *models.Ledger, catalog *models.Catalog, sorted bool) {
	w := cmd.OutOrStdout()
	for _, s := range catalog.Sectors() {
		rows := l.SectorView(s, sorted)
		if len(rows) == 0 {
			continue
		}
		fmt.Fprintf(w, "%s\n", s.Label)
		for _, r := range rows {
			fmt.Fprintf(w, "  %-40s %12s\n", r.Name, r.Display)
		}
	}
}

func runArchive(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	rt, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer rt.close()

	renderer, err := report.RendererFor(rt.cfg.ReportFormat)
	if err != nil {
		return fmt.Errorf("REPORT_FORMAT %q: %w", rt.cfg.ReportFormat, err)
	}
	path, err := archive.NewArchiver(rt.controller, renderer, rt.cfg.ArchiveDir, rt.clock, rt.cfg.SortViews).Run(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Relatório arquivado em %s\n", path)
	return nil
}
