package archive

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mytheresa/balanco-mensal/app/report"
	"github.com/mytheresa/balanco-mensal/internal/clock"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Archiver saves the current report as balanco-YYYY-MM.<ext> in a directory.
type Archiver struct {
	ledger   report.SnapshotProvider
	renderer report.Renderer
	dir      string
	clock    clock.Clock
	sorted   bool
}

func NewArchiver(l report.SnapshotProvider, r report.Renderer, dir string, c clock.Clock, sorted bool) *Archiver {
	return &Archiver{
		ledger:   l,
		renderer: r,
		dir:      dir,
		clock:    c,
		sorted:   sorted,
	}
}

// Run renders the report and writes it, replacing an archive of the same month.
// The file appears atomically: it is written under a temporary name first.
func (a *Archiver) Run(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := report.Export(&buf, a.renderer, a.ledger, a.clock, a.sorted); err != nil {
		return "", err
	}
	if err := os.MkdirAll(a.dir, 0o755); err != nil {
		return "", fmt.Errorf("create archive dir: %w", err)
	}

	path := filepath.Join(a.dir, a.fileName())
	tmp, err := os.CreateTemp(a.dir, ".balanco-*")
	if err != nil {
		return "", fmt.Errorf("create archive file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := buf.WriteTo(tmp); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write archive file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("write archive file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("move archive file: %w", err)
	}

	zap.L().Info("report archived", zap.String("path", path), zap.String("format", a.renderer.Format()))
	return path, nil
}

func (a *Archiver) fileName() string {
	ext := filepath.Ext(a.renderer.FileName())
	if ext == "" {
		ext = ".html"
	}
	return fmt.Sprintf("balanco-%s%s", a.clock.Now().Format("2006-01"), ext)
}

// Scheduler runs an Archiver on a cron schedule.
type Scheduler struct {
	cron *cron.Cron
}

// NewScheduler registers the archiver a to run on spec, a standard five-field
// cron expression.
func NewScheduler(spec string, a *Archiver) (*Scheduler, error) {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		if _, err := a.Run(context.Background()); err != nil {
			zap.L().Error("failed to archive report", zap.Error(err))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid archive schedule %q: %w", spec, err)
	}
	return &Scheduler{cron: c}, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the schedule and waits for a running archive to finish or ctx to end.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
}
