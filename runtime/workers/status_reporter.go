package workers

import (
	"anonymity-service/domain"
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/shirou/gopsutil/process"
)

// StatusSource is the read side of the registry host.
type StatusSource interface {
	GetServiceStatus(ctx context.Context) (domain.State, error)
}

type StatusReporter struct {
	log      *slog.Logger
	source   StatusSource
	interval time.Duration
}

func NewStatusReporter(log *slog.Logger, source StatusSource, interval time.Duration) *StatusReporter {
	return &StatusReporter{log: log, source: source, interval: interval}
}

// Run logs the registry lifecycle position and the process footprint every interval.
func (w *StatusReporter) Run(ctx context.Context) error {
	w.log.Info("Starting status reporter", "interval", w.interval)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.report(ctx, p)
		}
	}
}

func (w *StatusReporter) report(ctx context.Context, p *process.Process) {
	state, err := w.source.GetServiceStatus(ctx)
	if err != nil {
		w.log.Error("Failed to read registry status", "error", err)
		return
	}
	attrs := []any{
		"status", state.Status(),
		"messages", state.MessageCount,
	}
	if rss, cpu, err := selfStats(p); err != nil {
		w.log.Debug("Failed to collect self stats", "error", err)
	} else {
		attrs = append(attrs, "rss_bytes", rss, "cpu_percent", cpu)
	}
	w.log.Info("Registry status", attrs...)
}

func selfStats(p *process.Process) (uint64, float64, error) {
	memInfo, err := p.MemoryInfo()
	if err != nil {
		return 0, 0, err
	}
	cpuPercent, err := p.CPUPercent()
	if err != nil {
		return 0, 0, err
	}
	return memInfo.RSS, cpuPercent, nil
}
