package launch

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/shirou/gopsutil/process"

	"screentime/entity"
)

// Source lists the processes known to the operating system.
type Source interface {
	ListRecentProcesses(ctx context.Context) ([]entity.ProcessRecord, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context) ([]entity.ProcessRecord, error)

func (f SourceFunc) ListRecentProcesses(ctx context.Context) ([]entity.ProcessRecord, error) {
	return f(ctx)
}

// ProcessSource reads the process table through gopsutil.
type ProcessSource struct {
	logger *log.Logger
}

func NewProcessSource(logger *log.Logger) *ProcessSource {
	return &ProcessSource{logger: logger}
}

func (s *ProcessSource) ListRecentProcesses(ctx context.Context) ([]entity.ProcessRecord, error) {
	processes, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("ListRecentProcesses: %w: %v", entity.ErrSourceUnavailable, err)
	}

	records := make([]entity.ProcessRecord, 0, len(processes))
	dropped := 0
	for _, p := range processes {
		if p == nil {
			continue
		}
		rec, err := readProcess(ctx, p)
		if err != nil {
			// system processes often hide their creation time
			dropped++
			continue
		}
		records = append(records, rec)
	}
	if s.logger != nil {
		s.logger.Printf("gopsutil: %d processes, %d without usable start time", len(records), dropped)
	}
	return records, nil
}

func readProcess(ctx context.Context, p *process.Process) (entity.ProcessRecord, error) {
	name, err := p.NameWithContext(ctx)
	if err != nil || name == "" {
		return entity.ProcessRecord{}, fmt.Errorf("pid %d: %w: no name", p.Pid, entity.ErrRecordParse)
	}
	created, err := p.CreateTimeWithContext(ctx)
	if err != nil || created <= 0 {
		return entity.ProcessRecord{}, fmt.Errorf("pid %d: %w: no creation time", p.Pid, entity.ErrRecordParse)
	}
	return entity.ProcessRecord{Name: name, StartTime: time.UnixMilli(created)}, nil
}
