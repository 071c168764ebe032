//go:build windows

package launch

import (
	"context"
	"fmt"
	"log"

	"github.com/yusufpapurcu/wmi"

	"screentime/entity"
)

// win32Process mirrors the Win32_Process columns we query. CreationDate is
// kept as the raw CIM string.
type win32Process struct {
	Name         string
	CreationDate string
}

// WMISource queries Win32_Process directly.
type WMISource struct {
	logger *log.Logger
}

func NewWMISource(logger *log.Logger) (Source, error) {
	return &WMISource{logger: logger}, nil
}

func (s *WMISource) ListRecentProcesses(ctx context.Context) ([]entity.ProcessRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var dst []win32Process
	if err := wmi.Query("SELECT Name, CreationDate FROM Win32_Process", &dst); err != nil {
		return nil, fmt.Errorf("ListRecentProcesses: %w: %v", entity.ErrSourceUnavailable, err)
	}

	raws := make([]rawProcess, 0, len(dst))
	for _, p := range dst {
		raws = append(raws, rawProcess{Name: p.Name, CreationDate: p.CreationDate})
	}
	records, dropped := toRecords(raws)
	if s.logger != nil {
		s.logger.Printf("wmi: %d processes, %d without usable start time", len(records), dropped)
	}
	return records, nil
}
