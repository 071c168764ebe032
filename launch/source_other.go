//go:build !windows

package launch

import (
	"fmt"
	"log"

	"screentime/entity"
)

func NewWMISource(*log.Logger) (Source, error) {
	return nil, fmt.Errorf("NewWMISource: %w: WMI requires Windows", entity.ErrSourceUnavailable)
}
