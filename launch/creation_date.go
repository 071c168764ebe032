package launch

import (
	"fmt"
	"time"

	"screentime/entity"
)

const creationDateLayout = "20060102150405"

// ParseCreationDate reads a WMI CIM datetime such as
// "20261019143005.500000-180". Only the YYYYMMDDHHMMSS prefix is used and it
// is read as local time; the fraction and the UTC offset are ignored.
func ParseCreationDate(raw string) (time.Time, error) {
	if len(raw) < len(creationDateLayout) {
		return time.Time{}, fmt.Errorf("ParseCreationDate %q: %w", raw, entity.ErrRecordParse)
	}
	t, err := time.ParseInLocation(creationDateLayout, raw[:len(creationDateLayout)], time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("ParseCreationDate %q: %w", raw, entity.ErrRecordParse)
	}
	return t, nil
}

// rawProcess is a process entry with its creation date still unparsed.
type rawProcess struct {
	Name         string
	CreationDate string
}

// toRecords keeps the entries whose creation date parses and drops the rest.
func toRecords(raws []rawProcess) (records []entity.ProcessRecord, dropped int) {
	records = make([]entity.ProcessRecord, 0, len(raws))
	for _, r := range raws {
		start, err := ParseCreationDate(r.CreationDate)
		if err != nil || r.Name == "" {
			dropped++
			continue
		}
		records = append(records, entity.ProcessRecord{Name: r.Name, StartTime: start})
	}
	return records, dropped
}
