package history

import (
	"encoding/json"
	"fmt"
	"time"
)

// ExportPrefix starts every export filename.
const ExportPrefix = "quiz_results"

// Export is a self-contained dump of the history, ready for a download or
// file write by the caller.
type Export struct {
	Filename string
	Data     []byte
}

// Export renders all records as indented JSON. The same history always
// produces the same bytes; only the filename depends on now.
func (s *Store) Export(now time.Time) (Export, error) {
	data, err := json.MarshalIndent(s.records.list, "", "  ")
	if err != nil {
		return Export{}, fmt.Errorf("encode export: %w", err)
	}
	return Export{
		Filename: fmt.Sprintf("%s-%s.json", ExportPrefix, now.UTC().Format("20060102T150405Z")),
		Data:     data,
	}, nil
}
