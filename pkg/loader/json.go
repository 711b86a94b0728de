package loader

import (
	"bytes"
	"os"

	"github.com/goccy/go-json"
	"github.com/juju/errors"

	"github.com/doug-101/rpcalc/pkg/calc"
)

// LoadJSON reads a JSON history file.
// The file must be in the format: [{"equation": "...", "result": 1.5}, ...]
func LoadJSON(path string) ([]calc.HistoryEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Trace(err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyFile
	}

	var entries []calc.HistoryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, errors.Annotate(err, "parsing JSON")
	}
	return entries, nil
}

// SaveJSON writes entries as an indented JSON array.
func SaveJSON(path string, entries []calc.HistoryEntry) error {
	if entries == nil {
		entries = []calc.HistoryEntry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return errors.Trace(err)
	}
	return errors.Trace(os.WriteFile(path, append(data, '\n'), 0644))
}
