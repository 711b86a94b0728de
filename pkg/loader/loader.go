// Package loader reads and writes the calculator's equation history.
//
// Histories are two-column tables (equation, result). CSV and Parquet go
// through dataframe-go so that files written by other tools load with the
// same type handling; JSON is a plain array of objects.
package loader

import (
	"path/filepath"
	"strings"

	"github.com/juju/errors"
	"github.com/juju/loggo"

	"github.com/doug-101/rpcalc/pkg/calc"
)

var logger = loggo.GetLogger("rpcalc.loader")

// Column names used in every history file.
const (
	ColEquation = "equation"
	ColResult   = "result"
)

// Error definitions
var (
	ErrEmptyFile     = errors.New("empty history file")
	ErrMissingColumn = errors.New("history file lacks an equation or result column")
)

// Format identifies a history file encoding.
type Format int

const (
	FormatCSV Format = iota
	FormatJSON
	FormatParquet
)

func (f Format) String() string {
	switch f {
	case FormatCSV:
		return "csv"
	case FormatJSON:
		return "json"
	case FormatParquet:
		return "parquet"
	default:
		return "unknown"
	}
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".json":
		return FormatJSON, nil
	case ".parquet", ".pq":
		return FormatParquet, nil
	}
	return 0, errors.NotSupportedf("history file extension %q", filepath.Ext(path))
}

// Load reads a history file in the format implied by its extension.
func Load(path string) ([]calc.HistoryEntry, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	var entries []calc.HistoryEntry
	switch format {
	case FormatCSV:
		entries, err = LoadCSV(path)
	case FormatJSON:
		entries, err = LoadJSON(path)
	case FormatParquet:
		entries, err = LoadParquet(path)
	}
	if err != nil {
		return nil, errors.Annotatef(err, "loading %s", path)
	}
	logger.Debugf("loaded %d history entries from %s", len(entries), path)
	return entries, nil
}

// Save writes entries in the format implied by the extension of path.
func Save(path string, entries []calc.HistoryEntry) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	switch format {
	case FormatCSV:
		err = SaveCSV(path, entries)
	case FormatJSON:
		err = SaveJSON(path, entries)
	case FormatParquet:
		err = SaveParquet(path, entries)
	}
	if err != nil {
		return errors.Annotatef(err, "saving %s", path)
	}
	logger.Debugf("saved %d history entries to %s", len(entries), path)
	return nil
}
