package loader

import (
	"context"
	"os"

	"github.com/juju/errors"
	"github.com/rocketlaunchr/dataframe-go/exports"
	"github.com/rocketlaunchr/dataframe-go/imports"

	"github.com/doug-101/rpcalc/pkg/calc"
)

// LoadCSV reads a history CSV file.
// - First row is the header; it must name an equation and a result column
// - The equation column is always read as text, the result as float64
func LoadCSV(path string) ([]calc.HistoryEntry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Trace(err)
	}
	defer file.Close()

	if info, err := file.Stat(); err == nil && info.Size() == 0 {
		return nil, ErrEmptyFile
	}

	ctx := context.Background()
	df, err := imports.LoadFromCSV(ctx, file, imports.CSVLoadOptions{
		// Equations such as "2" would otherwise be inferred as numbers
		DictateDataType: map[string]interface{}{
			ColEquation: "",
			ColResult:   float64(0),
		},
	})
	if err != nil {
		return nil, errors.Annotate(err, "parsing CSV")
	}
	return fromFrame(df)
}

// SaveCSV writes entries as CSV with an equation,result header.
func SaveCSV(path string, entries []calc.HistoryEntry) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Trace(err)
	}
	defer file.Close()

	ctx := context.Background()
	if err := exports.ExportToCSV(ctx, file, toFrame(entries)); err != nil {
		return errors.Annotate(err, "writing CSV")
	}
	return errors.Trace(file.Close())
}
