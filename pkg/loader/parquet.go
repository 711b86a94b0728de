package loader

import (
	"context"

	"github.com/juju/errors"
	"github.com/rocketlaunchr/dataframe-go/imports"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/writer"

	"github.com/doug-101/rpcalc/pkg/calc"
)

// parquetRow is the on-disk row layout.
type parquetRow struct {
	Equation string  `parquet:"name=equation, type=BYTE_ARRAY, convertedtype=UTF8"`
	Result   float64 `parquet:"name=result, type=DOUBLE"`
}

// LoadParquet reads a Parquet history file.
// Uses the dataframe-go imports package with parquet-go backend.
func LoadParquet(path string) ([]calc.HistoryEntry, error) {
	fr, err := local.NewLocalFileReader(path)
	if err != nil {
		return nil, errors.Trace(err)
	}
	defer fr.Close()

	ctx := context.Background()
	df, err := imports.LoadFromParquet(ctx, fr)
	if err != nil {
		return nil, errors.Annotate(err, "parsing Parquet")
	}
	return fromFrame(df)
}

// SaveParquet writes entries as a two-column Parquet file.
func SaveParquet(path string, entries []calc.HistoryEntry) error {
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return errors.Trace(err)
	}
	defer fw.Close()

	pw, err := writer.NewParquetWriter(fw, new(parquetRow), 1)
	if err != nil {
		return errors.Annotate(err, "creating Parquet writer")
	}
	for _, e := range entries {
		if err := pw.Write(parquetRow{Equation: e.Equation, Result: e.Result}); err != nil {
			return errors.Annotate(err, "writing Parquet row")
		}
	}
	if err := pw.WriteStop(); err != nil {
		return errors.Annotate(err, "finishing Parquet file")
	}
	return nil
}
