package loader

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/juju/errors"
	dataframe "github.com/rocketlaunchr/dataframe-go"

	"github.com/doug-101/rpcalc/pkg/calc"
)

// toFrame lays the history out as an equation column and a result column.
func toFrame(entries []calc.HistoryEntry) *dataframe.DataFrame {
	eqns := make([]interface{}, len(entries))
	results := make([]interface{}, len(entries))
	for i, e := range entries {
		eqns[i] = e.Equation
		results[i] = e.Result
	}
	return dataframe.NewDataFrame(
		dataframe.NewSeriesString(ColEquation, nil, eqns...),
		dataframe.NewSeriesFloat64(ColResult, nil, results...),
	)
}

// fromFrame reads the history columns back. Column names match without
// regard to case, and other columns are ignored.
func fromFrame(df *dataframe.DataFrame) ([]calc.HistoryEntry, error) {
	if df == nil || len(df.Series) == 0 {
		return nil, ErrEmptyFile
	}
	eqCol, resCol := findColumn(df, ColEquation), findColumn(df, ColResult)
	if eqCol == nil || resCol == nil {
		return nil, ErrMissingColumn
	}

	n := df.NRows()
	entries := make([]calc.HistoryEntry, 0, n)
	for row := 0; row < n; row++ {
		eq := eqCol.Value(row)
		res, err := toFloat(resCol.Value(row))
		if eq == nil || err != nil {
			return nil, errors.NotValidf("history row %d", row+1)
		}
		entries = append(entries, calc.HistoryEntry{Equation: toString(eq), Result: res})
	}
	return entries, nil
}

func findColumn(df *dataframe.DataFrame, name string) dataframe.Series {
	for _, s := range df.Series {
		if strings.EqualFold(s.Name(), name) {
			return s
		}
	}
	return nil
}

func toString(v interface{}) string {
	switch v := v.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprint(v)
	}
}

func toFloat(v interface{}) (float64, error) {
	switch v := v.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case string:
		return strconv.ParseFloat(strings.TrimSpace(v), 64)
	case []byte:
		return strconv.ParseFloat(strings.TrimSpace(string(v)), 64)
	case nil:
		return 0, errors.New("missing result")
	default:
		return 0, errors.Errorf("unexpected result type %T", v)
	}
}
