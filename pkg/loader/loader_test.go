package loader

import (
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/juju/errors"

	"github.com/doug-101/rpcalc/internal/testutil"
	"github.com/doug-101/rpcalc/pkg/calc"
)

func sampleHistory() []calc.HistoryEntry {
	return []calc.HistoryEntry{
		{Equation: "5.0000 + 3.0000", Result: 8},
		{Equation: "(2.0000)^10.0000", Result: 1024},
		{Equation: "1,234.0000 * 2.0000", Result: 2468},
		{Equation: "SQRT(2.0000)", Result: 1.4142135623730951},
		{Equation: "2", Result: -0.5},
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"hist.csv", FormatCSV},
		{"/tmp/HIST.JSON", FormatJSON},
		{"a.parquet", FormatParquet},
		{"a.pq", FormatParquet},
	}
	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if err != nil {
			t.Errorf("%s: %v", tt.path, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%s: expected %v, got %v", tt.path, tt.want, got)
		}
	}
	if _, err := FormatFromPath("hist.txt"); !errors.IsNotSupported(err) {
		t.Errorf("expected not supported error, got %v", err)
	}
}

func TestLoadCSV_Sample(t *testing.T) {
	path := testutil.TempFile(t, testutil.HistoryCSV(), ".csv")

	got, err := LoadCSV(path)
	if err != nil {
		t.Fatalf("LoadCSV failed: %v", err)
	}
	want := sampleHistory()[:4]
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("history mismatch (-want +got):\n%s", diff)
	}
}

func TestCSV_RoundTrip(t *testing.T) {
	path := testutil.TempPath(t, "hist.csv")
	if err := SaveCSV(path, sampleHistory()); err != nil {
		t.Fatalf("SaveCSV failed: %v", err)
	}
	got, err := LoadCSV(path)
	if err != nil {
		t.Fatalf("LoadCSV failed: %v", err)
	}
	if diff := cmp.Diff(sampleHistory(), got); diff != "" {
		t.Errorf("history mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadCSV_EmptyFile(t *testing.T) {
	path := testutil.TempFile(t, "", ".csv")
	if _, err := LoadCSV(path); errors.Cause(err) != ErrEmptyFile {
		t.Errorf("expected ErrEmptyFile, got %v", err)
	}
}

func TestLoadCSV_MissingColumn(t *testing.T) {
	path := testutil.TempFile(t, "name,value\nalice,1\n", ".csv")
	if _, err := LoadCSV(path); errors.Cause(err) != ErrMissingColumn {
		t.Errorf("expected ErrMissingColumn, got %v", err)
	}
}

func TestLoadCSV_FileNotFound(t *testing.T) {
	if _, err := LoadCSV(testutil.TempPath(t, "missing.csv")); !os.IsNotExist(errors.Cause(err)) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestJSON_RoundTrip(t *testing.T) {
	path := testutil.TempPath(t, "hist.json")
	if err := SaveJSON(path, sampleHistory()); err != nil {
		t.Fatalf("SaveJSON failed: %v", err)
	}
	got, err := LoadJSON(path)
	if err != nil {
		t.Fatalf("LoadJSON failed: %v", err)
	}
	if diff := cmp.Diff(sampleHistory(), got); diff != "" {
		t.Errorf("history mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadJSON_Literal(t *testing.T) {
	path := testutil.TempFile(t, `[
		{"equation": "1.0000 + 1.0000", "result": 2},
		{"equation": "LN(2.7183)", "result": 1.0000066849139877}
	]`, ".json")
	got, err := LoadJSON(path)
	if err != nil {
		t.Fatalf("LoadJSON failed: %v", err)
	}
	if len(got) != 2 || got[1].Equation != "LN(2.7183)" {
		t.Errorf("unexpected entries %v", got)
	}
}

func TestLoadJSON_Errors(t *testing.T) {
	empty := testutil.TempFile(t, "  \n", ".json")
	if _, err := LoadJSON(empty); errors.Cause(err) != ErrEmptyFile {
		t.Errorf("expected ErrEmptyFile, got %v", err)
	}
	bad := testutil.TempFile(t, `{"equation": `, ".json")
	if _, err := LoadJSON(bad); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

func TestSaveJSON_Nil(t *testing.T) {
	path := testutil.TempPath(t, "hist.json")
	if err := SaveJSON(path, nil); err != nil {
		t.Fatalf("SaveJSON failed: %v", err)
	}
	got, err := LoadJSON(path)
	if err != nil {
		t.Fatalf("LoadJSON failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no entries, got %v", got)
	}
}

func TestParquet_RoundTrip(t *testing.T) {
	path := testutil.TempPath(t, "hist.parquet")
	if err := SaveParquet(path, sampleHistory()); err != nil {
		t.Fatalf("SaveParquet failed: %v", err)
	}
	got, err := LoadParquet(path)
	if err != nil {
		t.Fatalf("LoadParquet failed: %v", err)
	}
	if diff := cmp.Diff(sampleHistory(), got); diff != "" {
		t.Errorf("history mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadParquet_FileNotFound(t *testing.T) {
	if _, err := LoadParquet(testutil.TempPath(t, "missing.parquet")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadAndSave_Dispatch(t *testing.T) {
	for _, name := range []string{"h.csv", "h.json"} {
		path := testutil.TempPath(t, name)
		if err := Save(path, sampleHistory()); err != nil {
			t.Fatalf("%s: Save failed: %v", name, err)
		}
		got, err := Load(path)
		if err != nil {
			t.Fatalf("%s: Load failed: %v", name, err)
		}
		if diff := cmp.Diff(sampleHistory(), got); diff != "" {
			t.Errorf("%s: history mismatch (-want +got):\n%s", name, diff)
		}
	}
	if err := Save(testutil.TempPath(t, "h.xls"), nil); !errors.IsNotSupported(err) {
		t.Errorf("expected not supported error, got %v", err)
	}
}
