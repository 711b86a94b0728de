package calc

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestHistory_AddAndTrim(t *testing.T) {
	h := NewHistory(10)
	for i := 0; i < 15; i++ {
		h.Add(fmt.Sprintf("eq%d", i), float64(i))
	}
	if h.Len() != 10 {
		t.Fatalf("expected 10 entries, got %d", h.Len())
	}
	entries := h.Entries()
	if entries[0].Equation != "eq5" || entries[9].Equation != "eq14" {
		t.Errorf("expected oldest dropped, got %v ... %v", entries[0], entries[9])
	}
	if h.Version() != 15 {
		t.Errorf("expected version 15, got %d", h.Version())
	}
}

func TestHistory_SetMaxClamps(t *testing.T) {
	h := NewHistory(1)
	for i := 0; i < 20; i++ {
		h.Add("x", float64(i))
	}
	if h.Len() != MinHistory {
		t.Errorf("expected cap clamped to %d, got %d", MinHistory, h.Len())
	}
	h.SetMax(MaxHistory + 1)
	h.Add("y", 99)
	if h.Len() != MinHistory+1 {
		t.Errorf("expected growth after raising the cap, got %d", h.Len())
	}
}

func TestHistory_ReplaceAndCopies(t *testing.T) {
	h := NewHistory(10)
	in := []HistoryEntry{{"1 + 1", 2}, {"2 * 3", 6}}
	h.Replace(in)
	in[0].Result = 100

	got := h.Entries()
	if diff := cmp.Diff([]HistoryEntry{{"1 + 1", 2}, {"2 * 3", 6}}, got); diff != "" {
		t.Errorf("history mismatch (-want +got):\n%s", diff)
	}
	got[1].Result = -1
	if diff := cmp.Diff([]float64{2, 6}, h.Results()); diff != "" {
		t.Errorf("results mismatch (-want +got):\n%s", diff)
	}
	if h.Version() != 1 {
		t.Errorf("expected version 1, got %d", h.Version())
	}
}
