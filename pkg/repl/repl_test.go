package repl

import (
	"bytes"
	"strings"
	"testing"

	"github.com/doug-101/rpcalc/internal/testutil"
	"github.com/doug-101/rpcalc/pkg/calc"
)

func TestREPL_New(t *testing.T) {
	r := New(nil)
	if r == nil || r.Engine() == nil {
		t.Fatal("New returned no engine")
	}
	e := calc.NewEngine(calc.DefaultSettings())
	if New(e).Engine() != e {
		t.Error("expected the given engine to be used")
	}
}

func TestREPL_HandleCommand_Help(t *testing.T) {
	r := New(nil)
	var out bytes.Buffer

	for _, cmd := range []string{"help", "h", "?"} {
		out.Reset()
		if !r.handleCommand(cmd, &out) {
			t.Errorf("expected help command '%s' to be handled", cmd)
		}
		if !strings.Contains(out.String(), "rpcalc REPL Commands") {
			t.Errorf("expected help text, got: %s", out.String())
		}
	}
}

func TestREPL_HandleCommand_Quit(t *testing.T) {
	for _, cmd := range []string{"quit", "exit", "q"} {
		r := New(nil)
		var out bytes.Buffer
		if !r.handleCommand(cmd, &out) {
			t.Errorf("expected quit command '%s' to be handled", cmd)
		}
		if !strings.Contains(out.String(), "Goodbye") || !r.done {
			t.Errorf("expected goodbye and stop, got: %s", out.String())
		}
	}
}

func TestREPL_HandleCommand_NotACommand(t *testing.T) {
	r := New(nil)
	var out bytes.Buffer
	if r.handleCommand("5 ENT", &out) {
		t.Error("expected calculator keys to fall through to eval")
	}
	if !r.handleCommand("   ", &out) {
		t.Error("expected blank line to be consumed")
	}
}

func TestREPL_Eval(t *testing.T) {
	r := New(nil)
	var out bytes.Buffer
	r.eval("5 ENT 3 +", &out)
	if !strings.Contains(out.String(), "=>  8.0000") {
		t.Errorf("expected result display, got: %s", out.String())
	}
	if r.Engine().Stack()[calc.RegX] != 8 {
		t.Errorf("expected X = 8, got %v", r.Engine().Stack())
	}

	out.Reset()
	r.eval("1 . . 2 bogus", &out)
	if !strings.Contains(out.String(), "Rejected: . bogus") {
		t.Errorf("expected rejected tokens listed, got: %s", out.String())
	}
}

func TestREPL_Stack(t *testing.T) {
	r := New(nil)
	r.Engine().Restore([calc.StackSize]float64{1, 2, 3, 4}, [calc.MemorySize]float64{})
	var out bytes.Buffer
	r.handleCommand("stack", &out)
	s := out.String()
	for _, want := range []string{"4.0000", "3.0000", "2.0000", "1.0000"} {
		if !strings.Contains(s, want) {
			t.Errorf("expected %s in stack table, got:\n%s", want, s)
		}
	}
	if strings.Index(s, "4.0000") > strings.Index(s, "1.0000") {
		t.Errorf("expected T printed above X, got:\n%s", s)
	}
}

func TestREPL_MemoryAndHistory(t *testing.T) {
	r := New(nil)
	var out bytes.Buffer
	r.eval("6 ENT 7 * STO 3", &out)

	out.Reset()
	r.handleCommand("mem", &out)
	if !strings.Contains(out.String(), "42.0000") {
		t.Errorf("expected stored value in memory table, got:\n%s", out.String())
	}

	out.Reset()
	r.handleCommand("hist", &out)
	if !strings.Contains(out.String(), "6.0000 * 7.0000") {
		t.Errorf("expected equation in history table, got:\n%s", out.String())
	}
}

func TestREPL_HistEmptyAndGraph(t *testing.T) {
	r := New(nil)
	var out bytes.Buffer
	r.handleCommand("hist", &out)
	if !strings.Contains(out.String(), "No history") {
		t.Errorf("expected empty history message, got: %s", out.String())
	}

	out.Reset()
	r.handleCommand("graph", &out)
	if !strings.Contains(out.String(), "Not enough history") {
		t.Errorf("expected not enough history, got: %s", out.String())
	}

	r.eval("1 ENT 1 + 1 + 1 + X^2", &out)
	out.Reset()
	r.handleCommand("graph", &out)
	if !strings.Contains(out.String(), "last 4 results") {
		t.Errorf("expected plot caption, got:\n%s", out.String())
	}
}

func TestREPL_Base(t *testing.T) {
	r := New(nil)
	var out bytes.Buffer

	r.handleCommand("base", &out)
	if !strings.Contains(out.String(), "Current base: 10") {
		t.Errorf("expected current base, got: %s", out.String())
	}

	out.Reset()
	r.handleCommand("base 16", &out)
	if r.Engine().Base() != 16 {
		t.Error("expected base 16")
	}
	r.eval("FF", &out)
	out.Reset()
	r.handleCommand("alt", &out)
	for _, want := range []string{"ff", "377", "11111111", "255"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("expected %s in alt table, got:\n%s", want, out.String())
		}
	}

	out.Reset()
	r.handleCommand("base 3", &out)
	if !strings.Contains(out.String(), "Unknown base") || r.Engine().Base() != 16 {
		t.Errorf("expected unknown base message, got: %s", out.String())
	}
}

func TestREPL_Set(t *testing.T) {
	r := New(nil)
	var out bytes.Buffer

	r.handleCommand("set places 2", &out)
	if r.Engine().Settings().DecimalPlaces != 2 || !strings.Contains(out.String(), "=>  0.00") {
		t.Errorf("expected 2 places, got: %s", out.String())
	}

	out.Reset()
	r.handleCommand("set angle grad", &out)
	if r.Engine().Settings().AngleUnit != calc.Gradians {
		t.Errorf("expected gradians, got %v", r.Engine().Settings().AngleUnit)
	}

	for _, bad := range []string{"set angle turns", "set sci maybe", "set colour red", "set places"} {
		out.Reset()
		r.handleCommand(bad, &out)
		if !strings.Contains(out.String(), "Error") && !strings.Contains(out.String(), "Usage") {
			t.Errorf("%q: expected an error, got: %s", bad, out.String())
		}
	}

	out.Reset()
	r.handleCommand("settings", &out)
	if !strings.Contains(out.String(), "grad") {
		t.Errorf("expected settings table, got:\n%s", out.String())
	}
}

func TestREPL_Paste(t *testing.T) {
	r := New(nil)
	var out bytes.Buffer
	r.handleCommand("paste 1,234.5", &out)
	if r.Engine().Stack()[calc.RegX] != 1234.5 {
		t.Errorf("expected pasted value, got %v", r.Engine().Stack())
	}
}

func TestREPL_SaveLoad(t *testing.T) {
	r := New(nil)
	var out bytes.Buffer
	r.eval("2 ENT 3 Y^X", &out)
	path := testutil.TempPath(t, "hist.json")

	out.Reset()
	r.handleCommand("save "+path, &out)
	if !strings.Contains(out.String(), "Saved 1 history entries") {
		t.Fatalf("expected save confirmation, got: %s", out.String())
	}

	fresh := New(nil)
	out.Reset()
	fresh.handleCommand("load "+path, &out)
	if !strings.Contains(out.String(), "Loaded 1 history entries") {
		t.Fatalf("expected load confirmation, got: %s", out.String())
	}
	if h := fresh.Engine().History(); len(h) != 1 || h[0].Result != 8 {
		t.Errorf("unexpected history %v", h)
	}

	out.Reset()
	fresh.handleCommand("load "+testutil.TempPath(t, "missing.csv"), &out)
	if !strings.Contains(out.String(), "Error") {
		t.Errorf("expected load error, got: %s", out.String())
	}
}

func TestREPL_Start(t *testing.T) {
	r := New(nil)
	in := strings.NewReader("5 ENT 3 +\nquit\n9\n")
	var out bytes.Buffer
	if err := r.Start(in, &out); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	s := out.String()
	if !strings.Contains(s, "=>  8.0000") || !strings.Contains(s, "Goodbye!") {
		t.Errorf("unexpected session output:\n%s", s)
	}
	// input after quit is not read
	if r.Engine().Stack()[calc.RegX] != 8 {
		t.Errorf("expected X = 8, got %v", r.Engine().Stack())
	}
}
