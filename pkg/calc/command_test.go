package calc

import "testing"

func TestParseCommand_Digits(t *testing.T) {
	tests := []struct {
		token string
		digit int
	}{
		{"0", 0}, {"7", 7}, {"9", 9}, {"A", 10}, {"C", 12}, {"F", 15},
	}
	for _, tt := range tests {
		c, ok := ParseCommand(tt.token)
		if !ok {
			t.Errorf("%q: expected a digit", tt.token)
			continue
		}
		if c.Op != OpDigit || c.Digit != tt.digit {
			t.Errorf("%q: got %+v", tt.token, c)
		}
		if c.String() != tt.token {
			t.Errorf("%q: String() = %q", tt.token, c.String())
		}
	}
}

func TestParseCommand_RoundTrip(t *testing.T) {
	for _, tok := range append(Tokens(), ".", "+", "-", "*", "/") {
		c, ok := ParseCommand(tok)
		if !ok {
			t.Errorf("%q: not recognized", tok)
			continue
		}
		if c.String() != tok {
			t.Errorf("%q: String() = %q", tok, c.String())
		}
	}
}

func TestParseCommand_Invalid(t *testing.T) {
	for _, tok := range []string{"", "a", "G", "10", "ent", "SINH", " +", "DIGIT"} {
		if c, ok := ParseCommand(tok); ok {
			t.Errorf("%q: expected rejection, got %+v", tok, c)
		}
	}
}

func TestCommand_StringOutOfRangeDigit(t *testing.T) {
	for _, d := range []int{-1, 16} {
		c := Command{Op: OpDigit, Digit: d}
		if _, ok := ParseCommand(c.String()); ok {
			t.Errorf("digit %d: String() %q should not decode", d, c.String())
		}
	}
}

func TestOp_StringUnknown(t *testing.T) {
	if got := Op(250).String(); got != "UNKNOWN(250)" {
		t.Errorf("got %q", got)
	}
}

func TestMode_String(t *testing.T) {
	if ModeMemRecall.String() != "recall" || Mode(99).String() != "Mode(99)" {
		t.Errorf("unexpected mode names %q %q", ModeMemRecall, Mode(99))
	}
	if !ModeDecPlaces.awaitsDigit() || ModeEntry.awaitsDigit() {
		t.Error("awaitsDigit misclassified modes")
	}
}
