package calc

import "fmt"

// Op identifies a calculator command.
type Op uint8

const (
	OpInvalid Op = iota

	// ===== Number entry =====
	OpDigit // Digit holds 0-15
	OpPoint // decimal point

	// ===== Binary arithmetic =====
	OpAdd // Y + X
	OpSub // Y - X
	OpMul // Y * X
	OpDiv // Y / X

	// ===== Stack and entry control =====
	OpEnter      // ENT
	OpExponent   // EXP
	OpExchange   // X<>Y
	OpChangeSign // CHS
	OpClear      // CLR
	OpBackspace  // <-
	OpRollBack   // R<
	OpRollUp     // R>
	OpPi         // PI

	// ===== Mode triggers =====
	OpStore  // STO, waits for a slot digit
	OpRecall // RCL, waits for a slot digit
	OpPlaces // PLCS, waits for a decimal places digit

	// ===== Setting toggles =====
	OpSci // toggle forced scientific notation
	OpDeg // toggle angle unit

	// ===== Functions =====
	OpSquare // X^2
	OpPower  // Y^X
	OpRoot   // XRT
	OpRecip  // RCIP
	OpExpE   // E^X
	OpExp10  // TN^X
	OpSqrt   // SQRT
	OpSin    // SIN
	OpCos    // COS
	OpTan    // TAN
	OpLn     // LN
	OpAsin   // ASIN
	OpAcos   // ACOS
	OpAtan   // ATAN
	OpLog    // LOG
)

// Command is a decoded token.
type Command struct {
	Op    Op
	Digit int // only meaningful for OpDigit
}

const hexDigits = "0123456789abcdef"

// String returns the token text for the opcode.
func (o Op) String() string {
	switch o {
	case OpDigit:
		return "DIGIT"
	case OpPoint:
		return "."
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpEnter:
		return "ENT"
	case OpExponent:
		return "EXP"
	case OpExchange:
		return "X<>Y"
	case OpChangeSign:
		return "CHS"
	case OpClear:
		return "CLR"
	case OpBackspace:
		return "<-"
	case OpRollBack:
		return "R<"
	case OpRollUp:
		return "R>"
	case OpPi:
		return "PI"
	case OpStore:
		return "STO"
	case OpRecall:
		return "RCL"
	case OpPlaces:
		return "PLCS"
	case OpSci:
		return "SCI"
	case OpDeg:
		return "DEG"
	case OpSquare:
		return "X^2"
	case OpPower:
		return "Y^X"
	case OpRoot:
		return "XRT"
	case OpRecip:
		return "RCIP"
	case OpExpE:
		return "E^X"
	case OpExp10:
		return "TN^X"
	case OpSqrt:
		return "SQRT"
	case OpSin:
		return "SIN"
	case OpCos:
		return "COS"
	case OpTan:
		return "TAN"
	case OpLn:
		return "LN"
	case OpAsin:
		return "ASIN"
	case OpAcos:
		return "ACOS"
	case OpAtan:
		return "ATAN"
	case OpLog:
		return "LOG"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", o)
	}
}

// String returns the token that decodes to c.
func (c Command) String() string {
	if c.Op == OpDigit {
		if c.Digit < 0 || c.Digit >= len(hexDigits) {
			return fmt.Sprintf("DIGIT(%d)", c.Digit)
		}
		if c.Digit >= 10 {
			return string(hexDigits[c.Digit] - 'a' + 'A')
		}
		return string(hexDigits[c.Digit])
	}
	return c.Op.String()
}

// ParseCommand decodes a token. The second result is false for anything that
// is not a calculator command.
func ParseCommand(token string) (Command, bool) {
	if len(token) == 1 {
		ch := token[0]
		switch {
		case ch >= '0' && ch <= '9':
			return Command{Op: OpDigit, Digit: int(ch - '0')}, true
		case ch >= 'A' && ch <= 'F':
			return Command{Op: OpDigit, Digit: int(ch-'A') + 10}, true
		}
	}
	op, ok := opFromString(token)
	if !ok {
		return Command{}, false
	}
	return Command{Op: op}, true
}

func opFromString(s string) (Op, bool) {
	switch s {
	case ".":
		return OpPoint, true

	// Binary arithmetic
	case "+":
		return OpAdd, true
	case "-":
		return OpSub, true
	case "*":
		return OpMul, true
	case "/":
		return OpDiv, true

	// Stack and entry control
	case "ENT":
		return OpEnter, true
	case "EXP":
		return OpExponent, true
	case "X<>Y":
		return OpExchange, true
	case "CHS":
		return OpChangeSign, true
	case "CLR":
		return OpClear, true
	case "<-":
		return OpBackspace, true
	case "R<":
		return OpRollBack, true
	case "R>":
		return OpRollUp, true
	case "PI":
		return OpPi, true

	// Mode triggers
	case "STO":
		return OpStore, true
	case "RCL":
		return OpRecall, true
	case "PLCS":
		return OpPlaces, true

	// Toggles
	case "SCI":
		return OpSci, true
	case "DEG":
		return OpDeg, true

	// Functions
	case "X^2":
		return OpSquare, true
	case "Y^X":
		return OpPower, true
	case "XRT":
		return OpRoot, true
	case "RCIP":
		return OpRecip, true
	case "E^X":
		return OpExpE, true
	case "TN^X":
		return OpExp10, true
	case "SQRT":
		return OpSqrt, true
	case "SIN":
		return OpSin, true
	case "COS":
		return OpCos, true
	case "TAN":
		return OpTan, true
	case "LN":
		return OpLn, true
	case "ASIN":
		return OpAsin, true
	case "ACOS":
		return OpAcos, true
	case "ATAN":
		return OpAtan, true
	case "LOG":
		return OpLog, true

	default:
		return OpInvalid, false
	}
}

// Tokens lists every multi-character command token, in keypad order.
func Tokens() []string {
	return []string{
		"ENT", "EXP", "X<>Y", "CHS", "CLR", "<-", "STO", "RCL", "PLCS", "SCI",
		"DEG", "R<", "R>", "PI", "X^2", "Y^X", "XRT", "RCIP", "E^X", "TN^X",
		"SQRT", "SIN", "COS", "TAN", "LN", "ASIN", "ACOS", "ATAN", "LOG",
	}
}
