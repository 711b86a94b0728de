// Package calc implements the RPN calculator core.
//
// The engine is a state machine fed one command token at a time. It keeps a
// four register stack (X, Y, Z, T), ten memory slots and a history of
// completed equations, and renders X into a display string.
//
// Basic usage:
//
//	e := calc.NewEngine(calc.DefaultSettings())
//	for _, tok := range []string{"5", "ENT", "3", "+"} {
//	    e.Cmd(tok)
//	}
//	fmt.Println(e.Display()) // " 8.0000"
package calc

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/juju/errors"
	"github.com/juju/loggo"
)

var logger = loggo.GetLogger("rpcalc.calc")

// maxMagnitude is the largest X the display accepts before signalling overflow.
const maxMagnitude = 1e299

// Engine is the calculator state machine. It is not safe for concurrent use;
// one caller owns it and feeds it tokens in order.
type Engine struct {
	stack     Stack
	mem       [MemorySize]float64
	settings  Settings
	base      int
	mode      Mode
	xStr      string
	history   *History
	memChg    bool
	lastAngle AngleUnit // unit DEG returns to when leaving radians
}

// NewEngine creates an engine with a zeroed stack and memory.
func NewEngine(settings Settings) *Engine {
	settings.Normalize()
	e := &Engine{
		settings:  settings,
		base:      10,
		mode:      ModeSave,
		history:   NewHistory(settings.MaxHistLength),
		lastAngle: Degrees,
	}
	if settings.AngleUnit != Radians {
		e.lastAngle = settings.AngleUnit
	}
	e.updateXStr()
	return e
}

// Display returns the current display text.
func (e *Engine) Display() string { return e.xStr }

// Mode returns the current input mode.
func (e *Engine) Mode() Mode { return e.mode }

// Base returns the numeric base used for entry and display.
func (e *Engine) Base() int { return e.base }

// Stack returns a copy of the registers, X first.
func (e *Engine) Stack() [StackSize]float64 { return e.stack.Values() }

// Memory returns a copy of the memory slots.
func (e *Engine) Memory() [MemorySize]float64 { return e.mem }

// Settings returns a copy of the current settings.
func (e *Engine) Settings() Settings { return e.settings }

// History returns the equation log, oldest first.
func (e *Engine) History() []HistoryEntry { return e.history.Entries() }

// HistoryResults returns the result of every logged equation, oldest first.
func (e *Engine) HistoryResults() []float64 { return e.history.Results() }

// HistoryVersion increases whenever the history changes.
func (e *Engine) HistoryVersion() int { return e.history.Version() }

// MemoryChanged reports whether a store happened since the last
// ClearMemoryChanged.
func (e *Engine) MemoryChanged() bool { return e.memChg }

// ClearMemoryChanged resets the memory change flag, typically after saving.
func (e *Engine) ClearMemoryChanged() { e.memChg = false }

// State is a snapshot of the stack and memory.
type State struct {
	Stack [StackSize]float64
	Mem   [MemorySize]float64
}

// State returns a snapshot of the stack and memory for persisting.
func (e *Engine) State() State {
	return State{Stack: e.stack.Values(), Mem: e.mem}
}

// Restore replaces the stack and memory, e.g. with values read from the
// options file, and refreshes the display.
func (e *Engine) Restore(stack [StackSize]float64, mem [MemorySize]float64) {
	e.stack.ReplaceAll(stack)
	e.mem = mem
	e.mode = ModeSave
	e.updateXStr()
}

// LoadHistory replaces the history log.
func (e *Engine) LoadHistory(entries []HistoryEntry) {
	e.history.Replace(entries)
}

// SetSettings replaces the settings. Out of range values are clamped. The
// display is refreshed unless a number is being typed or a prompt is shown.
func (e *Engine) SetSettings(s Settings) {
	s.Normalize()
	e.settings = s
	if s.AngleUnit != Radians {
		e.lastAngle = s.AngleUnit
	}
	e.history.SetMax(s.MaxHistLength)
	e.refresh()
}

// SetBase switches the entry and display base. Any number being typed is
// committed first.
func (e *Engine) SetBase(base int) error {
	if !ValidBase(base) {
		return errors.NotValidf("base %d", base)
	}
	e.base = base
	if e.mode == ModeEntry || e.mode == ModeExponent {
		e.mode = ModeSave
	}
	e.refresh()
	return nil
}

func (e *Engine) refresh() {
	switch e.mode {
	case ModeSave, ModeReplace:
		e.updateXStr()
	}
}

// Format renders num the way the display would.
func (e *Engine) Format(num float64) string {
	return FormatNumber(num, &e.settings, e.base)
}

// RegisterStrings returns Y, Z and T formatted for a register view.
func (e *Engine) RegisterStrings() [StackSize - 1]string {
	var out [StackSize - 1]string
	for i := range out {
		out[i] = e.Format(e.stack[i+1])
	}
	return out
}

// SciString returns X in scientific notation with places decimals, as used
// when copying the value out.
func (e *Engine) SciString(places int) string {
	places = clamp(places, 0, 17)
	return signed(strconv.FormatFloat(e.stack.X(), 'e', places, 64))
}

// PreciseString returns X with every significant digit, for copying the
// exact value out.
func (e *Engine) PreciseString() string {
	return strconv.FormatFloat(e.stack.X(), 'g', -1, 64)
}

// AltBase holds X rendered in each supported base.
type AltBase struct {
	Hex, Octal, Binary, Decimal string
}

// AltBaseStrings renders X in every base, honoring the bit width and two's
// complement settings.
func (e *Engine) AltBaseStrings() AltBase {
	x, bits, twos := e.stack.X(), e.settings.AltBaseBits, e.settings.UseTwosComplement
	return AltBase{
		Hex:     NumberString(x, 16, bits, twos),
		Octal:   NumberString(x, 8, bits, twos),
		Binary:  NumberString(x, 2, bits, twos),
		Decimal: NumberString(x, 10, bits, twos),
	}
}

// PushValue pushes v onto the stack as the new X.
func (e *Engine) PushValue(v float64) {
	e.stack.EnterX()
	e.stack.SetX(v)
	e.mode = ModeSave
	e.updateXStr()
}

// Paste parses text in the current base and pushes it. Text that does not
// parse puts the engine in the error state.
func (e *Engine) Paste(text string) {
	v, err := ParseNumber(text, e.base, e.settings)
	if err != nil {
		e.fail(err)
		return
	}
	e.PushValue(v)
}

// Cmd decodes and executes a single token, reporting whether anything
// changed. In the error state any token, even an unknown one, clears the
// error and is otherwise ignored.
func (e *Engine) Cmd(token string) bool {
	if e.mode == ModeError {
		e.recover()
		return true
	}
	c, ok := ParseCommand(token)
	if !ok {
		logger.Debugf("rejected token %q in %v mode", token, e.mode)
		return false
	}
	return e.Exec(c)
}

// Exec executes a decoded command, reporting whether anything changed.
func (e *Engine) Exec(c Command) bool {
	if c.Op == OpDigit && (c.Digit < 0 || c.Digit >= len(hexDigits)) {
		return false
	}
	switch {
	case e.mode.awaitsDigit():
		return e.digitPrompt(c)
	case e.mode == ModeError:
		e.recover()
		return true
	}

	var eqn string
	var err error
	switch c.Op {
	case OpDigit, OpPoint:
		return e.numEntry(c)
	case OpExponent:
		return e.expCmd()
	case OpChangeSign:
		return e.chsCmd()
	case OpBackspace:
		return e.bspCmd()
	case OpEnter:
		e.stack.EnterX()
		e.mode = ModeReplace
		e.updateXStr()
		return true
	case OpStore:
		e.prompt(ModeMemStore)
		return true
	case OpRecall:
		e.prompt(ModeMemRecall)
		return true
	case OpPlaces:
		e.prompt(ModeDecPlaces)
		return true
	case OpAdd, OpSub, OpMul, OpDiv:
		eqn, err = e.arith(c.Op)
	case OpExchange:
		e.stack.Swap()
	case OpClear:
		e.stack.Reset()
	case OpRollBack:
		e.stack.RollBack()
	case OpRollUp:
		e.stack.RollUp()
	case OpPi:
		e.stack.EnterX()
		e.stack.SetX(math.Pi)
	case OpSci:
		e.settings.ForceSci = !e.settings.ForceSci
	case OpDeg:
		e.toggleAngle()
	case OpSquare, OpPower, OpRoot, OpRecip, OpExpE, OpExp10:
		eqn, err = e.power(c.Op)
	case OpSqrt, OpSin, OpCos, OpTan, OpLn, OpAsin, OpAcos, OpAtan, OpLog:
		eqn, err = e.function(c.Op)
	default:
		logger.Debugf("rejected command %v in %v mode", c, e.mode)
		return false
	}
	if err != nil {
		e.fail(err)
		return true
	}
	e.mode = ModeSave
	e.updateXStr()
	if eqn != "" && e.mode != ModeError {
		e.history.Add(eqn, e.stack.X())
	}
	return true
}

// updateXStr renders X into the display, switching to the overflow error
// when X is too large to show.
func (e *Engine) updateXStr() {
	x := e.stack.X()
	switch {
	case math.IsNaN(x):
		e.stack.SetX(0)
		e.xStr = ErrorText
		e.mode = ModeError
	case math.Abs(x) > maxMagnitude:
		e.stack.SetX(0)
		if math.Abs(e.stack.Y()) > maxMagnitude {
			e.stack[RegY] = 0
		}
		e.xStr = OverflowText
		e.mode = ModeError
	default:
		e.xStr = e.Format(x)
	}
}

func (e *Engine) fail(err error) {
	if IsOverflow(err) {
		e.xStr = OverflowText
	} else {
		e.xStr = ErrorText
	}
	logger.Debugf("error state: %v", err)
	e.mode = ModeError
}

func (e *Engine) recover() {
	e.mode = ModeSave
	e.updateXStr()
}

func (e *Engine) prompt(m Mode) {
	e.mode = m
	e.xStr = PromptText
}

// digitPrompt finishes STO, RCL and PLCS. Backspace cancels.
func (e *Engine) digitPrompt(c Command) bool {
	switch {
	case c.Op == OpDigit && c.Digit <= 9:
		switch e.mode {
		case ModeMemStore:
			e.mem[c.Digit] = e.stack.X()
			e.memChg = true
		case ModeMemRecall:
			e.stack.EnterX()
			e.stack.SetX(e.mem[c.Digit])
		case ModeDecPlaces:
			e.settings.DecimalPlaces = c.Digit
		}
	case c.Op == OpBackspace:
	default:
		return false
	}
	e.mode = ModeSave
	e.updateXStr()
	return true
}

func (e *Engine) toggleAngle() {
	if e.settings.AngleUnit == Radians {
		e.settings.AngleUnit = e.lastAngle
		return
	}
	e.lastAngle = e.settings.AngleUnit
	e.settings.AngleUnit = Radians
}

// operand formats a value for an equation string.
func (e *Engine) operand(v float64) string {
	return strings.TrimSpace(e.Format(v))
}

func (e *Engine) arith(op Op) (string, error) {
	y, x := e.stack.Y(), e.stack.X()
	eqn := fmt.Sprintf("%s %s %s", e.operand(y), op, e.operand(x))
	var r float64
	switch op {
	case OpAdd:
		r = y + x
	case OpSub:
		r = y - x
	case OpMul:
		r = y * x
	case OpDiv:
		if x == 0 {
			return "", errors.Annotate(errDomain, "division by zero")
		}
		r = y / x
	}
	e.stack.ReplaceXY(r)
	return eqn, nil
}

// power handles the squares, powers, roots and exponentials.
func (e *Engine) power(op Op) (string, error) {
	y, x := e.stack.Y(), e.stack.X()
	xs := e.operand(x)
	switch op {
	case OpSquare:
		e.stack.SetX(x * x)
		return fmt.Sprintf("(%s)^2", xs), nil
	case OpPower:
		r, err := pow(y, x)
		if err != nil {
			return "", err
		}
		e.stack.ReplaceXY(r)
		return fmt.Sprintf("(%s)^%s", e.operand(y), xs), nil
	case OpRoot:
		if x == 0 {
			return "", errors.Annotate(errDomain, "zeroth root")
		}
		r, err := pow(y, 1.0/x)
		if err != nil {
			return "", err
		}
		e.stack.ReplaceXY(r)
		return fmt.Sprintf("(%s)^(1/%s)", e.operand(y), xs), nil
	case OpRecip:
		if x == 0 {
			return "", errors.Annotate(errDomain, "division by zero")
		}
		e.stack.SetX(1.0 / x)
		return fmt.Sprintf("1 / (%s)", xs), nil
	case OpExpE:
		r := math.Exp(x)
		if math.IsInf(r, 0) {
			return "", errOverflow
		}
		e.stack.SetX(r)
		return fmt.Sprintf("e^(%s)", xs), nil
	case OpExp10:
		r, err := pow(10.0, x)
		if err != nil {
			return "", err
		}
		e.stack.SetX(r)
		return fmt.Sprintf("10^(%s)", xs), nil
	}
	return "", errors.Errorf("%v is not a power function", op)
}

// pow raises y to x, failing where real-valued exponentiation is undefined
// or overflows.
func pow(y, x float64) (float64, error) {
	switch {
	case y == 0 && x < 0:
		return 0, errors.Annotate(errDomain, "zero to a negative power")
	case y < 0 && x != math.Trunc(x):
		return 0, errors.Annotate(errDomain, "negative base with fractional power")
	}
	r := math.Pow(y, x)
	switch {
	case math.IsInf(r, 0):
		return 0, errOverflow
	case math.IsNaN(r):
		return 0, errDomain
	}
	return r, nil
}

// function handles the named single-argument functions, logged as NAME(x).
func (e *Engine) function(op Op) (string, error) {
	x := e.stack.X()
	conv := e.settings.AngleUnit.Factor()
	var r float64
	switch op {
	case OpSqrt:
		if x < 0 {
			return "", errDomain
		}
		r = math.Sqrt(x)
	case OpSin:
		r = math.Sin(x * conv)
	case OpCos:
		r = math.Cos(x * conv)
	case OpTan:
		r = math.Tan(x * conv)
	case OpLn:
		if x <= 0 {
			return "", errDomain
		}
		r = math.Log(x)
	case OpLog:
		if x <= 0 {
			return "", errDomain
		}
		r = math.Log10(x)
	case OpAsin:
		if x < -1 || x > 1 {
			return "", errDomain
		}
		r = math.Asin(x) / conv
	case OpAcos:
		if x < -1 || x > 1 {
			return "", errDomain
		}
		r = math.Acos(x) / conv
	case OpAtan:
		r = math.Atan(x) / conv
	default:
		return "", errors.Errorf("%v is not a function", op)
	}
	if math.IsNaN(r) {
		return "", errDomain
	}
	eqn := fmt.Sprintf("%s(%s)", op, e.operand(x))
	e.stack.SetX(r)
	return eqn, nil
}
