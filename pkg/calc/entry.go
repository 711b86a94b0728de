package calc

import (
	"strconv"
	"strings"
)

// numEntry adds a digit or point to the number being typed, starting a new
// number when not already in entry.
func (e *Engine) numEntry(c Command) bool {
	text := " " + strings.ToLower(c.String())
	if e.mode == ModeEntry || e.mode == ModeExponent {
		text = e.xStr + strings.ToLower(c.String())
	}
	if e.base != 10 {
		return e.altBaseEntry(c, text)
	}
	if c.Op == OpDigit && c.Digit > 9 {
		return false
	}
	if text == " ." {
		text = " 0."
	}
	num, err := parseEntry(text)
	if err != nil {
		if IsOverflow(err) {
			e.fail(err)
			return true
		}
		return false
	}
	e.commitEntry(text, num)
	return true
}

func (e *Engine) altBaseEntry(c Command, text string) bool {
	if c.Op == OpPoint || c.Digit >= e.base {
		return false
	}
	num, err := parseInBase(text, e.base, e.settings.AltBaseBits, e.settings.UseTwosComplement)
	if err != nil {
		if IsOverflow(err) {
			e.xStr = overflowText
			e.mode = ModeError
			return true
		}
		return false
	}
	e.commitEntry(e.Format(num), num)
	return true
}

func (e *Engine) commitEntry(text string, num float64) {
	if e.mode == ModeSave {
		e.stack.EnterX()
	}
	e.stack.SetX(num)
	e.xStr = text
	if e.mode != ModeExponent {
		e.mode = ModeEntry
	}
}

// parseEntry reads partially typed decimal text.
func parseEntry(text string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			return 0, errOverflow
		}
		return 0, errSyntax
	}
	return v, nil
}

// parseDisplay reads the entry text back in the current base.
func (e *Engine) parseDisplay(text string) (float64, error) {
	if e.base == 10 {
		return parseEntry(text)
	}
	return parseInBase(text, e.base, e.settings.AltBaseBits, e.settings.UseTwosComplement)
}

func (e *Engine) expCmd() bool {
	if e.mode == ModeExponent || e.base != 10 {
		return false
	}
	if e.mode == ModeEntry {
		e.xStr += "e+0"
	} else {
		if e.mode == ModeSave {
			e.stack.EnterX()
		}
		e.stack.SetX(1.0)
		e.xStr = " 1e+0"
	}
	e.mode = ModeExponent
	return true
}

func (e *Engine) chsCmd() bool {
	switch {
	case e.mode == ModeExponent:
		mant, exp, _ := strings.Cut(e.xStr, "e")
		if strings.HasPrefix(exp, "+") {
			exp = "-" + exp[1:]
		} else {
			exp = "+" + strings.TrimPrefix(exp, "-")
		}
		text := mant + "e" + exp
		num, err := parseEntry(text)
		if err != nil {
			if IsOverflow(err) {
				e.fail(err)
				return true
			}
			return false
		}
		e.xStr = text
		e.stack.SetX(num)
	case e.mode == ModeEntry && e.base == 10:
		text := "-" + e.xStr[1:]
		if strings.HasPrefix(e.xStr, "-") {
			text = " " + e.xStr[1:]
		}
		num, err := parseEntry(text)
		if err != nil {
			return false
		}
		e.xStr = text
		e.stack.SetX(num)
	default:
		if e.mode == ModeEntry && e.base != 10 && e.Format(-e.stack.X()) == overflowText {
			e.xStr = overflowText
			e.mode = ModeError
			return true
		}
		e.stack.SetX(-e.stack.X())
		e.xStr = e.Format(e.stack.X())
	}
	return true
}

func (e *Engine) bspCmd() bool {
	switch {
	case e.mode == ModeEntry && len(e.xStr) > 2:
		text := e.xStr[:len(e.xStr)-1]
		num, err := e.parseDisplay(text)
		if err == nil {
			if e.base != 10 {
				text = e.Format(num)
			}
			e.xStr = text
			e.stack.SetX(num)
			return true
		}
	case e.mode == ModeExponent:
		mant, exp, _ := strings.Cut(e.xStr, "e")
		text, mode := mant, ModeEntry
		if len(exp) > 2 {
			text, mode = e.xStr[:len(e.xStr)-1], ModeExponent
		}
		num, err := parseEntry(text)
		if err != nil {
			return false
		}
		e.mode = mode
		e.xStr = text
		e.stack.SetX(num)
		return true
	}
	e.stack.SetX(0)
	e.mode = ModeReplace
	e.updateXStr()
	return true
}
