package calc

import "fmt"

// Mode is the engine's input state. It decides how the next token is read.
type Mode int

const (
	ModeSave      Mode = iota // after a result; the next number pushes X
	ModeEntry                 // typing a number
	ModeReplace               // after ENT; the next number replaces X
	ModeExponent              // typing an exponent
	ModeMemStore              // waiting for a memory slot to store into
	ModeMemRecall             // waiting for a memory slot to recall from
	ModeDecPlaces             // waiting for a decimal places digit
	ModeError                 // error shown; any token resumes
)

func (m Mode) String() string {
	switch m {
	case ModeSave:
		return "save"
	case ModeEntry:
		return "entry"
	case ModeReplace:
		return "replace"
	case ModeExponent:
		return "exponent"
	case ModeMemStore:
		return "store"
	case ModeMemRecall:
		return "recall"
	case ModeDecPlaces:
		return "places"
	case ModeError:
		return "error"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// awaitsDigit reports whether the mode is one of the digit prompts.
func (m Mode) awaitsDigit() bool {
	switch m {
	case ModeMemStore, ModeMemRecall, ModeDecPlaces:
		return true
	}
	return false
}
