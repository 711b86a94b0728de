package calc

const (
	StackSize  = 4  // X, Y, Z, T
	MemorySize = 10 // memory slots 0-9
)

// Register indices into a Stack.
const (
	RegX = iota
	RegY
	RegZ
	RegT
)

// Stack holds the four calculator registers, X on top and T at the bottom.
// It never grows or shrinks; every operation rotates values in place.
type Stack [StackSize]float64

// X returns the top register.
func (s *Stack) X() float64 { return s[RegX] }

// Y returns the second register.
func (s *Stack) Y() float64 { return s[RegY] }

// SetX overwrites the top register.
func (s *Stack) SetX(v float64) { s[RegX] = v }

// Values returns a copy of the registers, X first.
func (s *Stack) Values() [StackSize]float64 { return *s }

// ReplaceAll overwrites every register.
func (s *Stack) ReplaceAll(vals [StackSize]float64) {
	*s = vals
}

// ReplaceXY drops X and Y, puts v in X and pulls the rest of the stack down.
// T is duplicated into the vacated Z slot.
func (s *Stack) ReplaceXY(v float64) {
	s[RegX] = v
	s[RegY] = s[RegZ]
	s[RegZ] = s[RegT]
}

// EnterX pushes a copy of X into Y, discarding T.
func (s *Stack) EnterX() {
	s[RegT] = s[RegZ]
	s[RegZ] = s[RegY]
	s[RegY] = s[RegX]
}

// RollBack rotates so that X = old Y and old X lands in T.
func (s *Stack) RollBack() {
	x := s[RegX]
	s[RegX] = s[RegY]
	s[RegY] = s[RegZ]
	s[RegZ] = s[RegT]
	s[RegT] = x
}

// RollUp rotates so that X = old T.
func (s *Stack) RollUp() {
	t := s[RegT]
	s[RegT] = s[RegZ]
	s[RegZ] = s[RegY]
	s[RegY] = s[RegX]
	s[RegX] = t
}

// Swap exchanges X and Y.
func (s *Stack) Swap() {
	s[RegX], s[RegY] = s[RegY], s[RegX]
}

// Reset zeroes all registers.
func (s *Stack) Reset() {
	*s = Stack{}
}
