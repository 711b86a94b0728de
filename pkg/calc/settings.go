package calc

import (
	"math"

	"github.com/juju/errors"
)

// AngleUnit selects how trig functions read and produce angles.
type AngleUnit string

const (
	Degrees  AngleUnit = "deg"
	Radians  AngleUnit = "rad"
	Gradians AngleUnit = "grad"
)

// Factor returns the multiplier converting this unit to radians.
func (a AngleUnit) Factor() float64 {
	switch a {
	case Radians:
		return 1.0
	case Gradians:
		return math.Pi / 200.0
	default:
		return math.Pi / 180.0
	}
}

// ParseAngleUnit accepts "deg", "rad" or "grad".
func ParseAngleUnit(s string) (AngleUnit, error) {
	switch a := AngleUnit(s); a {
	case Degrees, Radians, Gradians:
		return a, nil
	}
	return "", errors.NotValidf("angle unit %q", s)
}

// Setting limits.
const (
	MinDecimalPlaces = 0
	MaxDecimalPlaces = 9
	MinHistory       = 10
	MaxHistory       = 10000
	MinBits          = 4
	MaxBits          = 128
)

// Settings holds the user options the engine reads while formatting and
// computing. Field tags match the option names of the options file.
type Settings struct {
	DecimalPlaces      int       `yaml:"NumDecimalPlaces"`
	ForceSci           bool      `yaml:"ForceSciNotation"`
	UseEng             bool      `yaml:"UseEngNotation"`
	ThousandsSeparator bool      `yaml:"ThousandsSeparator"`
	TrimExponents      bool      `yaml:"TrimExponents"`
	AngleUnit          AngleUnit `yaml:"AngleUnit"`
	AltBaseBits        int       `yaml:"AltBaseBits"`
	UseTwosComplement  bool      `yaml:"UseTwosComplement"`
	MaxHistLength      int       `yaml:"MaxHistLength"`
	SaveStacks         bool      `yaml:"SaveStacks"`
}

// DefaultSettings returns the settings a fresh install starts with.
func DefaultSettings() Settings {
	return Settings{
		DecimalPlaces: 4,
		AngleUnit:     Degrees,
		AltBaseBits:   32,
		MaxHistLength: 100,
		SaveStacks:    true,
	}
}

// Normalize clamps numeric fields into range and repairs an unknown angle unit.
func (s *Settings) Normalize() {
	s.DecimalPlaces = clamp(s.DecimalPlaces, MinDecimalPlaces, MaxDecimalPlaces)
	s.AltBaseBits = clamp(s.AltBaseBits, MinBits, MaxBits)
	s.MaxHistLength = clamp(s.MaxHistLength, MinHistory, MaxHistory)
	if _, err := ParseAngleUnit(string(s.AngleUnit)); err != nil {
		s.AngleUnit = Degrees
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
