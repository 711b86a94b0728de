package calc

import (
	"math"
	"strconv"
	"strings"
)

// Display strings for the error states and digit prompts.
const (
	ErrorText    = "error 0"
	OverflowText = "error 9"
	PromptText   = "0-9:"

	overflowText = "overflow"
)

// fixed notation is used for magnitudes in [minFixed, maxFixed)
const (
	minFixed = 1e-4
	maxFixed = 1e7
)

// FormatNumber renders num for the display using settings s in base.
// Non-negative values carry a leading space where a minus sign would go.
func FormatNumber(num float64, s *Settings, base int) string {
	if base != 10 {
		str := NumberString(num, base, s.AltBaseBits, s.UseTwosComplement)
		if str == overflowText {
			return str
		}
		return signed(str)
	}
	if math.IsNaN(num) || math.IsInf(num, 0) {
		return signed(strings.ToLower(strings.TrimPrefix(strconv.FormatFloat(num, 'f', -1, 64), "+")))
	}
	abs := math.Abs(num)
	if (abs == 0 || (abs >= minFixed && abs < maxFixed)) && !s.ForceSci {
		return separate(signed(strconv.FormatFloat(num, 'f', s.DecimalPlaces, 64)), s)
	}
	mant, exp := splitExponent(num, s.DecimalPlaces, s.UseEng)
	str := separate(signed(strconv.FormatFloat(mant, 'f', s.DecimalPlaces, 64)), s)
	return str + formatExponent(exp, s.TrimExponents)
}

// splitExponent returns mant and exp with num == mant * 10^exp, where mant
// rounded to places lies in [1, 10), or [1, 1000) with exponents a multiple
// of three in engineering mode.
func splitExponent(num float64, places int, eng bool) (float64, int) {
	if num == 0 {
		return 0, 0
	}
	step, limit := 1, 10.0
	exp := int(math.Floor(math.Log10(math.Abs(num))))
	if eng {
		step, limit = 3, 1000.0
		exp -= ((exp % 3) + 3) % 3
	}
	mant := scaleDown(num, exp)
	// Log10 is not exact near powers of ten.
	for math.Abs(mant) >= limit {
		exp += step
		mant = scaleDown(num, exp)
	}
	for math.Abs(mant) < 1 {
		exp -= step
		mant = scaleDown(num, exp)
	}
	// 9.99996 at four places rounds up to 10.0000
	if math.Abs(roundTo(mant, places)) >= limit {
		exp += step
		mant = scaleDown(num, exp)
	}
	return mant, exp
}

// scaleDown returns num / 10^exp without overflowing the power for tiny values.
func scaleDown(num float64, exp int) float64 {
	switch {
	case exp >= 0:
		return num / math.Pow10(exp)
	case exp < -300:
		return num * 1e300 * math.Pow10(-exp-300)
	default:
		return num * math.Pow10(-exp)
	}
}

func roundTo(v float64, places int) float64 {
	r, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'f', places, 64), 64)
	return r
}

func formatExponent(exp int, trim bool) string {
	sign := "+"
	if exp < 0 {
		sign = "-"
		exp = -exp
	}
	digits := strconv.Itoa(exp)
	if !trim && len(digits) < 3 {
		digits = strings.Repeat("0", 3-len(digits)) + digits
	}
	return "e" + sign + digits
}

func signed(str string) string {
	if strings.HasPrefix(str, "-") {
		return str
	}
	return " " + str
}

func separate(str string, s *Settings) string {
	if !s.ThousandsSeparator {
		return str
	}
	return addThousandsSep(str)
}

// addThousandsSep groups the integer digits of str in threes, keeping a
// leading sign or sign placeholder in front.
func addThousandsSep(str string) string {
	sign := ""
	if str != "" && (str[0] == ' ' || str[0] == '-') {
		sign, str = str[:1], str[1:]
	}
	intPart, frac := str, ""
	if i := strings.IndexByte(str, '.'); i >= 0 {
		intPart, frac = str[:i], str[i:]
	}
	var b strings.Builder
	for i := 0; i < len(intPart); i++ {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteByte(intPart[i])
	}
	return sign + b.String() + frac
}
