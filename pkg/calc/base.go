package calc

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/juju/errors"
)

var (
	errSyntax   = errors.New("invalid number")
	errOverflow = errors.New("number out of range")
	errDomain   = errors.New("math domain error")
)

// IsOverflow reports whether err came from a value outside the representable range.
func IsOverflow(err error) bool {
	return errors.Cause(err) == errOverflow
}

// ValidBase reports whether base is one the calculator can display.
func ValidBase(base int) bool {
	switch base {
	case 2, 8, 10, 16:
		return true
	}
	return false
}

// NumberString renders value, rounded half to even, in base. With twos set
// the valid range is [-2^(bits-1), 2^(bits-1)-1] and negative values are
// shown as their bit pattern; otherwise magnitudes below 2^bits are shown with
// a leading minus for negatives. Anything else renders as "overflow".
func NumberString(value float64, base, bits int, twos bool) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return overflowText
	}
	n, _ := new(big.Float).SetFloat64(math.RoundToEven(value)).Int(nil)
	if n.Sign() == 0 {
		return "0"
	}
	limit := new(big.Int).Lsh(big.NewInt(1), uint(bits))
	sign := ""
	if twos {
		half := new(big.Int).Rsh(limit, 1)
		if n.Cmp(half) >= 0 || n.Cmp(new(big.Int).Neg(half)) < 0 {
			return overflowText
		}
		if n.Sign() < 0 {
			n.Add(n, limit)
		}
	} else {
		if n.Sign() < 0 {
			n.Neg(n)
			sign = "-"
		}
		if n.Cmp(limit) >= 0 {
			return overflowText
		}
	}
	return sign + n.Text(base)
}

// parseInBase reads an integer typed in base 2, 8 or 16. A leading '-' is
// a sign; without one and with twos set, patterns with the top bit set are
// negative.
func parseInBase(text string, base, bits int, twos bool) (float64, error) {
	t := strings.TrimSpace(text)
	neg := strings.HasPrefix(t, "-")
	if neg {
		t = strings.TrimSpace(t[1:])
	}
	if t == "" || strings.ContainsAny(t, "+-_") {
		return 0, errSyntax
	}
	n, ok := new(big.Int).SetString(t, base)
	if !ok {
		return 0, errSyntax
	}
	limit := new(big.Int).Lsh(big.NewInt(1), uint(bits))
	if n.Cmp(limit) >= 0 {
		return 0, errOverflow
	}
	half := new(big.Int).Rsh(limit, 1)
	switch {
	case neg:
		if twos && n.Cmp(half) > 0 {
			return 0, errOverflow
		}
		n.Neg(n)
	case twos && n.Cmp(half) >= 0:
		n.Sub(n, limit)
	}
	f, _ := new(big.Float).SetInt(n).Float64()
	return f, nil
}

// ParseNumber reads text as shown on the display or pasted by the user:
// surrounding spaces and thousands separators are ignored in base 10.
func ParseNumber(text string, base int, s Settings) (float64, error) {
	if !ValidBase(base) {
		return 0, errors.NotValidf("base %d", base)
	}
	if base != 10 {
		s.Normalize()
		return parseInBase(text, base, s.AltBaseBits, s.UseTwosComplement)
	}
	t := strings.ReplaceAll(strings.TrimSpace(text), ",", "")
	v, err := strconv.ParseFloat(t, 64)
	if err != nil {
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			return 0, errOverflow
		}
		return 0, errSyntax
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errSyntax
	}
	return v, nil
}
