package domain

import (
	"math"
	"strconv"
	"strings"
)

// fixed renders v with exactly digits fractional digits and a "." separator.
// Rounding is half-up applied to the shortest decimal representation of v,
// so 0.15 becomes "0.2" even though its binary value is slightly below.
func fixed(v float64, digits int) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = s[1:]
	}

	intPart, frac, _ := strings.Cut(s, ".")
	if len(frac) <= digits {
		frac += strings.Repeat("0", digits-len(frac))
		return sign + joinDecimal(intPart, frac)
	}

	kept := []byte(intPart + frac[:digits])
	if frac[digits] >= '5' {
		kept = incrementDigits(kept)
	}
	n := len(kept) - digits
	return sign + joinDecimal(string(kept[:n]), string(kept[n:]))
}

// incrementDigits adds one to a string of decimal digits, growing it on carry.
func incrementDigits(d []byte) []byte {
	for i := len(d) - 1; i >= 0; i-- {
		if d[i] < '9' {
			d[i]++
			return d
		}
		d[i] = '0'
	}
	return append([]byte{'1'}, d...)
}

func joinDecimal(intPart, frac string) string {
	if frac == "" {
		return intPart
	}
	return intPart + "." + frac
}

// trimFraction drops trailing fractional zeros, and the point if nothing is left.
func trimFraction(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// localize swaps the plain decimal point for the configured separator.
func localize(s, sep string) string {
	if sep == "." || sep == "" {
		return s
	}
	return strings.Replace(s, ".", sep, 1)
}

// roundHalfUp rounds to the nearest integer, ties toward positive infinity.
// Results outside the int64 range saturate at its bounds.
func roundHalfUp(v float64) int64 {
	r := math.Floor(v + 0.5)
	switch {
	case r >= math.MaxInt64:
		return math.MaxInt64
	case r <= math.MinInt64:
		return math.MinInt64
	}
	return int64(r)
}

// truncate floors v to the given number of fractional digits.
func truncate(v float64, digits int) float64 {
	scale := math.Pow10(digits)
	return math.Floor(v*scale) / scale
}
