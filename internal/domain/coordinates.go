package domain

import (
	"math"
	"strconv"
)

// sexagesimal renders a non-negative angle as "D:M:S.sssss". Seconds keep at
// most five fractional digits with trailing zeros trimmed; degrees and minutes
// are not padded. Angles outside [0, 180] are rejected.
func sexagesimal(deg float64, sep string) (string, bool) {
	if math.IsNaN(deg) || deg < 0 || deg > 180 {
		return "", false
	}

	d := math.Floor(deg)
	rest := (deg - d) * 60
	m := math.Floor(rest)
	s := (rest - m) * 60

	seconds := localize(trimFraction(fixed(s, 5)), sep)
	return strconv.FormatInt(int64(d), 10) + ":" + strconv.FormatInt(int64(m), 10) + ":" + seconds, true
}
