package domain

import "math"

// NotAvailable is the reserved measurement value meaning "no data". Every
// Format entry point returns an empty FormattedQuantity when handed it.
// Acquisition code must never emit it for a real reading.
const NotAvailable = -100000

// FormattedQuantity is a display-ready value paired with its unit label.
// Both fields are empty when the measurement is unavailable.
type FormattedQuantity struct {
	Value string `json:"value"`
	Unit  string `json:"unit"`
}

// IsEmpty reports whether the quantity carries no data.
func (q FormattedQuantity) IsEmpty() bool {
	return q.Value == "" && q.Unit == ""
}

// Kind selects which physical quantity is being formatted.
type Kind uint8

const (
	KindLatitude Kind = iota + 1
	KindLongitude
	KindAltitude
	KindSpeed
	KindAccuracy
	KindBearing
	KindDuration
	KindSpeedAvg
	KindDistance
	KindTime
)

var kindNames = map[Kind]string{
	KindLatitude:  "latitude",
	KindLongitude: "longitude",
	KindAltitude:  "altitude",
	KindSpeed:     "speed",
	KindAccuracy:  "accuracy",
	KindBearing:   "bearing",
	KindDuration:  "duration",
	KindSpeedAvg:  "speed-avg",
	KindDistance:  "distance",
	KindTime:      "time",
}

// Kinds lists every format kind in declaration order.
func Kinds() []Kind {
	return []Kind{
		KindLatitude, KindLongitude, KindAltitude, KindSpeed, KindAccuracy,
		KindBearing, KindDuration, KindSpeedAvg, KindDistance, KindTime,
	}
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseKind maps a name such as "speed-avg" back to its Kind.
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if name == s {
			return k, true
		}
	}
	return 0, false
}

// usable reports whether v can be converted for display. The sentinel and
// non-finite values are not.
func usable(v float64) bool {
	return v != NotAvailable && !math.IsNaN(v) && !math.IsInf(v, 0)
}
