package domain

// Conversion factors from SI measurements to display units.
const (
	metresToFeet         = 3.280839895
	metresToNauticalMile = 0.000539957
	msToMPH              = 2.2369363
	msToKMH              = 3.6
	msToKnots            = 1.943844491
	kmToMiles            = 0.621371192237
)

// Family groups unit systems that share distance, altitude and accuracy units.
type Family uint8

const (
	FamilyMetric Family = iota + 1
	FamilyImperial
	FamilyNautical
)

// UnitSystem is the user's measurement preference. Speed needs the exact
// variant; everything else only looks at the Family.
type UnitSystem uint8

const (
	UnitsMetricMS UnitSystem = iota + 1
	UnitsMetricKMH
	UnitsImperialFPS
	UnitsImperialMPH
	UnitsNauticalKN
	UnitsNauticalMPH
)

var unitSystemNames = map[UnitSystem]string{
	UnitsMetricMS:    "metric-ms",
	UnitsMetricKMH:   "metric-kmh",
	UnitsImperialFPS: "imperial-fps",
	UnitsImperialMPH: "imperial-mph",
	UnitsNauticalKN:  "nautical-kn",
	UnitsNauticalMPH: "nautical-mph",
}

func (u UnitSystem) String() string {
	if name, ok := unitSystemNames[u]; ok {
		return name
	}
	return "unknown"
}

// ParseUnitSystem maps a name such as "imperial-mph" to its UnitSystem.
func ParseUnitSystem(s string) (UnitSystem, bool) {
	for u, name := range unitSystemNames {
		if name == s {
			return u, true
		}
	}
	return 0, false
}

// Family returns the unit family, or 0 for an invalid UnitSystem.
func (u UnitSystem) Family() Family {
	switch u {
	case UnitsMetricMS, UnitsMetricKMH:
		return FamilyMetric
	case UnitsImperialFPS, UnitsImperialMPH:
		return FamilyImperial
	case UnitsNauticalKN, UnitsNauticalMPH:
		return FamilyNautical
	default:
		return 0
	}
}

// BearingMode selects how a bearing is displayed.
type BearingMode uint8

const (
	BearingCompass BearingMode = iota + 1 // one of 16 compass points
	BearingAngle                          // whole degrees
)

func (m BearingMode) String() string {
	switch m {
	case BearingCompass:
		return "compass"
	case BearingAngle:
		return "angle"
	default:
		return "unknown"
	}
}

// ParseBearingMode maps "compass" or "angle" to its BearingMode.
func ParseBearingMode(s string) (BearingMode, bool) {
	switch s {
	case "compass":
		return BearingCompass, true
	case "angle":
		return BearingAngle, true
	default:
		return 0, false
	}
}
