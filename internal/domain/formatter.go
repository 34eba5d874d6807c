package domain

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// Formatter converts raw measurements into display strings for a given
// preference snapshot. It holds no mutable state and is safe for concurrent
// use.
//
// There are three entry points, one per numeric domain:
//
//	Format        float32: speed, average speed, accuracy, bearing, distance
//	FormatPrecise float64: latitude, longitude, altitude
//	FormatMillis  int64 milliseconds: duration, time of day
//
// Asking an entry point for a kind outside its domain yields an empty result,
// as does the NotAvailable sentinel.
type Formatter struct {
	labels    Labels
	separator string
}

// FormatterOption configures a Formatter.
type FormatterOption func(*Formatter)

// WithDecimalSeparator sets the string placed between the integer and
// fractional digits. The default is ".".
func WithDecimalSeparator(sep string) FormatterOption {
	return func(f *Formatter) {
		if sep != "" {
			f.separator = sep
		}
	}
}

// NewFormatter creates a Formatter that resolves unit and direction names
// through labels.
func NewFormatter(labels Labels, opts ...FormatterOption) *Formatter {
	f := &Formatter{
		labels:    labels,
		separator: ".",
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format handles the kinds measured as 32-bit fractional values.
func (f *Formatter) Format(p Preferences, number float32, kind Kind) FormattedQuantity {
	if !usable(float64(number)) {
		return FormattedQuantity{}
	}

	switch kind {
	case KindSpeed:
		return f.speed(p.UnitSystem, number)
	case KindSpeedAvg:
		return f.averageSpeed(p.UnitSystem, number)
	case KindAccuracy:
		return f.accuracy(p.UnitSystem.Family(), number)
	case KindBearing:
		return f.bearing(p.BearingMode, number)
	case KindDistance:
		return f.distance(p.UnitSystem.Family(), number)
	case KindLatitude, KindLongitude, KindAltitude, KindDuration, KindTime:
		return FormattedQuantity{}
	default:
		return FormattedQuantity{}
	}
}

// FormatPrecise handles the kinds measured as 64-bit fractional values.
func (f *Formatter) FormatPrecise(p Preferences, number float64, kind Kind) FormattedQuantity {
	if !usable(number) {
		return FormattedQuantity{}
	}

	switch kind {
	case KindLatitude:
		return f.coordinate(p, number, LabelNorth, LabelSouth)
	case KindLongitude:
		return f.coordinate(p, number, LabelEast, LabelWest)
	case KindAltitude:
		return f.altitude(p.UnitSystem.Family(), number)
	case KindSpeed, KindSpeedAvg, KindAccuracy, KindBearing, KindDistance, KindDuration, KindTime:
		return FormattedQuantity{}
	default:
		return FormattedQuantity{}
	}
}

// FormatMillis handles the kinds measured in integral milliseconds.
func (f *Formatter) FormatMillis(p Preferences, number int64, kind Kind) FormattedQuantity {
	if number == NotAvailable {
		return FormattedQuantity{}
	}

	switch kind {
	case KindDuration:
		return duration(number)
	case KindTime:
		return timeOfDay(p, number)
	case KindLatitude, KindLongitude, KindAltitude, KindSpeed, KindSpeedAvg, KindAccuracy, KindBearing, KindDistance:
		return FormattedQuantity{}
	default:
		return FormattedQuantity{}
	}
}

// speedConversion returns the factor from m/s and the unit label for the
// exact unit-system variant.
func speedConversion(u UnitSystem) (float32, LabelID, bool) {
	switch u {
	case UnitsMetricKMH:
		return msToKMH, LabelKilometresPerHour, true
	case UnitsMetricMS:
		return 1, LabelMetresPerSecond, true
	case UnitsImperialMPH, UnitsNauticalMPH:
		return msToMPH, LabelMilesPerHour, true
	case UnitsImperialFPS:
		return metresToFeet, LabelFeetPerSecond, true
	case UnitsNauticalKN:
		return msToKnots, LabelKnots, true
	default:
		return 0, 0, false
	}
}

func (f *Formatter) speed(u UnitSystem, ms float32) FormattedQuantity {
	factor, label, ok := speedConversion(u)
	if !ok {
		return FormattedQuantity{}
	}
	return f.quantity(strconv.FormatInt(roundHalfUp(float64(ms*factor)), 10), label)
}

func (f *Formatter) averageSpeed(u UnitSystem, ms float32) FormattedQuantity {
	factor, label, ok := speedConversion(u)
	if !ok {
		return FormattedQuantity{}
	}
	return f.quantity(f.decimal(float64(ms*factor), 1), label)
}

func (f *Formatter) accuracy(family Family, metres float32) FormattedQuantity {
	switch family {
	case FamilyMetric:
		return f.quantity(strconv.FormatInt(roundHalfUp(float64(metres)), 10), LabelMetres)
	case FamilyImperial, FamilyNautical:
		return f.quantity(strconv.FormatInt(roundHalfUp(float64(metres*metresToFeet)), 10), LabelFeet)
	default:
		return FormattedQuantity{}
	}
}

func (f *Formatter) bearing(mode BearingMode, degrees float32) FormattedQuantity {
	switch mode {
	case BearingCompass:
		bucket := roundHalfUp(float64(degrees) / 22.5)
		if bucket < 0 || bucket >= int64(len(compassPoints)) {
			return FormattedQuantity{}
		}
		return FormattedQuantity{Value: f.labels.Label(compassPoints[bucket])}
	case BearingAngle:
		return FormattedQuantity{Value: strconv.FormatInt(roundHalfUp(float64(degrees)), 10)}
	default:
		return FormattedQuantity{}
	}
}

// distance picks unit and precision from the magnitude. Every tier floors
// at its display resolution so a value never shows as the next tier early.
func (f *Formatter) distance(family Family, metres float32) FormattedQuantity {
	switch family {
	case FamilyMetric:
		m := float64(metres)
		switch {
		case metres < 1000:
			return f.quantity(fixed(math.Floor(m), 0), LabelMetres)
		case metres < 10000:
			return f.quantity(f.decimal(math.Floor(m/10)/100, 2), LabelKilometres)
		default:
			return f.quantity(f.decimal(math.Floor(m/100)/10, 1), LabelKilometres)
		}

	case FamilyImperial:
		feet := metres * metresToFeet
		if feet < 1000 {
			return f.quantity(fixed(math.Floor(float64(feet)), 0), LabelFeet)
		}
		// Miles scaled by 1000, mirroring the metre figure.
		milli := metres * kmToMiles
		if milli < 10000 {
			return f.quantity(f.decimal(math.Floor(float64(milli)/10)/100, 2), LabelMiles)
		}
		return f.quantity(f.decimal(math.Floor(float64(milli)/100)/10, 1), LabelMiles)

	case FamilyNautical:
		nm := metres * metresToNauticalMile
		if nm < 100 {
			return f.quantity(f.decimal(truncate(float64(nm), 2), 2), LabelNauticalMiles)
		}
		return f.quantity(f.decimal(truncate(float64(nm), 1), 1), LabelNauticalMiles)

	default:
		return FormattedQuantity{}
	}
}

func (f *Formatter) coordinate(p Preferences, number float64, positive, negative LabelID) FormattedQuantity {
	abs := math.Abs(number)

	var value string
	if p.DecimalCoordinates {
		value = f.decimal(abs, 9)
	} else {
		var ok bool
		if value, ok = sexagesimal(abs, f.separator); !ok {
			return FormattedQuantity{}
		}
	}

	hemisphere := negative
	if number >= 0 {
		hemisphere = positive
	}
	return f.quantity(value, hemisphere)
}

func (f *Formatter) altitude(family Family, metres float64) FormattedQuantity {
	switch family {
	case FamilyMetric:
		return f.quantity(strconv.FormatInt(roundHalfUp(metres), 10), LabelMetres)
	case FamilyImperial, FamilyNautical:
		return f.quantity(strconv.FormatInt(roundHalfUp(metres*metresToFeet), 10), LabelFeet)
	default:
		return FormattedQuantity{}
	}
}

// duration renders elapsed milliseconds as MM:SS, or HH:MM:SS once an hour
// has passed.
func duration(ms int64) FormattedQuantity {
	if ms < 0 {
		return FormattedQuantity{}
	}
	total := ms / 1000
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	if hours == 0 {
		return FormattedQuantity{Value: fmt.Sprintf("%02d:%02d", minutes, seconds)}
	}
	return FormattedQuantity{Value: fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)}
}

// timeOfDay renders an epoch timestamp as HH:MM:SS. Local time carries the
// UTC offset as its unit; UTC carries none.
func timeOfDay(p Preferences, epochMillis int64) FormattedQuantity {
	t := time.UnixMilli(epochMillis)
	if p.LocalTime {
		local := t.In(p.location())
		return FormattedQuantity{Value: local.Format(time.TimeOnly), Unit: local.Format("Z07:00")}
	}
	return FormattedQuantity{Value: t.UTC().Format(time.TimeOnly)}
}

func (f *Formatter) decimal(v float64, digits int) string {
	return localize(fixed(v, digits), f.separator)
}

func (f *Formatter) quantity(value string, unit LabelID) FormattedQuantity {
	return FormattedQuantity{Value: value, Unit: f.labels.Label(unit)}
}
