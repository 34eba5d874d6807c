package domain

import (
	"math"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// englishLabels mirrors the default English catalog without pulling in x/text.
type englishLabels map[LabelID]string

func (l englishLabels) Label(id LabelID) string { return l[id] }

var testLabels = englishLabels{
	LabelMetres:            "m",
	LabelKilometres:        "km",
	LabelFeet:              "ft",
	LabelMiles:             "mi",
	LabelNauticalMiles:     "nm",
	LabelMetresPerSecond:   "m/s",
	LabelKilometresPerHour: "km/h",
	LabelMilesPerHour:      "mph",
	LabelFeetPerSecond:     "ft/s",
	LabelKnots:             "kn",
	LabelNorth:             "N",
	LabelNorthNortheast:    "NNE",
	LabelNortheast:         "NE",
	LabelEastNortheast:     "ENE",
	LabelEast:              "E",
	LabelEastSoutheast:     "ESE",
	LabelSoutheast:         "SE",
	LabelSouthSoutheast:    "SSE",
	LabelSouth:             "S",
	LabelSouthSouthwest:    "SSW",
	LabelSouthwest:         "SW",
	LabelWestSouthwest:     "WSW",
	LabelWest:              "W",
	LabelWestNorthwest:     "WNW",
	LabelNorthwest:         "NW",
	LabelNorthNorthwest:    "NNW",
}

func prefs(u UnitSystem) Preferences {
	p := DefaultPreferences()
	p.UnitSystem = u
	return p
}

func q(value, unit string) FormattedQuantity {
	return FormattedQuantity{Value: value, Unit: unit}
}

func TestFormat_NotAvailable(t *testing.T) {
	f := NewFormatter(testLabels)
	p := DefaultPreferences()

	for _, kind := range Kinds() {
		t.Run(kind.String(), func(t *testing.T) {
			assert.Equal(t, FormattedQuantity{}, f.Format(p, NotAvailable, kind))
			assert.Equal(t, FormattedQuantity{}, f.FormatPrecise(p, NotAvailable, kind))
			assert.Equal(t, FormattedQuantity{}, f.FormatMillis(p, NotAvailable, kind))
		})
	}
}

func TestFormat_NonFiniteInput(t *testing.T) {
	f := NewFormatter(testLabels)
	p := DefaultPreferences()

	assert.True(t, f.Format(p, float32(math.NaN()), KindSpeed).IsEmpty())
	assert.True(t, f.Format(p, float32(math.Inf(1)), KindDistance).IsEmpty())
	assert.True(t, f.FormatPrecise(p, math.NaN(), KindLatitude).IsEmpty())
	assert.True(t, f.FormatPrecise(p, math.Inf(-1), KindAltitude).IsEmpty())
}

func TestFormat_KindOutsideEntryPoint(t *testing.T) {
	f := NewFormatter(testLabels)
	p := DefaultPreferences()

	for _, kind := range []Kind{KindLatitude, KindLongitude, KindAltitude, KindDuration, KindTime} {
		assert.True(t, f.Format(p, 10, kind).IsEmpty(), "Format %s", kind)
	}
	for _, kind := range []Kind{KindSpeed, KindSpeedAvg, KindAccuracy, KindBearing, KindDistance, KindDuration, KindTime} {
		assert.True(t, f.FormatPrecise(p, 10, kind).IsEmpty(), "FormatPrecise %s", kind)
	}
	for _, kind := range []Kind{KindLatitude, KindLongitude, KindAltitude, KindSpeed, KindSpeedAvg, KindAccuracy, KindBearing, KindDistance} {
		assert.True(t, f.FormatMillis(p, 10, kind).IsEmpty(), "FormatMillis %s", kind)
	}
	assert.True(t, f.Format(p, 10, Kind(0)).IsEmpty())
	assert.True(t, f.FormatPrecise(p, 10, Kind(99)).IsEmpty())
	assert.True(t, f.FormatMillis(p, 10, Kind(99)).IsEmpty())
}

func TestFormat_Speed(t *testing.T) {
	f := NewFormatter(testLabels)

	tests := []struct {
		name  string
		units UnitSystem
		ms    float32
		want  FormattedQuantity
	}{
		{"km/h", UnitsMetricKMH, 10, q("36", "km/h")},
		{"m/s rounds half up", UnitsMetricMS, 2.5, q("3", "m/s")},
		{"m/s negative half", UnitsMetricMS, -0.5, q("0", "m/s")},
		{"imperial mph", UnitsImperialMPH, 10, q("22", "mph")},
		{"nautical mph", UnitsNauticalMPH, 10, q("22", "mph")},
		{"ft/s", UnitsImperialFPS, 10, q("33", "ft/s")},
		{"knots", UnitsNauticalKN, 10, q("19", "kn")},
		{"invalid system", UnitSystem(0), 10, FormattedQuantity{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.Format(prefs(tt.units), tt.ms, KindSpeed))
		})
	}
}

func TestFormat_SpeedAvg(t *testing.T) {
	f := NewFormatter(testLabels)

	tests := []struct {
		name  string
		units UnitSystem
		ms    float32
		want  FormattedQuantity
	}{
		{"km/h one decimal", UnitsMetricKMH, 10.04, q("36.1", "km/h")},
		{"m/s half up on shortest digits", UnitsMetricMS, 1.25, q("1.3", "m/s")},
		{"imperial mph", UnitsImperialMPH, 10, q("22.4", "mph")},
		{"ft/s", UnitsImperialFPS, 1, q("3.3", "ft/s")},
		{"knots", UnitsNauticalKN, 10, q("19.4", "kn")},
		{"whole value keeps a decimal", UnitsMetricMS, 3, q("3.0", "m/s")},
		{"invalid system", UnitSystem(42), 10, FormattedQuantity{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.Format(prefs(tt.units), tt.ms, KindSpeedAvg))
		})
	}
}

func TestFormat_SpeedAvg_DecimalSeparator(t *testing.T) {
	f := NewFormatter(testLabels, WithDecimalSeparator(","))
	assert.Equal(t, q("36,1", "km/h"), f.Format(prefs(UnitsMetricKMH), 10.04, KindSpeedAvg))
}

func TestFormat_Accuracy(t *testing.T) {
	f := NewFormatter(testLabels)

	assert.Equal(t, q("5", "m"), f.Format(prefs(UnitsMetricMS), 4.6, KindAccuracy))
	assert.Equal(t, q("4", "m"), f.Format(prefs(UnitsMetricKMH), 4.4, KindAccuracy))
	assert.Equal(t, q("33", "ft"), f.Format(prefs(UnitsImperialFPS), 10, KindAccuracy))
	assert.Equal(t, q("33", "ft"), f.Format(prefs(UnitsImperialMPH), 10, KindAccuracy))
	assert.Equal(t, q("33", "ft"), f.Format(prefs(UnitsNauticalKN), 10, KindAccuracy))
	assert.Equal(t, q("33", "ft"), f.Format(prefs(UnitsNauticalMPH), 10, KindAccuracy))
	assert.True(t, f.Format(prefs(0), 10, KindAccuracy).IsEmpty())
}

func TestFormat_BearingCompass(t *testing.T) {
	f := NewFormatter(testLabels)
	p := DefaultPreferences()
	p.BearingMode = BearingCompass

	tests := []struct {
		degrees float32
		want    string
	}{
		{0, "N"},
		{11.2, "N"},
		{11.25, "NNE"},
		{45, "NE"},
		{67.5, "ENE"},
		{90, "E"},
		{112.5, "ESE"},
		{135, "SE"},
		{157.5, "SSE"},
		{180, "S"},
		{202.5, "SSW"},
		{225, "SW"},
		{247.5, "WSW"},
		{270, "W"},
		{292.5, "WNW"},
		{315, "NW"},
		{337.5, "NNW"},
		{348.75, "N"},
		{360, "N"},
	}
	for _, tt := range tests {
		got := f.Format(p, tt.degrees, KindBearing)
		assert.Equal(t, q(tt.want, ""), got, "bearing %v", tt.degrees)
	}
}

func TestFormat_BearingOutsideCompassRange(t *testing.T) {
	f := NewFormatter(testLabels)
	p := DefaultPreferences()
	p.BearingMode = BearingCompass

	assert.True(t, f.Format(p, -30, KindBearing).IsEmpty())
	assert.True(t, f.Format(p, 400, KindBearing).IsEmpty())
}

func TestFormat_BearingAngle(t *testing.T) {
	f := NewFormatter(testLabels)
	p := DefaultPreferences()
	p.BearingMode = BearingAngle

	assert.Equal(t, q("45", ""), f.Format(p, 45.4, KindBearing))
	assert.Equal(t, q("46", ""), f.Format(p, 45.5, KindBearing))
	assert.Equal(t, q("360", ""), f.Format(p, 359.6, KindBearing))
	assert.Equal(t, q("400", ""), f.Format(p, 400, KindBearing))
}

func TestFormat_BearingUndefinedMode(t *testing.T) {
	f := NewFormatter(testLabels)
	p := DefaultPreferences()
	p.BearingMode = BearingMode(0)

	assert.True(t, f.Format(p, 90, KindBearing).IsEmpty())
}

func TestFormat_DistanceMetric(t *testing.T) {
	f := NewFormatter(testLabels)

	tests := []struct {
		metres float32
		want   FormattedQuantity
	}{
		{0.4, q("0", "m")},
		{999, q("999", "m")},
		{999.99, q("999", "m")},
		{1000, q("1.00", "km")},
		{1234, q("1.23", "km")},
		{1239.9, q("1.23", "km")},
		{9999.9, q("9.99", "km")},
		{10000, q("10.0", "km")},
		{12345.6, q("12.3", "km")},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, f.Format(prefs(UnitsMetricKMH), tt.metres, KindDistance), "metres %v", tt.metres)
		assert.Equal(t, tt.want, f.Format(prefs(UnitsMetricMS), tt.metres, KindDistance), "metres %v", tt.metres)
	}
}

func TestFormat_DistanceImperial(t *testing.T) {
	f := NewFormatter(testLabels)

	tests := []struct {
		metres float32
		want   FormattedQuantity
	}{
		{100, q("328", "ft")},
		{304.7, q("999", "ft")},
		{305, q("0.18", "mi")},
		{1000, q("0.62", "mi")},
		{16093, q("9.99", "mi")},
		{16094, q("10.0", "mi")},
		{20000, q("12.4", "mi")},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, f.Format(prefs(UnitsImperialMPH), tt.metres, KindDistance), "metres %v", tt.metres)
		assert.Equal(t, tt.want, f.Format(prefs(UnitsImperialFPS), tt.metres, KindDistance), "metres %v", tt.metres)
	}
}

func TestFormat_DistanceNautical(t *testing.T) {
	f := NewFormatter(testLabels)

	tests := []struct {
		metres float32
		want   FormattedQuantity
	}{
		{1852, q("0.99", "nm")},
		{10000, q("5.39", "nm")},
		{185199, q("99.99", "nm")},
		{185300, q("100.0", "nm")},
		{200000, q("107.9", "nm")},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, f.Format(prefs(UnitsNauticalKN), tt.metres, KindDistance), "metres %v", tt.metres)
		assert.Equal(t, tt.want, f.Format(prefs(UnitsNauticalMPH), tt.metres, KindDistance), "metres %v", tt.metres)
	}
}

func TestFormat_DistanceTruncationIsBounded(t *testing.T) {
	f := NewFormatter(testLabels)
	p := prefs(UnitsMetricKMH)

	// Displayed kilometres never exceed the raw value and lose less than one
	// display step.
	for _, metres := range []float32{1000, 1005, 2718.28, 5555.5, 9990, 9999.9} {
		got := f.Format(p, metres, KindDistance)
		shown, err := strconv.ParseFloat(got.Value, 64)
		assert.NoError(t, err)
		raw := float64(metres) / 1000
		assert.LessOrEqual(t, shown, raw+1e-9, "metres %v", metres)
		assert.Less(t, raw-shown, 0.01, "metres %v", metres)
	}
}

func TestFormat_DistanceInvalidSystem(t *testing.T) {
	f := NewFormatter(testLabels)
	assert.True(t, f.Format(prefs(0), 1000, KindDistance).IsEmpty())
}

func TestFormatPrecise_DecimalCoordinates(t *testing.T) {
	f := NewFormatter(testLabels)
	p := DefaultPreferences()
	p.DecimalCoordinates = true

	assert.Equal(t, q("0.000000000", "N"), f.FormatPrecise(p, 0, KindLatitude))
	assert.Equal(t, q("45.500000000", "S"), f.FormatPrecise(p, -45.5, KindLatitude))
	assert.Equal(t, q("0.000000000", "E"), f.FormatPrecise(p, 0, KindLongitude))
	assert.Equal(t, q("0.100000000", "W"), f.FormatPrecise(p, -0.1, KindLongitude))
	assert.Equal(t, q("12.345678901", "E"), f.FormatPrecise(p, 12.3456789012, KindLongitude))
	assert.Equal(t, q("200.000000000", "E"), f.FormatPrecise(p, 200, KindLongitude))
}

func TestFormatPrecise_DecimalCoordinatesSeparator(t *testing.T) {
	f := NewFormatter(testLabels, WithDecimalSeparator(","))
	p := DefaultPreferences()
	p.DecimalCoordinates = true

	assert.Equal(t, q("45,500000000", "N"), f.FormatPrecise(p, 45.5, KindLatitude))
}

func TestFormatPrecise_SexagesimalCoordinates(t *testing.T) {
	f := NewFormatter(testLabels)
	p := DefaultPreferences()
	p.DecimalCoordinates = false

	assert.Equal(t, q("45:30:0", "N"), f.FormatPrecise(p, 45.5, KindLatitude))
	assert.Equal(t, q("33:15:0", "S"), f.FormatPrecise(p, -33.25, KindLatitude))
	assert.Equal(t, q("12:45:0", "E"), f.FormatPrecise(p, 12.75, KindLongitude))
	assert.Equal(t, q("0:0:0.45", "W"), f.FormatPrecise(p, -0.000125, KindLongitude))
	assert.True(t, f.FormatPrecise(p, 200, KindLongitude).IsEmpty())
}

func TestFormatPrecise_Altitude(t *testing.T) {
	f := NewFormatter(testLabels)

	assert.Equal(t, q("124", "m"), f.FormatPrecise(prefs(UnitsMetricKMH), 123.5, KindAltitude))
	assert.Equal(t, q("123", "m"), f.FormatPrecise(prefs(UnitsMetricMS), 123.4, KindAltitude))
	assert.Equal(t, q("-10", "m"), f.FormatPrecise(prefs(UnitsMetricMS), -10.5, KindAltitude))
	assert.Equal(t, q("328", "ft"), f.FormatPrecise(prefs(UnitsImperialMPH), 100, KindAltitude))
	assert.Equal(t, q("328", "ft"), f.FormatPrecise(prefs(UnitsImperialFPS), 100, KindAltitude))
	assert.Equal(t, q("328", "ft"), f.FormatPrecise(prefs(UnitsNauticalKN), 100, KindAltitude))
	assert.Equal(t, q("328", "ft"), f.FormatPrecise(prefs(UnitsNauticalMPH), 100, KindAltitude))
	assert.True(t, f.FormatPrecise(prefs(0), 100, KindAltitude).IsEmpty())

	// Values past the int64 range saturate instead of wrapping.
	assert.Equal(t, q("9223372036854775807", "m"), f.FormatPrecise(prefs(UnitsMetricMS), 1e19, KindAltitude))
	assert.Equal(t, q("-9223372036854775808", "m"), f.FormatPrecise(prefs(UnitsMetricMS), -1e19, KindAltitude))
	assert.Equal(t, q("9223372036854775807", "ft"), f.FormatPrecise(prefs(UnitsImperialMPH), 1e19, KindAltitude))
}

func TestFormatMillis_Duration(t *testing.T) {
	f := NewFormatter(testLabels)
	p := DefaultPreferences()

	tests := []struct {
		ms   int64
		want string
	}{
		{0, "00:00"},
		{999, "00:00"},
		{59000, "00:59"},
		{3599999, "59:59"},
		{3600000, "01:00:00"},
		{3661000, "01:01:01"},
		{360000000, "100:00:00"},
	}
	for _, tt := range tests {
		assert.Equal(t, q(tt.want, ""), f.FormatMillis(p, tt.ms, KindDuration), "ms %d", tt.ms)
	}
	assert.True(t, f.FormatMillis(p, -1, KindDuration).IsEmpty())
}

func TestFormatMillis_Time(t *testing.T) {
	f := NewFormatter(testLabels)
	const epoch = int64(1714140000000) // 2024-04-26T14:00:00Z

	utc := DefaultPreferences()
	utc.LocalTime = false
	assert.Equal(t, q("14:00:00", ""), f.FormatMillis(utc, epoch, KindTime))
	assert.Equal(t, q("00:00:00", ""), f.FormatMillis(utc, 0, KindTime))

	local := DefaultPreferences()
	local.LocalTime = true
	local.Location = time.FixedZone("CEST", 2*60*60)
	assert.Equal(t, q("16:00:00", "+02:00"), f.FormatMillis(local, epoch, KindTime))

	local.Location = time.FixedZone("NDT", -(2*60*60 + 30*60))
	assert.Equal(t, q("11:30:00", "-02:30"), f.FormatMillis(local, epoch, KindTime))

	local.Location = time.UTC
	assert.Equal(t, q("14:00:00", "Z"), f.FormatMillis(local, epoch, KindTime))

	// Without an explicit zone the host zone applies.
	withLocal(t, time.FixedZone("CEST", 2*60*60))
	local.Location = nil
	assert.Equal(t, q("16:00:00", "+02:00"), f.FormatMillis(local, epoch, KindTime))

	defaults := DefaultPreferences()
	defaults.LocalTime = true
	assert.Equal(t, q("16:00:00", "+02:00"), f.FormatMillis(defaults, epoch, KindTime))
}

func withLocal(t *testing.T, loc *time.Location) {
	t.Helper()
	prev := time.Local
	time.Local = loc
	t.Cleanup(func() { time.Local = prev })
}

func TestFormat_Idempotent(t *testing.T) {
	f := NewFormatter(testLabels)
	p := prefs(UnitsNauticalKN)

	for _, kind := range Kinds() {
		assert.Equal(t, f.Format(p, 1234.5, kind), f.Format(p, 1234.5, kind))
		assert.Equal(t, f.FormatPrecise(p, 45.123, kind), f.FormatPrecise(p, 45.123, kind))
		assert.Equal(t, f.FormatMillis(p, 3661000, kind), f.FormatMillis(p, 3661000, kind))
	}
}

func TestFormat_ConcurrentUse(t *testing.T) {
	f := NewFormatter(testLabels)
	p := prefs(UnitsMetricKMH)

	done := make(chan FormattedQuantity)
	for i := 0; i < 8; i++ {
		go func() {
			var last FormattedQuantity
			for j := 0; j < 100; j++ {
				last = f.Format(p, 10, KindSpeed)
			}
			done <- last
		}()
	}
	for i := 0; i < 8; i++ {
		assert.Equal(t, q("36", "km/h"), <-done)
	}
}

func TestParseKind(t *testing.T) {
	for _, kind := range Kinds() {
		got, ok := ParseKind(kind.String())
		assert.True(t, ok)
		assert.Equal(t, kind, got)
	}
	_, ok := ParseKind("velocity")
	assert.False(t, ok)
	assert.Equal(t, "unknown", Kind(0).String())
}

func TestUnitSystem_Family(t *testing.T) {
	assert.Equal(t, FamilyMetric, UnitsMetricMS.Family())
	assert.Equal(t, FamilyMetric, UnitsMetricKMH.Family())
	assert.Equal(t, FamilyImperial, UnitsImperialFPS.Family())
	assert.Equal(t, FamilyImperial, UnitsImperialMPH.Family())
	assert.Equal(t, FamilyNautical, UnitsNauticalKN.Family())
	assert.Equal(t, FamilyNautical, UnitsNauticalMPH.Family())
	assert.Equal(t, Family(0), UnitSystem(0).Family())

	u, ok := ParseUnitSystem("nautical-mph")
	assert.True(t, ok)
	assert.Equal(t, UnitsNauticalMPH, u)
	_, ok = ParseUnitSystem("furlongs")
	assert.False(t, ok)
}

func TestLabelIDs_AllKeyed(t *testing.T) {
	ids := LabelIDs()
	assert.Len(t, ids, 26)
	for _, id := range ids {
		assert.NotEmpty(t, id.Key(), "label %d", id)
	}
}
