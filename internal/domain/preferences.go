package domain

import "time"

// Preferences is an immutable snapshot of the user's display settings.
// Callers take one snapshot per formatting call so a single result never
// mixes two unit systems.
type Preferences struct {
	UnitSystem         UnitSystem
	BearingMode        BearingMode
	DecimalCoordinates bool
	LocalTime          bool

	// Location is the zone used when LocalTime is set. Nil means the host's
	// zone, time.Local.
	Location *time.Location
}

// PreferencesProvider hands out consistent preference snapshots. It must be
// safe for concurrent use.
type PreferencesProvider interface {
	Preferences() Preferences
}

// DefaultPreferences returns the settings used when no profile is configured.
func DefaultPreferences() Preferences {
	return Preferences{
		UnitSystem:  UnitsMetricKMH,
		BearingMode: BearingCompass,
	}
}

func (p Preferences) location() *time.Location {
	if p.Location == nil {
		return time.Local
	}
	return p.Location
}
