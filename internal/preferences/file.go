// Package preferences loads display preference profiles and keeps the active
// snapshot available to concurrent formatters.
package preferences

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/couchcryptid/fix-display-service/internal/domain"
)

// File is the on-disk profile. Empty fields keep their defaults.
type File struct {
	Units              string `yaml:"units" json:"units"`
	Bearing            string `yaml:"bearing" json:"bearing"`
	DecimalCoordinates bool   `yaml:"decimalCoordinates" json:"decimalCoordinates"`
	LocalTime          bool   `yaml:"localTime" json:"localTime"`
	TimeZone           string `yaml:"timeZone" json:"timeZone"`
}

// Load reads and validates the profile at path.
func Load(path string) (domain.Preferences, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Preferences{}, fmt.Errorf("read preferences %s: %w", path, err)
	}
	p, err := Parse(data)
	if err != nil {
		return domain.Preferences{}, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Parse decodes a YAML profile. Unknown keys are rejected.
func Parse(data []byte) (domain.Preferences, error) {
	var f File
	if err := yaml.UnmarshalStrict(data, &f); err != nil {
		return domain.Preferences{}, fmt.Errorf("decode preferences: %w", err)
	}
	return f.Preferences()
}

// Preferences validates the profile and converts it to a snapshot.
func (f File) Preferences() (domain.Preferences, error) {
	p := domain.DefaultPreferences()

	if f.Units != "" {
		u, ok := domain.ParseUnitSystem(f.Units)
		if !ok {
			return domain.Preferences{}, fmt.Errorf("units: unknown unit system %q", f.Units)
		}
		p.UnitSystem = u
	}
	if f.Bearing != "" {
		m, ok := domain.ParseBearingMode(f.Bearing)
		if !ok {
			return domain.Preferences{}, fmt.Errorf("bearing: unknown bearing mode %q", f.Bearing)
		}
		p.BearingMode = m
	}
	if f.TimeZone != "" {
		loc, err := time.LoadLocation(f.TimeZone)
		if err != nil {
			return domain.Preferences{}, fmt.Errorf("timeZone: %w", err)
		}
		p.Location = loc
	}
	p.DecimalCoordinates = f.DecimalCoordinates
	p.LocalTime = f.LocalTime
	return p, nil
}

// Describe renders a snapshot back into its profile form. A nil Location
// leaves TimeZone empty so the host zone is kept on the way back.
func Describe(p domain.Preferences) File {
	f := File{
		Units:              p.UnitSystem.String(),
		Bearing:            p.BearingMode.String(),
		DecimalCoordinates: p.DecimalCoordinates,
		LocalTime:          p.LocalTime,
	}
	if p.Location != nil && p.Location != time.Local {
		f.TimeZone = p.Location.String()
	}
	return f
}
