package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrMissingDevice is returned for fixes that carry no device identifier.
var ErrMissingDevice = errors.New("fix has no device_id")

// ParseRawEvent deserializes a RawEvent's value into a Fix. Absent
// measurements are mapped to NotAvailable.
func ParseRawEvent(raw RawEvent) (Fix, error) {
	var rec RawFix
	if err := json.Unmarshal(raw.Value, &rec); err != nil {
		return Fix{}, fmt.Errorf("parse raw fix: %w", err)
	}
	if rec.DeviceID == "" {
		return Fix{}, ErrMissingDevice
	}

	fix := Fix{
		DeviceID:  rec.DeviceID,
		Track:     rec.Track,
		Time:      orNotAvailable(rec.Time),
		Latitude:  orNotAvailable(rec.Latitude),
		Longitude: orNotAvailable(rec.Longitude),
		Altitude:  orNotAvailable(rec.Altitude),
		Speed:     orNotAvailable(rec.Speed),
		SpeedAvg:  orNotAvailable(rec.SpeedAvg),
		Accuracy:  orNotAvailable(rec.Accuracy),
		Bearing:   orNotAvailable(rec.Bearing),
		Distance:  orNotAvailable(rec.Distance),
		Duration:  orNotAvailable(rec.Duration),
	}
	// Fixes without a device timestamp fall back to the broker time.
	if fix.Time == NotAvailable && !raw.Timestamp.IsZero() {
		fix.Time = raw.Timestamp.UnixMilli()
	}
	fix.ID = generateID(fix.DeviceID, fix.Track, fix.Time)
	return fix, nil
}

func orNotAvailable[T int64 | float32 | float64](v *T) T {
	if v == nil {
		return NotAvailable
	}
	return *v
}

// generateID produces a deterministic ID so replaying the same fix yields the
// same sink key.
func generateID(deviceID string, track int, epochMillis int64) string {
	input := fmt.Sprintf("%s|%d|%d", deviceID, track, epochMillis)
	hash := sha256.Sum256([]byte(input))
	return deviceID + "-" + hex.EncodeToString(hash[:8])
}

// FormatFix renders every measurement of fix under one preference snapshot.
func FormatFix(f *Formatter, p Preferences, fix Fix) DisplayFix {
	return DisplayFix{
		ID:          fix.ID,
		DeviceID:    fix.DeviceID,
		Track:       fix.Track,
		UnitSystem:  p.UnitSystem.String(),
		Time:        f.FormatMillis(p, fix.Time, KindTime),
		Latitude:    f.FormatPrecise(p, fix.Latitude, KindLatitude),
		Longitude:   f.FormatPrecise(p, fix.Longitude, KindLongitude),
		Altitude:    f.FormatPrecise(p, fix.Altitude, KindAltitude),
		Speed:       f.Format(p, fix.Speed, KindSpeed),
		SpeedAvg:    f.Format(p, fix.SpeedAvg, KindSpeedAvg),
		Accuracy:    f.Format(p, fix.Accuracy, KindAccuracy),
		Bearing:     f.Format(p, fix.Bearing, KindBearing),
		Distance:    f.Format(p, fix.Distance, KindDistance),
		Duration:    f.FormatMillis(p, fix.Duration, KindDuration),
		ProcessedAt: clock.Now(),
	}
}

// SerializeDisplayFix encodes a rendered fix for the sink topic, keyed by
// fix ID.
func SerializeDisplayFix(d DisplayFix) (OutputEvent, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return OutputEvent{}, fmt.Errorf("serialize display fix: %w", err)
	}
	return OutputEvent{
		Key:   []byte(d.ID),
		Value: data,
		Headers: map[string]string{
			"device_id":    d.DeviceID,
			"processed_at": d.ProcessedAt.Format(time.RFC3339),
		},
	}, nil
}
