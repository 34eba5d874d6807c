package domain

import (
	"context"
	"time"
)

// RawFix is the JSON record published by the acquisition pipeline for each
// location fix. Measurements the receiver did not report are omitted or null.
type RawFix struct {
	DeviceID  string   `json:"device_id"`
	Track     int      `json:"track"`
	Time      *int64   `json:"time"`      // epoch milliseconds
	Latitude  *float64 `json:"latitude"`  // WGS-84 degrees
	Longitude *float64 `json:"longitude"` // WGS-84 degrees
	Altitude  *float64 `json:"altitude"`  // metres
	Speed     *float32 `json:"speed"`     // m/s
	SpeedAvg  *float32 `json:"speed_avg"` // m/s over the track
	Accuracy  *float32 `json:"accuracy"`  // metres
	Bearing   *float32 `json:"bearing"`   // degrees clockwise from north
	Distance  *float32 `json:"distance"`  // metres travelled on the track
	Duration  *int64   `json:"duration"`  // elapsed milliseconds on the track
}

// RawEvent represents an unprocessed message from the source topic.
type RawEvent struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// Fix is a parsed location fix. Missing measurements hold NotAvailable.
type Fix struct {
	ID        string
	DeviceID  string
	Track     int
	Time      int64
	Latitude  float64
	Longitude float64
	Altitude  float64
	Speed     float32
	SpeedAvg  float32
	Accuracy  float32
	Bearing   float32
	Distance  float32
	Duration  int64
}

// DisplayFix is a fix rendered for display under one preference snapshot.
type DisplayFix struct {
	ID          string            `json:"id"`
	DeviceID    string            `json:"device_id"`
	Track       int               `json:"track"`
	UnitSystem  string            `json:"unit_system"`
	Time        FormattedQuantity `json:"time"`
	Latitude    FormattedQuantity `json:"latitude"`
	Longitude   FormattedQuantity `json:"longitude"`
	Altitude    FormattedQuantity `json:"altitude"`
	Speed       FormattedQuantity `json:"speed"`
	SpeedAvg    FormattedQuantity `json:"speed_avg"`
	Accuracy    FormattedQuantity `json:"accuracy"`
	Bearing     FormattedQuantity `json:"bearing"`
	Distance    FormattedQuantity `json:"distance"`
	Duration    FormattedQuantity `json:"duration"`
	ProcessedAt time.Time         `json:"processed_at"`
}

// Quantities returns every formatted field keyed by kind.
func (d DisplayFix) Quantities() map[Kind]FormattedQuantity {
	return map[Kind]FormattedQuantity{
		KindTime:      d.Time,
		KindLatitude:  d.Latitude,
		KindLongitude: d.Longitude,
		KindAltitude:  d.Altitude,
		KindSpeed:     d.Speed,
		KindSpeedAvg:  d.SpeedAvg,
		KindAccuracy:  d.Accuracy,
		KindBearing:   d.Bearing,
		KindDistance:  d.Distance,
		KindDuration:  d.Duration,
	}
}

// OutputEvent is the serialized form destined for the sink topic.
type OutputEvent struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}
