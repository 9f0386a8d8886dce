package metrics

import "time"

// RangeSnapshot is the range of one vehicle at a point in time, in km.
type RangeSnapshot struct {
	VehicleID string
	Variant   string
	Maximum   float64
	Current   float64
	Loaded    float64
	Liquid    float64
	Time      time.Time
}

// MetricsSink records vehicle range snapshots for observability purposes.
type MetricsSink interface {
	RecordRangeSnapshot(snaps []RangeSnapshot) error
}

// RefuelEvent captures a refuel request and how much the tank absorbed.
type RefuelEvent struct {
	VehicleID string
	Variant   string
	Requested float64
	Added     float64
	Time      time.Time
}

// RefuelRecorder records refuel events.
type RefuelRecorder interface {
	RecordRefuel(ev RefuelEvent) error
}

// TripEstimateEvent captures a drive time request and its outcome.
type TripEstimateEvent struct {
	TripID    string
	VehicleID string
	Variant   string
	Distance  float64
	Hours     float64
	// Outcome is "ok" or the kind of error that rejected the estimate.
	Outcome string
	Time    time.Time
}

// TripEstimateRecorder records drive time estimates.
type TripEstimateRecorder interface {
	RecordTripEstimate(ev TripEstimateEvent) error
}

// FleetSizeRecorder records the number of vehicles in the garage.
type FleetSizeRecorder interface {
	RecordFleetSize(size int) error
}

// NopSink implements every recorder with no-op methods.
type NopSink struct{}

func (NopSink) RecordRangeSnapshot([]RangeSnapshot) error  { return nil }
func (NopSink) RecordRefuel(RefuelEvent) error             { return nil }
func (NopSink) RecordTripEstimate(TripEstimateEvent) error { return nil }
func (NopSink) RecordFleetSize(int) error                  { return nil }
