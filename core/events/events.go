package events

import (
	"time"

	"github.com/kilianp07/autorange/core/vehiclestatus"
)

// Event is implemented by every vehicle event. Status is the vehicle
// snapshot taken right after the event.
type Event interface {
	Snapshot() vehiclestatus.Status
	OccurredAt() time.Time
}

// Base carries the fields shared by all events.
type Base struct {
	Status vehiclestatus.Status
	Time   time.Time
}

func (b Base) Snapshot() vehiclestatus.Status { return b.Status }
func (b Base) OccurredAt() time.Time          { return b.Time }

// AddedEvent is published when a vehicle joins the garage.
type AddedEvent struct {
	Base
}

// RefuelEvent is published after liquid was added.
type RefuelEvent struct {
	Base
	Requested float64
	Added     float64
}

// LoadKind tells which load changed in a LoadEvent.
type LoadKind string

const (
	LoadPassengers LoadKind = "passengers"
	LoadWeight     LoadKind = "weight"
)

// LoadEvent is published when passengers board or cargo weight is set.
type LoadEvent struct {
	Base
	Kind  LoadKind
	Delta float64
}

// SpeedEvent is published when the speed of a vehicle changes.
type SpeedEvent struct {
	Base
	Previous float64
}

// TripEstimateEvent is published for every drive time request, successful or not.
type TripEstimateEvent struct {
	Base
	TripID   string
	Liquid   float64
	Distance float64
	Hours    float64
	Err      error
}

// Outcome classifies the estimate: "ok" or the error kind.
func (e TripEstimateEvent) Outcome() string {
	return Outcome(e.Err)
}
