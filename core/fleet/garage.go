package fleet

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/autorange/core/events"
	"github.com/kilianp07/autorange/core/logger"
	"github.com/kilianp07/autorange/core/model"
	"github.com/kilianp07/autorange/core/vehiclestatus"
	"github.com/kilianp07/autorange/internal/eventbus"
)

var (
	// ErrUnknownVehicle is returned for ids that are not in the garage.
	ErrUnknownVehicle = errors.New("unknown vehicle")
	// ErrDuplicateVehicle is returned when adding an id twice.
	ErrDuplicateVehicle = errors.New("duplicate vehicle")
)

// Bus is the event bus the garage publishes to.
type Bus = eventbus.TypedBus[events.Event]

// TripEstimate is the answer to a drive time request.
type TripEstimate struct {
	TripID    string  `json:"trip_id"`
	VehicleID string  `json:"vehicle_id"`
	Liquid    float64 `json:"liquid"`
	Distance  float64 `json:"distance"`
	Speed     float64 `json:"speed"`
	Hours     float64 `json:"hours"`
}

// Garage owns the vehicles of the service and serializes access to them.
// Every successful mutation refreshes the status store and publishes an
// event on the bus.
type Garage struct {
	mu       sync.Mutex
	vehicles map[string]*model.Vehicle
	status   vehiclestatus.Store
	bus      *Bus
	log      logger.Logger
	now      func() time.Time
}

// NewGarage creates an empty garage. bus may be nil.
func NewGarage(bus *Bus, log logger.Logger) *Garage {
	return &Garage{
		vehicles: make(map[string]*model.Vehicle),
		status:   vehiclestatus.NewMemoryStore(),
		bus:      bus,
		log:      log,
		now:      time.Now,
	}
}

// Load builds and adds every definition. It stops at the first failure.
func (g *Garage) Load(defs []Definition) error {
	for _, def := range defs {
		v, err := Build(def)
		if err != nil {
			return err
		}
		if _, err := g.Add(def.ID, v); err != nil {
			return err
		}
	}
	return nil
}

// Add registers v under id. An empty id is replaced by a generated one.
func (g *Garage) Add(id string, v *model.Vehicle) (vehiclestatus.Status, error) {
	if v == nil {
		return vehiclestatus.Status{}, fmt.Errorf("vehicle %s: nil vehicle", id)
	}
	if id == "" {
		id = uuid.NewString()
	}
	g.mu.Lock()
	if _, ok := g.vehicles[id]; ok {
		g.mu.Unlock()
		return vehiclestatus.Status{}, fmt.Errorf("%s: %w", id, ErrDuplicateVehicle)
	}
	g.vehicles[id] = v
	st := g.refresh(id, v)
	g.publish(events.AddedEvent{Base: g.base(st)})
	g.mu.Unlock()

	g.log.Infow("vehicle added", map[string]any{"vehicle_id": id, "variant": st.Variant, "max_range_km": st.Range.Maximum})
	return st, nil
}

// Get returns the current status of a vehicle.
func (g *Garage) Get(id string) (vehiclestatus.Status, error) {
	st, ok := g.status.Get(id)
	if !ok {
		return vehiclestatus.Status{}, fmt.Errorf("%s: %w", id, ErrUnknownVehicle)
	}
	return st, nil
}

// List returns the statuses matching f ordered by id.
func (g *Garage) List(f vehiclestatus.Filter) []vehiclestatus.Status {
	return g.status.List(f)
}

// Len returns the number of vehicles.
func (g *Garage) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.vehicles)
}

// Refuel adds liters to the tank of id and returns the amount absorbed.
func (g *Garage) Refuel(id string, liters float64) (vehiclestatus.Status, float64, error) {
	var added float64
	st, err := g.mutate(id, func(v *model.Vehicle) error {
		var err error
		added, err = v.AddLiquid(liters)
		return err
	}, func(b events.Base) events.Event {
		return events.RefuelEvent{Base: b, Requested: liters, Added: added}
	})
	if err != nil {
		return st, 0, fmt.Errorf("refuel %s: %w", id, err)
	}
	g.log.Debugw("refuel", map[string]any{"vehicle_id": id, "requested": liters, "added": added})
	return st, added, nil
}

// Board adds passengers to a car and returns how many boarded.
func (g *Garage) Board(id string, count int) (vehiclestatus.Status, int, error) {
	var boarded int
	st, err := g.mutate(id, func(v *model.Vehicle) error {
		if v.Passengers == nil {
			return fmt.Errorf("%s carries no passengers: %w", v.Variant(), model.ErrInvalidArgument)
		}
		var err error
		boarded, err = v.Passengers.AddPassengers(count)
		return err
	}, func(b events.Base) events.Event {
		return events.LoadEvent{Base: b, Kind: events.LoadPassengers, Delta: float64(boarded)}
	})
	if err != nil {
		return st, 0, fmt.Errorf("board %s: %w", id, err)
	}
	return st, boarded, nil
}

// SetWeight sets the cargo weight of a lorry. The weight is not bounded by
// the rated maximum.
func (g *Garage) SetWeight(id string, kg float64) (vehiclestatus.Status, error) {
	var delta float64
	st, err := g.mutate(id, func(v *model.Vehicle) error {
		if v.Cargo == nil {
			return fmt.Errorf("%s carries no cargo: %w", v.Variant(), model.ErrInvalidArgument)
		}
		if kg < 0 {
			return fmt.Errorf("weight %v must not be negative: %w", kg, model.ErrInvalidArgument)
		}
		delta = kg - v.Cargo.Weight
		v.Cargo.Weight = kg
		return nil
	}, func(b events.Base) events.Event {
		return events.LoadEvent{Base: b, Kind: events.LoadWeight, Delta: delta}
	})
	if err != nil {
		return st, fmt.Errorf("load %s: %w", id, err)
	}
	if st.MaxWeight != nil && kg > float64(*st.MaxWeight) {
		g.log.Warnf("vehicle %s loaded with %.0f kg above its rated %d kg", id, kg, *st.MaxWeight)
	}
	return st, nil
}

// SetSpeed sets the speed of a vehicle. Any value is accepted.
func (g *Garage) SetSpeed(id string, kmh float64) (vehiclestatus.Status, error) {
	var prev float64
	st, err := g.mutate(id, func(v *model.Vehicle) error {
		prev = v.Speed
		v.Speed = kmh
		return nil
	}, func(b events.Base) events.Event {
		return events.SpeedEvent{Base: b, Previous: prev}
	})
	if err != nil {
		return st, fmt.Errorf("speed %s: %w", id, err)
	}
	return st, nil
}

// DriveTime estimates the hours needed by id to cover distance km with
// liquid liters. Rejected estimates are published too.
func (g *Garage) DriveTime(id string, liquid, distance float64) (TripEstimate, error) {
	g.mu.Lock()
	v, ok := g.vehicles[id]
	if !ok {
		g.mu.Unlock()
		return TripEstimate{}, fmt.Errorf("drive time %s: %w", id, ErrUnknownVehicle)
	}
	hours, err := v.DriveTime(liquid, distance)
	est := TripEstimate{
		TripID:    uuid.NewString(),
		VehicleID: id,
		Liquid:    liquid,
		Distance:  distance,
		Speed:     v.Speed,
		Hours:     hours,
	}
	g.publish(events.TripEstimateEvent{
		Base:     g.base(vehiclestatus.Snapshot(id, v)),
		TripID:   est.TripID,
		Liquid:   liquid,
		Distance: distance,
		Hours:    hours,
		Err:      err,
	})
	g.mu.Unlock()

	if err != nil {
		g.log.Debugw("drive time rejected", map[string]any{"vehicle_id": id, "trip_id": est.TripID, "error": err.Error()})
		return est, fmt.Errorf("drive time %s: %w", id, err)
	}
	return est, nil
}

// mutate applies fn to vehicle id and publishes the event built by ev.
// Events are published under g.mu so they follow the mutation order.
func (g *Garage) mutate(id string, fn func(*model.Vehicle) error, ev func(events.Base) events.Event) (vehiclestatus.Status, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	v, ok := g.vehicles[id]
	if !ok {
		return vehiclestatus.Status{}, ErrUnknownVehicle
	}
	if err := fn(v); err != nil {
		return vehiclestatus.Snapshot(id, v), err
	}
	st := g.refresh(id, v)
	g.publish(ev(g.base(st)))
	return st, nil
}

// refresh must be called with g.mu held.
func (g *Garage) refresh(id string, v *model.Vehicle) vehiclestatus.Status {
	st := vehiclestatus.Snapshot(id, v)
	g.status.Set(st)
	return st
}

func (g *Garage) base(st vehiclestatus.Status) events.Base {
	return events.Base{Status: st, Time: g.now()}
}

func (g *Garage) publish(ev events.Event) {
	if g.bus != nil {
		g.bus.Publish(ev)
	}
}
