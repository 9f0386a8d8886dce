package metrics

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/autorange/core/events"
	coremetrics "github.com/kilianp07/autorange/core/metrics"
	"github.com/kilianp07/autorange/core/model"
	"github.com/kilianp07/autorange/core/vehiclestatus"
	"github.com/kilianp07/autorange/internal/eventbus"
)

type captureSink struct {
	mu     sync.Mutex
	ranges []coremetrics.RangeSnapshot
	refuel []coremetrics.RefuelEvent
	trips  []coremetrics.TripEstimateEvent
	size   int
}

func (c *captureSink) RecordRangeSnapshot(s []coremetrics.RangeSnapshot) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ranges = append(c.ranges, s...)
	return nil
}

func (c *captureSink) RecordRefuel(ev coremetrics.RefuelEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.refuel = append(c.refuel, ev)
	return nil
}

func (c *captureSink) RecordTripEstimate(ev coremetrics.TripEstimateEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.trips = append(c.trips, ev)
	return nil
}

func (c *captureSink) RecordFleetSize(n int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.size = n
	return nil
}

func (c *captureSink) counts() (int, int, int, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.ranges), len(c.refuel), len(c.trips), c.size
}

func TestStartEventCollector(t *testing.T) {
	bus := eventbus.NewTyped[events.Event]()
	defer bus.Close()
	sink := &captureSink{}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	StartEventCollector(ctx, bus, sink)

	car := vehiclestatus.Status{VehicleID: "car-1", Variant: "car", LiquidAmount: 50, Range: vehiclestatus.Range{Maximum: 500, Current: 500, Loaded: 410}}
	now := time.Now()

	// the subscription is registered synchronously
	bus.Publish(events.AddedEvent{Base: events.Base{Status: car, Time: now}})
	bus.Publish(events.RefuelEvent{Base: events.Base{Status: car, Time: now}, Requested: 5, Added: 0})
	bus.Publish(events.TripEstimateEvent{Base: events.Base{Status: car, Time: now}, TripID: "t1", Distance: 900, Err: model.ErrCapacityExceeded})

	require.Eventually(t, func() bool {
		_, _, trips, _ := sink.counts()
		return trips == 1
	}, time.Second, 10*time.Millisecond)

	ranges, refuels, trips, size := sink.counts()
	assert.Equal(t, 2, ranges)
	assert.Equal(t, 1, refuels)
	assert.Equal(t, 1, trips)
	assert.Equal(t, 1, size)
	sink.mu.Lock()
	assert.Equal(t, "capacity_exceeded", sink.trips[0].Outcome)
	assert.Equal(t, 410.0, sink.ranges[0].Loaded)
	sink.mu.Unlock()
}

func TestStartEventCollectorNil(t *testing.T) {
	StartEventCollector(context.Background(), nil, &captureSink{})
	StartEventCollector(context.Background(), eventbus.NewTyped[events.Event](), nil)
}
