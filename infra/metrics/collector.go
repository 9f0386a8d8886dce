package metrics

import (
	"context"

	"github.com/kilianp07/autorange/core/events"
	coremetrics "github.com/kilianp07/autorange/core/metrics"
	coremon "github.com/kilianp07/autorange/core/monitoring"
	"github.com/kilianp07/autorange/internal/eventbus"
)

// StartEventCollector subscribes to the event bus and records metrics for events.
// It stops when the bus is closed or the context is canceled, after
// handling the events already queued. The returned channel is closed once
// it stopped.
func StartEventCollector(ctx context.Context, bus *eventbus.TypedBus[events.Event], sink coremetrics.MetricsSink) <-chan struct{} {
	done := make(chan struct{})
	if bus == nil || sink == nil {
		close(done)
		return done
	}
	sub := bus.Subscribe()
	coremon.Go("metrics", func() {
		defer close(done)
		fleet := make(map[string]struct{})
		bus.Consume(ctx, sub, func(ev events.Event) { collect(sink, fleet, ev) })
	})
	return done
}

func collect(sink coremetrics.MetricsSink, fleet map[string]struct{}, ev events.Event) {
	st := ev.Snapshot()
	switch e := ev.(type) {
	case events.TripEstimateEvent:
		if r, ok := sink.(coremetrics.TripEstimateRecorder); ok {
			_ = r.RecordTripEstimate(coremetrics.TripEstimateEvent{
				TripID:    e.TripID,
				VehicleID: st.VehicleID,
				Variant:   st.Variant,
				Distance:  e.Distance,
				Hours:     e.Hours,
				Outcome:   e.Outcome(),
				Time:      e.OccurredAt(),
			})
		}
		// estimates leave the vehicle untouched
		return
	case events.RefuelEvent:
		if r, ok := sink.(coremetrics.RefuelRecorder); ok {
			_ = r.RecordRefuel(coremetrics.RefuelEvent{
				VehicleID: st.VehicleID,
				Variant:   st.Variant,
				Requested: e.Requested,
				Added:     e.Added,
				Time:      e.OccurredAt(),
			})
		}
	case events.AddedEvent:
		fleet[st.VehicleID] = struct{}{}
		if r, ok := sink.(coremetrics.FleetSizeRecorder); ok {
			_ = r.RecordFleetSize(len(fleet))
		}
	}
	_ = sink.RecordRangeSnapshot([]coremetrics.RangeSnapshot{{
		VehicleID: st.VehicleID,
		Variant:   st.Variant,
		Maximum:   st.Range.Maximum,
		Current:   st.Range.Current,
		Loaded:    st.Range.Loaded,
		Liquid:    st.LiquidAmount,
		Time:      ev.OccurredAt(),
	}})
}
