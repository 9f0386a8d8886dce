package journal

import (
	"context"
	"time"

	"github.com/kilianp07/autorange/core/events"
	"github.com/kilianp07/autorange/core/logger"
	coremon "github.com/kilianp07/autorange/core/monitoring"
	"github.com/kilianp07/autorange/internal/eventbus"
)

const recorderBuffer = 64

// Recorder appends one record per drive time estimate published on the bus.
type Recorder struct {
	store Store
	log   logger.Logger
	done  chan struct{}
}

// NewRecorder creates a recorder writing to store.
func NewRecorder(store Store, log logger.Logger) *Recorder {
	return &Recorder{store: store, log: log, done: make(chan struct{})}
}

// Start subscribes to bus and records estimates until the bus is closed or
// ctx is canceled. Estimates already queued when ctx is canceled are still
// recorded. Done is closed when the loop exits.
func (r *Recorder) Start(ctx context.Context, bus *eventbus.TypedBus[events.Event]) {
	sub := bus.SubscribeN(recorderBuffer)
	coremon.Go("journal", func() {
		defer close(r.done)
		bus.Consume(ctx, sub, r.record)
	})
}

func (r *Recorder) record(ev events.Event) {
	trip, ok := ev.(events.TripEstimateEvent)
	if !ok {
		return
	}
	rec := FromEvent(trip)
	wctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := r.store.Append(wctx, rec); err != nil {
		r.log.Errorf("journal append %s: %v", rec.ID, err)
		coremon.CaptureException(err, map[string]string{"module": "journal", "vehicle_id": rec.VehicleID})
	}
}

// Done returns a channel closed once the recorder stopped.
func (r *Recorder) Done() <-chan struct{} { return r.done }

// FromEvent converts a trip estimate event to a journal record.
func FromEvent(ev events.TripEstimateEvent) Record {
	st := ev.Snapshot()
	rec := Record{
		ID:        ev.TripID,
		Timestamp: ev.OccurredAt(),
		VehicleID: st.VehicleID,
		Variant:   st.Variant,
		Liquid:    ev.Liquid,
		Distance:  ev.Distance,
		Speed:     st.Speed,
		Hours:     ev.Hours,
		Outcome:   ev.Outcome(),
	}
	if ev.Err != nil {
		rec.Error = ev.Err.Error()
	}
	return rec
}
