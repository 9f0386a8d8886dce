package metrics

// MultiSink fans records out to multiple sinks.
type MultiSink struct {
	Sinks []MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordRangeSnapshot forwards the snapshots to all sinks, returning the first error encountered.
func (m *MultiSink) RecordRangeSnapshot(snaps []RangeSnapshot) error {
	for _, s := range m.Sinks {
		if err := s.RecordRangeSnapshot(snaps); err != nil {
			return err
		}
	}
	return nil
}

// RecordRefuel forwards refuel events to sinks supporting them.
func (m *MultiSink) RecordRefuel(ev RefuelEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(RefuelRecorder); ok {
			if err := rec.RecordRefuel(ev); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecordTripEstimate forwards trip estimates.
func (m *MultiSink) RecordTripEstimate(ev TripEstimateEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(TripEstimateRecorder); ok {
			if err := rec.RecordTripEstimate(ev); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecordFleetSize forwards fleet size metrics when supported by the sink.
func (m *MultiSink) RecordFleetSize(size int) error {
	for _, s := range m.Sinks {
		if fr, ok := s.(FleetSizeRecorder); ok {
			if err := fr.RecordFleetSize(size); err != nil {
				return err
			}
		}
	}
	return nil
}
