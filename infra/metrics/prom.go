package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kilianp07/autorange/core/metrics"
)

// PromSink records vehicle range observations in Prometheus metrics.
type PromSink struct {
	rangeKM *prometheus.GaugeVec
	liquid  *prometheus.GaugeVec
	refuel  *prometheus.CounterVec
	trips   *prometheus.CounterVec
	hours   *prometheus.HistogramVec
	fleet   prometheus.Gauge
}

// NewPromSink registers range metrics on the default Prometheus registerer.
// The /metrics endpoint is served separately, see StartPromServer.
func NewPromSink() (coremetrics.MetricsSink, error) {
	s, err := NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	s := &PromSink{}
	var err error
	if s.rangeKM, err = register(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "vehicle_range_km",
		Help: "Possible distance of a vehicle by kind (max, current, loaded)",
	}, []string{"vehicle_id", "variant", "kind"})); err != nil {
		return nil, err
	}
	if s.liquid, err = register(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "vehicle_liquid_liters",
		Help: "Liquid currently held by a vehicle",
	}, []string{"vehicle_id", "variant"})); err != nil {
		return nil, err
	}
	if s.refuel, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "vehicle_refuel_liters_total",
		Help: "Liters absorbed by refuels",
	}, []string{"vehicle_id"})); err != nil {
		return nil, err
	}
	if s.trips, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "trip_estimates_total",
		Help: "Drive time estimates by outcome",
	}, []string{"variant", "outcome"})); err != nil {
		return nil, err
	}
	if s.hours, err = register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "trip_estimate_hours",
		Help:    "Estimated drive time of accepted trips",
		Buckets: []float64{0.25, 0.5, 1, 2, 4, 8, 16, 24},
	}, []string{"variant"})); err != nil {
		return nil, err
	}
	if s.fleet, err = register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "fleet_vehicles_total",
		Help: "Number of vehicles in the garage",
	})); err != nil {
		return nil, err
	}
	return s, nil
}

// register returns the already registered collector when c was registered before.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RecordRangeSnapshot sets the range and liquid gauges of each vehicle.
func (s *PromSink) RecordRangeSnapshot(snaps []coremetrics.RangeSnapshot) error {
	for _, r := range snaps {
		s.rangeKM.WithLabelValues(r.VehicleID, r.Variant, "max").Set(r.Maximum)
		s.rangeKM.WithLabelValues(r.VehicleID, r.Variant, "current").Set(r.Current)
		s.rangeKM.WithLabelValues(r.VehicleID, r.Variant, "loaded").Set(r.Loaded)
		s.liquid.WithLabelValues(r.VehicleID, r.Variant).Set(r.Liquid)
	}
	return nil
}

// RecordRefuel adds the absorbed liters to the refuel counter.
func (s *PromSink) RecordRefuel(ev coremetrics.RefuelEvent) error {
	s.refuel.WithLabelValues(ev.VehicleID).Add(ev.Added)
	return nil
}

// RecordTripEstimate counts the estimate and observes its duration when accepted.
func (s *PromSink) RecordTripEstimate(ev coremetrics.TripEstimateEvent) error {
	s.trips.WithLabelValues(ev.Variant, ev.Outcome).Inc()
	if ev.Outcome == "ok" {
		s.hours.WithLabelValues(ev.Variant).Observe(ev.Hours)
	}
	return nil
}

// RecordFleetSize sets the gauge to the number of vehicles.
func (s *PromSink) RecordFleetSize(size int) error {
	if s.fleet != nil {
		s.fleet.Set(float64(size))
	}
	return nil
}
