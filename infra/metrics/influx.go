package metrics

import (
	"context"
	"math"
	"net/http"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/kilianp07/autorange/core/metrics"
	"github.com/kilianp07/autorange/infra/logger"
)

// InfluxSink writes range observations to an InfluxDB instance using the official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	base := strings.TrimSuffix(url, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and
// returns a NopSink if the health check fails.
func NewInfluxSinkWithFallback(url, token, org, bucket string) coremetrics.MetricsSink {
	sink := NewInfluxSink(url, token, org, bucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordRangeSnapshot writes one vehicle_range point per snapshot.
func (s *InfluxSink) RecordRangeSnapshot(snaps []coremetrics.RangeSnapshot) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, r := range snaps {
		p := write.NewPointWithMeasurement("vehicle_range").
			AddTag("variant", r.Variant).
			AddTag("vehicle_id", r.VehicleID).
			AddField("current_km", round3(r.Current)).
			AddField("liquid_l", round3(r.Liquid)).
			AddField("loaded_km", round3(r.Loaded)).
			AddField("max_km", round3(r.Maximum)).
			SetTime(r.Time)
		if err := s.writeAPI.WritePoint(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// RecordRefuel writes a refuel_event point.
func (s *InfluxSink) RecordRefuel(ev coremetrics.RefuelEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("refuel_event").
		AddTag("variant", ev.Variant).
		AddTag("vehicle_id", ev.VehicleID).
		AddField("added_l", round3(ev.Added)).
		AddField("requested_l", round3(ev.Requested)).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordTripEstimate writes a trip_estimate point.
func (s *InfluxSink) RecordTripEstimate(ev coremetrics.TripEstimateEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("trip_estimate").
		AddTag("outcome", ev.Outcome).
		AddTag("trip_id", ev.TripID).
		AddTag("variant", ev.Variant).
		AddTag("vehicle_id", ev.VehicleID).
		AddField("distance_km", round3(ev.Distance)).
		AddField("hours", round3(ev.Hours)).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// Close releases the underlying client.
func (s *InfluxSink) Close() {
	s.client.Close()
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
