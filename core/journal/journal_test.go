package journal

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/autorange/config"
	"github.com/kilianp07/autorange/core/events"
	"github.com/kilianp07/autorange/core/model"
	"github.com/kilianp07/autorange/core/vehiclestatus"
	"github.com/kilianp07/autorange/infra/logger"
	"github.com/kilianp07/autorange/internal/eventbus"
)

func sampleRecords(now time.Time) []Record {
	return []Record{
		{ID: "t1", Timestamp: now.Add(-2 * time.Hour), VehicleID: "car-1", Variant: "car", Liquid: 50, Distance: 250, Speed: 100, Hours: 2.5, Outcome: "ok"},
		{ID: "t2", Timestamp: now.Add(-time.Hour), VehicleID: "lorry-1", Variant: "lorry", Liquid: 10, Distance: 900, Speed: 80, Outcome: "capacity_exceeded", Error: "capacity exceeded"},
		{ID: "t3", Timestamp: now, VehicleID: "car-1", Variant: "car", Liquid: 5, Distance: 20, Speed: 50, Hours: 0.4, Outcome: "ok"},
	}
}

func exerciseStore(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()
	now := time.Now()
	for _, r := range sampleRecords(now) {
		require.NoError(t, store.Append(ctx, r))
	}

	all, err := store.Query(ctx, Query{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "t1", all[0].ID)
	assert.Equal(t, "t3", all[2].ID)

	cars, err := store.Query(ctx, Query{VehicleID: "car-1"})
	require.NoError(t, err)
	assert.Len(t, cars, 2)

	rejected, err := store.Query(ctx, Query{Outcome: "capacity_exceeded"})
	require.NoError(t, err)
	require.Len(t, rejected, 1)
	assert.Equal(t, "capacity exceeded", rejected[0].Error)
	assert.Equal(t, 900.0, rejected[0].Distance)

	recent, err := store.Query(ctx, Query{Start: now.Add(-90 * time.Minute)})
	require.NoError(t, err)
	assert.Len(t, recent, 2)
}

func TestRotatingJSONLStore(t *testing.T) {
	store, err := NewRotatingJSONLStore(filepath.Join(t.TempDir(), "trips.jsonl"), 1, 2, 1)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	exerciseStore(t, store)
}

func TestRotatingJSONLStore_Rotation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "trips.jsonl")
	store, err := NewRotatingJSONLStore(path, 1, 2, 1)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	rec := Record{ID: "t", Timestamp: time.Now(), Outcome: "ok"}
	for i := 0; i < 100; i++ {
		require.NoError(t, store.Append(context.Background(), rec))
	}
	files, _ := filepath.Glob(filepath.Join(dir, "trips*"))
	assert.NotEmpty(t, files)
	out, err := store.Query(context.Background(), Query{})
	require.NoError(t, err)
	assert.Len(t, out, 100)
}

func TestSQLiteStore(t *testing.T) {
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "trips.db"))
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	exerciseStore(t, store)
}

func TestNewStore(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStore(config.JournalConfig{Backend: "sqlite", Path: filepath.Join(dir, "j.db")})
	require.NoError(t, err)
	_, ok := s.(*SQLiteStore)
	assert.True(t, ok)
	require.NoError(t, s.Close())

	s, err = NewStore(config.JournalConfig{Backend: "jsonl", Path: filepath.Join(dir, "j.jsonl")})
	require.NoError(t, err)
	_, ok = s.(*RotatingJSONLStore)
	assert.True(t, ok)
	require.NoError(t, s.Close())

	_, err = NewStore(config.JournalConfig{Backend: "csv"})
	assert.Error(t, err)
}

func TestRecorder(t *testing.T) {
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "trips.db"))
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	bus := eventbus.NewTyped[events.Event]()
	ctx, cancel := context.WithCancel(context.Background())
	rec := NewRecorder(store, logger.NopLogger{})
	rec.Start(ctx, bus)

	st := vehiclestatus.Status{VehicleID: "car-1", Variant: "car", Speed: 90}
	now := time.Now()
	bus.Publish(events.SpeedEvent{Base: events.Base{Status: st, Time: now}})
	bus.Publish(events.TripEstimateEvent{Base: events.Base{Status: st, Time: now}, TripID: "a", Liquid: 10, Distance: 90, Hours: 1})
	bus.Publish(events.TripEstimateEvent{Base: events.Base{Status: st, Time: now}, TripID: "b", Liquid: 1, Distance: 900, Err: model.ErrCapacityExceeded})

	require.Eventually(t, func() bool {
		out, err := store.Query(context.Background(), Query{})
		return err == nil && len(out) == 2
	}, time.Second, 10*time.Millisecond)
	cancel()
	<-rec.Done()
	bus.Close()

	out, err := store.Query(context.Background(), Query{Outcome: "capacity_exceeded"})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "b", out[0].ID)
	assert.Equal(t, 90.0, out[0].Speed)
	assert.NotEmpty(t, out[0].Error)
}

func TestRecorderDrainsQueueOnCancel(t *testing.T) {
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "trips.db"))
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	bus := eventbus.NewTyped[events.Event]()
	defer bus.Close()
	ctx, cancel := context.WithCancel(context.Background())
	rec := NewRecorder(store, logger.NopLogger{})
	rec.Start(ctx, bus)

	st := vehiclestatus.Status{VehicleID: "car-1", Variant: "car", Speed: 90}
	for i := 0; i < 50; i++ {
		bus.Publish(events.TripEstimateEvent{Base: events.Base{Status: st, Time: time.Now()}, TripID: fmt.Sprintf("t%d", i), Liquid: 10, Distance: 90, Hours: 1})
	}
	cancel()
	select {
	case <-rec.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("recorder did not stop")
	}

	out, err := store.Query(context.Background(), Query{})
	require.NoError(t, err)
	assert.Len(t, out, 50)
	assert.Zero(t, bus.Dropped())
}
