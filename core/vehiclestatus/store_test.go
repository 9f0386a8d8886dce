package vehiclestatus

import (
	"testing"

	"github.com/kilianp07/autorange/core/model"
)

func TestSnapshotCar(t *testing.T) {
	car, err := model.NewCar(4, 10, 50)
	if err != nil {
		t.Fatalf("car: %v", err)
	}
	if _, err := car.Passengers.AddPassengers(3); err != nil {
		t.Fatalf("board: %v", err)
	}
	st := Snapshot("c1", car)
	if st.Variant != "car" || st.VehicleID != "c1" {
		t.Fatalf("unexpected identity %#v", st)
	}
	if st.Passengers == nil || *st.Passengers != 3 || *st.MaxPassengers != 4 {
		t.Fatalf("passengers not captured %#v", st)
	}
	if st.Weight != nil {
		t.Fatalf("car should not report weight")
	}
	if st.Range.Maximum != 500 || st.Range.Current != 500 {
		t.Fatalf("unexpected range %#v", st.Range)
	}
	if st.Range.Loaded < 409.999 || st.Range.Loaded > 410.001 {
		t.Fatalf("expected loaded range 410 got %v", st.Range.Loaded)
	}
}

func TestSnapshotLorryNegativeLiquid(t *testing.T) {
	lorry, err := model.NewLorry(1000, 5, 100)
	if err != nil {
		t.Fatalf("lorry: %v", err)
	}
	lorry.CurrentLiquidAmount = -1
	st := Snapshot("l1", lorry)
	if st.Weight == nil || *st.MaxWeight != 1000 {
		t.Fatalf("cargo not captured %#v", st)
	}
	if st.Range.Current != 0 || st.Range.Loaded != 0 {
		t.Fatalf("expected zero ranges got %#v", st.Range)
	}
}

func TestMemoryStore_Filter(t *testing.T) {
	s := NewMemoryStore()
	s.Set(Status{VehicleID: "v2", Variant: "lorry"})
	s.Set(Status{VehicleID: "v1", Variant: "car"})
	s.Set(Status{VehicleID: "v3", Variant: "car"})
	out := s.List(Filter{Variant: "car"})
	if len(out) != 2 || out[0].VehicleID != "v1" || out[1].VehicleID != "v3" {
		t.Fatalf("filter failed: %#v", out)
	}
	if all := s.List(Filter{}); len(all) != 3 {
		t.Fatalf("expected 3 got %d", len(all))
	}
}

func TestMemoryStore_Get(t *testing.T) {
	s := NewMemoryStore()
	s.Set(Status{VehicleID: "v1", Speed: 10})
	s.Set(Status{VehicleID: "v1", Speed: 20})
	st, ok := s.Get("v1")
	if !ok || st.Speed != 20 {
		t.Fatalf("unexpected %#v %v", st, ok)
	}
	if _, ok := s.Get("nope"); ok {
		t.Fatalf("expected miss")
	}
}
