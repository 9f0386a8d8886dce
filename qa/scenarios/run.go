package scenarios

import (
	"errors"
	"fmt"
	"testing"

	"github.com/kilianp07/autorange/core/events"
	"github.com/kilianp07/autorange/core/fleet"
	"github.com/kilianp07/autorange/infra/logger"
	"github.com/kilianp07/autorange/internal/eventbus"
)

const tolerance = 1e-9

func RunScenario(t *testing.T, sc *Scenario) {
	bus := eventbus.NewTyped[events.Event]()
	defer bus.Close()
	g := fleet.NewGarage(bus, logger.NopLogger{})

	defs := make([]fleet.Definition, len(sc.Vehicles))
	for i, v := range sc.Vehicles {
		defs[i] = v.ToDefinition()
	}
	err := g.Load(defs)
	if sc.LoadError != "" {
		if kind := errorKind(err); kind != sc.LoadError {
			t.Fatalf("scenario %s: expected load error %q, got %q (%v)", sc.Name, sc.LoadError, kind, err)
		}
		return
	}
	if err != nil {
		t.Fatalf("scenario %s: load: %v", sc.Name, err)
	}

	for i, step := range sc.Steps {
		hours, err := apply(g, step)
		if kind := errorKind(err); kind != step.Error {
			t.Errorf("scenario %s step %d: expected error %q, got %q (%v)", sc.Name, i, step.Error, kind, err)
			continue
		}
		if err == nil && step.DriveTime != nil && !near(hours, step.DriveTime.Hours) {
			t.Errorf("scenario %s step %d: expected %v hours, got %v", sc.Name, i, step.DriveTime.Hours, hours)
		}
	}

	for id, want := range sc.Expected {
		st, err := g.Get(id)
		if err != nil {
			t.Errorf("scenario %s: %v", sc.Name, err)
			continue
		}
		checkRange(t, sc.Name, id, "maximum", want.Maximum, st.Range.Maximum)
		checkRange(t, sc.Name, id, "current", want.Current, st.Range.Current)
		checkRange(t, sc.Name, id, "loaded", want.Loaded, st.Range.Loaded)
	}
}

func apply(g *fleet.Garage, step Step) (float64, error) {
	switch {
	case step.Refuel != nil:
		_, _, err := g.Refuel(step.Vehicle, *step.Refuel)
		return 0, err
	case step.Board != nil:
		_, _, err := g.Board(step.Vehicle, *step.Board)
		return 0, err
	case step.Weight != nil:
		_, err := g.SetWeight(step.Vehicle, *step.Weight)
		return 0, err
	case step.Speed != nil:
		_, err := g.SetSpeed(step.Vehicle, *step.Speed)
		return 0, err
	case step.DriveTime != nil:
		est, err := g.DriveTime(step.Vehicle, step.DriveTime.Liquid, step.DriveTime.Distance)
		return est.Hours, err
	default:
		return 0, fmt.Errorf("step on %s has no action", step.Vehicle)
	}
}

func checkRange(t *testing.T, name, id, kind string, want *float64, got float64) {
	t.Helper()
	if want != nil && !near(*want, got) {
		t.Errorf("scenario %s: %s %s range expected %v km, got %v", name, id, kind, *want, got)
	}
}

func near(a, b float64) bool {
	d := a - b
	return d < tolerance && d > -tolerance
}

// errorKind names the error class of err as used in scenario files.
func errorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, fleet.ErrUnknownVehicle):
		return "unknown_vehicle"
	case errors.Is(err, fleet.ErrDuplicateVehicle):
		return "duplicate_vehicle"
	}
	return events.Outcome(err)
}
