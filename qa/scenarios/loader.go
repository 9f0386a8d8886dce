package scenarios

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/autorange/core/fleet"
)

// VehicleDef mirrors a fleet definition in scenario files.
type VehicleDef struct {
	ID   string         `yaml:"id"`
	Type string         `yaml:"type"`
	Conf map[string]any `yaml:"conf"`
}

func (v VehicleDef) ToDefinition() fleet.Definition {
	return fleet.Definition{ID: v.ID, Type: v.Type, Conf: v.Conf}
}

// Step is one operation applied to a vehicle. Exactly one action field is
// expected to be set.
type Step struct {
	Vehicle   string   `yaml:"vehicle"`
	Refuel    *float64 `yaml:"refuel,omitempty"`
	Board     *int     `yaml:"board,omitempty"`
	Weight    *float64 `yaml:"weight,omitempty"`
	Speed     *float64 `yaml:"speed,omitempty"`
	DriveTime *Trip    `yaml:"drive_time,omitempty"`
	// Error is the expected error kind, empty when the step must succeed.
	Error string `yaml:"error,omitempty"`
}

type Trip struct {
	Liquid   float64 `yaml:"liquid"`
	Distance float64 `yaml:"distance"`
	Hours    float64 `yaml:"hours"`
}

// Expected ranges in km after all steps, keyed by vehicle id.
type ExpectedRange struct {
	Maximum *float64 `yaml:"maximum,omitempty"`
	Current *float64 `yaml:"current,omitempty"`
	Loaded  *float64 `yaml:"loaded,omitempty"`
}

type Scenario struct {
	Name        string                   `yaml:"name"`
	Description string                   `yaml:"description,omitempty"`
	Vehicles    []VehicleDef             `yaml:"vehicles"`
	LoadError   string                   `yaml:"load_error,omitempty"`
	Steps       []Step                   `yaml:"steps"`
	Expected    map[string]ExpectedRange `yaml:"expected"`
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	return &sc, nil
}
