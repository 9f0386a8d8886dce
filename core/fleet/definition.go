package fleet

import (
	"fmt"

	"github.com/kilianp07/autorange/core/factory"
	"github.com/kilianp07/autorange/core/model"
)

// Definition describes one configured vehicle.
type Definition struct {
	ID   string         `json:"id"`
	Type string         `json:"type"`
	Conf map[string]any `json:"conf"`
}

// Module returns the factory configuration of the definition.
func (d Definition) Module() factory.ModuleConfig {
	return factory.ModuleConfig{Type: d.Type, Conf: d.Conf}
}

// vehicleConf lists the settings accepted by every variant factory. Initial
// state fields are optional; the tank starts full unless liquid is given.
type vehicleConf struct {
	AvgConsume    float64  `json:"avg_consume"`
	MaxLiquid     float64  `json:"max_liquid"`
	MaxPassengers int      `json:"max_passengers"`
	MaxWeight     int      `json:"max_weight"`
	Liquid        *float64 `json:"liquid"`
	Speed         float64  `json:"speed"`
	Passengers    int      `json:"passengers"`
	Weight        float64  `json:"weight"`
}

var variants = factory.NewRegistry[*model.Vehicle]()

func init() {
	_ = variants.Register(model.VariantCar.String(), func(conf map[string]any) (*model.Vehicle, error) {
		c, err := decodeConf(conf)
		if err != nil {
			return nil, err
		}
		v, err := model.NewCar(c.MaxPassengers, c.AvgConsume, c.MaxLiquid)
		if err != nil {
			return nil, err
		}
		if _, err := v.Passengers.AddPassengers(c.Passengers); err != nil {
			return nil, err
		}
		return applyState(v, c)
	})
	_ = variants.Register(model.VariantSportCar.String(), func(conf map[string]any) (*model.Vehicle, error) {
		c, err := decodeConf(conf)
		if err != nil {
			return nil, err
		}
		v, err := model.NewSportCar(c.AvgConsume, c.MaxLiquid)
		if err != nil {
			return nil, err
		}
		return applyState(v, c)
	})
	_ = variants.Register(model.VariantLorry.String(), func(conf map[string]any) (*model.Vehicle, error) {
		c, err := decodeConf(conf)
		if err != nil {
			return nil, err
		}
		v, err := model.NewLorry(c.MaxWeight, c.AvgConsume, c.MaxLiquid)
		if err != nil {
			return nil, err
		}
		if c.Weight < 0 {
			return nil, fmt.Errorf("weight %v must not be negative: %w", c.Weight, model.ErrInvalidArgument)
		}
		v.Cargo.Weight = c.Weight
		return applyState(v, c)
	})
}

func decodeConf(conf map[string]any) (vehicleConf, error) {
	var c vehicleConf
	if err := factory.DecodeStrict(conf, &c); err != nil {
		return c, fmt.Errorf("decode vehicle conf: %w", err)
	}
	return c, nil
}

func applyState(v *model.Vehicle, c vehicleConf) (*model.Vehicle, error) {
	v.Speed = c.Speed
	if c.Liquid != nil {
		v.CurrentLiquidAmount = 0
		if _, err := v.AddLiquid(*c.Liquid); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// Build creates the vehicle described by def.
func Build(def Definition) (*model.Vehicle, error) {
	v, err := variants.Create(def.Module())
	if err != nil {
		return nil, fmt.Errorf("vehicle %s: %w", def.ID, err)
	}
	return v, nil
}

// Variants returns the type names accepted in definitions.
func Variants() []string { return variants.Types() }
