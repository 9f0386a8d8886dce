// Package factory provides a small generic registry used to instantiate modules
// from configuration. Modules are defined by a type string and a map of raw
// settings. Factories decode the settings into typed structs and return the
// concrete implementation. Vehicle variants and metrics sinks are both built
// through a Registry.
//
// Example usage:
//
//	reg := factory.NewRegistry[*model.Vehicle]()
//	reg.Register("sport_car", func(conf map[string]any) (*model.Vehicle, error) {
//	    var c struct {
//	        AvgConsume float64 `json:"avg_consume"`
//	        MaxLiquid  float64 `json:"max_liquid"`
//	    }
//	    if err := factory.DecodeStrict(conf, &c); err != nil {
//	        return nil, err
//	    }
//	    return model.NewSportCar(c.AvgConsume, c.MaxLiquid)
//	})
//	v, err := reg.Create(factory.ModuleConfig{Type: "sport_car", Conf: map[string]any{"avg_consume": 12, "max_liquid": 60}})
package factory
