package model

import (
	"fmt"
	"math"
)

// Vehicle is a fuelled vehicle of one of the supported variants.
// Shared fuel and range arithmetic lives here; the load penalty is
// resolved from the variant tag. A Vehicle is not safe for concurrent
// mutation.
type Vehicle struct {
	avgConsume float64 // km per liter
	maxLiquid  float64 // liters
	variant    Variant

	// CurrentLiquidAmount in liters. AddLiquid keeps it within [0, capacity].
	CurrentLiquidAmount float64
	// Speed in km/h. Not clamped; DriveTime requires it to be positive.
	Speed float64

	// Passengers is set for cars only.
	Passengers *Passengers
	// Cargo is set for lorries only.
	Cargo *Cargo
}

func newVehicle(v Variant, avgConsume, maxLiquid float64) (*Vehicle, error) {
	if avgConsume <= 0 || avgConsume > maxLiquid {
		return nil, fmt.Errorf("average consumption %v with capacity %v: %w", avgConsume, maxLiquid, ErrInvalidArgument)
	}
	return &Vehicle{
		avgConsume:          avgConsume,
		maxLiquid:           maxLiquid,
		variant:             v,
		CurrentLiquidAmount: maxLiquid,
	}, nil
}

// NewSportCar creates a sport car. Sport cars have no load penalty.
func NewSportCar(avgConsume, maxLiquid float64) (*Vehicle, error) {
	return newVehicle(VariantSportCar, avgConsume, maxLiquid)
}

// NewCar creates a car able to carry up to maxPassengers passengers.
func NewCar(maxPassengers int, avgConsume, maxLiquid float64) (*Vehicle, error) {
	v, err := newVehicle(VariantCar, avgConsume, maxLiquid)
	if err != nil {
		return nil, err
	}
	if maxPassengers < 0 || maxPassengers > MaxCarPassengers {
		return nil, fmt.Errorf("max passengers %d outside [0,%d]: %w", maxPassengers, MaxCarPassengers, ErrInvalidArgument)
	}
	v.Passengers = &Passengers{max: maxPassengers}
	return v, nil
}

// NewLorry creates a lorry rated for maxWeight kg. The configuration is
// rejected when carrying the rated load would cost at least 80% of the tank.
func NewLorry(maxWeight int, avgConsume, maxLiquid float64) (*Vehicle, error) {
	v, err := newVehicle(VariantLorry, avgConsume, maxLiquid)
	if err != nil {
		return nil, err
	}
	if maxWeight < 0 {
		return nil, fmt.Errorf("max weight %d must not be negative: %w", maxWeight, ErrInvalidArgument)
	}
	// integer division on purpose: penalty tiers change at full steps only
	if avgConsume*float64(maxWeight/weightStepKg)*weightCoef >= maxLiquid*overweightCap {
		return nil, fmt.Errorf("lorry overweighted at %d kg: %w", maxWeight, ErrInfeasibleConfiguration)
	}
	v.Cargo = &Cargo{max: maxWeight}
	return v, nil
}

// Variant returns the kind of vehicle.
func (v *Vehicle) Variant() Variant { return v.variant }

// AverageConsumption returns the distance driven per liter.
func (v *Vehicle) AverageConsumption() float64 { return v.avgConsume }

// MaxLiquidAmount returns the tank capacity in liters.
func (v *Vehicle) MaxLiquidAmount() float64 { return v.maxLiquid }

// AddLiquid fills the tank by amount liters without exceeding capacity and
// returns the amount actually absorbed.
func (v *Vehicle) AddLiquid(amount float64) (float64, error) {
	if amount < 0 {
		return 0, fmt.Errorf("liquid amount %v must not be negative: %w", amount, ErrInvalidArgument)
	}
	last := v.CurrentLiquidAmount
	v.CurrentLiquidAmount = math.Min(v.maxLiquid, last+amount)
	return v.CurrentLiquidAmount - last, nil
}

// MaximumPossibleDistance returns the theoretical range on a full tank,
// ignoring any load.
func (v *Vehicle) MaximumPossibleDistance() float64 {
	return v.maxLiquid * v.avgConsume
}

// CurrentPossibleDistance returns the range on the current liquid, ignoring load.
func (v *Vehicle) CurrentPossibleDistance() (float64, error) {
	return v.possibleDistance(v.CurrentLiquidAmount)
}

// CurrentPossibleDistanceWeightOn returns the range on the current liquid
// after the load penalty.
func (v *Vehicle) CurrentPossibleDistanceWeightOn() (float64, error) {
	return v.possibleDistanceWithLoad(v.CurrentLiquidAmount)
}

// DriveTime returns the hours needed to drive distance km at the current
// speed, assuming liquidAmount liters are available. The vehicle's own
// liquid is not consulted and nothing is mutated.
func (v *Vehicle) DriveTime(liquidAmount, distance float64) (float64, error) {
	if distance <= 0 {
		return 0, fmt.Errorf("distance %v must be positive: %w", distance, ErrInvalidArgument)
	}
	reach, err := v.possibleDistanceWithLoad(liquidAmount)
	if err != nil {
		return 0, err
	}
	if v.Speed <= 0 {
		return 0, fmt.Errorf("speed %v must be positive to compute drive time: %w", v.Speed, ErrInvalidState)
	}
	if reach < distance {
		return 0, fmt.Errorf("%v liters reach %v km, %v km requested: %w", liquidAmount, reach, distance, ErrCapacityExceeded)
	}
	return distance / v.Speed, nil
}

// DistanceReduction returns the part of distance lost to the current load.
func (v *Vehicle) DistanceReduction(distance float64) (float64, error) {
	switch v.variant {
	case VariantCar:
		if v.Passengers != nil {
			return v.Passengers.reduction(distance)
		}
	case VariantLorry:
		if v.Cargo != nil {
			return v.Cargo.reduction(distance)
		}
	case VariantSportCar:
		return 0, nil
	}
	return 0, nil
}

func (v *Vehicle) possibleDistance(liquidAmount float64) (float64, error) {
	if liquidAmount < 0 {
		return 0, fmt.Errorf("liquid amount %v must not be negative: %w", liquidAmount, ErrInvalidArgument)
	}
	return liquidAmount * v.avgConsume, nil
}

func (v *Vehicle) possibleDistanceWithLoad(liquidAmount float64) (float64, error) {
	distance, err := v.possibleDistance(liquidAmount)
	if err != nil {
		return 0, err
	}
	reduction, err := v.DistanceReduction(distance)
	if err != nil {
		return 0, err
	}
	// reduction is kept within [0, distance]
	reduction = math.Max(0, math.Min(distance, reduction))
	return distance - reduction, nil
}
