package model

import (
	"fmt"
	"math"
	"strings"
)

// Variant identifies the kind of vehicle and therefore its load penalty rule.
type Variant int

const (
	VariantCar Variant = iota
	VariantSportCar
	VariantLorry
)

const (
	// MaxCarPassengers is the upper bound accepted for a car's passenger capacity.
	MaxCarPassengers = 5

	passengerCoef = 0.06 // range lost per passenger
	weightCoef    = 0.04 // range lost per full weight step
	weightStepKg  = 200
	overweightCap = 0.8 // share of the tank a full load may cost
)

// String returns the configuration name of the variant.
func (v Variant) String() string {
	switch v {
	case VariantCar:
		return "car"
	case VariantSportCar:
		return "sport_car"
	case VariantLorry:
		return "lorry"
	default:
		return "unknown"
	}
}

// ParseVariant converts a configuration name into a Variant.
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "car":
		return VariantCar, nil
	case "sport_car", "sportcar", "sport-car":
		return VariantSportCar, nil
	case "lorry", "truck":
		return VariantLorry, nil
	default:
		return 0, fmt.Errorf("unknown variant %q", s)
	}
}

// Passengers holds the passenger load of a car.
type Passengers struct {
	max int
	// CurrentPassengers can be set directly; AddPassengers keeps it within bounds.
	CurrentPassengers int
}

// MaxPassengers returns the passenger capacity.
func (p *Passengers) MaxPassengers() int { return p.max }

// AddPassengers boards up to count passengers and returns how many actually boarded.
func (p *Passengers) AddPassengers(count int) (int, error) {
	if count < 0 {
		return 0, fmt.Errorf("passengers %d must not be negative: %w", count, ErrInvalidArgument)
	}
	last := p.CurrentPassengers
	p.CurrentPassengers = min(p.max, last+count)
	return p.CurrentPassengers - last, nil
}

func (p *Passengers) reduction(distance float64) (float64, error) {
	if distance < 0 {
		return 0, fmt.Errorf("distance %v must not be negative: %w", distance, ErrInvalidArgument)
	}
	return distance * float64(p.CurrentPassengers) * passengerCoef, nil
}

// Cargo holds the cargo load of a lorry.
type Cargo struct {
	max int
	// Weight in kg. It is not bounded by MaxWeight.
	Weight float64
}

// MaxWeight returns the rated maximum load in kg.
func (c *Cargo) MaxWeight() int { return c.max }

// Steps returns the number of full weight steps carried.
func (c *Cargo) Steps() float64 { return math.Trunc(c.Weight / weightStepKg) }

func (c *Cargo) reduction(distance float64) (float64, error) {
	if distance < 0 {
		return 0, fmt.Errorf("distance %v must not be negative: %w", distance, ErrInvalidArgument)
	}
	return distance * c.Steps() * weightCoef, nil
}
