package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVariantString(t *testing.T) {
	for _, v := range []Variant{VariantCar, VariantSportCar, VariantLorry} {
		parsed, err := ParseVariant(v.String())
		require.NoError(t, err)
		assert.Equal(t, v, parsed)
	}
	assert.Equal(t, "unknown", Variant(42).String())
	_, err := ParseVariant("boat")
	assert.Error(t, err)
}

func TestAddPassengers(t *testing.T) {
	car, err := NewCar(4, 10, 50)
	require.NoError(t, err)
	p := car.Passengers
	assert.Equal(t, 4, p.MaxPassengers())

	n, err := p.AddPassengers(3)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = p.AddPassengers(3)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 4, p.CurrentPassengers)

	n, err = p.AddPassengers(-1)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Zero(t, n)
	assert.Equal(t, 4, p.CurrentPassengers)
}

func TestCarDistanceReduction(t *testing.T) {
	car, err := NewCar(5, 10, 50)
	require.NoError(t, err)
	for p := 0; p <= 5; p++ {
		car.Passengers.CurrentPassengers = p
		for _, d := range []float64{0, 1, 123.5, 500} {
			got, err := car.DistanceReduction(d)
			require.NoError(t, err)
			assert.InDelta(t, d*float64(p)*0.06, got, eps)
		}
	}
	_, err = car.DistanceReduction(-1)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestLorryDistanceReductionTiers(t *testing.T) {
	lorry, err := NewLorry(1000, 5, 100)
	require.NoError(t, err)
	tests := []struct {
		weight float64
		steps  float64
	}{
		{0, 0},
		{199, 0},
		{199.99, 0},
		{200, 1},
		{399, 1},
		{400, 2},
		{1000, 5},
	}
	for _, tt := range tests {
		lorry.Cargo.Weight = tt.weight
		assert.Equal(t, tt.steps, lorry.Cargo.Steps(), "weight %v", tt.weight)
		got, err := lorry.DistanceReduction(100)
		require.NoError(t, err)
		assert.InDelta(t, 100*tt.steps*0.04, got, eps, "weight %v", tt.weight)
	}
	_, err = lorry.DistanceReduction(-0.5)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestSportCarHasNoPenalty(t *testing.T) {
	sport, err := NewSportCar(12, 60)
	require.NoError(t, err)
	for _, d := range []float64{0, 10, 720, 1e6} {
		got, err := sport.DistanceReduction(d)
		require.NoError(t, err)
		assert.Zero(t, got)
	}
	raw, err := sport.CurrentPossibleDistance()
	require.NoError(t, err)
	loaded, err := sport.CurrentPossibleDistanceWeightOn()
	require.NoError(t, err)
	assert.Equal(t, raw, loaded)
}

func TestPassengersSetDirectly(t *testing.T) {
	car, err := NewCar(2, 10, 50)
	require.NoError(t, err)
	// direct assignment bypasses the clamp
	car.Passengers.CurrentPassengers = 5
	got, err := car.DistanceReduction(100)
	require.NoError(t, err)
	assert.InDelta(t, 30.0, got, eps)
}
