package fleet

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/kilianp07/autorange/core/vehiclestatus"
)

// Summary aggregates the loaded range of a set of vehicles in km.
type Summary struct {
	Vehicles  int            `json:"vehicles"`
	Total     float64        `json:"total_km"`
	Mean      float64        `json:"mean_km"`
	StdDev    float64        `json:"std_dev_km"`
	Min       float64        `json:"min_km"`
	Max       float64        `json:"max_km"`
	ByVariant map[string]int `json:"by_variant"`
	// Fill is the liquid held by the fleet as a share of its capacity.
	Fill float64 `json:"fill"`
}

// Summarize computes range statistics over statuses.
func Summarize(statuses []vehiclestatus.Status) Summary {
	s := Summary{Vehicles: len(statuses), ByVariant: map[string]int{}}
	if len(statuses) == 0 {
		return s
	}
	loaded := make([]float64, len(statuses))
	liquid := make([]float64, len(statuses))
	capacity := make([]float64, len(statuses))
	for i, st := range statuses {
		loaded[i] = st.Range.Loaded
		liquid[i] = st.LiquidAmount
		capacity[i] = st.MaxLiquidAmount
		s.ByVariant[st.Variant]++
	}
	s.Total = floats.Sum(loaded)
	s.Min = floats.Min(loaded)
	s.Max = floats.Max(loaded)
	s.Mean, s.StdDev = stat.PopMeanStdDev(loaded, nil)
	if c := floats.Sum(capacity); c > 0 {
		s.Fill = floats.Sum(liquid) / c
	}
	return s
}
