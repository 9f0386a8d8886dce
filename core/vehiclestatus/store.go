package vehiclestatus

import (
	"sort"
	"sync"

	"github.com/kilianp07/autorange/core/model"
)

// Range groups the three range figures of a vehicle in km.
type Range struct {
	Maximum float64 `json:"maximum_km"`
	Current float64 `json:"current_km"`
	Loaded  float64 `json:"loaded_km"`
}

// Status captures the current known state of a vehicle.
type Status struct {
	VehicleID          string   `json:"vehicle_id"`
	Variant            string   `json:"variant"`
	AverageConsumption float64  `json:"average_consumption"`
	LiquidAmount       float64  `json:"liquid_amount"`
	MaxLiquidAmount    float64  `json:"max_liquid_amount"`
	Speed              float64  `json:"speed"`
	Passengers         *int     `json:"passengers,omitempty"`
	MaxPassengers      *int     `json:"max_passengers,omitempty"`
	Weight             *float64 `json:"weight,omitempty"`
	MaxWeight          *int     `json:"max_weight,omitempty"`
	Range              Range    `json:"range"`
}

// Snapshot builds the Status of v. Range figures that cannot be computed
// from the current state are reported as zero.
func Snapshot(id string, v *model.Vehicle) Status {
	st := Status{
		VehicleID:          id,
		Variant:            v.Variant().String(),
		AverageConsumption: v.AverageConsumption(),
		LiquidAmount:       v.CurrentLiquidAmount,
		MaxLiquidAmount:    v.MaxLiquidAmount(),
		Speed:              v.Speed,
		Range:              Range{Maximum: v.MaximumPossibleDistance()},
	}
	if p := v.Passengers; p != nil {
		cur, limit := p.CurrentPassengers, p.MaxPassengers()
		st.Passengers, st.MaxPassengers = &cur, &limit
	}
	if c := v.Cargo; c != nil {
		w, limit := c.Weight, c.MaxWeight()
		st.Weight, st.MaxWeight = &w, &limit
	}
	if d, err := v.CurrentPossibleDistance(); err == nil {
		st.Range.Current = d
	}
	if d, err := v.CurrentPossibleDistanceWeightOn(); err == nil {
		st.Range.Loaded = d
	}
	return st
}

// Filter restricts listings. Empty fields match everything.
type Filter struct {
	Variant string
}

// Match reports whether st satisfies the filter.
func (f Filter) Match(st Status) bool {
	return f.Variant == "" || st.Variant == f.Variant
}

// Store keeps the last published status of each vehicle.
type Store interface {
	Set(Status)
	Get(id string) (Status, bool)
	List(Filter) []Status
}

type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]Status
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: map[string]Status{}}
}

func (s *MemoryStore) Set(st Status) {
	s.mu.Lock()
	s.data[st.VehicleID] = st
	s.mu.Unlock()
}

func (s *MemoryStore) Get(id string) (Status, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.data[id]
	return st, ok
}

func (s *MemoryStore) List(f Filter) []Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res := make([]Status, 0, len(s.data))
	for _, st := range s.data {
		if !f.Match(st) {
			continue
		}
		res = append(res, st)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].VehicleID < res[j].VehicleID })
	return res
}
