package journal

import (
	"context"
	"time"
)

// Record captures one drive time estimate and its outcome.
type Record struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	VehicleID string    `json:"vehicle_id"`
	Variant   string    `json:"variant"`
	Liquid    float64   `json:"liquid"`
	Distance  float64   `json:"distance"`
	Speed     float64   `json:"speed"`
	Hours     float64   `json:"hours"`
	Outcome   string    `json:"outcome"`
	Error     string    `json:"error,omitempty"`
}

// Query defines filters for retrieving records. Zero values match everything.
type Query struct {
	Start     time.Time
	End       time.Time
	VehicleID string
	Outcome   string
}

// Match reports whether r passes the filters of q.
func (q Query) Match(r Record) bool {
	if !q.Start.IsZero() && r.Timestamp.Before(q.Start) {
		return false
	}
	if !q.End.IsZero() && r.Timestamp.After(q.End) {
		return false
	}
	if q.VehicleID != "" && r.VehicleID != q.VehicleID {
		return false
	}
	if q.Outcome != "" && r.Outcome != q.Outcome {
		return false
	}
	return true
}

// Store persists Records and supports querying.
type Store interface {
	Append(ctx context.Context, rec Record) error
	Query(ctx context.Context, q Query) ([]Record, error)
	Close() error
}
