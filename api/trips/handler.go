package trips

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/kilianp07/autorange/core/journal"
)

// NewHandler returns an HTTP handler exposing the trip journal via GET /api/trips.
// Requests must include an Authorization header with "Bearer <token>" when token is non-empty.
func NewHandler(store journal.Store, token string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if token != "" {
			auth := r.Header.Get("Authorization")
			if auth != "Bearer "+token {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
		}
		q := journal.Query{
			VehicleID: r.URL.Query().Get("vehicle_id"),
			Outcome:   r.URL.Query().Get("outcome"),
		}
		var err error
		if q.Start, err = parseTime(r, "start"); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if q.End, err = parseTime(r, "end"); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		records, err := store.Query(r.Context(), q)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if records == nil {
			records = []journal.Record{}
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(records); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})
}

// parseTime reads an optional RFC 3339 query parameter.
func parseTime(r *http.Request, key string) (time.Time, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s: %w", key, err)
	}
	return t, nil
}
