package vehicles

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/kilianp07/autorange/core/events"
	"github.com/kilianp07/autorange/core/fleet"
	"github.com/kilianp07/autorange/core/model"
	coremon "github.com/kilianp07/autorange/core/monitoring"
	vehiclestatus "github.com/kilianp07/autorange/core/vehiclestatus"
)

// Fleet is the set of garage operations exposed over HTTP.
type Fleet interface {
	List(f vehiclestatus.Filter) []vehiclestatus.Status
	Get(id string) (vehiclestatus.Status, error)
	Refuel(id string, liters float64) (vehiclestatus.Status, float64, error)
	Board(id string, count int) (vehiclestatus.Status, int, error)
	SetWeight(id string, kg float64) (vehiclestatus.Status, error)
	SetSpeed(id string, kmh float64) (vehiclestatus.Status, error)
	DriveTime(id string, liquid, distance float64) (fleet.TripEstimate, error)
}

// NewHandler returns an HTTP handler exposing the fleet under /api/vehicles.
// The fleet summary lives at /api/fleet/summary so it never shadows a vehicle id.
func NewHandler(f Fleet) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/vehicles", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, f.List(vehiclestatus.Filter{Variant: r.URL.Query().Get("variant")}))
	})
	mux.HandleFunc("GET /api/fleet/summary", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, fleet.Summarize(f.List(vehiclestatus.Filter{Variant: r.URL.Query().Get("variant")})))
	})
	mux.HandleFunc("GET /api/vehicles/{id}", func(w http.ResponseWriter, r *http.Request) {
		st, err := f.Get(r.PathValue("id"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, st)
	})
	mux.HandleFunc("POST /api/vehicles/{id}/refuel", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Liters float64 `json:"liters"`
		}
		if !decode(w, r, &req) {
			return
		}
		st, added, err := f.Refuel(r.PathValue("id"), req.Liters)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, struct {
			Added  float64              `json:"added"`
			Status vehiclestatus.Status `json:"status"`
		}{added, st})
	})
	mux.HandleFunc("POST /api/vehicles/{id}/passengers", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Count int `json:"count"`
		}
		if !decode(w, r, &req) {
			return
		}
		st, boarded, err := f.Board(r.PathValue("id"), req.Count)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, struct {
			Boarded int                  `json:"boarded"`
			Status  vehiclestatus.Status `json:"status"`
		}{boarded, st})
	})
	mux.HandleFunc("PUT /api/vehicles/{id}/weight", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Kg float64 `json:"kg"`
		}
		if !decode(w, r, &req) {
			return
		}
		st, err := f.SetWeight(r.PathValue("id"), req.Kg)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, st)
	})
	mux.HandleFunc("PUT /api/vehicles/{id}/speed", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Kmh float64 `json:"kmh"`
		}
		if !decode(w, r, &req) {
			return
		}
		st, err := f.SetSpeed(r.PathValue("id"), req.Kmh)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, st)
	})
	mux.HandleFunc("POST /api/vehicles/{id}/drive-time", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Liquid   float64 `json:"liquid"`
			Distance float64 `json:"distance"`
		}
		if !decode(w, r, &req) {
			return
		}
		est, err := f.DriveTime(r.PathValue("id"), req.Liquid, req.Distance)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, est)
	})
	return mux
}

// StatusCode maps garage and model errors to HTTP status codes.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, fleet.ErrUnknownVehicle):
		return http.StatusNotFound
	case errors.Is(err, fleet.ErrDuplicateVehicle):
		return http.StatusConflict
	case errors.Is(err, model.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrInfeasibleConfiguration):
		return http.StatusUnprocessableEntity
	case errors.Is(err, model.ErrCapacityExceeded), errors.Is(err, model.ErrInvalidState):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

type errorBody struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := StatusCode(err)
	kind := events.Outcome(err)
	if errors.Is(err, fleet.ErrUnknownVehicle) {
		kind = "unknown_vehicle"
	}
	if code >= http.StatusInternalServerError {
		coremon.CaptureException(err, map[string]string{"module": "api", "path": r.URL.Path})
	}
	writeJSON(w, code, errorBody{Error: err.Error(), Kind: kind})
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid body: " + err.Error(), Kind: "invalid_argument"})
		return false
	}
	return true
}

// writeJSON encodes v before writing the status so values JSON cannot
// represent, such as an infinite drive time, end up as a 500.
func writeJSON(w http.ResponseWriter, code int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		coremon.CaptureException(err, map[string]string{"module": "api"})
		body, _ = json.Marshal(errorBody{Error: "encode response: " + err.Error(), Kind: "error"})
		code = http.StatusInternalServerError
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(append(body, '\n'))
}
