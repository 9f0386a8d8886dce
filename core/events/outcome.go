package events

import (
	"errors"

	"github.com/kilianp07/autorange/core/model"
)

// Outcome maps an operation error to a short label used in metrics and journals.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, model.ErrInvalidArgument):
		return "invalid_argument"
	case errors.Is(err, model.ErrInfeasibleConfiguration):
		return "infeasible_configuration"
	case errors.Is(err, model.ErrCapacityExceeded):
		return "capacity_exceeded"
	case errors.Is(err, model.ErrInvalidState):
		return "invalid_state"
	default:
		return "error"
	}
}
