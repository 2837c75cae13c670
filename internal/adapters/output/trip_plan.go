package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"flight-route-service/internal/api/dto"
	"flight-route-service/internal/domain"
)

// EncodeTripPlan writes the plan as indented JSON in the same shape the
// HTTP API serves.
func EncodeTripPlan(w io.Writer, plan *domain.TripPlan) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(dto.NewTripPlanResponse(plan)); err != nil {
		return fmt.Errorf("encode trip plan: %w", err)
	}
	return nil
}

// WriteTripPlan replaces the file at path with the encoded plan.
func WriteTripPlan(path string, plan *domain.TripPlan) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write trip plan %q: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("write trip plan %q: close: %w", path, cerr)
		}
	}()

	return EncodeTripPlan(f, plan)
}
