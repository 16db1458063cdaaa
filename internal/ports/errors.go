package ports

import (
	"errors"
	"fmt"
)

// Returned (wrapped) when a caller hands the engine unusable input, such
// as a route request over fewer than two stops. Check with errors.Is.
var ErrInvalidInput = errors.New("invalid input")

// Represents a non-success, non-zero-results status from the external
// provider (quota, malformed request, outage). The affected day's route
// computation is abandoned; the itinerary-wide computation continues.
// Check with errors.As.
type ProviderError struct {
	Operation string
	Status    string
	Message   string
}

func (e *ProviderError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: provider status %s: %s", e.Operation, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: provider status %s", e.Operation, e.Status)
}
