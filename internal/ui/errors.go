package ui

import (
	"context"
	"errors"
	"fmt"

	"github.com/five82/crumb/internal/mealdb"
)

// describeError turns a request error into a short reason for the failure
// panel.
func describeError(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, context.Canceled) {
		return "Request cancelled"
	}
	if errors.Is(err, mealdb.ErrEmptyCategory) {
		return "No category selected"
	}
	if errors.Is(err, mealdb.ErrEmptyID) {
		return "Recipe has no identifier"
	}

	var netErr *mealdb.NetworkError
	if errors.As(err, &netErr) {
		switch {
		case netErr.Timeout():
			return "Request timed out"
		case netErr.StatusCode > 0:
			return fmt.Sprintf("Server returned %d", netErr.StatusCode)
		default:
			return "Could not reach the recipe service"
		}
	}

	var decErr *mealdb.DecodeError
	if errors.As(err, &decErr) {
		return "Unexpected response from the recipe service"
	}

	return err.Error()
}
