package utils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Ahmed2003-Rav/Egypt-Map/models"
)

// ErrInvalidInput marks client values that cannot be parsed.
var ErrInvalidInput = errors.New("invalid input")

// ParseTimeOfDay maps client input to a period. An empty value means morning.
func ParseTimeOfDay(input string) (models.TimeOfDay, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "", "morning":
		return models.Morning, nil
	case "afternoon":
		return models.Afternoon, nil
	case "evening":
		return models.Evening, nil
	case "night":
		return models.Night, nil
	default:
		return "", fmt.Errorf("%w: unknown time of day %q", ErrInvalidInput, input)
	}
}

// ParseAlgorithm accepts "prim" (default) or "kruskal".
func ParseAlgorithm(input string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "", "prim":
		return "prim", nil
	case "kruskal":
		return "kruskal", nil
	default:
		return "", fmt.Errorf("%w: unknown algorithm %q", ErrInvalidInput, input)
	}
}
