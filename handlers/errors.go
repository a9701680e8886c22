package handlers

import (
	"errors"
	"net/http"

	"github.com/Ahmed2003-Rav/Egypt-Map/data"
	"github.com/Ahmed2003-Rav/Egypt-Map/graphs"
	"github.com/Ahmed2003-Rav/Egypt-Map/routing"
	"github.com/Ahmed2003-Rav/Egypt-Map/utils"
)

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, utils.ErrInvalidInput),
		errors.Is(err, routing.ErrMissingEndpoint),
		errors.Is(err, routing.ErrSameEndpoint),
		errors.Is(err, routing.ErrNotMedical):
		return http.StatusBadRequest
	case errors.Is(err, data.ErrUnknownLocation),
		errors.Is(err, data.ErrUnknownRoad),
		errors.Is(err, graphs.ErrUnknownNode),
		errors.Is(err, graphs.ErrNoPath):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
