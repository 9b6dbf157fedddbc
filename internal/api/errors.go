package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/signalsfoundry/groundstation-registry/registry"
	"github.com/signalsfoundry/groundstation-registry/station"
)

// ErrBadRequest is a package-level sentinel for malformed request
// payloads and parameters.
var ErrBadRequest = errors.New("bad request")

type errorPayload struct {
	Error string `json:"error"`
}

// statusFromError maps registry and validation errors onto HTTP status
// codes for the API surface.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, registry.ErrBodyNotFound),
		errors.Is(err, registry.ErrStationNotFound):
		return http.StatusNotFound

	case errors.Is(err, registry.ErrStationExists):
		return http.StatusConflict

	case errors.Is(err, ErrBadRequest),
		errors.Is(err, registry.ErrInvalidBody),
		errors.Is(err, station.ErrInvalidStation),
		errors.Is(err, station.ErrInvalidMotion):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFromError(err), errorPayload{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
