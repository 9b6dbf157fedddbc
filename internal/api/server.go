// Package api exposes the body registry over a small JSON HTTP surface:
// body and station listings, station registration and removal, and
// evaluated station positions.
package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/signalsfoundry/groundstation-registry/core"
	"github.com/signalsfoundry/groundstation-registry/internal/logging"
	"github.com/signalsfoundry/groundstation-registry/model"
	"github.com/signalsfoundry/groundstation-registry/registry"
)

// Server handles registry API requests.
type Server struct {
	reg *registry.BodyRegistry
	log logging.Logger
}

// NewServer constructs an API server over the given registry.
func NewServer(reg *registry.BodyRegistry, log logging.Logger) *Server {
	if log == nil {
		log = logging.Noop()
	}
	return &Server{reg: reg, log: log}
}

// Handler builds the routed handler, applying any extra middleware
// (e.g. the metrics middleware) inside the router so route patterns are
// available to it. The whole router is wrapped for tracing.
func (s *Server) Handler(middleware ...func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()
	for _, mw := range middleware {
		r.Use(mw)
	}
	r.Use(s.withRequestID)

	r.Get("/v1/bodies", s.listBodies)
	r.Route("/v1/bodies/{body}/stations", func(r chi.Router) {
		r.Get("/", s.listStations)
		r.Post("/", s.addStation)
		r.Delete("/{name}", s.removeStation)
		r.Get("/{name}/position", s.stationPosition)
	})

	return otelhttp.NewHandler(r, "station-registry-api")
}

// withRequestID annotates each request context with a request_id so
// handler logs correlate.
func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, _ := logging.EnsureRequestID(r.Context())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type bodiesPayload struct {
	Bodies []string `json:"bodies"`
}

type vectorPayload struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

type positionPayload struct {
	Type     string     `json:"type"`
	Elements [3]float64 `json:"elements"`
}

type stationPayload struct {
	Name     string          `json:"name"`
	Position positionPayload `json:"position"`
	Motion   []string        `json:"motion,omitempty"`
}

type stationsPayload struct {
	Body     string           `json:"body"`
	Stations []stationPayload `json:"stations"`
}

type positionResponse struct {
	Body         string        `json:"body"`
	Station      string        `json:"station"`
	Epoch        string        `json:"epoch,omitempty"`
	Position     vectorPayload `json:"position"`
	Displacement vectorPayload `json:"displacement"`
}

func (s *Server) listBodies(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, bodiesPayload{Bodies: s.reg.ListBodies()})
}

func (s *Server) listStations(w http.ResponseWriter, r *http.Request) {
	body := chi.URLParam(r, "body")
	stations, err := s.reg.ListStations(body)
	if err != nil {
		writeError(w, err)
		return
	}

	payload := stationsPayload{Body: body, Stations: make([]stationPayload, 0, len(stations))}
	for _, st := range stations {
		payload.Stations = append(payload.Stations, stationToPayload(st))
	}
	writeJSON(w, http.StatusOK, payload)
}

func (s *Server) addStation(w http.ResponseWriter, r *http.Request) {
	body := chi.URLParam(r, "body")

	settings, err := core.DecodeStationJSON(r.Body)
	if err != nil {
		writeError(w, fmt.Errorf("%w: %v", ErrBadRequest, err))
		return
	}
	if err := s.reg.AddStation(body, settings); err != nil {
		writeError(w, err)
		return
	}

	ctx, log := logging.WithRequestLogger(r.Context(), s.log)
	log.Info(ctx, "station registered",
		logging.String("body", body),
		logging.String("station", settings.Name),
	)
	writeJSON(w, http.StatusCreated, stationToPayload(settings))
}

func (s *Server) removeStation(w http.ResponseWriter, r *http.Request) {
	body := chi.URLParam(r, "body")
	name := chi.URLParam(r, "name")

	if err := s.reg.RemoveStation(body, name); err != nil {
		writeError(w, err)
		return
	}

	ctx, log := logging.WithRequestLogger(r.Context(), s.log)
	log.Info(ctx, "station removed",
		logging.String("body", body),
		logging.String("station", name),
	)
	w.WriteHeader(http.StatusNoContent)
}

// stationPosition resolves a station's body-fixed Cartesian position.
// With an epoch query parameter (RFC 3339) the evaluated displacement is
// included; without one, only the nominal position is returned.
func (s *Server) stationPosition(w http.ResponseWriter, r *http.Request) {
	body := chi.URLParam(r, "body")
	name := chi.URLParam(r, "name")

	settings, err := s.reg.GetStation(body, name)
	if err != nil {
		writeError(w, err)
		return
	}

	sm, err := core.NewStationModel(settings)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := positionResponse{Body: body, Station: name}
	pos := sm.NominalPosition()

	if raw := r.URL.Query().Get("epoch"); raw != "" {
		epoch, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			writeError(w, fmt.Errorf("%w: epoch: %v", ErrBadRequest, err))
			return
		}
		resp.Epoch = epoch.UTC().Format(time.RFC3339)
		resp.Displacement = vectorPayload(sm.DisplacementAt(epoch))
		pos = sm.PositionAt(epoch)
	}

	resp.Position = vectorPayload{X: pos.X, Y: pos.Y, Z: pos.Z}
	writeJSON(w, http.StatusOK, resp)
}

func stationToPayload(st model.GroundStationSettings) stationPayload {
	p := stationPayload{
		Name: st.Name,
		Position: positionPayload{
			Type:     st.Position.Type.String(),
			Elements: st.Position.Elements,
		},
	}
	for _, ms := range st.Motion {
		p.Motion = append(p.Motion, motionKind(ms))
	}
	return p
}

func motionKind(ms model.MotionSettings) string {
	switch ms.(type) {
	case model.LinearMotionSettings:
		return "linear"
	case model.PiecewiseConstantMotionSettings:
		return "piecewise_constant"
	case model.CustomMotionSettings:
		return "custom"
	default:
		return "unknown"
	}
}
