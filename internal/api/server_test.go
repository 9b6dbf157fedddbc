package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/signalsfoundry/groundstation-registry/internal/logging"
	"github.com/signalsfoundry/groundstation-registry/registry"
)

func newTestHandler(t *testing.T) (*registry.BodyRegistry, http.Handler) {
	t.Helper()
	reg := registry.NewBodyRegistry()
	srv := NewServer(reg, logging.Noop())
	return reg, srv.Handler()
}

func doRequest(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

const stationDoc = `{
	"name": "Svalbard",
	"position": {"type": "geodetic", "elements": [458, 78.2297, 15.3975]},
	"motion": [
		{
			"type": "piecewise_constant",
			"displacements": [
				{"epoch": "2024-01-01T00:00:00Z", "offset": [1, 0, 0]},
				{"epoch": "2025-01-01T00:00:00Z", "offset": [2, 0, 0]}
			]
		}
	]
}`

func TestAddAndListStations(t *testing.T) {
	_, h := newTestHandler(t)

	rr := doRequest(t, h, http.MethodPost, "/v1/bodies/Earth/stations", stationDoc)
	if rr.Code != http.StatusCreated {
		t.Fatalf("POST status = %d, want 201: %s", rr.Code, rr.Body.String())
	}

	rr = doRequest(t, h, http.MethodGet, "/v1/bodies", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("GET bodies status = %d, want 200", rr.Code)
	}
	var bodies struct {
		Bodies []string `json:"bodies"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &bodies); err != nil {
		t.Fatalf("decode bodies: %v", err)
	}
	if len(bodies.Bodies) != 1 || bodies.Bodies[0] != "Earth" {
		t.Fatalf("bodies = %v, want [Earth]", bodies.Bodies)
	}

	rr = doRequest(t, h, http.MethodGet, "/v1/bodies/Earth/stations", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("GET stations status = %d, want 200", rr.Code)
	}
	var stations struct {
		Body     string `json:"body"`
		Stations []struct {
			Name   string   `json:"name"`
			Motion []string `json:"motion"`
		} `json:"stations"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &stations); err != nil {
		t.Fatalf("decode stations: %v", err)
	}
	if len(stations.Stations) != 1 || stations.Stations[0].Name != "Svalbard" {
		t.Fatalf("stations = %+v, want Svalbard", stations.Stations)
	}
	if len(stations.Stations[0].Motion) != 1 || stations.Stations[0].Motion[0] != "piecewise_constant" {
		t.Fatalf("motion kinds = %v, want [piecewise_constant]", stations.Stations[0].Motion)
	}
}

func TestAddStation_Conflicts(t *testing.T) {
	_, h := newTestHandler(t)

	if rr := doRequest(t, h, http.MethodPost, "/v1/bodies/Earth/stations", stationDoc); rr.Code != http.StatusCreated {
		t.Fatalf("first POST status = %d, want 201", rr.Code)
	}
	if rr := doRequest(t, h, http.MethodPost, "/v1/bodies/Earth/stations", stationDoc); rr.Code != http.StatusConflict {
		t.Fatalf("duplicate POST status = %d, want 409", rr.Code)
	}
}

func TestAddStation_BadPayload(t *testing.T) {
	_, h := newTestHandler(t)

	rr := doRequest(t, h, http.MethodPost, "/v1/bodies/Earth/stations", `{"name": ""}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", rr.Code, rr.Body.String())
	}
}

func TestStationPosition(t *testing.T) {
	_, h := newTestHandler(t)
	if rr := doRequest(t, h, http.MethodPost, "/v1/bodies/Earth/stations", stationDoc); rr.Code != http.StatusCreated {
		t.Fatalf("POST status = %d, want 201", rr.Code)
	}

	// Nominal position, no epoch: displacement stays zero.
	rr := doRequest(t, h, http.MethodGet, "/v1/bodies/Earth/stations/Svalbard/position", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("GET position status = %d, want 200: %s", rr.Code, rr.Body.String())
	}
	var nominal struct {
		Position     struct{ X, Y, Z float64 } `json:"position"`
		Displacement struct{ X, Y, Z float64 } `json:"displacement"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &nominal); err != nil {
		t.Fatalf("decode position: %v", err)
	}
	if nominal.Displacement.X != 0 {
		t.Fatalf("nominal displacement = %+v, want zero", nominal.Displacement)
	}

	// Mid-2024 falls in the first piecewise interval: 1 metre along x.
	rr = doRequest(t, h, http.MethodGet, "/v1/bodies/Earth/stations/Svalbard/position?epoch=2024-06-01T00:00:00Z", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("GET position with epoch status = %d, want 200: %s", rr.Code, rr.Body.String())
	}
	var displaced struct {
		Epoch        string                    `json:"epoch"`
		Position     struct{ X, Y, Z float64 } `json:"position"`
		Displacement struct{ X, Y, Z float64 } `json:"displacement"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &displaced); err != nil {
		t.Fatalf("decode position: %v", err)
	}
	if displaced.Displacement.X != 1 {
		t.Fatalf("displacement = %+v, want {X: 1}", displaced.Displacement)
	}
	if got := displaced.Position.X - nominal.Position.X; got != 1 {
		t.Fatalf("position delta = %v, want 1", got)
	}

	// Bad epoch parameter.
	rr = doRequest(t, h, http.MethodGet, "/v1/bodies/Earth/stations/Svalbard/position?epoch=yesterday", "")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("bad epoch status = %d, want 400", rr.Code)
	}

	// Unknown station.
	rr = doRequest(t, h, http.MethodGet, "/v1/bodies/Earth/stations/missing/position", "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("unknown station status = %d, want 404", rr.Code)
	}
}

func TestRemoveStation(t *testing.T) {
	reg, h := newTestHandler(t)
	if rr := doRequest(t, h, http.MethodPost, "/v1/bodies/Earth/stations", stationDoc); rr.Code != http.StatusCreated {
		t.Fatalf("POST status = %d, want 201", rr.Code)
	}

	rr := doRequest(t, h, http.MethodDelete, "/v1/bodies/Earth/stations/Svalbard", "")
	if rr.Code != http.StatusNoContent {
		t.Fatalf("DELETE status = %d, want 204: %s", rr.Code, rr.Body.String())
	}
	if bodies := reg.ListBodies(); len(bodies) != 0 {
		t.Fatalf("bodies after delete = %v, want empty", bodies)
	}

	rr = doRequest(t, h, http.MethodDelete, "/v1/bodies/Earth/stations/Svalbard", "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("second DELETE status = %d, want 404", rr.Code)
	}
}
