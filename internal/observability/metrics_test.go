package observability

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
)

func TestMiddlewareRecordsMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := NewRegistryCollector(reg)
	if err != nil {
		t.Fatalf("NewRegistryCollector: %v", err)
	}

	r := chi.NewRouter()
	r.Use(collector.Middleware)
	r.Get("/v1/bodies/{body}/stations", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/bodies/Earth/stations", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if got := testutil.ToFloat64(collector.HTTPRequests.WithLabelValues("/v1/bodies/{body}/stations", "GET", "200")); got != 1 {
		t.Fatalf("station_registry_requests_total = %v, want 1", got)
	}

	if count := histogramSampleCount(t, reg, "station_registry_request_duration_seconds", map[string]string{
		"route":  "/v1/bodies/{body}/stations",
		"method": "GET",
	}); count != 1 {
		t.Fatalf("station_registry_request_duration_seconds sample_count = %d, want 1", count)
	}
}

func TestMiddlewareRecordsErrorStatus(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := NewRegistryCollector(reg)
	if err != nil {
		t.Fatalf("NewRegistryCollector: %v", err)
	}

	r := chi.NewRouter()
	r.Use(collector.Middleware)
	r.Get("/v1/bodies", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/bodies", nil)
	r.ServeHTTP(httptest.NewRecorder(), req)

	if got := testutil.ToFloat64(collector.HTTPRequests.WithLabelValues("/v1/bodies", "GET", "404")); got != 1 {
		t.Fatalf("station_registry_requests_total error label = %v, want 1", got)
	}
}

func TestMetricsHandlerExposesRegistryGauges(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := NewRegistryCollector(reg)
	if err != nil {
		t.Fatalf("NewRegistryCollector: %v", err)
	}
	collector.SetRegistryCounts(2, 17)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	collector.Handler().ServeHTTP(rr, req)

	body := rr.Body.String()
	if !strings.Contains(body, "station_registry_bodies 2") {
		t.Fatalf("metrics output missing body gauge:\n%s", body)
	}
	if !strings.Contains(body, "station_registry_stations 17") {
		t.Fatalf("metrics output missing station gauge:\n%s", body)
	}
}

func TestNewRegistryCollector_ReusesExistingCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewRegistryCollector(reg)
	if err != nil {
		t.Fatalf("first NewRegistryCollector: %v", err)
	}
	second, err := NewRegistryCollector(reg)
	if err != nil {
		t.Fatalf("second NewRegistryCollector: %v", err)
	}
	if first.HTTPRequests != second.HTTPRequests {
		t.Fatalf("expected the counter vec to be reused across collectors")
	}
}

func histogramSampleCount(t *testing.T, g prometheus.Gatherer, name string, labels map[string]string) uint64 {
	t.Helper()

	families, err := g.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	for _, fam := range families {
		if fam.GetName() != name {
			continue
		}
		for _, metric := range fam.GetMetric() {
			if !labelsMatch(metric.GetLabel(), labels) {
				continue
			}
			return metric.GetHistogram().GetSampleCount()
		}
	}
	return 0
}

func labelsMatch(pairs []*dto.LabelPair, want map[string]string) bool {
	if len(pairs) != len(want) {
		return false
	}
	for _, p := range pairs {
		if want[p.GetName()] != p.GetValue() {
			return false
		}
	}
	return true
}
