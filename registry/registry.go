// Package registry holds the per-body ground-station settings lists
// that an environment/simulation layer later consumes.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/signalsfoundry/groundstation-registry/model"
)

var (
	// ErrInvalidBody indicates a missing or malformed body name.
	ErrInvalidBody = errors.New("invalid body")
	// ErrBodyNotFound indicates the body has no registered stations.
	ErrBodyNotFound = errors.New("body not found")
	// ErrStationExists indicates a station with the same name is already
	// registered for the body.
	ErrStationExists = errors.New("station already exists")
	// ErrStationNotFound indicates the named station is not registered.
	ErrStationNotFound = errors.New("station not found")
)

// EventType indicates what kind of change happened in the registry.
type EventType int

const (
	EventStationAdded EventType = iota
	EventStationRemoved
)

// Event is emitted to subscribers on registry changes.
type Event struct {
	Type    EventType
	Body    string
	Station model.GroundStationSettings
}

// MetricsRecorder receives registry size updates after every mutation.
type MetricsRecorder interface {
	SetRegistryCounts(bodies, stations int)
}

// BodyRegistry is an in-memory, thread-safe store of ground-station
// settings keyed by body name. A body exists exactly while it has at
// least one registered station.
type BodyRegistry struct {
	mu sync.RWMutex

	bodies map[string][]model.GroundStationSettings

	subs    []func(Event)
	metrics MetricsRecorder
}

// Option configures a BodyRegistry.
type Option func(*BodyRegistry)

// WithMetricsRecorder wires a recorder that tracks body/station counts.
func WithMetricsRecorder(rec MetricsRecorder) Option {
	return func(r *BodyRegistry) {
		r.metrics = rec
	}
}

// NewBodyRegistry constructs an empty registry.
func NewBodyRegistry(opts ...Option) *BodyRegistry {
	r := &BodyRegistry{
		bodies: make(map[string][]model.GroundStationSettings),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// AddStation appends station settings to a body's list. Station names
// are unique per body.
func (r *BodyRegistry) AddStation(body string, s model.GroundStationSettings) error {
	if strings.TrimSpace(body) == "" {
		return fmt.Errorf("%w: body name is required", ErrInvalidBody)
	}

	r.mu.Lock()
	for _, existing := range r.bodies[body] {
		if existing.Name == s.Name {
			r.mu.Unlock()
			return fmt.Errorf("%w: %q on body %q", ErrStationExists, s.Name, body)
		}
	}
	r.bodies[body] = append(r.bodies[body], s)
	event := Event{Type: EventStationAdded, Body: body, Station: s}
	subs := append([]func(Event){}, r.subs...)
	r.recordCountsLocked()
	r.mu.Unlock()

	// Notify subscribers outside the lock to avoid deadlocks.
	for _, sub := range subs {
		sub(event)
	}
	return nil
}

// GetStation returns the named station settings for a body.
func (r *BodyRegistry) GetStation(body, name string) (model.GroundStationSettings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stations, ok := r.bodies[body]
	if !ok {
		return model.GroundStationSettings{}, fmt.Errorf("%w: %q", ErrBodyNotFound, body)
	}
	for _, s := range stations {
		if s.Name == name {
			return s, nil
		}
	}
	return model.GroundStationSettings{}, fmt.Errorf("%w: %q on body %q", ErrStationNotFound, name, body)
}

// ListBodies returns the sorted names of all bodies with stations.
func (r *BodyRegistry) ListBodies() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res := make([]string, 0, len(r.bodies))
	for body := range r.bodies {
		res = append(res, body)
	}
	sort.Strings(res)
	return res
}

// ListStations returns a snapshot of a body's station list in
// registration order.
func (r *BodyRegistry) ListStations(body string) ([]model.GroundStationSettings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stations, ok := r.bodies[body]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrBodyNotFound, body)
	}
	return append([]model.GroundStationSettings{}, stations...), nil
}

// RemoveStation removes the named station. Removing a body's last
// station removes the body.
func (r *BodyRegistry) RemoveStation(body, name string) error {
	r.mu.Lock()
	stations, ok := r.bodies[body]
	if !ok {
		r.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrBodyNotFound, body)
	}

	idx := -1
	for i, s := range stations {
		if s.Name == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		r.mu.Unlock()
		return fmt.Errorf("%w: %q on body %q", ErrStationNotFound, name, body)
	}

	removed := stations[idx]
	stations = append(stations[:idx], stations[idx+1:]...)
	if len(stations) == 0 {
		delete(r.bodies, body)
	} else {
		r.bodies[body] = stations
	}

	event := Event{Type: EventStationRemoved, Body: body, Station: removed}
	subs := append([]func(Event){}, r.subs...)
	r.recordCountsLocked()
	r.mu.Unlock()

	for _, sub := range subs {
		sub(event)
	}
	return nil
}

// Subscribe registers a callback for registry events. It returns an
// unsubscribe function.
func (r *BodyRegistry) Subscribe(fn func(Event)) (unsubscribe func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subs = append(r.subs, fn)
	idx := len(r.subs) - 1

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if idx < 0 || idx >= len(r.subs) {
			return
		}
		r.subs = append(r.subs[:idx], r.subs[idx+1:]...)
		idx = -1
	}
}

// recordCountsLocked pushes current sizes to the metrics recorder.
// Callers must hold mu.
func (r *BodyRegistry) recordCountsLocked() {
	if r.metrics == nil {
		return
	}
	stations := 0
	for _, list := range r.bodies {
		stations += len(list)
	}
	r.metrics.SetRegistryCounts(len(r.bodies), stations)
}
