package core

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/signalsfoundry/groundstation-registry/model"
	"github.com/signalsfoundry/groundstation-registry/registry"
	"github.com/signalsfoundry/groundstation-registry/station"
)

// CatalogFormat selects the encoding of a station catalog document.
type CatalogFormat int

const (
	FormatJSON CatalogFormat = iota
	FormatYAML
)

// CatalogSummary is a small summary of what was loaded from a catalog.
// It's mainly useful for logging from main().
type CatalogSummary struct {
	BodyNames    []string
	StationCount int
}

// internal document shapes – kept unexported so we're free to evolve them.
type stationCatalogDoc struct {
	Bodies []bodyDoc `json:"bodies" yaml:"bodies"`
}

type bodyDoc struct {
	Name     string       `json:"name" yaml:"name"`
	Stations []stationDoc `json:"stations" yaml:"stations"`
}

type stationDoc struct {
	Name     string      `json:"name" yaml:"name"`
	Position positionDoc `json:"position" yaml:"position"`
	Motion   []motionDoc `json:"motion,omitempty" yaml:"motion,omitempty"`
}

type positionDoc struct {
	Type     string     `json:"type" yaml:"type"` // "cartesian" | "spherical" | "geodetic"
	Elements [3]float64 `json:"elements" yaml:"elements"`
}

type motionDoc struct {
	Type string `json:"type" yaml:"type"` // "linear" | "piecewise_constant"

	// Linear fields.
	Velocity       *[3]float64 `json:"velocity,omitempty" yaml:"velocity,omitempty"`
	ReferenceEpoch string      `json:"reference_epoch,omitempty" yaml:"reference_epoch,omitempty"`

	// Piecewise-constant fields. Custom motion carries a function and is
	// therefore not expressible in catalog files.
	Displacements []displacementDoc `json:"displacements,omitempty" yaml:"displacements,omitempty"`
}

type displacementDoc struct {
	Epoch  string     `json:"epoch" yaml:"epoch"` // RFC 3339
	Offset [3]float64 `json:"offset" yaml:"offset"`
}

// LoadStationCatalog reads a station catalog from r and registers every
// station with the registry. It fails on the first structural or
// validation error; stations registered before the failure stay in.
func LoadStationCatalog(reg *registry.BodyRegistry, r io.Reader, format CatalogFormat) (*CatalogSummary, error) {
	if reg == nil {
		return nil, fmt.Errorf("LoadStationCatalog: registry is nil")
	}

	var doc stationCatalogDoc
	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&doc); err != nil {
			return nil, fmt.Errorf("LoadStationCatalog: decode failed: %w", err)
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
			return nil, fmt.Errorf("LoadStationCatalog: decode failed: %w", err)
		}
	default:
		return nil, fmt.Errorf("LoadStationCatalog: unknown catalog format %d", format)
	}

	summary := &CatalogSummary{
		BodyNames: make([]string, 0, len(doc.Bodies)),
	}

	for _, body := range doc.Bodies {
		if strings.TrimSpace(body.Name) == "" {
			return nil, fmt.Errorf("LoadStationCatalog: body with empty name")
		}
		for _, sd := range body.Stations {
			settings, err := settingsFromDoc(sd)
			if err != nil {
				return nil, fmt.Errorf("LoadStationCatalog: body %q: %w", body.Name, err)
			}
			if err := reg.AddStation(body.Name, settings); err != nil {
				return nil, fmt.Errorf("LoadStationCatalog: body %q: %w", body.Name, err)
			}
			summary.StationCount++
		}
		summary.BodyNames = append(summary.BodyNames, body.Name)
	}

	return summary, nil
}

// LoadStationCatalogFile loads a catalog from disk, choosing the format
// by file extension (.yaml/.yml for YAML, JSON otherwise).
func LoadStationCatalogFile(reg *registry.BodyRegistry, path string) (*CatalogSummary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("LoadStationCatalogFile: %w", err)
	}
	defer f.Close()

	format := FormatJSON
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		format = FormatYAML
	}
	return LoadStationCatalog(reg, f, format)
}

// DecodeStationJSON parses a single station document, e.g. an HTTP
// request body, into validated ground-station settings.
func DecodeStationJSON(r io.Reader) (model.GroundStationSettings, error) {
	var sd stationDoc
	if err := json.NewDecoder(r).Decode(&sd); err != nil {
		return model.GroundStationSettings{}, fmt.Errorf("DecodeStationJSON: %w", err)
	}
	return settingsFromDoc(sd)
}

func settingsFromDoc(sd stationDoc) (model.GroundStationSettings, error) {
	posType, err := positionTypeFromString(sd.Position.Type)
	if err != nil {
		return model.GroundStationSettings{}, fmt.Errorf("station %q: %w", sd.Name, err)
	}
	pos := model.Position{Type: posType, Elements: sd.Position.Elements}

	motion := make([]model.MotionSettings, 0, len(sd.Motion))
	for i, md := range sd.Motion {
		ms, err := motionFromDoc(md)
		if err != nil {
			return model.GroundStationSettings{}, fmt.Errorf("station %q: motion[%d]: %w", sd.Name, i, err)
		}
		motion = append(motion, ms)
	}

	return station.New(sd.Name, pos, motion...)
}

func motionFromDoc(md motionDoc) (model.MotionSettings, error) {
	switch strings.ToLower(strings.TrimSpace(md.Type)) {
	case "linear":
		if md.Velocity == nil {
			return nil, fmt.Errorf("linear motion needs a velocity")
		}
		ref, err := parseEpoch(md.ReferenceEpoch)
		if err != nil {
			return nil, fmt.Errorf("linear motion reference_epoch: %w", err)
		}
		return station.LinearMotion(model.Displacement{
			X: md.Velocity[0],
			Y: md.Velocity[1],
			Z: md.Velocity[2],
		}, ref)

	case "piecewise_constant":
		displacements := make(map[time.Time]model.Displacement, len(md.Displacements))
		for _, dd := range md.Displacements {
			epoch, err := parseEpoch(dd.Epoch)
			if err != nil {
				return nil, fmt.Errorf("piecewise-constant epoch: %w", err)
			}
			displacements[epoch] = model.Displacement{
				X: dd.Offset[0],
				Y: dd.Offset[1],
				Z: dd.Offset[2],
			}
		}
		return station.PiecewiseConstantMotion(displacements)

	default:
		return nil, fmt.Errorf("unknown motion type %q", md.Type)
	}
}

func positionTypeFromString(s string) (model.PositionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cartesian":
		return model.PositionCartesian, nil
	case "spherical":
		return model.PositionSpherical, nil
	case "geodetic":
		return model.PositionGeodetic, nil
	default:
		return 0, fmt.Errorf("unknown position type %q", s)
	}
}

func parseEpoch(s string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return time.Time{}, fmt.Errorf("epoch is required")
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
