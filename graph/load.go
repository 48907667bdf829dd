package graph

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"golang.org/x/exp/slices"
	"golang.org/x/exp/slog"

	. "github.com/guibar/go-intercept/util"
)

var (
	// ErrDataUnavailable marks a zone with no prepared network file.
	// Not retryable without an offline preparation run.
	ErrDataUnavailable = errors.New("no prepared network for zone")

	// ErrOutOfBounds marks a coordinate that cannot be snapped to the
	// network within the snap tolerance.
	ErrOutOfBounds = errors.New("coordinate out of bounds")
)

//*******************************************
// zone file
//*******************************************

// ZoneFile is the on-disk format produced by the offline preparation
// step (one file per zone, versioned externally).
type ZoneFile struct {
	Zone     string            `json:"zone"`
	Nodes    []Node            `json:"nodes"`
	Edges    []Edge            `json:"edges"`
	Boundary *geojson.Geometry `json:"boundary,omitempty"`
}

// Load reads the prepared network file of a zone and builds the
// immutable RoadNetwork. Fails with ErrDataUnavailable if the zone has
// not been prepared.
func Load(dir string, zone string, tolerance float64) (*RoadNetwork, error) {
	file := filepath.Join(dir, zone+".json")
	zf, err := ReadJSONFromFile[ZoneFile](file)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("zone %q: %w", zone, ErrDataUnavailable)
		}
		return nil, fmt.Errorf("zone %q: reading %s: %w", zone, file, err)
	}
	boundary := orb.Polygon{}
	if zf.Boundary != nil {
		if poly, ok := zf.Boundary.Geometry().(orb.Polygon); ok {
			boundary = poly
		}
	}
	slog.Info(fmt.Sprintf("loaded zone %s: %d nodes, %d edges", zone, len(zf.Nodes), len(zf.Edges)))
	return New(zone, zf.Nodes, zf.Edges, boundary, tolerance), nil
}

// ListZones returns the names of all prepared zone files in dir.
func ListZones(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	zones := NewList[string](len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".json") {
			zones.Add(strings.TrimSuffix(name, ".json"))
		}
	}
	slices.Sort(zones)
	return zones
}
