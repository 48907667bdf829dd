package main

import (
	"sync"

	"github.com/guibar/go-intercept/escape"
	"github.com/guibar/go-intercept/graph"
	"github.com/guibar/go-intercept/planner"
	. "github.com/guibar/go-intercept/util"
)

// ZoneManager owns the prepared zones and hands out one planner per
// zone. Networks are loaded lazily on first use behind a per-zone
// barrier, so a slow load of one zone never blocks requests for
// another; once loaded they are kept for the lifetime of the process.
type ZoneManager struct {
	config Config
	mu     sync.Mutex
	zones  Dict[string, *zone_entry]
}

type zone_entry struct {
	once    sync.Once
	planner *planner.Planner
	err     error
}

func NewZoneManager(config Config) *ZoneManager {
	return &ZoneManager{
		config: config,
		zones:  NewDict[string, *zone_entry](10),
	}
}

// ListZones returns the names of the prepared zones.
func (self *ZoneManager) ListZones() []string {
	return graph.ListZones(self.config.Zones.Dir)
}

// DefaultZone resolves an empty zone name to the configured default.
func (self *ZoneManager) DefaultZone(zone string) string {
	if zone == "" {
		return self.config.Zones.Default
	}
	return zone
}

// GetPlanner returns the planner of a zone, loading the network on
// first use. Fails with graph.ErrDataUnavailable for unprepared zones;
// a failed load is not cached, so the zone can be retried once its
// file exists.
func (self *ZoneManager) GetPlanner(zone string) (*planner.Planner, error) {
	self.mu.Lock()
	entry := self.zones.Get(zone)
	if entry == nil {
		entry = &zone_entry{}
		self.zones.Set(zone, entry)
	}
	self.mu.Unlock()

	entry.once.Do(func() {
		network, err := graph.Load(self.config.Zones.Dir, zone, self.config.Zones.SnapTolerance)
		if err != nil {
			entry.err = err
			return
		}
		entry.planner = planner.NewPlanner(network, planner.Options{
			Scorer:          escape.ScorerFromString(self.config.Planner.Scorer),
			SafetyBuffer:    self.config.Planner.SafetyBuffer,
			MatrixWorkers:   self.config.Planner.MatrixWorkers,
			MaxSuspectSpeed: self.config.Planner.MaxSuspectSpeed,
		})
	})
	if entry.err != nil {
		self.mu.Lock()
		if self.zones.Get(zone) == entry {
			self.zones.Delete(zone)
		}
		self.mu.Unlock()
		return nil, entry.err
	}
	return entry.planner, nil
}

// GetNetwork returns the loaded network of a zone.
func (self *ZoneManager) GetNetwork(zone string) (*graph.RoadNetwork, error) {
	p, err := self.GetPlanner(zone)
	if err != nil {
		return nil, err
	}
	return p.Network(), nil
}
