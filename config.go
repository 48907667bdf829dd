package main

import (
	"os"

	"golang.org/x/exp/slog"
	"gopkg.in/yaml.v3"

	. "github.com/guibar/go-intercept/util"
)

//**********************************************************
// config
//**********************************************************

func ReadConfig(file string) Config {
	slog.Info("Reading config file")
	config := DefaultConfig()
	data, err := os.ReadFile(file)
	if err != nil {
		slog.Error("failed to read config file: " + err.Error())
		panic(err)
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		slog.Error("failed to parse config file: " + err.Error())
		panic(err)
	}
	return config
}

func DefaultConfig() Config {
	config := Config{}
	config.Server.Port = 5004
	config.Zones.Dir = "./zones"
	config.Zones.SnapTolerance = 500
	config.Planner.Scorer = "uniform"
	config.Planner.SafetyBuffer = 0
	config.Planner.MatrixWorkers = 4
	return config
}

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Zones struct {
		Dir string `yaml:"dir"`
		// Default names the zone used when a request omits one.
		Default string `yaml:"default"`
		// SnapTolerance is the maximum snap distance in meters.
		SnapTolerance float64 `yaml:"snap-tolerance"`
	} `yaml:"zones"`
	Planner struct {
		Scorer string `yaml:"scorer"`
		// SafetyBuffer widens the suspect arrival bound (seconds).
		SafetyBuffer  float64 `yaml:"safety-buffer"`
		MatrixWorkers int     `yaml:"matrix-workers"`
		// MaxSuspectSpeed in m/s; 0 disables the proximity filter.
		MaxSuspectSpeed float64 `yaml:"max-suspect-speed"`
	} `yaml:"planner"`
	Build struct {
		Zones Dict[string, BuildOptions] `yaml:"zones"`
	} `yaml:"build"`
}

type BuildOptions struct {
	OSM      string `yaml:"osm"`
	Boundary string `yaml:"boundary"`
}
