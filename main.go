package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"golang.org/x/exp/slog"

	"github.com/guibar/go-intercept/parser"
)

func main() {
	config_file := flag.String("config", "./config.yaml", "config file")
	prepare := flag.Bool("prepare", false, "build the zone files and exit")
	flag.Parse()

	logger := slog.New(NewLogHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	config := ReadConfig(*config_file)

	if *prepare {
		run_prepare(config)
		return
	}

	manager := NewZoneManager(config)

	app := http.NewServeMux()
	MapGet(app, "/v0/zones", HandleZonesRequest(manager))
	MapGet(app, "/v0/zone", HandleZoneRequest(manager))
	MapPost(app, "/v0/plan", HandlePlanRequest(manager))
	MapGet(app, "/v0/vehicles/random", HandleRandomVehiclesRequest(manager))
	app.Handle("/metrics", metrics_handler())

	addr := fmt.Sprintf(":%d", config.Server.Port)
	slog.Info("listening on " + addr)
	if err := http.ListenAndServe(addr, app); err != nil {
		slog.Error("server stopped: " + err.Error())
		os.Exit(1)
	}
}

// run_prepare builds the prepared network file of every configured zone.
func run_prepare(config Config) {
	if config.Build.Zones.Length() == 0 {
		slog.Error("no zones configured under build.zones")
		os.Exit(1)
	}
	if err := os.MkdirAll(config.Zones.Dir, 0755); err != nil {
		slog.Error("failed to create zones dir: " + err.Error())
		os.Exit(1)
	}
	for name, options := range config.Build.Zones {
		slog.Info("preparing zone " + name)
		if err := parser.PrepareZone(options.OSM, options.Boundary, name, config.Zones.Dir); err != nil {
			slog.Error("failed to prepare zone " + name + ": " + err.Error())
			os.Exit(1)
		}
	}
}
