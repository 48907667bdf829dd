package parser

import (
	"testing"

	"github.com/guibar/go-intercept/graph"
	. "github.com/guibar/go-intercept/util"
)

func TestIsValidHighway(t *testing.T) {
	decoder := DrivingDecoder{}
	if !decoder.IsValidHighway(Dict[string, string]{"highway": "motorway"}) {
		t.Errorf("motorway rejected")
	}
	if decoder.IsValidHighway(Dict[string, string]{"highway": "footway"}) {
		t.Errorf("footway accepted")
	}
	if decoder.IsValidHighway(Dict[string, string]{"building": "yes"}) {
		t.Errorf("way without highway tag accepted")
	}
}

func TestDecodeEdge(t *testing.T) {
	decoder := DrivingDecoder{}

	e := decoder.DecodeEdge(Dict[string, string]{"highway": "motorway"})
	if e.Type != graph.MOTORWAY {
		t.Errorf("Type = %v; want motorway", e.Type)
	}
	if !e.Oneway {
		t.Errorf("motorway not oneway")
	}
	if e.Speed != 100 {
		t.Errorf("Speed = %d; want 100", e.Speed)
	}

	e = decoder.DecodeEdge(Dict[string, string]{"highway": "residential"})
	if e.Oneway {
		t.Errorf("residential defaults to oneway")
	}
	if e.Speed != 30 {
		t.Errorf("Speed = %d; want 30", e.Speed)
	}
}

func TestTravelSpeed(t *testing.T) {
	// tagged maxspeed wins over the class default, scaled down by 10%
	if got := travel_speed("residential", "50", "", ""); got != 45 {
		t.Errorf("travel_speed with maxspeed 50 = %d; want 45", got)
	}
	if got := travel_speed("motorway", "none", "", ""); got != 99 {
		t.Errorf("travel_speed with maxspeed none = %d; want 99", got)
	}
	// bad surfaces cap the speed
	if got := travel_speed("primary", "", "", "gravel"); got != 30 {
		t.Errorf("travel_speed on gravel = %d; want 30", got)
	}
	if got := travel_speed("track", "", "grade1", ""); got != 40 {
		t.Errorf("travel_speed on grade1 track = %d; want 40", got)
	}
}

func TestIsOneway(t *testing.T) {
	if !is_oneway("", "motorway_link") {
		t.Errorf("motorway_link not oneway by default")
	}
	if !is_oneway("yes", "residential") {
		t.Errorf("oneway=yes ignored")
	}
	if is_oneway("", "secondary") {
		t.Errorf("secondary oneway by default")
	}
}
