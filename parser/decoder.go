package parser

import (
	"strconv"

	"github.com/guibar/go-intercept/graph"
	. "github.com/guibar/go-intercept/util"
)

//*******************************************
// osm decoder
//*******************************************

type IOSMDecoder interface {
	IsValidHighway(tags Dict[string, string]) bool
	DecodeEdge(tags Dict[string, string]) OSMEdge
}

type DrivingDecoder struct {
}

var driving_types = Dict[string, bool]{"motorway": true, "motorway_link": true, "trunk": true, "trunk_link": true,
	"primary": true, "primary_link": true, "secondary": true, "secondary_link": true, "tertiary": true, "tertiary_link": true,
	"residential": true, "living_street": true, "service": true, "track": true, "unclassified": true, "road": true}

func (self *DrivingDecoder) IsValidHighway(tags Dict[string, string]) bool {
	if !tags.ContainsKey("highway") {
		return false
	}
	if !driving_types.ContainsKey(tags.Get("highway")) {
		return false
	}
	return true
}

func (self *DrivingDecoder) DecodeEdge(tags Dict[string, string]) OSMEdge {
	highway := tags.Get("highway")
	e := OSMEdge{}
	e.Type = graph.RoadTypeFromString(highway)
	e.Speed = travel_speed(highway, tags.Get("maxspeed"), tags.Get("tracktype"), tags.Get("surface"))
	e.Oneway = is_oneway(tags.Get("oneway"), highway)
	return e
}

//*******************************************
// tag decoding
//*******************************************

func is_oneway(oneway string, highway string) bool {
	if highway == "motorway" || highway == "trunk" || highway == "motorway_link" || highway == "trunk_link" {
		return true
	} else if oneway == "yes" {
		return true
	}
	return false
}

// travel_speed estimates the driving speed (km/h) of a way from its
// tags, keyed on the raw highway value since link roads carry lower
// defaults than their parent class.
func travel_speed(highway string, maxspeed string, tracktype string, surface string) int32 {
	var speed int32

	if maxspeed != "" {
		if maxspeed == "walk" {
			speed = 10
		} else if maxspeed == "none" {
			speed = 110
		} else {
			t, err := strconv.Atoi(maxspeed)
			if err != nil {
				speed = 20
			} else {
				speed = int32(t)
			}
		}
		speed = int32(0.9 * float32(speed))
	} else {
		switch highway {
		case "motorway":
			speed = 100
		case "trunk":
			speed = 85
		case "motorway_link", "trunk_link":
			speed = 60
		case "primary":
			speed = 65
		case "secondary":
			speed = 60
		case "tertiary":
			speed = 50
		case "primary_link", "secondary_link":
			speed = 50
		case "tertiary_link":
			speed = 40
		case "unclassified":
			speed = 30
		case "residential":
			speed = 30
		case "living_street":
			speed = 10
		case "road":
			speed = 20
		case "track":
			switch tracktype {
			case "grade1":
				speed = 40
			case "grade2":
				speed = 30
			case "grade3":
				speed = 20
			case "grade5":
				speed = 10
			default:
				speed = 15
			}
		default:
			speed = 20
		}
	}

	if surface != "" {
		switch surface {
		case "cement", "compacted":
			speed = Min(speed, 80)
		case "fine_gravel":
			speed = Min(speed, 60)
		case "paving_stones", "metal", "bricks":
			speed = Min(speed, 40)
		case "grass", "wood", "sett", "grass_paver", "gravel", "unpaved", "ground", "dirt", "pebblestone", "tartan":
			speed = Min(speed, 30)
		case "cobblestone", "clay":
			speed = Min(speed, 20)
		case "earth", "stone", "rocky", "sand":
			speed = Min(speed, 15)
		case "mud":
			speed = Min(speed, 10)
		}
	}

	if speed == 0 {
		speed = 10
	}
	return speed
}
