package graph

import (
	"encoding/json"

	"github.com/paulmach/orb"
)

//*******************************************
// graph structs
//*******************************************

type Node struct {
	Loc    orb.Point `json:"loc"`
	Escape bool      `json:"escape,omitempty"`
}

type Edge struct {
	NodeA    int32    `json:"a"`
	NodeB    int32    `json:"b"`
	Weight   float64  `json:"w"`
	RoadType RoadType `json:"t,omitempty"`
}

type EdgeRef struct {
	EdgeID  int32
	OtherID int32
}

type Direction byte

const (
	FORWARD  Direction = 0
	BACKWARD Direction = 1
)

//*******************************************
// road types
//*******************************************

type RoadType int8

const (
	UNCLASSIFIED RoadType = 0
	RESIDENTIAL  RoadType = 1
	TERTIARY     RoadType = 2
	SECONDARY    RoadType = 3
	PRIMARY      RoadType = 4
	TRUNK        RoadType = 5
	MOTORWAY     RoadType = 6
)

func (self RoadType) String() string {
	switch self {
	case RESIDENTIAL:
		return "residential"
	case TERTIARY:
		return "tertiary"
	case SECONDARY:
		return "secondary"
	case PRIMARY:
		return "primary"
	case TRUNK:
		return "trunk"
	case MOTORWAY:
		return "motorway"
	default:
		return "unclassified"
	}
}

func RoadTypeFromString(typ string) RoadType {
	switch typ {
	case "residential", "living_street", "service", "track", "road":
		return RESIDENTIAL
	case "tertiary", "tertiary_link":
		return TERTIARY
	case "secondary", "secondary_link":
		return SECONDARY
	case "primary", "primary_link":
		return PRIMARY
	case "trunk", "trunk_link":
		return TRUNK
	case "motorway", "motorway_link":
		return MOTORWAY
	default:
		return UNCLASSIFIED
	}
}

func (self RoadType) MarshalJSON() ([]byte, error) {
	return json.Marshal(int8(self))
}

func (self *RoadType) UnmarshalJSON(data []byte) error {
	var typ int8
	if err := json.Unmarshal(data, &typ); err != nil {
		return err
	}
	*self = RoadType(typ)
	return nil
}
