package planner

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/paulmach/orb"

	. "github.com/guibar/go-intercept/util"
)

// ErrInvalidScenario marks scenarios rejected before any graph
// computation (empty vehicle list, negative elapsed time).
var ErrInvalidScenario = errors.New("invalid scenario")

//**********************************************************
// scenario
//**********************************************************

type VehicleInput struct {
	ID  int       `json:"id"`
	Loc orb.Point `json:"loc"`
}

// Scenario is the per-request input: the last-known position of the
// suspect, the seconds since that sighting and the available response
// vehicles.
type Scenario struct {
	Origin   orb.Point      `json:"origin"`
	Elapsed  float64        `json:"elapsed"`
	Vehicles []VehicleInput `json:"vehicles"`
}

func (self Scenario) Validate() error {
	if self.Elapsed < 0 {
		return fmt.Errorf("negative elapsed time %.0f: %w", self.Elapsed, ErrInvalidScenario)
	}
	if len(self.Vehicles) == 0 {
		return fmt.Errorf("empty vehicle list: %w", ErrInvalidScenario)
	}
	seen := NewDict[int, bool](len(self.Vehicles))
	for _, vehicle := range self.Vehicles {
		if seen.ContainsKey(vehicle.ID) {
			return fmt.Errorf("duplicate vehicle id %d: %w", vehicle.ID, ErrInvalidScenario)
		}
		seen.Set(vehicle.ID, true)
	}
	return nil
}

//**********************************************************
// vehicle states
//**********************************************************

// VehicleState is the display state of a vehicle across the planning
// lifecycle, not an internal engine state.
type VehicleState byte

const (
	ASSIGNABLE VehicleState = 0
	TOO_CLOSE  VehicleState = 1
	ASSIGNED   VehicleState = 2
	UNASSIGNED VehicleState = 3
)

func (self VehicleState) String() string {
	switch self {
	case ASSIGNABLE:
		return "assignable"
	case TOO_CLOSE:
		return "too_close"
	case ASSIGNED:
		return "assigned"
	case UNASSIGNED:
		return "unassigned"
	default:
		panic("unknown vehicle state")
	}
}

func (self VehicleState) MarshalJSON() ([]byte, error) {
	return json.Marshal(self.String())
}

func (self *VehicleState) UnmarshalJSON(data []byte) error {
	var typ string
	if err := json.Unmarshal(data, &typ); err != nil {
		return err
	}
	switch typ {
	case "assignable":
		*self = ASSIGNABLE
	case "too_close":
		*self = TOO_CLOSE
	case "assigned":
		*self = ASSIGNED
	case "unassigned":
		*self = UNASSIGNED
	default:
		return errors.New("unknown vehicle state")
	}
	return nil
}

// Vehicle is a scenario vehicle after snapping, carrying its final
// display state.
type Vehicle struct {
	ID    int          `json:"id"`
	Loc   orb.Point    `json:"loc"`
	Node  int32        `json:"node"`
	State VehicleState `json:"state"`
}
