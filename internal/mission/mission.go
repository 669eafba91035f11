// Package mission schedules fleet missions and advances their lifecycle
// over wall-clock time: a fixed preparation window, hex-distance travel,
// and resolution side effects on arrival.
package mission

import "math"

// Type enumerates the mission archetypes.
type Type uint8

const (
	Attack Type = iota
	Transport
	Spy
	Station
	Colonize
)

var typeLabels = [...]string{"Attack", "Transport", "Spy", "Station", "Colonize"}

func (t Type) String() string {
	if int(t) < len(typeLabels) {
		return typeLabels[t]
	}
	return "Unknown"
}

// Status is the lifecycle state of a mission. The tick advancer drives
// Planned → Enroute → Completed; Returning and Cancelled are reachable
// only through explicit recall/cancel actions.
type Status uint8

const (
	Planned Status = iota
	Enroute
	Completed
	Returning
	Cancelled
)

var statusLabels = [...]string{"planned", "enroute", "completed", "returning", "cancelled"}

func (s Status) String() string {
	if int(s) < len(statusLabels) {
		return statusLabels[s]
	}
	return "unknown"
}

// Terminal reports whether the advancer must never touch the mission again.
func (s Status) Terminal() bool {
	return s == Completed || s == Cancelled
}

// Timing constants, in milliseconds.
const (
	// PreparationTime is the fixed window between planning and launch.
	PreparationTime = 5 * 60 * 1000
	// MinTravelTime bounds the travel leg to avoid near-instant arrivals.
	MinTravelTime = 8 * 60 * 1000
)

// travelTimePerHex is the per-hex travel cost for each mission type, ms.
var travelTimePerHex = map[Type]int64{
	Attack:    4 * 60 * 1000,
	Transport: 3 * 60 * 1000,
	Spy:       2 * 60 * 1000,
	Station:   150 * 1000,
	Colonize:  5 * 60 * 1000,
}

// TravelDuration computes the travel leg for the given hex distance and
// mission type.
func TravelDuration(distance int, t Type) int64 {
	perHex, ok := travelTimePerHex[t]
	if !ok {
		perHex = travelTimePerHex[Transport]
	}
	scaled := int64(math.Round(float64(distance) * float64(perHex)))
	if scaled < MinTravelTime {
		return MinTravelTime
	}
	return scaled
}

// Schedule fixes the timeline of a mission planned at now.
type Schedule struct {
	PlannedAt      int64 `json:"plannedAt"`
	LaunchAt       int64 `json:"launchAt"`
	ArrivalAt      int64 `json:"arrivalAt"`
	TravelDuration int64 `json:"travelDuration"`
}

// BuildSchedule derives the mission timeline from type, distance, and the
// planning timestamp.
func BuildSchedule(t Type, distance int, now int64) Schedule {
	travel := TravelDuration(distance, t)
	launchAt := now + PreparationTime
	return Schedule{
		PlannedAt:      now,
		LaunchAt:       launchAt,
		ArrivalAt:      launchAt + travel,
		TravelDuration: travel,
	}
}

// Location is a snapshot of a mission waypoint captured at planning time.
// It does not follow later ownership changes of the underlying planet.
type Location struct {
	SystemID   string `json:"systemId"`
	PlanetID   string `json:"planetId"`
	Slot       int    `json:"slot"`
	PlanetName string `json:"planetName"`
	OwnerID    string `json:"ownerId,omitempty"`
	AllianceID string `json:"allianceId,omitempty"`
}

// Mission is a scheduled fleet action. Created by planning, mutated only
// by the advancer and the recall/cancel actions, kept as history forever.
type Mission struct {
	ID          string   `json:"id"`
	Type        Type     `json:"type"`
	CommanderID string   `json:"commanderId"`
	Origin      Location `json:"origin"`
	Target      Location `json:"target"`
	Status      Status   `json:"status"`
	Schedule
}
