package mission_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/talgya/steamraiders/internal/mission"
)

func TestTravelDurationMinimum(t *testing.T) {
	// Distance zero (same system) still takes the minimum leg.
	assert.Equal(t, int64(mission.MinTravelTime), mission.TravelDuration(0, mission.Spy))
	assert.Equal(t, int64(mission.MinTravelTime), mission.TravelDuration(1, mission.Spy))
}

func TestTravelDurationScalesPerHex(t *testing.T) {
	// 10 hexes at 4 min/hex.
	assert.Equal(t, int64(10*4*60*1000), mission.TravelDuration(10, mission.Attack))
	// Station flights are the fastest per hex: 150 s.
	assert.Equal(t, int64(10*150*1000), mission.TravelDuration(10, mission.Station))
}

func TestBuildSchedule(t *testing.T) {
	now := int64(1_000_000)
	sched := mission.BuildSchedule(mission.Transport, 20, now)

	assert.Equal(t, now, sched.PlannedAt)
	assert.Equal(t, now+mission.PreparationTime, sched.LaunchAt)
	assert.Equal(t, int64(20*3*60*1000), sched.TravelDuration)
	assert.Equal(t, sched.LaunchAt+sched.TravelDuration, sched.ArrivalAt)
}

func TestStatusTerminal(t *testing.T) {
	assert.True(t, mission.Completed.Terminal())
	assert.True(t, mission.Cancelled.Terminal())
	assert.False(t, mission.Planned.Terminal())
	assert.False(t, mission.Enroute.Terminal())
	assert.False(t, mission.Returning.Terminal())
}

func TestParseType(t *testing.T) {
	for raw, want := range map[string]mission.Type{
		"attack":    mission.Attack,
		"Transport": mission.Transport,
		" spy ":     mission.Spy,
		"STATION":   mission.Station,
		"colonize":  mission.Colonize,
	} {
		got, ok := mission.ParseType(raw)
		assert.True(t, ok, "input %q", raw)
		assert.Equal(t, want, got, "input %q", raw)
	}

	_, ok := mission.ParseType("siege")
	assert.False(t, ok)
}
