package econ_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/talgya/steamraiders/internal/econ"
)

func TestEnergyBalanceInitialColony(t *testing.T) {
	k := econ.EnergyBalance(econ.InitialBuildingLevels)

	assert.Equal(t, 30.0, k.Capacity)
	assert.Equal(t, 22.0, k.Consumption)
	assert.Equal(t, 8.0, k.Net)
	assert.Equal(t, 1.0, k.Efficiency)
}

func TestEnergyBalanceNoConsumers(t *testing.T) {
	k := econ.EnergyBalance(map[string]int{"steamPlant": 1})

	assert.Equal(t, 0.0, k.Consumption)
	assert.Equal(t, 1.0, k.Efficiency, "efficiency is full when nothing draws pressure")
}

func TestEnergyBalanceDeficitThrottles(t *testing.T) {
	// Heavy consumers on a single level-1 plant.
	levels := map[string]int{
		"orichalcumSmelter": 5,
		"crystalCondenser":  5,
		"vitriolStill":      5,
		"steamPlant":        1,
	}
	k := econ.EnergyBalance(levels)

	// floor(10*1.1^4) + floor(12*1.1^4) + floor(20*1.1^4) = 14+17+29
	assert.Equal(t, 60.0, k.Consumption)
	assert.Equal(t, 30.0, k.Capacity)
	assert.Equal(t, -30.0, k.Net)
	assert.InDelta(t, 0.5, k.Efficiency, 1e-9)
}

func TestEnergyBalanceLevelZeroIgnored(t *testing.T) {
	a := econ.EnergyBalance(map[string]int{"vitriolStill": 0, "steamPlant": 1})
	b := econ.EnergyBalance(map[string]int{"steamPlant": 1})

	assert.Equal(t, b, a)
}

func TestEnergyBalanceCapacityMonotonic(t *testing.T) {
	// Raising the plant level, everything else fixed, never lowers
	// capacity.
	levels := map[string]int{
		"orichalcumSmelter": 3,
		"crystalCondenser":  2,
		"steamPlant":        1,
	}
	prev := econ.EnergyBalance(levels).Capacity
	for level := 2; level <= 12; level++ {
		levels["steamPlant"] = level
		k := econ.EnergyBalance(levels)
		assert.GreaterOrEqual(t, k.Capacity, prev, "level %d", level)
		prev = k.Capacity
	}
}

func TestEnergyBalanceEfficiencyCappedAtOne(t *testing.T) {
	k := econ.EnergyBalance(map[string]int{
		"steamPlant":        10,
		"orichalcumSmelter": 1,
	})

	assert.Equal(t, 1.0, k.Efficiency)
	assert.Greater(t, k.Net, 0.0)
}
