package econ_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/talgya/steamraiders/internal/econ"
)

func TestProductionPerTickLevelOne(t *testing.T) {
	income := econ.ProductionPerTick(map[string]int{"orichalcumSmelter": 1}, 1, 1)

	assert.InDelta(t, 20.0/3600, income.Get(econ.Orichalcum), 1e-9)
	assert.Zero(t, income.Get(econ.FocusCrystal))
	assert.Zero(t, income.Get(econ.Vitriol))
}

func TestProductionPerTickLevelScaling(t *testing.T) {
	income := econ.ProductionPerTick(map[string]int{"orichalcumSmelter": 2}, 1, 1)

	// base * level * mult^(level-1) per hour
	assert.InDelta(t, 20.0*2*1.12/3600, income.Get(econ.Orichalcum), 1e-9)
}

func TestProductionPerTickEfficiencyAndSpeed(t *testing.T) {
	full := econ.ProductionPerTick(econ.InitialBuildingLevels, 1, 1)
	throttled := econ.ProductionPerTick(econ.InitialBuildingLevels, 1, 0.5)
	fast := econ.ProductionPerTick(econ.InitialBuildingLevels, 2, 1)

	for _, res := range econ.AllResources {
		assert.InDelta(t, full.Get(res)*0.5, throttled.Get(res), 1e-9)
		assert.InDelta(t, full.Get(res)*2, fast.Get(res), 1e-9)
	}
}

func TestProductionPerTickPlantProducesNothing(t *testing.T) {
	income := econ.ProductionPerTick(map[string]int{"steamPlant": 10}, 1, 1)

	assert.True(t, income.IsZero())
}
