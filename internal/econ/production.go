package econ

import "math"

// ProductionPerTick computes the resource yield for one tick (one second)
// given the current building levels, the server speed modifier, and the
// kesseldruck efficiency. Only buildings with a nonzero base production
// contribute; the result is never negative.
func ProductionPerTick(buildingLevels map[string]int, serverSpeed, efficiency float64) Amounts {
	var income Amounts

	for id, b := range Buildings {
		level := buildingLevels[id]
		if level <= 0 || b.BaseProduction.IsZero() {
			continue
		}

		mult := b.ProductionMult
		if mult == 0 {
			mult = 1
		}
		levelFactor := math.Pow(mult, float64(level-1))

		for _, res := range AllResources {
			base := b.BaseProduction.Get(res)
			if base <= 0 {
				continue
			}
			perHour := base * float64(level) * levelFactor
			income[res] += perHour / 3600 * serverSpeed * efficiency
		}
	}

	return income
}
