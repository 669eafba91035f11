// Kesseldruck — the boiler pressure balance that gates production.
// Derived fresh from building levels every tick, never stored on its own.
package econ

import "math"

// Kesseldruck is the derived energy state of a colony: how much pressure
// the steam plants generate versus how much the facilities draw.
type Kesseldruck struct {
	Capacity    float64 `json:"capacity"`
	Consumption float64 `json:"consumption"`
	Net         float64 `json:"net"`
	Efficiency  float64 `json:"efficiency"`
}

// EnergyBalance aggregates kesseldruck supply and demand over the given
// building levels. Efficiency is 1 when nothing draws pressure, otherwise
// min(1, capacity/consumption); it never throttles stored resources, only
// flow.
func EnergyBalance(buildingLevels map[string]int) Kesseldruck {
	var capacity, consumption float64

	for id, b := range Buildings {
		level := buildingLevels[id]
		if level <= 0 {
			continue
		}
		exponent := float64(level - 1)

		if b.BaseEnergySupply > 0 {
			mult := b.EnergySupplyMult
			if mult == 0 {
				mult = 1
			}
			capacity += math.Floor(b.BaseEnergySupply * math.Pow(mult, exponent))
		}
		if b.BaseEnergyUse > 0 {
			mult := b.EnergyUseMult
			if mult == 0 {
				mult = 1
			}
			consumption += math.Floor(b.BaseEnergyUse * math.Pow(mult, exponent))
		}
	}

	efficiency := 1.0
	if consumption > 0 {
		efficiency = math.Min(1, capacity/consumption)
	}

	return Kesseldruck{
		Capacity:    math.Floor(capacity),
		Consumption: math.Floor(consumption),
		Net:         math.Floor(capacity - consumption),
		Efficiency:  efficiency,
	}
}
