// Package econ provides the colony economy model: resource ledgers, the
// kesseldruck (boiler pressure) energy balance, production rates, upgrade
// cost progression, and the build queue scheduler.
package econ

// Resource enumerates the three tradeable resource kinds.
type Resource uint8

const (
	Orichalcum   Resource = iota // Primary ore, the main construction material
	FocusCrystal                 // Refined crystal for electronics and research
	Vitriol                      // Volatile fluid, fleet and machinery fuel
)

// NumResources is the size of every resource ledger.
const NumResources = 3

// resourceNames holds display names in canonical order.
var resourceNames = [NumResources]string{"Orichalcum", "Focus Crystal", "Vitriol"}

// String returns the display name of the resource.
func (r Resource) String() string {
	if int(r) < len(resourceNames) {
		return resourceNames[r]
	}
	return "Unknown"
}

// AllResources lists every resource kind in canonical order.
var AllResources = [NumResources]Resource{Orichalcum, FocusCrystal, Vitriol}

// Amounts is a fixed-size ledger mapping each resource kind to a quantity.
// The zero value is an empty ledger.
type Amounts [NumResources]float64

// Get returns the amount for a resource kind.
func (a Amounts) Get(r Resource) float64 {
	return a[r]
}

// Add returns the element-wise sum of two ledgers.
func (a Amounts) Add(b Amounts) Amounts {
	for i := range a {
		a[i] += b[i]
	}
	return a
}

// Sub returns a minus b, element-wise. The result may go negative;
// callers that require non-negative ledgers must check Covers first.
func (a Amounts) Sub(b Amounts) Amounts {
	for i := range a {
		a[i] -= b[i]
	}
	return a
}

// Scale multiplies every entry by the given factor.
func (a Amounts) Scale(factor float64) Amounts {
	for i := range a {
		a[i] *= factor
	}
	return a
}

// Covers reports whether a has at least as much of every resource as cost.
func (a Amounts) Covers(cost Amounts) bool {
	for i := range a {
		if a[i] < cost[i] {
			return false
		}
	}
	return true
}

// ClampTo bounds every entry to [0, capacity] for the matching resource.
func (a Amounts) ClampTo(capacity Amounts) Amounts {
	for i := range a {
		if a[i] > capacity[i] {
			a[i] = capacity[i]
		}
		if a[i] < 0 {
			a[i] = 0
		}
	}
	return a
}

// IsZero reports whether every entry is exactly zero.
func (a Amounts) IsZero() bool {
	for i := range a {
		if a[i] != 0 {
			return false
		}
	}
	return true
}
