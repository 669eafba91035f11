// Upgrade cost scaling, build durations, and affordability checks shared by
// the building and research progression paths.
package econ

import (
	"math"
	"strings"

	"github.com/dustin/go-humanize"
)

// Entity is the catalog view shared by buildings and research: anything
// with a level, a cost curve, and a display name.
type Entity struct {
	ID             string
	Name           string
	BaseCost       Amounts
	CostMultiplier float64
	IsBuilding     bool
}

// LookupEntity resolves a catalog id across the building and research
// namespaces. Returns false for ids that exist in neither.
func LookupEntity(id string) (Entity, bool) {
	if b, ok := Buildings[id]; ok {
		return Entity{ID: b.ID, Name: b.Name, BaseCost: b.BaseCost, CostMultiplier: b.CostMultiplier, IsBuilding: true}, true
	}
	if r, ok := ResearchTopics[id]; ok {
		return Entity{ID: r.ID, Name: r.Name, BaseCost: r.BaseCost, CostMultiplier: r.CostMultiplier}, true
	}
	return Entity{}, false
}

// NextTargetLevel determines the level a new upgrade order should build,
// accounting for upgrades of the same entity already sitting in the queue.
// Stacking several levels of one entity ahead of completion is allowed.
func NextTargetLevel(queue []QueueItem, entityID string, currentLevel int) int {
	highest := currentLevel
	for _, item := range queue {
		if item.EntityID == entityID && item.Level > highest {
			highest = item.Level
		}
	}
	return highest + 1
}

// UpgradeCost computes the resource cost to bring an entity to targetLevel:
// floor(base * multiplier^(targetLevel-1)) per resource kind.
func UpgradeCost(e Entity, targetLevel int) Amounts {
	exponent := math.Max(0, float64(targetLevel-1))
	factor := math.Pow(e.CostMultiplier, exponent)

	var cost Amounts
	for _, res := range AllResources {
		cost[res] = math.Floor(e.BaseCost.Get(res) * factor)
	}
	return cost
}

// MinBuildDuration is the lower bound for any upgrade, in seconds.
const MinBuildDuration = 5

// BuildDuration converts a resource investment into build time in seconds.
// Crystal weighs double and vitriol triple, reflecting their refinement
// effort; the result never drops below MinBuildDuration.
func BuildDuration(cost Amounts, serverSpeed float64) int {
	weighted := cost.Get(Orichalcum) + cost.Get(FocusCrystal)*2 + cost.Get(Vitriol)*3
	duration := int(math.Floor(weighted / 10 / serverSpeed))
	if duration < MinBuildDuration {
		return MinBuildDuration
	}
	return duration
}

// MissingResource is a single deficit reported back to the player.
type MissingResource struct {
	Resource Resource
	Amount   float64
}

// MissingResources lists the deficits between the available stock and the
// given cost, in canonical resource order. Surpluses are omitted.
func MissingResources(available, cost Amounts) []MissingResource {
	var missing []MissingResource
	for _, res := range AllResources {
		if deficit := cost.Get(res) - available.Get(res); deficit > 0 {
			missing = append(missing, MissingResource{Resource: res, Amount: deficit})
		}
	}
	return missing
}

// FormatMissing renders a deficit list as a readable summary, e.g.
// "Orichalcum: 1,200, Vitriol: 80".
func FormatMissing(missing []MissingResource) string {
	parts := make([]string, 0, len(missing))
	for _, m := range missing {
		parts = append(parts, m.Resource.String()+": "+humanize.Comma(int64(math.Ceil(m.Amount))))
	}
	return strings.Join(parts, ", ")
}

// CanAfford reports whether the stock covers the cost for every resource
// kind simultaneously.
func CanAfford(available, cost Amounts) bool {
	return available.Covers(cost)
}
