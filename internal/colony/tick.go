package colony

import (
	"fmt"
	"log/slog"

	"github.com/talgya/steamraiders/internal/econ"
	"github.com/talgya/steamraiders/internal/notify"
)

// Tick advances the colony to the given timestamp. The order is fixed:
// finished build orders are applied to the level maps first, then the
// kesseldruck is recomputed from the updated levels, then production for
// one tick is accrued into the ledger, clamped to storage. Notifications
// collected along the way are emitted only after the mutation completes.
func (c *Colony) Tick(now int64) {
	type completion struct {
		name  string
		level int
	}
	var completions []completion

	c.mu.Lock()

	completed, pending := econ.Partition(c.queue, now)
	if len(completed) > 0 {
		for _, item := range completed {
			entity, ok := econ.LookupEntity(item.EntityID)
			if !ok {
				// Stale queue entry referencing a removed catalog id.
				// Drop it and keep the tick going.
				slog.Error("build queue entry references unknown entity",
					"entity_id", item.EntityID, "level", item.Level)
				continue
			}
			if entity.IsBuilding {
				c.buildings[item.EntityID] = item.Level
			} else {
				c.research[item.EntityID] = item.Level
			}
			completions = append(completions, completion{name: entity.Name, level: item.Level})
		}
		c.queue = pending
	}

	c.kesseldruck = econ.EnergyBalance(c.buildings)

	income := econ.ProductionPerTick(c.buildings, c.serverSpeed, c.kesseldruck.Efficiency)
	c.resources = c.resources.Add(income).ClampTo(c.storage)

	c.mu.Unlock()

	for _, done := range completions {
		c.notifier.Push(
			"Order completed",
			fmt.Sprintf("%s is now level %d.", done.name, done.level),
			notify.Info,
		)
	}
}
