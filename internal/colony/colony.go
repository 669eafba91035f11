// Package colony owns the player colony state: the resource ledger,
// storage limits, building and research levels, and the build queue.
// The tick controller in tick.go reconciles it against wall-clock time.
package colony

import (
	"fmt"
	"sync"

	"github.com/talgya/steamraiders/internal/econ"
	"github.com/talgya/steamraiders/internal/notify"
)

// Colony is the single authoritative container for economy and progression
// state. All reads and writes go through its methods; each method is one
// atomic read-decide-write step under the mutex.
type Colony struct {
	mu sync.Mutex

	resources   econ.Amounts
	storage     econ.Amounts
	kesseldruck econ.Kesseldruck
	buildings   map[string]int
	research    map[string]int
	queue       []econ.QueueItem

	serverSpeed float64
	notifier    *notify.Center
}

// New creates a colony with the standard starting state.
func New(serverSpeed float64, notifier *notify.Center) *Colony {
	buildings := make(map[string]int, len(econ.InitialBuildingLevels))
	for id, level := range econ.InitialBuildingLevels {
		buildings[id] = level
	}

	return &Colony{
		resources:   econ.InitialResources,
		storage:     econ.InitialStorage,
		kesseldruck: econ.EnergyBalance(buildings),
		buildings:   buildings,
		research:    make(map[string]int),
		serverSpeed: serverSpeed,
		notifier:    notifier,
	}
}

// Snapshot is a consistent copy of the colony state for read-only callers.
type Snapshot struct {
	Resources   econ.Amounts     `json:"resources"`
	Storage     econ.Amounts     `json:"storage"`
	Kesseldruck econ.Kesseldruck `json:"kesseldruck"`
	Buildings   map[string]int   `json:"buildings"`
	Research    map[string]int   `json:"research"`
	BuildQueue  []econ.QueueItem `json:"buildQueue"`
}

// Snapshot returns a copy of the current state.
func (c *Colony) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	buildings := make(map[string]int, len(c.buildings))
	for id, level := range c.buildings {
		buildings[id] = level
	}
	research := make(map[string]int, len(c.research))
	for id, level := range c.research {
		research[id] = level
	}
	queue := make([]econ.QueueItem, len(c.queue))
	copy(queue, c.queue)

	return Snapshot{
		Resources:   c.resources,
		Storage:     c.storage,
		Kesseldruck: c.kesseldruck,
		Buildings:   buildings,
		Research:    research,
		BuildQueue:  queue,
	}
}

// Resources returns the current ledger.
func (c *Colony) Resources() econ.Amounts {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.resources
}

// Spend atomically deducts cost from the ledger. It fails without any
// mutation when the stock does not cover the cost.
func (c *Colony) Spend(cost econ.Amounts) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.resources.Covers(cost) {
		return false
	}
	c.resources = c.resources.Sub(cost)
	return true
}

// Refund credits previously spent resources back, clamped to storage.
func (c *Colony) Refund(amount econ.Amounts) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resources = c.resources.Add(amount).ClampTo(c.storage)
}

// StartUpgrade validates and enqueues the next level of a building or
// research topic at the given timestamp. On rejection (unknown id, missing
// resources, full queue) nothing is mutated and a single warning
// notification explains the cause.
func (c *Colony) StartUpgrade(entityID string, now int64) error {
	c.mu.Lock()

	entity, ok := econ.LookupEntity(entityID)
	if !ok {
		c.mu.Unlock()
		return fmt.Errorf("unknown catalog entity %q", entityID)
	}

	currentLevel := c.research[entityID]
	if entity.IsBuilding {
		currentLevel = c.buildings[entityID]
	}

	nextLevel := econ.NextTargetLevel(c.queue, entityID, currentLevel)
	cost := econ.UpgradeCost(entity, nextLevel)

	if !econ.CanAfford(c.resources, cost) {
		missing := econ.MissingResources(c.resources, cost)
		c.mu.Unlock()
		c.notifier.Push(
			"Resources missing",
			fmt.Sprintf("Short %s.", econ.FormatMissing(missing)),
			notify.Warning,
		)
		return fmt.Errorf("insufficient resources for %s level %d", entityID, nextLevel)
	}

	if !econ.HasCapacity(c.queue, econ.MaxBuildQueueLength) {
		c.mu.Unlock()
		c.notifier.Push(
			"Queue full",
			fmt.Sprintf("At most %d orders allowed.", econ.MaxBuildQueueLength),
			notify.Warning,
		)
		return fmt.Errorf("build queue full")
	}

	c.resources = c.resources.Sub(cost)

	duration := econ.BuildDuration(cost, c.serverSpeed)
	startTime, endTime := econ.SlotTiming(c.queue, duration, now)
	c.queue = append(c.queue, econ.QueueItem{
		EntityID:  entityID,
		Level:     nextLevel,
		StartTime: startTime,
		EndTime:   endTime,
	})
	c.mu.Unlock()

	c.notifier.Push(
		"Construction started",
		fmt.Sprintf("%s will reach level %d.", entity.Name, nextLevel),
		notify.Success,
	)
	return nil
}

// BuildingLevel returns the current level of a building (0 = not built).
func (c *Colony) BuildingLevel(id string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buildings[id]
}

// ResearchLevel returns the current level of a research topic.
func (c *Colony) ResearchLevel(id string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.research[id]
}
