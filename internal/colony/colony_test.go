package colony_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/steamraiders/internal/colony"
	"github.com/talgya/steamraiders/internal/econ"
	"github.com/talgya/steamraiders/internal/notify"
)

func newTestColony() (*colony.Colony, *notify.Center) {
	center := notify.NewCenter(func() int64 { return 0 })
	return colony.New(1, center), center
}

func lastNotification(t *testing.T, center *notify.Center) notify.Notification {
	t.Helper()
	recent := center.Recent(1)
	require.Len(t, recent, 1)
	return recent[0]
}

func TestNewColonyStartingState(t *testing.T) {
	c, _ := newTestColony()
	snap := c.Snapshot()

	assert.Equal(t, econ.InitialResources, snap.Resources)
	assert.Equal(t, econ.InitialStorage, snap.Storage)
	assert.Equal(t, 1, snap.Buildings["orichalcumSmelter"])
	assert.Equal(t, 0, snap.Buildings["vitriolStill"])
	assert.Empty(t, snap.BuildQueue)
	assert.Equal(t, 1.0, snap.Kesseldruck.Efficiency)
}

func TestStartUpgradeEnqueuesAndDeducts(t *testing.T) {
	c, center := newTestColony()

	require.NoError(t, c.StartUpgrade("orichalcumSmelter", 12000))

	snap := c.Snapshot()
	require.Len(t, snap.BuildQueue, 1)
	item := snap.BuildQueue[0]
	assert.Equal(t, "orichalcumSmelter", item.EntityID)
	assert.Equal(t, 2, item.Level)
	assert.Equal(t, int64(12000), item.StartTime)

	// Level 2 cost: floor(60*1.5)=90, floor(15*1.5)=22
	cost := econ.UpgradeCost(econ.Entity{BaseCost: econ.Amounts{60, 15, 0}, CostMultiplier: 1.5}, 2)
	assert.Equal(t, econ.InitialResources.Sub(cost), snap.Resources)

	n := lastNotification(t, center)
	assert.Equal(t, "Construction started", n.Title)
	assert.Equal(t, notify.Success, n.Variant)
}

func TestStartUpgradeUnknownEntity(t *testing.T) {
	c, _ := newTestColony()

	err := c.StartUpgrade("perpetualMotionMachine", 0)
	assert.Error(t, err)
	assert.Empty(t, c.Snapshot().BuildQueue)
}

func TestStartUpgradeInsufficientResources(t *testing.T) {
	c, center := newTestColony()

	// vitriolStill costs {225, 75, 0} but the colony starts with 500/500;
	// drain orichalcum first so the order must fail.
	require.True(t, c.Spend(econ.Amounts{400, 0, 0}))

	err := c.StartUpgrade("vitriolStill", 0)
	assert.Error(t, err)

	snap := c.Snapshot()
	assert.Empty(t, snap.BuildQueue)
	assert.Equal(t, econ.Amounts{100, 500, 100}, snap.Resources, "rejection must not mutate the ledger")

	n := lastNotification(t, center)
	assert.Equal(t, "Resources missing", n.Title)
	assert.Equal(t, notify.Warning, n.Variant)
	assert.Contains(t, n.Description, "Orichalcum: 125")
}

func TestStartUpgradeQueueFull(t *testing.T) {
	c, center := newTestColony()

	require.NoError(t, c.StartUpgrade("orichalcumSmelter", 0))
	require.NoError(t, c.StartUpgrade("crystalCondenser", 0))
	require.NoError(t, c.StartUpgrade("steamPlant", 0))

	before := c.Resources()
	err := c.StartUpgrade("crystalCondenser", 0)
	assert.Error(t, err)
	assert.Equal(t, before, c.Resources(), "a full queue must not charge the order")

	n := lastNotification(t, center)
	assert.Equal(t, "Queue full", n.Title)
	assert.Equal(t, notify.Warning, n.Variant)
}

func TestStartUpgradeChainsFIFO(t *testing.T) {
	c, _ := newTestColony()

	require.NoError(t, c.StartUpgrade("orichalcumSmelter", 10000))
	require.NoError(t, c.StartUpgrade("crystalCondenser", 10000))

	queue := c.Snapshot().BuildQueue
	require.Len(t, queue, 2)
	assert.Equal(t, queue[0].EndTime, queue[1].StartTime)
}

func TestTickCompletesOrders(t *testing.T) {
	c, center := newTestColony()

	require.NoError(t, c.StartUpgrade("orichalcumSmelter", 10000))
	endTime := c.Snapshot().BuildQueue[0].EndTime

	// One tick before completion: level unchanged, order still pending.
	c.Tick(endTime - 1000)
	assert.Equal(t, 1, c.BuildingLevel("orichalcumSmelter"))
	assert.Len(t, c.Snapshot().BuildQueue, 1)

	c.Tick(endTime)
	assert.Equal(t, 2, c.BuildingLevel("orichalcumSmelter"))
	assert.Empty(t, c.Snapshot().BuildQueue)

	n := lastNotification(t, center)
	assert.Equal(t, "Order completed", n.Title)
	assert.Equal(t, notify.Info, n.Variant)
}

func TestTickCompletesResearch(t *testing.T) {
	c, _ := newTestColony()

	require.NoError(t, c.StartUpgrade("pressureTuning", 0))
	endTime := c.Snapshot().BuildQueue[0].EndTime

	c.Tick(endTime)
	assert.Equal(t, 1, c.ResearchLevel("pressureTuning"))
}

func TestTickAccruesProduction(t *testing.T) {
	c, _ := newTestColony()

	before := c.Resources()
	c.Tick(1000)
	after := c.Resources()

	expected := econ.ProductionPerTick(econ.InitialBuildingLevels, 1, 1)
	assert.InDelta(t, before.Get(econ.Orichalcum)+expected.Get(econ.Orichalcum), after.Get(econ.Orichalcum), 1e-9)
	assert.InDelta(t, before.Get(econ.FocusCrystal)+expected.Get(econ.FocusCrystal), after.Get(econ.FocusCrystal), 1e-9)
	assert.Equal(t, before.Get(econ.Vitriol), after.Get(econ.Vitriol), "no still built yet")
}

func TestTickClampsToStorage(t *testing.T) {
	c, _ := newTestColony()

	c.Refund(econ.InitialStorage)
	c.Tick(1000)

	snap := c.Snapshot()
	assert.Equal(t, snap.Storage, snap.Resources)
}

func TestSpendAndRefund(t *testing.T) {
	c, _ := newTestColony()

	assert.False(t, c.Spend(econ.Amounts{0, 0, 1000}), "overdraw must fail")
	assert.Equal(t, econ.InitialResources, c.Resources())

	require.True(t, c.Spend(econ.Amounts{100, 50, 10}))
	c.Refund(econ.Amounts{100, 50, 10})
	assert.Equal(t, econ.InitialResources, c.Resources())
}
