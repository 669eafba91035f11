package persistence_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/steamraiders/internal/notify"
	"github.com/talgya/steamraiders/internal/persistence"
	"github.com/talgya/steamraiders/internal/shipyard"
)

func openTestDB(t *testing.T) *persistence.DB {
	t.Helper()
	db, err := persistence.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestShipyardRoundTrip(t *testing.T) {
	db := openTestDB(t)

	_, ok, err := db.LoadShipyard()
	require.NoError(t, err)
	assert.False(t, ok, "fresh database has no snapshot")

	snap := shipyard.Snapshot{
		Queue: []shipyard.Order{
			{ID: "order-1", BlueprintID: "scoutDrone", Quantity: 2, StartTime: 1000, EndTime: 1801000, Status: shipyard.StatusQueued},
		},
		Inventory:      map[string]int{"scoutDrone": 2, "coalFreighter": 1},
		HangarCapacity: 40,
	}
	require.NoError(t, db.SaveShipyard(snap))

	loaded, ok, err := db.LoadShipyard()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, snap, loaded)

	// Saving again overwrites in place.
	snap.HangarCapacity = 45
	require.NoError(t, db.SaveShipyard(snap))
	loaded, _, err = db.LoadShipyard()
	require.NoError(t, err)
	assert.Equal(t, 45, loaded.HangarCapacity)
}

func TestMetaRoundTrip(t *testing.T) {
	db := openTestDB(t)

	_, ok, err := db.GetMeta("last_tick")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, db.SaveMeta("last_tick", "1234"))
	value, ok, err := db.GetMeta("last_tick")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "1234", value)

	require.NoError(t, db.SaveMeta("last_tick", "5678"))
	value, _, err = db.GetMeta("last_tick")
	require.NoError(t, err)
	assert.Equal(t, "5678", value)
}

func TestNotificationLog(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.AppendNotifications(nil), "empty batch is a no-op")

	batch := []notify.Notification{
		{ID: "n-1", Title: "Construction started", Description: "Smelter to level 2.", Variant: notify.Success, CreatedAt: 1000},
		{ID: "n-2", Title: "Order completed", Variant: notify.Info, CreatedAt: 2000},
		{ID: "n-3", Title: "Hangar full", Variant: notify.Warning, CreatedAt: 3000},
	}
	require.NoError(t, db.AppendNotifications(batch))

	recent, err := db.RecentNotifications(2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "n-3", recent[0].ID, "newest first")
	assert.Equal(t, "n-2", recent[1].ID)
	assert.Equal(t, notify.Warning, recent[0].Variant)

	all, err := db.RecentNotifications(10)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestReopenKeepsState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	db, err := persistence.Open(path)
	require.NoError(t, err)
	require.NoError(t, db.SaveMeta("seed", "2023"))
	require.NoError(t, db.Close())

	db, err = persistence.Open(path)
	require.NoError(t, err)
	defer db.Close()

	value, ok, err := db.GetMeta("seed")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "2023", value)
}
