package universe_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/steamraiders/internal/galaxy"
	"github.com/talgya/steamraiders/internal/universe"
)

func TestGenerateDeterministic(t *testing.T) {
	cfg := universe.SmallTestConfig()

	a := universe.Generate(cfg)
	b := universe.Generate(cfg)

	assert.Equal(t, a, b, "same seed must yield the same universe")
}

func TestGenerateSeedChangesLayout(t *testing.T) {
	cfg := universe.SmallTestConfig()
	a := universe.Generate(cfg)

	cfg.Seed++
	b := universe.Generate(cfg)

	assert.NotEqual(t, a.Systems, b.Systems)
}

func TestGenerateShape(t *testing.T) {
	cfg := universe.SmallTestConfig()
	u := universe.Generate(cfg)

	assert.Len(t, u.Systems, cfg.SectorWidth*cfg.SectorHeight)
	assert.Len(t, u.Players, cfg.PlayerCount)
	assert.Len(t, u.Alliances, cfg.AllianceCount)
	require.NotEmpty(t, u.CurrentPlayerID)
	assert.Equal(t, u.Players[0].ID, u.CurrentPlayerID)

	for _, sys := range u.Systems {
		assert.Len(t, sys.Planets, galaxy.PlanetsPerSystem)
		for _, p := range sys.Planets {
			assert.Equal(t, sys.ID, p.SystemID)
		}
	}
}

func TestGenerateAllianceMembershipMirrored(t *testing.T) {
	u := universe.Generate(universe.SmallTestConfig())

	playerAlliance := make(map[string]string)
	for _, p := range u.Players {
		playerAlliance[p.ID] = p.AllianceID
	}

	seen := make(map[string]bool)
	for _, a := range u.Alliances {
		require.NotEmpty(t, a.ID)
		assert.NotEmpty(t, a.Ranks)
		for _, member := range a.Members {
			assert.Equal(t, a.ID, playerAlliance[member])
			assert.False(t, seen[member], "player %s in two alliances", member)
			seen[member] = true
		}
	}
}

func TestGenerateOwnersComeFromRoster(t *testing.T) {
	u := universe.Generate(universe.SmallTestConfig())

	known := make(map[string]bool, len(u.Players))
	for _, p := range u.Players {
		known[p.ID] = true
	}

	for _, sys := range u.Systems {
		for _, p := range sys.Planets {
			if p.OwnerID != "" {
				assert.True(t, known[p.OwnerID], "planet %s owned by unknown %s", p.ID, p.OwnerID)
			}
		}
	}
}
