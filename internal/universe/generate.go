// Package universe generates a deterministic mock galaxy: systems, planet
// ownership, the player roster, and alliances. It is the offline data
// source the core falls back to when the directory backend is unreachable.
package universe

import (
	"fmt"
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/steamraiders/internal/alliance"
	"github.com/talgya/steamraiders/internal/galaxy"
)

// GenConfig holds universe generation parameters.
type GenConfig struct {
	Seed          int64
	PlayerCount   int
	AllianceCount int
	SectorWidth   int // Sectors along q
	SectorHeight  int // Sectors along r
}

// DefaultGenConfig returns the standard mock universe size.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		Seed:          2023,
		PlayerCount:   240,
		AllianceCount: 18,
		SectorWidth:   55,
		SectorHeight:  55,
	}
}

// SmallTestConfig returns a tiny universe for tests.
func SmallTestConfig() GenConfig {
	return GenConfig{
		Seed:          42,
		PlayerCount:   12,
		AllianceCount: 3,
		SectorWidth:   4,
		SectorHeight:  4,
	}
}

// Universe is the generated snapshot handed to the directory and alliance
// stores.
type Universe struct {
	Systems         []galaxy.System
	Players         []galaxy.Player
	Alliances       []alliance.Alliance
	CurrentPlayerID string
}

var palette = []string{"#facc15", "#f97316", "#38bdf8", "#a855f7", "#34d399", "#f472b6", "#22d3ee", "#f87171"}

var allianceNames = [][2]string{
	{"AER", "Aetheric Expeditionaries"},
	{"BRG", "Brassgear Guard"},
	{"CLK", "Clockwork Legion"},
	{"DKR", "Darkcore Syndicate"},
	{"EON", "Eon Navigators"},
	{"FUM", "Fumarium Hanse"},
	{"GLM", "Glimmer Pact"},
	{"HEL", "Helion Conclave"},
	{"IGN", "Ignis Armada"},
	{"LUX", "Lux Machina"},
	{"MER", "Mercurial Cartel"},
	{"NIM", "Nimbus Order"},
	{"OBS", "Observatory Circle"},
	{"PYR", "Pyroclast Cohort"},
	{"QUA", "Quartz Covenant"},
	{"RIM", "Riftmariners"},
	{"STE", "Steamvigil"},
	{"ZEN", "Zenith Society"},
}

var playerNames = []string{
	"Captain Selene", "Lord Vraxx", "Magister Aurum", "Navigator Nyx",
	"Duchess Volta", "Marshal Arcturus", "Navigators Guild", "House Zephyr",
	"Admiral Ferris", "Mechanist Lyra", "Guildmaster Brumm", "Savant Cressida",
	"Chronicler Vox", "Oracle Mira", "Skipper Thorne", "Count Obsidian",
}

var planetNames = []string{
	"Chronos Prime", "Aetherion", "Helios", "Rhea", "Aurora", "Nimbus Reach",
	"Ferrum", "Cinderfall", "Galanthys", "Vigilant Star", "Elyss", "Mirage",
	"Oberon", "Arcadia", "Voltspire", "Sable Crest",
}

// Generate builds a complete universe from the configuration. The same
// seed always yields the same universe.
func Generate(cfg GenConfig) Universe {
	rng := rand.New(rand.NewSource(cfg.Seed))

	// Noise layers shape where civilization clusters and which biomes
	// dominate a region, so neighboring sectors feel related instead of
	// uniformly random.
	settleNoise := opensimplex.NewNormalized(cfg.Seed)
	biomeNoise := opensimplex.NewNormalized(cfg.Seed + 1)

	players := generatePlayers(cfg.PlayerCount, rng)
	alliances := generateAlliances(players, cfg.AllianceCount, rng)
	systems := generateSystems(cfg, rng, settleNoise, biomeNoise, players)

	currentPlayerID := ""
	if len(players) > 0 {
		currentPlayerID = players[0].ID
	}

	return Universe{
		Systems:         systems,
		Players:         players,
		Alliances:       alliances,
		CurrentPlayerID: currentPlayerID,
	}
}

func pick[T any](items []T, rng *rand.Rand) T {
	return items[rng.Intn(len(items))]
}

func generatePlayers(count int, rng *rand.Rand) []galaxy.Player {
	players := make([]galaxy.Player, count)
	for i := range players {
		players[i] = galaxy.Player{
			ID:    fmt.Sprintf("player-%d", i+1),
			Name:  pick(playerNames, rng),
			Color: pick(palette, rng),
		}
	}
	return players
}

func generateAlliances(players []galaxy.Player, count int, rng *rand.Rand) []alliance.Alliance {
	alliances := make([]alliance.Alliance, 0, count)
	unassigned := make([]int, len(players))
	for i := range unassigned {
		unassigned[i] = i
	}

	for index := 0; index < count; index++ {
		entry := allianceNames[index%len(allianceNames)]
		id := fmt.Sprintf("alliance-%d", index+1)

		memberCount := 8 + rng.Intn(12)
		var members []string
		for m := 0; m < memberCount && len(unassigned) > 0; m++ {
			sel := rng.Intn(len(unassigned))
			playerIdx := unassigned[sel]
			unassigned = append(unassigned[:sel], unassigned[sel+1:]...)
			members = append(members, players[playerIdx].ID)
			players[playerIdx].AllianceID = id
		}

		var pacts []alliance.Pact
		if len(alliances) > 0 {
			target := alliances[rng.Intn(len(alliances))].ID
			pacts = append(pacts, alliance.Pact{
				ID:               fmt.Sprintf("pact-%d-1", index+1),
				Type:             alliance.PactAlly,
				TargetAllianceID: target,
			})
		}

		alliances = append(alliances, alliance.Alliance{
			ID:      id,
			Tag:     entry[0],
			Name:    entry[1],
			Color:   pick(palette, rng),
			Members: members,
			Ranks:   alliance.DefaultRanks(),
			Pacts:   pacts,
			Notes: []string{
				"* Operating area: core sector",
				"* Coordination: daily briefing 20:00",
			},
		})
	}

	return alliances
}

func generateSystems(cfg GenConfig, rng *rand.Rand, settleNoise, biomeNoise opensimplex.Noise, players []galaxy.Player) []galaxy.System {
	var systems []galaxy.System

	for sectorQ := 0; sectorQ < cfg.SectorWidth; sectorQ++ {
		for sectorR := 0; sectorR < cfg.SectorHeight; sectorR++ {
			sysIndex := rng.Intn(5)
			coord := galaxy.NewCoordinate(sectorQ, sectorR, sysIndex)
			id := fmt.Sprintf("system-%d-%d-%d", sectorQ, sectorR, sysIndex)

			// Settlement density from noise: 0.35..0.75 ownership chance.
			density := 0.35 + 0.4*settleNoise.Eval2(float64(sectorQ)*0.15, float64(sectorR)*0.15)

			systems = append(systems, galaxy.System{
				Coordinate:  coord,
				ID:          id,
				DisplayName: fmt.Sprintf("Sector %d:%d · %02d", sectorQ, sectorR, sysIndex),
				Planets:     generatePlanets(id, coord, density, rng, biomeNoise, players),
			})
		}
	}
	return systems
}

func generatePlanets(systemID string, coord galaxy.Coordinate, density float64, rng *rand.Rand, biomeNoise opensimplex.Noise, players []galaxy.Player) []galaxy.Planet {
	planets := make([]galaxy.Planet, galaxy.PlanetsPerSystem)
	for slot := range planets {
		var ownerID, allianceID string
		if rng.Float64() < density && len(players) > 0 {
			owner := pick(players, rng)
			ownerID = owner.ID
			allianceID = owner.AllianceID
		}

		// Regional biome bias, jittered per slot.
		regional := biomeNoise.Eval2(float64(coord.Axial.Q)*0.05, float64(coord.Axial.R)*0.05)
		biome := galaxy.Biome(int(regional*5+float64(rng.Intn(3))) % 5)

		planets[slot] = galaxy.Planet{
			ID:         fmt.Sprintf("%s-planet-%d", systemID, slot+1),
			SystemID:   systemID,
			Slot:       slot + 1,
			Name:       pick(planetNames, rng),
			Biome:      biome,
			OwnerID:    ownerID,
			AllianceID: allianceID,
		}
	}
	return planets
}
