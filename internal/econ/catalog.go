// Static catalog of constructible buildings, research topics, and ship
// blueprints, together with the starting state of a new colony.
package econ

// Building describes a constructible facility with its economy parameters.
// Base values apply at level 1; every further level scales by the matching
// multiplier.
type Building struct {
	ID                string
	Name              string
	Description       string
	BaseCost          Amounts
	CostMultiplier    float64
	BaseProduction    Amounts // Per-hour yield at level 1 (zero for non-producers)
	ProductionMult    float64
	BaseEnergyUse     float64 // Kesseldruck consumed while operating (0 = none)
	EnergyUseMult     float64
	BaseEnergySupply  float64 // Kesseldruck generated (0 = none)
	EnergySupplyMult  float64
}

// Research describes an upgradeable research topic. Research has no
// production or energy component, only a cost curve.
type Research struct {
	ID             string
	Name           string
	Description    string
	BaseCost       Amounts
	CostMultiplier float64
}

// ShipBlueprint describes a producible ship design for the shipyard.
type ShipBlueprint struct {
	ID               string
	Name             string
	Description      string
	Role             string
	HangarSlots      int // Hangar capacity consumed per hull, queued or stored
	BaseCost         Amounts
	BuildTimeSeconds int
	Crew             int
	Cargo            int
}

// Buildings is the full facility catalog keyed by id.
var Buildings = map[string]Building{
	"orichalcumSmelter": {
		ID:             "orichalcumSmelter",
		Name:           "Orichalcum Smelter",
		Description:    "Smelts raw ore into orichalcum, the primary construction material.",
		BaseCost:       Amounts{60, 15, 0},
		CostMultiplier: 1.5,
		BaseProduction: Amounts{20, 0, 0},
		ProductionMult: 1.12,
		BaseEnergyUse:  10,
		EnergyUseMult:  1.1,
	},
	"crystalCondenser": {
		ID:             "crystalCondenser",
		Name:           "Crystal Condenser",
		Description:    "Condenses focus crystals needed for advanced electronics and research.",
		BaseCost:       Amounts{48, 24, 0},
		CostMultiplier: 1.6,
		BaseProduction: Amounts{0, 10, 0},
		ProductionMult: 1.13,
		BaseEnergyUse:  12,
		EnergyUseMult:  1.1,
	},
	"vitriolStill": {
		ID:             "vitriolStill",
		Name:           "Vitriol Still",
		Description:    "Distills vitriol gas, the fuel for fleets and heavy machinery.",
		BaseCost:       Amounts{225, 75, 0},
		CostMultiplier: 1.5,
		BaseProduction: Amounts{0, 0, 5},
		ProductionMult: 1.14,
		BaseEnergyUse:  20,
		EnergyUseMult:  1.1,
	},
	"steamPlant": {
		ID:               "steamPlant",
		Name:             "Steam Plant",
		Description:      "Generates the kesseldruck that keeps every facility on the colony running.",
		BaseCost:         Amounts{75, 30, 0},
		CostMultiplier:   1.7,
		ProductionMult:   1.1,
		BaseEnergySupply: 30,
		EnergySupplyMult: 1.12,
	},
}

// ResearchTopics is the research catalog keyed by id.
var ResearchTopics = map[string]Research{
	"aetherdynamics": {
		ID:             "aetherdynamics",
		Name:           "Aetherdynamics",
		Description:    "Improves drive efficiency and raises fleet travel speed.",
		BaseCost:       Amounts{200, 400, 100},
		CostMultiplier: 2,
	},
	"armorTechnology": {
		ID:             "armorTechnology",
		Name:           "Armor Technology",
		Description:    "Reinforces the hulls of ships and defensive installations.",
		BaseCost:       Amounts{800, 200, 0},
		CostMultiplier: 2,
	},
	"espionage": {
		ID:             "espionage",
		Name:           "Espionage Technology",
		Description:    "Enables spy probes and improves intelligence gathering.",
		BaseCost:       Amounts{200, 1000, 200},
		CostMultiplier: 2,
	},
	"pressureTuning": {
		ID:             "pressureTuning",
		Name:           "Kesseldruck Tuning",
		Description:    "Raises generation efficiency and lowers the energy draw of all facilities.",
		BaseCost:       Amounts{200, 200, 50},
		CostMultiplier: 2,
	},
	"arcEngineering": {
		ID:             "arcEngineering",
		Name:           "Arc Engineering",
		Description:    "Enables advanced arc weaponry and long-range energy transfer.",
		BaseCost:       Amounts{400, 200, 100},
		CostMultiplier: 2,
	},
	"teslaCoils": {
		ID:             "teslaCoils",
		Name:           "Tesla Coil Research",
		Description:    "High-voltage coil arrays for planetary defense.",
		BaseCost:       Amounts{800, 600, 200},
		CostMultiplier: 2.5,
	},
	"aetherTheory": {
		ID:             "aetherTheory",
		Name:           "Aether Space Theory",
		Description:    "Foundations of aether travel and interstellar navigation.",
		BaseCost:       Amounts{1200, 1200, 500},
		CostMultiplier: 2.5,
	},
	"observatoryGrid": {
		ID:             "observatoryGrid",
		Name:           "Observatory Grid",
		Description:    "Extends scan and espionage range through a network of observatories.",
		BaseCost:       Amounts{500, 1000, 200},
		CostMultiplier: 2,
	},
	"pistonDrive": {
		ID:             "pistonDrive",
		Name:           "Piston Drive",
		Description:    "Combustion drive improving the range of light ships.",
		BaseCost:       Amounts{300, 300, 50},
		CostMultiplier: 2,
	},
	"steamJet": {
		ID:             "steamJet",
		Name:           "Steam Jet",
		Description:    "Impulse drive raising travel speed through steam propulsion.",
		BaseCost:       Amounts{500, 500, 100},
		CostMultiplier: 2,
	},
	"aetherEngine": {
		ID:             "aetherEngine",
		Name:           "Aether Engine",
		Description:    "Hyperdrive built on condensed aether energy.",
		BaseCost:       Amounts{1600, 800, 300},
		CostMultiplier: 2.5,
	},
	"celestialMechanics": {
		ID:             "celestialMechanics",
		Name:           "Celestial Mechanics",
		Description:    "Astrophysics raising the capacity to chart and colonize planets.",
		BaseCost:       Amounts{2500, 1500, 500},
		CostMultiplier: 2.2,
	},
}

// Blueprints lists the producible ship designs in shipyard display order.
var Blueprints = []ShipBlueprint{
	{
		ID:               "scoutDrone",
		Name:             "Scout Drone",
		Description:      "Light reconnaissance unit with minimal crew requirements.",
		Role:             "Recon",
		HangarSlots:      1,
		BaseCost:         Amounts{300, 120, 80},
		BuildTimeSeconds: 900,
		Crew:             2,
		Cargo:            50,
	},
	{
		ID:               "coalFreighter",
		Name:             "Coal Freighter",
		Description:      "Massive hauler built for long-range transport missions.",
		Role:             "Transport",
		HangarSlots:      3,
		BaseCost:         Amounts{1200, 300, 600},
		BuildTimeSeconds: 3200,
		Crew:             30,
		Cargo:            4500,
	},
	{
		ID:               "stormFrigate",
		Name:             "Storm Frigate",
		Description:      "Armed combat frigate with balanced upkeep.",
		Role:             "Attack",
		HangarSlots:      4,
		BaseCost:         Amounts{2200, 800, 900},
		BuildTimeSeconds: 5400,
		Crew:             85,
		Cargo:            800,
	},
	{
		ID:               "aetherCarrier",
		Name:             "Aether Carrier",
		Description:      "Support ship carrying repair drones and a large crew.",
		Role:             "Support",
		HangarSlots:      5,
		BaseCost:         Amounts{3400, 1400, 1200},
		BuildTimeSeconds: 7600,
		Crew:             160,
		Cargo:            1200,
	},
}

// BlueprintByID resolves a blueprint from the catalog, nil if unknown.
func BlueprintByID(id string) *ShipBlueprint {
	for i := range Blueprints {
		if Blueprints[i].ID == id {
			return &Blueprints[i]
		}
	}
	return nil
}

// Starting state for a freshly founded colony.
var (
	InitialResources = Amounts{500, 500, 100}
	InitialStorage   = Amounts{10000, 10000, 5000}

	InitialBuildingLevels = map[string]int{
		"orichalcumSmelter": 1,
		"crystalCondenser":  1,
		"vitriolStill":      0,
		"steamPlant":        1,
	}
)

// MaxBuildQueueLength caps the number of simultaneously queued upgrades.
const MaxBuildQueueLength = 3
