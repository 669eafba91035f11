package galaxy

import (
	"fmt"
	"sync"
	"time"
)

// Biome classifies a planet for display and flavor.
type Biome uint8

const (
	BiomeBrassDesert Biome = iota
	BiomeAetherMoor
	BiomeSteamArchipelago
	BiomeClockworkSteppe
	BiomeGlimmerRift
)

var biomeNames = [...]string{"Brass Desert", "Aether Moor", "Steam Archipelago", "Clockwork Steppe", "Glimmer Rift"}

func (b Biome) String() string {
	if int(b) < len(biomeNames) {
		return biomeNames[b]
	}
	return "Unknown"
}

// PlanetsPerSystem is the fixed number of planet slots in every system.
const PlanetsPerSystem = 7

// Planet is a single planet slot within a system. Ownership is nullable;
// AllianceID mirrors the owner's alliance and is not authoritative on its
// own.
type Planet struct {
	ID         string `json:"id"`
	SystemID   string `json:"systemId"`
	Slot       int    `json:"slot"`
	Name       string `json:"name"`
	Biome      Biome  `json:"biome"`
	OwnerID    string `json:"ownerId,omitempty"`
	AllianceID string `json:"allianceId,omitempty"`
}

// System owns an ordered list of planet slots at one galaxy coordinate.
type System struct {
	Coordinate
	ID          string   `json:"id"`
	DisplayName string   `json:"displayName"`
	Planets     []Planet `json:"planets"`
}

// Player is a directory entry for a commander.
type Player struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Color      string `json:"color"`
	AllianceID string `json:"allianceId,omitempty"`
}

// PlanetSummary is one owned planet in a player profile.
type PlanetSummary struct {
	PlanetID    string `json:"planetId"`
	SystemID    string `json:"systemId"`
	Slot        int    `json:"slot"`
	Biome       Biome  `json:"biome"`
	Coordinates string `json:"coordinates"`
	IsFavorite  bool   `json:"isFavorite"`
}

// Profile is the extended directory view of a single player.
type Profile struct {
	ID           string          `json:"id"`
	Tagline      string          `json:"tagline"`
	LastActiveAt int64           `json:"lastActiveAt"`
	AllianceID   string          `json:"allianceId,omitempty"`
	Planets      []PlanetSummary `json:"planets"`
}

// Directory is the in-memory galaxy directory: systems with their planets,
// the player roster, and the locally controlled commander. Missions call
// SetPlanetOwner when a conquest resolves; everything else reads.
type Directory struct {
	mu              sync.Mutex
	systems         []System
	systemIndex     map[string]*System
	planetIndex     map[string]*Planet
	players         []Player
	currentPlayerID string
	favorites       map[string]bool
}

// NewDirectory builds a directory over the given snapshot data.
func NewDirectory(systems []System, players []Player, currentPlayerID string) *Directory {
	d := &Directory{
		systems:         systems,
		systemIndex:     make(map[string]*System, len(systems)),
		planetIndex:     make(map[string]*Planet),
		players:         players,
		currentPlayerID: currentPlayerID,
		favorites:       make(map[string]bool),
	}
	for i := range d.systems {
		sys := &d.systems[i]
		d.systemIndex[sys.ID] = sys
		for j := range sys.Planets {
			d.planetIndex[sys.Planets[j].ID] = &sys.Planets[j]
		}
	}
	return d
}

// CurrentPlayerID returns the locally controlled commander id.
func (d *Directory) CurrentPlayerID() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.currentPlayerID
}

// cloneSystem copies a system including its planet slots. Returned systems
// must never alias the internal planet array: SetPlanetOwner writes through
// planetIndex into it, concurrently with readers holding old snapshots.
func cloneSystem(s *System) System {
	out := *s
	out.Planets = make([]Planet, len(s.Planets))
	copy(out.Planets, s.Planets)
	return out
}

// Systems returns a copy of the system list.
func (d *Directory) Systems() []System {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]System, len(d.systems))
	for i := range d.systems {
		out[i] = cloneSystem(&d.systems[i])
	}
	return out
}

// Players returns a copy of the player roster.
func (d *Directory) Players() []Player {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]Player, len(d.players))
	copy(out, d.players)
	return out
}

// PlayerByID looks up a roster entry.
func (d *Directory) PlayerByID(id string) (Player, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, p := range d.players {
		if p.ID == id {
			return p, true
		}
	}
	return Player{}, false
}

// SystemByID looks up a system.
func (d *Directory) SystemByID(id string) (System, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if sys, ok := d.systemIndex[id]; ok {
		return cloneSystem(sys), true
	}
	return System{}, false
}

// PlanetByID looks up a planet across all systems.
func (d *Directory) PlanetByID(id string) (Planet, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if p, ok := d.planetIndex[id]; ok {
		return *p, true
	}
	return Planet{}, false
}

// SystemByCoordinate resolves a parsed deep-link coordinate to a known
// system. Unknown coordinates return false and trigger no navigation.
func (d *Directory) SystemByCoordinate(c Coordinate) (System, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for i := range d.systems {
		s := &d.systems[i]
		if s.SectorQ == c.SectorQ && s.SectorR == c.SectorR && s.SysIndex == c.SysIndex {
			return cloneSystem(s), true
		}
	}
	return System{}, false
}

// SetPlanetOwner transfers planet ownership, mirroring the owner's
// alliance tag. This is the capability mission resolution calls, exactly
// once per conquest.
func (d *Directory) SetPlanetOwner(planetID, ownerID, allianceID string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	p, ok := d.planetIndex[planetID]
	if !ok {
		return fmt.Errorf("unknown planet %q", planetID)
	}
	p.OwnerID = ownerID
	p.AllianceID = allianceID
	return nil
}

// SetPlayerAlliance updates a player's alliance membership in the roster.
func (d *Directory) SetPlayerAlliance(playerID, allianceID string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for i := range d.players {
		if d.players[i].ID == playerID {
			d.players[i].AllianceID = allianceID
			return
		}
	}
}

// ToggleFavorite flips the favorite flag for a planet and returns the new
// state.
func (d *Directory) ToggleFavorite(planetID string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.favorites[planetID] = !d.favorites[planetID]
	return d.favorites[planetID]
}

// HomePlanet returns the first planet owned by the current player, falling
// back to the first planet of the first system when the commander owns
// nothing yet.
func (d *Directory) HomePlanet() (Planet, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for i := range d.systems {
		for j := range d.systems[i].Planets {
			if d.systems[i].Planets[j].OwnerID == d.currentPlayerID {
				return d.systems[i].Planets[j], true
			}
		}
	}
	if len(d.systems) > 0 && len(d.systems[0].Planets) > 0 {
		return d.systems[0].Planets[0], true
	}
	return Planet{}, false
}

// ProfileFor derives the profile view of a player from current directory
// state, including the per-planet favorite flag.
func (d *Directory) ProfileFor(playerID string) Profile {
	d.mu.Lock()
	defer d.mu.Unlock()

	var player *Player
	playerIndex := 0
	for i := range d.players {
		if d.players[i].ID == playerID {
			player = &d.players[i]
			playerIndex = i
			break
		}
	}

	profile := Profile{
		ID:           playerID,
		Tagline:      "Commander · Arcana Fleet",
		LastActiveAt: time.Now().UnixMilli() - int64(playerIndex)*time.Hour.Milliseconds(),
	}
	if player != nil {
		profile.Tagline = player.Name + " · Arcana Fleet"
		profile.AllianceID = player.AllianceID
	}

	for i := range d.systems {
		sys := &d.systems[i]
		for _, p := range sys.Planets {
			if p.OwnerID != playerID {
				continue
			}
			profile.Planets = append(profile.Planets, PlanetSummary{
				PlanetID:    p.ID,
				SystemID:    sys.ID,
				Slot:        p.Slot,
				Biome:       p.Biome,
				Coordinates: fmt.Sprintf("%s:%d", FormatCoordinate(sys.Coordinate), p.Slot),
				IsFavorite:  d.favorites[p.ID],
			})
		}
	}
	return profile
}
