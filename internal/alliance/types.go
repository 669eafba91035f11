// Package alliance provides the alliance directory: lightweight membership,
// ranks, pacts, and shared notes for coordinating commanders.
package alliance

// RankPermissions spells out what members of a rank may do.
type RankPermissions struct {
	Invite      bool `json:"invite"`
	Remove      bool `json:"remove"`
	EditNotes   bool `json:"editNotes"`
	ManagePacts bool `json:"managePacts"`
}

// Rank is one rung of an alliance hierarchy.
type Rank struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Permissions RankPermissions `json:"permissions"`
}

// PactType distinguishes non-aggression pacts from full alliances.
type PactType string

const (
	PactNAP  PactType = "nap"
	PactAlly PactType = "ally"
)

// Pact is a diplomatic agreement with another alliance.
type Pact struct {
	ID               string   `json:"id"`
	Type             PactType `json:"type"`
	TargetAllianceID string   `json:"targetAllianceId"`
}

// Alliance groups commanders under a shared tag.
type Alliance struct {
	ID      string   `json:"id"`
	Tag     string   `json:"tag"`
	Name    string   `json:"name"`
	Color   string   `json:"color"`
	Members []string `json:"members"`
	Ranks   []Rank   `json:"ranks"`
	Pacts   []Pact   `json:"pacts"`
	Notes   []string `json:"notes"`
}

// DefaultRanks returns the standard three-tier hierarchy for a new
// alliance.
func DefaultRanks() []Rank {
	return []Rank{
		{
			ID:          "leader",
			Name:        "Leader",
			Permissions: RankPermissions{Invite: true, Remove: true, EditNotes: true, ManagePacts: true},
		},
		{
			ID:          "officer",
			Name:        "Officer",
			Permissions: RankPermissions{Invite: true, Remove: true, EditNotes: true},
		},
		{
			ID:          "member",
			Name:        "Member",
			Permissions: RankPermissions{EditNotes: true},
		},
	}
}
