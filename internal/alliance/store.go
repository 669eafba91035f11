package alliance

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// FetchFunc loads the alliance directory from the backend: alliances, open
// invite codes, and the current commander's alliance id.
type FetchFunc func(ctx context.Context) ([]Alliance, map[string]string, string, error)

// Roster is the slice of the galaxy directory the alliance store needs:
// who the commander is, and mirroring membership onto player records.
type Roster interface {
	CurrentPlayerID() string
	SetPlayerAlliance(playerID, allianceID string)
}

// Store is the alliance directory state container. Refresh pulls from the
// backend and falls back to the bootstrap data when the call fails, so the
// store keeps working offline.
type Store struct {
	mu           sync.Mutex
	alliances    []Alliance
	invites      map[string]string
	myAllianceID string

	fetch     FetchFunc
	bootstrap []Alliance
	roster    Roster
}

// NewStore creates an alliance store. bootstrap is the locally generated
// fallback used when fetch fails or is nil.
func NewStore(fetch FetchFunc, bootstrap []Alliance, roster Roster) *Store {
	return &Store{
		invites:   make(map[string]string),
		fetch:     fetch,
		bootstrap: bootstrap,
		roster:    roster,
	}
}

// synthesizeInvites derives a TAG-JOIN invite code per alliance when the
// backend supplies none.
func synthesizeInvites(alliances []Alliance) map[string]string {
	invites := make(map[string]string, len(alliances))
	for _, a := range alliances {
		invites[a.Tag+"-JOIN"] = a.ID
	}
	return invites
}

// Refresh loads the alliance directory, preferring the backend and falling
// back to the bootstrap data on failure.
func (s *Store) Refresh(ctx context.Context) {
	currentPlayerID := s.roster.CurrentPlayerID()

	var (
		alliances         []Alliance
		invites           map[string]string
		currentAllianceID string
	)

	loaded := false
	if s.fetch != nil {
		fetched, fetchedInvites, fetchedCurrent, err := s.fetch(ctx)
		if err != nil {
			slog.Warn("alliance directory fetch failed, using bootstrap data", "error", err)
		} else {
			alliances, invites, currentAllianceID = fetched, fetchedInvites, fetchedCurrent
			loaded = true
		}
	}
	if !loaded {
		alliances = make([]Alliance, len(s.bootstrap))
		copy(alliances, s.bootstrap)
	}

	if len(invites) == 0 {
		invites = synthesizeInvites(alliances)
	}
	if currentAllianceID == "" {
		for _, a := range alliances {
			for _, member := range a.Members {
				if member == currentPlayerID {
					currentAllianceID = a.ID
					break
				}
			}
		}
	}

	s.mu.Lock()
	s.alliances = alliances
	s.invites = invites
	s.myAllianceID = currentAllianceID
	s.mu.Unlock()
}

// Alliances returns a copy of the directory.
func (s *Store) Alliances() []Alliance {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Alliance, len(s.alliances))
	copy(out, s.alliances)
	return out
}

// Invites returns the open invite codes.
func (s *Store) Invites() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]string, len(s.invites))
	for code, id := range s.invites {
		out[code] = id
	}
	return out
}

// MyAllianceID returns the commander's alliance id, empty when unaligned.
func (s *Store) MyAllianceID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.myAllianceID
}

func (s *Store) findLocked(id string) *Alliance {
	for i := range s.alliances {
		if s.alliances[i].ID == id {
			return &s.alliances[i]
		}
	}
	return nil
}

// Create founds a new alliance with the commander as sole member and
// leader.
func (s *Store) Create(tag, name, color string) (Alliance, error) {
	playerID := s.roster.CurrentPlayerID()

	s.mu.Lock()
	if s.myAllianceID != "" {
		s.mu.Unlock()
		return Alliance{}, fmt.Errorf("already member of alliance %s", s.myAllianceID)
	}

	a := Alliance{
		ID:      uuid.NewString(),
		Tag:     tag,
		Name:    name,
		Color:   color,
		Members: []string{playerID},
		Ranks:   DefaultRanks(),
	}
	s.alliances = append(s.alliances, a)
	s.invites[tag+"-JOIN"] = a.ID
	s.myAllianceID = a.ID
	s.mu.Unlock()

	s.roster.SetPlayerAlliance(playerID, a.ID)
	return a, nil
}

// Join redeems an invite code for the commander.
func (s *Store) Join(inviteCode string) error {
	playerID := s.roster.CurrentPlayerID()

	s.mu.Lock()
	allianceID, ok := s.invites[inviteCode]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("unknown invite code %q", inviteCode)
	}
	target := s.findLocked(allianceID)
	if target == nil {
		s.mu.Unlock()
		return fmt.Errorf("invite %q points at missing alliance %s", inviteCode, allianceID)
	}

	if prev := s.findLocked(s.myAllianceID); prev != nil {
		for i, member := range prev.Members {
			if member == playerID {
				prev.Members = append(prev.Members[:i], prev.Members[i+1:]...)
				break
			}
		}
	}

	already := false
	for _, member := range target.Members {
		if member == playerID {
			already = true
			break
		}
	}
	if !already {
		target.Members = append(target.Members, playerID)
	}
	s.myAllianceID = allianceID
	s.mu.Unlock()

	s.roster.SetPlayerAlliance(playerID, allianceID)
	return nil
}

// Leave removes the commander from their alliance.
func (s *Store) Leave() error {
	playerID := s.roster.CurrentPlayerID()

	s.mu.Lock()
	current := s.findLocked(s.myAllianceID)
	if current == nil {
		s.mu.Unlock()
		return fmt.Errorf("not in an alliance")
	}
	for i, member := range current.Members {
		if member == playerID {
			current.Members = append(current.Members[:i], current.Members[i+1:]...)
			break
		}
	}
	s.myAllianceID = ""
	s.mu.Unlock()

	s.roster.SetPlayerAlliance(playerID, "")
	return nil
}

// AddNote appends a note to the commander's alliance board.
func (s *Store) AddNote(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.findLocked(s.myAllianceID)
	if current == nil {
		return fmt.Errorf("not in an alliance")
	}
	current.Notes = append(current.Notes, text)
	return nil
}

// AddPact records a diplomatic pact with another alliance.
func (s *Store) AddPact(pactType PactType, targetAllianceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.findLocked(s.myAllianceID)
	if current == nil {
		return fmt.Errorf("not in an alliance")
	}
	if s.findLocked(targetAllianceID) == nil {
		return fmt.Errorf("unknown alliance %q", targetAllianceID)
	}
	current.Pacts = append(current.Pacts, Pact{
		ID:               uuid.NewString(),
		Type:             pactType,
		TargetAllianceID: targetAllianceID,
	})
	return nil
}
