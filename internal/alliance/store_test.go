package alliance_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/steamraiders/internal/alliance"
)

// fakeRoster stands in for the galaxy directory.
type fakeRoster struct {
	mu        sync.Mutex
	playerID  string
	assigned  map[string]string
}

func newFakeRoster(playerID string) *fakeRoster {
	return &fakeRoster{playerID: playerID, assigned: make(map[string]string)}
}

func (r *fakeRoster) CurrentPlayerID() string { return r.playerID }

func (r *fakeRoster) SetPlayerAlliance(playerID, allianceID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.assigned[playerID] = allianceID
}

func bootstrapAlliances() []alliance.Alliance {
	return []alliance.Alliance{
		{
			ID:      "alliance-1",
			Tag:     "AER",
			Name:    "Aetheric Expeditionaries",
			Members: []string{"me", "other"},
			Ranks:   alliance.DefaultRanks(),
		},
		{
			ID:      "alliance-2",
			Tag:     "BRG",
			Name:    "Brassgear Guard",
			Members: []string{"third"},
		},
	}
}

func TestRefreshFallsBackToBootstrap(t *testing.T) {
	failing := func(ctx context.Context) ([]alliance.Alliance, map[string]string, string, error) {
		return nil, nil, "", errors.New("backend down")
	}
	s := alliance.NewStore(failing, bootstrapAlliances(), newFakeRoster("me"))
	s.Refresh(context.Background())

	assert.Len(t, s.Alliances(), 2)
	assert.Equal(t, "alliance-1", s.MyAllianceID(), "membership derived from bootstrap members")
}

func TestRefreshSynthesizesInvites(t *testing.T) {
	s := alliance.NewStore(nil, bootstrapAlliances(), newFakeRoster("nobody"))
	s.Refresh(context.Background())

	invites := s.Invites()
	assert.Equal(t, "alliance-1", invites["AER-JOIN"])
	assert.Equal(t, "alliance-2", invites["BRG-JOIN"])
	assert.Empty(t, s.MyAllianceID())
}

func TestRefreshPrefersBackend(t *testing.T) {
	fetch := func(ctx context.Context) ([]alliance.Alliance, map[string]string, string, error) {
		return []alliance.Alliance{{ID: "remote-1", Tag: "RMT"}},
			map[string]string{"SECRET": "remote-1"},
			"remote-1", nil
	}
	s := alliance.NewStore(fetch, bootstrapAlliances(), newFakeRoster("me"))
	s.Refresh(context.Background())

	require.Len(t, s.Alliances(), 1)
	assert.Equal(t, "remote-1", s.Alliances()[0].ID)
	assert.Equal(t, "remote-1", s.Invites()["SECRET"])
	assert.Equal(t, "remote-1", s.MyAllianceID())
}

func TestCreate(t *testing.T) {
	roster := newFakeRoster("me")
	s := alliance.NewStore(nil, nil, roster)
	s.Refresh(context.Background())

	a, err := s.Create("STE", "Steamvigil", "#38bdf8")
	require.NoError(t, err)
	assert.Equal(t, []string{"me"}, a.Members)
	assert.NotEmpty(t, a.Ranks)
	assert.Equal(t, a.ID, s.MyAllianceID())
	assert.Equal(t, a.ID, s.Invites()["STE-JOIN"])
	assert.Equal(t, a.ID, roster.assigned["me"])

	_, err = s.Create("TWO", "Second Alliance", "#000000")
	assert.Error(t, err, "founding while already a member must fail")
}

func TestJoinAndLeave(t *testing.T) {
	roster := newFakeRoster("me")
	s := alliance.NewStore(nil, bootstrapAlliances(), roster)
	s.Refresh(context.Background())
	require.Equal(t, "alliance-1", s.MyAllianceID())

	assert.Error(t, s.Join("NO-SUCH-CODE"))

	// Switching alliances removes the commander from the old roster.
	require.NoError(t, s.Join("BRG-JOIN"))
	assert.Equal(t, "alliance-2", s.MyAllianceID())
	assert.Equal(t, "alliance-2", roster.assigned["me"])
	for _, a := range s.Alliances() {
		if a.ID == "alliance-1" {
			assert.NotContains(t, a.Members, "me")
		}
		if a.ID == "alliance-2" {
			assert.Contains(t, a.Members, "me")
		}
	}

	require.NoError(t, s.Leave())
	assert.Empty(t, s.MyAllianceID())
	assert.Equal(t, "", roster.assigned["me"])
	assert.Error(t, s.Leave(), "leaving twice must fail")
}

func TestAddNote(t *testing.T) {
	s := alliance.NewStore(nil, bootstrapAlliances(), newFakeRoster("me"))
	s.Refresh(context.Background())

	require.NoError(t, s.AddNote("* Rally at the glimmer rift"))
	for _, a := range s.Alliances() {
		if a.ID == "alliance-1" {
			assert.Contains(t, a.Notes, "* Rally at the glimmer rift")
		}
	}

	unaligned := alliance.NewStore(nil, bootstrapAlliances(), newFakeRoster("nobody"))
	unaligned.Refresh(context.Background())
	assert.Error(t, unaligned.AddNote("nope"))
}

func TestAddPact(t *testing.T) {
	s := alliance.NewStore(nil, bootstrapAlliances(), newFakeRoster("me"))
	s.Refresh(context.Background())

	assert.Error(t, s.AddPact(alliance.PactNAP, "no-such-alliance"))
	require.NoError(t, s.AddPact(alliance.PactNAP, "alliance-2"))

	for _, a := range s.Alliances() {
		if a.ID == "alliance-1" {
			require.Len(t, a.Pacts, 1)
			assert.Equal(t, alliance.PactNAP, a.Pacts[0].Type)
			assert.Equal(t, "alliance-2", a.Pacts[0].TargetAllianceID)
		}
	}
}
