package apiclient

import (
	"context"
	"fmt"

	"github.com/talgya/steamraiders/internal/alliance"
	"github.com/talgya/steamraiders/internal/galaxy"
)

// DirectorySnapshot is the backend's galaxy directory payload.
type DirectorySnapshot struct {
	Systems         []galaxy.System `json:"systems"`
	Players         []galaxy.Player `json:"players"`
	CurrentPlayerID string          `json:"currentPlayerId"`
	Alliances       []struct {
		ID    string `json:"id"`
		Color string `json:"color"`
	} `json:"alliances"`
}

// FetchDirectorySnapshot loads the galaxy directory: systems, players, and
// the active commander id.
func (c *Client) FetchDirectorySnapshot(ctx context.Context) (DirectorySnapshot, error) {
	var snap DirectorySnapshot
	err := c.Do(ctx, Request{Path: "/directory/snapshot"}, &snap)
	return snap, err
}

// FetchPlayerProfile loads the extended profile of a single player.
func (c *Client) FetchPlayerProfile(ctx context.Context, playerID string) (galaxy.Profile, error) {
	var profile galaxy.Profile
	err := c.Do(ctx, Request{Path: fmt.Sprintf("/directory/players/%s", playerID)}, &profile)
	return profile, err
}

// AllianceDirectory is the backend's alliance listing.
type AllianceDirectory struct {
	Alliances         []alliance.Alliance `json:"alliances"`
	Invites           map[string]string   `json:"invites"`
	CurrentAllianceID string              `json:"currentAllianceId,omitempty"`
}

// FetchAllianceDirectory loads alliances and open invites for the current
// commander.
func (c *Client) FetchAllianceDirectory(ctx context.Context) (AllianceDirectory, error) {
	var dir AllianceDirectory
	err := c.Do(ctx, Request{Path: "/alliances/directory"}, &dir)
	return dir, err
}
