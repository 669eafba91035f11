package mission

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/talgya/steamraiders/internal/galaxy"
	"github.com/talgya/steamraiders/internal/notify"
)

// Store tracks planned missions and resolves fleet travel timelines.
// Ownership transfers on conquest go through the galaxy directory's
// SetPlanetOwner, synchronously within the same advance call.
type Store struct {
	mu       sync.Mutex
	missions []Mission

	originPlanetID string
	originSystemID string

	directory *galaxy.Directory
	notifier  *notify.Center
}

// NewStore creates a mission store. The origin defaults to the current
// commander's home planet.
func NewStore(directory *galaxy.Directory, notifier *notify.Center) *Store {
	s := &Store{directory: directory, notifier: notifier}
	if home, ok := directory.HomePlanet(); ok {
		s.originPlanetID = home.ID
		s.originSystemID = home.SystemID
	}
	return s
}

// SetOriginPlanet changes the designated departure planet. Unknown planets
// are rejected.
func (s *Store) SetOriginPlanet(planetID string) error {
	planet, ok := s.directory.PlanetByID(planetID)
	if !ok {
		return fmt.Errorf("unknown planet %q", planetID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.originPlanetID = planet.ID
	s.originSystemID = planet.SystemID
	return nil
}

// Missions returns a copy of all missions, newest first.
func (s *Store) Missions() []Mission {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Mission, len(s.missions))
	copy(out, s.missions)
	return out
}

func (s *Store) locationFor(planetID string) (Location, galaxy.System, bool) {
	planet, ok := s.directory.PlanetByID(planetID)
	if !ok {
		return Location{}, galaxy.System{}, false
	}
	system, ok := s.directory.SystemByID(planet.SystemID)
	if !ok {
		return Location{}, galaxy.System{}, false
	}
	return Location{
		SystemID:   system.ID,
		PlanetID:   planet.ID,
		Slot:       planet.Slot,
		PlanetName: planet.Name,
		OwnerID:    planet.OwnerID,
		AllianceID: planet.AllianceID,
	}, system, true
}

// Plan creates a mission from the current origin to the target planet at
// the given timestamp. Origin and target metadata are snapshotted and do
// not live-update.
func (s *Store) Plan(targetPlanetID string, missionType Type, now int64) (Mission, error) {
	s.mu.Lock()
	originID := s.originPlanetID
	s.mu.Unlock()

	origin, originSystem, okOrigin := s.locationFor(originID)
	target, targetSystem, okTarget := s.locationFor(targetPlanetID)
	if !okOrigin || !okTarget {
		s.notifier.Push(
			"Mission could not be planned",
			"Origin or target planet could not be resolved.",
			notify.Warning,
		)
		return Mission{}, fmt.Errorf("unresolvable origin or target planet")
	}

	distance := galaxy.Distance(originSystem.Axial, targetSystem.Axial)
	m := Mission{
		ID:          uuid.NewString(),
		Type:        missionType,
		CommanderID: s.directory.CurrentPlayerID(),
		Origin:      origin,
		Target:      target,
		Status:      Planned,
		Schedule:    BuildSchedule(missionType, distance, now),
	}

	s.mu.Lock()
	s.missions = append([]Mission{m}, s.missions...)
	s.mu.Unlock()

	s.notifier.Push(
		fmt.Sprintf("%s prepared", missionType),
		fmt.Sprintf("Launch in %d min towards %s:%d",
			PreparationTime/60000, galaxy.FormatCoordinate(targetSystem.Coordinate), target.Slot),
		notify.Info,
	)
	return m, nil
}

// Recall turns an unlaunched or enroute mission around. Completed and
// cancelled missions are left untouched.
func (s *Store) Recall(missionID string, now int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.missions {
		m := &s.missions[i]
		if m.ID != missionID {
			continue
		}
		if m.Status.Terminal() || m.Status == Returning {
			return fmt.Errorf("mission %s not recallable in state %s", missionID, m.Status)
		}
		m.Status = Returning
		// The fleet retraces the distance already covered.
		m.ArrivalAt = now + (now - m.LaunchAt)
		if m.ArrivalAt < now {
			m.ArrivalAt = now
		}
		return nil
	}
	return fmt.Errorf("unknown mission %q", missionID)
}

// Cancel scraps a mission that has not left the hangar yet.
func (s *Store) Cancel(missionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.missions {
		m := &s.missions[i]
		if m.ID != missionID {
			continue
		}
		if m.Status != Planned {
			return fmt.Errorf("mission %s already launched", missionID)
		}
		m.Status = Cancelled
		return nil
	}
	return fmt.Errorf("unknown mission %q", missionID)
}

// Advance moves every non-terminal mission forward to the given timestamp.
// Attack and colonize missions transfer target ownership to the commander
// exactly once, through the directory, before the completion notification
// goes out. Completed missions never transition again.
func (s *Store) Advance(now int64) {
	commanderID := s.directory.CurrentPlayerID()
	allianceID := ""
	if player, ok := s.directory.PlayerByID(commanderID); ok {
		allianceID = player.AllianceID
	}

	type transition struct {
		mission Mission
		status  Status
	}
	var transitions []transition

	s.mu.Lock()
	for i := range s.missions {
		m := &s.missions[i]
		if m.Status.Terminal() {
			continue
		}

		previous := m.Status
		if m.Status == Planned && now >= m.LaunchAt {
			m.Status = Enroute
		}
		if m.Status == Enroute && now >= m.ArrivalAt {
			m.Status = Completed
			if m.Type == Attack || m.Type == Colonize {
				m.Target.OwnerID = commanderID
				m.Target.AllianceID = allianceID
			}
		}
		if m.Status == Returning && now >= m.ArrivalAt {
			m.Status = Cancelled
		}

		if previous != m.Status {
			transitions = append(transitions, transition{mission: *m, status: m.Status})
		}
	}
	s.mu.Unlock()

	for _, tr := range transitions {
		m := tr.mission
		switch tr.status {
		case Enroute:
			s.notifier.Push(
				fmt.Sprintf("%s departed", m.Type),
				fmt.Sprintf("Fleet underway to %s:%d", s.targetCoordinate(m), m.Target.Slot),
				notify.Info,
			)
		case Completed:
			if m.Type == Attack || m.Type == Colonize {
				if err := s.directory.SetPlanetOwner(m.Target.PlanetID, commanderID, allianceID); err != nil {
					slog.Error("ownership transfer failed",
						"mission_id", m.ID, "planet_id", m.Target.PlanetID, "error", err)
				}
			}
			s.notifier.Push(
				fmt.Sprintf("%s completed", m.Type),
				fmt.Sprintf("%s reached.", m.Target.PlanetName),
				notify.Success,
			)
		case Cancelled:
			s.notifier.Push(
				fmt.Sprintf("%s returned", m.Type),
				"Fleet back in the hangar.",
				notify.Info,
			)
		}
	}
}

func (s *Store) targetCoordinate(m Mission) string {
	if system, ok := s.directory.SystemByID(m.Target.SystemID); ok {
		return galaxy.FormatCoordinate(system.Coordinate)
	}
	return m.Target.SystemID
}
