// Package galaxy holds the hex-grid geometry and the galaxy directory of
// systems, planets, and players.
//
// The map uses pointy-top axial coordinates (q, r); the third cube
// coordinate s is derived as -q-r.
package galaxy

import (
	"fmt"
	"strconv"
	"strings"
)

// Axial is a position on the hex grid in axial coordinates.
type Axial struct {
	Q int `json:"q"`
	R int `json:"r"`
}

// S returns the implicit third cube coordinate.
func (a Axial) S() int {
	return -a.Q - a.R
}

// Coordinate addresses a system by sector and index, with the derived
// axial position used for all distance math. Immutable once generated.
type Coordinate struct {
	SectorQ  int   `json:"sectorQ"`
	SectorR  int   `json:"sectorR"`
	SysIndex int   `json:"sysIndex"`
	Axial    Axial `json:"axial"`
}

// sqrt3 is cached for the pointy-top pixel projection.
const sqrt3 = 1.7320508075688772

// AxialToPixel projects an axial coordinate to pixel space for a pointy-top
// layout with the given hex size.
func AxialToPixel(a Axial, size float64) (x, y float64) {
	x = size * (sqrt3*float64(a.Q) + sqrt3/2*float64(a.R))
	y = size * 1.5 * float64(a.R)
	return x, y
}

// Distance returns the hex-grid distance between two axial coordinates
// using the cube-coordinate metric.
func Distance(a, b Axial) int {
	dq := abs(a.Q - b.Q)
	dr := abs(a.R - b.R)
	ds := abs(a.S() - b.S())
	return (dq + dr + ds) / 2
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// DeriveAxial maps a sector/index triplet onto the axial grid in a simple
// deterministic layout shared by the generator and the coordinate parser.
func DeriveAxial(sectorQ, sectorR, sysIndex int) Axial {
	return Axial{
		Q: sectorQ*5 + sysIndex,
		R: sectorR*5 - sysIndex,
	}
}

// NewCoordinate builds a coordinate with its derived axial position.
func NewCoordinate(sectorQ, sectorR, sysIndex int) Coordinate {
	return Coordinate{
		SectorQ:  sectorQ,
		SectorR:  sectorR,
		SysIndex: sysIndex,
		Axial:    DeriveAxial(sectorQ, sectorR, sysIndex),
	}
}

// FormatCoordinate renders the "sectorQ,sectorR,sysIndex" form used in
// bookmarks and the sys deep-link query parameter.
func FormatCoordinate(c Coordinate) string {
	return fmt.Sprintf("%d,%d,%d", c.SectorQ, c.SectorR, c.SysIndex)
}

// ParseCoordinate parses the deep-link coordinate form. Malformed input
// yields (zero, false) rather than an error; callers silently ignore it.
func ParseCoordinate(value string) (Coordinate, bool) {
	parts := strings.Split(value, ",")
	if len(parts) != 3 {
		return Coordinate{}, false
	}
	nums := make([]int, 3)
	for i, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return Coordinate{}, false
		}
		nums[i] = n
	}
	return NewCoordinate(nums[0], nums[1], nums[2]), true
}
