// Package layout packs rectangular structure footprints into non-overlapping
// tiled clusters.
//
// Areas and tiled areas live in one arena (Layout) and refer to each other by
// index, so an Area knows its TiledArea without holding a pointer to it.
package layout

import (
	"fmt"

	"github.com/talgya/hamlet/internal/geom"
)

// AreaID indexes an Area within its Layout.
type AreaID int

// TileID indexes a TiledArea within its Layout.
type TileID int

// NoTile marks an Area that has not been committed to a TiledArea.
const NoTile TileID = -1

// AreaKind is the closed set of structure footprints.
type AreaKind uint8

const (
	KindHut AreaKind = iota
	KindElderHut
)

func (k AreaKind) String() string {
	switch k {
	case KindHut:
		return "hut"
	case KindElderHut:
		return "elder hut"
	default:
		return fmt.Sprintf("AreaKind(%d)", uint8(k))
	}
}

// Area is an oriented rectangular claim on the ground.
type Area struct {
	ID   AreaID   `json:"id"`
	Kind AreaKind `json:"kind"`
	Box  geom.Box `json:"box"`
	Tile TileID   `json:"tile"`
}

// Center returns the footprint center.
func (a Area) Center() geom.Vec3 {
	return a.Box.Center
}

// Dimensions returns width, height and depth.
func (a Area) Dimensions() geom.Vec3 {
	return a.Box.Dimensions
}

// Orientation returns the footprint rotation.
func (a Area) Orientation() geom.Rotation {
	return a.Box.Orientation
}

// Contains reports whether p lies inside the footprint.
func (a Area) Contains(p geom.Vec3) bool {
	return geom.PointInOrientedBox(p, a.Box)
}

// halfExtentAlong returns half the area's size along the forward axis when
// forward is true, and along the right axis otherwise.
func (a Area) halfExtentAlong(forward bool) float64 {
	if forward {
		return a.Box.Dimensions.Z / 2
	}
	return a.Box.Dimensions.X / 2
}
