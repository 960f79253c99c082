package layout

import (
	"fmt"

	"github.com/talgya/hamlet/internal/geom"
)

// Layout owns every Area and TiledArea of one settlement.
type Layout struct {
	// SnapPadding is given to each TiledArea founded from now on.
	SnapPadding float64

	areas []Area
	tiles []*TiledArea
}

// New returns an empty layout using DefaultSnapPadding.
func New() *Layout {
	return &Layout{SnapPadding: DefaultSnapPadding}
}

// Area returns the area with the given ID.
func (l *Layout) Area(id AreaID) Area {
	if id < 0 || int(id) >= len(l.areas) {
		panic(fmt.Sprintf("layout: unknown area %d", id))
	}
	return l.areas[id]
}

// Areas returns all areas in placement order.
func (l *Layout) Areas() []Area {
	out := make([]Area, len(l.areas))
	copy(out, l.areas)
	return out
}

// Tile returns the tiled area with the given ID.
func (l *Layout) Tile(id TileID) *TiledArea {
	if id < 0 || int(id) >= len(l.tiles) {
		panic(fmt.Sprintf("layout: unknown tiled area %d", id))
	}
	return l.tiles[id]
}

// Tiles returns the tiled areas in creation order.
func (l *Layout) Tiles() []*TiledArea {
	out := make([]*TiledArea, len(l.tiles))
	copy(out, l.tiles)
	return out
}

// Len returns the number of areas.
func (l *Layout) Len() int {
	return len(l.areas)
}

// Found commits box as the first member of a new TiledArea anchored on the
// box's orientation. The caller must have checked it is free.
func (l *Layout) Found(kind AreaKind, box geom.Box) (AreaID, TileID) {
	tile := &TiledArea{
		ID:          TileID(len(l.tiles)),
		Anchor:      box.Orientation,
		SnapPadding: l.SnapPadding,
	}
	l.tiles = append(l.tiles, tile)
	return l.addArea(tile, kind, box), tile.ID
}

// AddArea commits box into an existing TiledArea, aligning it with the
// tile's anchor. Overlap is not re-checked: callers confirm freedom with
// FindCollidingArea first.
func (l *Layout) AddArea(id TileID, kind AreaKind, box geom.Box) AreaID {
	tile := l.Tile(id)
	return l.addArea(tile, kind, box.Rotated(tile.Anchor))
}

func (l *Layout) addArea(tile *TiledArea, kind AreaKind, box geom.Box) AreaID {
	d := box.Dimensions
	if d.X < 2*MinStep || d.Y <= 0 || d.Z < 2*MinStep {
		panic(fmt.Sprintf("layout: area dimensions %v below minimum", d))
	}
	id := AreaID(len(l.areas))
	l.areas = append(l.areas, Area{ID: id, Kind: kind, Box: box, Tile: tile.ID})
	tile.members = append(tile.members, id)
	return id
}

// FindCollidingArea returns a member of the tiled area that candidate
// overlaps. Cheapest checks run first: center containment, a bounding
// sphere cull, candidate corners in members, then member corners in the
// candidate.
func (l *Layout) FindCollidingArea(id TileID, candidate geom.Box) (AreaID, bool) {
	tile := l.Tile(id)
	center := candidate.Center

	for _, m := range tile.members {
		if l.areas[m].Contains(center) {
			return m, true
		}
	}

	// Sum of half diagonals never rejects a touching pair.
	candRadius := candidate.HalfDiagonal()
	reduced := make([]AreaID, 0, len(tile.members))
	for _, m := range tile.members {
		reach := candRadius + l.areas[m].Box.HalfDiagonal()
		if center.Sub(l.areas[m].Center()).SqrLength() <= reach*reach {
			reduced = append(reduced, m)
		}
	}
	if len(reduced) == 0 {
		return 0, false
	}

	for _, corner := range candidate.Corners() {
		for _, m := range reduced {
			if l.areas[m].Contains(corner) {
				return m, true
			}
		}
	}

	for _, m := range reduced {
		for _, corner := range l.areas[m].Box.Corners() {
			if candidate.Contains(corner) {
				return m, true
			}
		}
	}
	return 0, false
}

// FindCollision checks candidate against every tiled area in creation
// order.
func (l *Layout) FindCollision(candidate geom.Box) (AreaID, bool) {
	for _, t := range l.tiles {
		if m, ok := l.FindCollidingArea(t.ID, candidate); ok {
			return m, true
		}
	}
	return 0, false
}

// AreaContaining returns the first area whose footprint contains p.
func (l *Layout) AreaContaining(p geom.Vec3) (AreaID, bool) {
	for _, a := range l.areas {
		if a.Contains(p) {
			return a.ID, true
		}
	}
	return 0, false
}

// SnapToClosestOpenSpace finds the nearest free center for candidate by
// sliding along one anchor axis of the tiled area, starting from the member
// it collides with. candidate is evaluated in the tile's orientation.
//
// It returns ErrNotColliding if candidate overlaps nothing, and a
// *SnapError (wrapping ErrSnapExhausted) if the search caps out or cycles.
func (l *Layout) SnapToClosestOpenSpace(id TileID, candidate geom.Box) (geom.Vec3, error) {
	tile := l.Tile(id)
	candidate = candidate.Rotated(tile.Anchor)

	blocking, ok := l.FindCollidingArea(id, candidate)
	if !ok {
		return candidate.Center, fmt.Errorf("snap from %v: %w", candidate.Center, ErrNotColliding)
	}

	dir, forward := tile.leaningDirection(candidate.Center.Sub(l.areas[blocking].Center()))
	return tile.march(candidate, blocking, dir, forward,
		l.Area,
		func(p geom.Vec3) (AreaID, bool) {
			return l.FindCollidingArea(id, candidate.Moved(p))
		},
	)
}
