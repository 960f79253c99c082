package village

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"

	"github.com/talgya/hamlet/internal/agents"
	"github.com/talgya/hamlet/internal/geom"
	"github.com/talgya/hamlet/internal/layout"
	"github.com/talgya/hamlet/internal/world"
)

var (
	// ErrOccupied is returned when a hut is asked to go where another hut
	// already stands.
	ErrOccupied = errors.New("hut site occupied")

	// ErrOutsideVillage is returned when a snapped hut would stand outside
	// the village circle.
	ErrOutsideVillage = errors.New("hut outside village")
)

// Hut is a committed residence. Its footprint lives in the village layout;
// Position is the ground-snapped placement of the structure itself.
type Hut struct {
	ID        world.NodeID    `json:"id"`
	Name      string          `json:"name"`
	Kind      layout.AreaKind `json:"kind"`
	Area      layout.AreaID   `json:"area"`
	Position  geom.Vec3       `json:"position"`
	Facing    geom.Rotation   `json:"facing"`
	Residents []int           `json:"residents"` // Villager indices
}

// Stats counts what happened during a village's hut loop.
type Stats struct {
	TargetHuts     int  `json:"target_huts"` // Excluding the elder hut
	PlacedHuts     int  `json:"placed_huts"` // Excluding the elder hut
	Attempts       int  `json:"attempts"`
	FailedAttempts int  `json:"failed_attempts"`
	Snapped        int  `json:"snapped"`
	SnapFailures   int  `json:"snap_failures"`
	BreakerTripped bool `json:"breaker_tripped"`
}

// Village is a generated settlement: its region, the hut layout and the
// population.
type Village struct {
	Region    *world.Region
	Data      Data
	Layout    *layout.Layout
	Huts      []*Hut
	Villagers []*agents.Villager
	Stats     Stats

	unhoused []int // sorted villager indices
	ground   world.Ground
	offset   float64
}

func newVillage(region *world.Region, data Data, ground world.Ground, cfg Config) *Village {
	l := layout.New()
	l.SnapPadding = cfg.SnapPadding
	return &Village{
		Region: region,
		Data:   data,
		Layout: l,
		ground: ground,
		offset: cfg.GroundOffset,
	}
}

// Name returns the village name.
func (v *Village) Name() string {
	return v.Region.Name
}

// Center returns the village center.
func (v *Village) Center() geom.Vec3 {
	return v.Region.Center
}

// Unhoused returns the indices of villagers without a hut.
func (v *Village) Unhoused() []int {
	return slices.Clone(v.unhoused)
}

// UnhousedCount returns how many villagers have no hut.
func (v *Village) UnhousedCount() int {
	return len(v.unhoused)
}

// HousedCount returns the total number of residents across all huts.
func (v *Village) HousedCount() int {
	n := 0
	for _, h := range v.Huts {
		n += len(h.Residents)
	}
	return n
}

// ElderHut returns the village's elder hut, if one was built.
func (v *Village) ElderHut() (*Hut, bool) {
	for _, h := range v.Huts {
		if h.Kind == layout.KindElderHut {
			return h, true
		}
	}
	return nil, false
}

// Elder returns the village elder, if one was chosen.
func (v *Village) Elder() (*agents.Villager, bool) {
	for _, vl := range v.Villagers {
		if vl.Elder {
			return vl, true
		}
	}
	return nil, false
}

// HutAt returns the hut whose footprint contains p.
func (v *Village) HutAt(p geom.Vec3) (*Hut, bool) {
	id, ok := v.Layout.AreaContaining(p.WithY(v.Center().Y))
	if !ok {
		return nil, false
	}
	return v.hutForArea(id), true
}

func (v *Village) hutForArea(id layout.AreaID) *Hut {
	for _, h := range v.Huts {
		if h.Area == id {
			return h
		}
	}
	panic(fmt.Sprintf("village: area %d has no hut", id))
}

// footprint builds a hut box at p on the village's layout plane. Layout
// boxes stay level with the village center so terrain never separates
// them vertically.
func (v *Village) footprint(kind layout.AreaKind, p geom.Vec3, facing geom.Rotation) geom.Box {
	dims := v.Data.HutFootprint
	if kind == layout.KindElderHut {
		dims = v.Data.ElderHutFootprint
	}
	return geom.NewBox(p.WithY(v.Center().Y), dims, facing)
}

// commit records a hut for an area already added to the layout.
func (v *Village) commit(id layout.AreaID) *Hut {
	area := v.Layout.Area(id)
	name := fmt.Sprintf("%s.Hut.%d", v.Name(), len(v.Huts))
	if area.Kind == layout.KindElderHut {
		name = v.Name() + ".Elder Hut"
	}
	h := &Hut{
		ID:       uuid.New(),
		Name:     name,
		Kind:     area.Kind,
		Area:     id,
		Position: world.SnapToGround(v.ground, area.Center(), v.offset),
		Facing:   area.Orientation(),
	}
	v.Huts = append(v.Huts, h)
	v.Region.Link(h.ID)
	return h
}

// ConstructHutAt commits a freestanding hut exactly where box says,
// founding a new tiled area. Residents are not assigned.
func (v *Village) ConstructHutAt(box geom.Box) (*Hut, error) {
	box = v.footprint(layout.KindHut, box.Center, box.Orientation)
	if hit, ok := v.Layout.FindCollision(box); ok {
		return nil, fmt.Errorf("construct hut at %v: %w by %s", box.Center, ErrOccupied, v.hutForArea(hit).Name)
	}
	id, _ := v.Layout.Found(layout.KindHut, box)
	h := v.commit(id)
	slog.Debug("hut constructed", "village", v.Name(), "hut", h.Name, "position", h.Position)
	return h, nil
}

// SnapAndConstructHut snaps box into the tiled area of the hut it
// overlaps and commits it there. Residents are not assigned.
func (v *Village) SnapAndConstructHut(box geom.Box) (*Hut, error) {
	box = v.footprint(layout.KindHut, box.Center, box.Orientation)
	hit, ok := v.Layout.FindCollision(box)
	if !ok {
		return nil, fmt.Errorf("snap hut at %v: %w", box.Center, layout.ErrNotColliding)
	}
	snapped, tile, err := v.snap(box, hit)
	if err != nil {
		return nil, err
	}
	h := v.commit(v.Layout.AddArea(tile, layout.KindHut, snapped))
	slog.Debug("hut snapped and constructed", "village", v.Name(), "hut", h.Name, "position", h.Position)
	return h, nil
}

// snap moves box next to the tiled area owning the hit area and checks the
// result is free across the whole village and still inside it.
func (v *Village) snap(box geom.Box, hit layout.AreaID) (geom.Box, layout.TileID, error) {
	tile := v.Layout.Area(hit).Tile
	p, err := v.Layout.SnapToClosestOpenSpace(tile, box)
	switch {
	case errors.Is(err, layout.ErrNotColliding):
		// Turning to the tile anchor already cleared the overlap.
		p = box.Center
	case err != nil:
		return geom.Box{}, 0, fmt.Errorf("snap hut: %w", err)
	}
	snapped := box.Moved(p).Rotated(v.Layout.Tile(tile).Anchor)
	if other, again := v.Layout.FindCollision(snapped); again {
		return geom.Box{}, 0, fmt.Errorf("snap hut to %v: %w by area %d", p, ErrOccupied, other)
	}
	if !v.Region.ContainsPoint(p) {
		return geom.Box{}, 0, fmt.Errorf("snap hut to %v: %w", p, ErrOutsideVillage)
	}
	return snapped, tile, nil
}
