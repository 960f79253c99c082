// Package chunk owns the regions of one square terrain tile. It arbitrates
// region placement, grows forests and hands village regions to the village
// generator.
package chunk

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/talgya/hamlet/internal/entropy"
	"github.com/talgya/hamlet/internal/geom"
	"github.com/talgya/hamlet/internal/village"
	"github.com/talgya/hamlet/internal/world"
)

// Stream salts for sub-streams forked from the chunk's source.
const (
	saltNames   = 1
	saltDebug   = 2
	saltVillage = 1000
)

// Chunk is one square tile of the world and the arbiter for every region
// placed on it. Regions never overlap and never move once committed.
type Chunk struct {
	Config Config
	Ground world.Ground
	Min    geom.Vec3 // Planar bounds
	Max    geom.Vec3

	rng       *entropy.Source
	debug     *entropy.Source
	namer     *world.Namer
	graph     *world.Graph
	generator *village.Generator

	regions  []*world.Region
	villages []*village.Village
	forests  []*Forest

	requested int
	rejected  int
}

// New creates an empty chunk. rng is the chunk's own stream; ground may be
// nil.
func New(cfg Config, ground world.Ground, rng *entropy.Source) (*Chunk, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate chunk config: %w", err)
	}
	half := cfg.Size / 2
	return &Chunk{
		Config:    cfg,
		Ground:    ground,
		Min:       geom.V(-half, 0, -half),
		Max:       geom.V(half, 0, half),
		rng:       rng,
		debug:     rng.Fork(saltDebug),
		namer:     world.NewNamer(rng.Fork(saltNames)),
		graph:     world.NewGraph(),
		generator: village.NewGenerator(cfg.Village, ground),
	}, nil
}

// Seed returns the seed of the chunk's stream.
func (c *Chunk) Seed() uint64 {
	return c.rng.Seed()
}

// Graph returns the link graph shared by everything placed in the chunk.
func (c *Chunk) Graph() *world.Graph {
	return c.graph
}

// Regions returns the committed regions in placement order.
func (c *Chunk) Regions() []*world.Region {
	return slices.Clone(c.regions)
}

// Villages returns the generated villages in placement order.
func (c *Chunk) Villages() []*village.Village {
	return slices.Clone(c.villages)
}

// Forests returns the grown forests in placement order.
func (c *Chunk) Forests() []*Forest {
	return slices.Clone(c.forests)
}

// IsRegionFree reports whether candidate overlaps none of the committed
// regions.
func (c *Chunk) IsRegionFree(candidate *world.Region) bool {
	for _, r := range c.regions {
		if candidate.CollidesWith(r) {
			return false
		}
	}
	return true
}

// FindRegionContaining returns the first committed region containing p.
func (c *Chunk) FindRegionContaining(p geom.Vec3) (*world.Region, bool) {
	for _, r := range c.regions {
		if r.ContainsPoint(p) {
			return r, true
		}
	}
	return nil, false
}

// VillageAt returns the village whose region contains p.
func (c *Chunk) VillageAt(p geom.Vec3) (*village.Village, bool) {
	for _, v := range c.villages {
		if v.Region.ContainsPoint(p) {
			return v, true
		}
	}
	return nil, false
}

// PlaceRegion samples a radius and a uniform center within the planar
// bounds and commits a region there if it is free. A colliding region gets
// exactly one more try at the same center with a radius drawn from the
// halved range.
func (c *Chunk) PlaceRegion(rng *entropy.Source, label world.RegionLabel, radius entropy.Range[float64], boundsMin, boundsMax geom.Vec3) (*world.Region, bool) {
	r := radius.Sample(rng)
	center := geom.V(rng.Float(boundsMin.X, boundsMax.X), boundsMin.Y, rng.Float(boundsMin.Z, boundsMax.Z))
	return c.claim(rng, label, radius, center, r)
}

// claim runs the two-attempt placement for a region centered at center
// with first radius r.
func (c *Chunk) claim(rng *entropy.Source, label world.RegionLabel, radius entropy.Range[float64], center geom.Vec3, r float64) (*world.Region, bool) {
	c.requested++
	candidate := world.NewRegion(label, "", center, r)
	if !c.IsRegionFree(candidate) {
		retry := radius.Halved().Sample(rng)
		slog.Debug("region collides, retrying smaller", "label", label, "center", center, "radius", r, "retry_radius", retry)
		candidate.SetUp(label, retry, center)
		if !c.IsRegionFree(candidate) {
			c.rejected++
			slog.Debug("region rejected", "label", label, "center", center)
			return nil, false
		}
	}
	c.commit(candidate)
	return candidate, true
}

func (c *Chunk) commit(r *world.Region) {
	r.Name = c.namer.Next(r.Label)
	r.Attach(c.graph)
	c.regions = append(c.regions, r)
	slog.Debug("region placed", "label", r.Label, "name", r.Name, "center", r.Center, "radius", r.Radius)
}
