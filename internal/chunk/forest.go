package chunk

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/talgya/hamlet/internal/entropy"
	"github.com/talgya/hamlet/internal/geom"
	"github.com/talgya/hamlet/internal/world"
)

// Tree is a single tree in a forest.
type Tree struct {
	ID       world.NodeID `json:"id"`
	Name     string       `json:"name"`
	Position geom.Vec3    `json:"position"`
}

// Forest is a forest region and the trees grown in it.
type Forest struct {
	Region  *world.Region
	Trees   []Tree
	Target  int // Trees requested
	Dropped int // Trees that found no site
}

// growForest scatters trees uniformly over the region, keeping them at
// least the buffer radius apart. A tree that finds no site within the
// attempt budget is dropped.
func growForest(rng *entropy.Source, region *world.Region, cfg ForestConfig, ground world.Ground, offset float64) *Forest {
	f := &Forest{Region: region, Target: cfg.TreeCount.Sample(rng)}
	minSqr := cfg.TreeBufferRadius * cfg.TreeBufferRadius

	for i := 0; i < f.Target; i++ {
		site, ok := geom.Vec3{}, false
		for try := 0; try < cfg.MaxTreeAttempts && !ok; try++ {
			dist := rng.Float(0, region.Radius)
			site = geom.PlanarOffset(region.Center, rng.Angle(), dist)
			ok = f.clear(site, minSqr)
		}
		if !ok {
			f.Dropped++
			continue
		}
		t := Tree{
			ID:       uuid.New(),
			Name:     fmt.Sprintf("%s.Tree.%d", region.Name, i),
			Position: world.SnapToGround(ground, site, offset),
		}
		f.Trees = append(f.Trees, t)
		region.Link(t.ID)
	}

	slog.Info("forest grown", "name", region.Name, "center", region.Center, "radius", region.Radius,
		"trees", len(f.Trees), "dropped", f.Dropped)
	return f
}

func (f *Forest) clear(site geom.Vec3, minSqr float64) bool {
	for _, t := range f.Trees {
		if t.Position.PlanarSqrDistance(site) < minSqr {
			return false
		}
	}
	return true
}
