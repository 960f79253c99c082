package village

import (
	"errors"
	"log/slog"
	"math"

	"github.com/talgya/hamlet/internal/agents"
	"github.com/talgya/hamlet/internal/entropy"
	"github.com/talgya/hamlet/internal/geom"
	"github.com/talgya/hamlet/internal/layout"
	"github.com/talgya/hamlet/internal/world"
)

// Generator builds villages from a Config. Ground may be nil, in which
// case nothing is moved vertically.
type Generator struct {
	Config Config
	Ground world.Ground
}

// NewGenerator creates a village generator.
func NewGenerator(cfg Config, ground world.Ground) *Generator {
	return &Generator{Config: cfg, Ground: ground}
}

// GenerateVillage creates a village region at center and populates it.
// Every draw comes from rng, which is left advanced.
func (g *Generator) GenerateVillage(rng *entropy.Source, center geom.Vec3, radius float64, name string) *Village {
	return g.Populate(rng, world.NewRegion(world.LabelVillage, name, center, radius))
}

// Populate runs the village pipeline inside an already placed region:
// sample parameters, spawn villagers, place the elder hut, pack the
// remaining huts, then move villagers in.
func (g *Generator) Populate(rng *entropy.Source, region *world.Region) *Village {
	data := g.Config.SampleData(rng, region.Name, region.Radius)
	v := newVillage(region, data, g.Ground, g.Config)

	v.spawnVillagers(rng)
	v.placeElderHut(rng)

	v.Stats.TargetHuts = TargetHutCount(rng, data.HeadCount, data.VillagersPerHut)
	v.packHuts(rng, g.Config.MaxFailedAttempts)

	v.assignVillagers(rng)

	slog.Info("village generated",
		"name", v.Name(),
		"center", v.Center(),
		"radius", region.Radius,
		"villagers", len(v.Villagers),
		"huts", len(v.Huts),
		"target_huts", v.Stats.TargetHuts,
		"tiled_areas", len(v.Layout.Tiles()),
		"unhoused", v.UnhousedCount(),
	)
	return v
}

// TargetHutCount decides how many ordinary huts a village of headCount
// should get. With a positive minimum occupancy the count is uniform
// between fully packed and minimally packed huts. With a zero minimum,
// huts may stand empty, so the count is interpolated exponentially between
// fully packed huts and one hut per villager.
func TargetHutCount(rng *entropy.Source, headCount int, perHut entropy.Range[int]) int {
	if headCount <= 0 {
		return 0
	}
	minHuts := ceilDiv(headCount, perHut.Max)
	if perHut.Min > 0 {
		return entropy.R(minHuts, ceilDiv(headCount, perHut.Min)).Sample(rng)
	}
	exponent := rng.Float64()
	return int(math.Round(float64(minHuts) * math.Pow(float64(headCount)/float64(minHuts), exponent)))
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

func (v *Village) spawnVillagers(rng *entropy.Source) {
	v.Villagers = agents.NewSpawner(rng).SpawnPopulation(v.Data.HeadCount, v.Name(), v.Center(), v.Data.Radius)
	v.unhoused = make([]int, len(v.Villagers))
	for i, vl := range v.Villagers {
		vl.Position = world.SnapToGround(v.ground, vl.Position, v.offset)
		v.unhoused[i] = i
		v.Region.Link(vl.ID)
	}
}

// placeElderHut drops the elder hut close to the center, facing it. It is
// always the first structure and founds the first tiled area.
func (v *Village) placeElderHut(rng *entropy.Source) {
	dist := v.Data.ElderHutRange.Sample(rng)
	pos := geom.PlanarOffset(v.Center(), rng.Angle(), dist)
	box := v.footprint(layout.KindElderHut, pos, geom.LookRotation(v.Center().Sub(pos)))

	id, _ := v.Layout.Found(layout.KindElderHut, box)
	v.commit(id)
}

// packHuts places ordinary huts until the target is met or maxFailed
// attempts in a row have failed.
func (v *Village) packHuts(rng *entropy.Source, maxFailed int) {
	failedInARow := 0
	for v.Stats.PlacedHuts < v.Stats.TargetHuts {
		v.Stats.Attempts++
		if v.tryPlaceHut(rng) {
			v.Stats.PlacedHuts++
			failedInARow = 0
			continue
		}
		v.Stats.FailedAttempts++
		failedInARow++
		if failedInARow >= maxFailed {
			v.Stats.BreakerTripped = true
			slog.Debug("hut placement gave up",
				"village", v.Name(),
				"placed", v.Stats.PlacedHuts,
				"target", v.Stats.TargetHuts,
				"failed_in_a_row", failedInARow,
			)
			return
		}
	}
}

// tryPlaceHut samples one hut site. A free site founds a new tiled area
// facing the center; a blocked one is snapped into the blocking hut's
// tiled area, or joins it unmoved when squaring to that area clears it.
func (v *Village) tryPlaceHut(rng *entropy.Source) bool {
	dist := v.Data.HutSpawnRange.Sample(rng)
	pos := geom.PlanarOffset(v.Center(), rng.Angle(), dist)
	box := v.footprint(layout.KindHut, pos, geom.LookRotation(v.Center().Sub(pos)))

	hit, blocked := v.Layout.FindCollision(box)
	if !blocked {
		id, _ := v.Layout.Found(layout.KindHut, box)
		v.commit(id)
		return true
	}

	snapped, tile, err := v.snap(box, hit)
	if err != nil {
		if errors.Is(err, layout.ErrSnapExhausted) {
			v.Stats.SnapFailures++
		}
		slog.Debug("hut attempt failed", "village", v.Name(), "site", pos, "error", err)
		return false
	}
	v.commit(v.Layout.AddArea(tile, layout.KindHut, snapped))
	v.Stats.Snapped++
	return true
}

// assignVillagers moves unhoused villagers into huts in placement order.
// Each hut takes a sampled number of residents, raised where needed so
// the remaining huts could still house everyone at full occupancy.
func (v *Village) assignVillagers(rng *entropy.Source) {
	per := v.Data.VillagersPerHut
	for i, h := range v.Huts {
		remaining := len(v.unhoused)
		if remaining == 0 {
			return
		}
		hutsLeft := len(v.Huts) - i - 1
		size := max(per.Sample(rng), remaining-hutsLeft*per.Max)
		size = min(size, per.Max, remaining)
		v.moveIn(rng, i, h, rng.Subset(remaining, size))
	}
}

// moveIn houses the unhoused villagers at the given positions of the
// unhoused list, placing each on the hut's perimeter facing outward.
func (v *Village) moveIn(rng *entropy.Source, hutIndex int, h *Hut, picks []int) {
	if len(picks) == 0 {
		return
	}
	box := v.Layout.Area(h.Area).Box
	taken := make(map[int]bool, len(picks))
	for _, p := range picks {
		idx := v.unhoused[p]
		taken[idx] = true

		vl := v.Villagers[idx]
		if h.Kind == layout.KindElderHut && len(h.Residents) == 0 {
			vl.Elder = true
		}
		point, normal := box.PerimeterPoint(rng.Float64())
		vl.Position = world.SnapToGround(v.ground, point, v.offset)
		vl.Facing = geom.LookRotation(normal)
		vl.Home = hutIndex

		h.Residents = append(h.Residents, idx)
		v.Region.Graph().Link(h.ID, vl.ID)
	}

	kept := v.unhoused[:0]
	for _, idx := range v.unhoused {
		if !taken[idx] {
			kept = append(kept, idx)
		}
	}
	v.unhoused = kept
}
