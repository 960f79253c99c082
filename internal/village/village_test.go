package village

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/talgya/hamlet/internal/entropy"
	"github.com/talgya/hamlet/internal/geom"
	"github.com/talgya/hamlet/internal/layout"
	"github.com/talgya/hamlet/internal/world"
)

func scenarioConfig() Config {
	cfg := DefaultConfig()
	cfg.HeadCount = entropy.R(20, 20)
	cfg.VillagersPerHut = entropy.R(2, 5)
	return cfg
}

func checkConservation(t *testing.T, v *Village) {
	t.Helper()
	if got := v.UnhousedCount() + v.HousedCount(); got != len(v.Villagers) {
		t.Errorf("unhoused %d + housed %d != headcount %d", v.UnhousedCount(), v.HousedCount(), len(v.Villagers))
	}
	seen := map[int]bool{}
	for hi, h := range v.Huts {
		for _, r := range h.Residents {
			if seen[r] {
				t.Errorf("villager %d housed twice", r)
			}
			seen[r] = true
			if v.Villagers[r].Home != hi {
				t.Errorf("villager %d home = %d, want %d", r, v.Villagers[r].Home, hi)
			}
		}
	}
	for _, u := range v.Unhoused() {
		if seen[u] {
			t.Errorf("villager %d both housed and unhoused", u)
		}
	}
}

func checkNoOverlap(t *testing.T, v *Village) {
	t.Helper()
	areas := v.Layout.Areas()
	for i, a := range areas {
		for _, b := range areas[i+1:] {
			probe := layout.New()
			_, tile := probe.Found(b.Kind, b.Box)
			if _, hit := probe.FindCollidingArea(tile, a.Box); hit {
				t.Errorf("areas %d and %d overlap", a.ID, b.ID)
			}
		}
	}
}

func TestScenarioTwentyVillagers(t *testing.T) {
	g := NewGenerator(scenarioConfig(), nil)
	for seed := uint64(1); seed <= 20; seed++ {
		v := g.GenerateVillage(entropy.NewSource(seed), geom.V(0, 0, 0), 100, "Ashford")

		if v.Stats.TargetHuts < 4 || v.Stats.TargetHuts > 10 {
			t.Errorf("seed %d: target huts %d outside 4..10", seed, v.Stats.TargetHuts)
		}
		if v.Stats.PlacedHuts != v.Stats.TargetHuts {
			t.Errorf("seed %d: placed %d of %d huts", seed, v.Stats.PlacedHuts, v.Stats.TargetHuts)
		}
		if len(v.Huts) != v.Stats.PlacedHuts+1 {
			t.Errorf("seed %d: %d huts, want placed + elder hut", seed, len(v.Huts))
		}
		if v.UnhousedCount() != 0 {
			t.Errorf("seed %d: %d villagers unhoused", seed, v.UnhousedCount())
		}
		for _, h := range v.Huts {
			if len(h.Residents) > 5 {
				t.Errorf("seed %d: hut %s houses %d, max 5", seed, h.Name, len(h.Residents))
			}
		}
		checkConservation(t, v)
		checkNoOverlap(t, v)
	}
}

func TestElderHutFirstAndFacesCenter(t *testing.T) {
	center := geom.V(40, 0, -20)
	v := NewGenerator(DefaultConfig(), nil).GenerateVillage(entropy.NewSource(9), center, 80, "Millbrook")

	elder := v.Huts[0]
	if elder.Kind != layout.KindElderHut {
		t.Fatalf("first hut kind = %v, want elder hut", elder.Kind)
	}
	if d := elder.Position.PlanarDistance(center); d < 1.5 || d > 3 {
		t.Errorf("elder hut %.2f from center, want 1.5..3", d)
	}
	toCenter := center.Sub(elder.Position).Flat()
	if toCenter.Dot(elder.Facing.Forward()) <= 0 {
		t.Error("elder hut does not face the village center")
	}
	if a := v.Layout.Area(elder.Area); a.Tile != 0 {
		t.Errorf("elder hut tile = %d, want first tile", a.Tile)
	}

	vl, ok := v.Elder()
	if !ok {
		t.Fatal("no elder chosen")
	}
	if vl.Home != 0 || elder.Residents[0] != vl.Index {
		t.Errorf("elder %s is not the elder hut's first resident", vl.Tag)
	}
}

func TestTinyVillageTripsBreaker(t *testing.T) {
	cfg := DefaultConfig()
	cfg.HeadCount = entropy.R(40, 40)
	cfg.VillagersPerHut = entropy.R(1, 1)

	v := NewGenerator(cfg, nil).GenerateVillage(entropy.NewSource(5), geom.Vec3{}, 5, "Nook")
	if !v.Stats.BreakerTripped {
		t.Fatal("expected the failure breaker to trip")
	}
	if v.Stats.FailedAttempts < cfg.MaxFailedAttempts {
		t.Errorf("failed attempts = %d, want at least %d", v.Stats.FailedAttempts, cfg.MaxFailedAttempts)
	}
	if v.Stats.PlacedHuts >= v.Stats.TargetHuts {
		t.Errorf("placed %d of %d huts in a radius-5 village", v.Stats.PlacedHuts, v.Stats.TargetHuts)
	}
	if v.UnhousedCount() == 0 {
		t.Error("expected unhoused villagers")
	}
	checkConservation(t, v)
}

func TestOrientationSharedWithinTiles(t *testing.T) {
	cfg := DefaultConfig()
	cfg.HeadCount = entropy.R(60, 60)
	cfg.VillagersPerHut = entropy.R(1, 2)
	v := NewGenerator(cfg, nil).GenerateVillage(entropy.NewSource(11), geom.Vec3{}, 40, "Dense")

	if v.Stats.Snapped == 0 {
		t.Fatal("expected some huts to be snapped in a dense village")
	}
	for _, tile := range v.Layout.Tiles() {
		for _, id := range tile.Members() {
			if got := v.Layout.Area(id).Orientation(); got != tile.Anchor {
				t.Errorf("area %d orientation %v, tile %d anchor %v", id, got, tile.ID, tile.Anchor)
			}
		}
	}
	for _, h := range v.Huts {
		if !v.Region.ContainsPoint(h.Position) {
			t.Errorf("hut %s at %v outside the village", h.Name, h.Position)
		}
	}
	checkNoOverlap(t, v)
	checkConservation(t, v)
}

func TestResidentsStandOnPerimeter(t *testing.T) {
	v := NewGenerator(scenarioConfig(), nil).GenerateVillage(entropy.NewSource(3), geom.Vec3{}, 100, "Edge")
	for _, h := range v.Huts {
		box := v.Layout.Area(h.Area).Box
		for _, r := range h.Residents {
			vl := v.Villagers[r]
			if !box.Contains(vl.Position) {
				t.Errorf("%s at %v is off the boundary of %s", vl.Tag, vl.Position, h.Name)
			}
			inset := box
			inset.Dimensions = box.Dimensions.Sub(geom.V(0.5, 0, 0.5))
			if inset.Contains(vl.Position) {
				t.Errorf("%s at %v is inside %s, want perimeter", vl.Tag, vl.Position, h.Name)
			}
			outward := vl.Position.Sub(box.Center).Flat()
			if outward.Dot(vl.Facing.Forward()) <= 0 {
				t.Errorf("%s faces into its hut", vl.Tag)
			}
		}
	}
}

func TestGenerationIsDeterministic(t *testing.T) {
	g := NewGenerator(DefaultConfig(), world.FlatGround(3))
	a := g.GenerateVillage(entropy.NewSource(77), geom.V(10, 0, 10), 90, "Twin")
	b := g.GenerateVillage(entropy.NewSource(77), geom.V(10, 0, 10), 90, "Twin")

	if len(a.Huts) != len(b.Huts) || len(a.Villagers) != len(b.Villagers) {
		t.Fatalf("huts %d/%d villagers %d/%d differ", len(a.Huts), len(b.Huts), len(a.Villagers), len(b.Villagers))
	}
	for i := range a.Huts {
		if a.Huts[i].Position != b.Huts[i].Position {
			t.Errorf("hut %d at %v vs %v", i, a.Huts[i].Position, b.Huts[i].Position)
		}
	}
	for i := range a.Villagers {
		if a.Villagers[i].Position != b.Villagers[i].Position {
			t.Errorf("villager %d at %v vs %v", i, a.Villagers[i].Position, b.Villagers[i].Position)
		}
	}
}

func TestGroundSnapping(t *testing.T) {
	v := NewGenerator(DefaultConfig(), world.FlatGround(7)).GenerateVillage(entropy.NewSource(2), geom.Vec3{}, 60, "Hill")
	for _, h := range v.Huts {
		if h.Position.Y != 7+world.DefaultGroundOffset {
			t.Errorf("hut %s height %v, want %v", h.Name, h.Position.Y, 7+world.DefaultGroundOffset)
		}
	}
	for _, vl := range v.Villagers {
		if vl.Position.Y != 7+world.DefaultGroundOffset {
			t.Errorf("%s height %v", vl.Tag, vl.Position.Y)
		}
	}
}

func TestTargetHutCount(t *testing.T) {
	rng := entropy.NewSource(1)
	for i := 0; i < 500; i++ {
		if n := TargetHutCount(rng, 20, entropy.R(2, 5)); n < 4 || n > 10 {
			t.Fatalf("bounded target = %d, want 4..10", n)
		}
		if n := TargetHutCount(rng, 20, entropy.R(0, 5)); n < 4 || n > 20 {
			t.Fatalf("open target = %d, want 4..20", n)
		}
	}
	if n := TargetHutCount(rng, 0, entropy.R(2, 5)); n != 0 {
		t.Errorf("empty village target = %d, want 0", n)
	}
}

func TestLinksAreSymmetric(t *testing.T) {
	v := NewGenerator(scenarioConfig(), nil).GenerateVillage(entropy.NewSource(4), geom.Vec3{}, 100, "Linked")
	g := v.Region.Graph()
	for _, h := range v.Huts {
		if !g.IsLinked(v.Region.ID, h.ID) {
			t.Errorf("hut %s not linked to region", h.Name)
		}
		for _, r := range h.Residents {
			id := v.Villagers[r].ID
			if !g.IsLinked(h.ID, id) || !g.IsLinked(id, h.ID) {
				t.Errorf("hut %s and resident %d not linked both ways", h.Name, r)
			}
		}
	}
	if got := g.Degree(v.Region.ID); got != len(v.Huts)+len(v.Villagers) {
		t.Errorf("region degree = %d, want %d", got, len(v.Huts)+len(v.Villagers))
	}
}

func TestConstructAndSnapHut(t *testing.T) {
	cfg := DefaultConfig()
	cfg.HeadCount = entropy.R(0, 0)
	v := NewGenerator(cfg, nil).GenerateVillage(entropy.NewSource(8), geom.Vec3{}, 100, "Debug")

	free := geom.NewBox(geom.V(50, 0, 0), cfg.HutFootprint, geom.Rotation{})
	h, err := v.ConstructHutAt(free)
	if err != nil {
		t.Fatalf("construct: %v", err)
	}
	if !strings.HasPrefix(h.Name, "Debug.Hut.") {
		t.Errorf("hut name = %q", h.Name)
	}
	if _, err := v.ConstructHutAt(free); !errors.Is(err, ErrOccupied) {
		t.Errorf("second construct err = %v, want ErrOccupied", err)
	}

	snapped, err := v.SnapAndConstructHut(free.Moved(geom.V(51, 0, 2)))
	if err != nil {
		t.Fatalf("snap: %v", err)
	}
	if v.Layout.Area(snapped.Area).Tile != v.Layout.Area(h.Area).Tile {
		t.Error("snapped hut joined a different tiled area")
	}
	if got, ok := v.HutAt(snapped.Position); !ok || got != snapped {
		t.Errorf("HutAt(%v) = %v, %v", snapped.Position, got, ok)
	}

	if _, err := v.SnapAndConstructHut(free.Moved(geom.V(-70, 0, -70))); !errors.Is(err, layout.ErrNotColliding) {
		t.Errorf("snap in open space err = %v, want ErrNotColliding", err)
	}
	checkNoOverlap(t, v)
}

func TestSnapAlignmentAloneClearsOverlap(t *testing.T) {
	cfg := DefaultConfig()
	cfg.HeadCount = entropy.R(0, 0)
	v := NewGenerator(cfg, nil).GenerateVillage(entropy.NewSource(8), geom.Vec3{}, 100, "Turn")

	h, err := v.ConstructHutAt(geom.NewBox(geom.V(50, 0, 0), cfg.HutFootprint, geom.Rotation{}))
	if err != nil {
		t.Fatalf("construct: %v", err)
	}

	// Turned 45 degrees the candidate's corner reaches into the hut; squared
	// to the tile it stands half a unit clear.
	turned := geom.NewBox(geom.V(58.5, 0, 0), cfg.HutFootprint, geom.Rotation{Yaw: math.Pi / 4})
	if _, hit := v.Layout.FindCollision(turned); !hit {
		t.Fatal("setup: turned candidate must collide")
	}

	got, err := v.SnapAndConstructHut(turned)
	if err != nil {
		t.Fatalf("snap: %v", err)
	}
	if v.Layout.Area(got.Area).Tile != v.Layout.Area(h.Area).Tile {
		t.Error("aligned hut joined a different tiled area")
	}
	if got.Facing != h.Facing {
		t.Errorf("facing = %v, want tile anchor %v", got.Facing, h.Facing)
	}
	if got.Position.X != 58.5 || got.Position.Z != 0 {
		t.Errorf("position = %v, want unmoved (58.5, _, 0)", got.Position)
	}
	checkNoOverlap(t, v)
}

func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	bad := DefaultConfig()
	bad.VillagersPerHut = entropy.R(3, 2)
	bad.MaxFailedAttempts = 0
	bad.HutFootprint = geom.V(0, 12, 8)
	err := bad.Validate()
	if err == nil {
		t.Fatal("expected validation errors")
	}
	for _, want := range []string{"villagers per hut", "max failed attempts", "hut footprint"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err, want)
		}
	}
}
