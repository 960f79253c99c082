package agents

import (
	"testing"

	"github.com/talgya/hamlet/internal/entropy"
	"github.com/talgya/hamlet/internal/geom"
)

func TestSpawnPopulation(t *testing.T) {
	s := NewSpawner(entropy.NewSource(42))
	center := geom.V(100, 0, -50)
	pop := s.SpawnPopulation(25, "Ashford", center, 30)

	if len(pop) != 25 {
		t.Fatalf("spawned %d villagers, want 25", len(pop))
	}
	ids := map[VillagerID]bool{}
	for i, v := range pop {
		if v.Index != i {
			t.Errorf("villager %d has index %d", i, v.Index)
		}
		if v.Housed() {
			t.Errorf("villager %d should start unhoused", i)
		}
		if v.Age < 5 || v.Age > 70 {
			t.Errorf("villager %d age %d outside 5–70", i, v.Age)
		}
		if d := v.Position.PlanarDistance(center); d > 30 {
			t.Errorf("villager %d spawned %.1f from center, radius 30", i, d)
		}
		if ids[v.ID] {
			t.Errorf("duplicate villager id %v", v.ID)
		}
		ids[v.ID] = true
	}
	if pop[3].Tag != "Ashford.Villager.3" {
		t.Errorf("tag = %q, want Ashford.Villager.3", pop[3].Tag)
	}
}

func TestSpawnDeterministicNames(t *testing.T) {
	a := NewSpawner(entropy.NewSource(7)).SpawnPopulation(10, "v", geom.Vec3{}, 10)
	b := NewSpawner(entropy.NewSource(7)).SpawnPopulation(10, "v", geom.Vec3{}, 10)
	for i := range a {
		if a[i].Name != b[i].Name || a[i].Age != b[i].Age || a[i].Position != b[i].Position {
			t.Errorf("villager %d differs between identical seeds", i)
		}
	}
}
