// Villager spawning: names, ages and an initial scatter inside the village
// circle.
package agents

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/talgya/hamlet/internal/entropy"
	"github.com/talgya/hamlet/internal/geom"
)

// Spawner creates villagers from a random stream.
type Spawner struct {
	rng *entropy.Source
}

// NewSpawner creates a villager spawner drawing from rng.
func NewSpawner(rng *entropy.Source) *Spawner {
	return &Spawner{rng: rng}
}

// SpawnPopulation creates count unhoused villagers for the named village,
// scattered uniformly over its circle.
func (s *Spawner) SpawnPopulation(count int, village string, center geom.Vec3, radius float64) []*Villager {
	villagers := make([]*Villager, 0, count)
	for i := 0; i < count; i++ {
		villagers = append(villagers, s.spawnOne(i, village, center, radius))
	}
	return villagers
}

func (s *Spawner) spawnOne(index int, village string, center geom.Vec3, radius float64) *Villager {
	sex := SexMale
	if s.rng.Chance(0.5) {
		sex = SexFemale
	}

	return &Villager{
		ID:       uuid.New(),
		Index:    index,
		Tag:      fmt.Sprintf("%s.Villager.%d", village, index),
		Name:     s.generateName(sex),
		Age:      s.weightedAge(),
		Sex:      sex,
		Position: geom.PlanarOffset(center, s.rng.Angle(), s.rng.Float(0, radius)),
		Home:     -1,
	}
}

func (s *Spawner) weightedAge() uint16 {
	// Bell curve centered around 30, range 5–70.
	age := 30.0 + s.rng.NormFloat64()*12.0
	if age < 5 {
		age = 5
	}
	if age > 70 {
		age = 70
	}
	return uint16(age)
}

func (s *Spawner) generateName(sex Sex) string {
	firsts := maleNames
	if sex == SexFemale {
		firsts = femaleNames
	}
	first := firsts[s.rng.IntN(len(firsts))]
	last := lastNames[s.rng.IntN(len(lastNames))]
	return first + " " + last
}

// Name pools for procedural generation.
var maleNames = []string{
	"Aldric", "Bram", "Cedric", "Doran", "Erik", "Finn", "Gareth",
	"Halvard", "Ivan", "Jasper", "Kael", "Leif", "Magnus", "Nils",
	"Oswin", "Per", "Quinn", "Rowan", "Stellan", "Theron", "Ulric",
	"Varen", "Wren", "Yorick", "Zander", "Arlen", "Beric", "Cade",
	"Dorian", "Edric", "Falk", "Gunnar", "Hugo", "Ivar", "Jorik",
}

var femaleNames = []string{
	"Astrid", "Brenna", "Calla", "Daria", "Elara", "Freya", "Greta",
	"Helene", "Iris", "Juno", "Kira", "Lena", "Mira", "Nessa",
	"Olwen", "Petra", "Runa", "Senna", "Thea", "Una", "Vera",
	"Willa", "Yara", "Zara", "Ava", "Birgit", "Cora", "Dagny",
	"Eira", "Fern", "Gwen", "Hilde", "Inga", "Johanna", "Katla",
}

var lastNames = []string{
	"Voss", "Thornwood", "Blackwood", "Ashford", "Ironhand", "Dunmore",
	"Greenvale", "Stormcrow", "Frostborn", "Hearthstone", "Millward",
	"Copperfield", "Ravenmoor", "Silverdale", "Wolfsbane", "Stoneheart",
	"Deepwell", "Brightwater", "Oakenshield", "Redforge", "Windholm",
	"Marshwood", "Goldhaven", "Nightingale", "Riverstone", "Steelworth",
	"Embercroft", "Holloway", "Dawnridge", "Farrow", "Wyatt", "Thatcher",
	"Briar", "Caldwell", "Frost", "Harper", "Mercer", "Ward", "Cross",
}
