// Procedural names for villages and forests.
package world

import (
	"github.com/talgya/hamlet/internal/entropy"
)

var (
	villagePrefixes = []string{
		"Iron", "Green", "Ash", "Stone", "Mill", "Cross", "Black",
		"Silver", "Red", "White", "Dark", "Bright", "High", "Low",
		"Old", "New", "Far", "Deep", "Long", "Broad", "Gold", "Frost",
		"Storm", "Thorn", "Elm", "Oak", "Pine", "Copper", "River",
	}
	villageSuffixes = []string{
		"haven", "ford", "hollow", "wick", "bridge", "gate", "keep",
		"stead", "field", "dale", "crest", "vale", "port",
		"town", "bury", "marsh", "well", "brook", "cliff", "moor",
		"ridge", "watch", "fall", "rest", "point", "reach", "helm",
	}
	forestPrefixes = []string{
		"Whisper", "Moss", "Shadow", "Briar", "Fern", "Hollow", "Amber",
		"Raven", "Mist", "Bramble", "Elder", "Yew", "Birch", "Wolf",
	}
	forestSuffixes = []string{
		"wood", "weald", "holt", "grove", "shaw", "thicket", "copse",
	}
)

// Namer hands out unique region names.
type Namer struct {
	rng  *entropy.Source
	used map[string]bool
}

// NewNamer creates a namer drawing from rng.
func NewNamer(rng *entropy.Source) *Namer {
	return &Namer{rng: rng, used: make(map[string]bool)}
}

// Next returns a name for a region with the given label that has not been
// handed out before. After a bounded number of clashes it appends a
// counter instead.
func (n *Namer) Next(label RegionLabel) string {
	prefixes, suffixes := villagePrefixes, villageSuffixes
	if label == LabelForest {
		prefixes, suffixes = forestPrefixes, forestSuffixes
	}

	var name string
	for try := 0; try < 64; try++ {
		name = prefixes[n.rng.IntN(len(prefixes))] + suffixes[n.rng.IntN(len(suffixes))]
		if !n.used[name] {
			n.used[name] = true
			return name
		}
	}

	base := name
	for i := 2; ; i++ {
		name = base + " " + romanNumeral(i)
		if !n.used[name] {
			n.used[name] = true
			return name
		}
	}
}

func romanNumeral(v int) string {
	vals := []int{1000, 900, 500, 400, 100, 90, 50, 40, 10, 9, 5, 4, 1}
	syms := []string{"M", "CM", "D", "CD", "C", "XC", "L", "XL", "X", "IX", "V", "IV", "I"}
	out := ""
	for i, val := range vals {
		for v >= val {
			out += syms[i]
			v -= val
		}
	}
	return out
}
