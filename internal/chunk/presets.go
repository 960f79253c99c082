package chunk

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/talgya/hamlet/internal/entropy"
)

// ErrUnknownPreset is returned by LookupPreset for names it does not know.
var ErrUnknownPreset = errors.New("unknown preset")

var presets = map[string]func() Config{
	"default": DefaultConfig,
	"hamlet": func() Config {
		c := DefaultConfig()
		c.Villages = 1
		c.Forests = 2
		c.VillageSpawnRadius = entropy.R(40.0, 60.0)
		c.Village.HeadCount = entropy.R(6, 12)
		c.Village.VillagersPerHut = entropy.R(1, 4)
		return c
	},
	"township": func() Config {
		c := DefaultConfig()
		c.Villages = 4
		c.Forests = 1
		c.VillageSpawnRadius = entropy.R(80.0, 120.0)
		c.Village.HeadCount = entropy.R(40, 80)
		c.Village.VillagersPerHut = entropy.R(3, 6)
		return c
	},
	"wildwood": func() Config {
		c := DefaultConfig()
		c.Villages = 1
		c.Forests = 6
		c.Forest.SpawnRadius = entropy.R(40.0, 80.0)
		c.Forest.TreeCount = entropy.R(60, 150)
		c.Village.VillagersPerHut = entropy.R(0, 4)
		return c
	},
}

// PresetNames returns the known preset names, sorted.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LookupPreset returns the named preset. Unknown names get an error that
// suggests the closest known name when one is near enough.
func LookupPreset(name string) (Config, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if build, ok := presets[key]; ok {
		return build(), nil
	}
	if s, ok := SuggestPreset(key); ok {
		return Config{}, fmt.Errorf("%w %q, did you mean %q?", ErrUnknownPreset, name, s)
	}
	return Config{}, fmt.Errorf("%w %q (known: %s)", ErrUnknownPreset, name, strings.Join(PresetNames(), ", "))
}

// SuggestPreset returns the known preset closest to name by edit distance,
// if it is within a length-scaled limit.
func SuggestPreset(name string) (string, bool) {
	best, bestDist := "", -1
	for _, cand := range PresetNames() {
		dist := levenshtein.ComputeDistance(name, cand)
		if dist > suggestionLimit(len(cand)) {
			continue
		}
		if bestDist < 0 || dist < bestDist {
			best, bestDist = cand, dist
		}
	}
	return best, bestDist >= 0
}

func suggestionLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
