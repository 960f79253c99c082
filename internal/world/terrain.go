// Ground height for placed structures, from layered simplex noise.
// The height field is the only terrain the generator needs: everything is
// dropped onto it after placement.
package world

import (
	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/hamlet/internal/geom"
)

// DefaultGroundOffset lifts snapped objects above the resolved height.
const DefaultGroundOffset = 2.0

// Ground resolves the terrain height under a planar position. ok is false
// when there is no ground there.
type Ground interface {
	HeightAt(x, z float64) (height float64, ok bool)
}

// TerrainConfig holds height field parameters.
type TerrainConfig struct {
	Seed        int64   // Noise seed
	Amplitude   float64 // Peak height above the base
	Base        float64 // Height of the lowest ground
	Frequency   float64 // Base noise frequency per unit
	Octaves     int     // Noise layers
	Persistence float64 // Amplitude falloff per octave
	HalfSize    float64 // Ground exists for |x|,|z| <= HalfSize; 0 means everywhere
}

// DefaultTerrainConfig returns gentle rolling ground for a 500-unit chunk.
func DefaultTerrainConfig() TerrainConfig {
	return TerrainConfig{
		Seed:        0,
		Amplitude:   6,
		Base:        0,
		Frequency:   0.004,
		Octaves:     4,
		Persistence: 0.5,
		HalfSize:    250,
	}
}

// Terrain is a noise-backed Ground.
type Terrain struct {
	cfg   TerrainConfig
	noise opensimplex.Noise
}

// NewTerrain builds the height field for cfg.
func NewTerrain(cfg TerrainConfig) *Terrain {
	if cfg.Octaves < 1 {
		cfg.Octaves = 1
	}
	return &Terrain{
		cfg:   cfg,
		noise: opensimplex.NewNormalized(cfg.Seed),
	}
}

// HeightAt implements Ground.
func (t *Terrain) HeightAt(x, z float64) (float64, bool) {
	if h := t.cfg.HalfSize; h > 0 && (x < -h || x > h || z < -h || z > h) {
		return 0, false
	}
	n := octaveNoise(t.noise, x, z, t.cfg.Octaves, t.cfg.Frequency, t.cfg.Persistence)
	return t.cfg.Base + n*t.cfg.Amplitude, true
}

// FlatGround is level ground at a fixed height.
type FlatGround float64

// HeightAt implements Ground.
func (f FlatGround) HeightAt(x, z float64) (float64, bool) {
	return float64(f), true
}

// SnapToGround drops p onto g plus offset. Without ground (or with a nil
// g) p keeps its height.
func SnapToGround(g Ground, p geom.Vec3, offset float64) geom.Vec3 {
	if g == nil {
		return p
	}
	h, ok := g.HeightAt(p.X, p.Z)
	if !ok {
		return p
	}
	return p.WithY(h + offset)
}

// octaveNoise generates fractal noise by layering multiple frequencies.
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}
