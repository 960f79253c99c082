// Package village generates settlements: a circular village region packed
// with huts and populated with villagers who are assigned to them.
package village

import (
	"errors"
	"fmt"

	"github.com/talgya/hamlet/internal/entropy"
	"github.com/talgya/hamlet/internal/geom"
	"github.com/talgya/hamlet/internal/layout"
	"github.com/talgya/hamlet/internal/world"
)

// Config holds tunable parameters for village generation.
type Config struct {
	HeadCount       entropy.Range[int] // Villagers per village
	VillagersPerHut entropy.Range[int] // Residents per hut; Min 0 allows empty huts

	// HutSpawnRadiusPercent is the annulus huts are dropped into, as a
	// percentage of the village radius.
	HutSpawnRadiusPercent entropy.Range[float64]
	// ElderHutSpawnRadius is the annulus around the center, in world units,
	// that the elder hut is dropped into.
	ElderHutSpawnRadius entropy.Range[float64]

	HutFootprint      geom.Vec3 // width × height × depth
	ElderHutFootprint geom.Vec3

	MaxFailedAttempts int     // Consecutive failed hut attempts before giving up
	SnapPadding       float64 // Gap kept between huts of one tiled area
	GroundOffset      float64 // Added to the resolved ground height
}

// DefaultConfig returns the standard village parameters.
func DefaultConfig() Config {
	return Config{
		HeadCount:             entropy.R(12, 30),
		VillagersPerHut:       entropy.R(2, 5),
		HutSpawnRadiusPercent: entropy.R(15.0, 85.0),
		ElderHutSpawnRadius:   entropy.R(1.5, 3.0),
		HutFootprint:          geom.V(8, 12, 8),
		ElderHutFootprint:     geom.V(8, 12, 8),
		MaxFailedAttempts:     100,
		SnapPadding:           layout.DefaultSnapPadding,
		GroundOffset:          world.DefaultGroundOffset,
	}
}

// Validate checks that every range is well formed and every footprint can
// be packed.
func (c Config) Validate() error {
	var errs []error
	errs = append(errs,
		c.HeadCount.Validate("head count"),
		c.VillagersPerHut.Validate("villagers per hut"),
		c.HutSpawnRadiusPercent.Validate("hut spawn radius percent"),
		c.ElderHutSpawnRadius.Validate("elder hut spawn radius"),
	)
	if c.HeadCount.Min < 0 {
		errs = append(errs, fmt.Errorf("head count: min %d is negative", c.HeadCount.Min))
	}
	if c.VillagersPerHut.Min < 0 || c.VillagersPerHut.Max < 1 {
		errs = append(errs, fmt.Errorf("villagers per hut: need 0 <= min and max >= 1, got %v..%v",
			c.VillagersPerHut.Min, c.VillagersPerHut.Max))
	}
	if c.HutSpawnRadiusPercent.Min < 0 || c.HutSpawnRadiusPercent.Max > 100 {
		errs = append(errs, fmt.Errorf("hut spawn radius percent: %v..%v outside 0..100",
			c.HutSpawnRadiusPercent.Min, c.HutSpawnRadiusPercent.Max))
	}
	if c.ElderHutSpawnRadius.Min < 0 {
		errs = append(errs, fmt.Errorf("elder hut spawn radius: min %v is negative", c.ElderHutSpawnRadius.Min))
	}
	errs = append(errs,
		validateFootprint("hut footprint", c.HutFootprint),
		validateFootprint("elder hut footprint", c.ElderHutFootprint),
	)
	if c.MaxFailedAttempts < 1 {
		errs = append(errs, fmt.Errorf("max failed attempts: %d, need at least 1", c.MaxFailedAttempts))
	}
	if c.SnapPadding < 0 {
		errs = append(errs, fmt.Errorf("snap padding: %v is negative", c.SnapPadding))
	}
	return errors.Join(errs...)
}

func validateFootprint(name string, d geom.Vec3) error {
	if d.X < 2*layout.MinStep || d.Z < 2*layout.MinStep || d.Y <= 0 {
		return fmt.Errorf("%s: %v too small", name, d)
	}
	return nil
}

// Data is the per-village parameter set, sampled once from Config.
type Data struct {
	Name            string                 `json:"name"`
	Radius          float64                `json:"radius"`
	HeadCount       int                    `json:"head_count"`
	VillagersPerHut entropy.Range[int]     `json:"villagers_per_hut"`
	HutSpawnRange   entropy.Range[float64] `json:"hut_spawn_range"`
	ElderHutRange   entropy.Range[float64] `json:"elder_hut_range"`

	HutFootprint      geom.Vec3 `json:"hut_footprint"`
	ElderHutFootprint geom.Vec3 `json:"elder_hut_footprint"`
}

// SampleData rolls the village parameters for a village of the given
// radius.
func (c Config) SampleData(rng *entropy.Source, name string, radius float64) Data {
	return Data{
		Name:              name,
		Radius:            radius,
		HeadCount:         c.HeadCount.Sample(rng),
		VillagersPerHut:   c.VillagersPerHut,
		HutSpawnRange:     entropy.Scale(c.HutSpawnRadiusPercent, radius/100),
		ElderHutRange:     c.ElderHutSpawnRadius,
		HutFootprint:      c.HutFootprint,
		ElderHutFootprint: c.ElderHutFootprint,
	}
}
