package chunk

import (
	"errors"
	"fmt"

	"github.com/talgya/hamlet/internal/entropy"
	"github.com/talgya/hamlet/internal/village"
)

// ForestConfig holds tunable parameters for forest generation.
type ForestConfig struct {
	SpawnRadius      entropy.Range[float64] // Forest region radius
	TreeCount        entropy.Range[int]
	TreeBufferRadius float64 // Minimum planar distance between trees
	MaxTreeAttempts  int     // Sites tried per tree before it is dropped
}

// DefaultForestConfig returns the standard forest parameters.
func DefaultForestConfig() ForestConfig {
	return ForestConfig{
		SpawnRadius:      entropy.R(30.0, 60.0),
		TreeCount:        entropy.R(20, 60),
		TreeBufferRadius: 3,
		MaxTreeAttempts:  10,
	}
}

// Validate checks the forest parameters.
func (c ForestConfig) Validate() error {
	var errs []error
	errs = append(errs,
		c.SpawnRadius.Validate("forest spawn radius"),
		c.TreeCount.Validate("tree count"),
	)
	if c.SpawnRadius.Min <= 0 {
		errs = append(errs, fmt.Errorf("forest spawn radius: min %v must be positive", c.SpawnRadius.Min))
	}
	if c.TreeCount.Min < 0 {
		errs = append(errs, fmt.Errorf("tree count: min %d is negative", c.TreeCount.Min))
	}
	if c.TreeBufferRadius < 0 {
		errs = append(errs, fmt.Errorf("tree buffer radius: %v is negative", c.TreeBufferRadius))
	}
	if c.MaxTreeAttempts < 1 {
		errs = append(errs, fmt.Errorf("max tree attempts: %d, need at least 1", c.MaxTreeAttempts))
	}
	return errors.Join(errs...)
}

// Config holds the parameters of one chunk.
type Config struct {
	Size               float64                // Side length of the square chunk, centered on the origin
	Forests            int                    // Forest regions requested
	Villages           int                    // Village regions requested
	VillageSpawnRadius entropy.Range[float64] // Village region radius

	Forest  ForestConfig
	Village village.Config
}

// DefaultConfig returns a 500-unit chunk with a few forests and villages.
func DefaultConfig() Config {
	return Config{
		Size:               500,
		Forests:            3,
		Villages:           2,
		VillageSpawnRadius: entropy.R(60.0, 100.0),
		Forest:             DefaultForestConfig(),
		Village:            village.DefaultConfig(),
	}
}

// Validate checks the chunk parameters and everything nested in them.
func (c Config) Validate() error {
	var errs []error
	if c.Size <= 0 {
		errs = append(errs, fmt.Errorf("size: %v must be positive", c.Size))
	}
	if c.Forests < 0 || c.Villages < 0 {
		errs = append(errs, fmt.Errorf("region counts: %d forests, %d villages", c.Forests, c.Villages))
	}
	errs = append(errs, c.VillageSpawnRadius.Validate("village spawn radius"))
	if c.VillageSpawnRadius.Min <= 0 {
		errs = append(errs, fmt.Errorf("village spawn radius: min %v must be positive", c.VillageSpawnRadius.Min))
	}
	if err := c.Forest.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("forest: %w", err))
	}
	if err := c.Village.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("village: %w", err))
	}
	return errors.Join(errs...)
}
