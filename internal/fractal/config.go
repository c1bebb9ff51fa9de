package fractal

import (
	"errors"
	"fmt"
	"time"

	"github.com/chewxy/math32"
)

// DefaultSpawnDelay separates consecutive child creations of one parent.
const DefaultSpawnDelay = time.Second

// ErrInvalidConfig is wrapped by every configuration validation error.
var ErrInvalidConfig = errors.New("invalid fractal config")

// Config is the tree-wide configuration. It is fixed when the tree is created
// and shared read-only by every node.
type Config struct {
	Meshes   []Mesh
	Material Material

	MaxDepth         int
	ChildScale       float32
	SpawnProbability float32

	// MaxRotationSpeed bounds the per-node spin in degrees per second.
	MaxRotationSpeed float32
	// MaxTwist bounds the one-time twist in degrees.
	MaxTwist float32

	// SpawnDelay defaults to DefaultSpawnDelay when zero.
	SpawnDelay time.Duration
}

// Validate checks the configuration for values the generator cannot honor.
// Ranges are written so that NaN fails them.
func (c *Config) Validate() error {
	switch {
	case len(c.Meshes) == 0:
		return fmt.Errorf("%w: mesh set is empty", ErrInvalidConfig)
	case c.Material == nil:
		return fmt.Errorf("%w: material template is nil", ErrInvalidConfig)
	case c.MaxDepth < 1:
		return fmt.Errorf("%w: max depth %d, need at least 1", ErrInvalidConfig, c.MaxDepth)
	case !(c.ChildScale > 0 && c.ChildScale <= 1):
		return fmt.Errorf("%w: child scale %v outside (0, 1]", ErrInvalidConfig, c.ChildScale)
	case !(c.SpawnProbability >= 0 && c.SpawnProbability <= 1):
		return fmt.Errorf("%w: spawn probability %v outside [0, 1]", ErrInvalidConfig, c.SpawnProbability)
	case !finiteNonNegative(c.MaxRotationSpeed):
		return fmt.Errorf("%w: max rotation speed %v must be finite and non-negative", ErrInvalidConfig, c.MaxRotationSpeed)
	case !finiteNonNegative(c.MaxTwist):
		return fmt.Errorf("%w: max twist %v must be finite and non-negative", ErrInvalidConfig, c.MaxTwist)
	case c.SpawnDelay < 0:
		return fmt.Errorf("%w: negative spawn delay %v", ErrInvalidConfig, c.SpawnDelay)
	}
	for i, m := range c.Meshes {
		if m == nil {
			return fmt.Errorf("%w: mesh %d is nil", ErrInvalidConfig, i)
		}
	}
	return nil
}

func finiteNonNegative(v float32) bool {
	return v >= 0 && !math32.IsInf(v, 1)
}

// MaxNodes returns the node count of a fully grown tree.
func (c *Config) MaxNodes() int {
	total, level := 0, 1
	for d := 0; d <= c.MaxDepth; d++ {
		total += level
		level *= len(Directions)
	}
	return total
}

// Radius bounds the distance from the root's center to any point of a fully
// grown tree whose meshes fit the unit cube.
func (c *Config) Radius() float32 {
	r := math32.Sqrt(3) / 2
	step := float32(1)
	for d := 1; d <= c.MaxDepth; d++ {
		r += step * (0.5 + 0.5*c.ChildScale)
		step *= c.ChildScale
	}
	return r
}
