package physics

import (
	"fmt"
	"os"

	"github.com/oliverbestmann/bump/gm"
	"gopkg.in/yaml.v3"
)

// ShapePrecedence decides which collider is used when an entity carries
// both a box and a circle collider.
type ShapePrecedence string

const (
	PreferBox    ShapePrecedence = "box"
	PreferCircle ShapePrecedence = "circle"
)

// Config holds the tunables of a Space.
type Config struct {
	// Gravity applied to all dynamic bodies, scaled per body.
	Gravity gm.Vec `yaml:"gravity"`

	// CellSize of the broadphase grid. A value of zero disables the grid
	// and detection checks all pairs.
	CellSize float64 `yaml:"cellSize"`

	// ShapePrecedence for entities carrying both collider kinds.
	ShapePrecedence ShapePrecedence `yaml:"shapePrecedence"`
}

// DefaultConfig uses screen space gravity pointing down the y axis, a
// 64 unit grid and box precedence.
func DefaultConfig() Config {
	return Config{
		Gravity:         gm.Vec{Y: 100},
		CellSize:        64,
		ShapePrecedence: PreferBox,
	}
}

// LoadConfig reads a yaml config file on top of the defaults.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return config, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("parse config %q: %w", path, err)
	}

	switch config.ShapePrecedence {
	case PreferBox, PreferCircle:
	default:
		return config, fmt.Errorf("invalid shapePrecedence %q", config.ShapePrecedence)
	}

	return config, nil
}
