package config

import (
	_ "embed"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultSnakeConfig returns the built-in snake configuration.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Board: BoardConfig{
			Size:     400,
			CellSize: 20,
		},
		Snake: BodyConfig{
			InitialLength: 5,
			StartRow:      0,
		},
		Speed: SpeedConfig{
			Default: SpeedNormal,
			Presets: map[SpeedPreset]int{
				SpeedFast:   50,
				SpeedNormal: 100,
				SpeedSlow:   150,
			},
		},
		Retry: RetryConfig{
			MaxNG:   10,
			DelayMS: 2000,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultSnakeYAML
}
