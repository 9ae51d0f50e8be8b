// Package config provides YAML-based configuration loading and speed preset
// management for the snake game.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

// SnakeConfig contains all configuration for the snake game.
type SnakeConfig struct {
	Board     BoardConfig     `yaml:"board"`
	Snake     BodyConfig      `yaml:"snake"`
	Speed     SpeedConfig     `yaml:"speed"`
	Retry     RetryConfig     `yaml:"retry"`
	Collision CollisionConfig `yaml:"collision"`
	Seed      int64           `yaml:"seed"` // 0 = time-based
}

// BoardConfig defines the playing field geometry.
type BoardConfig struct {
	Size     int `yaml:"size"`
	CellSize int `yaml:"cell_size"`
}

// BodyConfig defines the initial snake.
type BodyConfig struct {
	InitialLength      int  `yaml:"initial_length"`
	StartRow           int  `yaml:"start_row"`
	BlockQuickReversal bool `yaml:"block_quick_reversal"` // reject a turn back against the last move
}

// SpeedConfig defines the tick interval presets in milliseconds.
type SpeedConfig struct {
	Default SpeedPreset         `yaml:"default"`
	Presets map[SpeedPreset]int `yaml:"presets"`
}

// RetryConfig defines the bounded-retry rules.
type RetryConfig struct {
	MaxNG   int `yaml:"max_ng"`
	DelayMS int `yaml:"delay_ms"`
}

// CollisionConfig toggles collision rule variants.
type CollisionConfig struct {
	TailAware bool `yaml:"tail_aware"`
}

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Validate checks geometry, speeds and retry settings.
func (c SnakeConfig) Validate() error {
	if c.Board.CellSize <= 0 {
		return fmt.Errorf("config: board.cell_size %d: %w", c.Board.CellSize, ErrInvalidConfig)
	}
	if c.Board.Size <= 0 || c.Board.Size%c.Board.CellSize != 0 {
		return fmt.Errorf("config: board.size %d is not a multiple of cell_size %d: %w",
			c.Board.Size, c.Board.CellSize, ErrInvalidConfig)
	}
	columns := c.Board.Size / c.Board.CellSize
	if c.Snake.InitialLength < 1 || c.Snake.InitialLength > columns {
		return fmt.Errorf("config: snake.initial_length %d must be in [1,%d]: %w",
			c.Snake.InitialLength, columns, ErrInvalidConfig)
	}
	if c.Snake.InitialLength >= columns*columns {
		return fmt.Errorf("config: snake.initial_length %d leaves no cell for food: %w",
			c.Snake.InitialLength, ErrInvalidConfig)
	}
	if c.Snake.StartRow < 0 || c.Snake.StartRow >= columns {
		return fmt.Errorf("config: snake.start_row %d outside the board: %w", c.Snake.StartRow, ErrInvalidConfig)
	}
	if len(c.Speed.Presets) == 0 {
		return fmt.Errorf("config: speed.presets is empty: %w", ErrInvalidConfig)
	}
	for name, ms := range c.Speed.Presets {
		if ms <= 0 {
			return fmt.Errorf("config: speed preset %q has interval %dms: %w", name, ms, ErrInvalidConfig)
		}
	}
	if _, ok := c.Speed.Presets[c.Speed.Default]; !ok {
		return fmt.Errorf("config: default speed %q is not a preset: %w", c.Speed.Default, ErrInvalidConfig)
	}
	if c.Retry.MaxNG <= 0 {
		return fmt.Errorf("config: retry.max_ng %d: %w", c.Retry.MaxNG, ErrInvalidConfig)
	}
	if c.Retry.DelayMS < 0 {
		return fmt.Errorf("config: retry.delay_ms %d: %w", c.Retry.DelayMS, ErrInvalidConfig)
	}
	return nil
}

// RetryDelay returns the retry pause as a duration.
func (c SnakeConfig) RetryDelay() time.Duration {
	return time.Duration(c.Retry.DelayMS) * time.Millisecond
}

// ToEngine converts the configuration into engine parameters, starting at
// the given speed preset. An empty preset selects the configured default.
func (c SnakeConfig) ToEngine(preset SpeedPreset) (snake.Config, error) {
	if err := c.Validate(); err != nil {
		return snake.Config{}, err
	}
	interval, err := c.Interval(preset)
	if err != nil {
		return snake.Config{}, err
	}
	return snake.Config{
		BoardSize:     c.Board.Size,
		CellSize:      c.Board.CellSize,
		InitialLength: c.Snake.InitialLength,
		StartRow:      c.Snake.StartRow,
		MaxNG:         c.Retry.MaxNG,
		Interval:      interval,
		RetryDelay:    c.RetryDelay(),
		TailAware:     c.Collision.TailAware,

		BlockQuickReversal: c.Snake.BlockQuickReversal,
	}, nil
}
