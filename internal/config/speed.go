package config

import (
	"cmp"
	"fmt"
	"slices"
	"time"
)

// SpeedPreset represents a named tick interval.
type SpeedPreset string

const (
	SpeedFast   SpeedPreset = "fast"
	SpeedNormal SpeedPreset = "normal"
	SpeedSlow   SpeedPreset = "slow"
)

// ParseSpeed validates a preset name against the configured presets.
func (c SnakeConfig) ParseSpeed(name string) (SpeedPreset, error) {
	p := SpeedPreset(name)
	if _, ok := c.Speed.Presets[p]; !ok {
		return "", fmt.Errorf("config: unknown speed %q (available: %v)", name, c.SpeedNames())
	}
	return p, nil
}

// Interval returns the tick interval of a preset. An empty preset selects the
// configured default.
func (c SnakeConfig) Interval(preset SpeedPreset) (time.Duration, error) {
	if preset == "" {
		preset = c.Speed.Default
	}
	ms, ok := c.Speed.Presets[preset]
	if !ok {
		return 0, fmt.Errorf("config: unknown speed %q", preset)
	}
	return time.Duration(ms) * time.Millisecond, nil
}

// SpeedNames returns the preset names from fastest to slowest.
func (c SnakeConfig) SpeedNames() []SpeedPreset {
	names := make([]SpeedPreset, 0, len(c.Speed.Presets))
	for name := range c.Speed.Presets {
		names = append(names, name)
	}
	slices.SortFunc(names, func(a, b SpeedPreset) int {
		if d := cmp.Compare(c.Speed.Presets[a], c.Speed.Presets[b]); d != 0 {
			return d
		}
		return cmp.Compare(a, b)
	})
	return names
}

// StepSpeed returns the preset next to current: faster when faster is true,
// slower otherwise. It stays put at either end of the list.
func (c SnakeConfig) StepSpeed(current SpeedPreset, faster bool) SpeedPreset {
	if current == "" {
		current = c.Speed.Default
	}
	names := c.SpeedNames()
	i := slices.Index(names, current)
	if i < 0 {
		return c.Speed.Default
	}
	if faster {
		i--
	} else {
		i++
	}
	return names[max(0, min(i, len(names)-1))]
}
