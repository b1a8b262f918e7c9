// Package config provides YAML-based replay configuration loading.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Config contains all settings for a replay run.
type Config struct {
	Timing   Timing   `yaml:"timing"`
	Geometry Geometry `yaml:"geometry"`
	Playback Playback `yaml:"playback"`
}

// Timing defines animation durations in milliseconds.
type Timing struct {
	SnakeMoveMillis   int `yaml:"snake_move_ms"`
	SnakeInOutMillis  int `yaml:"snake_inout_ms"`
	TileInOutMillis   int `yaml:"tile_inout_ms"`
	TileStaggerMillis int `yaml:"tile_stagger_ms"`
	FoodInOutMillis   int `yaml:"food_inout_ms"`
}

// SnakeMove returns the duration of one snake step.
func (t Timing) SnakeMove() time.Duration {
	return millis(t.SnakeMoveMillis)
}

// SnakeInOut returns the duration of a snake's enter or exit.
func (t Timing) SnakeInOut() time.Duration {
	return millis(t.SnakeInOutMillis)
}

// TileInOut returns the duration of a tile's enter or exit.
func (t Timing) TileInOut() time.Duration {
	return millis(t.TileInOutMillis)
}

// TileStagger returns the delay applied to the tile farthest from the origin.
func (t Timing) TileStagger() time.Duration {
	return millis(t.TileStaggerMillis)
}

// FoodInOut returns the duration of a food item's spawn or removal.
func (t Timing) FoodInOut() time.Duration {
	return millis(t.FoodInOutMillis)
}

func millis(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

// Geometry defines scene heights in board units.
type Geometry struct {
	TileHeight       float64 `yaml:"tile_height"`
	TileStartDepth   float64 `yaml:"tile_start_depth"` // Multiples of TileHeight below the board
	SnakeFloatHeight float64 `yaml:"snake_float_height"`
}

// TileRestY returns the height of a tile sitting on the board.
func (g Geometry) TileRestY() float64 {
	return -g.TileHeight
}

// TileHiddenY returns the height of a tile before it enters and after it exits.
func (g Geometry) TileHiddenY() float64 {
	return -g.TileHeight * g.TileStartDepth
}

// PlaybackMode controls how frames are fed to the scene.
type PlaybackMode string

const (
	// PlaybackPaced issues a frame once every snake finished the previous one.
	PlaybackPaced PlaybackMode = "paced"
	// PlaybackBurst issues every frame as soon as the scene is set up.
	PlaybackBurst PlaybackMode = "burst"
)

// Playback defines how the replay is driven.
type Playback struct {
	Mode     PlaybackMode `yaml:"mode"`
	Speed    float64      `yaml:"speed"`
	TickRate int          `yaml:"tick_rate"`
	View     string       `yaml:"view"`
}

// Validation errors.
var ErrInvalid = errors.New("config: invalid value")

// Validate checks that every duration and rate is usable.
func (c Config) Validate() error {
	durations := []struct {
		name string
		ms   int
	}{
		{"timing.snake_move_ms", c.Timing.SnakeMoveMillis},
		{"timing.snake_inout_ms", c.Timing.SnakeInOutMillis},
		{"timing.tile_inout_ms", c.Timing.TileInOutMillis},
		{"timing.food_inout_ms", c.Timing.FoodInOutMillis},
	}
	for _, d := range durations {
		if d.ms <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %d", ErrInvalid, d.name, d.ms)
		}
	}
	if c.Timing.TileStaggerMillis < 0 {
		return fmt.Errorf("%w: timing.tile_stagger_ms must not be negative", ErrInvalid)
	}
	if c.Geometry.TileHeight <= 0 {
		return fmt.Errorf("%w: geometry.tile_height must be positive", ErrInvalid)
	}
	switch c.Playback.Mode {
	case PlaybackPaced, PlaybackBurst:
	default:
		return fmt.Errorf("%w: playback.mode %q (want paced or burst)", ErrInvalid, c.Playback.Mode)
	}
	if c.Playback.Speed <= 0 {
		return fmt.Errorf("%w: playback.speed must be positive", ErrInvalid)
	}
	if c.Playback.TickRate <= 0 {
		return fmt.Errorf("%w: playback.tick_rate must be positive", ErrInvalid)
	}
	return nil
}
