package config

import (
	_ "embed"
)

//go:embed defaults/replay.yaml
var defaultReplayYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Timing: Timing{
			SnakeMoveMillis:   200,
			SnakeInOutMillis:  100,
			TileInOutMillis:   200,
			TileStaggerMillis: 500,
			FoodInOutMillis:   100,
		},
		Geometry: Geometry{
			TileHeight:       1,
			TileStartDepth:   5,
			SnakeFloatHeight: 2.5,
		},
		Playback: Playback{
			Mode:     PlaybackPaced,
			Speed:    1,
			TickRate: 60,
			View:     "top",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultReplayYAML
}
