package core

// RuntimeConfig contains the terminal and pacing settings for one replay run.
type RuntimeConfig struct {
	ScreenW  int     // Screen width in characters
	ScreenH  int     // Screen height in characters
	TickRate int     // Render ticks per second (default 60)
	Speed    float64 // Playback speed multiplier (default 1)
	View     string  // Registered view ID ("top", "tilt")
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Speed:    1,
		View:     "top",
	}
}
