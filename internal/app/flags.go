package app

import (
	"flag"

	"entropy/internal/core"
	"entropy/internal/sims/entropy"
)

// Config represents the command-line parameters shared by the interactive
// front ends.
type Config struct {
	Width       int
	Height      int
	Scale       int
	TPS         int
	Brush       int
	Seed        int64
	AntiGravity bool
	HUDWidth    int
	LogLevel    string
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	ec := entropy.DefaultConfig()
	return &Config{
		Width:       ec.Width,
		Height:      ec.Height,
		Scale:       4,
		TPS:         core.DefaultTPS,
		Brush:       DefaultBrushRadius,
		AntiGravity: ec.AntiGravity,
		HUDWidth:    220,
		LogLevel:    "info",
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Width, "w", c.Width, "grid width in cells")
	fs.IntVar(&c.Height, "h", c.Height, "grid height in cells")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.IntVar(&c.Brush, "brush", c.Brush, "initial brush radius")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "random seed (0 = time based)")
	fs.BoolVar(&c.AntiGravity, "anti-gravity", c.AntiGravity, "enable firewall and antidata")
	fs.IntVar(&c.HUDWidth, "hud", c.HUDWidth, "HUD panel width in pixels (0 hides it)")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level (debug, info, warn, error)")
}

// EngineConfig returns the engine configuration implied by c.
func (c *Config) EngineConfig() entropy.Config {
	ec := entropy.DefaultConfig()
	ec.Width, ec.Height = c.Width, c.Height
	ec.Seed = c.Seed
	ec.AntiGravity = c.AntiGravity
	return ec
}
