package entropy

import "strconv"

// Params holds the tunable probabilities of the material rules. Every value is
// a per-cell, per-tick chance in [0, 1].
type Params struct {
	ProcessSpawnChance float64

	VirusReplicateChance float64
	VirusStarveChance    float64

	FirewallDecayChance  float64
	FirewallRiseChance   float64
	FirewallSpreadChance float64
}

// Config controls the grid dimensions, the material set and the rules.
type Config struct {
	Width  int
	Height int

	// Seed pins the random source; zero draws a seed from the clock.
	Seed int64

	// AntiGravity enables Firewall and AntiData together with the upward
	// pass that moves them.
	AntiGravity bool

	Params Params
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:       200,
		Height:      150,
		AntiGravity: true,
		Params:      DefaultParams(),
	}
}

// DefaultParams returns the standard rule probabilities.
func DefaultParams() Params {
	return Params{
		ProcessSpawnChance:   0.2,
		VirusReplicateChance: 0.05,
		VirusStarveChance:    0.1,
		FirewallDecayChance:  0.04,
		FirewallRiseChance:   0.5,
		FirewallSpreadChance: 0.3,
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["anti_gravity"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.AntiGravity = parsed
		}
	}
	for _, ctrl := range ParameterControls() {
		v, ok := cfg[ctrl.Key]
		if !ok {
			continue
		}
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Params.SetFloat(ctrl.Key, parsed)
		}
	}
	return c
}

// SetFloat updates the probability named by key, clamped to [0, 1]. It
// reports whether key names a known parameter.
func (p *Params) SetFloat(key string, value float64) bool {
	ptr := p.field(key)
	if ptr == nil {
		return false
	}
	if value < 0 {
		value = 0
	}
	if value > 1 {
		value = 1
	}
	*ptr = value
	return true
}

// Float returns the probability named by key.
func (p *Params) Float(key string) (float64, bool) {
	ptr := p.field(key)
	if ptr == nil {
		return 0, false
	}
	return *ptr, true
}

func (p *Params) field(key string) *float64 {
	switch key {
	case "process_spawn_chance":
		return &p.ProcessSpawnChance
	case "virus_replicate_chance":
		return &p.VirusReplicateChance
	case "virus_starve_chance":
		return &p.VirusStarveChance
	case "firewall_decay_chance":
		return &p.FirewallDecayChance
	case "firewall_rise_chance":
		return &p.FirewallRiseChance
	case "firewall_spread_chance":
		return &p.FirewallSpreadChance
	default:
		return nil
	}
}
