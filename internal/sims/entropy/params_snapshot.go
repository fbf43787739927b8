package entropy

import "entropy/internal/core"

// ParametersFor reports the tunables of cfg grouped for display.
func ParametersFor(cfg Config) core.ParameterSnapshot {
	p := cfg.Params
	groups := []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				core.IntParam("w", "Width", cfg.Width),
				core.IntParam("h", "Height", cfg.Height),
				core.Int64Param("seed", "Seed", cfg.Seed),
				core.BoolParam("anti_gravity", "Anti-gravity", cfg.AntiGravity),
			},
		},
		{
			Name: "Process",
			Params: []core.Parameter{
				core.FloatParam("process_spawn_chance", "Spawn chance", p.ProcessSpawnChance),
			},
		},
		{
			Name: "Virus",
			Params: []core.Parameter{
				core.FloatParam("virus_replicate_chance", "Replicate chance", p.VirusReplicateChance),
				core.FloatParam("virus_starve_chance", "Starve chance", p.VirusStarveChance),
			},
		},
		{
			Name: "Firewall",
			Params: []core.Parameter{
				core.FloatParam("firewall_decay_chance", "Decay chance", p.FirewallDecayChance),
				core.FloatParam("firewall_rise_chance", "Rise chance", p.FirewallRiseChance),
				core.FloatParam("firewall_spread_chance", "Spread chance", p.FirewallSpreadChance),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the HUD-adjustable probabilities.
func ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		probControl("process_spawn_chance", "Spawn", 0.05),
		probControl("virus_replicate_chance", "Replicate", 0.01),
		probControl("virus_starve_chance", "Starve", 0.01),
		probControl("firewall_decay_chance", "Decay", 0.01),
		probControl("firewall_rise_chance", "Rise", 0.05),
		probControl("firewall_spread_chance", "Spread", 0.05),
	}
}

func probControl(key, label string, step float64) core.ParameterControl {
	return core.ParameterControl{
		Key:    key,
		Label:  label,
		Type:   core.ParamTypeFloat,
		Step:   step,
		Min:    0,
		Max:    1,
		HasMin: true,
		HasMax: true,
	}
}
