package config

// Presets are named variations of a scenario, keyed by scenario name. A
// preset only lists what differs from DefaultConfig; see GetPreset.
var Presets = map[string]map[string]func(c *Config){
	"seek": {
		"fast": func(c *Config) {
			c.Limits.MaxLinearSpeed = 12
			c.Limits.MaxLinearAcceleration = 30
		},
		"sluggish": func(c *Config) {
			c.Limits.MaxLinearAcceleration = 2
			c.Duration = 30
		},
	},
	"arrive": {
		"gentle": func(c *Config) {
			c.Behavior.DecelerationRadius = 8
			c.Behavior.TimeToTarget = 0.5
		},
		"abrupt": func(c *Config) {
			c.Behavior.DecelerationRadius = 0.5
		},
	},
	"wander": {
		"calm": func(c *Config) {
			c.Behavior.WanderRate = 0.5
			c.Behavior.WanderOffset = 5
		},
		"erratic": func(c *Config) {
			c.Behavior.WanderRate = 8
			c.Behavior.WanderRadius = 3
			c.Agents.Count = 5
		},
	},
	"pursue": {
		"blind": func(c *Config) { c.Behavior.MaxPredictionTime = 0 },
		"cunning": func(c *Config) {
			c.Behavior.MaxPredictionTime = 3
			c.Limits.MaxLinearSpeed = 6
		},
	},
	"follow_path": {
		"loop": func(c *Config) {
			c.Path.Open = false
			c.Duration = 40
		},
		"lookahead": func(c *Config) {
			c.Behavior.PredictionTime = 0.5
			c.Behavior.PathOffset = 2
		},
	},
	"flock": {
		"tight": func(c *Config) {
			c.Agents.Count = 20
			c.Behavior.CohesionWeight = 2
			c.Behavior.SeparationWeight = 1
		},
		"loose": func(c *Config) {
			c.Agents.Count = 20
			c.Behavior.SeparationWeight = 4
			c.Behavior.NeighborRadius = 6
		},
	},
	"crowd": {
		"dense": func(c *Config) {
			c.Agents.Count = 24
			c.Agents.Spread = 6
		},
		"sparse": func(c *Config) {
			c.Agents.Count = 8
			c.Agents.Spread = 20
		},
	},
	"walls": {
		"single_ray": func(c *Config) { c.Behavior.Rays = "single" },
		"parallel":   func(c *Config) { c.Behavior.Rays = "parallel" },
		"whiskers":   func(c *Config) { c.Behavior.Rays = "whiskers" },
		"corner_trap": func(c *Config) {
			c.Behavior.Rays = "parallel"
			c.Walls = []WallConfig{
				{From: Point{X: 0, Y: 20}, To: Point{X: 10, Y: 10}},
				{From: Point{X: 10, Y: 10}, To: Point{X: 20, Y: 20}},
			}
			c.Agents.Start = Point{X: 10, Y: 0}
			c.Agents.Target = Point{X: 10, Y: 30}
		},
	},
	"jump": {
		"long_gap": func(c *Config) { c.Jump.Landing = Point{X: 9.5} },
		"ledge": func(c *Config) {
			c.Jump.Landing = Point{X: 7, Y: 1}
		},
		"too_far": func(c *Config) { c.Jump.Landing = Point{X: 20} },
	},
}

// GetPreset returns DefaultConfig for scenario with the named preset
// applied, or nil when either is unknown.
func GetPreset(scenario, preset string) *Config {
	scenarioPresets, ok := Presets[scenario]
	if !ok {
		return nil
	}
	apply, ok := scenarioPresets[preset]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Scenario = scenario
	apply(cfg)
	return cfg
}

func ListPresets(scenario string) []string {
	scenarioPresets, ok := Presets[scenario]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(scenarioPresets))
	for name := range scenarioPresets {
		names = append(names, name)
	}
	return names
}
