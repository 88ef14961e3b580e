package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDt                     = 1.0 / 60
	DefaultDuration               = 20.0
	DefaultAgents                 = 1
	DefaultRadius                 = 0.5
	DefaultMaxLinearAcceleration  = 10.0
	DefaultMaxLinearSpeed         = 5.0
	DefaultMaxAngularAcceleration = 10.0
	DefaultMaxAngularSpeed        = 5.0
	DefaultNeighborRadius         = 4.0
	DefaultRayLength              = 3.0
)

var ErrInvalid = errors.New("config: invalid")

type Config struct {
	Scenario    string         `yaml:"scenario"`
	Integrator  string         `yaml:"integrator"`
	Dt          float64        `yaml:"dt"`
	Duration    float64        `yaml:"duration"`
	Seed        int64          `yaml:"seed"`
	RecordEvery int            `yaml:"record_every"`
	Agents      AgentsConfig   `yaml:"agents"`
	Limits      LimitsConfig   `yaml:"limits"`
	Behavior    BehaviorConfig `yaml:"behavior"`
	Path        PathConfig     `yaml:"path"`
	Walls       []WallConfig   `yaml:"walls,omitempty"`
	Jump        JumpConfig     `yaml:"jump"`
}

type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z,omitempty"`
}

type AgentsConfig struct {
	Count  int     `yaml:"count"`
	Radius float64 `yaml:"radius"`
	// Spread is the side of the square the agents are scattered over.
	Spread float64 `yaml:"spread"`
	Start  Point   `yaml:"start"`
	Target Point   `yaml:"target"`
	// Speed is the initial speed along the initial heading.
	Speed float64 `yaml:"speed"`
}

type LimitsConfig struct {
	MaxLinearAcceleration  float64 `yaml:"max_linear_acceleration"`
	MaxLinearSpeed         float64 `yaml:"max_linear_speed"`
	MaxAngularAcceleration float64 `yaml:"max_angular_acceleration"`
	MaxAngularSpeed        float64 `yaml:"max_angular_speed"`
}

type BehaviorConfig struct {
	ArrivalTolerance   float64 `yaml:"arrival_tolerance"`
	DecelerationRadius float64 `yaml:"deceleration_radius"`
	TimeToTarget       float64 `yaml:"time_to_target"`

	WanderOffset float64 `yaml:"wander_offset"`
	WanderRadius float64 `yaml:"wander_radius"`
	WanderRate   float64 `yaml:"wander_rate"`

	MaxPredictionTime float64 `yaml:"max_prediction_time"`

	PathOffset     float64 `yaml:"path_offset"`
	PredictionTime float64 `yaml:"prediction_time"`

	NeighborRadius   float64 `yaml:"neighbor_radius"`
	SeparationWeight float64 `yaml:"separation_weight"`
	CohesionWeight   float64 `yaml:"cohesion_weight"`
	AlignmentWeight  float64 `yaml:"alignment_weight"`

	// Rays is one of single, parallel or whiskers.
	Rays                 string  `yaml:"rays"`
	RayLength            float64 `yaml:"ray_length"`
	WhiskerLength        float64 `yaml:"whisker_length"`
	WhiskerAngle         float64 `yaml:"whisker_angle"`
	SideOffset           float64 `yaml:"side_offset"`
	DistanceFromBoundary float64 `yaml:"distance_from_boundary"`
}

type PathConfig struct {
	Waypoints []Point `yaml:"waypoints,omitempty"`
	Open      bool    `yaml:"open"`
}

type WallConfig struct {
	From Point `yaml:"from"`
	To   Point `yaml:"to"`
}

type JumpConfig struct {
	Takeoff             Point   `yaml:"takeoff"`
	Landing             Point   `yaml:"landing"`
	Gravity             float64 `yaml:"gravity"`
	MaxVerticalVelocity float64 `yaml:"max_vertical_velocity"`
	PositionTolerance   float64 `yaml:"position_tolerance"`
	VelocityTolerance   float64 `yaml:"velocity_tolerance"`
}

func DefaultConfig() *Config {
	return &Config{
		Scenario:    "seek",
		Integrator:  "semi_implicit",
		Dt:          DefaultDt,
		Duration:    DefaultDuration,
		Seed:        1,
		RecordEvery: 1,
		Agents: AgentsConfig{
			Count:  DefaultAgents,
			Radius: DefaultRadius,
			Spread: 10,
			Target: Point{X: 10, Y: 10},
		},
		Limits: LimitsConfig{
			MaxLinearAcceleration:  DefaultMaxLinearAcceleration,
			MaxLinearSpeed:         DefaultMaxLinearSpeed,
			MaxAngularAcceleration: DefaultMaxAngularAcceleration,
			MaxAngularSpeed:        DefaultMaxAngularSpeed,
		},
		Behavior: BehaviorConfig{
			ArrivalTolerance:     0.05,
			DecelerationRadius:   3,
			TimeToTarget:         0.1,
			WanderOffset:         3,
			WanderRadius:         1,
			WanderRate:           2,
			MaxPredictionTime:    1,
			PathOffset:           1,
			PredictionTime:       0,
			NeighborRadius:       DefaultNeighborRadius,
			SeparationWeight:     2,
			CohesionWeight:       0.5,
			AlignmentWeight:      1,
			Rays:                 "whiskers",
			RayLength:            DefaultRayLength,
			WhiskerLength:        1.5,
			WhiskerAngle:         0.6,
			SideOffset:           0.5,
			DistanceFromBoundary: 0.5,
		},
		Path: PathConfig{Open: true},
		Jump: JumpConfig{
			Takeoff:             Point{X: 5},
			Landing:             Point{X: 8},
			Gravity:             -10,
			MaxVerticalVelocity: 5,
			PositionTolerance:   0.3,
			VelocityTolerance:   0.5,
		},
	}
}

// Load reads a YAML file over the defaults, so a file only needs the keys it
// changes.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the values every scenario relies on.
func (c *Config) Validate() error {
	switch {
	case c.Dt <= 0:
		return fmt.Errorf("%w: dt must be positive, got %g", ErrInvalid, c.Dt)
	case c.Duration <= 0:
		return fmt.Errorf("%w: duration must be positive, got %g", ErrInvalid, c.Duration)
	case c.Agents.Count < 0:
		return fmt.Errorf("%w: negative agent count %d", ErrInvalid, c.Agents.Count)
	case c.Agents.Radius < 0:
		return fmt.Errorf("%w: negative agent radius %g", ErrInvalid, c.Agents.Radius)
	case c.Limits.MaxLinearSpeed <= 0 || c.Limits.MaxLinearAcceleration <= 0:
		return fmt.Errorf("%w: linear limits must be positive", ErrInvalid)
	case c.Limits.MaxAngularSpeed <= 0 || c.Limits.MaxAngularAcceleration <= 0:
		return fmt.Errorf("%w: angular limits must be positive", ErrInvalid)
	case len(c.Path.Waypoints) == 1:
		return fmt.Errorf("%w: a path needs at least two waypoints", ErrInvalid)
	}

	switch c.Behavior.Rays {
	case "", "single", "parallel", "whiskers":
	default:
		return fmt.Errorf("%w: unknown ray configuration %q", ErrInvalid, c.Behavior.Rays)
	}
	return nil
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	out.Path.Waypoints = append([]Point(nil), c.Path.Waypoints...)
	out.Walls = append([]WallConfig(nil), c.Walls...)
	return &out
}
