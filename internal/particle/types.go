// Package particle defines particle emitter configurations and loads them from YAML.
//
// A configuration only describes how particles are spawned and evolve; the runtime
// (spawning, integration, rendering) lives in pkg/systems.
package particle

import "fmt"

// FrequencyExplode marks an emitter that never flows and only emits bursts.
const FrequencyExplode = -1

// Range is an inclusive [Min, Max] range used for random sampling.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Sample maps t in [0,1] onto the range.
func (r Range) Sample(t float64) float64 {
	return r.Min + (r.Max-r.Min)*t
}

// StartEnd is a value interpolated over a particle's lifetime.
type StartEnd struct {
	Start float64 `yaml:"start"`
	End   float64 `yaml:"end"`
}

// At returns the value at lifetime progress t in [0,1].
func (s StartEnd) At(t float64) float64 {
	return s.Start + (s.End-s.Start)*t
}

// BlendMode names how particles are composited.
type BlendMode string

const (
	BlendNormal BlendMode = "NORMAL"
	BlendAdd    BlendMode = "ADD"
)

// EmitterConfig describes one emitter.
//
// Lifespan and Frequency are in milliseconds. When SpeedX or SpeedY is set the
// particle velocity is sampled per axis; otherwise Speed is sampled together
// with Angle (degrees).
type EmitterConfig struct {
	Name      string    `yaml:"name"`
	Texture   string    `yaml:"texture"`
	Frames    []string  `yaml:"frames"`
	Lifespan  float64   `yaml:"lifespan"`
	Speed     *Range    `yaml:"speed,omitempty"`
	SpeedX    *Range    `yaml:"speed_x,omitempty"`
	SpeedY    *Range    `yaml:"speed_y,omitempty"`
	Angle     *Range    `yaml:"angle,omitempty"`
	X         *Range    `yaml:"x,omitempty"` // 相对发射器位置的生成范围
	Y         *Range    `yaml:"y,omitempty"`
	Scale     StartEnd  `yaml:"scale"`
	Alpha     StartEnd  `yaml:"alpha"`
	GravityY  float64   `yaml:"gravity_y"`
	Quantity  int       `yaml:"quantity"`
	Frequency float64   `yaml:"frequency"`
	Emitting  *bool     `yaml:"emitting,omitempty"`
	BlendMode BlendMode `yaml:"blend_mode,omitempty"`
	Depth     float64   `yaml:"depth"`
}

// StartsEmitting reports whether a new emitter with this config flows immediately.
// Defaults to true when unset.
func (c *EmitterConfig) StartsEmitting() bool {
	if c.Frequency == FrequencyExplode {
		return false
	}
	return c.Emitting == nil || *c.Emitting
}

// IsExplode reports whether the emitter only emits bursts.
func (c *EmitterConfig) IsExplode() bool {
	return c.Frequency == FrequencyExplode
}

// Validate checks the configuration for values the runtime cannot handle.
func (c *EmitterConfig) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("emitter name is required")
	}
	if c.Texture == "" {
		return fmt.Errorf("emitter %q: texture is required", c.Name)
	}
	if len(c.Frames) == 0 {
		return fmt.Errorf("emitter %q: at least one frame is required", c.Name)
	}
	if c.Lifespan <= 0 {
		return fmt.Errorf("emitter %q: lifespan must be positive, got %v", c.Name, c.Lifespan)
	}
	if c.Quantity <= 0 {
		return fmt.Errorf("emitter %q: quantity must be positive, got %d", c.Name, c.Quantity)
	}
	if c.Frequency != FrequencyExplode && c.Frequency <= 0 {
		return fmt.Errorf("emitter %q: frequency must be positive or -1, got %v", c.Name, c.Frequency)
	}
	for name, r := range map[string]*Range{"speed": c.Speed, "speed_x": c.SpeedX, "speed_y": c.SpeedY, "angle": c.Angle, "x": c.X, "y": c.Y} {
		if r != nil && r.Min > r.Max {
			return fmt.Errorf("emitter %q: %s range min %v > max %v", c.Name, name, r.Min, r.Max)
		}
	}
	switch c.BlendMode {
	case "", BlendNormal, BlendAdd:
	default:
		return fmt.Errorf("emitter %q: unknown blend mode %q", c.Name, c.BlendMode)
	}
	return nil
}
